package queue

import (
	"context"
	"errors"
	"hash/fnv"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/summercamp/camp-api/internal/api/metrics"
	"github.com/summercamp/camp-api/internal/core/domain"
	"github.com/summercamp/camp-api/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// Dispatcher routes enrollments to a fixed set of workers using consistent
// hashing on the class id, so seat updates for one class are applied in
// arrival order by a single goroutine.
type Dispatcher struct {
	workers []chan ports.EnrollmentInput
	service ports.EnrollmentService
	log     zerolog.Logger
	wg      sync.WaitGroup
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, service ports.EnrollmentService, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan ports.EnrollmentInput, numWorkers),
		service: service,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan ports.EnrollmentInput, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		d.wg.Add(1)
		go d.runWorker(ctx, i, ch)
	}
}

// Wait blocks until every worker has returned.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}

// Enqueue sends an enrollment to the worker responsible for its class. It
// blocks while that worker's channel is full, until ctx ends.
func (d *Dispatcher) Enqueue(ctx context.Context, in ports.EnrollmentInput) error {
	idx := d.shardIndex(in.ClassID)
	select {
	case d.workers[idx] <- in:
	case <-ctx.Done():
		metrics.EnrollmentsDroppedTotal.Inc()
		d.log.Error().Err(ctx.Err()).
			Str("class_id", in.ClassID).
			Str("transaction_id", in.TransactionID).
			Int("worker_id", idx).
			Msg("enrollment dropped, worker queue full")
		return ctx.Err()
	}
	metrics.EnrollmentQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(d.workers[idx])))
	return nil
}

// EnqueueBatch enqueues every enrollment of a payment and stops at the first
// one that could not be accepted.
func (d *Dispatcher) EnqueueBatch(ctx context.Context, in []ports.EnrollmentInput) error {
	for _, e := range in {
		if err := d.Enqueue(ctx, e); err != nil {
			return err
		}
	}
	return nil
}

// shardIndex maps a class id deterministically to a worker index.
func (d *Dispatcher) shardIndex(classID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(classID))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan ports.EnrollmentInput) {
	defer d.wg.Done()
	label := strconv.Itoa(id)
	for {
		select {
		case <-ctx.Done():
			return
		case in, ok := <-ch:
			if !ok {
				return
			}
			metrics.EnrollmentQueueDepth.WithLabelValues(label).Set(float64(len(ch)))

			start := time.Now()
			err := d.service.Process(ctx, in)
			if err != nil {
				metrics.EnrollmentProcessingDuration.WithLabelValues("error").Observe(time.Since(start).Seconds())
				metrics.EnrollmentsErrorsTotal.WithLabelValues(errorReason(err)).Inc()
				d.log.Error().Err(err).
					Str("class_id", in.ClassID).
					Str("transaction_id", in.TransactionID).
					Int("worker_id", id).
					Msg("enrollment failed")
				continue
			}
			metrics.EnrollmentProcessingDuration.WithLabelValues("ok").Observe(time.Since(start).Seconds())
			metrics.EnrollmentsProcessedTotal.Inc()
		}
	}
}

func errorReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrClassFull):
		return "class_full"
	case errors.Is(err, domain.ErrNotFound):
		return "class_not_found"
	case errors.Is(err, domain.ErrInvalidID):
		return "invalid_id"
	default:
		return "update_failed"
	}
}
