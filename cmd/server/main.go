package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/sethvargo/go-retry"

	_ "github.com/summercamp/camp-api/docs" // swagger docs

	"github.com/summercamp/camp-api/internal/api"
	"github.com/summercamp/camp-api/internal/api/handler"
	"github.com/summercamp/camp-api/internal/core/service"
	mongostore "github.com/summercamp/camp-api/internal/infrastructure/db/mongo"
	redisstore "github.com/summercamp/camp-api/internal/infrastructure/db/redis"
	"github.com/summercamp/camp-api/internal/infrastructure/payment"
	"github.com/summercamp/camp-api/internal/infrastructure/queue"
	"github.com/summercamp/camp-api/internal/pkg/config"
	"github.com/summercamp/camp-api/pkg/logger"
)

const (
	shutdownTimeout = 10 * time.Second
	connectRetries  = 5
)

// @title Summer Camp API
// @version 1.0
// @description Course registration backend: classes, carts, payments and role-gated administration.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		logger.Init(logger.Options{})
		fallback := logger.Get()
		fallback.Fatal().Err(err).Msg("load configuration")
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "camp-api",
	})

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	var store *mongostore.Store
	err := connectWithRetry(ctx, log, "mongodb", func(ctx context.Context) (err error) {
		store, err = mongostore.Connect(ctx, mongostore.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
		return err
	})
	if err != nil {
		return err
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := store.Close(closeCtx); err != nil {
			log.Warn().Err(err).Msg("mongo disconnect")
		}
	}()
	if err := store.EnsureIndexes(ctx); err != nil {
		return err
	}

	var rdb *redis.Client
	err = connectWithRetry(ctx, log, "redis", func(ctx context.Context) (err error) {
		rdb, err = redisstore.Connect(ctx, redisstore.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		return err
	})
	if err != nil {
		return err
	}
	defer rdb.Close()

	if cfg.Payment.StripeSecretKey == "" {
		log.Warn().Msg("STRIPE_SECRET_KEY not set, payment intents will fail")
	}

	// --- Repositories ---
	users := mongostore.NewUserRepository(store.DB)
	classes := mongostore.NewClassRepository(store.DB)
	instructors := mongostore.NewInstructorRepository(store.DB)
	carts := mongostore.NewCartRepository(store.DB)
	payments := mongostore.NewPaymentRepository(store.DB)

	// --- Enrollment workers ---
	workerCtx, cancelWorkers := context.WithCancel(context.Background())
	dispatcher := queue.NewDispatcher(
		cfg.Enrollment.Workers,
		service.NewEnrollmentService(classes, logger.Component("enrollment")),
		logger.Component("dispatcher"),
	)
	dispatcher.Start(workerCtx)
	defer func() {
		cancelWorkers()
		dispatcher.Wait()
	}()

	// --- Services ---
	paymentService := service.NewPaymentService(service.PaymentDeps{
		Payments:    payments,
		Carts:       carts,
		Gateway:     payment.NewStripeGateway(cfg.Payment.StripeSecretKey, nil),
		Guard:       redisstore.NewReplayGuard(rdb),
		Enrollments: dispatcher,
		Currency:    cfg.Payment.Currency,
	}, logger.Component("payments"))

	userService := service.NewUserService(users, logger.Component("users"))
	if err := userService.SeedAdmins(ctx, cfg.Auth.AdminEmails); err != nil {
		return err
	}

	e := api.NewRouter(api.Deps{
		Tokens:   service.NewTokenService(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL),
		Users:    userService,
		Classes:  service.NewClassService(classes, instructors, logger.Component("classes")),
		Carts:    service.NewCartService(carts, logger.Component("carts")),
		Payments: paymentService,
		Checks: map[string]handler.Check{
			"mongodb": store.Ping,
			"redis":   func(ctx context.Context) error { return rdb.Ping(ctx).Err() },
		},
		Logger: logger.Component("http"),
	})

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Msg("summer camp is running")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}

// connectWithRetry retries dial with exponential backoff so the API can start
// before its dependencies finish booting.
func connectWithRetry(ctx context.Context, log zerolog.Logger, name string, dial func(context.Context) error) error {
	backoff := retry.WithMaxRetries(connectRetries, retry.NewExponential(500*time.Millisecond))
	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		if err := dial(ctx); err != nil {
			log.Warn().Err(err).Str("dependency", name).Msg("connect failed, retrying")
			return retry.RetryableError(err)
		}
		return nil
	})
}
