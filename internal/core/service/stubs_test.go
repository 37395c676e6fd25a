package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/summercamp/camp-api/internal/core/domain"
	"github.com/summercamp/camp-api/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory stubs
// ---------------------------------------------------------------------------

var discardLogger = zerolog.Nop()

type stubUserRepo struct {
	users     map[string]*domain.User // by email
	nextID    int
	insertErr error
	findErr   error
	findCalls int
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	r.findCalls++
	if r.findErr != nil {
		return nil, r.findErr
	}
	u, ok := r.users[email]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *stubUserRepo) InsertIfAbsent(_ context.Context, user *domain.User) (domain.InsertResult, bool, error) {
	if r.insertErr != nil {
		return domain.InsertResult{}, false, r.insertErr
	}
	if _, exists := r.users[user.Email]; exists {
		return domain.InsertResult{}, false, nil
	}
	r.nextID++
	clone := *user
	clone.ID = fmt.Sprintf("user-%d", r.nextID)
	r.users[user.Email] = &clone
	return domain.InsertResult{Acknowledged: true, InsertedID: clone.ID}, true, nil
}

func (r *stubUserRepo) SetRole(_ context.Context, id string, role domain.Role) (domain.UpdateResult, error) {
	for _, u := range r.users {
		if u.ID == id {
			modified := int64(0)
			if u.Role != role {
				modified = 1
			}
			u.Role = role
			return domain.UpdateResult{Acknowledged: true, MatchedCount: 1, ModifiedCount: modified}, nil
		}
	}
	return domain.UpdateResult{Acknowledged: true}, nil
}

func (r *stubUserRepo) List(_ context.Context) ([]domain.User, error) {
	out := make([]domain.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, *u)
	}
	return out, nil
}

type stubClassRepo struct {
	classes   map[string]*domain.Class
	created   []*domain.Class
	createErr error
	mu        sync.Mutex
}

func newStubClassRepo() *stubClassRepo {
	return &stubClassRepo{classes: make(map[string]*domain.Class)}
}

func (r *stubClassRepo) List(_ context.Context, f ports.ClassFilter) ([]domain.Class, error) {
	var out []domain.Class
	for _, c := range r.classes {
		if f.InstructorEmail != "" && c.InstructorEmail != f.InstructorEmail {
			continue
		}
		if f.Status != "" && c.Status != f.Status {
			continue
		}
		out = append(out, *c)
	}
	return out, nil
}

func (r *stubClassRepo) Create(_ context.Context, c *domain.Class) (domain.InsertResult, error) {
	if r.createErr != nil {
		return domain.InsertResult{}, r.createErr
	}
	clone := *c
	clone.ID = fmt.Sprintf("class-%d", len(r.created)+1)
	r.created = append(r.created, &clone)
	r.classes[clone.ID] = &clone
	return domain.InsertResult{Acknowledged: true, InsertedID: clone.ID}, nil
}

func (r *stubClassRepo) Enroll(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.classes[id]
	if !ok {
		return domain.ErrNotFound
	}
	if c.AvailableSeats <= 0 {
		return domain.ErrClassFull
	}
	c.AvailableSeats--
	c.Enrolled++
	return nil
}

type stubInstructorRepo struct {
	instructors []domain.Instructor
}

func (r *stubInstructorRepo) List(_ context.Context) ([]domain.Instructor, error) {
	return r.instructors, nil
}

type stubCartRepo struct {
	items   map[string]*domain.CartItem
	nextID  int
	delErr  error
	deleted []string
}

func newStubCartRepo() *stubCartRepo {
	return &stubCartRepo{items: make(map[string]*domain.CartItem)}
}

func (r *stubCartRepo) ListByEmail(_ context.Context, email string) ([]domain.CartItem, error) {
	var out []domain.CartItem
	for _, it := range r.items {
		if it.Email == email {
			out = append(out, *it)
		}
	}
	return out, nil
}

func (r *stubCartRepo) Add(_ context.Context, item *domain.CartItem) (domain.InsertResult, error) {
	r.nextID++
	clone := *item
	clone.ID = fmt.Sprintf("cart-%d", r.nextID)
	r.items[clone.ID] = &clone
	return domain.InsertResult{Acknowledged: true, InsertedID: clone.ID}, nil
}

func (r *stubCartRepo) Delete(ctx context.Context, id, owner string) (domain.DeleteResult, error) {
	return r.DeleteMany(ctx, []string{id}, owner)
}

func (r *stubCartRepo) DeleteMany(_ context.Context, ids []string, owner string) (domain.DeleteResult, error) {
	if r.delErr != nil {
		return domain.DeleteResult{}, r.delErr
	}
	var n int64
	for _, id := range ids {
		if it, ok := r.items[id]; ok && it.Email == owner {
			delete(r.items, id)
			r.deleted = append(r.deleted, id)
			n++
		}
	}
	return domain.DeleteResult{Acknowledged: true, DeletedCount: n}, nil
}

type stubPaymentRepo struct {
	payments  []domain.Payment
	insertErr error
}

func (r *stubPaymentRepo) Insert(_ context.Context, p *domain.Payment) (domain.InsertResult, error) {
	if r.insertErr != nil {
		return domain.InsertResult{}, r.insertErr
	}
	clone := *p
	clone.ID = fmt.Sprintf("payment-%d", len(r.payments)+1)
	r.payments = append(r.payments, clone)
	return domain.InsertResult{Acknowledged: true, InsertedID: clone.ID}, nil
}

func (r *stubPaymentRepo) ListByEmail(_ context.Context, email string) ([]domain.Payment, error) {
	var out []domain.Payment
	for _, p := range r.payments {
		if p.Email == email {
			out = append(out, p)
		}
	}
	return out, nil
}

type stubGateway struct {
	calls  []ports.IntentRequest
	secret string
	err    error
}

func (g *stubGateway) CreateIntent(_ context.Context, req ports.IntentRequest) (string, error) {
	g.calls = append(g.calls, req)
	if g.err != nil {
		return "", g.err
	}
	return g.secret, nil
}

type stubGuard struct {
	seen     map[string]bool
	claimErr error
	released []string
}

func newStubGuard() *stubGuard {
	return &stubGuard{seen: make(map[string]bool)}
}

func (g *stubGuard) Claim(_ context.Context, id string) (bool, error) {
	if g.claimErr != nil {
		return false, g.claimErr
	}
	if g.seen[id] {
		return false, nil
	}
	g.seen[id] = true
	return true, nil
}

func (g *stubGuard) Release(_ context.Context, id string) error {
	delete(g.seen, id)
	g.released = append(g.released, id)
	return nil
}

type stubQueue struct {
	queued []ports.EnrollmentInput
	err    error
}

func (q *stubQueue) Enqueue(_ context.Context, in ports.EnrollmentInput) error {
	if q.err != nil {
		return q.err
	}
	q.queued = append(q.queued, in)
	return nil
}

func (q *stubQueue) EnqueueBatch(ctx context.Context, in []ports.EnrollmentInput) error {
	for _, e := range in {
		if err := q.Enqueue(ctx, e); err != nil {
			return err
		}
	}
	return nil
}

var errStore = errors.New("store unavailable")
