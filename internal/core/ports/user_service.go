package ports

import (
	"context"

	"github.com/summercamp/camp-api/internal/core/domain"
)

// RegisterInput carries the registration payload. Profile holds any fields
// beyond email, name and photo.
type RegisterInput struct {
	Email   string
	Name    string
	Photo   string
	Profile map[string]any
}

// RegisterResult reports whether a new record was created.
type RegisterResult struct {
	Insert        domain.InsertResult
	AlreadyExists bool
}

type UserService interface {
	Register(ctx context.Context, in RegisterInput) (*RegisterResult, error)
	List(ctx context.Context) ([]domain.User, error)
	HasRole(ctx context.Context, email string, role domain.Role) (bool, error)
	Promote(ctx context.Context, id string, role domain.Role) (domain.UpdateResult, error)
}

// TokenService issues and verifies session tokens.
type TokenService interface {
	Issue(email string) (string, error)
	Verify(token string) (*domain.Principal, error)
}
