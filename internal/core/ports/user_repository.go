package ports

import (
	"context"

	"github.com/summercamp/camp-api/internal/core/domain"
)

// UserRepository is the role store consulted by the authorization gate.
type UserRepository interface {
	// FindByEmail returns domain.ErrUserNotFound when no record exists.
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	// InsertIfAbsent creates the record unless one already exists for its
	// email. inserted is false when the email was taken.
	InsertIfAbsent(ctx context.Context, user *domain.User) (result domain.InsertResult, inserted bool, err error)
	// SetRole overwrites the role of the user with the given id.
	SetRole(ctx context.Context, id string, role domain.Role) (domain.UpdateResult, error)
	List(ctx context.Context) ([]domain.User, error)
}
