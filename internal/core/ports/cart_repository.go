package ports

import (
	"context"

	"github.com/summercamp/camp-api/internal/core/domain"
)

type CartRepository interface {
	ListByEmail(ctx context.Context, email string) ([]domain.CartItem, error)
	Add(ctx context.Context, item *domain.CartItem) (domain.InsertResult, error)
	// Delete removes the item only when it belongs to owner.
	Delete(ctx context.Context, id, owner string) (domain.DeleteResult, error)
	// DeleteMany removes every listed item belonging to owner.
	DeleteMany(ctx context.Context, ids []string, owner string) (domain.DeleteResult, error)
}

type CartService interface {
	List(ctx context.Context, email string) ([]domain.CartItem, error)
	Add(ctx context.Context, item domain.CartItem) (domain.InsertResult, error)
	Remove(ctx context.Context, id, owner string) (domain.DeleteResult, error)
}
