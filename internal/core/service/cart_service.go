package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/summercamp/camp-api/internal/core/domain"
	"github.com/summercamp/camp-api/internal/core/ports"
)

type CartService struct {
	repo   ports.CartRepository
	logger zerolog.Logger
}

func NewCartService(repo ports.CartRepository, logger zerolog.Logger) *CartService {
	return &CartService{repo: repo, logger: logger}
}

func (s *CartService) List(ctx context.Context, email string) ([]domain.CartItem, error) {
	return s.repo.ListByEmail(ctx, email)
}

func (s *CartService) Add(ctx context.Context, item domain.CartItem) (domain.InsertResult, error) {
	if item.Email == "" {
		return domain.InsertResult{}, domain.ErrInvalidEmail
	}
	if item.ClassID == "" {
		return domain.InsertResult{}, fmt.Errorf("%w: class id is required", domain.ErrInvalidClass)
	}
	item.ID = ""

	res, err := s.repo.Add(ctx, &item)
	if err != nil {
		return domain.InsertResult{}, err
	}
	s.logger.Debug().Str("email", item.Email).Str("class_id", item.ClassID).Msg("cart item added")
	return res, nil
}

// Remove deletes a cart item owned by owner. Deleting someone else's item
// matches nothing and reports zero deletions.
func (s *CartService) Remove(ctx context.Context, id, owner string) (domain.DeleteResult, error) {
	return s.repo.Delete(ctx, id, owner)
}
