package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/summercamp/camp-api/internal/core/domain"
	"github.com/summercamp/camp-api/internal/core/ports"
)

// UserService implements registration, role checks and promotion.
type UserService struct {
	repo   ports.UserRepository
	logger zerolog.Logger
}

func NewUserService(repo ports.UserRepository, logger zerolog.Logger) *UserService {
	return &UserService{repo: repo, logger: logger}
}

// Register stores a new user with no role. A second registration for the
// same email reports AlreadyExists and leaves the existing record untouched.
func (s *UserService) Register(ctx context.Context, in ports.RegisterInput) (*ports.RegisterResult, error) {
	email := strings.TrimSpace(in.Email)
	if email == "" {
		return nil, domain.ErrInvalidEmail
	}

	profile := make(map[string]any, len(in.Profile))
	for k, v := range in.Profile {
		switch k {
		case "_id", "id", "email", "name", "photo", "role", "createdAt":
			continue
		}
		profile[k] = v
	}

	user := &domain.User{
		Email:     email,
		Name:      in.Name,
		Photo:     in.Photo,
		Role:      domain.RoleNone,
		Profile:   profile,
		CreatedAt: time.Now().UTC(),
	}

	res, inserted, err := s.repo.InsertIfAbsent(ctx, user)
	if err != nil {
		s.logger.Error().Err(err).Str("email", email).Msg("failed to register user")
		return nil, err
	}
	if !inserted {
		s.logger.Debug().Str("email", email).Msg("user already registered")
		return &ports.RegisterResult{AlreadyExists: true}, nil
	}

	s.logger.Info().Str("email", email).Str("user_id", res.InsertedID).Msg("user registered")
	return &ports.RegisterResult{Insert: res}, nil
}

func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	return s.repo.List(ctx)
}

// HasRole looks the user up on every call; an unknown email holds no role.
func (s *UserService) HasRole(ctx context.Context, email string, role domain.Role) (bool, error) {
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return false, nil
		}
		return false, err
	}
	return user.HasRole(role), nil
}

// Promote overwrites the role of user id. Only admin and instructor are
// valid targets.
func (s *UserService) Promote(ctx context.Context, id string, role domain.Role) (domain.UpdateResult, error) {
	if role != domain.RoleAdmin && role != domain.RoleInstructor {
		return domain.UpdateResult{}, domain.ErrInvalidRole
	}

	res, err := s.repo.SetRole(ctx, id, role)
	if err != nil {
		return domain.UpdateResult{}, err
	}

	s.logger.Info().Str("user_id", id).Str("role", string(role)).Int64("matched", res.MatchedCount).Msg("user promoted")
	return res, nil
}

// SeedAdmins grants the admin role to every email, registering the ones not
// seen yet. Promotion routes require an admin, so the first one comes from
// here.
func (s *UserService) SeedAdmins(ctx context.Context, emails []string) error {
	for _, email := range emails {
		user, err := s.repo.FindByEmail(ctx, email)
		switch {
		case errors.Is(err, domain.ErrUserNotFound):
			if _, _, err := s.repo.InsertIfAbsent(ctx, &domain.User{
				Email:     email,
				Role:      domain.RoleAdmin,
				CreatedAt: time.Now().UTC(),
			}); err != nil {
				return fmt.Errorf("seed admin %s: %w", email, err)
			}
			s.logger.Info().Str("email", email).Msg("admin seeded")
		case err != nil:
			return fmt.Errorf("seed admin %s: %w", email, err)
		case user.Role != domain.RoleAdmin:
			if _, err := s.repo.SetRole(ctx, user.ID, domain.RoleAdmin); err != nil {
				return fmt.Errorf("seed admin %s: %w", email, err)
			}
			s.logger.Info().Str("email", email).Str("user_id", user.ID).Msg("existing user granted admin")
		}
	}
	return nil
}
