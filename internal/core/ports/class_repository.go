package ports

import (
	"context"

	"github.com/summercamp/camp-api/internal/core/domain"
)

// ClassFilter narrows class listings. Empty fields match everything.
type ClassFilter struct {
	InstructorEmail string
	Status          domain.ClassStatus
}

type ClassRepository interface {
	List(ctx context.Context, filter ClassFilter) ([]domain.Class, error)
	Create(ctx context.Context, class *domain.Class) (domain.InsertResult, error)
	// Enroll increments enrolled and decrements availableSeats in one update,
	// only while seats remain. Returns domain.ErrClassFull when none are left
	// and domain.ErrNotFound for an unknown class.
	Enroll(ctx context.Context, classID string) error
}

type InstructorRepository interface {
	List(ctx context.Context) ([]domain.Instructor, error)
}
