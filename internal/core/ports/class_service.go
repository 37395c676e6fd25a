package ports

import (
	"context"

	"github.com/summercamp/camp-api/internal/core/domain"
)

// CreateClassInput is the instructor-supplied class payload. InstructorEmail
// always comes from the authenticated caller.
type CreateClassInput struct {
	Name            string
	Image           string
	InstructorName  string
	InstructorEmail string
	AvailableSeats  int
	Price           float64
}

type ClassService interface {
	ListClasses(ctx context.Context, filter ClassFilter) ([]domain.Class, error)
	CreateClass(ctx context.Context, in CreateClassInput) (domain.InsertResult, error)
	ListInstructors(ctx context.Context) ([]domain.Instructor, error)
}
