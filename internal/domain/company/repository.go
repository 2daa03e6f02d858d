package company

import (
	"context"

	"github.com/cajachica/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Repository defines persistence operations for companies
type Repository interface {
	// FindByID finds a company by ID; returns nil when not found
	FindByID(ctx context.Context, id uuid.UUID) (*Company, error)

	// FindAll finds companies with filtering and pagination
	FindAll(ctx context.Context, filter shared.Filter) ([]Company, error)

	// FindActive finds all active companies
	FindActive(ctx context.Context) ([]Company, error)

	// Save creates or updates a company
	Save(ctx context.Context, c *Company) error

	// SaveWithLock saves with optimistic locking (version check)
	SaveWithLock(ctx context.Context, c *Company) error

	// Delete removes a company
	Delete(ctx context.Context, id uuid.UUID) error

	// Count counts companies matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// CommitReportSequence durably advances the company's report sequence to
	// number, but only if the current durable value is still number-1. When
	// another session already advanced it, shared.ErrSequenceConflict is
	// returned and the sequence is left untouched. This is the only way the
	// sequence may be mutated.
	CommitReportSequence(ctx context.Context, id uuid.UUID, number int) error
}
