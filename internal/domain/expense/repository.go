package expense

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RecordFilter defines filtering options shared by disbursement and
// reconciliation queries. Date bounds are inclusive on both ends.
type RecordFilter struct {
	CompanyID         *uuid.UUID
	FromDate          *time.Time
	ToDate            *time.Time
	RequisitionNumber string
	Page              int
	PageSize          int
}

// DisbursementRepository defines persistence operations for disbursements
type DisbursementRepository interface {
	// FindByID finds a disbursement by ID; returns nil when not found
	FindByID(ctx context.Context, id uuid.UUID) (*Disbursement, error)

	// FindAll finds disbursements matching the filter, newest date first
	FindAll(ctx context.Context, filter RecordFilter) ([]Disbursement, error)

	// FindByRequisition finds disbursements carrying the requisition number
	FindByRequisition(ctx context.Context, requisitionNumber string) ([]Disbursement, error)

	// Save creates or updates a disbursement
	Save(ctx context.Context, d *Disbursement) error

	// SaveWithLock saves with optimistic locking (version check)
	SaveWithLock(ctx context.Context, d *Disbursement) error

	// Delete removes a disbursement
	Delete(ctx context.Context, id uuid.UUID) error

	// Count counts disbursements matching the filter
	Count(ctx context.Context, filter RecordFilter) (int64, error)

	// SumByCompany totals disbursed amounts for a company
	SumByCompany(ctx context.Context, companyID uuid.UUID) (decimal.Decimal, error)
}

// ReconciliationRepository defines persistence operations for reconciliations
type ReconciliationRepository interface {
	// FindByID finds a reconciliation by ID; returns nil when not found
	FindByID(ctx context.Context, id uuid.UUID) (*Reconciliation, error)

	// FindAll finds reconciliations matching the filter, newest date first
	FindAll(ctx context.Context, filter RecordFilter) ([]Reconciliation, error)

	// FindByRequisition finds reconciliations carrying the requisition number
	FindByRequisition(ctx context.Context, requisitionNumber string) ([]Reconciliation, error)

	// Save creates or updates a reconciliation
	Save(ctx context.Context, r *Reconciliation) error

	// SaveWithLock saves with optimistic locking (version check)
	SaveWithLock(ctx context.Context, r *Reconciliation) error

	// Delete removes a reconciliation
	Delete(ctx context.Context, id uuid.UUID) error

	// Count counts reconciliations matching the filter
	Count(ctx context.Context, filter RecordFilter) (int64, error)

	// SumByCompany totals reconciled amounts for a company
	SumByCompany(ctx context.Context, companyID uuid.UUID) (decimal.Decimal, error)
}
