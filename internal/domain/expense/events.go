package expense

import (
	"github.com/cajachica/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Aggregate type constants
const (
	AggregateTypeDisbursement   = "Disbursement"
	AggregateTypeReconciliation = "Reconciliation"
)

// Event type constants
const (
	EventTypeDisbursementCreated   = "DisbursementCreated"
	EventTypeReconciliationCreated = "ReconciliationCreated"
)

// DisbursementCreatedEvent is published when cash is advanced
type DisbursementCreatedEvent struct {
	shared.BaseDomainEvent
	DisbursementID uuid.UUID       `json:"disbursement_id"`
	CompanyID      uuid.UUID       `json:"company_id"`
	Responsible    string          `json:"responsible"`
	Amount         decimal.Decimal `json:"amount"`
}

// NewDisbursementCreatedEvent creates a new DisbursementCreatedEvent
func NewDisbursementCreatedEvent(d *Disbursement) *DisbursementCreatedEvent {
	return &DisbursementCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeDisbursementCreated, AggregateTypeDisbursement, d.ID),
		DisbursementID:  d.ID,
		CompanyID:       d.CompanyID,
		Responsible:     d.Responsible,
		Amount:          d.Amount,
	}
}

// ReconciliationCreatedEvent is published when a receipt is submitted
type ReconciliationCreatedEvent struct {
	shared.BaseDomainEvent
	ReconciliationID uuid.UUID       `json:"reconciliation_id"`
	CompanyID        uuid.UUID       `json:"company_id"`
	Vendor           string          `json:"vendor"`
	Amount           decimal.Decimal `json:"amount"`
}

// NewReconciliationCreatedEvent creates a new ReconciliationCreatedEvent
func NewReconciliationCreatedEvent(r *Reconciliation) *ReconciliationCreatedEvent {
	return &ReconciliationCreatedEvent{
		BaseDomainEvent:  shared.NewBaseDomainEvent(EventTypeReconciliationCreated, AggregateTypeReconciliation, r.ID),
		ReconciliationID: r.ID,
		CompanyID:        r.CompanyID,
		Vendor:           r.Vendor,
		Amount:           r.Amount,
	}
}
