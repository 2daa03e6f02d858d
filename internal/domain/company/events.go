package company

import (
	"github.com/cajachica/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// AggregateTypeCompany is the aggregate type for company events
const AggregateTypeCompany = "Company"

// Event type constants
const (
	EventTypeCompanyCreated          = "CompanyCreated"
	EventTypeReportSequenceCommitted = "ReportSequenceCommitted"
)

// CompanyCreatedEvent is published when a new company is registered
type CompanyCreatedEvent struct {
	shared.BaseDomainEvent
	CompanyID uuid.UUID `json:"company_id"`
	Name      string    `json:"name"`
}

// NewCompanyCreatedEvent creates a new CompanyCreatedEvent
func NewCompanyCreatedEvent(c *Company) *CompanyCreatedEvent {
	return &CompanyCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeCompanyCreated, AggregateTypeCompany, c.ID),
		CompanyID:       c.ID,
		Name:            c.Name,
	}
}

// ReportSequenceCommittedEvent is published when a report correlative is
// durably committed after a confirmed print.
type ReportSequenceCommittedEvent struct {
	shared.BaseDomainEvent
	CompanyID uuid.UUID `json:"company_id"`
	Number    int       `json:"number"`
	Label     string    `json:"label"`
}

// NewReportSequenceCommittedEvent creates a new ReportSequenceCommittedEvent
func NewReportSequenceCommittedEvent(companyID uuid.UUID, correlative Correlative) *ReportSequenceCommittedEvent {
	return &ReportSequenceCommittedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeReportSequenceCommitted, AggregateTypeCompany, companyID),
		CompanyID:       companyID,
		Number:          correlative.Number,
		Label:           correlative.Label,
	}
}
