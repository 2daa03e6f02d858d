package company

import (
	"strings"
	"time"

	"github.com/cajachica/backend/internal/domain/shared"
)

// DefaultReportPrefix is the prefix used for report correlatives when a
// company does not configure its own.
const DefaultReportPrefix = "REP"

// CompanyStatus represents the lifecycle state of a company
type CompanyStatus string

const (
	CompanyStatusActive   CompanyStatus = "ACTIVE"
	CompanyStatusInactive CompanyStatus = "INACTIVE"
)

// IsValid checks if the status is a valid CompanyStatus
func (s CompanyStatus) IsValid() bool {
	switch s {
	case CompanyStatusActive, CompanyStatusInactive:
		return true
	}
	return false
}

// String returns the string representation of CompanyStatus
func (s CompanyStatus) String() string {
	return string(s)
}

// Company represents a company ("empresa") aggregate root. Each company
// tracks petty-cash disbursements and reconciliations and owns the sequence
// counter for its official reconciliation reports.
type Company struct {
	shared.BaseAggregateRoot
	Name   string        `gorm:"type:varchar(200);not null" json:"name"`
	Status CompanyStatus `gorm:"type:varchar(20);not null;default:'ACTIVE'" json:"status"`
	// ReportPrefix + ReportSequence drive the official report correlative.
	// ReportSequence only ever moves forward, and only through the
	// conditional commit in the repository.
	ReportPrefix   string `gorm:"type:varchar(10);not null;default:'REP'" json:"report_prefix"`
	ReportSequence int    `gorm:"not null;default:0" json:"report_sequence"`
}

// TableName returns the table name for GORM
func (Company) TableName() string {
	return "companies"
}

// NewCompany creates a new active company
func NewCompany(name string) (*Company, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Company name is required")
	}
	if len(name) > 200 {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Company name cannot exceed 200 characters")
	}

	c := &Company{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Status:            CompanyStatusActive,
		ReportPrefix:      DefaultReportPrefix,
		ReportSequence:    0,
	}

	c.AddDomainEvent(NewCompanyCreatedEvent(c))

	return c, nil
}

// Rename changes the company display name
func (c *Company) Rename(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("VALIDATION_ERROR", "Company name is required")
	}
	if len(name) > 200 {
		return shared.NewDomainError("VALIDATION_ERROR", "Company name cannot exceed 200 characters")
	}
	c.Name = name
	c.Touch()
	return nil
}

// SetReportPrefix changes the prefix for future report correlatives.
// Already issued numbers keep the label they were printed with.
func (c *Company) SetReportPrefix(prefix string) error {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		prefix = DefaultReportPrefix
	}
	if len(prefix) > 10 {
		return shared.NewDomainError("VALIDATION_ERROR", "Report prefix cannot exceed 10 characters")
	}
	c.ReportPrefix = prefix
	c.Touch()
	return nil
}

// Activate marks the company as active
func (c *Company) Activate() error {
	if c.Status == CompanyStatusActive {
		return shared.NewDomainError("INVALID_STATE", "Company is already active")
	}
	c.Status = CompanyStatusActive
	c.Touch()
	return nil
}

// Deactivate marks the company as inactive; its records are kept
func (c *Company) Deactivate() error {
	if c.Status == CompanyStatusInactive {
		return shared.NewDomainError("INVALID_STATE", "Company is already inactive")
	}
	c.Status = CompanyStatusInactive
	c.Touch()
	return nil
}

// IsActive returns true if the company is active
func (c *Company) IsActive() bool {
	return c.Status == CompanyStatusActive
}

// Touch updates the modification timestamp
func (c *Company) Touch() {
	c.UpdatedAt = time.Now()
}
