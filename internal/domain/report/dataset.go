package report

import (
	"time"

	"github.com/cajachica/backend/internal/domain/expense"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CompanySnapshot captures the company fields a report depends on, frozen at
// assembly time so later company edits cannot change an assembled report.
type CompanySnapshot struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	ReportPrefix   string    `json:"report_prefix"`
	ReportSequence int       `json:"report_sequence"`
}

// DatasetFilter defines the record selection for a report. Date bounds are
// inclusive on both ends. A requisition number restricts the dataset to the
// records sharing it.
type DatasetFilter struct {
	FromDate          *time.Time `json:"from_date,omitempty"`
	ToDate            *time.Time `json:"to_date,omitempty"`
	RequisitionNumber string     `json:"requisition_number,omitempty"`
}

// DisbursementRow is a single disbursement line in a report dataset
type DisbursementRow struct {
	ID            uuid.UUID       `json:"id"`
	Date          time.Time       `json:"date"`
	Responsible   string          `json:"responsible"`
	PaymentMethod string          `json:"payment_method"`
	Description   string          `json:"description"`
	Amount        decimal.Decimal `json:"amount"`
}

// ReconciliationRow is a single receipt line in a report dataset
type ReconciliationRow struct {
	ID             uuid.UUID       `json:"id"`
	Date           time.Time       `json:"date"`
	Vendor         string          `json:"vendor"`
	VendorTaxID    string          `json:"vendor_tax_id,omitempty"`
	DocumentLabel  string          `json:"document_label"`
	Category       string          `json:"category"`
	Amount         decimal.Decimal `json:"amount"`
}

// ReportDataset is the complete, immutable input to report rendering.
// Everything the rendered document shows comes from here, including the
// generation timestamp, so rendering the same dataset twice produces the
// same document.
type ReportDataset struct {
	Company         CompanySnapshot        `json:"company"`
	Filter          DatasetFilter          `json:"filter"`
	Disbursements   []DisbursementRow      `json:"disbursements"`
	Reconciliations []ReconciliationRow    `json:"reconciliations"`
	Balance         expense.BalanceSummary `json:"balance"`
	Currency        string                 `json:"currency"`
	GeneratedAt     time.Time              `json:"generated_at"`
}

// RecordCount returns the total number of lines in the dataset
func (d *ReportDataset) RecordCount() int {
	return len(d.Disbursements) + len(d.Reconciliations)
}

// IsEmpty reports whether the dataset has no records at all
func (d *ReportDataset) IsEmpty() bool {
	return d.RecordCount() == 0
}
