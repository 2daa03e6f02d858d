package report

import (
	"context"
	"fmt"
	"time"

	"github.com/cajachica/backend/internal/domain/company"
	"github.com/cajachica/backend/internal/domain/expense"
	"github.com/cajachica/backend/internal/domain/report"
	"github.com/cajachica/backend/internal/domain/shared"
	"github.com/cajachica/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
)

// Assembler builds immutable report datasets from the company record and
// its filtered disbursement and reconciliation records.
type Assembler struct {
	companyRepo        company.Repository
	disbursementRepo   expense.DisbursementRepository
	reconciliationRepo expense.ReconciliationRepository
	now                func() time.Time
}

// NewAssembler creates a new Assembler
func NewAssembler(
	companyRepo company.Repository,
	disbursementRepo expense.DisbursementRepository,
	reconciliationRepo expense.ReconciliationRepository,
) *Assembler {
	return &Assembler{
		companyRepo:        companyRepo,
		disbursementRepo:   disbursementRepo,
		reconciliationRepo: reconciliationRepo,
		now:                time.Now,
	}
}

// Selector chooses the records for a report: a company with an optional
// inclusive date range, or a requisition number shared across records.
// Exactly one of CompanyID or RequisitionNumber must be set.
type Selector struct {
	CompanyID         *uuid.UUID `json:"company_id,omitempty"`
	FromDate          *time.Time `json:"from_date,omitempty"`
	ToDate            *time.Time `json:"to_date,omitempty"`
	RequisitionNumber string     `json:"requisition_number,omitempty"`
}

// Validate checks that the selector identifies exactly one record set
func (sel Selector) Validate() error {
	hasCompany := sel.CompanyID != nil
	hasRequisition := sel.RequisitionNumber != ""
	if hasCompany == hasRequisition {
		return shared.NewDomainError("VALIDATION_ERROR", "Selector requires a company or a requisition number, not both")
	}
	if hasRequisition && (sel.FromDate != nil || sel.ToDate != nil) {
		return shared.NewDomainError("VALIDATION_ERROR", "Requisition selector does not take a date range")
	}
	if sel.FromDate != nil && sel.ToDate != nil && sel.ToDate.Before(*sel.FromDate) {
		return shared.NewDomainError("VALIDATION_ERROR", "Date range end precedes its start")
	}
	return nil
}

// Assemble gathers the dataset for the selector. The generation timestamp is
// fixed here, so every later rendering of this dataset shows the same
// header regardless of when it happens.
func (a *Assembler) Assemble(ctx context.Context, sel Selector) (*report.ReportDataset, error) {
	if err := sel.Validate(); err != nil {
		return nil, err
	}

	var (
		disbursements   []expense.Disbursement
		reconciliations []expense.Reconciliation
		companyID       uuid.UUID
		err             error
	)

	if sel.RequisitionNumber != "" {
		disbursements, err = a.disbursementRepo.FindByRequisition(ctx, sel.RequisitionNumber)
		if err != nil {
			return nil, fmt.Errorf("failed to load disbursements: %w", err)
		}
		reconciliations, err = a.reconciliationRepo.FindByRequisition(ctx, sel.RequisitionNumber)
		if err != nil {
			return nil, fmt.Errorf("failed to load reconciliations: %w", err)
		}
		companyID, err = soleCompany(disbursements, reconciliations)
		if err != nil {
			return nil, err
		}
	} else {
		companyID = *sel.CompanyID
		filter := expense.RecordFilter{
			CompanyID: sel.CompanyID,
			FromDate:  sel.FromDate,
			ToDate:    sel.ToDate,
		}
		disbursements, err = a.disbursementRepo.FindAll(ctx, filter)
		if err != nil {
			return nil, fmt.Errorf("failed to load disbursements: %w", err)
		}
		reconciliations, err = a.reconciliationRepo.FindAll(ctx, filter)
		if err != nil {
			return nil, fmt.Errorf("failed to load reconciliations: %w", err)
		}
	}

	c, err := a.companyRepo.FindByID(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to load company: %w", err)
	}
	if c == nil {
		return nil, shared.ErrNotFound
	}

	dataset := &report.ReportDataset{
		Company: report.CompanySnapshot{
			ID:             c.GetID(),
			Name:           c.Name,
			ReportPrefix:   c.ReportPrefix,
			ReportSequence: c.ReportSequence,
		},
		Filter: report.DatasetFilter{
			FromDate:          sel.FromDate,
			ToDate:            sel.ToDate,
			RequisitionNumber: sel.RequisitionNumber,
		},
		Balance:     expense.CalculateBalance(disbursements, reconciliations),
		Currency:    string(valueobject.PEN),
		GeneratedAt: a.now(),
	}

	dataset.Disbursements = make([]report.DisbursementRow, 0, len(disbursements))
	for _, d := range disbursements {
		dataset.Disbursements = append(dataset.Disbursements, report.DisbursementRow{
			ID:            d.GetID(),
			Date:          d.Date,
			Responsible:   d.Responsible,
			PaymentMethod: d.PaymentMethod.DisplayName(),
			Description:   d.Description,
			Amount:        d.Amount,
		})
	}

	dataset.Reconciliations = make([]report.ReconciliationRow, 0, len(reconciliations))
	for _, r := range reconciliations {
		dataset.Reconciliations = append(dataset.Reconciliations, report.ReconciliationRow{
			ID:            r.GetID(),
			Date:          r.Date,
			Vendor:        r.Vendor,
			VendorTaxID:   r.VendorTaxID,
			DocumentLabel: r.DocumentLabel(),
			Category:      r.Category,
			Amount:        r.Amount,
		})
	}

	return dataset, nil
}

// soleCompany resolves the single company a requisition's records belong to.
// Requisition numbers are treated as globally unique even though records of
// different companies could in principle carry the same string. A requisition
// whose records span more than one company has no single header to render
// under, so it is rejected instead of picking an arbitrary company.
func soleCompany(ds []expense.Disbursement, rs []expense.Reconciliation) (uuid.UUID, error) {
	var id uuid.UUID
	for _, d := range ds {
		if id == uuid.Nil {
			id = d.CompanyID
		} else if id != d.CompanyID {
			return uuid.Nil, shared.NewDomainError("VALIDATION_ERROR", "Requisition spans multiple companies")
		}
	}
	for _, r := range rs {
		if id == uuid.Nil {
			id = r.CompanyID
		} else if id != r.CompanyID {
			return uuid.Nil, shared.NewDomainError("VALIDATION_ERROR", "Requisition spans multiple companies")
		}
	}
	if id == uuid.Nil {
		return uuid.Nil, shared.ErrNotFound
	}
	return id, nil
}
