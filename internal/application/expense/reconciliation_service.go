package expense

import (
	"context"
	"fmt"
	"time"

	"github.com/cajachica/backend/internal/domain/company"
	"github.com/cajachica/backend/internal/domain/expense"
	"github.com/cajachica/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// ReconciliationService handles reconciliation use cases
type ReconciliationService struct {
	reconciliationRepo expense.ReconciliationRepository
	disbursementRepo   expense.DisbursementRepository
	companyRepo        company.Repository
	eventBus           shared.EventPublisher
}

// NewReconciliationService creates a new ReconciliationService
func NewReconciliationService(
	reconciliationRepo expense.ReconciliationRepository,
	disbursementRepo expense.DisbursementRepository,
	companyRepo company.Repository,
	eventBus shared.EventPublisher,
) *ReconciliationService {
	return &ReconciliationService{
		reconciliationRepo: reconciliationRepo,
		disbursementRepo:   disbursementRepo,
		companyRepo:        companyRepo,
		eventBus:           eventBus,
	}
}

// CreateReconciliationRequest represents a request to register a reconciliation
type CreateReconciliationRequest struct {
	CompanyID           uuid.UUID   `json:"company_id" binding:"required"`
	Date                time.Time   `json:"date" binding:"required"`
	Vendor              string      `json:"vendor" binding:"required"`
	VendorTaxID         string      `json:"vendor_tax_id" binding:"omitempty,ruc"`
	DocumentType        string      `json:"document_type"`
	DocumentNumber      string      `json:"document_number" binding:"required"`
	Amount              string      `json:"amount" binding:"required"`
	Currency            string      `json:"currency"`
	Category            string      `json:"category"`
	RequisitionNumber   string      `json:"requisition_number"`
	LinkedDisbursements []uuid.UUID `json:"linked_disbursements"`
	ReceiptImage        string      `json:"receipt_image"`
}

// UpdateReconciliationRequest represents a request to update a reconciliation
type UpdateReconciliationRequest struct {
	Date                time.Time   `json:"date" binding:"required"`
	Vendor              string      `json:"vendor" binding:"required"`
	VendorTaxID         string      `json:"vendor_tax_id" binding:"omitempty,ruc"`
	DocumentType        string      `json:"document_type"`
	DocumentNumber      string      `json:"document_number" binding:"required"`
	Amount              string      `json:"amount" binding:"required"`
	Currency            string      `json:"currency"`
	Category            string      `json:"category"`
	RequisitionNumber   string      `json:"requisition_number"`
	LinkedDisbursements []uuid.UUID `json:"linked_disbursements"`
	ReceiptImage        string      `json:"receipt_image"`
}

func parseDocumentType(docType string) (expense.DocumentType, error) {
	if docType == "" {
		return expense.DefaultDocumentType, nil
	}
	dt := expense.DocumentType(docType)
	if !dt.IsValid() {
		return "", shared.NewDomainError("VALIDATION_ERROR", "Document type is not valid")
	}
	return dt, nil
}

// CreateReconciliation registers a new expense receipt for an active company
func (s *ReconciliationService) CreateReconciliation(ctx context.Context, req CreateReconciliationRequest) (*expense.Reconciliation, error) {
	c, err := s.companyRepo.FindByID(ctx, req.CompanyID)
	if err != nil {
		return nil, fmt.Errorf("failed to find company: %w", err)
	}
	if c == nil {
		return nil, shared.ErrNotFound
	}
	if !c.IsActive() {
		return nil, shared.NewDomainError("PRECONDITION_FAILED", "Company is inactive")
	}

	amount, err := parseAmount(req.Amount, req.Currency)
	if err != nil {
		return nil, err
	}
	docType, err := parseDocumentType(req.DocumentType)
	if err != nil {
		return nil, err
	}

	r, err := expense.NewReconciliation(req.CompanyID, req.Date, req.Vendor, docType, req.DocumentNumber, amount)
	if err != nil {
		return nil, err
	}

	if err := r.SetVendorTaxID(req.VendorTaxID); err != nil {
		return nil, err
	}
	r.SetCategory(req.Category)
	r.SetRequisitionNumber(req.RequisitionNumber)
	if req.ReceiptImage != "" {
		r.SetReceiptImage(req.ReceiptImage)
	}
	if len(req.LinkedDisbursements) > 0 {
		if err := s.verifyLinks(ctx, req.CompanyID, req.LinkedDisbursements); err != nil {
			return nil, err
		}
		if err := r.LinkDisbursements(req.LinkedDisbursements); err != nil {
			return nil, err
		}
	}

	if err := s.reconciliationRepo.Save(ctx, r); err != nil {
		return nil, fmt.Errorf("failed to save reconciliation: %w", err)
	}

	if s.eventBus != nil {
		_ = s.eventBus.Publish(ctx, r.GetDomainEvents()...)
		r.ClearDomainEvents()
	}
	return r, nil
}

// GetReconciliation returns a reconciliation by id
func (s *ReconciliationService) GetReconciliation(ctx context.Context, id uuid.UUID) (*expense.Reconciliation, error) {
	r, err := s.reconciliationRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to find reconciliation: %w", err)
	}
	if r == nil {
		return nil, shared.ErrNotFound
	}
	return r, nil
}

// ListReconciliations returns reconciliations matching the filter, newest first
func (s *ReconciliationService) ListReconciliations(ctx context.Context, filter expense.RecordFilter) ([]expense.Reconciliation, int64, error) {
	records, err := s.reconciliationRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list reconciliations: %w", err)
	}
	total, err := s.reconciliationRepo.Count(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count reconciliations: %w", err)
	}
	return records, total, nil
}

// UpdateReconciliation updates an existing reconciliation
func (s *ReconciliationService) UpdateReconciliation(ctx context.Context, id uuid.UUID, req UpdateReconciliationRequest) (*expense.Reconciliation, error) {
	r, err := s.GetReconciliation(ctx, id)
	if err != nil {
		return nil, err
	}

	amount, err := parseAmount(req.Amount, req.Currency)
	if err != nil {
		return nil, err
	}
	docType, err := parseDocumentType(req.DocumentType)
	if err != nil {
		return nil, err
	}

	if err := r.Update(req.Date, req.Vendor, docType, req.DocumentNumber, amount, req.Category); err != nil {
		return nil, err
	}
	if err := r.SetVendorTaxID(req.VendorTaxID); err != nil {
		return nil, err
	}
	r.SetRequisitionNumber(req.RequisitionNumber)
	if req.ReceiptImage != "" {
		r.SetReceiptImage(req.ReceiptImage)
	}
	if err := s.verifyLinks(ctx, r.CompanyID, req.LinkedDisbursements); err != nil {
		return nil, err
	}
	if err := r.LinkDisbursements(req.LinkedDisbursements); err != nil {
		return nil, err
	}

	if err := s.reconciliationRepo.SaveWithLock(ctx, r); err != nil {
		return nil, fmt.Errorf("failed to update reconciliation: %w", err)
	}
	return r, nil
}

// DeleteReconciliation removes a reconciliation
func (s *ReconciliationService) DeleteReconciliation(ctx context.Context, id uuid.UUID) error {
	r, err := s.GetReconciliation(ctx, id)
	if err != nil {
		return err
	}
	if err := s.reconciliationRepo.Delete(ctx, r.GetID()); err != nil {
		return fmt.Errorf("failed to delete reconciliation: %w", err)
	}
	return nil
}

// verifyLinks checks that every linked disbursement exists and belongs to
// the same company as the receipt
func (s *ReconciliationService) verifyLinks(ctx context.Context, companyID uuid.UUID, ids []uuid.UUID) error {
	for _, id := range ids {
		d, err := s.disbursementRepo.FindByID(ctx, id)
		if err != nil {
			return fmt.Errorf("failed to verify disbursement link: %w", err)
		}
		if d == nil {
			return shared.NewDomainError("VALIDATION_ERROR", "Linked disbursement does not exist")
		}
		if d.CompanyID != companyID {
			return shared.NewDomainError("VALIDATION_ERROR", "Linked disbursement belongs to another company")
		}
	}
	return nil
}
