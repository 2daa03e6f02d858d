package expense

import (
	"context"
	"fmt"
	"time"

	"github.com/cajachica/backend/internal/domain/company"
	"github.com/cajachica/backend/internal/domain/expense"
	"github.com/cajachica/backend/internal/domain/shared"
	"github.com/cajachica/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
)

// DisbursementService handles disbursement use cases
type DisbursementService struct {
	disbursementRepo expense.DisbursementRepository
	companyRepo      company.Repository
	eventBus         shared.EventPublisher
}

// NewDisbursementService creates a new DisbursementService
func NewDisbursementService(
	disbursementRepo expense.DisbursementRepository,
	companyRepo company.Repository,
	eventBus shared.EventPublisher,
) *DisbursementService {
	return &DisbursementService{
		disbursementRepo: disbursementRepo,
		companyRepo:      companyRepo,
		eventBus:         eventBus,
	}
}

// CreateDisbursementRequest represents a request to register a disbursement
type CreateDisbursementRequest struct {
	CompanyID         uuid.UUID `json:"company_id" binding:"required"`
	Date              time.Time `json:"date" binding:"required"`
	Responsible       string    `json:"responsible" binding:"required"`
	Amount            string    `json:"amount" binding:"required"`
	Currency          string    `json:"currency"`
	PaymentMethod     string    `json:"payment_method"`
	Description       string    `json:"description"`
	RequisitionNumber string    `json:"requisition_number"`
	ReceiptImage      string    `json:"receipt_image"`
}

// UpdateDisbursementRequest represents a request to update a disbursement
type UpdateDisbursementRequest struct {
	Date              time.Time `json:"date" binding:"required"`
	Responsible       string    `json:"responsible" binding:"required"`
	Amount            string    `json:"amount" binding:"required"`
	Currency          string    `json:"currency"`
	PaymentMethod     string    `json:"payment_method"`
	Description       string    `json:"description"`
	RequisitionNumber string    `json:"requisition_number"`
	ReceiptImage      string    `json:"receipt_image"`
}

func parseAmount(amount, currency string) (valueobject.Money, error) {
	cur := valueobject.Currency(currency)
	if currency == "" {
		cur = valueobject.PEN
	}
	m, err := valueobject.NewMoneyFromString(amount, cur)
	if err != nil {
		return valueobject.Money{}, shared.NewDomainError("VALIDATION_ERROR", "Invalid amount")
	}
	return m, nil
}

func parsePaymentMethod(method string) (expense.PaymentMethod, error) {
	if method == "" {
		return expense.DefaultPaymentMethod, nil
	}
	pm := expense.PaymentMethod(method)
	if !pm.IsValid() {
		return "", shared.NewDomainError("VALIDATION_ERROR", "Payment method is not valid")
	}
	return pm, nil
}

// CreateDisbursement registers a new disbursement for an active company
func (s *DisbursementService) CreateDisbursement(ctx context.Context, req CreateDisbursementRequest) (*expense.Disbursement, error) {
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

	d, err := expense.NewDisbursement(req.CompanyID, req.Date, req.Responsible, amount)
	if err != nil {
		return nil, err
	}

	method, err := parsePaymentMethod(req.PaymentMethod)
	if err != nil {
		return nil, err
	}
	if err := d.SetPaymentMethod(method); err != nil {
		return nil, err
	}
	if err := d.SetDescription(req.Description); err != nil {
		return nil, err
	}
	d.SetRequisitionNumber(req.RequisitionNumber)
	if req.ReceiptImage != "" {
		d.SetReceiptImage(req.ReceiptImage)
	}

	if err := s.disbursementRepo.Save(ctx, d); err != nil {
		return nil, fmt.Errorf("failed to save disbursement: %w", err)
	}

	if s.eventBus != nil {
		_ = s.eventBus.Publish(ctx, d.GetDomainEvents()...)
		d.ClearDomainEvents()
	}
	return d, nil
}

// GetDisbursement returns a disbursement by id
func (s *DisbursementService) GetDisbursement(ctx context.Context, id uuid.UUID) (*expense.Disbursement, error) {
	d, err := s.disbursementRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to find disbursement: %w", err)
	}
	if d == nil {
		return nil, shared.ErrNotFound
	}
	return d, nil
}

// ListDisbursements returns disbursements matching the filter, newest first
func (s *DisbursementService) ListDisbursements(ctx context.Context, filter expense.RecordFilter) ([]expense.Disbursement, int64, error) {
	records, err := s.disbursementRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list disbursements: %w", err)
	}
	total, err := s.disbursementRepo.Count(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count disbursements: %w", err)
	}
	return records, total, nil
}

// UpdateDisbursement updates an existing disbursement
func (s *DisbursementService) UpdateDisbursement(ctx context.Context, id uuid.UUID, req UpdateDisbursementRequest) (*expense.Disbursement, error) {
	d, err := s.GetDisbursement(ctx, id)
	if err != nil {
		return nil, err
	}

	amount, err := parseAmount(req.Amount, req.Currency)
	if err != nil {
		return nil, err
	}
	method, err := parsePaymentMethod(req.PaymentMethod)
	if err != nil {
		return nil, err
	}

	if err := d.Update(req.Date, req.Responsible, amount, method, req.Description); err != nil {
		return nil, err
	}
	d.SetRequisitionNumber(req.RequisitionNumber)
	if req.ReceiptImage != "" {
		d.SetReceiptImage(req.ReceiptImage)
	}

	if err := s.disbursementRepo.SaveWithLock(ctx, d); err != nil {
		return nil, fmt.Errorf("failed to update disbursement: %w", err)
	}
	return d, nil
}

// DeleteDisbursement removes a disbursement
func (s *DisbursementService) DeleteDisbursement(ctx context.Context, id uuid.UUID) error {
	d, err := s.GetDisbursement(ctx, id)
	if err != nil {
		return err
	}
	if err := s.disbursementRepo.Delete(ctx, d.GetID()); err != nil {
		return fmt.Errorf("failed to delete disbursement: %w", err)
	}
	return nil
}
