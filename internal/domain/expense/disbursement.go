package expense

import (
	"strings"
	"time"

	"github.com/cajachica/backend/internal/domain/shared"
	"github.com/cajachica/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Disbursement represents cash advanced ("desembolso") from a company's
// petty-cash fund to a responsible party, to be reconciled later against
// expense receipts.
type Disbursement struct {
	shared.BaseAggregateRoot
	CompanyID         uuid.UUID             `gorm:"type:uuid;not null;index" json:"company_id"`
	Date              time.Time             `gorm:"not null;index" json:"date"`
	Responsible       string                `gorm:"type:varchar(200);not null" json:"responsible"`
	Amount            decimal.Decimal       `gorm:"type:decimal(18,2);not null" json:"amount"`
	Currency          valueobject.Currency  `gorm:"type:varchar(3);not null;default:'PEN'" json:"currency"`
	PaymentMethod     PaymentMethod         `gorm:"type:varchar(20);not null;default:'CASH'" json:"payment_method"`
	Description       string                `gorm:"type:varchar(500)" json:"description"`
	RequisitionNumber string                `gorm:"type:varchar(50);index" json:"requisition_number"`
	ReceiptImage      string                `gorm:"type:text" json:"receipt_image,omitempty"`
}

// TableName returns the table name for GORM
func (Disbursement) TableName() string {
	return "disbursements"
}

// NewDisbursement creates a new disbursement
func NewDisbursement(
	companyID uuid.UUID,
	date time.Time,
	responsible string,
	amount valueobject.Money,
) (*Disbursement, error) {
	if companyID == uuid.Nil {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Company is required")
	}
	if date.IsZero() {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Date is required")
	}
	responsible = strings.TrimSpace(responsible)
	if responsible == "" {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Responsible party is required")
	}
	if !amount.IsPositive() {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Amount must be positive")
	}
	if !amount.Currency().IsValid() {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Currency is not supported")
	}

	d := &Disbursement{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		CompanyID:         companyID,
		Date:              date,
		Responsible:       responsible,
		Amount:            amount.Amount(),
		Currency:          amount.Currency(),
		PaymentMethod:     DefaultPaymentMethod,
	}

	d.AddDomainEvent(NewDisbursementCreatedEvent(d))

	return d, nil
}

// Update replaces the editable fields of the disbursement
func (d *Disbursement) Update(
	date time.Time,
	responsible string,
	amount valueobject.Money,
	method PaymentMethod,
	description string,
) error {
	if date.IsZero() {
		return shared.NewDomainError("VALIDATION_ERROR", "Date is required")
	}
	responsible = strings.TrimSpace(responsible)
	if responsible == "" {
		return shared.NewDomainError("VALIDATION_ERROR", "Responsible party is required")
	}
	if !amount.IsPositive() {
		return shared.NewDomainError("VALIDATION_ERROR", "Amount must be positive")
	}
	if !method.IsValid() {
		return shared.NewDomainError("VALIDATION_ERROR", "Payment method is not valid")
	}
	if len(description) > 500 {
		return shared.NewDomainError("VALIDATION_ERROR", "Description cannot exceed 500 characters")
	}

	d.Date = date
	d.Responsible = responsible
	d.Amount = amount.Amount()
	d.Currency = amount.Currency()
	d.PaymentMethod = method
	d.Description = strings.TrimSpace(description)
	d.UpdatedAt = time.Now()

	return nil
}

// SetPaymentMethod sets the payment method
func (d *Disbursement) SetPaymentMethod(method PaymentMethod) error {
	if !method.IsValid() {
		return shared.NewDomainError("VALIDATION_ERROR", "Payment method is not valid")
	}
	d.PaymentMethod = method
	d.UpdatedAt = time.Now()
	return nil
}

// SetRequisitionNumber links the disbursement to a requisition
func (d *Disbursement) SetRequisitionNumber(number string) {
	d.RequisitionNumber = strings.TrimSpace(number)
	d.UpdatedAt = time.Now()
}

// SetDescription sets the free-text description
func (d *Disbursement) SetDescription(description string) error {
	if len(description) > 500 {
		return shared.NewDomainError("VALIDATION_ERROR", "Description cannot exceed 500 characters")
	}
	d.Description = strings.TrimSpace(description)
	d.UpdatedAt = time.Now()
	return nil
}

// SetReceiptImage attaches an embedded receipt image (data URL)
func (d *Disbursement) SetReceiptImage(image string) {
	d.ReceiptImage = image
	d.UpdatedAt = time.Now()
}

// GetAmountMoney returns the amount as Money
func (d *Disbursement) GetAmountMoney() valueobject.Money {
	m, _ := valueobject.NewMoney(d.Amount, d.Currency)
	return m
}
