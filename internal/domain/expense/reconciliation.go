package expense

import (
	"encoding/json"
	"regexp"
	"strings"
	"time"

	"github.com/cajachica/backend/internal/domain/shared"
	"github.com/cajachica/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DefaultCategory is assigned when a reconciliation has no category
const DefaultCategory = "Varios"

// rucPattern matches a Peruvian RUC: exactly 11 digits
var rucPattern = regexp.MustCompile(`^\d{11}$`)

// Reconciliation represents an expense receipt ("rendición") submitted
// against a company's disbursed petty cash.
type Reconciliation struct {
	shared.BaseAggregateRoot
	CompanyID         uuid.UUID            `gorm:"type:uuid;not null;index" json:"company_id"`
	Date              time.Time            `gorm:"not null;index" json:"date"`
	Vendor            string               `gorm:"type:varchar(200);not null" json:"vendor"`
	VendorTaxID       string               `gorm:"type:varchar(11)" json:"vendor_tax_id,omitempty"`
	DocumentType      DocumentType         `gorm:"type:varchar(20);not null;default:'RECEIPT'" json:"document_type"`
	DocumentNumber    string               `gorm:"type:varchar(50);not null" json:"document_number"`
	Amount            decimal.Decimal      `gorm:"type:decimal(18,2);not null" json:"amount"`
	Currency          valueobject.Currency `gorm:"type:varchar(3);not null;default:'PEN'" json:"currency"`
	Category          string               `gorm:"type:varchar(100);not null;default:'Varios'" json:"category"`
	RequisitionNumber string               `gorm:"type:varchar(50);index" json:"requisition_number"`
	// LinkedDisbursements holds a JSON array of disbursement IDs this
	// receipt settles against.
	LinkedDisbursements string `gorm:"type:text" json:"linked_disbursements,omitempty"`
	ReceiptImage        string `gorm:"type:text" json:"receipt_image,omitempty"`
}

// TableName returns the table name for GORM
func (Reconciliation) TableName() string {
	return "reconciliations"
}

// NewReconciliation creates a new reconciliation
func NewReconciliation(
	companyID uuid.UUID,
	date time.Time,
	vendor string,
	docType DocumentType,
	docNumber string,
	amount valueobject.Money,
) (*Reconciliation, error) {
	if companyID == uuid.Nil {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Company is required")
	}
	if date.IsZero() {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Date is required")
	}
	vendor = strings.TrimSpace(vendor)
	if vendor == "" {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Vendor is required")
	}
	if docType == "" {
		docType = DefaultDocumentType
	}
	if !docType.IsValid() {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Document type is not valid")
	}
	docNumber = strings.TrimSpace(docNumber)
	if docNumber == "" {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Document number is required")
	}
	if !amount.IsPositive() {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Amount must be positive")
	}
	if !amount.Currency().IsValid() {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Currency is not supported")
	}

	r := &Reconciliation{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		CompanyID:         companyID,
		Date:              date,
		Vendor:            vendor,
		DocumentType:      docType,
		DocumentNumber:    docNumber,
		Amount:            amount.Amount(),
		Currency:          amount.Currency(),
		Category:          DefaultCategory,
	}

	r.AddDomainEvent(NewReconciliationCreatedEvent(r))

	return r, nil
}

// Update replaces the editable fields of the reconciliation
func (r *Reconciliation) Update(
	date time.Time,
	vendor string,
	docType DocumentType,
	docNumber string,
	amount valueobject.Money,
	category string,
) error {
	if date.IsZero() {
		return shared.NewDomainError("VALIDATION_ERROR", "Date is required")
	}
	vendor = strings.TrimSpace(vendor)
	if vendor == "" {
		return shared.NewDomainError("VALIDATION_ERROR", "Vendor is required")
	}
	if !docType.IsValid() {
		return shared.NewDomainError("VALIDATION_ERROR", "Document type is not valid")
	}
	docNumber = strings.TrimSpace(docNumber)
	if docNumber == "" {
		return shared.NewDomainError("VALIDATION_ERROR", "Document number is required")
	}
	if !amount.IsPositive() {
		return shared.NewDomainError("VALIDATION_ERROR", "Amount must be positive")
	}

	r.Date = date
	r.Vendor = vendor
	r.DocumentType = docType
	r.DocumentNumber = docNumber
	r.Amount = amount.Amount()
	r.Currency = amount.Currency()
	r.SetCategory(category)
	r.UpdatedAt = time.Now()

	return nil
}

// SetVendorTaxID sets the vendor RUC; empty clears it
func (r *Reconciliation) SetVendorTaxID(ruc string) error {
	ruc = strings.TrimSpace(ruc)
	if ruc != "" && !rucPattern.MatchString(ruc) {
		return shared.NewDomainError("VALIDATION_ERROR", "Vendor tax ID must be exactly 11 digits")
	}
	r.VendorTaxID = ruc
	r.UpdatedAt = time.Now()
	return nil
}

// SetCategory sets the expense category, falling back to the default
func (r *Reconciliation) SetCategory(category string) {
	category = strings.TrimSpace(category)
	if category == "" {
		category = DefaultCategory
	}
	r.Category = category
	r.UpdatedAt = time.Now()
}

// SetRequisitionNumber links the reconciliation to a requisition
func (r *Reconciliation) SetRequisitionNumber(number string) {
	r.RequisitionNumber = strings.TrimSpace(number)
	r.UpdatedAt = time.Now()
}

// LinkDisbursements records the disbursement IDs this receipt settles
func (r *Reconciliation) LinkDisbursements(ids []uuid.UUID) error {
	if len(ids) == 0 {
		r.LinkedDisbursements = ""
		r.UpdatedAt = time.Now()
		return nil
	}
	data, err := json.Marshal(ids)
	if err != nil {
		return shared.NewDomainError("VALIDATION_ERROR", "Invalid disbursement links")
	}
	r.LinkedDisbursements = string(data)
	r.UpdatedAt = time.Now()
	return nil
}

// LinkedDisbursementIDs parses the stored disbursement links
func (r *Reconciliation) LinkedDisbursementIDs() ([]uuid.UUID, error) {
	if r.LinkedDisbursements == "" {
		return nil, nil
	}
	var ids []uuid.UUID
	if err := json.Unmarshal([]byte(r.LinkedDisbursements), &ids); err != nil {
		return nil, err
	}
	return ids, nil
}

// SetReceiptImage attaches an embedded receipt image (data URL)
func (r *Reconciliation) SetReceiptImage(image string) {
	r.ReceiptImage = image
	r.UpdatedAt = time.Now()
}

// DocumentLabel returns the document descriptor for display,
// e.g. "Factura F001-00123"
func (r *Reconciliation) DocumentLabel() string {
	return r.DocumentType.DisplayName() + " " + r.DocumentNumber
}

// GetAmountMoney returns the amount as Money
func (r *Reconciliation) GetAmountMoney() valueobject.Money {
	m, _ := valueobject.NewMoney(r.Amount, r.Currency)
	return m
}
