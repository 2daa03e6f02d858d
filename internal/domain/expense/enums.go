package expense

// PaymentMethod represents how a disbursement was handed out
type PaymentMethod string

const (
	PaymentMethodCash     PaymentMethod = "CASH"     // Efectivo
	PaymentMethodTransfer PaymentMethod = "TRANSFER" // Transferencia
	PaymentMethodOther    PaymentMethod = "OTHER"    // Otro
)

// DefaultPaymentMethod is used when none is supplied
const DefaultPaymentMethod = PaymentMethodCash

// IsValid checks if the method is a valid PaymentMethod
func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentMethodCash, PaymentMethodTransfer, PaymentMethodOther:
		return true
	}
	return false
}

// String returns the string representation of PaymentMethod
func (m PaymentMethod) String() string {
	return string(m)
}

// DisplayName returns the Spanish display name for the method
func (m PaymentMethod) DisplayName() string {
	switch m {
	case PaymentMethodCash:
		return "Efectivo"
	case PaymentMethodTransfer:
		return "Transferencia"
	case PaymentMethodOther:
		return "Otro"
	default:
		return string(m)
	}
}

// DocumentType represents the kind of receipt backing a reconciliation
type DocumentType string

const (
	DocumentTypeInvoice DocumentType = "INVOICE" // Factura
	DocumentTypeReceipt DocumentType = "RECEIPT" // Boleta
	DocumentTypeVoucher DocumentType = "VOUCHER" // Voucher
	DocumentTypeOther   DocumentType = "OTHER"   // Otro
)

// DefaultDocumentType is used when none is supplied
const DefaultDocumentType = DocumentTypeReceipt

// IsValid checks if the type is a valid DocumentType
func (d DocumentType) IsValid() bool {
	switch d {
	case DocumentTypeInvoice, DocumentTypeReceipt, DocumentTypeVoucher, DocumentTypeOther:
		return true
	}
	return false
}

// String returns the string representation of DocumentType
func (d DocumentType) String() string {
	return string(d)
}

// DisplayName returns the Spanish display name for the document type
func (d DocumentType) DisplayName() string {
	switch d {
	case DocumentTypeInvoice:
		return "Factura"
	case DocumentTypeReceipt:
		return "Boleta"
	case DocumentTypeVoucher:
		return "Voucher"
	case DocumentTypeOther:
		return "Otro"
	default:
		return string(d)
	}
}

// AllDocumentTypes returns all valid DocumentType values
func AllDocumentTypes() []DocumentType {
	return []DocumentType{
		DocumentTypeInvoice, DocumentTypeReceipt, DocumentTypeVoucher, DocumentTypeOther,
	}
}
