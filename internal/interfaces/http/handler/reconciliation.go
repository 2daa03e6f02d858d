package handler

import (
	"time"

	expenseapp "github.com/cajachica/backend/internal/application/expense"
	"github.com/cajachica/backend/internal/domain/expense"
	"github.com/cajachica/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ReconciliationHandler handles reconciliation requests
type ReconciliationHandler struct {
	BaseHandler
	service *expenseapp.ReconciliationService
}

// NewReconciliationHandler creates a new reconciliation handler
func NewReconciliationHandler(service *expenseapp.ReconciliationService) *ReconciliationHandler {
	return &ReconciliationHandler{service: service}
}

// ReconciliationResponse is the wire representation of a reconciliation
type ReconciliationResponse struct {
	ID                  uuid.UUID   `json:"id"`
	CompanyID           uuid.UUID   `json:"company_id"`
	Date                time.Time   `json:"date"`
	Vendor              string      `json:"vendor"`
	VendorTaxID         string      `json:"vendor_tax_id,omitempty"`
	DocumentType        string      `json:"document_type"`
	DocumentNumber      string      `json:"document_number"`
	DocumentLabel       string      `json:"document_label"`
	Amount              string      `json:"amount"`
	Currency            string      `json:"currency"`
	Category            string      `json:"category"`
	RequisitionNumber   string      `json:"requisition_number,omitempty"`
	LinkedDisbursements []uuid.UUID `json:"linked_disbursements,omitempty"`
	ReceiptImage        string      `json:"receipt_image,omitempty"`
	CreatedAt           time.Time   `json:"created_at"`
	UpdatedAt           time.Time   `json:"updated_at"`
}

func toReconciliationResponse(r *expense.Reconciliation) ReconciliationResponse {
	linked, _ := r.LinkedDisbursementIDs()
	return ReconciliationResponse{
		ID:                  r.GetID(),
		CompanyID:           r.CompanyID,
		Date:                r.Date,
		Vendor:              r.Vendor,
		VendorTaxID:         r.VendorTaxID,
		DocumentType:        string(r.DocumentType),
		DocumentNumber:      r.DocumentNumber,
		DocumentLabel:       r.DocumentLabel(),
		Amount:              r.Amount.StringFixed(2),
		Currency:            string(r.Currency),
		Category:            r.Category,
		RequisitionNumber:   r.RequisitionNumber,
		LinkedDisbursements: linked,
		ReceiptImage:        r.ReceiptImage,
		CreatedAt:           r.GetCreatedAt(),
		UpdatedAt:           r.GetUpdatedAt(),
	}
}

// CreateReconciliation records a new rendered expense
func (h *ReconciliationHandler) CreateReconciliation(c *gin.Context) {
	var req expenseapp.CreateReconciliationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	created, err := h.service.CreateReconciliation(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, toReconciliationResponse(created))
}

// GetReconciliation returns a single reconciliation
func (h *ReconciliationHandler) GetReconciliation(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	found, err := h.service.GetReconciliation(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toReconciliationResponse(found))
}

// ListReconciliations returns reconciliations matching the filter
func (h *ReconciliationHandler) ListReconciliations(c *gin.Context) {
	filter, ok := bindRecordFilter(c, &h.BaseHandler)
	if !ok {
		return
	}

	records, total, err := h.service.ListReconciliations(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	responses := make([]ReconciliationResponse, len(records))
	for i := range records {
		responses[i] = toReconciliationResponse(&records[i])
	}

	h.SuccessWithMeta(c, responses, total, filter.Page, filter.PageSize)
}

// UpdateReconciliation updates a reconciliation
func (h *ReconciliationHandler) UpdateReconciliation(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	var req expenseapp.UpdateReconciliationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	updated, err := h.service.UpdateReconciliation(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toReconciliationResponse(updated))
}

// DeleteReconciliation removes a reconciliation
func (h *ReconciliationHandler) DeleteReconciliation(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	if err := h.service.DeleteReconciliation(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

func (h *ReconciliationHandler) parseID(c *gin.Context) (uuid.UUID, bool) {
	var req dto.IDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.BadRequest(c, "Invalid reconciliation ID")
		return uuid.Nil, false
	}
	id, err := uuid.Parse(req.ID)
	if err != nil {
		h.BadRequest(c, "Invalid reconciliation ID")
		return uuid.Nil, false
	}
	return id, true
}

// RegisterRoutes registers reconciliation routes
func (h *ReconciliationHandler) RegisterRoutes(rg *gin.RouterGroup) {
	reconciliations := rg.Group("/reconciliations")
	{
		reconciliations.GET("", h.ListReconciliations)
		reconciliations.GET("/:id", h.GetReconciliation)
		reconciliations.POST("", h.CreateReconciliation)
		reconciliations.PUT("/:id", h.UpdateReconciliation)
		reconciliations.DELETE("/:id", h.DeleteReconciliation)
	}
}
