package handler

import (
	"time"

	expenseapp "github.com/cajachica/backend/internal/application/expense"
	"github.com/cajachica/backend/internal/domain/expense"
	"github.com/cajachica/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// DisbursementHandler handles disbursement requests
type DisbursementHandler struct {
	BaseHandler
	service *expenseapp.DisbursementService
}

// NewDisbursementHandler creates a new disbursement handler
func NewDisbursementHandler(service *expenseapp.DisbursementService) *DisbursementHandler {
	return &DisbursementHandler{service: service}
}

// DisbursementResponse is the wire representation of a disbursement
type DisbursementResponse struct {
	ID                uuid.UUID `json:"id"`
	CompanyID         uuid.UUID `json:"company_id"`
	Date              time.Time `json:"date"`
	Responsible       string    `json:"responsible"`
	Amount            string    `json:"amount"`
	Currency          string    `json:"currency"`
	PaymentMethod     string    `json:"payment_method"`
	Description       string    `json:"description,omitempty"`
	RequisitionNumber string    `json:"requisition_number,omitempty"`
	ReceiptImage      string    `json:"receipt_image,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

func toDisbursementResponse(d *expense.Disbursement) DisbursementResponse {
	return DisbursementResponse{
		ID:                d.GetID(),
		CompanyID:         d.CompanyID,
		Date:              d.Date,
		Responsible:       d.Responsible,
		Amount:            d.Amount.StringFixed(2),
		Currency:          string(d.Currency),
		PaymentMethod:     string(d.PaymentMethod),
		Description:       d.Description,
		RequisitionNumber: d.RequisitionNumber,
		ReceiptImage:      d.ReceiptImage,
		CreatedAt:         d.GetCreatedAt(),
		UpdatedAt:         d.GetUpdatedAt(),
	}
}

// CreateDisbursement records a new cash delivery
func (h *DisbursementHandler) CreateDisbursement(c *gin.Context) {
	var req expenseapp.CreateDisbursementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	created, err := h.service.CreateDisbursement(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, toDisbursementResponse(created))
}

// GetDisbursement returns a single disbursement
func (h *DisbursementHandler) GetDisbursement(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	found, err := h.service.GetDisbursement(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toDisbursementResponse(found))
}

// ListDisbursements returns disbursements matching the filter
func (h *DisbursementHandler) ListDisbursements(c *gin.Context) {
	filter, ok := bindRecordFilter(c, &h.BaseHandler)
	if !ok {
		return
	}

	records, total, err := h.service.ListDisbursements(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	responses := make([]DisbursementResponse, len(records))
	for i := range records {
		responses[i] = toDisbursementResponse(&records[i])
	}

	h.SuccessWithMeta(c, responses, total, filter.Page, filter.PageSize)
}

// UpdateDisbursement updates a disbursement
func (h *DisbursementHandler) UpdateDisbursement(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	var req expenseapp.UpdateDisbursementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	updated, err := h.service.UpdateDisbursement(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toDisbursementResponse(updated))
}

// DeleteDisbursement removes a disbursement
func (h *DisbursementHandler) DeleteDisbursement(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	if err := h.service.DeleteDisbursement(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

func (h *DisbursementHandler) parseID(c *gin.Context) (uuid.UUID, bool) {
	var req dto.IDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.BadRequest(c, "Invalid disbursement ID")
		return uuid.Nil, false
	}
	id, err := uuid.Parse(req.ID)
	if err != nil {
		h.BadRequest(c, "Invalid disbursement ID")
		return uuid.Nil, false
	}
	return id, true
}

// RegisterRoutes registers disbursement routes
func (h *DisbursementHandler) RegisterRoutes(rg *gin.RouterGroup) {
	disbursements := rg.Group("/disbursements")
	{
		disbursements.GET("", h.ListDisbursements)
		disbursements.GET("/:id", h.GetDisbursement)
		disbursements.POST("", h.CreateDisbursement)
		disbursements.PUT("/:id", h.UpdateDisbursement)
		disbursements.DELETE("/:id", h.DeleteDisbursement)
	}
}
