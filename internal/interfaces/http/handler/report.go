package handler

import (
	reportapp "github.com/cajachica/backend/internal/application/report"
	"github.com/cajachica/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ReportHandler exposes the reconciliation report workflow. Every endpoint
// is scoped to the caller's session so that two browser tabs never share a
// print attempt.
type ReportHandler struct {
	BaseHandler
	workflow  *reportapp.Workflow
	dashboard *reportapp.DashboardService
}

// NewReportHandler creates a new report handler
func NewReportHandler(workflow *reportapp.Workflow, dashboard *reportapp.DashboardService) *ReportHandler {
	return &ReportHandler{workflow: workflow, dashboard: dashboard}
}

// CompanyRequest identifies the company a print or confirm acts on
type CompanyRequest struct {
	CompanyID uuid.UUID `json:"company_id" binding:"required"`
}

// ConfirmRequest carries the operator's verdict on the printed document
type ConfirmRequest struct {
	CompanyID uuid.UUID `json:"company_id" binding:"required"`
	Accept    *bool     `json:"accept" binding:"required"`
}

// StateRequest identifies the attempt whose state is queried
type StateRequest struct {
	CompanyID string `form:"company_id" binding:"required,uuid"`
}

// StateResponse reports the current print attempt state
type StateResponse struct {
	CompanyID uuid.UUID              `json:"company_id"`
	State     reportapp.AttemptState `json:"state"`
}

// Preview assembles the report dataset and renders it with the preview label
func (h *ReportHandler) Preview(c *gin.Context) {
	var sel reportapp.Selector
	if err := c.ShouldBindJSON(&sel); err != nil {
		h.BindError(c, err)
		return
	}

	session := middleware.GetSessionID(c)
	view, err := h.workflow.Preview(c.Request.Context(), session, sel)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, view)
}

// Print renders the previewed report with a held correlative and spools it
func (h *ReportHandler) Print(c *gin.Context) {
	var req CompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	session := middleware.GetSessionID(c)
	result, err := h.workflow.Print(c.Request.Context(), session, req.CompanyID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// Confirm commits or discards the correlative of a printed report
func (h *ReportHandler) Confirm(c *gin.Context) {
	var req ConfirmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	session := middleware.GetSessionID(c)
	result, err := h.workflow.Confirm(c.Request.Context(), session, req.CompanyID, *req.Accept)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// State returns the attempt state for the caller's session and a company
func (h *ReportHandler) State(c *gin.Context) {
	var req StateRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BindError(c, err)
		return
	}
	companyID, err := uuid.Parse(req.CompanyID)
	if err != nil {
		h.BadRequest(c, "Invalid company ID")
		return
	}

	session := middleware.GetSessionID(c)
	h.Success(c, StateResponse{
		CompanyID: companyID,
		State:     h.workflow.StateOf(session, companyID),
	})
}

// Dashboard returns the consolidated position across active companies
func (h *ReportHandler) Dashboard(c *gin.Context) {
	dashboard, err := h.dashboard.GetDashboard(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, dashboard)
}

// RegisterRoutes registers report routes
func (h *ReportHandler) RegisterRoutes(rg *gin.RouterGroup) {
	reports := rg.Group("/reports")
	{
		reports.POST("/preview", h.Preview)
		reports.POST("/print", h.Print)
		reports.POST("/confirm", h.Confirm)
		reports.GET("/state", h.State)
		reports.GET("/dashboard", h.Dashboard)
	}
}
