package handler

import (
	"time"

	companyapp "github.com/cajachica/backend/internal/application/company"
	"github.com/cajachica/backend/internal/domain/company"
	"github.com/cajachica/backend/internal/domain/shared"
	"github.com/cajachica/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CompanyHandler handles company management requests
type CompanyHandler struct {
	BaseHandler
	service *companyapp.Service
}

// NewCompanyHandler creates a new company handler
func NewCompanyHandler(service *companyapp.Service) *CompanyHandler {
	return &CompanyHandler{service: service}
}

// CompanyResponse is the wire representation of a company
type CompanyResponse struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	Status         string    `json:"status"`
	ReportPrefix   string    `json:"report_prefix"`
	ReportSequence int       `json:"report_sequence"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func toCompanyResponse(c *company.Company) CompanyResponse {
	return CompanyResponse{
		ID:             c.GetID(),
		Name:           c.Name,
		Status:         string(c.Status),
		ReportPrefix:   c.ReportPrefix,
		ReportSequence: c.ReportSequence,
		CreatedAt:      c.GetCreatedAt(),
		UpdatedAt:      c.GetUpdatedAt(),
	}
}

// CreateCompany creates a new company
func (h *CompanyHandler) CreateCompany(c *gin.Context) {
	var req companyapp.CreateCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	created, err := h.service.CreateCompany(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, toCompanyResponse(created))
}

// GetCompany returns a single company
func (h *CompanyHandler) GetCompany(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	found, err := h.service.GetCompany(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toCompanyResponse(found))
}

// ListCompanies returns companies with pagination
func (h *CompanyHandler) ListCompanies(c *gin.Context) {
	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BindError(c, err)
		return
	}

	filter := shared.DefaultFilter()
	if req.Page > 0 {
		filter.Page = req.Page
	}
	if req.PageSize > 0 {
		filter.PageSize = req.PageSize
	}
	if req.OrderBy != "" {
		filter.OrderBy = req.OrderBy
	}
	if req.OrderDir != "" {
		filter.OrderDir = req.OrderDir
	}
	filter.Search = req.Search

	companies, total, err := h.service.ListCompanies(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	responses := make([]CompanyResponse, len(companies))
	for i := range companies {
		responses[i] = toCompanyResponse(&companies[i])
	}

	h.SuccessWithMeta(c, responses, total, filter.Page, filter.PageSize)
}

// ListActiveCompanies returns all active companies without pagination
func (h *CompanyHandler) ListActiveCompanies(c *gin.Context) {
	companies, err := h.service.ListActiveCompanies(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	responses := make([]CompanyResponse, len(companies))
	for i := range companies {
		responses[i] = toCompanyResponse(&companies[i])
	}

	h.Success(c, responses)
}

// UpdateCompany updates a company's name and report prefix
func (h *CompanyHandler) UpdateCompany(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	var req companyapp.UpdateCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	updated, err := h.service.UpdateCompany(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toCompanyResponse(updated))
}

// ActivateCompany marks a company as active
func (h *CompanyHandler) ActivateCompany(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	updated, err := h.service.ActivateCompany(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toCompanyResponse(updated))
}

// DeactivateCompany marks a company as inactive
func (h *CompanyHandler) DeactivateCompany(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	updated, err := h.service.DeactivateCompany(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toCompanyResponse(updated))
}

// DeleteCompany removes a company
func (h *CompanyHandler) DeleteCompany(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	if err := h.service.DeleteCompany(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

func (h *CompanyHandler) parseID(c *gin.Context) (uuid.UUID, bool) {
	var req dto.IDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.BadRequest(c, "Invalid company ID")
		return uuid.Nil, false
	}
	id, err := uuid.Parse(req.ID)
	if err != nil {
		h.BadRequest(c, "Invalid company ID")
		return uuid.Nil, false
	}
	return id, true
}

// RegisterRoutes registers company routes
func (h *CompanyHandler) RegisterRoutes(rg *gin.RouterGroup) {
	companies := rg.Group("/companies")
	{
		companies.GET("", h.ListCompanies)
		companies.GET("/active", h.ListActiveCompanies)
		companies.GET("/:id", h.GetCompany)
		companies.POST("", h.CreateCompany)
		companies.PUT("/:id", h.UpdateCompany)
		companies.POST("/:id/activate", h.ActivateCompany)
		companies.POST("/:id/deactivate", h.DeactivateCompany)
		companies.DELETE("/:id", h.DeleteCompany)
	}
}
