package handler

import (
	"time"

	"github.com/cajachica/backend/internal/domain/expense"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RecordListRequest carries the query parameters shared by disbursement and
// reconciliation listings. Dates are inclusive on both ends.
type RecordListRequest struct {
	CompanyID         string     `form:"company_id" binding:"omitempty,uuid"`
	FromDate          *time.Time `form:"from" time_format:"2006-01-02"`
	ToDate            *time.Time `form:"to" time_format:"2006-01-02"`
	RequisitionNumber string     `form:"requisition_number"`
	Page              int        `form:"page" binding:"omitempty,min=1"`
	PageSize          int        `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// toRecordFilter converts the request into the domain filter
func (r RecordListRequest) toRecordFilter() (expense.RecordFilter, error) {
	filter := expense.RecordFilter{
		FromDate:          r.FromDate,
		ToDate:            r.ToDate,
		RequisitionNumber: r.RequisitionNumber,
		Page:              r.Page,
		PageSize:          r.PageSize,
	}
	if filter.Page == 0 {
		filter.Page = 1
	}
	if filter.PageSize == 0 {
		filter.PageSize = 20
	}
	if r.CompanyID != "" {
		id, err := uuid.Parse(r.CompanyID)
		if err != nil {
			return expense.RecordFilter{}, err
		}
		filter.CompanyID = &id
	}
	return filter, nil
}

// bindRecordFilter binds and validates the list query, replying on error
func bindRecordFilter(c *gin.Context, h *BaseHandler) (expense.RecordFilter, bool) {
	var req RecordListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BindError(c, err)
		return expense.RecordFilter{}, false
	}
	filter, err := req.toRecordFilter()
	if err != nil {
		h.BadRequest(c, "Invalid company ID")
		return expense.RecordFilter{}, false
	}
	return filter, true
}
