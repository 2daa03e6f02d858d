package persistence

import (
	"context"
	"errors"

	"github.com/cajachica/backend/internal/domain/expense"
	"github.com/cajachica/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormDisbursementRepository implements expense.DisbursementRepository using GORM
type GormDisbursementRepository struct {
	db *gorm.DB
}

// NewGormDisbursementRepository creates a new GORM-based disbursement repository
func NewGormDisbursementRepository(db *gorm.DB) *GormDisbursementRepository {
	return &GormDisbursementRepository{db: db}
}

// FindByID finds a disbursement by ID; returns nil when not found
func (r *GormDisbursementRepository) FindByID(ctx context.Context, id uuid.UUID) (*expense.Disbursement, error) {
	var d expense.Disbursement
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&d).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, wrapDBError("failed to find disbursement", err)
	}
	return &d, nil
}

// FindAll finds disbursements matching the filter, newest date first
func (r *GormDisbursementRepository) FindAll(ctx context.Context, filter expense.RecordFilter) ([]expense.Disbursement, error) {
	var records []expense.Disbursement
	query := applyRecordFilter(r.db.WithContext(ctx).Model(&expense.Disbursement{}), filter)
	if err := query.Find(&records).Error; err != nil {
		return nil, wrapDBError("failed to find disbursements", err)
	}
	return records, nil
}

// FindByRequisition finds disbursements carrying the requisition number
func (r *GormDisbursementRepository) FindByRequisition(ctx context.Context, requisitionNumber string) ([]expense.Disbursement, error) {
	var records []expense.Disbursement
	if err := r.db.WithContext(ctx).
		Where("requisition_number = ?", requisitionNumber).
		Order("date DESC").
		Find(&records).Error; err != nil {
		return nil, wrapDBError("failed to find disbursements by requisition", err)
	}
	return records, nil
}

// Save creates or updates a disbursement
func (r *GormDisbursementRepository) Save(ctx context.Context, d *expense.Disbursement) error {
	if err := r.db.WithContext(ctx).Save(d).Error; err != nil {
		return wrapDBError("failed to save disbursement", err)
	}
	return nil
}

// SaveWithLock saves a disbursement with optimistic locking. The stored row
// must still hold the version the aggregate was loaded with; the version is
// bumped as part of the same conditional update.
func (r *GormDisbursementRepository) SaveWithLock(ctx context.Context, d *expense.Disbursement) error {
	loadedVersion := d.GetVersion()
	d.IncrementVersion()
	result := r.db.WithContext(ctx).
		Model(&expense.Disbursement{}).
		Where("id = ? AND version = ?", d.GetID(), loadedVersion).
		Select("*").
		Omit("id", "created_at").
		Updates(d)
	if result.Error != nil {
		d.Version = loadedVersion
		return wrapDBError("failed to save disbursement", result.Error)
	}
	if result.RowsAffected == 0 {
		d.Version = loadedVersion
		return shared.NewDomainError("VERSION_CONFLICT", "Disbursement has been modified by another user")
	}
	return nil
}

// Delete removes a disbursement
func (r *GormDisbursementRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&expense.Disbursement{})
	if result.Error != nil {
		return wrapDBError("failed to delete disbursement", result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts disbursements matching the filter
func (r *GormDisbursementRepository) Count(ctx context.Context, filter expense.RecordFilter) (int64, error) {
	var count int64
	query := applyRecordFilterWithoutPagination(r.db.WithContext(ctx).Model(&expense.Disbursement{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, wrapDBError("failed to count disbursements", err)
	}
	return count, nil
}

// SumByCompany totals disbursed amounts for a company
func (r *GormDisbursementRepository) SumByCompany(ctx context.Context, companyID uuid.UUID) (decimal.Decimal, error) {
	return sumAmountByCompany(r.db.WithContext(ctx), &expense.Disbursement{}, companyID)
}

// sumAmountByCompany totals the amount column for a company's rows
func sumAmountByCompany(db *gorm.DB, model any, companyID uuid.UUID) (decimal.Decimal, error) {
	var total decimal.NullDecimal
	if err := db.Model(model).
		Select("SUM(amount)").
		Where("company_id = ?", companyID).
		Scan(&total).Error; err != nil {
		return decimal.Zero, wrapDBError("failed to sum amounts", err)
	}
	if !total.Valid {
		return decimal.Zero, nil
	}
	return total.Decimal, nil
}

// applyRecordFilter applies filter conditions with newest-first ordering and pagination
func applyRecordFilter(query *gorm.DB, filter expense.RecordFilter) *gorm.DB {
	query = applyRecordFilterWithoutPagination(query, filter)
	query = query.Order("date DESC, created_at DESC")

	if filter.PageSize > 0 {
		query = query.Limit(filter.PageSize)
		offset := (filter.Page - 1) * filter.PageSize
		if offset > 0 {
			query = query.Offset(offset)
		}
	}

	return query
}

// applyRecordFilterWithoutPagination applies filter conditions without pagination.
// Date bounds are inclusive on both ends.
func applyRecordFilterWithoutPagination(query *gorm.DB, filter expense.RecordFilter) *gorm.DB {
	if filter.CompanyID != nil {
		query = query.Where("company_id = ?", *filter.CompanyID)
	}
	if filter.FromDate != nil {
		query = query.Where("date >= ?", *filter.FromDate)
	}
	if filter.ToDate != nil {
		query = query.Where("date <= ?", *filter.ToDate)
	}
	if filter.RequisitionNumber != "" {
		query = query.Where("requisition_number = ?", filter.RequisitionNumber)
	}
	return query
}
