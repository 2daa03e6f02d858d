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

// GormReconciliationRepository implements expense.ReconciliationRepository using GORM
type GormReconciliationRepository struct {
	db *gorm.DB
}

// NewGormReconciliationRepository creates a new GORM-based reconciliation repository
func NewGormReconciliationRepository(db *gorm.DB) *GormReconciliationRepository {
	return &GormReconciliationRepository{db: db}
}

// FindByID finds a reconciliation by ID; returns nil when not found
func (r *GormReconciliationRepository) FindByID(ctx context.Context, id uuid.UUID) (*expense.Reconciliation, error) {
	var rec expense.Reconciliation
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, wrapDBError("failed to find reconciliation", err)
	}
	return &rec, nil
}

// FindAll finds reconciliations matching the filter, newest date first
func (r *GormReconciliationRepository) FindAll(ctx context.Context, filter expense.RecordFilter) ([]expense.Reconciliation, error) {
	var records []expense.Reconciliation
	query := applyRecordFilter(r.db.WithContext(ctx).Model(&expense.Reconciliation{}), filter)
	if err := query.Find(&records).Error; err != nil {
		return nil, wrapDBError("failed to find reconciliations", err)
	}
	return records, nil
}

// FindByRequisition finds reconciliations carrying the requisition number
func (r *GormReconciliationRepository) FindByRequisition(ctx context.Context, requisitionNumber string) ([]expense.Reconciliation, error) {
	var records []expense.Reconciliation
	if err := r.db.WithContext(ctx).
		Where("requisition_number = ?", requisitionNumber).
		Order("date DESC").
		Find(&records).Error; err != nil {
		return nil, wrapDBError("failed to find reconciliations by requisition", err)
	}
	return records, nil
}

// Save creates or updates a reconciliation
func (r *GormReconciliationRepository) Save(ctx context.Context, rec *expense.Reconciliation) error {
	if err := r.db.WithContext(ctx).Save(rec).Error; err != nil {
		return wrapDBError("failed to save reconciliation", err)
	}
	return nil
}

// SaveWithLock saves a reconciliation with optimistic locking. The stored row
// must still hold the version the aggregate was loaded with; the version is
// bumped as part of the same conditional update.
func (r *GormReconciliationRepository) SaveWithLock(ctx context.Context, rec *expense.Reconciliation) error {
	loadedVersion := rec.GetVersion()
	rec.IncrementVersion()
	result := r.db.WithContext(ctx).
		Model(&expense.Reconciliation{}).
		Where("id = ? AND version = ?", rec.GetID(), loadedVersion).
		Select("*").
		Omit("id", "created_at").
		Updates(rec)
	if result.Error != nil {
		rec.Version = loadedVersion
		return wrapDBError("failed to save reconciliation", result.Error)
	}
	if result.RowsAffected == 0 {
		rec.Version = loadedVersion
		return shared.NewDomainError("VERSION_CONFLICT", "Reconciliation has been modified by another user")
	}
	return nil
}

// Delete removes a reconciliation
func (r *GormReconciliationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&expense.Reconciliation{})
	if result.Error != nil {
		return wrapDBError("failed to delete reconciliation", result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts reconciliations matching the filter
func (r *GormReconciliationRepository) Count(ctx context.Context, filter expense.RecordFilter) (int64, error) {
	var count int64
	query := applyRecordFilterWithoutPagination(r.db.WithContext(ctx).Model(&expense.Reconciliation{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, wrapDBError("failed to count reconciliations", err)
	}
	return count, nil
}

// SumByCompany totals reconciled amounts for a company
func (r *GormReconciliationRepository) SumByCompany(ctx context.Context, companyID uuid.UUID) (decimal.Decimal, error) {
	return sumAmountByCompany(r.db.WithContext(ctx), &expense.Reconciliation{}, companyID)
}
