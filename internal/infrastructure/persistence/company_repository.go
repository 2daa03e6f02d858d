package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/cajachica/backend/internal/domain/company"
	"github.com/cajachica/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CompanySortFields contains allowed sort fields for companies
var CompanySortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"name":       true,
	"status":     true,
}

// GormCompanyRepository implements company.Repository using GORM
type GormCompanyRepository struct {
	db *gorm.DB
}

// NewGormCompanyRepository creates a new GORM-based company repository
func NewGormCompanyRepository(db *gorm.DB) *GormCompanyRepository {
	return &GormCompanyRepository{db: db}
}

// FindByID finds a company by ID; returns nil when not found
func (r *GormCompanyRepository) FindByID(ctx context.Context, id uuid.UUID) (*company.Company, error) {
	var c company.Company
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&c).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, wrapDBError("failed to find company", err)
	}
	return &c, nil
}

// FindAll finds companies with filtering and pagination
func (r *GormCompanyRepository) FindAll(ctx context.Context, filter shared.Filter) ([]company.Company, error) {
	var companies []company.Company
	query := r.applyFilter(r.db.WithContext(ctx).Model(&company.Company{}), filter)
	if err := query.Find(&companies).Error; err != nil {
		return nil, wrapDBError("failed to find companies", err)
	}
	return companies, nil
}

// FindActive finds all active companies ordered by name
func (r *GormCompanyRepository) FindActive(ctx context.Context) ([]company.Company, error) {
	var companies []company.Company
	if err := r.db.WithContext(ctx).
		Where("status = ?", company.CompanyStatusActive).
		Order("name ASC").
		Find(&companies).Error; err != nil {
		return nil, wrapDBError("failed to find active companies", err)
	}
	return companies, nil
}

// Save creates or updates a company
func (r *GormCompanyRepository) Save(ctx context.Context, c *company.Company) error {
	if err := r.db.WithContext(ctx).Save(c).Error; err != nil {
		return wrapDBError("failed to save company", err)
	}
	return nil
}

// SaveWithLock saves a company with optimistic locking. The stored row must
// still hold the version the aggregate was loaded with; the version is bumped
// as part of the same conditional update. The report sequence is deliberately
// left out, CommitReportSequence is the only mutation path for it.
func (r *GormCompanyRepository) SaveWithLock(ctx context.Context, c *company.Company) error {
	loadedVersion := c.GetVersion()
	c.IncrementVersion()
	result := r.db.WithContext(ctx).
		Model(&company.Company{}).
		Where("id = ? AND version = ?", c.GetID(), loadedVersion).
		Select("*").
		Omit("id", "created_at", "report_sequence").
		Updates(c)
	if result.Error != nil {
		c.Version = loadedVersion
		return wrapDBError("failed to save company", result.Error)
	}
	if result.RowsAffected == 0 {
		c.Version = loadedVersion
		return shared.NewDomainError("VERSION_CONFLICT", "Company has been modified by another user")
	}
	return nil
}

// Delete removes a company
func (r *GormCompanyRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&company.Company{})
	if result.Error != nil {
		return wrapDBError("failed to delete company", result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts companies matching the filter
func (r *GormCompanyRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&company.Company{})
	if filter.Search != "" {
		query = query.Where("name LIKE ?", "%"+filter.Search+"%")
	}
	if err := query.Count(&count).Error; err != nil {
		return 0, wrapDBError("failed to count companies", err)
	}
	return count, nil
}

// CommitReportSequence advances the report sequence to number with a single
// conditional update. The row must still hold number-1, otherwise another
// session won the correlative and shared.ErrSequenceConflict is returned.
func (r *GormCompanyRepository) CommitReportSequence(ctx context.Context, id uuid.UUID, number int) error {
	result := r.db.WithContext(ctx).
		Model(&company.Company{}).
		Where("id = ? AND report_sequence = ?", id, number-1).
		Update("report_sequence", number)
	if result.Error != nil {
		return wrapDBError("failed to commit report sequence", result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.ErrSequenceConflict
	}
	return nil
}

// applyFilter applies filter conditions to query
func (r *GormCompanyRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		query = query.Where("name LIKE ?", "%"+filter.Search+"%")
	}

	sortField := ValidateSortField(filter.OrderBy, CompanySortFields, "created_at")
	sortOrder := ValidateSortOrder(filter.OrderDir)
	query = query.Order(fmt.Sprintf("%s %s", sortField, sortOrder))

	if filter.PageSize > 0 {
		query = query.Limit(filter.PageSize)
		offset := (filter.Page - 1) * filter.PageSize
		if offset > 0 {
			query = query.Offset(offset)
		}
	}

	return query
}
