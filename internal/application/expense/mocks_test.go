package expense

import (
	"context"

	"github.com/cajachica/backend/internal/domain/company"
	"github.com/cajachica/backend/internal/domain/expense"
	"github.com/cajachica/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// MockCompanyRepository is a mock implementation of company.Repository
type MockCompanyRepository struct {
	mock.Mock
}

func (m *MockCompanyRepository) FindByID(ctx context.Context, id uuid.UUID) (*company.Company, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*company.Company), args.Error(1)
}

func (m *MockCompanyRepository) FindAll(ctx context.Context, filter shared.Filter) ([]company.Company, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]company.Company), args.Error(1)
}

func (m *MockCompanyRepository) FindActive(ctx context.Context) ([]company.Company, error) {
	args := m.Called(ctx)
	return args.Get(0).([]company.Company), args.Error(1)
}

func (m *MockCompanyRepository) Save(ctx context.Context, c *company.Company) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCompanyRepository) SaveWithLock(ctx context.Context, c *company.Company) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCompanyRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCompanyRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCompanyRepository) CommitReportSequence(ctx context.Context, id uuid.UUID, number int) error {
	args := m.Called(ctx, id, number)
	return args.Error(0)
}

// MockDisbursementRepository is a mock implementation of expense.DisbursementRepository
type MockDisbursementRepository struct {
	mock.Mock
}

func (m *MockDisbursementRepository) FindByID(ctx context.Context, id uuid.UUID) (*expense.Disbursement, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*expense.Disbursement), args.Error(1)
}

func (m *MockDisbursementRepository) FindAll(ctx context.Context, filter expense.RecordFilter) ([]expense.Disbursement, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]expense.Disbursement), args.Error(1)
}

func (m *MockDisbursementRepository) FindByRequisition(ctx context.Context, requisitionNumber string) ([]expense.Disbursement, error) {
	args := m.Called(ctx, requisitionNumber)
	return args.Get(0).([]expense.Disbursement), args.Error(1)
}

func (m *MockDisbursementRepository) Save(ctx context.Context, d *expense.Disbursement) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}

func (m *MockDisbursementRepository) SaveWithLock(ctx context.Context, d *expense.Disbursement) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}

func (m *MockDisbursementRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockDisbursementRepository) Count(ctx context.Context, filter expense.RecordFilter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockDisbursementRepository) SumByCompany(ctx context.Context, companyID uuid.UUID) (decimal.Decimal, error) {
	args := m.Called(ctx, companyID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

// MockReconciliationRepository is a mock implementation of expense.ReconciliationRepository
type MockReconciliationRepository struct {
	mock.Mock
}

func (m *MockReconciliationRepository) FindByID(ctx context.Context, id uuid.UUID) (*expense.Reconciliation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*expense.Reconciliation), args.Error(1)
}

func (m *MockReconciliationRepository) FindAll(ctx context.Context, filter expense.RecordFilter) ([]expense.Reconciliation, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]expense.Reconciliation), args.Error(1)
}

func (m *MockReconciliationRepository) FindByRequisition(ctx context.Context, requisitionNumber string) ([]expense.Reconciliation, error) {
	args := m.Called(ctx, requisitionNumber)
	return args.Get(0).([]expense.Reconciliation), args.Error(1)
}

func (m *MockReconciliationRepository) Save(ctx context.Context, r *expense.Reconciliation) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockReconciliationRepository) SaveWithLock(ctx context.Context, r *expense.Reconciliation) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockReconciliationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockReconciliationRepository) Count(ctx context.Context, filter expense.RecordFilter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockReconciliationRepository) SumByCompany(ctx context.Context, companyID uuid.UUID) (decimal.Decimal, error) {
	args := m.Called(ctx, companyID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}
