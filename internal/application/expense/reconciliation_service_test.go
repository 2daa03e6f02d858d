package expense

import (
	"context"
	"testing"
	"time"

	"github.com/cajachica/backend/internal/domain/expense"
	"github.com/cajachica/backend/internal/domain/shared"
	"github.com/cajachica/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func validCreateReconciliationRequest(companyID uuid.UUID) CreateReconciliationRequest {
	return CreateReconciliationRequest{
		CompanyID:      companyID,
		Date:           time.Date(2025, 6, 20, 0, 0, 0, 0, time.UTC),
		Vendor:         "Grifo Primax",
		DocumentNumber: "B001-00042",
		Amount:         "85.90",
	}
}

func TestCreateReconciliation(t *testing.T) {
	ctx := context.Background()

	t.Run("creates with defaults", func(t *testing.T) {
		owner := activeCompany(t)
		companyRepo := new(MockCompanyRepository)
		companyRepo.On("FindByID", ctx, owner.GetID()).Return(owner, nil)
		reconciliationRepo := new(MockReconciliationRepository)
		reconciliationRepo.On("Save", ctx, mock.AnythingOfType("*expense.Reconciliation")).Return(nil)

		service := NewReconciliationService(reconciliationRepo, new(MockDisbursementRepository), companyRepo, nil)
		r, err := service.CreateReconciliation(ctx, validCreateReconciliationRequest(owner.GetID()))
		require.NoError(t, err)

		assert.Equal(t, expense.DocumentTypeReceipt, r.DocumentType)
		assert.Equal(t, expense.DefaultCategory, r.Category)
		assert.Equal(t, valueobject.PEN, r.Currency)
		reconciliationRepo.AssertExpectations(t)
	})

	t.Run("rejects a malformed RUC", func(t *testing.T) {
		owner := activeCompany(t)
		companyRepo := new(MockCompanyRepository)
		companyRepo.On("FindByID", ctx, owner.GetID()).Return(owner, nil)

		service := NewReconciliationService(new(MockReconciliationRepository), new(MockDisbursementRepository), companyRepo, nil)
		req := validCreateReconciliationRequest(owner.GetID())
		req.VendorTaxID = "123"
		_, err := service.CreateReconciliation(ctx, req)
		assert.Equal(t, "VALIDATION_ERROR", shared.ErrorCode(err))
	})

	t.Run("rejects an inactive company", func(t *testing.T) {
		owner := activeCompany(t)
		require.NoError(t, owner.Deactivate())
		companyRepo := new(MockCompanyRepository)
		companyRepo.On("FindByID", ctx, owner.GetID()).Return(owner, nil)

		service := NewReconciliationService(new(MockReconciliationRepository), new(MockDisbursementRepository), companyRepo, nil)
		_, err := service.CreateReconciliation(ctx, validCreateReconciliationRequest(owner.GetID()))
		assert.Equal(t, "PRECONDITION_FAILED", shared.ErrorCode(err))
	})

	t.Run("verifies disbursement links", func(t *testing.T) {
		owner := activeCompany(t)
		companyRepo := new(MockCompanyRepository)
		companyRepo.On("FindByID", ctx, owner.GetID()).Return(owner, nil)

		amount, err := valueobject.NewMoneyFromString("500.00", valueobject.PEN)
		require.NoError(t, err)
		linked, err := expense.NewDisbursement(owner.GetID(), time.Now(), "María Torres", amount)
		require.NoError(t, err)

		disbursementRepo := new(MockDisbursementRepository)
		disbursementRepo.On("FindByID", ctx, linked.GetID()).Return(linked, nil)
		reconciliationRepo := new(MockReconciliationRepository)
		reconciliationRepo.On("Save", ctx, mock.Anything).Return(nil)

		service := NewReconciliationService(reconciliationRepo, disbursementRepo, companyRepo, nil)
		req := validCreateReconciliationRequest(owner.GetID())
		req.LinkedDisbursements = []uuid.UUID{linked.GetID()}

		r, err := service.CreateReconciliation(ctx, req)
		require.NoError(t, err)

		ids, err := r.LinkedDisbursementIDs()
		require.NoError(t, err)
		assert.Equal(t, []uuid.UUID{linked.GetID()}, ids)
	})

	t.Run("rejects a link to another company's disbursement", func(t *testing.T) {
		owner := activeCompany(t)
		stranger := activeCompany(t)
		companyRepo := new(MockCompanyRepository)
		companyRepo.On("FindByID", ctx, owner.GetID()).Return(owner, nil)

		amount, err := valueobject.NewMoneyFromString("500.00", valueobject.PEN)
		require.NoError(t, err)
		foreign, err := expense.NewDisbursement(stranger.GetID(), time.Now(), "María Torres", amount)
		require.NoError(t, err)

		disbursementRepo := new(MockDisbursementRepository)
		disbursementRepo.On("FindByID", ctx, foreign.GetID()).Return(foreign, nil)

		service := NewReconciliationService(new(MockReconciliationRepository), disbursementRepo, companyRepo, nil)
		req := validCreateReconciliationRequest(owner.GetID())
		req.LinkedDisbursements = []uuid.UUID{foreign.GetID()}

		_, err = service.CreateReconciliation(ctx, req)
		assert.Equal(t, "VALIDATION_ERROR", shared.ErrorCode(err))
	})

	t.Run("rejects a dangling link", func(t *testing.T) {
		owner := activeCompany(t)
		companyRepo := new(MockCompanyRepository)
		companyRepo.On("FindByID", ctx, owner.GetID()).Return(owner, nil)

		disbursementRepo := new(MockDisbursementRepository)
		disbursementRepo.On("FindByID", ctx, mock.Anything).Return(nil, nil)

		service := NewReconciliationService(new(MockReconciliationRepository), disbursementRepo, companyRepo, nil)
		req := validCreateReconciliationRequest(owner.GetID())
		req.LinkedDisbursements = []uuid.UUID{uuid.New()}

		_, err := service.CreateReconciliation(ctx, req)
		assert.Equal(t, "VALIDATION_ERROR", shared.ErrorCode(err))
	})
}

func TestUpdateReconciliation(t *testing.T) {
	ctx := context.Background()
	owner := activeCompany(t)

	amount, err := valueobject.NewMoneyFromString("85.90", valueobject.PEN)
	require.NoError(t, err)
	existing, err := expense.NewReconciliation(owner.GetID(), time.Now(), "Grifo Primax", expense.DocumentTypeReceipt, "B001-00042", amount)
	require.NoError(t, err)

	reconciliationRepo := new(MockReconciliationRepository)
	reconciliationRepo.On("FindByID", ctx, existing.GetID()).Return(existing, nil)
	reconciliationRepo.On("SaveWithLock", ctx, existing).Return(nil)

	service := NewReconciliationService(reconciliationRepo, new(MockDisbursementRepository), new(MockCompanyRepository), nil)
	updated, err := service.UpdateReconciliation(ctx, existing.GetID(), UpdateReconciliationRequest{
		Date:           time.Date(2025, 6, 25, 0, 0, 0, 0, time.UTC),
		Vendor:         "Librería San Marcos",
		DocumentType:   string(expense.DocumentTypeInvoice),
		DocumentNumber: "F001-00123",
		Amount:         "120.00",
		Category:       "Útiles",
	})
	require.NoError(t, err)

	assert.Equal(t, "Librería San Marcos", updated.Vendor)
	assert.Equal(t, expense.DocumentTypeInvoice, updated.DocumentType)
	assert.Equal(t, "120.00", updated.Amount.StringFixed(2))
	assert.Equal(t, "Útiles", updated.Category)
}
