package report

import (
	"context"
	"testing"
	"time"

	"github.com/cajachica/backend/internal/domain/company"
	"github.com/cajachica/backend/internal/domain/expense"
	"github.com/cajachica/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDashboard(t *testing.T) {
	ctx := context.Background()

	companyRepo := newFakeCompanyRepo()
	activeID := seedCompany(t, companyRepo, 0)

	inactive, err := company.NewCompany("Cerrada SAC")
	require.NoError(t, err)
	require.NoError(t, inactive.Deactivate())
	companyRepo.put(inactive)

	date := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
	disbursementRepo := &fakeDisbursementRepo{}
	reconciliationRepo := &fakeReconciliationRepo{}

	addRecords := func(owner uuid.UUID, disbursed, reconciled string) {
		dm, err := valueobject.NewMoneyFromString(disbursed, valueobject.PEN)
		require.NoError(t, err)
		d, err := expense.NewDisbursement(owner, date, "María Torres", dm)
		require.NoError(t, err)
		disbursementRepo.records = append(disbursementRepo.records, *d)

		rm, err := valueobject.NewMoneyFromString(reconciled, valueobject.PEN)
		require.NoError(t, err)
		r, err := expense.NewReconciliation(owner, date, "Grifo Primax", expense.DocumentTypeReceipt, "B001-00042", rm)
		require.NoError(t, err)
		reconciliationRepo.records = append(reconciliationRepo.records, *r)
	}

	addRecords(activeID, "1500.00", "1200.50")
	addRecords(inactive.GetID(), "800.00", "100.00")

	service := NewDashboardService(companyRepo, disbursementRepo, reconciliationRepo)
	dashboard, err := service.GetDashboard(ctx)
	require.NoError(t, err)

	require.Len(t, dashboard.Companies, 1, "inactive companies are excluded")
	position := dashboard.Companies[0]
	assert.Equal(t, activeID, position.CompanyID)
	assert.Equal(t, "1500.00", position.TotalDisbursed.StringFixed(2))
	assert.Equal(t, "1200.50", position.TotalReconciled.StringFixed(2))
	assert.Equal(t, "299.50", position.Balance.StringFixed(2))

	assert.Equal(t, "1500.00", dashboard.TotalDisbursed.StringFixed(2))
	assert.Equal(t, "299.50", dashboard.Balance.StringFixed(2))
}

func TestDashboardEmpty(t *testing.T) {
	service := NewDashboardService(newFakeCompanyRepo(), &fakeDisbursementRepo{}, &fakeReconciliationRepo{})

	dashboard, err := service.GetDashboard(context.Background())
	require.NoError(t, err)

	assert.Empty(t, dashboard.Companies)
	assert.True(t, dashboard.Balance.IsZero())
}
