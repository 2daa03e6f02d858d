package report

import (
	"context"
	"fmt"

	"github.com/cajachica/backend/internal/domain/company"
	"github.com/cajachica/backend/internal/domain/expense"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DashboardService aggregates per-company petty-cash positions
type DashboardService struct {
	companyRepo        company.Repository
	disbursementRepo   expense.DisbursementRepository
	reconciliationRepo expense.ReconciliationRepository
}

// NewDashboardService creates a new DashboardService
func NewDashboardService(
	companyRepo company.Repository,
	disbursementRepo expense.DisbursementRepository,
	reconciliationRepo expense.ReconciliationRepository,
) *DashboardService {
	return &DashboardService{
		companyRepo:        companyRepo,
		disbursementRepo:   disbursementRepo,
		reconciliationRepo: reconciliationRepo,
	}
}

// CompanyPosition is one dashboard row: a company's totals and balance
type CompanyPosition struct {
	CompanyID       uuid.UUID       `json:"company_id"`
	CompanyName     string          `json:"company_name"`
	TotalDisbursed  decimal.Decimal `json:"total_disbursed"`
	TotalReconciled decimal.Decimal `json:"total_reconciled"`
	Balance         decimal.Decimal `json:"balance"`
}

// Dashboard is the aggregate view across all active companies
type Dashboard struct {
	Companies       []CompanyPosition `json:"companies"`
	TotalDisbursed  decimal.Decimal   `json:"total_disbursed"`
	TotalReconciled decimal.Decimal   `json:"total_reconciled"`
	Balance         decimal.Decimal   `json:"balance"`
}

// GetDashboard computes the per-company and overall totals for all active
// companies
func (s *DashboardService) GetDashboard(ctx context.Context) (*Dashboard, error) {
	companies, err := s.companyRepo.FindActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list active companies: %w", err)
	}

	dashboard := &Dashboard{
		Companies:       make([]CompanyPosition, 0, len(companies)),
		TotalDisbursed:  decimal.Zero,
		TotalReconciled: decimal.Zero,
		Balance:         decimal.Zero,
	}

	for _, c := range companies {
		disbursed, err := s.disbursementRepo.SumByCompany(ctx, c.GetID())
		if err != nil {
			return nil, fmt.Errorf("failed to sum disbursements for %s: %w", c.Name, err)
		}
		reconciled, err := s.reconciliationRepo.SumByCompany(ctx, c.GetID())
		if err != nil {
			return nil, fmt.Errorf("failed to sum reconciliations for %s: %w", c.Name, err)
		}

		position := CompanyPosition{
			CompanyID:       c.GetID(),
			CompanyName:     c.Name,
			TotalDisbursed:  disbursed,
			TotalReconciled: reconciled,
			Balance:         disbursed.Sub(reconciled),
		}
		dashboard.Companies = append(dashboard.Companies, position)
		dashboard.TotalDisbursed = dashboard.TotalDisbursed.Add(disbursed)
		dashboard.TotalReconciled = dashboard.TotalReconciled.Add(reconciled)
	}
	dashboard.Balance = dashboard.TotalDisbursed.Sub(dashboard.TotalReconciled)

	return dashboard, nil
}
