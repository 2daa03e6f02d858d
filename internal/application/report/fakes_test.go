package report

import (
	"context"
	"sync"
	"time"

	"github.com/cajachica/backend/internal/domain/company"
	"github.com/cajachica/backend/internal/domain/expense"
	"github.com/cajachica/backend/internal/domain/report"
	"github.com/cajachica/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// fakeCompanyRepo is an in-memory company store whose CommitReportSequence
// performs the same conditional check a SQL UPDATE would, so sequence races
// behave exactly as they do against the real store.
type fakeCompanyRepo struct {
	mu        sync.Mutex
	companies map[uuid.UUID]*company.Company

	findFailures   int
	commitFailures int
	findCalls      int
	commitCalls    int
}

func newFakeCompanyRepo() *fakeCompanyRepo {
	return &fakeCompanyRepo{companies: make(map[uuid.UUID]*company.Company)}
}

func (f *fakeCompanyRepo) put(c *company.Company) {
	f.mu.Lock()
	defer f.mu.Unlock()
	copied := *c
	f.companies[c.GetID()] = &copied
}

func (f *fakeCompanyRepo) sequenceOf(id uuid.UUID) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.companies[id].ReportSequence
}

func (f *fakeCompanyRepo) FindByID(ctx context.Context, id uuid.UUID) (*company.Company, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.findCalls++
	if f.findFailures > 0 {
		f.findFailures--
		return nil, shared.ErrTransientIO
	}
	c, ok := f.companies[id]
	if !ok {
		return nil, nil
	}
	copied := *c
	return &copied, nil
}

func (f *fakeCompanyRepo) FindAll(ctx context.Context, filter shared.Filter) ([]company.Company, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]company.Company, 0, len(f.companies))
	for _, c := range f.companies {
		out = append(out, *c)
	}
	return out, nil
}

func (f *fakeCompanyRepo) FindActive(ctx context.Context) ([]company.Company, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []company.Company
	for _, c := range f.companies {
		if c.IsActive() {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (f *fakeCompanyRepo) Save(ctx context.Context, c *company.Company) error {
	f.put(c)
	return nil
}

func (f *fakeCompanyRepo) SaveWithLock(ctx context.Context, c *company.Company) error {
	f.put(c)
	return nil
}

func (f *fakeCompanyRepo) Delete(ctx context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.companies, id)
	return nil
}

func (f *fakeCompanyRepo) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return int64(len(f.companies)), nil
}

func (f *fakeCompanyRepo) CommitReportSequence(ctx context.Context, id uuid.UUID, number int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.commitCalls++
	if f.commitFailures > 0 {
		f.commitFailures--
		return shared.ErrTransientIO
	}
	c, ok := f.companies[id]
	if !ok {
		return shared.ErrNotFound
	}
	if c.ReportSequence != number-1 {
		return shared.ErrSequenceConflict
	}
	c.ReportSequence = number
	return nil
}

// fakeDisbursementRepo serves canned disbursements
type fakeDisbursementRepo struct {
	records []expense.Disbursement
}

func (f *fakeDisbursementRepo) FindByID(ctx context.Context, id uuid.UUID) (*expense.Disbursement, error) {
	for i := range f.records {
		if f.records[i].GetID() == id {
			return &f.records[i], nil
		}
	}
	return nil, nil
}

func (f *fakeDisbursementRepo) FindAll(ctx context.Context, filter expense.RecordFilter) ([]expense.Disbursement, error) {
	var out []expense.Disbursement
	for _, d := range f.records {
		if matchesFilter(d.CompanyID, d.Date, d.RequisitionNumber, filter) {
			out = append(out, d)
		}
	}
	return out, nil
}

func (f *fakeDisbursementRepo) FindByRequisition(ctx context.Context, requisitionNumber string) ([]expense.Disbursement, error) {
	var out []expense.Disbursement
	for _, d := range f.records {
		if d.RequisitionNumber == requisitionNumber {
			out = append(out, d)
		}
	}
	return out, nil
}

func (f *fakeDisbursementRepo) Save(ctx context.Context, d *expense.Disbursement) error {
	f.records = append(f.records, *d)
	return nil
}

func (f *fakeDisbursementRepo) SaveWithLock(ctx context.Context, d *expense.Disbursement) error {
	return nil
}

func (f *fakeDisbursementRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return nil
}

func (f *fakeDisbursementRepo) Count(ctx context.Context, filter expense.RecordFilter) (int64, error) {
	records, _ := f.FindAll(ctx, filter)
	return int64(len(records)), nil
}

func (f *fakeDisbursementRepo) SumByCompany(ctx context.Context, companyID uuid.UUID) (decimal.Decimal, error) {
	sum := decimal.Zero
	for _, d := range f.records {
		if d.CompanyID == companyID {
			sum = sum.Add(d.Amount)
		}
	}
	return sum, nil
}

// fakeReconciliationRepo serves canned reconciliations
type fakeReconciliationRepo struct {
	records []expense.Reconciliation
}

func (f *fakeReconciliationRepo) FindByID(ctx context.Context, id uuid.UUID) (*expense.Reconciliation, error) {
	for i := range f.records {
		if f.records[i].GetID() == id {
			return &f.records[i], nil
		}
	}
	return nil, nil
}

func (f *fakeReconciliationRepo) FindAll(ctx context.Context, filter expense.RecordFilter) ([]expense.Reconciliation, error) {
	var out []expense.Reconciliation
	for _, r := range f.records {
		if matchesFilter(r.CompanyID, r.Date, r.RequisitionNumber, filter) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeReconciliationRepo) FindByRequisition(ctx context.Context, requisitionNumber string) ([]expense.Reconciliation, error) {
	var out []expense.Reconciliation
	for _, r := range f.records {
		if r.RequisitionNumber == requisitionNumber {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeReconciliationRepo) Save(ctx context.Context, r *expense.Reconciliation) error {
	f.records = append(f.records, *r)
	return nil
}

func (f *fakeReconciliationRepo) SaveWithLock(ctx context.Context, r *expense.Reconciliation) error {
	return nil
}

func (f *fakeReconciliationRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return nil
}

func (f *fakeReconciliationRepo) Count(ctx context.Context, filter expense.RecordFilter) (int64, error) {
	records, _ := f.FindAll(ctx, filter)
	return int64(len(records)), nil
}

func (f *fakeReconciliationRepo) SumByCompany(ctx context.Context, companyID uuid.UUID) (decimal.Decimal, error) {
	sum := decimal.Zero
	for _, r := range f.records {
		if r.CompanyID == companyID {
			sum = sum.Add(r.Amount)
		}
	}
	return sum, nil
}

func matchesFilter(companyID uuid.UUID, date time.Time, requisition string, filter expense.RecordFilter) bool {
	if filter.CompanyID != nil && *filter.CompanyID != companyID {
		return false
	}
	if filter.FromDate != nil && date.Before(*filter.FromDate) {
		return false
	}
	if filter.ToDate != nil && date.After(*filter.ToDate) {
		return false
	}
	if filter.RequisitionNumber != "" && filter.RequisitionNumber != requisition {
		return false
	}
	return true
}

// fakeSpooler records spooled views and can be made to fail
type fakeSpooler struct {
	mu     sync.Mutex
	views  []report.ReportView
	fail   bool
	block  time.Duration
}

func (f *fakeSpooler) Spool(ctx context.Context, view report.ReportView) (string, error) {
	if f.block > 0 {
		select {
		case <-time.After(f.block):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return "", shared.ErrTransientIO
	}
	f.views = append(f.views, view)
	return "file:///archive/" + view.Label + ".pdf", nil
}

func (f *fakeSpooler) spooled() []report.ReportView {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]report.ReportView(nil), f.views...)
}
