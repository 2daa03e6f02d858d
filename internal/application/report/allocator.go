package report

import (
	"context"
	"fmt"
	"time"

	"github.com/cajachica/backend/internal/domain/company"
	"github.com/cajachica/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// CorrelativeAllocator is the single source of truth for each company's
// report sequence. PeekNext reads the durable counter and derives the next
// candidate without changing anything; Commit durably advances the counter
// with a conditional write, so two sessions racing over the same candidate
// cannot both win.
type CorrelativeAllocator struct {
	companyRepo company.Repository
	eventBus    shared.EventPublisher
	now         func() time.Time
}

// NewCorrelativeAllocator creates a new CorrelativeAllocator
func NewCorrelativeAllocator(companyRepo company.Repository, eventBus shared.EventPublisher) *CorrelativeAllocator {
	return &CorrelativeAllocator{
		companyRepo: companyRepo,
		eventBus:    eventBus,
		now:         time.Now,
	}
}

// Candidate is a peeked correlative plus the company snapshot it was derived
// from. It carries no reservation: nothing is held durably until Commit.
type Candidate struct {
	CompanyID uuid.UUID
	Number    int
	Label     string
	Year      int
}

// PeekNext derives the next candidate correlative from the company's durable
// sequence. It never caches and never writes, so repeated peeks without an
// intervening commit return the same candidate. A transient read failure is
// retried once before being surfaced.
func (a *CorrelativeAllocator) PeekNext(ctx context.Context, companyID uuid.UUID) (Candidate, error) {
	c, err := a.companyRepo.FindByID(ctx, companyID)
	if shared.IsTransient(err) {
		c, err = a.companyRepo.FindByID(ctx, companyID)
	}
	if err != nil {
		return Candidate{}, fmt.Errorf("failed to read company sequence: %w", err)
	}
	if c == nil {
		return Candidate{}, shared.ErrNotFound
	}

	year := a.now().Year()
	next := company.NextCorrelative(c, year)
	return Candidate{
		CompanyID: companyID,
		Number:    next.Number,
		Label:     next.Label,
		Year:      year,
	}, nil
}

// Commit durably advances the company's sequence to the candidate number.
// The write succeeds only if the durable sequence still equals number-1;
// otherwise the caller gets a SEQUENCE_CONFLICT and must peek again.
// Transient failures are never retried here: a commit whose outcome is
// unknown must be surfaced, never silently reissued.
func (a *CorrelativeAllocator) Commit(ctx context.Context, candidate Candidate) error {
	if err := a.companyRepo.CommitReportSequence(ctx, candidate.CompanyID, candidate.Number); err != nil {
		return err
	}

	if a.eventBus != nil {
		event := company.NewReportSequenceCommittedEvent(candidate.CompanyID, company.Correlative{
			Number: candidate.Number,
			Label:  candidate.Label,
		})
		_ = a.eventBus.Publish(ctx, event)
	}
	return nil
}
