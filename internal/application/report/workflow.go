package report

import (
	"context"
	"sync"
	"time"

	"github.com/cajachica/backend/internal/domain/report"
	"github.com/cajachica/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AttemptState is the lifecycle state of one print attempt
type AttemptState string

const (
	// StateIdle means no candidate is held; at most a preview dataset exists
	StateIdle AttemptState = "IDLE"
	// StateCandidateHeld means a candidate correlative has been peeked
	StateCandidateHeld AttemptState = "CANDIDATE_HELD"
	// StateAwaitingConfirmation means the document went out and the user
	// has not yet confirmed or declined
	StateAwaitingConfirmation AttemptState = "AWAITING_CONFIRMATION"
	// StateCommitted means the candidate was durably committed
	StateCommitted AttemptState = "COMMITTED"
	// StateConflict means another session won the candidate number
	StateConflict AttemptState = "CONFLICT"
	// StateDiscarded means the user declined and the counter stayed put
	StateDiscarded AttemptState = "DISCARDED"
)

// Spooler hands a rendered report to the physical output channel and
// archives it, returning the archive location.
type Spooler interface {
	Spool(ctx context.Context, view report.ReportView) (string, error)
}

// attempt holds the scoped state of one print cycle for one session and
// company. It replaces any global "current report" stashing: each attempt
// is allocated on preview and discarded when the cycle ends.
type attempt struct {
	state      AttemptState
	dataset    *report.ReportDataset
	candidate  Candidate
	archiveURL string
	startedAt  time.Time
}

// WorkflowConfig bounds the slow edges of the print cycle. AttemptTTL is
// how long an attempt may sit untouched before it is swept; a swept attempt
// behaves as if it never existed and the user previews again.
type WorkflowConfig struct {
	SpoolTimeout  time.Duration
	CommitTimeout time.Duration
	AttemptTTL    time.Duration
}

// DefaultWorkflowConfig returns the default workflow timeouts
func DefaultWorkflowConfig() WorkflowConfig {
	return WorkflowConfig{
		SpoolTimeout:  30 * time.Second,
		CommitTimeout: 5 * time.Second,
		AttemptTTL:    30 * time.Minute,
	}
}

// sweepInterval caps how often the attempt maps are scanned for expiry
const sweepInterval = time.Minute

// Workflow orchestrates the preview, tentative numbering, physical output
// and confirm-or-rollback cycle for reconciliation reports. Attempts are
// serialized per session and company; the durable sequence alone arbitrates
// between sessions.
type Workflow struct {
	assembler *Assembler
	allocator *CorrelativeAllocator
	spooler   Spooler
	config    WorkflowConfig
	logger    *zap.Logger
	now       func() time.Time

	mu        sync.Mutex
	attempts  map[attemptKey]*attempt
	locks     map[attemptKey]*sync.Mutex
	lastSweep time.Time
}

type attemptKey struct {
	session   string
	companyID uuid.UUID
}

// NewWorkflow creates a new print-confirm Workflow
func NewWorkflow(
	assembler *Assembler,
	allocator *CorrelativeAllocator,
	spooler Spooler,
	config WorkflowConfig,
	logger *zap.Logger,
) *Workflow {
	if config.SpoolTimeout <= 0 {
		config.SpoolTimeout = DefaultWorkflowConfig().SpoolTimeout
	}
	if config.CommitTimeout <= 0 {
		config.CommitTimeout = DefaultWorkflowConfig().CommitTimeout
	}
	if config.AttemptTTL <= 0 {
		config.AttemptTTL = DefaultWorkflowConfig().AttemptTTL
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Workflow{
		assembler: assembler,
		allocator: allocator,
		spooler:   spooler,
		config:    config,
		logger:    logger,
		now:       time.Now,
		attempts:  make(map[attemptKey]*attempt),
		locks:     make(map[attemptKey]*sync.Mutex),
	}
}

// PrintResult is the outcome of a print request
type PrintResult struct {
	View       report.ReportView `json:"view"`
	ArchiveURL string            `json:"archive_url,omitempty"`
	State      AttemptState      `json:"state"`
}

// ConfirmResult is the outcome of a confirmation decision
type ConfirmResult struct {
	View  report.ReportView `json:"view"`
	State AttemptState      `json:"state"`
	Label string            `json:"label"`
}

// Preview assembles a fresh dataset for the selector and renders it under
// the preview label. Any previous attempt for this session and company is
// superseded.
func (w *Workflow) Preview(ctx context.Context, session string, sel Selector) (report.ReportView, error) {
	dataset, err := w.assembler.Assemble(ctx, sel)
	if err != nil {
		return report.ReportView{}, err
	}

	key := attemptKey{session: session, companyID: dataset.Company.ID}
	lock := w.keyLock(key)
	lock.Lock()
	defer lock.Unlock()

	w.setAttempt(key, &attempt{
		state:     StateIdle,
		dataset:   dataset,
		startedAt: w.now(),
	})

	return report.RenderPreview(dataset), nil
}

// Print runs the tentative-numbering and physical-output half of the cycle:
// peek the candidate correlative, re-render the previewed dataset under the
// candidate label, and spool the document. The durable sequence is not
// touched. On any failure the attempt reverts to the previewed state and
// the same candidate remains available to the next attempt.
func (w *Workflow) Print(ctx context.Context, session string, companyID uuid.UUID) (PrintResult, error) {
	key := attemptKey{session: session, companyID: companyID}
	lock := w.keyLock(key)
	lock.Lock()
	defer lock.Unlock()

	att := w.getAttempt(key)
	if att == nil || att.dataset == nil {
		return PrintResult{}, shared.NewDomainError("PRECONDITION_FAILED", "Print requires a previewed report")
	}
	if att.state == StateAwaitingConfirmation {
		return PrintResult{}, shared.NewDomainError("INVALID_STATE", "A print attempt is already awaiting confirmation")
	}
	dataset := att.dataset

	candidate, err := w.allocator.PeekNext(ctx, companyID)
	if err != nil {
		return PrintResult{}, err
	}

	view := report.Render(dataset, candidate.Label)

	w.setAttempt(key, &attempt{
		state:     StateCandidateHeld,
		dataset:   dataset,
		candidate: candidate,
		startedAt: w.now(),
	})

	spoolCtx, cancel := context.WithTimeout(ctx, w.config.SpoolTimeout)
	defer cancel()

	archiveURL, err := w.spooler.Spool(spoolCtx, view)
	if err != nil {
		w.logger.Warn("report spool failed",
			zap.String("company_id", companyID.String()),
			zap.String("label", candidate.Label),
			zap.Error(err),
		)
		w.setAttempt(key, &attempt{state: StateIdle, dataset: dataset, startedAt: w.now()})
		return PrintResult{}, shared.NewDomainError("TRANSIENT_IO", "Report output failed, the sequence was not advanced")
	}

	w.setAttempt(key, &attempt{
		state:      StateAwaitingConfirmation,
		dataset:    dataset,
		candidate:  candidate,
		archiveURL: archiveURL,
		startedAt:  w.now(),
	})

	w.logger.Info("report spooled, awaiting confirmation",
		zap.String("company_id", companyID.String()),
		zap.String("label", candidate.Label),
		zap.String("archive_url", archiveURL),
	)

	return PrintResult{
		View:       view,
		ArchiveURL: archiveURL,
		State:      StateAwaitingConfirmation,
	}, nil
}

// Confirm resolves a pending attempt. Accepting commits the candidate
// number; declining discards it and leaves the durable sequence untouched,
// so the next attempt proposes the same candidate again. Confirming without
// a pending attempt is an error, never a silent commit.
func (w *Workflow) Confirm(ctx context.Context, session string, companyID uuid.UUID, accept bool) (ConfirmResult, error) {
	key := attemptKey{session: session, companyID: companyID}
	lock := w.keyLock(key)
	lock.Lock()
	defer lock.Unlock()

	att := w.getAttempt(key)
	if att == nil || att.state != StateAwaitingConfirmation {
		return ConfirmResult{}, shared.NewDomainError("PRECONDITION_FAILED", "No print attempt is awaiting confirmation")
	}
	dataset := att.dataset
	candidate := att.candidate

	if !accept {
		w.setAttempt(key, &attempt{state: StateDiscarded, dataset: dataset, startedAt: w.now()})
		w.logger.Info("print attempt declined",
			zap.String("company_id", companyID.String()),
			zap.String("label", candidate.Label),
		)
		return ConfirmResult{
			View:  report.RenderPreview(dataset),
			State: StateDiscarded,
			Label: report.PreviewLabel,
		}, nil
	}

	commitCtx, cancel := context.WithTimeout(ctx, w.config.CommitTimeout)
	defer cancel()

	if err := w.allocator.Commit(commitCtx, candidate); err != nil {
		if shared.ErrorCode(err) == shared.ErrSequenceConflict.Code {
			w.setAttempt(key, &attempt{state: StateConflict, dataset: dataset, startedAt: w.now()})
			w.logger.Warn("report sequence conflict",
				zap.String("company_id", companyID.String()),
				zap.Int("number", candidate.Number),
			)
			return ConfirmResult{}, err
		}
		// Outcome unknown (timeout or transient failure): surface it and
		// drop back to the previewed state so the user starts a fresh
		// peek-and-commit cycle. Never retried here.
		w.setAttempt(key, &attempt{state: StateIdle, dataset: dataset, startedAt: w.now()})
		w.logger.Error("report sequence commit failed",
			zap.String("company_id", companyID.String()),
			zap.Int("number", candidate.Number),
			zap.Error(err),
		)
		return ConfirmResult{}, err
	}

	w.setAttempt(key, &attempt{state: StateCommitted, dataset: dataset, startedAt: w.now()})
	w.logger.Info("report sequence committed",
		zap.String("company_id", companyID.String()),
		zap.String("label", candidate.Label),
	)

	return ConfirmResult{
		View:  report.Render(dataset, candidate.Label),
		State: StateCommitted,
		Label: candidate.Label,
	}, nil
}

// StateOf returns the current attempt state for a session and company,
// defaulting to IDLE when no attempt exists
func (w *Workflow) StateOf(session string, companyID uuid.UUID) AttemptState {
	if att := w.getAttempt(attemptKey{session: session, companyID: companyID}); att != nil {
		return att.state
	}
	return StateIdle
}

// keyLock returns the mutex serializing all attempts for one session and
// company pair. Stale entries are swept here so the maps stay bounded by
// recent activity rather than growing with every session ever seen.
func (w *Workflow) keyLock(key attemptKey) *sync.Mutex {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.sweepLocked(w.now())
	lock, ok := w.locks[key]
	if !ok {
		lock = &sync.Mutex{}
		w.locks[key] = lock
	}
	return lock
}

// sweepLocked drops attempts older than AttemptTTL along with their locks,
// and locks left behind by attempts that never materialized. Runs at most
// once per sweepInterval. Caller must hold w.mu.
func (w *Workflow) sweepLocked(now time.Time) {
	if now.Sub(w.lastSweep) < sweepInterval {
		return
	}
	w.lastSweep = now
	for key, att := range w.attempts {
		if now.Sub(att.startedAt) > w.config.AttemptTTL {
			delete(w.attempts, key)
			delete(w.locks, key)
		}
	}
	for key := range w.locks {
		if _, ok := w.attempts[key]; !ok {
			delete(w.locks, key)
		}
	}
}

func (w *Workflow) getAttempt(key attemptKey) *attempt {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.attempts[key]
}

func (w *Workflow) setAttempt(key attemptKey, att *attempt) {
	w.mu.Lock()
	w.attempts[key] = att
	w.mu.Unlock()
}
