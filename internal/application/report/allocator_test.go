package report

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/cajachica/backend/internal/domain/company"
	"github.com/cajachica/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClock() time.Time {
	return time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
}

func seedCompany(t *testing.T, repo *fakeCompanyRepo, sequence int) uuid.UUID {
	t.Helper()
	c, err := company.NewCompany("Constructora Andina SAC")
	require.NoError(t, err)
	c.ReportSequence = sequence
	repo.put(c)
	return c.GetID()
}

func newTestAllocator(repo *fakeCompanyRepo) *CorrelativeAllocator {
	a := NewCorrelativeAllocator(repo, nil)
	a.now = fixedClock
	return a
}

func TestAllocatorPeekNext(t *testing.T) {
	ctx := context.Background()

	t.Run("derives the candidate from durable state", func(t *testing.T) {
		repo := newFakeCompanyRepo()
		id := seedCompany(t, repo, 12)
		allocator := newTestAllocator(repo)

		candidate, err := allocator.PeekNext(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, 13, candidate.Number)
		assert.Equal(t, "REP-2025-013", candidate.Label)
		assert.Equal(t, 12, repo.sequenceOf(id))
	})

	t.Run("peek is idempotent without an intervening commit", func(t *testing.T) {
		repo := newFakeCompanyRepo()
		id := seedCompany(t, repo, 6)
		allocator := newTestAllocator(repo)

		first, err := allocator.PeekNext(ctx, id)
		require.NoError(t, err)
		second, err := allocator.PeekNext(ctx, id)
		require.NoError(t, err)

		assert.Equal(t, first, second)
		assert.Equal(t, "REP-2025-007", second.Label)
	})

	t.Run("unknown company", func(t *testing.T) {
		allocator := newTestAllocator(newFakeCompanyRepo())
		_, err := allocator.PeekNext(ctx, uuid.New())
		assert.Equal(t, "NOT_FOUND", shared.ErrorCode(err))
	})

	t.Run("one transparent retry on a transient read", func(t *testing.T) {
		repo := newFakeCompanyRepo()
		id := seedCompany(t, repo, 3)
		repo.findFailures = 1
		allocator := newTestAllocator(repo)

		candidate, err := allocator.PeekNext(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, 4, candidate.Number)
		assert.Equal(t, 2, repo.findCalls)
	})

	t.Run("second transient read failure is surfaced", func(t *testing.T) {
		repo := newFakeCompanyRepo()
		id := seedCompany(t, repo, 3)
		repo.findFailures = 2
		allocator := newTestAllocator(repo)

		_, err := allocator.PeekNext(ctx, id)
		assert.True(t, shared.IsTransient(err))
		assert.Equal(t, 2, repo.findCalls)
	})
}

func TestAllocatorCommit(t *testing.T) {
	ctx := context.Background()

	t.Run("commit advances the sequence and the next peek follows", func(t *testing.T) {
		repo := newFakeCompanyRepo()
		id := seedCompany(t, repo, 12)
		allocator := newTestAllocator(repo)

		candidate, err := allocator.PeekNext(ctx, id)
		require.NoError(t, err)
		require.NoError(t, allocator.Commit(ctx, candidate))

		assert.Equal(t, 13, repo.sequenceOf(id))

		next, err := allocator.PeekNext(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, 14, next.Number)
		assert.Equal(t, "REP-2025-014", next.Label)
	})

	t.Run("stale candidate is rejected with a conflict", func(t *testing.T) {
		repo := newFakeCompanyRepo()
		id := seedCompany(t, repo, 12)
		allocator := newTestAllocator(repo)

		first, err := allocator.PeekNext(ctx, id)
		require.NoError(t, err)
		second, err := allocator.PeekNext(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, first.Number, second.Number)

		require.NoError(t, allocator.Commit(ctx, first))
		err = allocator.Commit(ctx, second)
		assert.Equal(t, shared.ErrSequenceConflict.Code, shared.ErrorCode(err))
		assert.Equal(t, 13, repo.sequenceOf(id))
	})

	t.Run("racing commits advance the sequence exactly once", func(t *testing.T) {
		repo := newFakeCompanyRepo()
		id := seedCompany(t, repo, 20)
		allocator := newTestAllocator(repo)

		candidate, err := allocator.PeekNext(ctx, id)
		require.NoError(t, err)

		var wg sync.WaitGroup
		errs := make([]error, 2)
		for i := 0; i < 2; i++ {
			wg.Add(1)
			go func(n int) {
				defer wg.Done()
				errs[n] = allocator.Commit(ctx, candidate)
			}(i)
		}
		wg.Wait()

		winners := 0
		for _, err := range errs {
			if err == nil {
				winners++
			} else {
				assert.Equal(t, shared.ErrSequenceConflict.Code, shared.ErrorCode(err))
			}
		}
		assert.Equal(t, 1, winners)
		assert.Equal(t, 21, repo.sequenceOf(id))
	})

	t.Run("transient commit failure is never retried", func(t *testing.T) {
		repo := newFakeCompanyRepo()
		id := seedCompany(t, repo, 5)
		repo.commitFailures = 1
		allocator := newTestAllocator(repo)

		candidate, err := allocator.PeekNext(ctx, id)
		require.NoError(t, err)

		err = allocator.Commit(ctx, candidate)
		assert.True(t, shared.IsTransient(err))
		assert.Equal(t, 1, repo.commitCalls)
		assert.Equal(t, 5, repo.sequenceOf(id))
	})
}
