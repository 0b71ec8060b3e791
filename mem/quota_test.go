package mem

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

// Test_Quota_EnforcesLimit verifies allocations fail once the budget is spent.
func Test_Quota_EnforcesLimit(t *testing.T) {
	q := NewQuota(NewHeap(), 100)

	a, err := q.Allocate(60)
	require.NoError(t, err)
	require.Equal(t, int64(60), q.Used())

	// 60 + 50 > 100: over budget
	_, err = q.Allocate(50)
	require.ErrorIs(t, err, ErrQuotaExceeded)
	require.Equal(t, int64(60), q.Used(), "failed allocation must not charge the budget")

	// Exactly filling the budget is allowed
	b, err := q.Allocate(40)
	require.NoError(t, err)
	require.Equal(t, int64(100), q.Used())

	// Budget full: even 1 byte fails
	_, err = q.Allocate(1)
	require.ErrorIs(t, err, ErrQuotaExceeded)

	// Release refunds and unblocks
	q.Release(a)
	require.Equal(t, int64(40), q.Used())

	c, err := q.Allocate(60)
	require.NoError(t, err)
	require.Equal(t, int64(100), q.Used())

	q.Release(b)
	q.Release(c)
	require.Zero(t, q.Used())
}

// Test_Quota_RejectsBadSizes verifies size validation happens before charging.
func Test_Quota_RejectsBadSizes(t *testing.T) {
	q := NewQuota(NewHeap(), 100)

	_, err := q.Allocate(0)
	require.ErrorIs(t, err, ErrBadSize)
	_, err = q.Allocate(-5)
	require.ErrorIs(t, err, ErrBadSize)
	require.Zero(t, q.Used())
}

// Test_Quota_ZeroLimit verifies a zero budget rejects everything.
func Test_Quota_ZeroLimit(t *testing.T) {
	q := NewQuota(NewHeap(), 0)

	_, err := q.Allocate(1)
	if !errors.Is(err, ErrQuotaExceeded) {
		t.Fatalf("expected ErrQuotaExceeded, got %v", err)
	}
	if q.Limit() != 0 {
		t.Fatalf("expected limit 0, got %d", q.Limit())
	}
}

// Test_Quota_InnerFailureNotCharged verifies the budget is untouched when
// the inner allocator fails.
func Test_Quota_InnerFailureNotCharged(t *testing.T) {
	arena, err := NewArena(64)
	require.NoError(t, err)
	defer arena.Close()

	// Quota is generous but the arena underneath is tiny
	q := NewQuota(arena, 1<<20)

	_, err = q.Allocate(128)
	require.ErrorIs(t, err, ErrArenaFull)
	require.Zero(t, q.Used(), "inner failure must not charge the budget")
}

// Test_Quota_ReleaseClamps verifies foreign releases cannot drive the
// budget negative.
func Test_Quota_ReleaseClamps(t *testing.T) {
	q := NewQuota(NewHeap(), 100)

	// Release a block that never went through this wrapper
	q.Release(make([]byte, 50))
	require.Zero(t, q.Used())

	// Empty releases are no-ops
	q.Release(nil)
	require.Zero(t, q.Used())
}
