package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordSleeps replaces the backoff sleep with a recorder so tests can assert
// on the waits without slowing down.
func recordSleeps(t *testing.T) *[]time.Duration {
	t.Helper()
	var waits []time.Duration
	orig := sleep
	sleep = func(ctx context.Context, d time.Duration) error {
		waits = append(waits, d)
		return nil
	}
	t.Cleanup(func() { sleep = orig })
	return &waits
}

func TestDo_SuccessAfterTransientFailures(t *testing.T) {
	waits := recordSleeps(t)

	calls := 0
	op := func(ctx context.Context) (string, error) {
		calls++
		if calls < 3 {
			return "", errors.New("request timeout")
		}
		return "ok", nil
	}

	policy := Policy{MaxRetries: 3, InitialDelay: time.Second, MaxDelay: 10 * time.Second, BackoffFactor: 2}
	result, err := Do(context.Background(), policy, op)
	require.NoError(t, err)
	assert.Equal(t, "ok", result)
	assert.Equal(t, 3, calls)

	// Backoff doubles: 1s before the 2nd call, 2s before the 3rd.
	require.Len(t, *waits, 2)
	assert.Equal(t, time.Second, (*waits)[0])
	assert.GreaterOrEqual(t, (*waits)[1], 2*time.Second)
}

func TestDo_NonRetryableFailsFast(t *testing.T) {
	recordSleeps(t)

	calls := 0
	op := func(ctx context.Context) (int, error) {
		calls++
		return 0, errors.New("invalid address for asset")
	}

	_, err := Do(context.Background(), Policy{MaxRetries: 3}, op)
	require.Error(t, err)
	assert.Equal(t, 1, calls)
	assert.Contains(t, err.Error(), "invalid address")
}

func TestDo_ExhaustionReturnsLastError(t *testing.T) {
	recordSleeps(t)

	calls := 0
	lastErr := errors.New("connection refused (attempt)")
	op := func(ctx context.Context) (int, error) {
		calls++
		return 0, lastErr
	}

	_, err := Do(context.Background(), Policy{MaxRetries: 2}, op)
	require.Error(t, err)
	// 1 initial attempt + 2 retries.
	assert.Equal(t, 3, calls)
	assert.Same(t, lastErr, err)
}

func TestDo_DelayCappedAtMax(t *testing.T) {
	waits := recordSleeps(t)

	calls := 0
	op := func(ctx context.Context) (int, error) {
		calls++
		return 0, errors.New("network error")
	}

	policy := Policy{MaxRetries: 5, InitialDelay: time.Second, MaxDelay: 3 * time.Second, BackoffFactor: 2}
	_, err := Do(context.Background(), policy, op)
	require.Error(t, err)
	require.Len(t, *waits, 5)
	for _, w := range *waits {
		assert.LessOrEqual(t, w, 3*time.Second)
	}
	// 1s, 2s, then capped.
	assert.Equal(t, time.Second, (*waits)[0])
	assert.Equal(t, 2*time.Second, (*waits)[1])
	assert.Equal(t, 3*time.Second, (*waits)[2])
}

func TestDo_SuccessFirstTry(t *testing.T) {
	waits := recordSleeps(t)

	calls := 0
	result, err := Do(context.Background(), Policy{}, func(ctx context.Context) (int, error) {
		calls++
		return 7, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 7, result)
	assert.Equal(t, 1, calls)
	assert.Empty(t, *waits)
}

func TestDo_ContextCancelledDuringBackoff(t *testing.T) {
	orig := sleep
	sleep = func(ctx context.Context, d time.Duration) error { return context.Canceled }
	t.Cleanup(func() { sleep = orig })

	calls := 0
	_, err := Do(context.Background(), Policy{MaxRetries: 3}, func(ctx context.Context) (int, error) {
		calls++
		return 0, errors.New("timeout")
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, calls)
}

func TestPolicy_Retryable(t *testing.T) {
	p := DefaultPolicy()
	assert.True(t, p.Retryable(errors.New("dial tcp: connection refused")))
	assert.True(t, p.Retryable(errors.New("request timed out")))
	assert.False(t, p.Retryable(errors.New("invalid amount for amount")))
	assert.False(t, p.Retryable(nil))

	custom := Policy{RetryableErrors: []string{"rate limit"}}.normalize()
	assert.True(t, custom.Retryable(errors.New("rate limit exceeded")))
	assert.False(t, custom.Retryable(errors.New("connection refused")))
}
