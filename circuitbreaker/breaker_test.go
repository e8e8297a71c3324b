package circuitbreaker

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBreaker_TripsAfterConsecutiveFailures(t *testing.T) {
	b := New(3)
	failure := errors.New("backend unavailable")

	require.NoError(t, b.Allow())
	b.Record(failure)
	b.Record(failure)
	assert.Equal(t, StateClosed, b.GetState())

	b.Record(failure)
	assert.Equal(t, StateOpen, b.GetState())
	assert.ErrorIs(t, b.Allow(), ErrOpen)
}

func TestBreaker_SuccessResetsFailureCount(t *testing.T) {
	b := New(3)
	failure := errors.New("backend unavailable")

	b.Record(failure)
	b.Record(failure)
	b.Record(nil)
	b.Record(failure)
	b.Record(failure)
	assert.Equal(t, StateClosed, b.GetState())
}

func TestBreaker_HalfOpenAfterResetDelay(t *testing.T) {
	b := New(1).WithResetDelay(10 * time.Millisecond).WithSuccessThreshold(2)
	failure := errors.New("backend unavailable")

	b.Record(failure)
	assert.Equal(t, StateOpen, b.GetState())
	assert.ErrorIs(t, b.Allow(), ErrOpen)

	time.Sleep(15 * time.Millisecond)
	require.NoError(t, b.Allow())
	assert.Equal(t, StateHalfOpen, b.GetState())

	// One success is not enough to close it.
	b.Record(nil)
	assert.Equal(t, StateHalfOpen, b.GetState())

	b.Record(nil)
	assert.Equal(t, StateClosed, b.GetState())
}

func TestBreaker_FailureInHalfOpenReopens(t *testing.T) {
	b := New(2).WithResetDelay(10 * time.Millisecond)
	failure := errors.New("backend unavailable")

	b.Record(failure)
	b.Record(failure)
	assert.Equal(t, StateOpen, b.GetState())

	time.Sleep(15 * time.Millisecond)
	require.NoError(t, b.Allow())
	assert.Equal(t, StateHalfOpen, b.GetState())

	b.Record(failure)
	assert.Equal(t, StateOpen, b.GetState())
}

func TestBreaker_Reset(t *testing.T) {
	b := New(1)
	b.Record(errors.New("backend unavailable"))
	assert.Equal(t, StateOpen, b.GetState())

	b.Reset()
	assert.Equal(t, StateClosed, b.GetState())
	assert.NoError(t, b.Allow())
}

func TestBreaker_TripCallback(t *testing.T) {
	tripped := make(chan error, 1)
	b := New(1).WithTripCallback(func(reason error) { tripped <- reason })

	cause := errors.New("backend unavailable")
	b.Record(cause)

	select {
	case reason := <-tripped:
		assert.Equal(t, cause, reason)
	case <-time.After(time.Second):
		t.Fatal("trip callback was not invoked")
	}
}
