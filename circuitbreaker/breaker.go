// Package circuitbreaker protects callers from hammering an unhealthy
// YieldRoute backend. After a run of consecutive request failures the circuit
// opens and requests are rejected locally until a reset delay has passed, at
// which point a limited number of probe requests decide whether to close it
// again.
package circuitbreaker

import (
	"errors"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// State represents the current state of the circuit breaker
type State int

// Circuit breaker states
const (
	StateClosed   State = iota // Normal operation
	StateOpen                  // Tripped, requests rejected locally
	StateHalfOpen              // Probing whether the backend has recovered
)

// ErrOpen is returned by Allow while the circuit is open. Its message is
// deliberately not a transient-network marker, so retry policies never retry
// a rejected request.
var ErrOpen = errors.New("circuit breaker open: backend requests suspended")

// Breaker implements a consecutive-failure circuit breaker around backend
// requests.
type Breaker struct {
	// Number of consecutive failures that trips the circuit
	failureThreshold int

	// Duration before a reset attempt after a trip
	resetDelay time.Duration

	// Number of successful probes required to close the circuit again
	successThreshold int

	// Mutex for thread safety
	mu sync.RWMutex

	state        State
	lastTrip     time.Time
	failureCount int
	successCount int

	// Event callback for monitoring/alerting
	onTripCallback func(reason error)
}

// New creates a Breaker that trips after failureThreshold consecutive
// failures.
func New(failureThreshold int) *Breaker {
	if failureThreshold <= 0 {
		failureThreshold = 5
	}
	return &Breaker{
		failureThreshold: failureThreshold,
		resetDelay:       30 * time.Second,
		successThreshold: 2,
	}
}

// WithResetDelay sets a custom reset delay and returns the breaker.
func (b *Breaker) WithResetDelay(delay time.Duration) *Breaker {
	b.resetDelay = delay
	return b
}

// WithSuccessThreshold sets the number of successful probes needed to close
// the circuit.
func (b *Breaker) WithSuccessThreshold(threshold int) *Breaker {
	b.successThreshold = threshold
	return b
}

// WithTripCallback sets a callback invoked whenever the circuit trips.
func (b *Breaker) WithTripCallback(callback func(reason error)) *Breaker {
	b.onTripCallback = callback
	return b
}

// Allow reports whether a request may proceed. It returns ErrOpen while the
// circuit is open and the reset delay has not yet elapsed.
func (b *Breaker) Allow() error {
	b.mu.RLock()
	state := b.state
	lastTrip := b.lastTrip
	b.mu.RUnlock()

	if state != StateOpen {
		return nil
	}
	if time.Since(lastTrip) < b.resetDelay {
		return ErrOpen
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.state == StateOpen {
		b.state = StateHalfOpen
		b.successCount = 0
		logrus.Info("Circuit breaker half-open: probing backend recovery")
	}
	return nil
}

// Record feeds the outcome of a request back into the breaker.
func (b *Breaker) Record(err error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err != nil {
		b.failureCount++
		b.successCount = 0
		if b.state == StateHalfOpen || b.failureCount >= b.failureThreshold {
			b.trip(err)
		}
		return
	}

	b.failureCount = 0
	if b.state == StateHalfOpen {
		b.successCount++
		if b.successCount >= b.successThreshold {
			b.state = StateClosed
			b.successCount = 0
			logrus.Info("Circuit breaker closed: backend has recovered")
		}
	}
}

// GetState returns the current state of the circuit breaker.
func (b *Breaker) GetState() State {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.state
}

// Reset forcibly resets the circuit breaker to closed state.
func (b *Breaker) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.state = StateClosed
	b.failureCount = 0
	b.successCount = 0
	logrus.Info("Circuit breaker manually reset to closed state")
}

// trip opens the circuit. Caller must hold b.mu.
func (b *Breaker) trip(reason error) {
	b.state = StateOpen
	b.lastTrip = time.Now()
	b.failureCount = 0
	logrus.Warnf("Circuit breaker tripped: %v", reason)

	if b.onTripCallback != nil {
		go b.onTripCallback(reason)
	}
}
