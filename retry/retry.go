// Package retry provides a bounded exponential backoff wrapper for operations
// that may fail transiently, such as HTTP calls to the YieldRoute backend.
// Only errors whose message matches one of the configured retryable markers
// are retried; everything else fails fast.
package retry

import (
	"context"
	"math"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// Policy configures how an operation is retried.
type Policy struct {
	// MaxRetries is the number of additional attempts after the first one.
	MaxRetries int

	// InitialDelay is the wait before the first retry.
	InitialDelay time.Duration

	// MaxDelay caps the exponentially growing wait between attempts.
	MaxDelay time.Duration

	// BackoffFactor multiplies the delay after each failed attempt.
	BackoffFactor float64

	// RetryableErrors lists substrings identifying transient failures.
	// An error whose message contains none of them is returned immediately.
	RetryableErrors []string
}

// DefaultPolicy returns the retry policy used when callers pass a zero Policy:
// 3 retries starting at 1s, doubling up to a 10s cap, retrying only generic
// connection, timeout and network failures.
func DefaultPolicy() Policy {
	return Policy{
		MaxRetries:    3,
		InitialDelay:  time.Second,
		MaxDelay:      10 * time.Second,
		BackoffFactor: 2,
		RetryableErrors: []string{
			"connection refused",
			"connection reset",
			"timeout",
			"timed out",
			"network",
			"temporarily unavailable",
			"EOF",
		},
	}
}

// normalize fills in defaults for unset policy fields so a partially
// populated Policy still behaves sanely.
func (p Policy) normalize() Policy {
	def := DefaultPolicy()
	if p.MaxRetries < 0 {
		p.MaxRetries = 0
	}
	if p.InitialDelay <= 0 {
		p.InitialDelay = def.InitialDelay
	}
	if p.MaxDelay < p.InitialDelay {
		p.MaxDelay = def.MaxDelay
		if p.MaxDelay < p.InitialDelay {
			p.MaxDelay = p.InitialDelay
		}
	}
	if p.BackoffFactor < 1 {
		p.BackoffFactor = def.BackoffFactor
	}
	if p.RetryableErrors == nil {
		p.RetryableErrors = def.RetryableErrors
	}
	return p
}

// Retryable reports whether err matches one of the policy's transient
// failure markers.
func (p Policy) Retryable(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	for _, marker := range p.RetryableErrors {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}

// delay returns the wait before retry number attempt (0-based), capped at
// MaxDelay.
func (p Policy) delay(attempt int) time.Duration {
	d := time.Duration(float64(p.InitialDelay) * math.Pow(p.BackoffFactor, float64(attempt)))
	if d > p.MaxDelay || d <= 0 {
		d = p.MaxDelay
	}
	return d
}

// sleep waits for d or until ctx is done. Overridable in tests.
var sleep = func(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Do runs op up to p.MaxRetries+1 times, sleeping between attempts according
// to the policy. The error from the final attempt is returned unwrapped.
func Do[T any](ctx context.Context, p Policy, op func(ctx context.Context) (T, error)) (T, error) {
	p = p.normalize()

	var zero T
	var lastErr error
	for attempt := 0; attempt <= p.MaxRetries; attempt++ {
		result, err := op(ctx)
		if err == nil {
			return result, nil
		}
		lastErr = err

		if !p.Retryable(err) {
			return zero, err
		}
		if attempt == p.MaxRetries {
			break
		}

		wait := p.delay(attempt)
		logrus.WithFields(logrus.Fields{
			"attempt": attempt + 1,
			"wait":    wait,
		}).Warnf("Retrying after transient error: %v", err)
		if serr := sleep(ctx, wait); serr != nil {
			return zero, serr
		}
	}
	return zero, lastErr
}
