package retry

import (
	"math"
	"math/rand"
	"time"

	"github.com/vvka-141/pubfs/pkg/pubfs"
)

// ExponentialBackoff implements exponential backoff with jitter.
//
// The wait after failed attempt n (one-indexed) is
//
//	delay  = baseDelay * multiplier^(n-1)
//	spread = max(baseDelay, delay/4)
//	wait   = delay + uniform(-spread, +spread)
//
// clamped to [0, maxDelay].
type ExponentialBackoff struct {
	// baseDelay is the wait after the first failed attempt
	baseDelay time.Duration

	// maxDelay is the maximum delay between attempts
	maxDelay time.Duration

	// multiplier is the factor by which delay increases (typically 2.0)
	multiplier float64

	// maxAttempts is the total number of attempts including the first (<= 1 = no retries)
	maxAttempts int

	// jitter enables the random spread around each delay
	jitter bool

	// jitterFunc provides random values [0, 1) for jitter calculation (defaults to rand.Float64)
	jitterFunc func() float64
}

// BackoffOption is a functional option for configuring ExponentialBackoff.
type BackoffOption func(*ExponentialBackoff)

// WithBaseDelay sets the delay unit used after the first failed attempt.
func WithBaseDelay(d time.Duration) BackoffOption {
	return func(b *ExponentialBackoff) {
		b.baseDelay = d
	}
}

// WithMaxDelay sets the maximum delay between retry attempts.
func WithMaxDelay(d time.Duration) BackoffOption {
	return func(b *ExponentialBackoff) {
		b.maxDelay = d
	}
}

// WithMultiplier sets the factor by which delay increases between attempts.
func WithMultiplier(m float64) BackoffOption {
	return func(b *ExponentialBackoff) {
		b.multiplier = m
	}
}

// WithoutJitter disables the random spread so delays are exact.
func WithoutJitter() BackoffOption {
	return func(b *ExponentialBackoff) {
		b.jitter = false
	}
}

// WithJitterFunc sets a custom function for generating random jitter values.
func WithJitterFunc(f func() float64) BackoffOption {
	return func(b *ExponentialBackoff) {
		b.jitter = true
		b.jitterFunc = f
	}
}

// NewExponentialBackoff creates a new exponential backoff strategy with sensible defaults.
// Additional configuration can be provided via functional options.
//
// Example:
//
//	backoff := retry.NewExponentialBackoff(5,
//	    retry.WithBaseDelay(50 * time.Millisecond),
//	    retry.WithMaxDelay(10 * time.Second),
//	)
func NewExponentialBackoff(maxAttempts int, opts ...BackoffOption) *ExponentialBackoff {
	b := &ExponentialBackoff{
		baseDelay:   pubfs.DefaultRetryBaseDelay,
		maxDelay:    pubfs.DefaultRetryMaxDelay,
		multiplier:  2.0,
		maxAttempts: maxAttempts,
		jitter:      true,
	}

	for _, opt := range opts {
		opt(b)
	}

	return b
}

// NextDelay calculates the wait after the given failed attempt.
func (b *ExponentialBackoff) NextDelay(attempt int) time.Duration {
	if attempt < 1 {
		attempt = 1
	}
	base := float64(b.baseDelay)
	delay := base * math.Pow(b.multiplier, float64(attempt-1))

	if b.jitter {
		jitterFunc := b.jitterFunc
		if jitterFunc == nil {
			// Tests should explicitly set jitterFunc to a deterministic function.
			jitterFunc = rand.Float64
		}
		spread := math.Max(base, 0.25*delay)
		delay += (jitterFunc()*2.0 - 1.0) * spread // Map [0,1) to [-spread, +spread)
	}

	if delay < 0 {
		delay = 0
	}
	if limit := float64(b.maxDelay); b.maxDelay > 0 && delay > limit {
		delay = limit
	}

	return time.Duration(delay)
}

// MaxAttempts returns the total number of attempts.
func (b *ExponentialBackoff) MaxAttempts() int {
	return b.maxAttempts
}

// BaseDelay returns the base delay for tests and debugging.
func (b *ExponentialBackoff) BaseDelay() time.Duration {
	return b.baseDelay
}

// MaxDelay returns the maximum delay for tests and debugging.
func (b *ExponentialBackoff) MaxDelay() time.Duration {
	return b.maxDelay
}

// Multiplier returns the backoff multiplier for tests and debugging.
func (b *ExponentialBackoff) Multiplier() float64 {
	return b.multiplier
}
