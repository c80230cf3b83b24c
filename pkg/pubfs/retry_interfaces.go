package pubfs

import "time"

// ErrorClassifier determines whether an error is transient (retryable) or fatal.
type ErrorClassifier interface {
	// IsTransient returns true if the error is temporary and the operation should be retried.
	IsTransient(err error) bool
}

// ClassifierFunc adapts a plain predicate to ErrorClassifier.
type ClassifierFunc func(err error) bool

// IsTransient calls f(err).
func (f ClassifierFunc) IsTransient(err error) bool { return f(err) }

// BackoffStrategy calculates the delay before the next attempt.
type BackoffStrategy interface {
	// NextDelay returns the duration to wait after the given failed attempt.
	// attempt is one-indexed (1 = the first attempt just failed).
	NextDelay(attempt int) time.Duration

	// MaxAttempts returns the total number of attempts, including the first.
	// Values <= 1 mean the operation runs once and is never retried.
	MaxAttempts() int
}
