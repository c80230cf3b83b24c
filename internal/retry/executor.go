package retry

import (
	"context"
	"fmt"
	"time"

	"github.com/vvka-141/pubfs/pkg/pubfs"
)

// ExhaustedError is returned when every allowed attempt failed with a
// transient error. It unwraps to both pubfs.ErrRetryExhausted and the last
// underlying error.
type ExhaustedError struct {
	Attempts int
	Err      error
}

func (e *ExhaustedError) Error() string {
	return fmt.Sprintf("%s after %d attempt(s): %v", pubfs.ErrRetryExhausted, e.Attempts, e.Err)
}

func (e *ExhaustedError) Unwrap() []error {
	return []error{pubfs.ErrRetryExhausted, e.Err}
}

// Executor orchestrates retry attempts with backoff and error classification.
//
// Thread Safety:
// The Executor itself is safe for concurrent use when calling Execute().
// WithOnRetry() returns a NEW instance with the callback configured; the
// original Executor remains unchanged.
type Executor struct {
	classifier pubfs.ErrorClassifier
	strategy   pubfs.BackoffStrategy
	onRetry    func(attempt int, err error, delay time.Duration)
}

// NewExecutor creates a new retry executor with the given configuration.
// Panics if classifier or strategy is nil.
func NewExecutor(
	classifier pubfs.ErrorClassifier,
	strategy pubfs.BackoffStrategy,
) *Executor {
	if classifier == nil {
		panic("classifier cannot be nil")
	}
	if strategy == nil {
		panic("strategy cannot be nil")
	}
	return &Executor{
		classifier: classifier,
		strategy:   strategy,
	}
}

// WithOnRetry returns a new Executor with the specified retry callback.
// The callback runs before each backoff wait with the one-indexed number of
// the attempt that just failed.
func (e *Executor) WithOnRetry(callback func(attempt int, err error, delay time.Duration)) *Executor {
	clone := *e
	clone.onRetry = callback
	return &clone
}

// MaxAttempts reports the executor's total attempt budget.
func (e *Executor) MaxAttempts() int {
	return e.strategy.MaxAttempts()
}

// Execute runs the operation with retry logic.
func (e *Executor) Execute(ctx context.Context, operation func(ctx context.Context) error) error {
	_, err := Do(ctx, e, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, operation(ctx)
	})
	return err
}

// Do runs operation under the executor's policy and returns the value of the
// first successful attempt.
//
// A fatal error (classifier says not transient) is returned as-is without
// further attempts. When the budget is spent the last error is wrapped in an
// *ExhaustedError. Once ctx is done the attempt's error is returned as-is;
// an attempt that failed on its own deadline is still retried while ctx is
// live. Context cancellation during a backoff wait returns ctx.Err().
func Do[T any](ctx context.Context, e *Executor, operation func(ctx context.Context) (T, error)) (T, error) {
	maxAttempts := e.strategy.MaxAttempts()
	if maxAttempts < 1 {
		maxAttempts = 1
	}

	var zero T
	for attempt := 1; ; attempt++ {
		value, err := operation(ctx)
		if err == nil {
			return value, nil
		}

		if ctx.Err() != nil {
			return zero, err
		}
		if !e.classifier.IsTransient(err) {
			return zero, err
		}
		if attempt >= maxAttempts {
			return zero, &ExhaustedError{Attempts: attempt, Err: err}
		}

		delay := e.strategy.NextDelay(attempt)
		if e.onRetry != nil {
			e.onRetry(attempt, err, delay)
		}

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return zero, ctx.Err()
		case <-timer.C:
		}
	}
}

// Retry re-invokes fn on any error, up to maxAttempts total attempts, with the
// default exponential backoff between attempts.
func Retry[T any](ctx context.Context, fn func(ctx context.Context) (T, error), maxAttempts int) (T, error) {
	return RetryWhile(ctx, fn, func(error) bool { return true }, maxAttempts)
}

// RetryWhile is Retry with a predicate consulted after every failure. The
// first time shouldRetry returns false, retrying stops and that error is
// returned unchanged.
func RetryWhile[T any](
	ctx context.Context,
	fn func(ctx context.Context) (T, error),
	shouldRetry func(err error) bool,
	maxAttempts int,
) (T, error) {
	executor := NewExecutor(pubfs.ClassifierFunc(shouldRetry), NewExponentialBackoff(maxAttempts))
	return Do(ctx, executor, fn)
}
