// Package retry re-runs failing operations with exponential backoff.
//
// The package supports pluggable error classification and backoff strategies.
// Attempt budgets count every invocation, including the first: a budget of 3
// calls the operation at most three times, and a budget <= 1 never retries.
//
// # Example Usage
//
//	value, err := retry.Retry(ctx, func(ctx context.Context) (string, error) {
//	    return fetch(ctx)
//	}, 3)
//
//	err = retry.RetryWhile(ctx, op, func(err error) bool {
//	    return errors.Is(err, syscall.EBUSY)
//	}, 5)
//
// # Error Classification
//
// The pubfs.ErrorClassifier interface decides which errors are transient
// (retryable). FilesystemErrorClassifier recognizes errno values that a busy
// or resource-starved filesystem returns temporarily.
//
// # Backoff Strategies
//
// ExponentialBackoff waits 2^(n-1) base units after attempt n, spread by a
// uniform jitter of at least one base unit so concurrent callers desynchronize.
//
// # Thread Safety
//
// Executor instances are safe for concurrent use. WithOnRetry returns a copy.
package retry
