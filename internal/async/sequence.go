package async

import "context"

// Step is one stage of a Sequence: it receives the previous stage's result.
type Step[T any] func(ctx context.Context, in T) (T, error)

// Sequence runs steps in order, feeding each result into the next step, and
// returns the last result. The first failing step stops the sequence and its
// error is returned; later steps never run. With no steps, initial is returned.
func Sequence[T any](ctx context.Context, steps []Step[T], initial T) (T, error) {
	value := initial
	for _, step := range steps {
		if err := ctx.Err(); err != nil {
			return value, err
		}
		next, err := step(ctx, value)
		if err != nil {
			return value, err
		}
		value = next
	}
	return value, nil
}
