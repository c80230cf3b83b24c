package async

import "context"

// While calls body until cond returns false. body must eventually make cond
// false. Any error from body, or cancellation of ctx, ends the loop.
func While(ctx context.Context, cond func() bool, body func(ctx context.Context) error) error {
	for cond() {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := body(ctx); err != nil {
			return err
		}
	}
	return nil
}
