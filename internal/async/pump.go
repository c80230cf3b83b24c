package async

import (
	"context"
	"io"
	"sync"
)

// Pump copies src into dst on its own goroutine and reports completion as
// events: EventFinish with the byte count, or EventError with the failure.
// Nothing is copied until Start is called.
type Pump struct {
	*Emitter
	dst  io.Writer
	src  io.Reader
	once sync.Once
}

// NewPump creates an idle Pump.
func NewPump(dst io.Writer, src io.Reader) *Pump {
	return &Pump{Emitter: NewEmitter(), dst: dst, src: src}
}

// Start begins copying. Calls after the first are no-ops.
func (p *Pump) Start(ctx context.Context) {
	p.once.Do(func() {
		go func() {
			n, err := io.Copy(p.dst, &contextReader{ctx: ctx, r: p.src})
			if err != nil {
				p.Emit(EventError, err)
				return
			}
			p.Emit(EventFinish, n)
		}()
	})
}

type contextReader struct {
	ctx context.Context
	r   io.Reader
}

func (c *contextReader) Read(p []byte) (int, error) {
	if err := c.ctx.Err(); err != nil {
		return 0, err
	}
	return c.r.Read(p)
}
