package async

import (
	"context"
	"fmt"
)

// Stream lifecycle events understood by AwaitStream.
const (
	EventEnd    = "end"
	EventFinish = "finish"
	EventError  = "error"
)

// RejectedError is returned when a reject event fires with a payload that is
// not itself an error.
type RejectedError struct {
	Event   string
	Payload any
}

func (e *RejectedError) Error() string {
	return fmt.Sprintf("%s event: %v", e.Event, e.Payload)
}

// starter is implemented by sources that must not produce events until a
// listener is attached, such as Pump.
type starter interface {
	Start(ctx context.Context)
}

type outcome struct {
	payload any
	err     error
}

// AwaitEvent blocks until source emits resolveEvent (returning its payload) or
// rejectEvent (returning its payload as an error). An empty rejectEvent means
// the wait can only succeed or be cancelled. Only the first event counts, and
// every listener is detached before AwaitEvent returns.
func AwaitEvent(ctx context.Context, source EventSource, resolveEvent, rejectEvent string) (any, error) {
	var rejects []string
	if rejectEvent != "" {
		rejects = []string{rejectEvent}
	}
	return await(ctx, source, []string{resolveEvent}, rejects)
}

// AwaitStream blocks until source emits EventEnd or EventFinish, or fails on
// EventError. If source has a Start(ctx) method it is called after the
// listeners are attached.
func AwaitStream(ctx context.Context, source EventSource) error {
	_, err := await(ctx, source, []string{EventEnd, EventFinish}, []string{EventError})
	return err
}

func await(ctx context.Context, source EventSource, resolves, rejects []string) (any, error) {
	done := make(chan outcome, 1)
	settle := func(o outcome) {
		select {
		case done <- o:
		default:
		}
	}

	var offs []func()
	defer func() {
		for _, off := range offs {
			off()
		}
	}()

	for _, event := range resolves {
		offs = append(offs, source.On(event, func(payload any) {
			settle(outcome{payload: payload})
		}))
	}
	for _, event := range rejects {
		event := event
		offs = append(offs, source.On(event, func(payload any) {
			err, ok := payload.(error)
			if !ok {
				err = &RejectedError{Event: event, Payload: payload}
			}
			settle(outcome{err: err})
		}))
	}

	if s, ok := source.(starter); ok {
		s.Start(ctx)
	}

	select {
	case o := <-done:
		return o.payload, o.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
