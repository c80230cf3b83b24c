package async

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmitter_OnEmitOff(t *testing.T) {
	e := NewEmitter()

	var got []any
	off := e.On("tick", func(payload any) { got = append(got, payload) })

	assert.Equal(t, 1, e.Emit("tick", 1))
	assert.Equal(t, 1, e.Emit("tick", 2))
	assert.Equal(t, 0, e.Emit("other", 3))

	off()
	off() // idempotent
	assert.Equal(t, 0, e.Emit("tick", 4))
	assert.Equal(t, []any{1, 2}, got)
	assert.Zero(t, e.ListenerCount("tick"))
}

func TestEmitter_CallsListenersInSubscriptionOrder(t *testing.T) {
	e := NewEmitter()
	var order []int
	for i := 0; i < 5; i++ {
		i := i
		e.On("x", func(any) { order = append(order, i) })
	}
	e.Emit("x", nil)
	assert.Equal(t, []int{0, 1, 2, 3, 4}, order)
}

func TestAwaitEvent_Resolves(t *testing.T) {
	e := NewEmitter()
	go func() {
		for e.ListenerCount("ready") == 0 {
			time.Sleep(time.Millisecond)
		}
		e.Emit("ready", "payload")
		e.Emit("ready", "second")
	}()

	got, err := AwaitEvent(context.Background(), e, "ready", "failed")
	require.NoError(t, err)
	assert.Equal(t, "payload", got)
	assert.Zero(t, e.ListenerCount("ready"), "listeners must be detached")
	assert.Zero(t, e.ListenerCount("failed"), "listeners must be detached")
}

func TestAwaitEvent_RejectsWithErrorPayload(t *testing.T) {
	e := NewEmitter()
	boom := errors.New("boom")
	go func() {
		for e.ListenerCount("failed") == 0 {
			time.Sleep(time.Millisecond)
		}
		e.Emit("failed", boom)
	}()

	_, err := AwaitEvent(context.Background(), e, "ready", "failed")
	require.ErrorIs(t, err, boom)
	assert.Zero(t, e.ListenerCount("failed"))
}

func TestAwaitEvent_RejectsWithNonErrorPayload(t *testing.T) {
	e := NewEmitter()
	go func() {
		for e.ListenerCount("failed") == 0 {
			time.Sleep(time.Millisecond)
		}
		e.Emit("failed", 7)
	}()

	_, err := AwaitEvent(context.Background(), e, "ready", "failed")
	var rejected *RejectedError
	require.ErrorAs(t, err, &rejected)
	assert.Equal(t, "failed", rejected.Event)
	assert.Equal(t, 7, rejected.Payload)
}

func TestAwaitEvent_WithoutRejectEvent(t *testing.T) {
	e := NewEmitter()
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	go e.Emit("error", errors.New("ignored"))

	_, err := AwaitEvent(ctx, e, "ready", "")
	require.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Zero(t, e.ListenerCount("ready"))
}

func TestAwaitEvent_FiresAtMostOnce(t *testing.T) {
	e := NewEmitter()
	var wg sync.WaitGroup
	go func() {
		for e.ListenerCount("ready") == 0 {
			time.Sleep(time.Millisecond)
		}
		for i := 0; i < 10; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				e.Emit("ready", i)
			}(i)
		}
	}()

	_, err := AwaitEvent(context.Background(), e, "ready", "")
	require.NoError(t, err)
	wg.Wait()
	assert.Zero(t, e.ListenerCount("ready"))
}

func TestAwaitStream_Pump(t *testing.T) {
	var dst bytes.Buffer
	pump := NewPump(&dst, strings.NewReader("hello world"))

	require.NoError(t, AwaitStream(context.Background(), pump))
	assert.Equal(t, "hello world", dst.String())
	assert.Zero(t, pump.ListenerCount(EventFinish))
	assert.Zero(t, pump.ListenerCount(EventError))
}

type failingReader struct{ err error }

func (r failingReader) Read([]byte) (int, error) { return 0, r.err }

func TestAwaitStream_PumpError(t *testing.T) {
	boom := errors.New("read failed")
	pump := NewPump(io.Discard, failingReader{err: boom})

	err := AwaitStream(context.Background(), pump)
	require.ErrorIs(t, err, boom)
}

func TestAwaitStream_EndEvent(t *testing.T) {
	e := NewEmitter()
	go func() {
		for e.ListenerCount(EventEnd) == 0 {
			time.Sleep(time.Millisecond)
		}
		e.Emit(EventEnd, nil)
	}()

	require.NoError(t, AwaitStream(context.Background(), e))
}

func TestAwaitStream_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := AwaitStream(ctx, NewPump(io.Discard, strings.NewReader("data")))
	require.ErrorIs(t, err, context.Canceled)
}
