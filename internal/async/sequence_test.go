package async

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSequence_ThreadsValueInOrder(t *testing.T) {
	var order []string
	step := func(name string) Step[string] {
		return func(ctx context.Context, in string) (string, error) {
			order = append(order, name)
			return in + "/" + name, nil
		}
	}

	got, err := Sequence(context.Background(), []Step[string]{step("a"), step("b"), step("c")}, "")
	require.NoError(t, err)
	assert.Equal(t, "/a/b/c", got)
	assert.Equal(t, []string{"a", "b", "c"}, order)
}

func TestSequence_EmptyReturnsInitial(t *testing.T) {
	got, err := Sequence[int](context.Background(), nil, 42)
	require.NoError(t, err)
	assert.Equal(t, 42, got)
}

func TestSequence_StopsAtFirstError(t *testing.T) {
	boom := errors.New("boom")
	calls := 0
	steps := []Step[int]{
		func(ctx context.Context, in int) (int, error) { calls++; return in + 1, nil },
		func(ctx context.Context, in int) (int, error) { calls++; return 0, boom },
		func(ctx context.Context, in int) (int, error) { calls++; return in + 100, nil },
	}

	_, err := Sequence(context.Background(), steps, 0)
	require.ErrorIs(t, err, boom)
	assert.Equal(t, 2, calls, "steps after the failure must not run")
}

func TestSequence_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	calls := 0
	_, err := Sequence(ctx, []Step[int]{
		func(ctx context.Context, in int) (int, error) { calls++; return in, nil },
	}, 0)
	require.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, calls)
}

func TestWhile_RunsUntilConditionFalse(t *testing.T) {
	i := 0
	err := While(context.Background(), func() bool { return i < 5 }, func(ctx context.Context) error {
		i++
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 5, i)
}

func TestWhile_FalseConditionNeverRunsBody(t *testing.T) {
	err := While(context.Background(), func() bool { return false }, func(ctx context.Context) error {
		t.Fatal("body must not run")
		return nil
	})
	require.NoError(t, err)
}

func TestWhile_BodyErrorAborts(t *testing.T) {
	boom := errors.New("boom")
	i := 0
	err := While(context.Background(), func() bool { return true }, func(ctx context.Context) error {
		i++
		if i == 3 {
			return boom
		}
		return nil
	})
	require.ErrorIs(t, err, boom)
	assert.Equal(t, 3, i)
}
