package retry

import (
	"testing"
	"time"

	"github.com/vvka-141/pubfs/pkg/pubfs"
)

func TestExponentialBackoff_DefaultValues(t *testing.T) {
	strategy := NewExponentialBackoff(3)

	if strategy.BaseDelay() != pubfs.DefaultRetryBaseDelay {
		t.Errorf("Expected BaseDelay=%v, got %v", pubfs.DefaultRetryBaseDelay, strategy.BaseDelay())
	}
	if strategy.MaxDelay() != pubfs.DefaultRetryMaxDelay {
		t.Errorf("Expected MaxDelay=%v, got %v", pubfs.DefaultRetryMaxDelay, strategy.MaxDelay())
	}
	if strategy.Multiplier() != 2.0 {
		t.Errorf("Expected Multiplier=2.0, got %v", strategy.Multiplier())
	}
	if strategy.MaxAttempts() != 3 {
		t.Errorf("Expected MaxAttempts=3, got %v", strategy.MaxAttempts())
	}
}

func TestExponentialBackoff_NextDelay_WithoutJitter(t *testing.T) {
	strategy := NewExponentialBackoff(5,
		WithBaseDelay(20*time.Millisecond),
		WithoutJitter(),
	)

	tests := []struct {
		attempt       int
		expectedDelay time.Duration
	}{
		{attempt: 0, expectedDelay: 20 * time.Millisecond}, // clamped to first attempt
		{attempt: 1, expectedDelay: 20 * time.Millisecond}, // 20 * 2^0
		{attempt: 2, expectedDelay: 40 * time.Millisecond}, // 20 * 2^1
		{attempt: 3, expectedDelay: 80 * time.Millisecond},
		{attempt: 4, expectedDelay: 160 * time.Millisecond},
		{attempt: 5, expectedDelay: 320 * time.Millisecond},
	}

	for _, tt := range tests {
		if got := strategy.NextDelay(tt.attempt); got != tt.expectedDelay {
			t.Errorf("NextDelay(%d) = %v, want %v", tt.attempt, got, tt.expectedDelay)
		}
	}
}

func TestExponentialBackoff_NextDelay_CapsAtMaxDelay(t *testing.T) {
	strategy := NewExponentialBackoff(20,
		WithBaseDelay(100*time.Millisecond),
		WithMaxDelay(time.Second),
		WithoutJitter(),
	)

	if got := strategy.NextDelay(10); got != time.Second {
		t.Errorf("NextDelay(10) = %v, want %v", got, time.Second)
	}
}

func TestExponentialBackoff_NextDelay_JitterBounds(t *testing.T) {
	// For small attempts the spread is one base unit; later it is a quarter of the delay.
	tests := []struct {
		name    string
		attempt int
		random  float64
		want    time.Duration
	}{
		{name: "attempt 1 lowest", attempt: 1, random: 0.0, want: 0},                        // 20 - 20
		{name: "attempt 1 middle", attempt: 1, random: 0.5, want: 20 * time.Millisecond},    // 20 + 0
		{name: "attempt 2 lowest", attempt: 2, random: 0.0, want: 20 * time.Millisecond},    // 40 - 20
		{name: "attempt 2 near top", attempt: 2, random: 0.75, want: 50 * time.Millisecond}, // 40 + 10
		{name: "attempt 4 lowest", attempt: 4, random: 0.0, want: 120 * time.Millisecond},   // 160 - 40
		{name: "attempt 4 near top", attempt: 4, random: 1.0, want: 200 * time.Millisecond}, // 160 + 40
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			random := tt.random
			strategy := NewExponentialBackoff(5,
				WithBaseDelay(20*time.Millisecond),
				WithJitterFunc(func() float64 { return random }),
			)
			if got := strategy.NextDelay(tt.attempt); got != tt.want {
				t.Errorf("NextDelay(%d) = %v, want %v", tt.attempt, got, tt.want)
			}
		})
	}
}

func TestExponentialBackoff_NextDelay_RandomJitterStaysInRange(t *testing.T) {
	strategy := NewExponentialBackoff(5, WithBaseDelay(20*time.Millisecond))

	for i := 0; i < 200; i++ {
		got := strategy.NextDelay(3) // 80ms +/- 20ms
		if got < 60*time.Millisecond || got > 100*time.Millisecond {
			t.Fatalf("NextDelay(3) = %v outside [60ms, 100ms]", got)
		}
	}
}
