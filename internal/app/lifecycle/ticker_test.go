package lifecycle

import (
	"context"
	"testing"
	"time"

	"github.com/Dishankaswal/CodeArena/internal/domain/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func collect(t *testing.T, ch <-chan string, timeout time.Duration) []string {
	t.Helper()
	var labels []string
	deadline := time.After(timeout)
	for {
		select {
		case label, ok := <-ch:
			if !ok {
				return labels
			}
			labels = append(labels, label)
		case <-deadline:
			t.Fatal("countdown channel did not close in time")
		}
	}
}

func TestCountdown_EmitsImmediately(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	start := time.Now().Add(time.Hour)
	ch := Countdown(ctx, start, model.ContestDuration, time.Hour)

	select {
	case label := <-ch:
		assert.Contains(t, label, "Starts in")
	case <-time.After(time.Second):
		t.Fatal("expected an immediate countdown emission")
	}
}

func TestCountdown_StopsAtEnded(t *testing.T) {
	// Contest runs for 60ms starting 40ms from now; the ticker must emit the
	// terminal label and close on its own, with no cancellation.
	start := time.Now().Add(40 * time.Millisecond)
	ch := Countdown(context.Background(), start, 60*time.Millisecond, 20*time.Millisecond)

	labels := collect(t, ch, 2*time.Second)
	require.NotEmpty(t, labels)
	assert.Equal(t, model.CountdownEnded, labels[len(labels)-1])
	// Nothing after the terminal label: channel closed right after it.
	for _, label := range labels[:len(labels)-1] {
		assert.NotEqual(t, model.CountdownEnded, label)
	}
}

func TestCountdown_AlreadyEnded(t *testing.T) {
	start := time.Now().Add(-3 * time.Hour)
	ch := Countdown(context.Background(), start, model.ContestDuration, time.Second)

	labels := collect(t, ch, time.Second)
	assert.Equal(t, []string{model.CountdownEnded}, labels)
}

func TestCountdown_CancelStopsTicker(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	start := time.Now().Add(time.Hour)
	ch := Countdown(ctx, start, model.ContestDuration, 10*time.Millisecond)

	<-ch // first emission
	cancel()

	select {
	case _, ok := <-ch:
		if ok {
			// One buffered emission may still be in flight; the next receive
			// must observe the close.
			_, ok = <-ch
			assert.False(t, ok)
		}
	case <-time.After(time.Second):
		t.Fatal("countdown channel did not close after cancellation")
	}
}
