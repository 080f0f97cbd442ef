package lifecycle

import (
	"context"
	"time"

	"github.com/Dishankaswal/CodeArena/internal/domain/model"
)

// Countdown emits the contest's countdown string once per interval, starting
// immediately. The channel closes once the terminal phase is emitted or the
// context is cancelled, so no timer outlives its contest or its consumer.
func Countdown(ctx context.Context, start time.Time, duration, interval time.Duration) <-chan string {
	ch := make(chan string, 1)
	go func() {
		defer close(ch)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			now := time.Now()
			label := model.CountdownAt(start, now, duration)
			select {
			case ch <- label:
			case <-ctx.Done():
				return
			}
			if model.PhaseAt(start, now, duration) == model.PhaseEnded {
				return
			}
			select {
			case <-ticker.C:
			case <-ctx.Done():
				return
			}
		}
	}()
	return ch
}
