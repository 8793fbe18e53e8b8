// Package latency paces the simulated back end. Every wait is bound to a
// context so a torn-down caller never gets a late callback.
package latency

import (
	"context"
	"time"
)

// Sleep blocks for d or until ctx is done, whichever comes first.
// It returns ctx.Err() when the wait was cut short.
func Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// After runs fn once d has elapsed unless ctx is cancelled first.
// The returned channel is closed when fn has run or been abandoned.
func After(ctx context.Context, d time.Duration, fn func()) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		if Sleep(ctx, d) == nil {
			fn()
		}
	}()
	return done
}
