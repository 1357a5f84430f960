package countdown

import (
	"context"
	"sync"
	"time"
)

// Handle controls a scheduled task started by Schedule.
type Handle struct {
	cancel context.CancelFunc
	done   chan struct{}
	once   sync.Once
}

// Schedule calls fn every interval until fn returns false, ctx is done, or
// the handle is cancelled.
func Schedule(ctx context.Context, interval time.Duration, fn func(ctx context.Context) bool) *Handle {
	ctx, cancel := context.WithCancel(ctx)
	h := &Handle{cancel: cancel, done: make(chan struct{})}

	go func() {
		defer close(h.done)
		defer cancel()

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				// Both cases may be ready at once; cancellation wins.
				if ctx.Err() != nil {
					return
				}
				if !fn(ctx) {
					return
				}
			}
		}
	}()

	return h
}

// Cancel stops the task and waits for an in-flight call to return. Once
// Cancel returns fn is never called again. Cancel must not be called from
// inside fn; return false there instead.
func (h *Handle) Cancel() {
	h.once.Do(h.cancel)
	<-h.done
}

// Done is closed once the task has stopped for any reason.
func (h *Handle) Done() <-chan struct{} {
	return h.done
}
