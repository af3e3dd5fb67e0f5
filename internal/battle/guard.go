package battle

import (
	"context"
	"fmt"
	"time"
)

// callGuard runs collaborator code with a time budget and panic isolation.
// Player bots are untrusted: a hung or crashing bot must cost that player
// the match, not the process.
type callGuard struct {
	timeout time.Duration
}

// do runs fn, converting panics into ErrStrategyPanic and overruns into
// ErrStrategyTimeout. A zero timeout disables the budget. The collaborator
// goroutine cannot be killed on timeout; the buffered channel lets it finish
// and be collected quietly.
func (g callGuard) do(ctx context.Context, fn func() error) error {
	done := make(chan error, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- fmt.Errorf("%w: %v", ErrStrategyPanic, r)
			}
		}()
		done <- fn()
	}()

	var expired <-chan time.Time
	if g.timeout > 0 {
		timer := time.NewTimer(g.timeout)
		defer timer.Stop()
		expired = timer.C
	}

	select {
	case err := <-done:
		return err
	case <-expired:
		return ErrStrategyTimeout
	case <-ctx.Done():
		return ctx.Err()
	}
}
