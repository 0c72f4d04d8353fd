// Package signals turns process interrupts into context cancellation so long
// running commands such as watch can shut down cleanly.
package signals

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

// Error is the cancellation cause of a context canceled by a signal.
type Error struct {
	Signal os.Signal
}

func (e *Error) Error() string {
	return fmt.Sprintf("received signal %s", e.Signal)
}

// SetupSignalContext creates a context that's canceled on SIGINT/SIGTERM.
// context.Cause reports the signal as an *Error.
func SetupSignalContext(parent context.Context) (context.Context, context.CancelFunc) {
	return setup(parent, syscall.SIGINT, syscall.SIGTERM)
}

func setup(parent context.Context, sigs ...os.Signal) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancelCause(parent)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, sigs...)

	go func() {
		select {
		case sig := <-sigChan:
			cancel(&Error{Signal: sig})
		case <-ctx.Done():
		}
		signal.Stop(sigChan)
	}()

	return ctx, func() { cancel(context.Canceled) }
}

// Interrupted reports the signal that canceled ctx, if any.
func Interrupted(ctx context.Context) (os.Signal, bool) {
	if e, ok := context.Cause(ctx).(*Error); ok {
		return e.Signal, true
	}
	return nil, false
}
