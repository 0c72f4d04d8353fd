package signals

import (
	"context"
	"syscall"
	"testing"
	"time"
)

func TestSetupSignalContext(t *testing.T) {
	parent, parentCancel := context.WithCancel(context.Background())

	ctx, cancel := SetupSignalContext(parent)
	defer cancel()

	select {
	case <-ctx.Done():
		t.Fatal("context should not be done yet")
	default:
	}

	parentCancel()

	select {
	case <-ctx.Done():
	case <-time.After(time.Second):
		t.Fatal("context should be done after parent cancel")
	}
	if _, ok := Interrupted(ctx); ok {
		t.Error("parent cancellation is not an interrupt")
	}
}

func TestSetupSignalContext_Signal(t *testing.T) {
	ctx, cancel := setup(context.Background(), syscall.SIGUSR1)
	defer cancel()

	if err := syscall.Kill(syscall.Getpid(), syscall.SIGUSR1); err != nil {
		t.Fatalf("failed to send signal: %v", err)
	}

	select {
	case <-ctx.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("context should be done after the signal")
	}
	sig, ok := Interrupted(ctx)
	if !ok || sig != syscall.SIGUSR1 {
		t.Errorf("Interrupted() = %v, %v; want SIGUSR1", sig, ok)
	}
}

func TestCancel(t *testing.T) {
	ctx, cancel := SetupSignalContext(context.Background())
	cancel()

	<-ctx.Done()
	if _, ok := Interrupted(ctx); ok {
		t.Error("explicit cancel is not an interrupt")
	}
}
