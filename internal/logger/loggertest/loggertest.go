// Package loggertest provides test doubles for the logger package.
package loggertest

import (
	"bytes"
	"sync"
	"testing"

	"github.com/rs/zerolog"

	"github.com/schmitthub/tplresolve/internal/logger"
)

// Buffer is a goroutine-safe log sink.
type Buffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *Buffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

// String returns captured log output.
func (b *Buffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

// Reset clears captured output.
func (b *Buffer) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.buf.Reset()
}

// New returns a debug-level JSON logger writing to a fresh Buffer.
func New() (zerolog.Logger, *Buffer) {
	buf := &Buffer{}
	return zerolog.New(buf).Level(zerolog.DebugLevel), buf
}

// Capture redirects the global logger to a buffer at debug level for the
// duration of the test and restores it on cleanup.
func Capture(t *testing.T) *Buffer {
	t.Helper()

	prev := logger.Log
	log, buf := New()
	logger.Log = log
	t.Cleanup(func() {
		logger.Log = prev
		logger.ClearContext()
	})
	return buf
}
