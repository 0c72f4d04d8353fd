// Package iostreamstest provides test doubles for the iostreams package.
package iostreamstest

import (
	"io"
	"sync"

	"github.com/schmitthub/tplresolve/internal/iostreams"
)

// TestIOStreams wraps IOStreams for testing with accessible buffers.
type TestIOStreams struct {
	*iostreams.IOStreams
	InBuf  *Buffer
	OutBuf *Buffer
	ErrBuf *Buffer
}

// New creates IOStreams for testing: non-interactive, colors disabled.
func New() *TestIOStreams {
	in, out, errOut := &Buffer{}, &Buffer{}, &Buffer{}

	ios := &iostreams.IOStreams{In: in, Out: out, ErrOut: errOut}
	ios.SetTTY(false)
	ios.SetColorEnabled(false)

	return &TestIOStreams{
		IOStreams: ios,
		InBuf:     in,
		OutBuf:    out,
		ErrBuf:    errOut,
	}
}

// Buffer is a goroutine-safe in-memory stream.
type Buffer struct {
	mu   sync.Mutex
	data []byte
}

func (b *Buffer) Read(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.data) == 0 {
		return 0, io.EOF
	}
	n := copy(p, b.data)
	b.data = b.data[n:]
	return n, nil
}

func (b *Buffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.data = append(b.data, p...)
	return len(p), nil
}

func (b *Buffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return string(b.data)
}

func (b *Buffer) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.data = nil
}

// SetInput replaces the buffered input.
func (b *Buffer) SetInput(s string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.data = []byte(s)
}
