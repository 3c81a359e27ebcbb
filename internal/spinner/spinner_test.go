package spinner

import (
	"bytes"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// syncBuffer guards a bytes.Buffer shared with the spinner goroutine.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestSpinner_DrawsAndClears(t *testing.T) {
	var out syncBuffer
	s := Start(&out, "Running: Fibonacci")
	time.Sleep(3 * interval)
	s.Update("Running: Sieve")
	time.Sleep(3 * interval)
	s.Stop()

	got := out.String()
	assert.Contains(t, got, "Running: Fibonacci")
	assert.Contains(t, got, "Running: Sieve")
	assert.True(t, strings.HasSuffix(got, "\r"), "line is cleared on stop")
}

func TestSpinner_StopTwice(t *testing.T) {
	s := Start(&syncBuffer{}, "x")
	s.Stop()
	assert.NotPanics(t, s.Stop)
}

func TestSpinner_PadsShorterMessages(t *testing.T) {
	var out syncBuffer
	s := Start(&out, "a long message")
	time.Sleep(2 * interval)
	s.Update("short")
	time.Sleep(2 * interval)
	s.Stop()

	assert.Contains(t, out.String(), "short"+strings.Repeat(" ", 9))
}
