package cli

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"
	"time"
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

func TestSpinnerDraws(t *testing.T) {
	var buf syncBuffer
	s := newSpinner(context.Background(), &buf, "Laying out")
	s.Start()
	time.Sleep(200 * time.Millisecond)
	s.Stop()

	if !strings.Contains(buf.String(), "Laying out") {
		t.Errorf("output %q missing message", buf.String())
	}
	if !s.Done() {
		t.Error("Done() = false after Stop")
	}
}

func TestSpinnerContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	var buf syncBuffer
	s := newSpinner(ctx, &buf, "waiting")
	s.Start()

	cancel()
	time.Sleep(50 * time.Millisecond)

	if !s.Done() {
		t.Error("Done() = false after parent cancel")
	}
	s.Stop()
}

func TestSpinnerStopIsIdempotent(t *testing.T) {
	var buf syncBuffer
	s := newSpinner(context.Background(), &buf, "idempotent")
	s.Start()
	s.Stop()
	s.Stop()
}

func TestSpinnerStopBeforeFrame(t *testing.T) {
	var buf syncBuffer
	s := newSpinner(context.Background(), &buf, "quick")
	s.Start()
	s.Stop()
	if got := buf.String(); got != "" {
		t.Errorf("output = %q, want nothing before the first frame", got)
	}
}
