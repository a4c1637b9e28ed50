package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"
)

func TestSpinner(t *testing.T) {
	var buf bytes.Buffer
	s := newSpinnerTo(context.Background(), &buf, "Decomposing levels...")
	s.Start()
	time.Sleep(200 * time.Millisecond)
	s.Stop()

	out := buf.String()
	if !strings.Contains(out, "Decomposing levels...") {
		t.Errorf("spinner output %q does not contain the message", out)
	}
	if !strings.HasSuffix(out, "\r") {
		t.Error("spinner should clear its line when stopped")
	}
	if s.Cancelled() {
		t.Error("Cancelled() = true after a plain Stop")
	}
}

func TestSpinnerContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	var buf bytes.Buffer
	s := newSpinnerTo(ctx, &buf, "Testing with context...")
	s.Start()
	cancel()
	s.Stop()

	if !s.Cancelled() {
		t.Error("Cancelled() = false after context cancellation")
	}
}

func TestSpinnerStopIsIdempotent(t *testing.T) {
	var buf bytes.Buffer
	s := newSpinnerTo(context.Background(), &buf, "Testing idempotent stop...")
	s.Start()
	s.Stop()
	s.Stop()
	s.Stop()
}

func TestSpinnerStopWithoutStart(t *testing.T) {
	done := make(chan struct{})
	go func() {
		newSpinnerTo(context.Background(), &bytes.Buffer{}, "never started").Stop()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Stop() blocked on a spinner that was never started")
	}
}

func TestSpinnerStopWithMessage(t *testing.T) {
	s := newSpinner(context.Background(), "Testing success...")
	s.Start()
	s.StopWithSuccess("Done")

	s = newSpinner(context.Background(), "Testing error...")
	s.Start()
	s.StopWithError("Failed")
}
