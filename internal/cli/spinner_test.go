package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"
)

func TestSpinnerWritesStatusLine(t *testing.T) {
	var buf bytes.Buffer
	s := newSpinner("Rendering scene...")
	s.out = &buf
	s.Start()
	time.Sleep(200 * time.Millisecond)
	s.Stop()

	if !strings.Contains(buf.String(), "Rendering scene...") {
		t.Errorf("spinner output %q missing status message", buf.String())
	}
}

func TestSpinnerSetMessage(t *testing.T) {
	var buf bytes.Buffer
	s := newSpinner("Building canvas...")
	s.out = &buf
	s.Start()
	time.Sleep(150 * time.Millisecond)
	s.SetMessage("Encoding gif...")
	time.Sleep(150 * time.Millisecond)
	s.Stop()

	out := buf.String()
	if !strings.Contains(out, "Building canvas...") {
		t.Errorf("spinner output missing first stage, got %q", out)
	}
	if !strings.Contains(out, "Encoding gif...") {
		t.Errorf("spinner output missing second stage, got %q", out)
	}
}

func TestSpinnerCancelledByContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	s := newSpinnerWithContext(ctx, "Rendering...")
	s.out = &bytes.Buffer{}
	s.Start()

	cancel()
	time.Sleep(100 * time.Millisecond)

	if !s.Cancelled() {
		t.Error("Cancelled() = false after context cancellation")
	}
}

func TestSpinnerCancelledByTimeout(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	s := newSpinnerWithContext(ctx, "Rendering...")
	s.out = &bytes.Buffer{}
	s.Start()

	time.Sleep(100 * time.Millisecond)

	if !s.Cancelled() {
		t.Error("Cancelled() = false after context timeout")
	}
}

func TestSpinnerStopIsIdempotent(t *testing.T) {
	s := newSpinner("Rendering...")
	s.out = &bytes.Buffer{}
	s.Start()

	s.Stop()
	s.Stop()
	s.Stop()
}

func TestSpinnerStopNotCancelled(t *testing.T) {
	s := newSpinner("Rendering...")
	s.out = &bytes.Buffer{}
	s.Start()
	time.Sleep(100 * time.Millisecond)
	s.Stop()

	if s.Cancelled() {
		t.Error("Cancelled() = true after an explicit Stop")
	}
}

func TestSpinnerStopWithSuccess(t *testing.T) {
	s := newSpinner("Rendering...")
	s.out = &bytes.Buffer{}
	s.Start()
	time.Sleep(50 * time.Millisecond)
	s.StopWithSuccess("Rendered card.json")
}

func TestSpinnerStopWithError(t *testing.T) {
	s := newSpinner("Rendering...")
	s.out = &bytes.Buffer{}
	s.Start()
	time.Sleep(50 * time.Millisecond)
	s.StopWithError("Rendering failed")
}
