package utils

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		in   time.Duration
		want string
	}{
		{1500 * time.Millisecond, "1.5s"},
		{59 * time.Second, "59.0s"},
		{90 * time.Second, "1m"},
		{3 * time.Hour, "3h"},
		{50 * time.Hour, "2d"},
	}

	for _, tt := range tests {
		if got := FormatDuration(tt.in); got != tt.want {
			t.Errorf("FormatDuration(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestRate(t *testing.T) {
	if got := Rate(16, 2*time.Second); got != 8 {
		t.Errorf("Rate(16, 2s) = %v, want 8", got)
	}
	if got := Rate(5, 0); got != 0 {
		t.Errorf("Rate(5, 0) = %v, want 0", got)
	}
}

func TestRunWithWatchOnce(t *testing.T) {
	calls := 0
	err := RunWithWatch(func() error { calls++; return nil }, false)
	if err != nil || calls != 1 {
		t.Errorf("RunWithWatch(once) = %v after %d calls", err, calls)
	}

	want := errors.New("boom")
	if err := RunWithWatch(func() error { return want }, false); !errors.Is(err, want) {
		t.Errorf("RunWithWatch error = %v, want %v", err, want)
	}
}

func TestRunWatchLoop(t *testing.T) {
	var calls atomic.Int32
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() {
		done <- runWatchLoop(ctx, func() error {
			if calls.Add(1) == 3 {
				cancel()
			}
			if calls.Load() == 2 {
				return errors.New("transient")
			}
			return nil
		}, 5*time.Millisecond)
	}()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("runWatchLoop() error = %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("watch loop did not stop")
	}
	if calls.Load() < 3 {
		t.Errorf("calls = %d, want at least 3", calls.Load())
	}
}
