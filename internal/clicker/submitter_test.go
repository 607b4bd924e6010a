package clicker

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/concave-dev/sakaton/internal/backend"
	"github.com/concave-dev/sakaton/internal/integrity"
	"github.com/concave-dev/sakaton/internal/session"
)

// fill admits n clicks spaced so the governor never rejects them.
func fill(g *Governor, start int64, n int) int64 {
	at := start
	for i := 0; i < n; i++ {
		g.AdmitAt(at)
		at += 200
	}
	return at
}

func newTestSubmitter(sender ClickSender, tokens session.TokenSource) (*Submitter, *Governor, *State) {
	config := DefaultConfig()
	state := NewState()
	sub := NewSubmitter(state, config, sender, tokens)
	sub.now = func() time.Time { return time.UnixMilli(1700000000000) }
	return sub, NewGovernor(state, config), state
}

func TestMaybeSubmitBelowThreshold(t *testing.T) {
	sender := &fakeSender{}
	sub, g, state := newTestSubmitter(sender, session.NewMemoryStore("tok"))
	fill(g, 0, 19)

	result, err := sub.MaybeSubmit(context.Background())
	if err != nil {
		t.Fatalf("MaybeSubmit() error = %v", err)
	}
	if result.Submitted || result.Batch != 0 {
		t.Errorf("MaybeSubmit() = %+v, want zero result", result)
	}
	if sender.Calls() != 0 {
		t.Errorf("sender called %d times below threshold", sender.Calls())
	}
	if state.Pending() != 19 {
		t.Errorf("Pending() = %d, want 19", state.Pending())
	}
}

func TestMaybeSubmitSuccessResetsPending(t *testing.T) {
	for _, pending := range []int{20, 27, 45} {
		sender := &fakeSender{}
		sub, g, state := newTestSubmitter(sender, session.NewMemoryStore("tok"))
		fill(g, 0, pending)

		result, err := sub.MaybeSubmit(context.Background())
		if err != nil {
			t.Fatalf("pending %d: MaybeSubmit() error = %v", pending, err)
		}
		if !result.Submitted || result.Batch != pending {
			t.Errorf("pending %d: result = %+v", pending, result)
		}
		if got := state.Pending(); got != 0 {
			t.Errorf("pending %d: Pending() after success = %d, want 0", pending, got)
		}
		if got := state.Snapshot().Phase; got != PhaseIdle {
			t.Errorf("pending %d: phase = %v, want idle", pending, got)
		}
	}
}

func TestMaybeSubmitRequestShape(t *testing.T) {
	sender := &fakeSender{}
	sub, g, _ := newTestSubmitter(sender, session.NewMemoryStore("tok-123"))
	fill(g, 0, 20)

	if _, err := sub.MaybeSubmit(context.Background()); err != nil {
		t.Fatalf("MaybeSubmit() error = %v", err)
	}

	if len(sender.requests) != 1 {
		t.Fatalf("requests = %d, want 1", len(sender.requests))
	}
	req := sender.requests[0]
	if req.Timestamp != 1700000000000 {
		t.Errorf("Timestamp = %d", req.Timestamp)
	}
	if want := integrity.Tag(integrity.DefaultSecret, 1700000000000, "tok-123"); req.Hash != want {
		t.Errorf("Hash = %q, want %q", req.Hash, want)
	}
	if sender.tokens[0] != "tok-123" {
		t.Errorf("bearer token = %q", sender.tokens[0])
	}
}

func TestMaybeSubmitFailurePreservesPending(t *testing.T) {
	sender := &fakeSender{err: &backend.StatusError{StatusCode: http.StatusInternalServerError, Status: "500 Internal Server Error"}}
	sub, g, state := newTestSubmitter(sender, session.NewMemoryStore("tok"))
	fill(g, 0, 23)

	result, err := sub.MaybeSubmit(context.Background())
	var subErr *SubmissionError
	if !errors.As(err, &subErr) {
		t.Fatalf("MaybeSubmit() error = %v, want *SubmissionError", err)
	}
	if subErr.StatusCode != http.StatusInternalServerError {
		t.Errorf("StatusCode = %d, want 500", subErr.StatusCode)
	}
	if subErr.Batch != 23 || result.Submitted {
		t.Errorf("result = %+v, Batch = %d", result, subErr.Batch)
	}
	if got := state.Pending(); got != 23 {
		t.Errorf("Pending() after failure = %d, want 23", got)
	}

	snap := state.Snapshot()
	if snap.Phase != PhaseAccumulating {
		t.Errorf("phase = %v, want accumulating", snap.Phase)
	}
	if snap.BatchesFailed != 1 || snap.LastError == "" {
		t.Errorf("snapshot = %+v", snap)
	}

	// The retained batch goes out with the next attempt.
	sender.setErr(nil)
	result, err = sub.MaybeSubmit(context.Background())
	if err != nil || result.Batch != 23 {
		t.Errorf("retry = %+v, %v", result, err)
	}
	if state.Pending() != 0 {
		t.Errorf("Pending() after retry = %d", state.Pending())
	}
}

func TestMaybeSubmitAuthentication(t *testing.T) {
	tests := []struct {
		name    string
		tokens  session.TokenSource
		wantErr error
	}{
		{"no token", session.NewMemoryStore(""), nil},
		{"store failure", failingTokens{err: errors.New("disk gone")}, errors.New("disk gone")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sender := &fakeSender{}
			sub, g, state := newTestSubmitter(sender, tt.tokens)
			fill(g, 0, 20)

			_, err := sub.MaybeSubmit(context.Background())
			var authErr *AuthenticationError
			if !errors.As(err, &authErr) {
				t.Fatalf("MaybeSubmit() error = %v, want *AuthenticationError", err)
			}
			if tt.wantErr != nil && (authErr.Err == nil || authErr.Err.Error() != tt.wantErr.Error()) {
				t.Errorf("wrapped error = %v, want %v", authErr.Err, tt.wantErr)
			}
			if sender.Calls() != 0 {
				t.Error("request sent without a token")
			}
			if state.Pending() != 20 {
				t.Errorf("Pending() = %d, want 20", state.Pending())
			}
			if state.InFlight() {
				t.Error("in-flight guard not released")
			}
		})
	}
}

func TestMaybeSubmitTimeout(t *testing.T) {
	sender := &fakeSender{block: make(chan struct{})}
	config := DefaultConfig()
	config.SubmitTimeoutMs = 20
	state := NewState()
	sub := NewSubmitter(state, config, sender, session.NewMemoryStore("tok"))
	fill(NewGovernor(state, config), 0, 20)

	_, err := sub.MaybeSubmit(context.Background())
	var subErr *SubmissionError
	if !errors.As(err, &subErr) {
		t.Fatalf("MaybeSubmit() error = %v, want *SubmissionError", err)
	}
	if !subErr.Timeout {
		t.Errorf("Timeout = false, err = %v", subErr)
	}
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("error should wrap context.DeadlineExceeded: %v", err)
	}
	if state.Pending() != 20 || state.InFlight() {
		t.Errorf("pending = %d, inFlight = %v", state.Pending(), state.InFlight())
	}
}

func TestMaybeSubmitAtMostOneInFlight(t *testing.T) {
	sender := &fakeSender{block: make(chan struct{}), entered: make(chan struct{}, 1)}
	sub, g, state := newTestSubmitter(sender, session.NewMemoryStore("tok"))
	at := fill(g, 0, 20)

	done := make(chan error, 1)
	go func() {
		_, err := sub.MaybeSubmit(context.Background())
		done <- err
	}()
	<-sender.entered

	// A second threshold crossing while the first request is outstanding.
	fill(g, at, 20)
	result, err := sub.MaybeSubmit(context.Background())
	if err != nil || result.Batch != 0 {
		t.Errorf("second MaybeSubmit() = %+v, %v, want no-op", result, err)
	}
	if sender.Calls() != 1 {
		t.Errorf("calls = %d, want 1", sender.Calls())
	}
	if state.Pending() != 40 {
		t.Errorf("Pending() during flight = %d, want 40", state.Pending())
	}
	if state.Snapshot().Phase != PhaseSubmitting {
		t.Errorf("phase = %v, want submitting", state.Snapshot().Phase)
	}

	close(sender.block)
	if err := <-done; err != nil {
		t.Fatalf("first MaybeSubmit() error = %v", err)
	}

	// Clicks admitted during the flight stay pending.
	if state.Pending() != 20 {
		t.Errorf("Pending() after flight = %d, want 20", state.Pending())
	}
}
