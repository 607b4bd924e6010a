package clicker

import (
	"context"
	"sync"

	"github.com/concave-dev/sakaton/internal/backend"
)

// fakeSender records submissions. When block is set, each call waits on it
// (or on ctx) before returning err.
type fakeSender struct {
	mu       sync.Mutex
	calls    int
	requests []backend.ClickRequest
	tokens   []string
	err      error

	block   chan struct{}
	entered chan struct{}
}

func (f *fakeSender) SubmitClicks(ctx context.Context, token string, req backend.ClickRequest) error {
	f.mu.Lock()
	f.calls++
	f.requests = append(f.requests, req)
	f.tokens = append(f.tokens, token)
	err := f.err
	block, entered := f.block, f.entered
	f.mu.Unlock()

	if entered != nil {
		entered <- struct{}{}
	}
	if block != nil {
		select {
		case <-block:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return err
}

func (f *fakeSender) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func (f *fakeSender) setErr(err error) {
	f.mu.Lock()
	f.err = err
	f.mu.Unlock()
}

// failingTokens returns a fixed error from Token.
type failingTokens struct{ err error }

func (f failingTokens) Token(context.Context) (string, error) { return "", f.err }
