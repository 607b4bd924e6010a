package clicker

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/concave-dev/sakaton/internal/logging"
	"github.com/concave-dev/sakaton/internal/session"
)

// ResultHook receives the outcome of every submission attempt a Session makes.
// It runs on the submitting goroutine and must not block for long.
type ResultHook func(Result, error)

// Session wires a Governor and a Submitter around one State. Click never
// blocks on the network: a threshold crossing starts MaybeSubmit on a tracked
// goroutine while further clicks keep being admitted.
type Session struct {
	state     *State
	governor  *Governor
	submitter *Submitter

	retryInterval time.Duration

	hookMu sync.RWMutex
	hook   ResultHook

	// Lifecycle management
	ctx    context.Context
	cancel context.CancelFunc
	stopCh chan struct{}
	stopMu sync.Mutex
	loopOn bool
	wg     sync.WaitGroup // retry loop
	subWg  sync.WaitGroup // outstanding submissions
}

// NewSession creates a session. config is validated; sender and tokens must be
// non-nil.
func NewSession(config *Config, sender ClickSender, tokens session.TokenSource) (*Session, error) {
	if config == nil {
		config = DefaultConfig()
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if sender == nil {
		return nil, errors.New("clicker: sender is required")
	}
	if tokens == nil {
		return nil, errors.New("clicker: token source is required")
	}

	state := NewState()
	ctx, cancel := context.WithCancel(context.Background())

	return &Session{
		state:         state,
		governor:      NewGovernor(state, config),
		submitter:     NewSubmitter(state, config, sender, tokens),
		retryInterval: config.GetRetryInterval(),
		ctx:           ctx,
		cancel:        cancel,
		stopCh:        make(chan struct{}),
	}, nil
}

// SetResultHook installs fn as the submission outcome callback. nil removes it.
func (s *Session) SetResultHook(fn ResultHook) {
	s.hookMu.Lock()
	s.hook = fn
	s.hookMu.Unlock()
}

// Click runs a tap through the governor and reports whether it was admitted.
// Rejected clicks are silent no-ops.
func (s *Session) Click(ev ClickEvent) bool {
	at := ev.At
	if at.IsZero() {
		at = time.Now()
	}

	decision := s.governor.Admit(at)
	if !decision.Admitted {
		logging.Debug("Session: Click at (%d,%d) rate limited", ev.X, ev.Y)
		return false
	}

	if decision.Pending >= s.submitter.threshold && !s.state.InFlight() {
		s.trigger()
	}
	return true
}

// Flush attempts a submission now, synchronously. It honours the same
// threshold and in-flight rules as the automatic trigger.
func (s *Session) Flush(ctx context.Context) (Result, error) {
	result, err := s.submitter.MaybeSubmit(ctx)
	s.report(result, err)
	return result, err
}

// trigger starts an asynchronous submission attempt.
func (s *Session) trigger() {
	s.subWg.Add(1)
	go func() {
		defer s.subWg.Done()
		result, err := s.submitter.MaybeSubmit(s.ctx)
		s.report(result, err)
	}()
}

// report logs an attempt and forwards it to the hook. Attempts that did
// nothing are not reported.
func (s *Session) report(result Result, err error) {
	if result.Batch == 0 && err == nil {
		return
	}

	var authErr *AuthenticationError
	var subErr *SubmissionError
	switch {
	case err == nil:
		logging.Debug("Session: Submitted %d clicks", result.Batch)
	case errors.As(err, &authErr), errors.As(err, &subErr):
		logging.Warn("Session: %v, keeping %d pending clicks", err, s.state.Pending())
	default:
		logging.Error("Session: Unexpected submission failure: %v", err)
	}

	s.hookMu.RLock()
	hook := s.hook
	s.hookMu.RUnlock()
	if hook != nil {
		hook(result, err)
	}
}

// Start launches the retry loop when RetryIntervalMs is non-zero. Without it,
// a batch left over by a failure is retried on the next threshold crossing.
func (s *Session) Start() {
	if s.retryInterval <= 0 {
		return
	}

	s.stopMu.Lock()
	defer s.stopMu.Unlock()
	if s.loopOn {
		return
	}
	s.loopOn = true

	s.wg.Add(1)
	go s.runRetryLoop()
	logging.Debug("Session: Retry loop started (every %v)", s.retryInterval)
}

func (s *Session) runRetryLoop() {
	defer s.wg.Done()
	ticker := time.NewTicker(s.retryInterval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopCh:
			return
		case <-ticker.C:
			if !s.state.InFlight() && s.state.Pending() >= s.submitter.threshold {
				s.trigger()
			}
		}
	}
}

// Stop halts the retry loop, cancels any outstanding submission and waits for
// it to finish. Pending clicks are not persisted. Safe to call more than once.
func (s *Session) Stop() {
	s.stopMu.Lock()
	select {
	case <-s.stopCh:
	default:
		close(s.stopCh)
	}
	s.stopMu.Unlock()

	s.wg.Wait()
	s.cancel()
	s.subWg.Wait()
}

// Wait blocks until every submission started so far has finished.
func (s *Session) Wait() {
	s.subWg.Wait()
}

// Points returns the optimistic point total.
func (s *Session) Points() int64 {
	return s.state.Snapshot().Points
}

// SetPoints replaces the optimistic total with an authoritative value.
func (s *Session) SetPoints(points int64) {
	s.state.SetPoints(points)
}

// Snapshot returns the current state.
func (s *Session) Snapshot() Snapshot {
	return s.state.Snapshot()
}
