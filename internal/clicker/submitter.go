package clicker

import (
	"context"
	"errors"
	"time"

	"github.com/concave-dev/sakaton/internal/backend"
	"github.com/concave-dev/sakaton/internal/integrity"
	"github.com/concave-dev/sakaton/internal/logging"
	"github.com/concave-dev/sakaton/internal/session"
)

// Result describes what a MaybeSubmit call did.
type Result struct {
	Submitted bool // a request was sent and confirmed
	Batch     int  // clicks covered by the attempt, 0 when nothing was attempted
}

// Submitter sends the pending batch once it reaches ClicksPerRequest.
//
// SUBMISSION FLOW:
// - Acquire the in-flight guard on the shared State (no-op if already held)
// - Read the session token; missing token → AuthenticationError
// - Sign "{timestamp}:{token}" with HMAC-SHA256 and POST it with a deadline
// - Success subtracts the submitted batch; any failure leaves pending untouched
// - The guard is released on every exit path
type Submitter struct {
	state     *State
	sender    ClickSender
	tokens    session.TokenSource
	secret    string
	threshold int
	timeout   time.Duration

	// now is the timestamp source for signing; tests pin it.
	now func() time.Time
}

// NewSubmitter creates a submitter over state. sender performs the network
// call and tokens supplies the bearer credential at submission time.
func NewSubmitter(state *State, config *Config, sender ClickSender, tokens session.TokenSource) *Submitter {
	return &Submitter{
		state:     state,
		sender:    sender,
		tokens:    tokens,
		secret:    config.Secret,
		threshold: config.ClicksPerRequest,
		timeout:   config.GetSubmitTimeout(),
		now:       time.Now,
	}
}

// MaybeSubmit submits the pending batch if it has reached the threshold and no
// other submission is outstanding. Below threshold, or with a submission
// already in flight, it returns a zero Result and nil without side effects.
//
// Errors are *AuthenticationError or *SubmissionError. Either way the pending
// count is exactly what it was before the attempt plus any clicks admitted
// concurrently.
func (s *Submitter) MaybeSubmit(ctx context.Context) (result Result, err error) {
	batch, ok := s.state.beginSubmit(s.threshold)
	if !ok {
		return Result{}, nil
	}
	defer func() {
		s.state.finishSubmit(batch, err)
	}()

	result.Batch = batch

	token, err := s.tokens.Token(ctx)
	if err != nil {
		if errors.Is(err, session.ErrNoToken) {
			return result, &AuthenticationError{}
		}
		return result, &AuthenticationError{Err: err}
	}
	if token == "" {
		return result, &AuthenticationError{}
	}

	ts := s.now().UnixMilli()
	req := backend.ClickRequest{
		Timestamp: ts,
		Hash:      integrity.Tag(s.secret, ts, token),
	}

	submitCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	logging.Debug("Submitter: Sending batch of %d clicks (token %s)", batch, logging.FormatToken(token))

	if sendErr := s.sender.SubmitClicks(submitCtx, token, req); sendErr != nil {
		timedOut := errors.Is(sendErr, context.DeadlineExceeded) ||
			errors.Is(submitCtx.Err(), context.DeadlineExceeded)
		return result, newSubmissionError(batch, sendErr, timedOut)
	}

	result.Submitted = true
	logging.Debug("Submitter: Batch of %d clicks accepted", batch)
	return result, nil
}
