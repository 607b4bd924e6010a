package clicker

import (
	"errors"
	"fmt"

	"github.com/concave-dev/sakaton/internal/backend"
)

// AuthenticationError is returned when no session token is available at
// submission time. It is not retryable without logging in again; the pending
// batch is kept.
type AuthenticationError struct {
	Err error
}

func (e *AuthenticationError) Error() string {
	if e.Err == nil {
		return "not authenticated"
	}
	return fmt.Sprintf("not authenticated: %v", e.Err)
}

func (e *AuthenticationError) Unwrap() error { return e.Err }

// SubmissionError is returned when the network phase of a submission fails:
// transport error, timeout, or a non-2xx response. The pending batch is kept
// for the next attempt.
type SubmissionError struct {
	Batch      int  // clicks the failed attempt covered
	StatusCode int  // HTTP status, 0 when no response was received
	Timeout    bool // the submission deadline expired
	Err        error
}

func (e *SubmissionError) Error() string {
	switch {
	case e.Timeout:
		return fmt.Sprintf("click submission of %d timed out: %v", e.Batch, e.Err)
	case e.StatusCode != 0:
		return fmt.Sprintf("click submission of %d rejected with status %d", e.Batch, e.StatusCode)
	default:
		return fmt.Sprintf("click submission of %d failed: %v", e.Batch, e.Err)
	}
}

func (e *SubmissionError) Unwrap() error { return e.Err }

// newSubmissionError classifies a sender failure.
func newSubmissionError(batch int, err error, timedOut bool) *SubmissionError {
	se := &SubmissionError{Batch: batch, Timeout: timedOut, Err: err}
	var statusErr *backend.StatusError
	if errors.As(err, &statusErr) {
		se.StatusCode = statusErr.StatusCode
	}
	return se
}
