package clicker

import (
	"sync"
)

// Phase is the submission state machine:
//
//	Idle → Accumulating → Submitting → Idle          (success, nothing left over)
//	                                 → Accumulating  (failure, or clicks left over)
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseAccumulating
	PhaseSubmitting
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseAccumulating:
		return "accumulating"
	case PhaseSubmitting:
		return "submitting"
	default:
		return "unknown"
	}
}

// State is the single owned object shared by the Governor and the Submitter.
// Every field is guarded by mu; admission and submission bookkeeping never
// interleave partially.
type State struct {
	mu sync.Mutex

	window  []int64 // accepted click timestamps (ms) inside the rolling window
	pending int     // admitted clicks not yet confirmed by the backend
	phase   Phase

	// Optimistic total shown to the user. Never rolled back on failure.
	points int64

	batchesSubmitted int
	batchesFailed    int
	clicksSubmitted  int
	lastErr          error
}

// NewState returns a zeroed state in PhaseIdle.
func NewState() *State {
	return &State{phase: PhaseIdle}
}

// Snapshot is a point-in-time copy of State for display and tests.
type Snapshot struct {
	Phase            Phase
	Pending          int
	WindowSize       int
	Points           int64
	BatchesSubmitted int
	BatchesFailed    int
	ClicksSubmitted  int
	LastError        string
}

// InFlight reports whether a submission is outstanding.
func (s *State) InFlight() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase == PhaseSubmitting
}

// Pending returns the number of admitted, unconfirmed clicks.
func (s *State) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending
}

// SetPoints replaces the optimistic point total, typically with the
// authoritative value fetched from the backend.
func (s *State) SetPoints(points int64) {
	s.mu.Lock()
	s.points = points
	s.mu.Unlock()
}

// Snapshot copies the current state.
func (s *State) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{
		Phase:            s.phase,
		Pending:          s.pending,
		WindowSize:       len(s.window),
		Points:           s.points,
		BatchesSubmitted: s.batchesSubmitted,
		BatchesFailed:    s.batchesFailed,
		ClicksSubmitted:  s.clicksSubmitted,
	}
	if s.lastErr != nil {
		snap.LastError = s.lastErr.Error()
	}
	return snap
}

// beginSubmit acquires the in-flight guard when the batch threshold is met.
// It returns the number of clicks the submission covers and false when the
// preconditions fail (below threshold or already submitting).
func (s *State) beginSubmit(threshold int) (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase == PhaseSubmitting || s.pending < threshold {
		return 0, false
	}
	s.phase = PhaseSubmitting
	return s.pending, true
}

// finishSubmit releases the in-flight guard. Only a confirmed success removes
// the submitted clicks; clicks admitted while the request was outstanding stay
// pending for the next batch.
func (s *State) finishSubmit(batch int, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err == nil {
		s.pending -= batch
		if s.pending < 0 {
			s.pending = 0
		}
		s.batchesSubmitted++
		s.clicksSubmitted += batch
	} else {
		s.batchesFailed++
	}
	s.lastErr = err

	if s.pending == 0 {
		s.phase = PhaseIdle
	} else {
		s.phase = PhaseAccumulating
	}
}
