package clicker

import (
	"time"
)

// ClickEvent is one raw tap. X and Y only position the "+1" effect.
type ClickEvent struct {
	At time.Time
	X  int
	Y  int
}

// Decision is the governor's verdict on a click.
type Decision struct {
	Admitted bool
	Pending  int // pending count after the decision
}

// Governor admits clicks under a sliding-window rate ceiling: no more than
// MaxClicksPerSecond admitted clicks in any trailing window.
type Governor struct {
	state    *State
	max      int
	windowMs int64
}

// NewGovernor creates a governor over state.
func NewGovernor(state *State, config *Config) *Governor {
	return &Governor{
		state:    state,
		max:      config.MaxClicksPerSecond,
		windowMs: int64(config.WindowMs),
	}
}

// Admit decides a click at wall-clock time now.
func (g *Governor) Admit(now time.Time) Decision {
	return g.AdmitAt(now.UnixMilli())
}

// AdmitAt decides a click at nowMs (ms since epoch). Entries older than the
// window relative to nowMs are pruned first; they expire by absolute age, so a
// nowMs earlier than a previous call is tolerated. A rejected click leaves the
// state untouched apart from pruning.
func (g *Governor) AdmitAt(nowMs int64) Decision {
	s := g.state
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.window[:0]
	for _, ts := range s.window {
		if nowMs-ts <= g.windowMs {
			kept = append(kept, ts)
		}
	}
	s.window = kept

	if len(s.window) >= g.max {
		return Decision{Admitted: false, Pending: s.pending}
	}

	s.window = append(s.window, nowMs)
	s.pending++
	s.points++
	if s.phase == PhaseIdle {
		s.phase = PhaseAccumulating
	}

	return Decision{Admitted: true, Pending: s.pending}
}
