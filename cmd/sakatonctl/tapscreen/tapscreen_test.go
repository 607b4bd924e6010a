package tapscreen

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/concave-dev/sakaton/internal/clicker"
	"github.com/gdamore/tcell/v2"
)

// fakeTapper admits the first `budget` clicks.
type fakeTapper struct {
	mu     sync.Mutex
	budget int
	clicks []clicker.ClickEvent
	snap   clicker.Snapshot
}

func (f *fakeTapper) Click(ev clicker.ClickEvent) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.clicks = append(f.clicks, ev)
	if f.budget <= 0 {
		return false
	}
	f.budget--
	f.snap.Pending++
	f.snap.Points++
	return true
}

func (f *fakeTapper) Snapshot() clicker.Snapshot {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.snap
}

func newTestScreen(t *testing.T, tapper Tapper) (*Screen, tcell.SimulationScreen) {
	t.Helper()
	sim := tcell.NewSimulationScreen("UTF-8")
	if err := sim.Init(); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	t.Cleanup(sim.Fini)
	sim.SetSize(80, 24)

	s := New(sim, tapper, Limits{MaxClicksPerWindow: 8, ClicksPerRequest: 20})
	return s, sim
}

// screenText returns the simulated screen as newline separated rows.
func screenText(sim tcell.SimulationScreen) string {
	cells, w, h := sim.GetContents()
	var b strings.Builder
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			runes := cells[y*w+x].Runes
			if len(runes) == 0 {
				b.WriteRune(' ')
				continue
			}
			b.WriteRune(runes[0])
		}
		b.WriteRune('\n')
	}
	return b.String()
}

func TestKeysTapAndQuit(t *testing.T) {
	tapper := &fakeTapper{budget: 100}
	s, _ := newTestScreen(t, tapper)

	if !s.HandleEvent(tcell.NewEventKey(tcell.KeyRune, ' ', tcell.ModNone)) {
		t.Fatal("space should not quit")
	}
	if !s.HandleEvent(tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone)) {
		t.Fatal("enter should not quit")
	}
	if !s.HandleEvent(tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone)) {
		t.Fatal("other keys should not quit")
	}
	if got := s.Stats().Taps; got != 2 {
		t.Errorf("taps = %d, want 2 (space and enter only)", got)
	}
	if c := tapper.clicks[0]; c.X != 40 || c.Y != 12 {
		t.Errorf("keyboard tap at (%d,%d), want the center (40,12)", c.X, c.Y)
	}

	for _, ev := range []*tcell.EventKey{
		tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone),
		tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone),
		tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl),
	} {
		if s.HandleEvent(ev) {
			t.Errorf("%s should quit", ev.Name())
		}
	}
}

func TestMouseTapsOnPressEdge(t *testing.T) {
	tapper := &fakeTapper{budget: 100}
	s, _ := newTestScreen(t, tapper)

	s.HandleEvent(tcell.NewEventMouse(10, 5, tcell.Button1, tcell.ModNone))
	s.HandleEvent(tcell.NewEventMouse(11, 5, tcell.Button1, tcell.ModNone)) // drag while held
	s.HandleEvent(tcell.NewEventMouse(11, 5, tcell.ButtonNone, tcell.ModNone))
	s.HandleEvent(tcell.NewEventMouse(30, 8, tcell.Button1, tcell.ModNone))

	if got := s.Stats().Taps; got != 2 {
		t.Fatalf("taps = %d, want 2", got)
	}
	if c := tapper.clicks[1]; c.X != 30 || c.Y != 8 {
		t.Errorf("second tap at (%d,%d), want (30,8)", c.X, c.Y)
	}
}

func TestEffectOnlyForAdmittedTaps(t *testing.T) {
	tapper := &fakeTapper{budget: 1}
	s, sim := newTestScreen(t, tapper)
	base := time.Unix(1700000000, 0)
	s.now = func() time.Time { return base }

	s.HandleEvent(tcell.NewEventMouse(10, 5, tcell.Button1, tcell.ModNone))
	s.HandleEvent(tcell.NewEventMouse(10, 5, tcell.ButtonNone, tcell.ModNone))
	s.HandleEvent(tcell.NewEventMouse(60, 5, tcell.Button1, tcell.ModNone))

	stats := s.Stats()
	if stats.Admitted != 1 || stats.Rejected != 1 {
		t.Fatalf("stats = %+v, want 1 admitted and 1 rejected", stats)
	}
	if len(s.effects) != 1 || s.effects[0].x != 10 {
		t.Fatalf("effects = %+v, want one at x=10", s.effects)
	}

	s.Draw()
	rows := strings.Split(screenText(sim), "\n")
	if !strings.Contains(rows[4], "+1") {
		t.Errorf("row 4 should show +1 above the tap, got %q", rows[4])
	}

	s.now = func() time.Time { return base.Add(effectTTL) }
	s.Draw()
	if strings.Contains(screenText(sim), "+1") {
		t.Error("expired effect still drawn")
	}
}

func TestDrawStatusAndMessages(t *testing.T) {
	tapper := &fakeTapper{snap: clicker.Snapshot{
		Phase:      clicker.PhaseSubmitting,
		Pending:    7,
		WindowSize: 3,
		Points:     12345,
	}}
	s, sim := newTestScreen(t, tapper)

	s.Draw()
	text := screenText(sim)
	for _, want := range []string{"SakaTON", "12,345 points", "TAP", "Pending: 7/20", "Phase: submitting", "Window: 3/8", helpText} {
		if !strings.Contains(text, want) {
			t.Errorf("screen missing %q:\n%s", want, text)
		}
	}

	s.HandleEvent(tcell.NewEventInterrupt(describeResult(clicker.Result{Submitted: true, Batch: 20}, nil)))
	s.Draw()
	if !strings.Contains(screenText(sim), "Submitted 20 clicks") {
		t.Error("success message not drawn")
	}
}

func TestDescribeResult(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantText string
		wantFail bool
	}{
		{"success", nil, "Submitted 20 clicks", false},
		{"auth", &clicker.AuthenticationError{}, "login", true},
		{"timeout", &clicker.SubmissionError{Batch: 20, Timeout: true}, "timed out", true},
		{"server", &clicker.SubmissionError{Batch: 20, StatusCode: 500, Err: errors.New("HTTP 500")}, "HTTP 500", true},
		{"other", errors.New("boom"), "boom", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := describeResult(clicker.Result{Submitted: tt.err == nil, Batch: 20}, tt.err)
			if !strings.Contains(msg.text, tt.wantText) || msg.fail != tt.wantFail {
				t.Errorf("describeResult() = %+v, want text containing %q and fail=%v", msg, tt.wantText, tt.wantFail)
			}
		})
	}
}

func TestRunLoop(t *testing.T) {
	tapper := &fakeTapper{budget: 100}
	s, sim := newTestScreen(t, tapper)

	done := make(chan error, 1)
	go func() { done <- s.Run(context.Background()) }()

	sim.InjectKey(tcell.KeyRune, ' ', tcell.ModNone)
	s.Notify(clicker.Result{Submitted: true, Batch: 20}, nil)
	sim.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Run() error = %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run() did not return after q")
	}
	if got := s.Stats().Taps; got != 1 {
		t.Errorf("taps = %d, want 1", got)
	}
}

func TestRunStopsOnContext(t *testing.T) {
	s, _ := newTestScreen(t, &fakeTapper{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := s.Run(ctx); err != nil {
		t.Errorf("Run() error = %v", err)
	}
}
