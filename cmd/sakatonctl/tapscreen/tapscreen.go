// Package tapscreen is the interactive terminal view of `sakatonctl tap`.
//
// A coin is drawn in the middle of the terminal. Space, Enter or a left mouse
// click taps it; q, Esc or Ctrl-C quits. Each tap goes through the clicker's
// Input Governor, and only admitted taps show the floating "+1" effect. The
// status line shows pending clicks, the submission phase and window usage,
// and the message line shows the outcome of the last batch submission.
//
// Submission results arrive on the clicker's goroutines; Notify forwards them
// into the tcell event loop as interrupt events so all drawing stays on the
// loop goroutine.
package tapscreen

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/concave-dev/sakaton/internal/clicker"
	"github.com/dustin/go-humanize"
	"github.com/gdamore/tcell/v2"
)

const (
	effectTTL     = 600 * time.Millisecond
	effectRise    = 3 // rows a "+1" floats up over its lifetime
	frameInterval = 33 * time.Millisecond
	helpText      = "space/enter/click: tap   q/esc: quit"
)

var (
	titleStyle   = tcell.StyleDefault.Foreground(tcell.ColorAqua).Bold(true)
	coinStyle    = tcell.StyleDefault.Foreground(tcell.ColorGold)
	labelStyle   = tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorGold).Bold(true)
	effectStyle  = tcell.StyleDefault.Foreground(tcell.ColorLime).Bold(true)
	statusStyle  = tcell.StyleDefault.Foreground(tcell.ColorSilver)
	errorStyle   = tcell.StyleDefault.Foreground(tcell.ColorRed)
	successStyle = tcell.StyleDefault.Foreground(tcell.ColorGreen)
	helpStyle    = tcell.StyleDefault.Foreground(tcell.ColorGray)
)

// Tapper is the clicker surface the screen drives. *clicker.Session
// implements it.
type Tapper interface {
	Click(ev clicker.ClickEvent) bool
	Snapshot() clicker.Snapshot
}

// Limits are shown in the status line.
type Limits struct {
	MaxClicksPerWindow int
	ClicksPerRequest   int
}

// Stats counts taps seen by the screen.
type Stats struct {
	Taps     int
	Admitted int
	Rejected int
}

type effect struct {
	x, y int
	born time.Time
}

// resultMsg carries a submission outcome through tcell's event queue.
type resultMsg struct {
	text string
	fail bool
}

// Screen renders the coin and translates terminal input into clicks.
type Screen struct {
	screen tcell.Screen
	tapper Tapper
	limits Limits
	now    func() time.Time

	effects   []effect
	message   resultMsg
	stats     Stats
	mouseDown bool
}

// New creates a Screen on an initialized tcell screen.
func New(screen tcell.Screen, tapper Tapper, limits Limits) *Screen {
	screen.EnableMouse()
	screen.HideCursor()
	return &Screen{
		screen: screen,
		tapper: tapper,
		limits: limits,
		now:    time.Now,
	}
}

// Stats returns the tap counters.
func (s *Screen) Stats() Stats {
	return s.stats
}

// Notify reports a submission outcome. Safe to call from any goroutine.
func (s *Screen) Notify(result clicker.Result, err error) {
	// PostEvent fails only on a full queue; a later result supersedes this one.
	_ = s.screen.PostEvent(tcell.NewEventInterrupt(describeResult(result, err)))
}

func describeResult(result clicker.Result, err error) resultMsg {
	var authErr *clicker.AuthenticationError
	var subErr *clicker.SubmissionError
	switch {
	case err == nil:
		return resultMsg{text: fmt.Sprintf("Submitted %d clicks", result.Batch)}
	case errors.As(err, &authErr):
		return resultMsg{text: "Not logged in: run 'sakatonctl login' first", fail: true}
	case errors.As(err, &subErr) && subErr.Timeout:
		return resultMsg{text: fmt.Sprintf("Batch of %d timed out, will retry", subErr.Batch), fail: true}
	case errors.As(err, &subErr):
		return resultMsg{text: fmt.Sprintf("Batch of %d failed, will retry: %v", subErr.Batch, subErr.Err), fail: true}
	default:
		return resultMsg{text: err.Error(), fail: true}
	}
}

// HandleEvent applies one terminal event. Returns false when the user quits.
func (s *Screen) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyEnter:
			s.tapCenter()
		case tcell.KeyRune:
			switch ev.Rune() {
			case 'q', 'Q':
				return false
			case ' ':
				s.tapCenter()
			}
		}
	case *tcell.EventMouse:
		// Only the press edge counts; tcell repeats events while a button is held.
		pressed := ev.Buttons()&tcell.Button1 != 0
		if pressed && !s.mouseDown {
			x, y := ev.Position()
			s.tap(x, y)
		}
		s.mouseDown = pressed
	case *tcell.EventInterrupt:
		if msg, ok := ev.Data().(resultMsg); ok {
			s.message = msg
		}
	case *tcell.EventResize:
		s.screen.Sync()
	}
	return true
}

func (s *Screen) tapCenter() {
	w, h := s.screen.Size()
	s.tap(w/2, h/2)
}

func (s *Screen) tap(x, y int) {
	s.stats.Taps++
	now := s.now()
	if !s.tapper.Click(clicker.ClickEvent{At: now, X: x, Y: y}) {
		s.stats.Rejected++
		return
	}
	s.stats.Admitted++
	s.effects = append(s.effects, effect{x: x, y: y, born: now})
}

// prune drops expired "+1" effects in place.
func (s *Screen) prune() {
	now := s.now()
	kept := s.effects[:0]
	for _, e := range s.effects {
		if now.Sub(e.born) < effectTTL {
			kept = append(kept, e)
		}
	}
	s.effects = kept
}

// Draw renders one frame.
func (s *Screen) Draw() {
	s.prune()
	s.screen.Clear()
	w, h := s.screen.Size()
	snap := s.tapper.Snapshot()

	s.drawCentered(0, "SakaTON", titleStyle)
	s.drawCentered(1, humanize.Comma(snap.Points)+" points", titleStyle)
	s.drawCoin(w/2, h/2, coinRadius(w, h))

	now := s.now()
	for _, e := range s.effects {
		rise := int(float64(effectRise) * float64(now.Sub(e.born)) / float64(effectTTL))
		s.drawText(e.x, e.y-1-rise, "+1", effectStyle)
	}

	status := fmt.Sprintf("Pending: %d/%d   Phase: %s   Window: %d/%d",
		snap.Pending, s.limits.ClicksPerRequest, snap.Phase, snap.WindowSize, s.limits.MaxClicksPerWindow)
	s.drawText(0, h-3, status, statusStyle)

	if s.message.text != "" {
		style := successStyle
		if s.message.fail {
			style = errorStyle
		}
		s.drawText(0, h-2, s.message.text, style)
	}
	s.drawText(0, h-1, helpText, helpStyle)

	s.screen.Show()
}

func coinRadius(w, h int) int {
	r := min(h/4, w/8, 5)
	return max(r, 1)
}

// drawCoin fills an ellipse twice as wide as tall so it looks round in a
// terminal cell grid.
func (s *Screen) drawCoin(cx, cy, r int) {
	for dy := -r; dy <= r; dy++ {
		for dx := -2 * r; dx <= 2*r; dx++ {
			fx := float64(dx) / 2
			if fx*fx+float64(dy*dy) <= float64(r*r)+0.5 {
				s.screen.SetContent(cx+dx, cy+dy, '█', nil, coinStyle)
			}
		}
	}
	s.drawText(cx-1, cy, "TAP", labelStyle)
}

func (s *Screen) drawCentered(y int, text string, style tcell.Style) {
	w, _ := s.screen.Size()
	s.drawText((w-len(text))/2, y, text, style)
}

func (s *Screen) drawText(x, y int, text string, style tcell.Style) {
	w, h := s.screen.Size()
	if y < 0 || y >= h {
		return
	}
	for i, r := range []rune(text) {
		if x+i >= 0 && x+i < w {
			s.screen.SetContent(x+i, y, r, nil, style)
		}
	}
}

// Run drives the event loop until the user quits or ctx is cancelled.
func (s *Screen) Run(ctx context.Context) error {
	events := make(chan tcell.Event, 64)
	quit := make(chan struct{})
	go s.screen.ChannelEvents(events, quit)
	defer close(quit)

	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	s.Draw()
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if !s.HandleEvent(ev) {
				return nil
			}
			s.Draw()
		case <-ticker.C:
			if len(s.effects) > 0 {
				s.Draw()
			}
		}
	}
}
