// Package session owns the overlay lifecycle: the state machine from
// Initializing through Visible and Closing to Closed, the unified event
// loop, and the idle timer. All matching and layout work per iteration
// is synchronous; the loop suspends only at the select.
package session

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/bnema/keyhud/internal/keymap"
	"github.com/bnema/keyhud/internal/menu"
	"github.com/bnema/keyhud/internal/render"
)

// State is the session lifecycle state. Visible is entered at most once;
// there is no reopen without a new process invocation.
type State int

const (
	// StateInitializing is the pre-surface state.
	StateInitializing State = iota
	// StateVisible means the surface is mapped and the grab is held.
	StateVisible
	// StateClosing means teardown has begun.
	StateClosing
	// StateClosed is terminal.
	StateClosed
)

// CloseReason records why the session ended.
type CloseReason int

const (
	// ReasonCanceled: the user canceled or the compositor closed us.
	ReasonCanceled CloseReason = iota
	// ReasonAction: an action without keep-open was dispatched.
	ReasonAction
	// ReasonTimeout: the idle timer expired.
	ReasonTimeout
	// ReasonSignal: an external termination signal arrived.
	ReasonSignal
	// ReasonSurfaceLost: the compositor connection failed mid-session.
	ReasonSurfaceLost
)

// ErrGrabUnavailable marks a failed exclusive keyboard grab. The whole
// value of the overlay depends on exclusive capture, so there is no
// degraded mode.
var ErrGrabUnavailable = errors.New("exclusive keyboard grab unavailable")

// Options assemble a session.
type Options struct {
	Tree     *keymap.Tree
	Start    *keymap.Submenu // optional; defaults to the tree root
	Matcher  menu.Options
	Style    render.Style
	Timeout  time.Duration // idle timeout; 0 disables
	Surface  Surface
	Measurer render.Measurer
	Runner   Runner
}

// Session drives one overlay run from grab acquisition to surface
// destruction.
type Session struct {
	matcher  *menu.Matcher
	style    render.Style
	timeout  time.Duration
	surface  Surface
	measurer render.Measurer
	runner   Runner

	state State
	log   *zerolog.Logger
}

// New builds a session in Initializing state.
func New(ctx context.Context, opts Options) *Session {
	start := opts.Start
	if start == nil {
		start = opts.Tree.Root()
	}
	return &Session{
		matcher:  menu.New(start, opts.Matcher),
		style:    opts.Style,
		timeout:  opts.Timeout,
		surface:  opts.Surface,
		measurer: opts.Measurer,
		runner:   opts.Runner,
		state:    StateInitializing,
		log:      zerolog.Ctx(ctx),
	}
}

// State returns the current lifecycle state.
func (s *Session) State() State { return s.state }

// Run executes the session until it closes. The returned error is
// non-nil only for grab acquisition failures and surface loss; every
// user-driven close (cancel, timeout, dispatched action) is a graceful
// nil-error return with the reason.
func (s *Session) Run(ctx context.Context) (CloseReason, error) {
	// The grab is released on every exit path, including a failed Show
	// and panics in transition handling.
	defer func() {
		s.state = StateClosed
		s.surface.Close()
	}()

	view := s.view()
	if err := s.surface.Show(view); err != nil {
		return ReasonSurfaceLost, err
	}
	s.state = StateVisible
	s.log.Debug().
		Float64("width", view.Layout.Width).
		Float64("height", view.Layout.Height).
		Msg("overlay visible")

	idle := newIdleTimer(s.timeout)
	defer idle.stop()

	for {
		select {
		case <-ctx.Done():
			s.state = StateClosing
			return ReasonSignal, nil

		case <-idle.C():
			s.state = StateClosing
			s.log.Debug().Dur("timeout", s.timeout).Msg("idle timeout, canceling")
			return ReasonTimeout, nil

		case ev, ok := <-s.surface.Events():
			if !ok {
				s.state = StateClosing
				return ReasonSurfaceLost, errors.New("surface event stream closed")
			}
			reason, done, err := s.handle(ev, idle)
			if done {
				s.state = StateClosing
				return reason, err
			}
		}
	}
}

func (s *Session) handle(ev Event, idle *idleTimer) (CloseReason, bool, error) {
	switch ev := ev.(type) {
	case SurfaceClosed:
		if ev.Err != nil {
			s.log.Error().Err(ev.Err).Msg("surface lost")
			return ReasonSurfaceLost, true, ev.Err
		}
		s.log.Debug().Msg("surface closed by compositor")
		return ReasonCanceled, true, nil

	case KeyPressed:
		return s.handleKey(ev, idle)
	}
	return 0, false, nil
}

func (s *Session) handleKey(ev KeyPressed, idle *idleTimer) (CloseReason, bool, error) {
	outcome := s.matcher.Transition(ev.Sym, ev.Mods)

	switch outcome.Kind {
	case menu.Descend:
		// Relayout and recommit before the next event is read; the
		// select above cannot run again until this returns.
		s.surface.Update(s.view())
		idle.rearm()

	case menu.Invoke:
		act := outcome.Action
		if err := s.runner.Run(act.Cmd(), outcome.Key); err != nil {
			// Spawn failure is reported but never fatal; the keep-open
			// policy still decides what happens next.
			s.log.Error().Err(err).Str("cmd", act.Cmd()).Msg("failed to spawn command")
		} else {
			s.log.Info().Str("cmd", act.Cmd()).Str("key", outcome.Key).Msg("dispatched")
		}
		if act.KeepOpen() || act.Repeatable() {
			idle.rearm()
			return 0, false, nil
		}
		return ReasonAction, true, nil

	case menu.Cancel:
		return ReasonCanceled, true, nil

	case menu.NoMatch:
		// State unchanged, no redraw, idle timer keeps running.
	}
	return 0, false, nil
}

func (s *Session) view() View {
	current := s.matcher.Current()
	layout := render.Compute(current.Desc(), render.Items(current), s.style, s.measurer)
	return View{Title: current.Desc(), Layout: layout}
}

// idleTimer is the one-shot auto-cancel timer, rearmed on every
// accepted transition. A zero duration never fires.
type idleTimer struct {
	d     time.Duration
	timer *time.Timer
}

func newIdleTimer(d time.Duration) *idleTimer {
	t := &idleTimer{d: d}
	if d > 0 {
		t.timer = time.NewTimer(d)
	}
	return t
}

func (t *idleTimer) C() <-chan time.Time {
	if t.timer == nil {
		return nil
	}
	return t.timer.C
}

func (t *idleTimer) rearm() {
	if t.timer == nil {
		return
	}
	if !t.timer.Stop() {
		select {
		case <-t.timer.C:
		default:
		}
	}
	t.timer.Reset(t.d)
}

func (t *idleTimer) stop() {
	if t.timer != nil {
		t.timer.Stop()
	}
}
