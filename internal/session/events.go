package session

import (
	"github.com/bnema/keyhud/internal/keymap"
	"github.com/bnema/keyhud/internal/render"
)

// Event is one item pulled from the unified surface event stream. Key
// input, compositor-driven closes and protocol failures all arrive
// through the same channel so the session processes them in strict
// delivery order.
type Event interface {
	sessionEvent()
}

// KeyPressed is a keyboard press with its active modifier set. The
// surface layer filters modifier-only presses before they get here.
type KeyPressed struct {
	Sym  keymap.Keysym
	Mods keymap.Modifier
}

func (KeyPressed) sessionEvent() {}

// SurfaceClosed reports that the surface is gone: Err carries the
// protocol failure, or is nil when the compositor closed the layer.
type SurfaceClosed struct {
	Err error
}

func (SurfaceClosed) sessionEvent() {}

// View is what the session asks the surface to display.
type View struct {
	Title  string
	Layout render.Layout
}

// Surface is the lifecycle contract the session requires of the
// compositor plumbing. Show creates the layer surface and acquires the
// exclusive keyboard grab; a Show error is fatal to the session.
// Close releases the grab before destroying the surface and is safe to
// call exactly once on every exit path.
type Surface interface {
	Show(view View) error
	Update(view View)
	Events() <-chan Event
	Close()
}

// Runner dispatches a bound command. Implemented by the action package;
// faked in tests.
type Runner interface {
	Run(cmd, boundKey string) error
}
