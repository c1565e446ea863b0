// Package surface implements the session's Surface contract on top of
// GTK4 and the wlr-layer-shell protocol via gtk4-layer-shell. It owns
// the layer window, the exclusive keyboard mode that realizes the grab,
// and the forwarding of key events into the session's event channel.
//
// GTK widgets are only ever touched on the GTK main thread; the session
// goroutine reaches them through glib.IdleAdd round-trips.
package surface

import (
	"fmt"

	"github.com/diamondburned/gotk4-layer-shell/pkg/gtk4layershell"
	"github.com/diamondburned/gotk4/pkg/gdk/v4"
	"github.com/diamondburned/gotk4/pkg/glib/v2"
	"github.com/diamondburned/gotk4/pkg/gtk/v4"

	"github.com/bnema/keyhud/internal/config"
	"github.com/bnema/keyhud/internal/keymap"
	"github.com/bnema/keyhud/internal/render"
	"github.com/bnema/keyhud/internal/session"
	"github.com/bnema/keyhud/internal/ui/theme"
)

const namespace = "keyhud"

// Layer is a layer-shell overlay surface.
type Layer struct {
	win    *gtk.Window
	panel  *gtk.Fixed
	labels []*gtk.Label

	// events decouples the GTK main thread from the session loop: key
	// forwarding must never block here, or the session's IdleAdd
	// round-trips would deadlock the main loop.
	events *session.EventQueue
	meas   *pangoMeasurer

	inhibit bool
	closed  bool
}

// New creates the (still hidden) layer window. Must be called on the
// GTK main thread, before the session starts.
func New(app *gtk.Application, cfg *config.Config) (*Layer, error) {
	if !gtk4layershell.IsSupported() {
		return nil, fmt.Errorf("compositor does not support wlr-layer-shell: %w", session.ErrGrabUnavailable)
	}

	l := &Layer{
		events:  session.NewEventQueue(),
		inhibit: cfg.InhibitShortcuts,
	}

	appWin := gtk.NewApplicationWindow(app)
	l.win = &appWin.Window
	l.win.AddCSSClass("keyhud")
	l.win.SetDecorated(false)
	l.win.SetResizable(false)

	gtk4layershell.InitForWindow(l.win)
	gtk4layershell.SetNamespace(l.win, namespace)
	gtk4layershell.SetLayer(l.win, gtk4layershell.LayerShellLayerOverlay)
	applyAnchor(l.win, cfg.Anchor)
	applyMargins(l.win, cfg.Margin)

	// The exclusive keyboard mode is the grab: all keyboard input is
	// routed to this surface until the window goes away.
	gtk4layershell.SetKeyboardMode(l.win, gtk4layershell.LayerShellKeyboardModeExclusive)
	gtk4layershell.SetExclusiveZone(l.win, -1)

	l.panel = gtk.NewFixed()
	l.panel.AddCSSClass("keyhud-panel")
	l.win.SetChild(l.panel)

	installCSS(cfg)

	keyCtrl := gtk.NewEventControllerKey()
	keyCtrl.SetPropagationPhase(gtk.PhaseCapture)
	keyCtrl.ConnectKeyPressed(func(keyval, keycode uint, state gdk.ModifierType) bool {
		return l.forwardKey(keyval, state)
	})
	l.win.AddController(keyCtrl)

	l.win.ConnectCloseRequest(func() bool {
		l.push(session.SurfaceClosed{})
		return true
	})

	l.meas = newPangoMeasurer(&l.panel.Widget, cfg.Font)
	return l, nil
}

// Measurer returns the Pango-backed text measurer for this surface.
func (l *Layer) Measurer() render.Measurer { return l.meas }

// Events returns the unified event stream.
func (l *Layer) Events() <-chan session.Event { return l.events.Events() }

// Show sizes the window to the first layout, populates it and presents
// it. Called once from the session goroutine.
func (l *Layer) Show(view session.View) error {
	errc := make(chan error, 1)
	glib.IdleAdd(func() {
		l.apply(view)
		l.win.Present()
		if l.inhibit {
			l.inhibitSystemShortcuts()
		}
		errc <- nil
	})
	return <-errc
}

// Update applies a new layout: resize and recommit. Called from the
// session goroutine; the round-trip completes before the session reads
// its next event, which keeps redraws strictly ordered with input.
func (l *Layer) Update(view session.View) {
	done := make(chan struct{})
	glib.IdleAdd(func() {
		l.apply(view)
		close(done)
	})
	<-done
}

// Close releases the keyboard before destroying the window, so a stuck
// grab can never outlive the overlay. Safe to call exactly once from
// any goroutine.
func (l *Layer) Close() {
	done := make(chan struct{})
	glib.IdleAdd(func() {
		if !l.closed {
			l.closed = true
			gtk4layershell.SetKeyboardMode(l.win, gtk4layershell.LayerShellKeyboardModeNone)
			l.win.Destroy()
		}
		close(done)
	})
	<-done
	l.events.Close()
}

// apply rebuilds the panel content from the layout. Runs on GTK thread.
func (l *Layer) apply(view session.View) {
	for _, label := range l.labels {
		l.panel.Remove(label)
	}
	l.labels = l.labels[:0]

	for _, run := range view.Layout.Runs {
		label := gtk.NewLabel(run.Text)
		switch {
		case run.Kind == render.RunKey:
			label.AddCSSClass("key")
		case run.Kind == render.RunPlaceholder:
			label.AddCSSClass("placeholder")
		case run.Kind == render.RunDesc && run.Submenu:
			label.AddCSSClass("submenu")
		}
		l.panel.Put(label, run.X, run.Y)
		l.labels = append(l.labels, label)
	}

	l.win.SetDefaultSize(int(view.Layout.Width), int(view.Layout.Height))
}

// forwardKey pushes a key press into the session's channel. Modifier
// presses never reach the matcher.
func (l *Layer) forwardKey(keyval uint, state gdk.ModifierType) bool {
	sym := keymap.Keysym(keyval)
	if keymap.IsModifierSym(sym) {
		return false
	}
	mods := keymap.Modifier(state) & keymap.ModifierMask
	l.push(session.KeyPressed{Sym: keymap.NormalizeSym(sym), Mods: mods})
	return true
}

func (l *Layer) push(ev session.Event) {
	l.events.Push(ev)
}

// inhibitSystemShortcuts asks the compositor to route even its own
// bound shortcuts to us. Wayland-only toplevel capability, reached
// structurally so the build does not depend on the platform type.
func (l *Layer) inhibitSystemShortcuts() {
	var surface any = l.win.Surface()
	if tl, ok := surface.(interface{ InhibitSystemShortcuts(gdk.Eventer) }); ok {
		tl.InhibitSystemShortcuts(nil)
	}
}

func installCSS(cfg *config.Config) {
	css := theme.GenerateCSS(theme.Theme{
		Background:   cfg.Background,
		Foreground:   cfg.Color,
		Border:       cfg.Border,
		BorderWidth:  cfg.BorderWidth,
		CornerRadius: cfg.CornerRadius,
		Font:         cfg.Font,
	})
	provider := gtk.NewCSSProvider()
	provider.LoadFromData(css)
	gtk.StyleContextAddProviderForDisplay(
		gdk.DisplayGetDefault(),
		provider,
		gtk.STYLE_PROVIDER_PRIORITY_APPLICATION,
	)
}

func applyAnchor(win *gtk.Window, anchor string) {
	edges := map[string][]gtk4layershell.LayerShellEdge{
		"center":       nil,
		"top":          {gtk4layershell.LayerShellEdgeTop},
		"bottom":       {gtk4layershell.LayerShellEdgeBottom},
		"left":         {gtk4layershell.LayerShellEdgeLeft},
		"right":        {gtk4layershell.LayerShellEdgeRight},
		"top-left":     {gtk4layershell.LayerShellEdgeTop, gtk4layershell.LayerShellEdgeLeft},
		"top-right":    {gtk4layershell.LayerShellEdgeTop, gtk4layershell.LayerShellEdgeRight},
		"bottom-left":  {gtk4layershell.LayerShellEdgeBottom, gtk4layershell.LayerShellEdgeLeft},
		"bottom-right": {gtk4layershell.LayerShellEdgeBottom, gtk4layershell.LayerShellEdgeRight},
	}
	for _, edge := range edges[anchor] {
		gtk4layershell.SetAnchor(win, edge, true)
	}
}

func applyMargins(win *gtk.Window, m config.MarginConfig) {
	gtk4layershell.SetMargin(win, gtk4layershell.LayerShellEdgeTop, m.Top)
	gtk4layershell.SetMargin(win, gtk4layershell.LayerShellEdgeRight, m.Right)
	gtk4layershell.SetMargin(win, gtk4layershell.LayerShellEdgeBottom, m.Bottom)
	gtk4layershell.SetMargin(win, gtk4layershell.LayerShellEdgeLeft, m.Left)
}
