package surface

import (
	"github.com/diamondburned/gotk4/pkg/glib/v2"
	"github.com/diamondburned/gotk4/pkg/gtk/v4"
	"github.com/diamondburned/gotk4/pkg/pango"
)

// pangoMeasurer measures text with a Pango layout in the overlay font.
// Pango objects belong to the GTK thread, so every measurement is a
// main-loop round-trip; entry counts are small enough that this stays
// well under a frame.
type pangoMeasurer struct {
	layout *pango.Layout
}

func newPangoMeasurer(widget *gtk.Widget, font string) *pangoMeasurer {
	layout := widget.CreatePangoLayout("")
	layout.SetFontDescription(pango.NewFontDescriptionFromString(font))
	return &pangoMeasurer{layout: layout}
}

// TextSize implements render.Measurer.
func (m *pangoMeasurer) TextSize(s string) (float64, float64) {
	type extent struct{ w, h int }
	ch := make(chan extent, 1)
	glib.IdleAdd(func() {
		m.layout.SetText(s)
		w, h := m.layout.PixelSize()
		ch <- extent{w, h}
	})
	e := <-ch
	return float64(e.w), float64(e.h)
}
