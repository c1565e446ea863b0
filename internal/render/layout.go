// Package render computes the overlay layout: which text goes where and
// how large the surface must be. Measurement is delegated to a Measurer
// (Pango-backed in the GTK surface, a fake in tests); this package only
// owns packing order and geometry, so the same entry list always yields
// the same layout.
package render

import (
	"github.com/bnema/keyhud/internal/keymap"
)

// Measurer returns the pixel extent of a text string in the overlay font.
type Measurer interface {
	TextSize(s string) (w, h float64)
}

// RunKind tags a positioned text run.
type RunKind int

const (
	// RunKey is a binding label, right-aligned in its column.
	RunKey RunKind = iota
	// RunSeparator sits between a binding label and its description.
	RunSeparator
	// RunDesc is an entry description.
	RunDesc
	// RunPlaceholder is the title line of an empty submenu.
	RunPlaceholder
)

// Run is one positioned piece of text.
type Run struct {
	Text string
	X, Y float64
	Kind RunKind
	// Submenu marks descriptions of submenu entries so they can be
	// styled distinctly from action entries.
	Submenu bool
}

// Layout is a full overlay frame: the runs plus the surface extent that
// fits them.
type Layout struct {
	Runs   []Run
	Width  float64
	Height float64
}

// Style carries the configuration the packing depends on.
type Style struct {
	Separator     string
	Padding       float64
	ColumnPadding float64
	BorderWidth   float64
	// Columns fixes the column count; 0 derives it from RowsPerColumn,
	// and a single column is used when both are unset.
	Columns       int
	RowsPerColumn int
	// MaxEntryWidth truncates descriptions wider than this. 0 disables.
	MaxEntryWidth float64
}

// Item is one visible row: a binding label and its description.
type Item struct {
	Key     string
	Desc    string
	Submenu bool
}

// Items flattens a submenu's entries into display items. Submenu
// descriptions get the conventional "+" marker.
func Items(s *keymap.Submenu) []Item {
	entries := s.Entries()
	items := make([]Item, 0, len(entries))
	for _, e := range entries {
		_, isSub := e.Node.(*keymap.Submenu)
		desc := e.Node.Desc()
		if isSub {
			desc = "+" + desc
		}
		items = append(items, Item{Key: e.Label(), Desc: desc, Submenu: isSub})
	}
	return items
}

// Compute packs the items into columns and positions every text run.
// Items are assigned row-major in declaration order; each column is as
// wide as its widest label+description. Re-run in full on every
// transition, which is fine at the entry counts involved.
func Compute(title string, items []Item, st Style, m Measurer) Layout {
	inset := st.Padding + st.BorderWidth

	if len(items) == 0 {
		text := title
		if text == "" {
			text = "(empty)"
		}
		w, h := m.TextSize(text)
		return Layout{
			Runs:   []Run{{Text: text, X: inset, Y: inset, Kind: RunPlaceholder}},
			Width:  w + 2*inset,
			Height: h + 2*inset,
		}
	}

	cols := columnCount(len(items), st)
	rows := (len(items) + cols - 1) / cols

	sepW, sepH := m.TextSize(st.Separator)

	type cell struct {
		item        Item
		keyW, descW float64
	}
	cells := make([]cell, len(items))

	keyW := make([]float64, cols)
	descW := make([]float64, cols)
	rowH := sepH

	for i, it := range items {
		col := i % cols
		it.Desc = truncate(it.Desc, st.MaxEntryWidth, m)
		kw, kh := m.TextSize(it.Key)
		dw, dh := m.TextSize(it.Desc)
		cells[i] = cell{item: it, keyW: kw, descW: dw}
		keyW[col] = max(keyW[col], kw)
		descW[col] = max(descW[col], dw)
		rowH = max(rowH, max(kh, dh))
	}

	colX := make([]float64, cols)
	x := inset
	for c := 0; c < cols; c++ {
		colX[c] = x
		x += keyW[c] + sepW + descW[c]
		if c != cols-1 {
			x += st.ColumnPadding
		}
	}
	width := x + inset

	runs := make([]Run, 0, 3*len(items))
	for i, cl := range cells {
		col := i % cols
		row := i / cols
		y := inset + float64(row)*rowH
		runs = append(runs,
			Run{Text: cl.item.Key, X: colX[col] + keyW[col] - cl.keyW, Y: y, Kind: RunKey},
			Run{Text: st.Separator, X: colX[col] + keyW[col], Y: y, Kind: RunSeparator},
			Run{Text: cl.item.Desc, X: colX[col] + keyW[col] + sepW, Y: y, Kind: RunDesc, Submenu: cl.item.Submenu},
		)
	}

	return Layout{
		Runs:   runs,
		Width:  width,
		Height: float64(rows)*rowH + 2*inset,
	}
}

func columnCount(n int, st Style) int {
	cols := st.Columns
	if cols <= 0 && st.RowsPerColumn > 0 {
		cols = (n + st.RowsPerColumn - 1) / st.RowsPerColumn
	}
	if cols <= 0 {
		cols = 1
	}
	if cols > n {
		cols = n
	}
	return cols
}

// truncate shortens s with an ellipsis until it fits maxW. Never fails;
// a width smaller than the ellipsis itself yields just the ellipsis.
func truncate(s string, maxW float64, m Measurer) string {
	if maxW <= 0 {
		return s
	}
	if w, _ := m.TextSize(s); w <= maxW {
		return s
	}
	runes := []rune(s)
	for len(runes) > 0 {
		runes = runes[:len(runes)-1]
		candidate := string(runes) + "…"
		if w, _ := m.TextSize(candidate); w <= maxW {
			return candidate
		}
	}
	return "…"
}
