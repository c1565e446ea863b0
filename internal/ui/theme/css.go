// Package theme generates the GTK4 CSS that styles the overlay from
// the user's configured colors and font.
package theme

import (
	"fmt"
	"strconv"
	"strings"
)

// Theme carries everything the CSS depends on.
type Theme struct {
	Background   string // hex, e.g. "#282828"
	Foreground   string
	Border       string
	BorderWidth  float64
	CornerRadius float64
	Font         string // Pango description, e.g. "monospace 10"
}

// GenerateCSS builds the stylesheet for the overlay window. The window
// itself stays transparent; the rounded panel is the .keyhud-panel box.
func GenerateCSS(t Theme) string {
	family, size := SplitFont(t.Font)

	var sb strings.Builder

	sb.WriteString("window.keyhud {\n\tbackground-color: transparent;\n}\n\n")

	fmt.Fprintf(&sb, `.keyhud-panel {
	background-color: %s;
	border: %.1fpx solid %s;
	border-radius: %.1fpx;
	color: %s;
}

`, t.Background, t.BorderWidth, t.Border, t.CornerRadius, t.Foreground)

	fmt.Fprintf(&sb, `.keyhud-panel label {
	font-family: %q;
	font-size: %.1fpt;
	color: %s;
}

`, family, size, t.Foreground)

	fmt.Fprintf(&sb, `.keyhud-panel label.key {
	font-weight: bold;
}

.keyhud-panel label.submenu {
	color: %s;
}

.keyhud-panel label.placeholder {
	font-style: italic;
}
`, t.Border)

	return sb.String()
}

// SplitFont splits a Pango font description into family and point size.
// "monospace 10" → ("monospace", 10); a missing size defaults to 10pt.
func SplitFont(desc string) (string, float64) {
	fields := strings.Fields(desc)
	if len(fields) == 0 {
		return "monospace", 10
	}
	if size, err := strconv.ParseFloat(fields[len(fields)-1], 64); err == nil && len(fields) > 1 {
		return strings.Join(fields[:len(fields)-1], " "), size
	}
	return strings.Join(fields, " "), 10
}
