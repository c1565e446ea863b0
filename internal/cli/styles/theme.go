// Package styles provides the lipgloss styling shared by the terminal
// commands (tree, pick).
package styles

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/bnema/keyhud/internal/config"
)

// Theme holds lipgloss colors and styles derived from the overlay
// config, so the terminal output matches the overlay palette.
type Theme struct {
	Text   lipgloss.Color
	Accent lipgloss.Color
	Muted  lipgloss.Color
	Border lipgloss.Color
	Error  lipgloss.Color

	Title    lipgloss.Style
	Key      lipgloss.Style
	Desc     lipgloss.Style
	Submenu  lipgloss.Style
	Subtle   lipgloss.Style
	ErrStyle lipgloss.Style
	OKStyle  lipgloss.Style

	HelpKey  lipgloss.Style
	HelpDesc lipgloss.Style

	Box lipgloss.Style
}

// NewTheme derives a theme from the config colors. A nil config gets
// the built-in palette.
func NewTheme(cfg *config.Config) *Theme {
	text := "#fbf1c7"
	accent := "#8ec07c"
	if cfg != nil {
		if cfg.Color != "" {
			text = cfg.Color
		}
		if cfg.Border != "" {
			accent = cfg.Border
		}
	}

	t := &Theme{
		Text:   lipgloss.Color(text),
		Accent: lipgloss.Color(accent),
		Muted:  lipgloss.Color("#909090"),
		Border: lipgloss.Color("#333333"),
		Error:  lipgloss.Color("#ef4444"),
	}
	t.buildStyles()
	return t
}

func (t *Theme) buildStyles() {
	t.Title = lipgloss.NewStyle().
		Foreground(t.Text).
		Bold(true)

	t.Key = lipgloss.NewStyle().
		Foreground(t.Accent).
		Bold(true)

	t.Desc = lipgloss.NewStyle().
		Foreground(t.Text)

	t.Submenu = lipgloss.NewStyle().
		Foreground(t.Accent)

	t.Subtle = lipgloss.NewStyle().
		Foreground(t.Muted)

	t.ErrStyle = lipgloss.NewStyle().
		Foreground(t.Error)

	t.OKStyle = lipgloss.NewStyle().
		Foreground(t.Accent).
		Bold(true)

	t.HelpKey = lipgloss.NewStyle().
		Foreground(t.Accent)

	t.HelpDesc = lipgloss.NewStyle().
		Foreground(t.Muted)

	t.Box = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(t.Border).
		Padding(0, 2)
}
