// Package model holds the bubbletea models backing the terminal
// commands.
package model

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/bnema/keyhud/internal/cli/styles"
	"github.com/bnema/keyhud/internal/keymap"
	"github.com/bnema/keyhud/internal/menu"
)

// keyMap binds the picker's own meta keys for the help footer. The
// actual menu keys come from the config, not from here.
type keyMap struct {
	Back   key.Binding
	Cancel key.Binding
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Back, k.Cancel}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Back, k.Cancel}}
}

// Picker is the terminal stand-in for the overlay: the same matcher
// walks the same tree, driven by terminal key events instead of a
// keyboard grab.
type Picker struct {
	matcher *menu.Matcher
	theme   *styles.Theme

	keys keyMap
	help help.Model

	picked   *keymap.Action
	pickedBy string
	canceled bool
}

// NewPicker creates a picker positioned at root.
func NewPicker(root *keymap.Submenu, opts menu.Options, theme *styles.Theme) Picker {
	h := help.New()
	h.Styles.ShortKey = theme.HelpKey
	h.Styles.ShortDesc = theme.HelpDesc

	return Picker{
		matcher: menu.New(root, opts),
		theme:   theme,
		keys: keyMap{
			Back: key.NewBinding(
				key.WithKeys(opts.BackKey.Label),
				key.WithHelp(opts.BackKey.Label, "back"),
			),
			Cancel: key.NewBinding(
				key.WithKeys(opts.CancelKey.Label),
				key.WithHelp(opts.CancelKey.Label, "cancel"),
			),
		},
		help: h,
	}
}

// Picked returns the chosen action and the key that chose it, or nil
// if the picker was canceled.
func (p Picker) Picked() (*keymap.Action, string) { return p.picked, p.pickedBy }

// Canceled reports whether the picker ended without a choice.
func (p Picker) Canceled() bool { return p.canceled }

// Init implements tea.Model.
func (p Picker) Init() tea.Cmd { return nil }

// Update implements tea.Model. Terminal key names parse with the same
// grammar as config key specs, so one translation covers both.
func (p Picker) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return p, nil
	}

	if keyMsg.Type == tea.KeyCtrlC {
		p.canceled = true
		return p, tea.Quit
	}

	parsed, err := keymap.ParseKey(normalizeTeaKey(keyMsg.String()))
	if err != nil {
		return p, nil
	}

	outcome := p.matcher.Transition(parsed.Sym, parsed.Mods)
	switch outcome.Kind {
	case menu.Invoke:
		p.picked = outcome.Action
		p.pickedBy = outcome.Key
		return p, tea.Quit
	case menu.Cancel:
		p.canceled = true
		return p, tea.Quit
	}
	return p, nil
}

// View implements tea.Model.
func (p Picker) View() string {
	current := p.matcher.Current()

	var b strings.Builder
	b.WriteString(p.theme.Title.Render(current.Desc()) + "\n\n")

	width := 0
	for _, entry := range current.Entries() {
		if w := len(entry.Label()); w > width {
			width = w
		}
	}

	for _, entry := range current.Entries() {
		label := fmt.Sprintf("%*s", width, entry.Label())
		b.WriteString("  " + p.theme.Key.Render(label))
		switch node := entry.Node.(type) {
		case *keymap.Submenu:
			b.WriteString("  " + p.theme.Submenu.Render("+"+node.Desc()))
		case *keymap.Action:
			b.WriteString("  " + p.theme.Desc.Render(node.Desc()))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n" + p.help.View(p.keys))
	return p.theme.Box.Render(b.String()) + "\n"
}

// normalizeTeaKey maps bubbletea key names onto the config key grammar
// where they differ.
func normalizeTeaKey(name string) string {
	switch name {
	case "esc":
		return "escape"
	case " ":
		return "space"
	}
	return name
}
