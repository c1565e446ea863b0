// Package menu implements the sequence matcher: a cursor into the
// keymap tree that interprets single keypresses against the current
// submenu's children. The matcher is purely reactive; timeouts and
// session termination are the session's business.
package menu

import (
	"github.com/bnema/keyhud/internal/keymap"
)

// UnmatchedPolicy decides what a key that matches nothing does.
type UnmatchedPolicy int

const (
	// UnmatchedIgnore absorbs unbound keys, tolerating stray events.
	UnmatchedIgnore UnmatchedPolicy = iota
	// UnmatchedCancel treats any unbound key as a cancel request.
	UnmatchedCancel
)

// Kind tags a transition outcome.
type Kind int

const (
	// NoMatch means the key hit nothing; matcher state is unchanged.
	NoMatch Kind = iota
	// Descend means the cursor moved to another submenu.
	Descend
	// Invoke means a bound action was reached.
	Invoke
	// Cancel means the session should close without dispatching.
	Cancel
)

// Outcome is the result of one transition.
type Outcome struct {
	Kind Kind
	// Submenu is the new current submenu for Descend.
	Submenu *keymap.Submenu
	// Action is the reached action for Invoke.
	Action *keymap.Action
	// Key is the binding label that produced the outcome, when any.
	Key string
}

// Options configure the implicit cancel/back keys and the unmatched
// policy.
type Options struct {
	CancelKey keymap.Key
	BackKey   keymap.Key
	Unmatched UnmatchedPolicy
}

// DefaultOptions returns Escape-to-cancel, BackSpace-to-back, and the
// ignore policy for unmatched keys.
func DefaultOptions() Options {
	return Options{
		CancelKey: keymap.Key{Sym: keymap.KeysymEscape, Label: "escape"},
		BackKey:   keymap.Key{Sym: keymap.KeysymBackSpace, Label: "backspace"},
		Unmatched: UnmatchedIgnore,
	}
}

// Matcher holds the current submenu cursor. It only ever moves on
// Descend; every other outcome leaves it where it is.
type Matcher struct {
	current *keymap.Submenu
	opts    Options
}

// New creates a matcher positioned at root.
func New(root *keymap.Submenu, opts Options) *Matcher {
	return &Matcher{current: root, opts: opts}
}

// Current returns the submenu the cursor points at.
func (m *Matcher) Current() *keymap.Submenu { return m.current }

// Transition resolves one keypress against the current submenu.
// Explicit child bindings take precedence over the implicit cancel and
// back keys; the back key at root is an ordinary NoMatch.
func (m *Matcher) Transition(sym keymap.Keysym, mods keymap.Modifier) Outcome {
	chord := keymap.Chord{Sym: keymap.NormalizeSym(sym), Mods: mods & keymap.ModifierMask}

	for _, entry := range m.current.Entries() {
		if !entry.Matches(chord) {
			continue
		}
		switch node := entry.Node.(type) {
		case *keymap.Submenu:
			m.current = node
			return Outcome{Kind: Descend, Submenu: node, Key: entry.Label()}
		case *keymap.Action:
			return Outcome{Kind: Invoke, Action: node, Key: entry.Label()}
		}
	}

	if chord == m.opts.CancelKey.Chord() {
		return Outcome{Kind: Cancel, Key: m.opts.CancelKey.Label}
	}

	if chord == m.opts.BackKey.Chord() {
		if parent := m.current.Parent(); parent != nil {
			m.current = parent
			return Outcome{Kind: Descend, Submenu: parent, Key: m.opts.BackKey.Label}
		}
		return Outcome{Kind: NoMatch}
	}

	if m.opts.Unmatched == UnmatchedCancel {
		return Outcome{Kind: Cancel}
	}
	return Outcome{Kind: NoMatch}
}
