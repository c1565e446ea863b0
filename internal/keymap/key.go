// Package keymap provides the immutable keybinding tree and the key
// parsing used to build it. The package is free of GTK imports so the
// tree and the matcher on top of it can be tested without a display;
// keysym and modifier values mirror the GDK encoding so events coming
// from the surface layer compare directly.
package keymap

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Keysym is a key identifier in the GDK/X11 keyval encoding: Latin-1
// characters map to their codepoint, other Unicode characters to
// 0x01000000+codepoint, and function/control keys use the 0xffxx range.
type Keysym uint32

// Modifier represents keyboard modifier flags. The bit values mirror
// gdk.ModifierType so the surface layer can mask and cast directly.
type Modifier uint32

const (
	// ModNone indicates no modifier is pressed.
	ModNone Modifier = 0
	// ModShift indicates the Shift key is pressed.
	ModShift Modifier = 1 << 0
	// ModCtrl indicates the Control key is pressed.
	ModCtrl Modifier = 1 << 2
	// ModAlt indicates the Alt key is pressed.
	ModAlt Modifier = 1 << 3
	// ModSuper indicates the Super/logo key is pressed.
	ModSuper Modifier = 1 << 26
)

// ModifierMask filters out locks and pointer-button state from a raw
// GDK modifier field before it reaches the matcher.
const ModifierMask = ModShift | ModCtrl | ModAlt | ModSuper

// Well-known keysyms used by the matcher defaults and the surface layer.
const (
	KeysymSpace     Keysym = 0x0020
	KeysymBackSpace Keysym = 0xff08
	KeysymTab       Keysym = 0xff09
	KeysymReturn    Keysym = 0xff0d
	KeysymEscape    Keysym = 0xff1b
	KeysymDelete    Keysym = 0xffff
	KeysymF1        Keysym = 0xffbe
)

// keysymByName maps spelled-out key names to keysyms. Single-character
// names are resolved by keysymFromRune instead.
var keysymByName = map[string]Keysym{
	"escape":    KeysymEscape,
	"esc":       KeysymEscape,
	"return":    KeysymReturn,
	"enter":     KeysymReturn,
	"tab":       KeysymTab,
	"space":     KeysymSpace,
	"backspace": KeysymBackSpace,
	"delete":    KeysymDelete,
	"del":       KeysymDelete,
	"home":      0xff50,
	"end":       0xff57,
	"pageup":    0xff55,
	"page_up":   0xff55,
	"pagedown":  0xff56,
	"page_down": 0xff56,
	"left":      0xff51,
	"up":        0xff52,
	"right":     0xff53,
	"down":      0xff54,
	"insert":    0xff63,
	"minus":     Keysym('-'),
	"plus":      Keysym('+'),
	"equal":     Keysym('='),
	"comma":     Keysym(','),
	"period":    Keysym('.'),
	"slash":     Keysym('/'),
	"semicolon": Keysym(';'),
}

// Key is a single parseable key combination: a keysym plus a modifier
// set, keeping the config spelling around as its display label.
type Key struct {
	Sym   Keysym
	Mods  Modifier
	Label string
}

// ParseKey parses a key spec like "c", "ctrl+x", "alt+F5" or "super+space".
// The last '+'-separated component is the key itself; everything before
// it must be a modifier name. A bare "+" binds the plus key.
func ParseKey(spec string) (Key, error) {
	if spec == "" {
		return Key{}, fmt.Errorf("empty key")
	}
	if spec == "+" {
		return Key{Sym: Keysym('+'), Label: spec}, nil
	}

	parts := strings.Split(spec, "+")
	name := parts[len(parts)-1]
	modParts := parts[:len(parts)-1]
	if name == "" {
		// "ctrl++" binds the plus key and splits into an empty last
		// element. A lone trailing '+' ("ctrl+") is a typo, not a
		// binding, and must fail at load.
		if !strings.HasSuffix(spec, "++") {
			return Key{}, fmt.Errorf("key %q: empty key name", spec)
		}
		name = "+"
		modParts = modParts[:len(modParts)-1]
	}

	var mods Modifier
	for _, part := range modParts {
		switch strings.ToLower(part) {
		case "ctrl", "control":
			mods |= ModCtrl
		case "alt":
			mods |= ModAlt
		case "shift":
			mods |= ModShift
		case "super", "mod4", "logo":
			mods |= ModSuper
		default:
			return Key{}, fmt.Errorf("unknown modifier %q in key %q", part, spec)
		}
	}

	sym, err := keysymFromName(name)
	if err != nil {
		return Key{}, fmt.Errorf("key %q: %w", spec, err)
	}

	// Uppercase Latin-1 letters are delivered by compositors as a
	// lowercase keysym plus Shift. Normalize the binding the same way.
	if sym >= 'A' && sym <= 'Z' {
		sym += 'a' - 'A'
		mods |= ModShift
	}

	return Key{Sym: sym, Mods: mods, Label: spec}, nil
}

// NormalizeSym lowercases ASCII letter keysyms delivered by the
// compositor so they compare against normalized bindings.
func NormalizeSym(sym Keysym) Keysym {
	if sym >= 'A' && sym <= 'Z' {
		return sym + ('a' - 'A')
	}
	return sym
}

// IsModifierSym reports whether the keysym is itself a modifier key
// (Shift_L..Hyper_R, ISO_Level3_Shift). These never match a binding and
// are filtered before the matcher sees them.
func IsModifierSym(sym Keysym) bool {
	return (sym >= 0xffe1 && sym <= 0xffee) || sym == 0xfe03
}

func keysymFromName(name string) (Keysym, error) {
	if utf8.RuneCountInString(name) == 1 {
		r, _ := utf8.DecodeRuneInString(name)
		return keysymFromRune(r), nil
	}
	if sym, ok := keysymByName[strings.ToLower(name)]; ok {
		return sym, nil
	}
	if sym, ok := functionKeysym(name); ok {
		return sym, nil
	}
	return 0, fmt.Errorf("unknown key name %q", name)
}

// functionKeysym resolves F1..F24.
func functionKeysym(name string) (Keysym, bool) {
	if len(name) < 2 || (name[0] != 'F' && name[0] != 'f') {
		return 0, false
	}
	n := 0
	for _, c := range name[1:] {
		if c < '0' || c > '9' {
			return 0, false
		}
		n = n*10 + int(c-'0')
	}
	if n < 1 || n > 24 {
		return 0, false
	}
	return KeysymF1 + Keysym(n-1), true
}

func keysymFromRune(r rune) Keysym {
	// GDK rule: Latin-1 is identity, everything else is offset into the
	// Unicode keysym plane.
	if r >= 0x20 && r <= 0xff {
		return Keysym(r)
	}
	return Keysym(0x01000000 + uint32(r))
}

func (k Key) String() string { return k.Label }

// Chord is the comparable (keysym, modifiers) pair a key event resolves to.
type Chord struct {
	Sym  Keysym
	Mods Modifier
}

// Chord returns the comparable identity of the key.
func (k Key) Chord() Chord { return Chord{Sym: k.Sym, Mods: k.Mods} }
