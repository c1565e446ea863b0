package keymap

import (
	"fmt"
	"strings"
)

// EntrySpec is the already-deserialized form of one menu entry as the
// config package hands it over. Exactly one of Cmd or Submenu must be
// set.
type EntrySpec struct {
	Keys     []string
	Desc     string
	Cmd      string
	KeepOpen bool
	Submenu  []EntrySpec
}

// Node is either a *Submenu or an *Action.
type Node interface {
	Desc() string
	node()
}

// Action is a terminal node bound to a shell command.
type Action struct {
	desc       string
	cmd        string
	keepOpen   bool
	repeatable bool
}

func (a *Action) node()        {}
func (a *Action) Desc() string { return a.desc }

// Cmd returns the shell command to execute.
func (a *Action) Cmd() string { return a.cmd }

// KeepOpen reports whether executing the action leaves the overlay open.
func (a *Action) KeepOpen() bool { return a.keepOpen }

// Repeatable reports whether the action is marked repeatable. It is a
// dispatch hint only; repeatable actions behave like keep-open ones.
func (a *Action) Repeatable() bool { return a.repeatable }

// Submenu presents further key choices.
type Submenu struct {
	desc     string
	entries  []Entry
	parent   *Submenu
	keepOpen bool
}

func (s *Submenu) node()        {}
func (s *Submenu) Desc() string { return s.desc }

// Entries returns the ordered bindings of the submenu.
func (s *Submenu) Entries() []Entry { return s.entries }

// Parent returns the owning submenu, or nil for the root.
func (s *Submenu) Parent() *Submenu { return s.parent }

// IsRoot reports whether the submenu has no parent.
func (s *Submenu) IsRoot() bool { return s.parent == nil }

// KeepOpen reports whether descending into this submenu suppresses the
// default close-after-transition behavior. Rarely set.
func (s *Submenu) KeepOpen() bool { return s.keepOpen }

// Entry binds one or more alias keys to a child node.
type Entry struct {
	Keys []Key
	Node Node
}

// Label returns the display label for the entry: the alias key labels
// joined with " | ", matching the config spelling.
func (e Entry) Label() string {
	labels := make([]string, len(e.Keys))
	for i, k := range e.Keys {
		labels[i] = k.Label
	}
	return strings.Join(labels, " | ")
}

// Matches reports whether the chord hits one of the entry's alias keys.
func (e Entry) Matches(c Chord) bool {
	for _, k := range e.Keys {
		if k.Chord() == c {
			return true
		}
	}
	return false
}

// Tree is the immutable keymap tree. Constructed once per session,
// never mutated afterwards.
type Tree struct {
	root *Submenu
}

// Root returns the root submenu.
func (t *Tree) Root() *Submenu { return t.root }

// Build constructs and validates a tree from config entries. Duplicate
// bindings within one submenu, empty submenus, entries with neither cmd
// nor submenu, and unparseable keys all fail construction; nothing is
// surfaced at runtime.
func Build(title string, entries []EntrySpec) (*Tree, error) {
	root, err := buildSubmenu(title, entries, nil, "")
	if err != nil {
		return nil, err
	}
	return &Tree{root: root}, nil
}

func buildSubmenu(desc string, specs []EntrySpec, parent *Submenu, path string) (*Submenu, error) {
	if len(specs) == 0 {
		return nil, fmt.Errorf("submenu %s has no entries", pathOrRoot(path))
	}

	sub := &Submenu{desc: desc, parent: parent}
	seen := make(map[Chord]string, len(specs))

	for _, spec := range specs {
		entry, err := buildEntry(spec, sub, path, seen)
		if err != nil {
			return nil, err
		}
		sub.entries = append(sub.entries, entry)
	}
	return sub, nil
}

func buildEntry(spec EntrySpec, parent *Submenu, path string, seen map[Chord]string) (Entry, error) {
	if len(spec.Keys) == 0 {
		return Entry{}, fmt.Errorf("entry %q in %s has no key", spec.Desc, pathOrRoot(path))
	}

	keys := make([]Key, 0, len(spec.Keys))
	for _, raw := range spec.Keys {
		key, err := ParseKey(raw)
		if err != nil {
			return Entry{}, fmt.Errorf("%s: %w", pathOrRoot(path), err)
		}
		if prev, dup := seen[key.Chord()]; dup {
			return Entry{}, fmt.Errorf("duplicate binding %q in %s (already bound as %q)",
				key.Label, pathOrRoot(path), prev)
		}
		seen[key.Chord()] = key.Label
		keys = append(keys, key)
	}

	childPath := path
	if childPath != "" {
		childPath += " > "
	}
	childPath += keys[0].Label

	var node Node
	switch {
	case spec.Cmd != "" && len(spec.Submenu) > 0:
		return Entry{}, fmt.Errorf("entry %q has both cmd and submenu", childPath)
	case len(spec.Submenu) > 0:
		child, err := buildSubmenu(spec.Desc, spec.Submenu, parent, childPath)
		if err != nil {
			return Entry{}, err
		}
		child.keepOpen = spec.KeepOpen
		node = child
	case strings.TrimSpace(spec.Cmd) != "":
		node = &Action{desc: spec.Desc, cmd: spec.Cmd, keepOpen: spec.KeepOpen}
	default:
		return Entry{}, fmt.Errorf("entry %q has neither cmd nor submenu", childPath)
	}

	return Entry{Keys: keys, Node: node}, nil
}

func pathOrRoot(path string) string {
	if path == "" {
		return "root menu"
	}
	return fmt.Sprintf("submenu %q", path)
}

// At walks a whitespace-separated key sequence like "p s" from the root
// and returns the node it lands on. Used for --keys startup navigation.
func (t *Tree) At(sequence string) (Node, error) {
	cur := t.root
	for _, token := range strings.Fields(sequence) {
		key, err := ParseKey(token)
		if err != nil {
			return nil, err
		}
		entry, ok := lookup(cur, key.Chord())
		if !ok {
			return nil, fmt.Errorf("key %q not bound under %q", token, cur.Desc())
		}
		switch node := entry.Node.(type) {
		case *Submenu:
			cur = node
		case *Action:
			return node, nil
		}
	}
	return cur, nil
}

func lookup(s *Submenu, c Chord) (Entry, bool) {
	for _, e := range s.entries {
		if e.Matches(c) {
			return e, true
		}
	}
	return Entry{}, false
}
