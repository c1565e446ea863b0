package menu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/keyhud/internal/keymap"
)

func buildTree(t *testing.T) *keymap.Tree {
	t.Helper()
	tree, err := keymap.Build("main", []keymap.EntrySpec{
		{Keys: []string{"t"}, Desc: "Terminal", Cmd: "foot"},
		{Keys: []string{"p"}, Desc: "Power", Submenu: []keymap.EntrySpec{
			{Keys: []string{"s"}, Desc: "Suspend", Cmd: "systemctl suspend"},
			{Keys: []string{"escape"}, Desc: "Eject", Cmd: "eject"},
		}},
		{Keys: []string{"ctrl+x"}, Desc: "Kill", Cmd: "xkill"},
	})
	require.NoError(t, err)
	return tree
}

func TestTransitionDescendAndInvoke(t *testing.T) {
	tree := buildTree(t)
	m := New(tree.Root(), DefaultOptions())

	// Descend into the power submenu, then invoke suspend.
	out := m.Transition('p', 0)
	require.Equal(t, Descend, out.Kind)
	assert.Equal(t, "Power", out.Submenu.Desc())
	assert.Same(t, out.Submenu, m.Current())

	out = m.Transition('s', 0)
	require.Equal(t, Invoke, out.Kind)
	assert.Equal(t, "systemctl suspend", out.Action.Cmd())
	assert.Equal(t, "s", out.Key)
	// Invoke never moves the cursor; the session decides what happens.
	assert.Equal(t, "Power", m.Current().Desc())
}

func TestTransitionModifierChord(t *testing.T) {
	tree := buildTree(t)
	m := New(tree.Root(), DefaultOptions())

	out := m.Transition('x', keymap.ModCtrl)
	require.Equal(t, Invoke, out.Kind)
	assert.Equal(t, "xkill", out.Action.Cmd())

	// Same keysym without the modifier matches nothing.
	out = m.Transition('x', 0)
	assert.Equal(t, NoMatch, out.Kind)
}

func TestTransitionStripsLockBits(t *testing.T) {
	tree := buildTree(t)
	m := New(tree.Root(), DefaultOptions())

	// Caps/Num lock bits outside the mask must not break matching.
	const lockBits = keymap.Modifier(1<<1 | 1<<4)
	out := m.Transition('x', keymap.ModCtrl|lockBits)
	assert.Equal(t, Invoke, out.Kind)
}

func TestTransitionNormalizesUppercase(t *testing.T) {
	tree := buildTree(t)
	m := New(tree.Root(), DefaultOptions())

	// A compositor delivering 'P' as uppercase sym plus shift must not
	// hit the unshifted 'p' binding.
	out := m.Transition('P', keymap.ModShift)
	assert.Equal(t, NoMatch, out.Kind)

	// But an uppercase sym with no shift (unusual, some virtual
	// keyboards) still lowercases onto the binding.
	out = m.Transition('P', 0)
	assert.Equal(t, Descend, out.Kind)
}

func TestCancelKey(t *testing.T) {
	tree := buildTree(t)
	m := New(tree.Root(), DefaultOptions())

	out := m.Transition(keymap.KeysymEscape, 0)
	require.Equal(t, Cancel, out.Kind)
	assert.Equal(t, "escape", out.Key)
}

func TestExplicitBindingShadowsCancel(t *testing.T) {
	tree := buildTree(t)
	m := New(tree.Root(), DefaultOptions())

	// The power submenu binds escape itself; the implicit cancel key
	// loses to it.
	out := m.Transition('p', 0)
	require.Equal(t, Descend, out.Kind)

	out = m.Transition(keymap.KeysymEscape, 0)
	require.Equal(t, Invoke, out.Kind)
	assert.Equal(t, "eject", out.Action.Cmd())
}

func TestBackKey(t *testing.T) {
	tree := buildTree(t)
	m := New(tree.Root(), DefaultOptions())

	out := m.Transition('p', 0)
	require.Equal(t, Descend, out.Kind)

	out = m.Transition(keymap.KeysymBackSpace, 0)
	require.Equal(t, Descend, out.Kind)
	assert.Same(t, tree.Root(), m.Current())
}

func TestBackKeyAtRootIsNoMatch(t *testing.T) {
	tree := buildTree(t)
	m := New(tree.Root(), DefaultOptions())

	out := m.Transition(keymap.KeysymBackSpace, 0)
	assert.Equal(t, NoMatch, out.Kind)
	assert.Same(t, tree.Root(), m.Current())
}

func TestUnmatchedPolicies(t *testing.T) {
	tree := buildTree(t)

	t.Run("ignore absorbs", func(t *testing.T) {
		m := New(tree.Root(), DefaultOptions())
		out := m.Transition('z', 0)
		assert.Equal(t, NoMatch, out.Kind)
		assert.Same(t, tree.Root(), m.Current())
	})

	t.Run("cancel closes", func(t *testing.T) {
		opts := DefaultOptions()
		opts.Unmatched = UnmatchedCancel
		m := New(tree.Root(), opts)
		out := m.Transition('z', 0)
		assert.Equal(t, Cancel, out.Kind)
	})
}

func TestCustomCancelAndBackKeys(t *testing.T) {
	tree := buildTree(t)

	cancel, err := keymap.ParseKey("q")
	require.NoError(t, err)
	back, err := keymap.ParseKey("ctrl+h")
	require.NoError(t, err)

	m := New(tree.Root(), Options{CancelKey: cancel, BackKey: back})

	out := m.Transition('p', 0)
	require.Equal(t, Descend, out.Kind)

	out = m.Transition('h', keymap.ModCtrl)
	require.Equal(t, Descend, out.Kind)
	assert.Same(t, tree.Root(), m.Current())

	out = m.Transition('q', 0)
	assert.Equal(t, Cancel, out.Kind)

	// Escape is now an ordinary unbound key.
	out = m.Transition(keymap.KeysymEscape, 0)
	assert.Equal(t, NoMatch, out.Kind)
}
