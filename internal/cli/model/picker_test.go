package model

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/keyhud/internal/cli/styles"
	"github.com/bnema/keyhud/internal/keymap"
	"github.com/bnema/keyhud/internal/menu"
)

func testPicker(t *testing.T) Picker {
	t.Helper()
	tree, err := keymap.Build("main", []keymap.EntrySpec{
		{Keys: []string{"t"}, Desc: "Terminal", Cmd: "foot"},
		{Keys: []string{"p"}, Desc: "Power", Submenu: []keymap.EntrySpec{
			{Keys: []string{"s"}, Desc: "Suspend", Cmd: "systemctl suspend"},
		}},
	})
	require.NoError(t, err)
	return NewPicker(tree.Root(), menu.DefaultOptions(), styles.NewTheme(nil))
}

func press(m tea.Model, msg tea.KeyMsg) tea.Model {
	next, _ := m.Update(msg)
	return next
}

func runeMsg(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestPickerInvokes(t *testing.T) {
	m := press(testPicker(t), runeMsg('t'))

	p := m.(Picker)
	act, boundKey := p.Picked()
	require.NotNil(t, act)
	assert.Equal(t, "foot", act.Cmd())
	assert.Equal(t, "t", boundKey)
	assert.False(t, p.Canceled())
}

func TestPickerWalksSubmenus(t *testing.T) {
	m := press(testPicker(t), runeMsg('p'))
	assert.Contains(t, m.View(), "Power")

	m = press(m, runeMsg('s'))
	act, _ := m.(Picker).Picked()
	require.NotNil(t, act)
	assert.Equal(t, "systemctl suspend", act.Cmd())
}

func TestPickerBackAndCancel(t *testing.T) {
	m := press(testPicker(t), runeMsg('p'))
	m = press(m, tea.KeyMsg{Type: tea.KeyBackspace})
	assert.Contains(t, m.View(), "main")

	m = press(m, tea.KeyMsg{Type: tea.KeyEscape})
	assert.True(t, m.(Picker).Canceled())
}

func TestPickerCtrlCCancels(t *testing.T) {
	m := press(testPicker(t), tea.KeyMsg{Type: tea.KeyCtrlC})
	assert.True(t, m.(Picker).Canceled())
}

func TestPickerIgnoresUnbound(t *testing.T) {
	m := press(testPicker(t), runeMsg('z'))
	p := m.(Picker)
	act, _ := p.Picked()
	assert.Nil(t, act)
	assert.False(t, p.Canceled())
	assert.Contains(t, m.View(), "main")
}

func TestPickerViewListsEntries(t *testing.T) {
	view := testPicker(t).View()
	assert.Contains(t, view, "Terminal")
	assert.Contains(t, view, "+Power")
	assert.Contains(t, view, "escape")
}
