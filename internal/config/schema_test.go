package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/keyhud/internal/keymap"
	"github.com/bnema/keyhud/internal/menu"
)

func TestMenuEntryKeys(t *testing.T) {
	tests := []struct {
		name    string
		key     any
		want    []string
		wantErr bool
	}{
		{"single string", "t", []string{"t"}, false},
		{"string list", []any{"u", "plus"}, []string{"u", "plus"}, false},
		{"nil", nil, nil, false},
		{"non-string item", []any{"u", 5}, nil, true},
		{"wrong type", 42, nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := MenuEntry{Key: tt.key}.Keys()
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestConfigNamedMenus(t *testing.T) {
	cfg := &Config{
		Menu: []MenuEntry{{Key: "t", Desc: "Terminal", Cmd: "foot"}},
		Menus: map[string][]MenuEntry{
			"shot": {{Key: "r", Desc: "Region", Cmd: "grim"}},
		},
	}

	tree, err := cfg.BuildTree("")
	require.NoError(t, err)
	assert.Equal(t, appName, tree.Root().Desc())

	tree, err = cfg.BuildTree("shot")
	require.NoError(t, err)
	assert.Equal(t, "shot", tree.Root().Desc())
	require.Len(t, tree.Root().Entries(), 1)

	_, err = cfg.BuildTree("nope")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `no menu named "nope"`)
}

func TestConfigBuildTreeNested(t *testing.T) {
	cfg := &Config{
		Menu: []MenuEntry{
			{Key: "p", Desc: "Power", Submenu: []MenuEntry{
				{Key: []any{"s", "F1"}, Desc: "Suspend", Cmd: "systemctl suspend", KeepOpen: true},
			}},
		},
	}

	tree, err := cfg.BuildTree("")
	require.NoError(t, err)

	sub, ok := tree.Root().Entries()[0].Node.(*keymap.Submenu)
	require.True(t, ok)
	entry := sub.Entries()[0]
	assert.Equal(t, "s | F1", entry.Label())
	act, ok := entry.Node.(*keymap.Action)
	require.True(t, ok)
	assert.True(t, act.KeepOpen())
}

func TestMatcherOptions(t *testing.T) {
	cfg := &Config{CancelKey: "q", BackKey: "ctrl+h", OnUnmatched: "cancel"}
	opts := cfg.MatcherOptions()

	assert.Equal(t, keymap.Chord{Sym: 'q'}, opts.CancelKey.Chord())
	assert.Equal(t, keymap.Chord{Sym: 'h', Mods: keymap.ModCtrl}, opts.BackKey.Chord())
	assert.Equal(t, menu.UnmatchedCancel, opts.Unmatched)
}

func TestMatcherOptionsDefaults(t *testing.T) {
	opts := (&Config{}).MatcherOptions()
	def := menu.DefaultOptions()

	assert.Equal(t, def.CancelKey.Chord(), opts.CancelKey.Chord())
	assert.Equal(t, def.BackKey.Chord(), opts.BackKey.Chord())
	assert.Equal(t, def.Unmatched, opts.Unmatched)
}

func TestStyleMapping(t *testing.T) {
	cfg := &Config{
		Separator:     " -> ",
		Padding:       8,
		ColumnPadding: 24,
		BorderWidth:   2,
		Columns:       3,
		RowsPerColumn: 5,
		MaxEntryWidth: 300,
	}
	st := cfg.Style()

	assert.Equal(t, " -> ", st.Separator)
	assert.Equal(t, 8.0, st.Padding)
	assert.Equal(t, 24.0, st.ColumnPadding)
	assert.Equal(t, 3, st.Columns)
	assert.Equal(t, 5, st.RowsPerColumn)
	assert.Equal(t, 300.0, st.MaxEntryWidth)
}

func TestValidateColor(t *testing.T) {
	for _, ok := range []string{"#fff", "#282828", "#282828ff", "#ABCDEF"} {
		assert.NoError(t, validateColor(ok), ok)
	}
	for _, bad := range []string{"", "fff", "#ff", "#fffff", "#gggggg", "red"} {
		assert.Error(t, validateColor(bad), bad)
	}
}
