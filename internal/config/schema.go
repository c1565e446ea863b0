package config

import (
	"fmt"
	"time"

	"github.com/bnema/keyhud/internal/keymap"
	"github.com/bnema/keyhud/internal/menu"
	"github.com/bnema/keyhud/internal/render"
)

// Config is the full keyhud configuration.
type Config struct {
	// Colors, hex RGB or RGBA ("#282828" / "#282828ff").
	Background string `mapstructure:"background"`
	Color      string `mapstructure:"color"`
	Border     string `mapstructure:"border"`

	// Placement on the output.
	Anchor string       `mapstructure:"anchor"`
	Margin MarginConfig `mapstructure:"margin"`

	// Text and geometry.
	Font          string  `mapstructure:"font"`
	Separator     string  `mapstructure:"separator"`
	BorderWidth   float64 `mapstructure:"border_width"`
	CornerRadius  float64 `mapstructure:"corner_radius"`
	Padding       float64 `mapstructure:"padding"`
	ColumnPadding float64 `mapstructure:"column_padding"`
	Columns       int     `mapstructure:"columns"`
	RowsPerColumn int     `mapstructure:"rows_per_column"`
	MaxEntryWidth float64 `mapstructure:"max_entry_width"`

	// Matching behavior.
	CancelKey   string        `mapstructure:"cancel_key"`
	BackKey     string        `mapstructure:"back_key"`
	OnUnmatched string        `mapstructure:"on_unmatched"` // ignore|cancel
	Timeout     time.Duration `mapstructure:"timeout"`      // 0 disables

	// InhibitShortcuts requests that compositor-level shortcuts are
	// inhibited while the overlay holds the keyboard.
	InhibitShortcuts bool `mapstructure:"inhibit_compositor_shortcuts"`

	Logging LoggingConfig `mapstructure:"logging"`

	// Menu is the default root; Menus holds named roots selectable
	// with --menu so one config can host several overlays.
	Menu  []MenuEntry            `mapstructure:"menu"`
	Menus map[string][]MenuEntry `mapstructure:"menus"`
}

// MarginConfig is the per-edge layer-surface margin in pixels.
type MarginConfig struct {
	Top    int `mapstructure:"top"`
	Right  int `mapstructure:"right"`
	Bottom int `mapstructure:"bottom"`
	Left   int `mapstructure:"left"`
}

// LoggingConfig configures the zerolog output.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// MenuEntry is one node of the configured tree: either a cmd leaf or a
// nested submenu. Key accepts a single string or a list of alias keys.
type MenuEntry struct {
	Key      any         `mapstructure:"key"`
	Desc     string      `mapstructure:"desc"`
	Cmd      string      `mapstructure:"cmd"`
	KeepOpen bool        `mapstructure:"keep_open"`
	Submenu  []MenuEntry `mapstructure:"submenu"`
}

// Keys normalizes the Key field into a string slice.
func (e MenuEntry) Keys() ([]string, error) {
	switch v := e.Key.(type) {
	case nil:
		return nil, nil
	case string:
		return []string{v}, nil
	case []string:
		return v, nil
	case []any:
		keys := make([]string, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("key list item %v is not a string", item)
			}
			keys = append(keys, s)
		}
		return keys, nil
	default:
		return nil, fmt.Errorf("key must be a string or list of strings, got %T", v)
	}
}

// Root returns the entry specs for the requested named menu, or the
// default menu when name is empty.
func (c *Config) Root(name string) ([]keymap.EntrySpec, error) {
	entries := c.Menu
	if name != "" {
		named, ok := c.Menus[name]
		if !ok {
			return nil, fmt.Errorf("no menu named %q in config", name)
		}
		entries = named
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("config defines no menu entries")
	}
	return toSpecs(entries)
}

// BuildTree constructs the validated keymap tree for the named menu.
func (c *Config) BuildTree(name string) (*keymap.Tree, error) {
	specs, err := c.Root(name)
	if err != nil {
		return nil, err
	}
	title := name
	if title == "" {
		title = appName
	}
	return keymap.Build(title, specs)
}

func toSpecs(entries []MenuEntry) ([]keymap.EntrySpec, error) {
	specs := make([]keymap.EntrySpec, 0, len(entries))
	for _, e := range entries {
		keys, err := e.Keys()
		if err != nil {
			return nil, err
		}
		var children []keymap.EntrySpec
		if len(e.Submenu) > 0 {
			children, err = toSpecs(e.Submenu)
			if err != nil {
				return nil, err
			}
		}
		specs = append(specs, keymap.EntrySpec{
			Keys:     keys,
			Desc:     e.Desc,
			Cmd:      e.Cmd,
			KeepOpen: e.KeepOpen,
			Submenu:  children,
		})
	}
	return specs, nil
}

// Style maps the config onto the layout coordinator's style.
func (c *Config) Style() render.Style {
	return render.Style{
		Separator:     c.Separator,
		Padding:       c.Padding,
		ColumnPadding: c.ColumnPadding,
		BorderWidth:   c.BorderWidth,
		Columns:       c.Columns,
		RowsPerColumn: c.RowsPerColumn,
		MaxEntryWidth: c.MaxEntryWidth,
	}
}

// MatcherOptions maps the config onto matcher options. Keys are assumed
// validated; parse failures fall back to the defaults.
func (c *Config) MatcherOptions() menu.Options {
	opts := menu.DefaultOptions()
	if key, err := keymap.ParseKey(c.CancelKey); err == nil {
		opts.CancelKey = key
	}
	if key, err := keymap.ParseKey(c.BackKey); err == nil {
		opts.BackKey = key
	}
	if c.OnUnmatched == "cancel" {
		opts.Unmatched = menu.UnmatchedCancel
	}
	return opts
}
