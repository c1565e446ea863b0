package config

import "github.com/spf13/viper"

// paddingUnset marks padding values to be derived after unmarshal:
// padding defaults to the corner radius, column padding to the padding.
const paddingUnset = -1

// setDefaults registers every default before the config file is read,
// so a minimal file only has to declare its menu.
func setDefaults(v *viper.Viper) {
	// Gruvbox-ish palette, same defaults the original tool shipped.
	v.SetDefault("background", "#282828")
	v.SetDefault("color", "#fbf1c7")
	v.SetDefault("border", "#8ec07c")

	v.SetDefault("anchor", "center")
	v.SetDefault("margin.top", 0)
	v.SetDefault("margin.right", 0)
	v.SetDefault("margin.bottom", 0)
	v.SetDefault("margin.left", 0)

	v.SetDefault("font", "monospace 10")
	v.SetDefault("separator", " ➜ ")
	v.SetDefault("border_width", 2.0)
	v.SetDefault("corner_radius", 10.0)
	v.SetDefault("padding", paddingUnset)
	v.SetDefault("column_padding", paddingUnset)
	v.SetDefault("columns", 0)
	v.SetDefault("rows_per_column", 0)
	v.SetDefault("max_entry_width", 0)

	v.SetDefault("cancel_key", "escape")
	v.SetDefault("back_key", "backspace")
	v.SetDefault("on_unmatched", "ignore")
	v.SetDefault("timeout", 0)

	v.SetDefault("inhibit_compositor_shortcuts", false)

	v.SetDefault("logging.level", "warn")
	v.SetDefault("logging.format", "console")
}

// normalize resolves derived defaults after unmarshal.
func normalize(c *Config) {
	if c.Padding == paddingUnset {
		c.Padding = c.CornerRadius
	}
	if c.ColumnPadding == paddingUnset {
		c.ColumnPadding = c.Padding
	}
}

// defaultConfigYAML is written to the config directory on first run so
// the user has something to edit.
const defaultConfigYAML = `# keyhud configuration
# Invoke with: keyhud            (uses this file)
#              keyhud <name>     (uses <name>.yaml in this directory)

# background: "#282828"
# color: "#fbf1c7"
# border: "#8ec07c"
# font: "monospace 10"
# anchor: center          # center|top|bottom|left|right|top-left|...
# timeout: 0              # e.g. 10s; 0 keeps the overlay up until a key
# on_unmatched: ignore    # or: cancel

menu:
  - key: t
    desc: Terminal
    cmd: foot
  - key: v
    desc: Volume
    submenu:
      - key: [u, plus]
        desc: Raise
        cmd: wpctl set-volume @DEFAULT_SINK@ 5%+
        keep_open: true
      - key: [d, minus]
        desc: Lower
        cmd: wpctl set-volume @DEFAULT_SINK@ 5%-
        keep_open: true
      - key: m
        desc: Mute toggle
        cmd: wpctl set-mute @DEFAULT_SINK@ toggle
`
