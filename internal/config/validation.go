package config

import (
	"fmt"
	"strings"

	"github.com/bnema/keyhud/internal/keymap"
)

var validAnchors = map[string]bool{
	"center": true, "top": true, "bottom": true, "left": true, "right": true,
	"top-left": true, "top-right": true, "bottom-left": true, "bottom-right": true,
}

// validate checks field-level constraints. Tree-level problems
// (duplicate bindings, empty submenus) surface from BuildTree.
func validate(c *Config) error {
	for field, value := range map[string]string{
		"background": c.Background,
		"color":      c.Color,
		"border":     c.Border,
	} {
		if err := validateColor(value); err != nil {
			return fmt.Errorf("%s: %w", field, err)
		}
	}

	if !validAnchors[c.Anchor] {
		return fmt.Errorf("anchor: unknown value %q", c.Anchor)
	}

	if strings.TrimSpace(c.Font) == "" {
		return fmt.Errorf("font must not be empty")
	}

	for _, check := range []struct {
		name  string
		value float64
	}{
		{"border_width", c.BorderWidth},
		{"corner_radius", c.CornerRadius},
		{"padding", c.Padding},
		{"column_padding", c.ColumnPadding},
		{"max_entry_width", c.MaxEntryWidth},
	} {
		if check.value < 0 {
			return fmt.Errorf("%s must not be negative", check.name)
		}
	}
	if c.Columns < 0 || c.RowsPerColumn < 0 {
		return fmt.Errorf("columns and rows_per_column must not be negative")
	}
	if c.Timeout < 0 {
		return fmt.Errorf("timeout must not be negative")
	}

	if _, err := keymap.ParseKey(c.CancelKey); err != nil {
		return fmt.Errorf("cancel_key: %w", err)
	}
	if _, err := keymap.ParseKey(c.BackKey); err != nil {
		return fmt.Errorf("back_key: %w", err)
	}

	switch c.OnUnmatched {
	case "ignore", "cancel":
	default:
		return fmt.Errorf("on_unmatched: must be \"ignore\" or \"cancel\", got %q", c.OnUnmatched)
	}

	return nil
}

// validateColor accepts #rgb, #rrggbb and #rrggbbaa.
func validateColor(s string) error {
	if !strings.HasPrefix(s, "#") {
		return fmt.Errorf("color %q must start with '#'", s)
	}
	hex := s[1:]
	switch len(hex) {
	case 3, 6, 8:
	default:
		return fmt.Errorf("color %q must be #rgb, #rrggbb or #rrggbbaa", s)
	}
	for _, c := range hex {
		if !strings.ContainsRune("0123456789abcdefABCDEF", c) {
			return fmt.Errorf("color %q has non-hex digit %q", s, c)
		}
	}
	return nil
}
