package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bnema/keyhud/internal/cli/styles"
	"github.com/bnema/keyhud/internal/keymap"
)

// newTreeCmd prints the resolved keymap tree, mostly for checking what
// a config actually binds without opening the overlay.
func newTreeCmd(logLevel *string) *cobra.Command {
	var menuName string

	cmd := &cobra.Command{
		Use:   "tree [config]",
		Short: "Print the resolved keybinding tree",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, cfg, err := setup(cmd, args, *logLevel)
			if err != nil {
				return err
			}
			tree, err := cfg.BuildTree(menuName)
			if err != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), "keyhud:", err)
				return configErr(err)
			}

			theme := styles.NewTheme(cfg)
			var b strings.Builder
			b.WriteString(theme.Title.Render(tree.Root().Desc()) + "\n")
			printSubmenu(&b, theme, tree.Root(), "")
			fmt.Fprint(cmd.OutOrStdout(), b.String())
			return nil
		},
	}

	cmd.Flags().StringVarP(&menuName, "menu", "m", "", "named menu to print")
	return cmd
}

func printSubmenu(b *strings.Builder, theme *styles.Theme, sub *keymap.Submenu, indent string) {
	entries := sub.Entries()
	for i, entry := range entries {
		branch, childIndent := "├── ", indent+"│   "
		if i == len(entries)-1 {
			branch, childIndent = "└── ", indent+"    "
		}

		b.WriteString(indent + theme.Subtle.Render(branch))
		b.WriteString(theme.Key.Render(entry.Label()))

		switch node := entry.Node.(type) {
		case *keymap.Submenu:
			b.WriteString("  " + theme.Submenu.Render("+"+node.Desc()) + "\n")
			printSubmenu(b, theme, node, childIndent)
		case *keymap.Action:
			b.WriteString("  " + theme.Desc.Render(node.Desc()))
			b.WriteString("  " + theme.Subtle.Render(node.Cmd()))
			if node.KeepOpen() {
				b.WriteString(" " + theme.Subtle.Render("[keep open]"))
			}
			b.WriteString("\n")
		}
	}
}
