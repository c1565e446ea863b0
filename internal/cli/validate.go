package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/bnema/keyhud/internal/cli/styles"
)

// newValidateCmd checks a config file without opening the overlay:
// loading, schema validation, and tree construction for the default
// menu plus every named menu.
func newValidateCmd(logLevel *string) *cobra.Command {
	return &cobra.Command{
		Use:   "validate [config]",
		Short: "Validate a config file and its menus",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, cfg, err := setup(cmd, args, *logLevel)
			if err != nil {
				return err
			}

			theme := styles.NewTheme(cfg)

			names := []string{""}
			for name := range cfg.Menus {
				names = append(names, name)
			}
			sort.Strings(names)

			for _, name := range names {
				if name == "" && len(cfg.Menu) == 0 && len(cfg.Menus) > 0 {
					// Named-menus-only configs are fine without a default.
					continue
				}
				tree, err := cfg.BuildTree(name)
				if err != nil {
					fmt.Fprintln(cmd.ErrOrStderr(), theme.ErrStyle.Render("✗"), err)
					return configErr(err)
				}
				label := name
				if label == "" {
					label = "default"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s menu %q: %d entries\n",
					theme.OKStyle.Render("✓"), label, len(tree.Root().Entries()))
			}
			return nil
		},
	}
}
