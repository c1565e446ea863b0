package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/bnema/keyhud/internal/action"
	"github.com/bnema/keyhud/internal/cli/model"
	"github.com/bnema/keyhud/internal/cli/styles"
)

// newPickCmd walks the menu in the terminal instead of an overlay, for
// configs being written over SSH or outside a Wayland session.
func newPickCmd(logLevel *string) *cobra.Command {
	var (
		menuName  string
		printOnly bool
	)

	cmd := &cobra.Command{
		Use:   "pick [config]",
		Short: "Walk the menu in the terminal and run the chosen command",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cfg, err := setup(cmd, args, *logLevel)
			if err != nil {
				return err
			}
			tree, err := cfg.BuildTree(menuName)
			if err != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), "keyhud:", err)
				return configErr(err)
			}

			picker := model.NewPicker(tree.Root(), cfg.MatcherOptions(), styles.NewTheme(cfg))
			final, err := tea.NewProgram(picker).Run()
			if err != nil {
				return err
			}

			result, ok := final.(model.Picker)
			if !ok || result.Canceled() {
				return nil
			}
			act, boundKey := result.Picked()
			if act == nil {
				return nil
			}

			if printOnly {
				fmt.Fprintln(cmd.OutOrStdout(), act.Cmd())
				return nil
			}
			if err := action.NewRunner(ctx).Run(act.Cmd(), boundKey); err != nil {
				logger(ctx).Error().Err(err).Str("cmd", act.Cmd()).Msg("failed to spawn command")
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&menuName, "menu", "m", "", "named menu to walk")
	cmd.Flags().BoolVar(&printOnly, "print", false, "print the chosen command instead of running it")
	return cmd
}
