package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/bnema/keyhud/internal/action"
	"github.com/bnema/keyhud/internal/config"
	"github.com/bnema/keyhud/internal/keymap"
	"github.com/bnema/keyhud/internal/ui"
)

// runOverlay is the default command: build the tree, optionally walk an
// initial key sequence, and drive one overlay session.
func runOverlay(ctx context.Context, cfg *config.Config, menuName, keys string) error {
	tree, err := cfg.BuildTree(menuName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "keyhud: %v\n", err)
		return configErr(err)
	}

	start := tree.Root()
	if keys != "" {
		node, err := tree.At(keys)
		if err != nil {
			fmt.Fprintf(os.Stderr, "keyhud: --keys: %v\n", err)
			return configErr(err)
		}
		switch node := node.(type) {
		case *keymap.Action:
			// The sequence already resolves to a command; run it without
			// ever mapping a surface. Keep-open makes no sense here.
			if node.KeepOpen() {
				err := fmt.Errorf("--keys %q reaches a keep-open action; it needs the overlay", keys)
				fmt.Fprintf(os.Stderr, "keyhud: %v\n", err)
				return configErr(err)
			}
			return runDirect(ctx, node, keys)
		case *keymap.Submenu:
			start = node
		}
	}

	ctx, cancel := signalContext(ctx)
	defer cancel()

	reason, err := ui.Run(ctx, ui.Options{
		Config:  cfg,
		Tree:    tree,
		Start:   start,
		Timeout: cfg.Timeout,
	})
	if err != nil {
		// Both a refused grab and a lost surface mean the overlay could
		// not do its job; neither is a config problem.
		return grabErr(err)
	}

	logger(ctx).Debug().Int("reason", int(reason)).Msg("session closed")
	return nil
}

// runDirect dispatches a --keys resolved action without a session. A
// spawn failure is reported but the exit stays graceful, matching the
// overlay's behavior for the same action.
func runDirect(ctx context.Context, act *keymap.Action, keys string) error {
	tokens := strings.Fields(keys)
	boundKey := tokens[len(tokens)-1]
	if err := action.NewRunner(ctx).Run(act.Cmd(), boundKey); err != nil {
		logger(ctx).Error().Err(err).Str("cmd", act.Cmd()).Msg("failed to spawn command")
	}
	return nil
}
