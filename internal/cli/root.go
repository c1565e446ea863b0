// Package cli provides the command-line interface for keyhud.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/sys/unix"

	"github.com/bnema/keyhud/internal/config"
	"github.com/bnema/keyhud/internal/logging"
)

// Exit codes. Graceful closes (cancel, timeout, dispatched action) are
// always 0; configuration and grab failures get distinct codes so
// compositor bindings can tell them apart.
const (
	ExitOK      = 0
	ExitFailure = 1
	ExitConfig  = 2
	ExitGrab    = 3
)

// BuildInfo is set by main from ldflags.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

type codedError struct {
	code int
	err  error
}

func (e *codedError) Error() string { return e.err.Error() }
func (e *codedError) Unwrap() error { return e.err }

func configErr(err error) error { return &codedError{code: ExitConfig, err: err} }
func grabErr(err error) error   { return &codedError{code: ExitGrab, err: err} }

// Execute runs the CLI and returns the process exit code.
func Execute(info BuildInfo) int {
	root := newRootCmd(info)
	if err := root.Execute(); err != nil {
		var coded *codedError
		if errors.As(err, &coded) {
			return coded.code
		}
		return ExitFailure
	}
	return ExitOK
}

func newRootCmd(info BuildInfo) *cobra.Command {
	var (
		menuName string
		keys     string
		timeout  time.Duration
		logLevel string
	)

	rootCmd := &cobra.Command{
		Use:   "keyhud [config]",
		Short: "Keybinding cheat-sheet overlay for wlroots compositors",
		Long: `keyhud shows a transient overlay with the currently reachable key
bindings, grabs the keyboard, and runs the command bound to the keys you
press. Bind it to a compositor shortcut and give it a config name:

    bindsym $mod+slash exec keyhud
    bindsym Print exec keyhud screenshot   # uses screenshot.yaml`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cfg, err := setup(cmd, args, logLevel)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("timeout") {
				cfg.Timeout = timeout
			}
			return runOverlay(ctx, cfg, menuName, keys)
		},
	}

	rootCmd.Flags().StringVarP(&menuName, "menu", "m", "", "named menu to use as the root")
	rootCmd.Flags().StringVarP(&keys, "keys", "k", "", "initial key sequence, e.g. \"p s\"")
	rootCmd.Flags().DurationVarP(&timeout, "timeout", "t", 0, "idle timeout (overrides config)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: trace|debug|info|warn|error")

	rootCmd.AddCommand(
		newTreeCmd(&logLevel),
		newPickCmd(&logLevel),
		newValidateCmd(&logLevel),
		newVersionCmd(info),
	)

	return rootCmd
}

// setup loads the configuration and prepares the logging context. All
// failures here are ConfigErrors.
func setup(cmd *cobra.Command, args []string, logLevel string) (context.Context, *config.Config, error) {
	name := ""
	if len(args) > 0 {
		name = args[0]
	}

	cfg, err := config.Load(name)
	if err != nil {
		fmt.Fprintf(os.Stderr, "keyhud: %v\n", err)
		return nil, nil, configErr(err)
	}

	level := cfg.Logging.Level
	if logLevel != "" {
		level = logLevel
	}
	logger := logging.NewFromValues(level, cfg.Logging.Format)
	ctx := logging.WithContext(cmd.Context(), logger)

	return ctx, cfg, nil
}

// signalContext cancels the context on SIGINT/SIGTERM so an external
// termination releases the grab through the normal teardown path.
func signalContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(ctx, unix.SIGINT, unix.SIGTERM)
}

func newVersionCmd(info BuildInfo) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Printf("keyhud %s\n", info.Version)
			fmt.Printf("commit: %s\n", info.Commit)
			fmt.Printf("built: %s\n", info.Date)
		},
	}
}

// logger is a small helper for commands that want the context logger.
func logger(ctx context.Context) *zerolog.Logger {
	return logging.FromContext(ctx)
}
