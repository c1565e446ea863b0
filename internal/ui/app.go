// Package ui boots the GTK application and bridges it to the overlay
// session: GTK owns the main thread, the session runs in a goroutine,
// and the application quits when the session closes.
package ui

import (
	"context"
	"time"

	"github.com/diamondburned/gotk4/pkg/gio/v2"
	"github.com/diamondburned/gotk4/pkg/glib/v2"
	"github.com/diamondburned/gotk4/pkg/gtk/v4"

	"github.com/bnema/keyhud/internal/action"
	"github.com/bnema/keyhud/internal/config"
	"github.com/bnema/keyhud/internal/keymap"
	"github.com/bnema/keyhud/internal/logging"
	"github.com/bnema/keyhud/internal/session"
	"github.com/bnema/keyhud/internal/ui/surface"
)

const appID = "com.github.bnema.keyhud"

// Options collect everything one overlay run needs.
type Options struct {
	Config  *config.Config
	Tree    *keymap.Tree
	Start   *keymap.Submenu // effective root after --keys navigation
	Timeout time.Duration
}

// Run drives one overlay session to completion and returns how it
// ended. Must be called from the locked main goroutine.
func Run(ctx context.Context, opts Options) (session.CloseReason, error) {
	log := logging.FromContext(ctx)

	var (
		reason session.CloseReason
		runErr error
	)

	app := gtk.NewApplication(appID, gio.ApplicationNonUnique)
	app.ConnectActivate(func() {
		layer, err := surface.New(app, opts.Config)
		if err != nil {
			log.Error().Err(err).Msg("failed to create layer surface")
			runErr = err
			reason = session.ReasonSurfaceLost
			app.Quit()
			return
		}

		sess := session.New(ctx, session.Options{
			Tree:     opts.Tree,
			Start:    opts.Start,
			Matcher:  opts.Config.MatcherOptions(),
			Style:    opts.Config.Style(),
			Timeout:  opts.Timeout,
			Surface:  layer,
			Measurer: layer.Measurer(),
			Runner:   action.NewRunner(ctx),
		})

		go func() {
			reason, runErr = sess.Run(ctx)
			glib.IdleAdd(func() { app.Quit() })
		}()
	})

	// GTK must not see our CLI arguments; cobra already consumed them.
	if code := app.Run([]string{appID}); code != 0 {
		log.Warn().Int("code", code).Msg("gtk application exited non-zero")
	}

	return reason, runErr
}
