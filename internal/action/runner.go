// Package action spawns bound commands. Commands run detached from the
// overlay process: the session never waits for them and their lifetime
// is not tied to ours.
package action

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"syscall"

	"github.com/rs/zerolog"
)

// keyEnvVar exposes the binding that triggered the command to the
// spawned process.
const keyEnvVar = "KEYHUD_KEY"

// Runner executes action commands through the shell.
type Runner struct {
	shell string
	log   *zerolog.Logger
}

// NewRunner creates a runner using $SHELL-independent /bin/sh, matching
// how compositors interpret bind commands.
func NewRunner(ctx context.Context) *Runner {
	return &Runner{shell: "/bin/sh", log: zerolog.Ctx(ctx)}
}

// Run spawns the command fire-and-forget: stdio detached to the null
// device and a new session so the process survives overlay teardown.
// The returned error covers spawn failure only; the command's own exit
// status is never observed.
func (r *Runner) Run(cmd, boundKey string) error {
	if cmd == "" {
		return fmt.Errorf("empty command")
	}

	proc := exec.Command(r.shell, "-c", cmd)
	proc.Stdin = nil
	proc.Stdout = nil
	proc.Stderr = nil
	proc.Env = append(os.Environ(), keyEnvVar+"="+boundKey)
	proc.SysProcAttr = &syscall.SysProcAttr{Setsid: true}

	if err := proc.Start(); err != nil {
		return fmt.Errorf("spawn %q: %w", cmd, err)
	}

	r.log.Debug().Int("pid", proc.Process.Pid).Str("cmd", cmd).Msg("command spawned")

	// Reap the child in the background so it never lingers as a zombie
	// while the overlay stays open with keep-open actions.
	go func() { _ = proc.Wait() }()

	return nil
}
