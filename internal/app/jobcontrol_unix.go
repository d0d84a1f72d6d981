//go:build !windows

package app

import (
	"os"
	"syscall"

	"github.com/kk-code-lab/vfm/internal/state"
)

// continueSignals are delivered when the shell brings a stopped vfm back
// with fg.
func continueSignals() []os.Signal {
	return []os.Signal{syscall.SIGCONT}
}

func (app *Application) suspendToShell() {
	if err := app.screen.Suspend(); err != nil {
		app.log.WithError(err).Warn("suspend screen")
		return
	}
	// Stop only this process; signalling the whole group would also stop a
	// wrapper shell function that launched vfm and break `fg`.
	if err := syscall.Kill(syscall.Getpid(), syscall.SIGTSTP); err != nil {
		app.log.WithError(err).Warn("stop process")
	}
}

// resumeAfterStop reclaims the terminal after SIGCONT and pushes the current
// size into the session, which may have changed while stopped.
func (app *Application) resumeAfterStop() bool {
	if err := app.screen.Resume(); err != nil {
		app.log.WithError(err).Warn("resume after stop")
		return false
	}
	app.screen.Sync()
	if w, h := app.screen.Size(); w > 0 && h > 0 {
		app.session.Handle(state.ResizeEvent{Width: w, Height: h})
	}
	return true
}
