//go:build windows

package app

import "os"

func continueSignals() []os.Signal {
	return nil
}

func (app *Application) suspendToShell() {
	app.log.Debug("job control is not available on windows")
}

func (app *Application) resumeAfterStop() bool {
	return false
}
