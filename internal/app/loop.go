package app

import (
	"os"
	"os/signal"

	"github.com/kk-code-lab/vfm/internal/state"
)

// Run starts listing and input and processes events until the session asks
// to exit or the screen goes away.
func (app *Application) Run() {
	app.reader.Start()
	app.session.Start()
	app.render()

	var sigContCh chan os.Signal
	if sigs := continueSignals(); len(sigs) > 0 {
		sigContCh = make(chan os.Signal, 1)
		signal.Notify(sigContCh, sigs...)
		defer signal.Stop(sigContCh)
	}

	for !app.shouldQuit {
		if app.renderPending {
			app.render()
		}

		select {
		case ev := <-app.events:
			app.apply(app.session.Handle(ev))
		case <-sigContCh:
			if app.resumeAfterStop() {
				app.apply(app.session.SuspendFinished(state.SuspendAction{
					Kind: state.SuspendJob,
					Dir:  app.session.CurrentDir(),
				}, nil))
			}
		case <-app.reader.Done():
			app.log.Warn("terminal input closed")
			return
		}
	}
}

func (app *Application) render() {
	app.renderer.Render(app.session.Snapshot())
	app.renderPending = false
}

// apply carries out an effect returned by the session.
func (app *Application) apply(eff state.Effect) {
	if eff.RequestPreview {
		app.session.RequestPreview()
	}
	if eff.Redraw {
		app.renderPending = true
	}
	if eff.Suspend != nil {
		app.apply(app.runSuspend(*eff.Suspend))
	}
	if eff.Exit {
		app.shouldQuit = true
	}
}

// runSuspend hands the terminal to a foreground process. Job control stops
// the process instead; the session hears about it once SIGCONT arrives.
func (app *Application) runSuspend(action state.SuspendAction) state.Effect {
	if action.Kind == state.SuspendJob {
		app.suspendToShell()
		return state.Effect{}
	}

	cmd, err := app.launcher.foreground(action)
	if err == nil {
		err = app.runForeground(cmd)
	}
	if err != nil {
		app.log.WithError(err).WithField("program", action.Program).Warn("foreground process failed")
	}
	app.renderPending = true
	return app.session.SuspendFinished(action, err)
}
