package app

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strings"

	"github.com/kk-code-lab/vfm/internal/state"
)

var commandBuilder = exec.Command

var errNoOpener = errors.New("no default opener available")

// launcher builds the commands for shells, programs and the desktop opener.
type launcher struct {
	goos     string
	getenv   func(string) string
	lookPath func(string) (string, error)
}

func newLauncher() launcher {
	return launcher{goos: runtime.GOOS, getenv: os.Getenv, lookPath: exec.LookPath}
}

// shellArgs picks the user's shell, falling back to the platform default.
func (l launcher) shellArgs() []string {
	if strings.EqualFold(l.goos, "windows") {
		if args := splitCommand(l.getenv("COMSPEC")); len(args) > 0 {
			return args
		}
		return []string{"cmd.exe"}
	}
	if args := splitCommand(l.getenv("SHELL")); len(args) > 0 {
		return args
	}
	return []string{"/bin/sh"}
}

// foreground returns the command for a suspend action, with its working
// directory set but stdio left for runForeground.
func (l launcher) foreground(action state.SuspendAction) (*exec.Cmd, error) {
	var args []string
	switch action.Kind {
	case state.SuspendShell:
		args = l.shellArgs()
	case state.SuspendOpenWith:
		args = splitCommand(action.Program)
		if len(args) == 0 {
			return nil, fmt.Errorf("empty program for %s", action.Path)
		}
		args = append(args, action.Path)
	default:
		return nil, fmt.Errorf("unsupported foreground action %d", action.Kind)
	}
	cmd := commandBuilder(args[0], args[1:]...)
	cmd.Dir = action.Dir
	return cmd, nil
}

// openerArgs returns the desktop "open this file" command for path.
func (l launcher) openerArgs(path string) ([]string, error) {
	switch {
	case strings.EqualFold(l.goos, "darwin"):
		return []string{"open", path}, nil
	case strings.EqualFold(l.goos, "windows"):
		return []string{"cmd", "/C", "start", "", path}, nil
	}
	for _, candidate := range []string{"xdg-open", "gio"} {
		resolved, err := l.lookPath(candidate)
		if err != nil || resolved == "" {
			continue
		}
		if candidate == "gio" {
			return []string{resolved, "open", path}, nil
		}
		return []string{resolved, path}, nil
	}
	return nil, errNoOpener
}

// openDefault starts the opener detached from the terminal and does not wait
// for the application it launches.
func (l launcher) openDefault(path string) error {
	args, err := l.openerArgs(path)
	if err != nil {
		return err
	}
	cmd := commandBuilder(args[0], args[1:]...)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start %s: %w", args[0], err)
	}
	go func() {
		_ = cmd.Wait()
	}()
	return nil
}

// runForeground suspends the screen, runs cmd on the controlling terminal and
// always tries to restore the screen afterwards.
func (app *Application) runForeground(cmd *exec.Cmd) (err error) {
	var tty *os.File
	if runtime.GOOS != "windows" {
		if f, openErr := os.OpenFile("/dev/tty", os.O_RDWR, 0); openErr == nil {
			tty = f
			defer func() {
				_ = tty.Close()
			}()
		}
	}

	if err := app.screen.Suspend(); err != nil {
		return fmt.Errorf("failed to suspend screen: %w", err)
	}
	defer func() {
		if resumeErr := app.screen.Resume(); resumeErr != nil && err == nil {
			err = fmt.Errorf("failed to resume screen: %w", resumeErr)
		}
		if flushErr := flushConsoleInput(); flushErr != nil {
			app.log.WithError(flushErr).Debug("console input not flushed")
		}
		app.screen.Sync()
	}()

	if tty != nil {
		cmd.Stdin, cmd.Stdout, cmd.Stderr = tty, tty, tty
	} else {
		cmd.Stdin, cmd.Stdout, cmd.Stderr = os.Stdin, os.Stdout, os.Stderr
	}
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s: %w", cmd.Path, err)
	}
	return nil
}
