// Package app wires the session to a tcell terminal: it owns the screen, the
// event channel and the main loop, and runs the foreground processes the
// session asks for.
package app

import (
	"fmt"
	"os"
	"runtime"
	"sync"

	"github.com/atotto/clipboard"
	"github.com/gdamore/tcell/v2"
	"github.com/sirupsen/logrus"

	"github.com/kk-code-lab/vfm/internal/config"
	"github.com/kk-code-lab/vfm/internal/fs"
	"github.com/kk-code-lab/vfm/internal/imaging"
	"github.com/kk-code-lab/vfm/internal/keymap"
	"github.com/kk-code-lab/vfm/internal/markers"
	"github.com/kk-code-lab/vfm/internal/state"
	inputui "github.com/kk-code-lab/vfm/internal/ui/input"
	renderui "github.com/kk-code-lab/vfm/internal/ui/render"
)

const eventQueueSize = 64

// Options configure NewApplication.
type Options struct {
	Dir     string
	Config  *config.Config
	Keys    *keymap.Map
	Markers *markers.Store
	Hidden  fs.HiddenRules
	Log     logrus.FieldLogger

	// Screen replaces the terminal screen, for tests.
	Screen tcell.Screen
}

// Application represents the running app.
type Application struct {
	screen   tcell.Screen
	session  *state.Session
	renderer *renderui.Renderer
	reader   *inputui.Reader
	worker   *imaging.Worker
	launcher launcher
	events   chan state.Event
	closing  chan struct{}
	closed   sync.Once
	log      logrus.FieldLogger

	shouldQuit    bool
	renderPending bool
}

// NewApplication initialises the screen and builds the session. Call Run to
// start it and Close when done.
func NewApplication(opts Options) (*Application, error) {
	screen := opts.Screen
	if screen == nil {
		var err error
		if screen, err = tcell.NewScreen(); err != nil {
			return nil, fmt.Errorf("create screen: %w", err)
		}
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("init screen: %w", err)
	}

	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	log := opts.Log
	if log == nil {
		log = logrus.StandardLogger()
	}

	app := &Application{
		screen:   screen,
		renderer: renderui.NewRenderer(screen, cfg),
		launcher: newLauncher(),
		events:   make(chan state.Event, eventQueueSize),
		closing:  make(chan struct{}),
		log:      log,
	}
	app.worker = imaging.NewWorker(imaging.DefaultQueueSize, func(r imaging.Result) {
		app.post(state.ImageReadyEvent{Result: r})
	})
	app.reader = inputui.NewReader(screen, app.post)

	var backend imaging.Backend
	if opts.Screen == nil {
		backend = imaging.Pick(cfg.Image.Backend, screen.Colors(), os.Stdout)
	} else {
		backend = imaging.Pick(cfg.Image.Backend, screen.Colors(), nil)
	}
	log.WithField("backend", backendName(backend)).Debug("image previews")

	app.session = state.New(state.Options{
		Dir:     opts.Dir,
		Config:  cfg,
		Keys:    opts.Keys,
		Markers: opts.Markers,
		Hidden:  opts.Hidden,
	}, state.Services{
		Post:    app.post,
		Backend: backend,
		Submit:  app.worker.Submit,
		CopyText: func(text string) error {
			return clipboard.WriteAll(normalizeClipboardPath(text, runtime.GOOS))
		},
		OpenDefault: app.launcher.openDefault,
		Log:         log,
	})

	w, h := screen.Size()
	app.session.Handle(state.ResizeEvent{Width: w, Height: h})
	return app, nil
}

func backendName(b imaging.Backend) string {
	if b == nil {
		return "none"
	}
	return b.Name()
}

// post queues an event for the loop. Producers block while the queue is full
// so events keep their order; none of them run on the loop goroutine. Once
// the application is closing, posts are dropped.
func (app *Application) post(ev state.Event) {
	select {
	case app.events <- ev:
	case <-app.closing:
	}
}

// Close stops the image worker and restores the terminal.
func (app *Application) Close() error {
	app.closed.Do(func() { close(app.closing) })
	app.screen.Fini()
	app.worker.Close()
	return nil
}

// CurrentDir returns the directory to report on exit.
func (app *Application) CurrentDir() string {
	return app.session.CurrentDir()
}
