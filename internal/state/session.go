// Package state holds the file manager session: every piece of mutable UI
// state and the handlers that change it in response to events. A Session is
// owned by one goroutine; background work only talks back through Post.
package state

import (
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/kk-code-lab/vfm/internal/config"
	"github.com/kk-code-lab/vfm/internal/filter"
	"github.com/kk-code-lab/vfm/internal/fs"
	"github.com/kk-code-lab/vfm/internal/highlight"
	"github.com/kk-code-lab/vfm/internal/imaging"
	"github.com/kk-code-lab/vfm/internal/keymap"
	"github.com/kk-code-lab/vfm/internal/markers"
	"github.com/kk-code-lab/vfm/internal/preview"
)

// Services are the side-effecting collaborators of a session. Only Post is
// required.
type Services struct {
	// Post delivers an event to the loop. It is called from background
	// goroutines and may block.
	Post func(Event)
	// Spawn runs fn in the background.
	Spawn func(fn func())
	// List streams a directory in batches.
	List func(dir string, emit func(fs.Batch)) error
	// Preview loads the preview of path.
	Preview func(path string) (*preview.Preview, error)
	// Programs scans for executables.
	Programs func() []Program

	// Backend encodes images; nil disables image previews.
	Backend imaging.Backend
	// Submit hands a resize job to the image worker without blocking.
	Submit func(imaging.Job) bool

	// CopyText writes to the system clipboard.
	CopyText func(text string) error
	// OpenDefault opens path with the desktop's default application.
	OpenDefault func(path string) error

	Log logrus.FieldLogger
}

// Options configure a new session.
type Options struct {
	Dir     string
	Config  *config.Config
	Keys    *keymap.Map
	Markers *markers.Store
	Hidden  fs.HiddenRules
}

// ClipMode says what a paste does with the clipboard path.
type ClipMode int

const (
	ClipCopy ClipMode = iota
	ClipCut
)

// Clipboard is the in-app yank/cut slot.
type Clipboard struct {
	Path string
	Mode ClipMode
}

// ViewFlags are the display toggles of the settings prefix.
type ViewFlags struct {
	ShowMetadata    bool
	ShowPermissions bool
	ShowDates       bool
	ShowOwner       bool
	ListPermissions bool
	ListOwner       bool
}

// Session is the single source of truth for the UI.
type Session struct {
	svc     Services
	log     logrus.FieldLogger
	cfg     *config.Config
	keys    *keymap.Map
	markers *markers.Store
	hidden  fs.HiddenRules

	// Listing
	currentDir       string
	parent           []fs.Entry
	current          []fs.Entry
	visible          []int
	selected         int
	scroll           int
	query            filter.Query
	showHidden       bool
	listingEpoch     uint64
	currentDone      bool
	cursorMoved      bool
	pendingSelection string

	// Modes
	mode        Mode
	prefix      Prefix
	input       *Input
	markerList  *filter.List[markers.Marker]
	programList *filter.List[Program]
	programs    []Program

	// Preview
	previewID      uint64
	previewPending bool
	preview        *preview.Preview
	imageVersion   uint64
	image          *imaging.Handle
	resizeMode     imaging.ResizeMode

	clipboard *Clipboard
	view      ViewFlags
	status    string
	statusErr bool

	width, height int
}

// New builds a session rooted at opts.Dir. Nothing is listed until Start.
func New(opts Options, svc Services) *Session {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	keys := opts.Keys
	if keys == nil {
		keys = keymap.Default()
	}
	store := opts.Markers
	if store == nil {
		store = markers.Load("", svc.Log)
	}
	dir := opts.Dir
	if abs, err := filepath.Abs(dir); err == nil {
		dir = abs
	}

	s := &Session{
		svc:        withDefaults(svc, cfg),
		cfg:        cfg,
		keys:       keys,
		markers:    store,
		hidden:     opts.Hidden,
		currentDir: filepath.Clean(dir),
		showHidden: cfg.ShowHidden,
		resizeMode: imaging.ParseResizeMode(cfg.Image.Resize),
		view: ViewFlags{
			ShowMetadata:    cfg.MetadataBar.Enabled,
			ShowPermissions: cfg.MetadataBar.ShowPermissions,
			ShowDates:       cfg.MetadataBar.ShowDates,
			ShowOwner:       cfg.MetadataBar.ShowOwner,
		},
		width:  80,
		height: 24,
	}
	s.log = s.svc.Log
	return s
}

func withDefaults(svc Services, cfg *config.Config) Services {
	if svc.Log == nil {
		svc.Log = logrus.StandardLogger()
	}
	if svc.Spawn == nil {
		svc.Spawn = func(fn func()) { go fn() }
	}
	if svc.List == nil {
		svc.List = func(dir string, emit func(fs.Batch)) error {
			return fs.StreamDir(dir, fs.DefaultBatchSize, emit)
		}
	}
	if svc.Preview == nil {
		opts := preview.Options{
			CheckMismatch: cfg.CheckMismatch,
			DecodeImages:  svc.Backend != nil,
		}
		if cfg.Highlight.Enabled {
			opts.Highlighter = highlight.New(cfg.Highlight.Style)
		}
		svc.Preview = func(path string) (*preview.Preview, error) {
			return preview.Load(path, opts)
		}
	}
	if svc.Programs == nil {
		svc.Programs = func() []Program { return ScanPrograms(os.Getenv("PATH")) }
	}
	return svc
}

// Start issues the first listing and the background PATH scan.
func (s *Session) Start() Effect {
	s.refreshDirs()
	scan, post := s.svc.Programs, s.svc.Post
	s.svc.Spawn(func() {
		post(ProgramsEvent{Programs: scan()})
	})
	return redraw
}

// CurrentDir is the directory being browsed.
func (s *Session) CurrentDir() string {
	return s.currentDir
}

// Mode reports the active interaction mode.
func (s *Session) Mode() Mode {
	return s.mode
}

// Handle applies ev and reports what the loop should do next.
func (s *Session) Handle(ev Event) Effect {
	switch ev := ev.(type) {
	case KeyEvent:
		return s.handleKey(ev.Key)
	case ResizeEvent:
		s.width, s.height = ev.Width, ev.Height
		s.ensureVisible()
		return redraw
	case DirEntriesEvent:
		return s.mergeEntries(ev)
	case PreviewEvent:
		return s.applyPreview(ev)
	case ImageReadyEvent:
		if s.image != nil && s.image.Install(ev.Result) {
			return redraw
		}
		s.log.WithField("version", ev.Result.Version).Debug("dropping stale image result")
		return noEffect
	case RefreshEvent:
		return s.applyRefresh(ev)
	case ProgramsEvent:
		s.programs = ev.Programs
		if s.programList != nil {
			s.programList.SetItems(ev.Programs, "")
			return redraw
		}
		return noEffect
	case StatusEvent:
		if ev.Err != nil {
			s.setError(ev.Text, ev.Err)
		} else {
			s.setStatus(ev.Text)
		}
		return redraw
	default:
		return noEffect
	}
}

// SuspendFinished records the outcome of a foreground process and re-lists
// the directory it may have changed.
func (s *Session) SuspendFinished(action SuspendAction, err error) Effect {
	if err != nil {
		what := "shell failed"
		switch action.Kind {
		case SuspendOpenWith:
			what = "cannot run " + action.Program
		case SuspendJob:
			what = "suspend failed"
		}
		s.setError(what, err)
	}
	s.pendingSelection = s.selectedPath()
	s.refreshDirs()
	return redraw
}

func (s *Session) handleKey(k keymap.Key) Effect {
	eff := noEffect
	if s.status != "" {
		s.status, s.statusErr = "", false
		eff = redraw
	}
	switch s.mode {
	case ModeInput:
		return eff.merge(s.handleInput(k))
	case ModeMarkerList:
		return eff.merge(s.handleMarkerList(k))
	case ModeProgramList:
		return eff.merge(s.handleProgramList(k))
	default:
		return eff.merge(s.handleNormal(k))
	}
}

func (s *Session) setStatus(text string) {
	s.status, s.statusErr = text, false
}

func (s *Session) setError(what string, err error) {
	s.log.WithError(err).Warn(what)
	s.status, s.statusErr = what+": "+err.Error(), true
}
