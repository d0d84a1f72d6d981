package state

import (
	"github.com/kk-code-lab/vfm/internal/fs"
	"github.com/kk-code-lab/vfm/internal/imaging"
	"github.com/kk-code-lab/vfm/internal/keymap"
	"github.com/kk-code-lab/vfm/internal/preview"
)

// Event is anything the session loop consumes. Background work reports back
// exclusively through events.
type Event interface{}

// ===== TERMINAL EVENTS =====

type KeyEvent struct {
	Key keymap.Key
}

type ResizeEvent struct {
	Width  int
	Height int
}

// ===== BACKGROUND RESULTS =====

// ListTarget says which pane a listing batch belongs to.
type ListTarget int

const (
	TargetCurrent ListTarget = iota
	TargetParent
)

// DirEntriesEvent carries one batch of a directory listing. Batches whose
// Epoch is not the session's current listing epoch are dropped.
type DirEntriesEvent struct {
	Epoch   uint64
	Target  ListTarget
	Entries []fs.Entry
	Done    bool
}

// PreviewEvent is the outcome of the preview request tagged ID.
type PreviewEvent struct {
	ID      uint64
	Preview *preview.Preview
	Err     error
}

// ImageReadyEvent returns an encoded image protocol from the worker.
type ImageReadyEvent struct {
	Result imaging.Result
}

// RefreshEvent follows a filesystem mutation. Select names the path to
// highlight once the listing completes.
type RefreshEvent struct {
	Op     string
	Select string
	Err    error
}

// ProgramsEvent delivers the PATH scan.
type ProgramsEvent struct {
	Programs []Program
}

// StatusEvent reports the outcome of fire-and-forget work.
type StatusEvent struct {
	Text string
	Err  error
}

// ===== EFFECTS =====

// SuspendKind names what runs while the terminal is handed over.
type SuspendKind int

const (
	SuspendShell SuspendKind = iota
	SuspendOpenWith
	// SuspendJob stops the process for shell job control until SIGCONT.
	SuspendJob
)

// SuspendAction asks the loop to release the terminal and run a foreground
// process.
type SuspendAction struct {
	Kind    SuspendKind
	Program string
	Path    string
	Dir     string
}

// Effect tells the loop what to do after an event was handled.
type Effect struct {
	Redraw         bool
	RequestPreview bool
	Exit           bool
	Suspend        *SuspendAction
}

var (
	noEffect = Effect{}
	redraw   = Effect{Redraw: true}
)

func (e Effect) merge(o Effect) Effect {
	e.Redraw = e.Redraw || o.Redraw
	e.RequestPreview = e.RequestPreview || o.RequestPreview
	e.Exit = e.Exit || o.Exit
	if o.Suspend != nil {
		e.Suspend = o.Suspend
	}
	return e
}
