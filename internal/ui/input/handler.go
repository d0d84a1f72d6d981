// Package input reads terminal events and turns them into session events.
package input

import (
	"github.com/gdamore/tcell/v2"

	"github.com/kk-code-lab/vfm/internal/keymap"
	"github.com/kk-code-lab/vfm/internal/state"
)

// Translate converts a tcell event into a session event. Events the session
// has no use for, such as mouse input, report false.
func Translate(ev tcell.Event) (state.Event, bool) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return state.KeyEvent{Key: keymap.FromEvent(ev)}, true
	case *tcell.EventResize:
		w, h := ev.Size()
		return state.ResizeEvent{Width: w, Height: h}, true
	default:
		return nil, false
	}
}

// Reader polls a screen on its own goroutine and posts translated events.
// Polling blocks while the screen is suspended and ends once it is
// finalised.
type Reader struct {
	screen tcell.Screen
	post   func(state.Event)
	done   chan struct{}
}

// NewReader creates a reader; call Start to begin polling.
func NewReader(screen tcell.Screen, post func(state.Event)) *Reader {
	return &Reader{
		screen: screen,
		post:   post,
		done:   make(chan struct{}),
	}
}

// Start launches the poll goroutine.
func (r *Reader) Start() {
	go r.run()
}

func (r *Reader) run() {
	defer close(r.done)
	for {
		ev := r.screen.PollEvent()
		if ev == nil {
			return
		}
		if sev, ok := Translate(ev); ok {
			r.post(sev)
		}
	}
}

// Done is closed when polling has stopped.
func (r *Reader) Done() <-chan struct{} {
	return r.done
}
