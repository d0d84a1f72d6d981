package state

import (
	"github.com/kk-code-lab/vfm/internal/imaging"
)

// ===== PREVIEW =====

// clearPreview drops the shown preview and retires the outstanding request
// id, so a load still in flight for the old selection is dropped on arrival.
func (s *Session) clearPreview() {
	s.previewID++
	s.preview = nil
	s.previewPending = false
	s.image = nil
}

// RequestPreview loads the selected entry in the background. Every request
// takes a new id; only the result carrying the latest id is applied.
func (s *Session) RequestPreview() {
	entry, ok := s.SelectedEntry()
	if !ok {
		s.clearPreview()
		return
	}

	s.previewID++
	id := s.previewID
	s.previewPending = true

	load, post, path := s.svc.Preview, s.svc.Post, entry.FullPath
	s.svc.Spawn(func() {
		p, err := load(path)
		post(PreviewEvent{ID: id, Preview: p, Err: err})
	})
}

func (s *Session) applyPreview(ev PreviewEvent) Effect {
	if ev.ID != s.previewID {
		s.log.WithField("id", ev.ID).Debug("dropping stale preview")
		return noEffect
	}
	s.previewPending = false
	s.image = nil

	if ev.Err != nil {
		s.log.WithError(ev.Err).Debug("preview failed")
		s.preview = nil
		return redraw
	}

	p := ev.Preview
	if p != nil && p.Image != nil && s.svc.Backend != nil {
		s.imageVersion++
		s.image = imaging.NewHandle(s.imageVersion, s.svc.Backend.New(p.Image), s.resizeMode)
		// the protocol owns the pixels from here on
		p.Image = nil
	}
	s.preview = p
	return redraw
}

// imageView draws the session's image handle. It must only be used on the
// loop goroutine, which is where rendering happens.
type imageView struct {
	handle *imaging.Handle
	submit func(imaging.Job) bool
}

func (v imageView) Render(c imaging.Canvas, area imaging.Rect) {
	v.handle.Render(c, area, v.submit)
}

// Pending reports whether the encoding is in flight with the worker.
func (v imageView) Pending() bool {
	return v.handle.InFlight()
}
