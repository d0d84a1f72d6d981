package state

import (
	"path/filepath"

	"github.com/kk-code-lab/vfm/internal/filter"
	"github.com/kk-code-lab/vfm/internal/fs"
)

// ===== LISTING =====

// refreshDirs starts a new listing epoch for the current directory and its
// parent. Batches from earlier epochs still in flight are dropped on arrival.
func (s *Session) refreshDirs() {
	s.listingEpoch++
	epoch := s.listingEpoch

	s.current = nil
	s.parent = nil
	s.visible = nil
	s.selected = 0
	s.scroll = 0
	s.currentDone = false
	s.cursorMoved = false
	s.clearPreview()

	s.spawnListing(epoch, TargetCurrent, s.currentDir)
	if parent := filepath.Dir(s.currentDir); parent != s.currentDir {
		s.spawnListing(epoch, TargetParent, parent)
	}
}

func (s *Session) spawnListing(epoch uint64, target ListTarget, dir string) {
	list, post, log := s.svc.List, s.svc.Post, s.log
	s.svc.Spawn(func() {
		err := list(dir, func(b fs.Batch) {
			post(DirEntriesEvent{Epoch: epoch, Target: target, Entries: b.Entries, Done: b.Done})
		})
		if err != nil {
			log.WithError(err).WithField("dir", dir).Warn("listing failed")
		}
	})
}

func (s *Session) mergeEntries(ev DirEntriesEvent) Effect {
	if ev.Epoch != s.listingEpoch {
		s.log.WithField("epoch", ev.Epoch).Debug("dropping stale listing batch")
		return noEffect
	}

	entries := ev.Entries
	if !s.showHidden {
		kept := entries[:0:0]
		for _, e := range entries {
			if !s.hidden.Hidden(e) {
				kept = append(kept, e)
			}
		}
		entries = kept
	}

	if ev.Target == TargetParent {
		s.parent = append(s.parent, entries...)
		if ev.Done {
			fs.SortEntries(s.parent)
		}
		return redraw
	}

	s.current = append(s.current, entries...)
	preferred := s.selectedPath()
	if ev.Done {
		fs.SortEntries(s.current)
		s.currentDone = true
		// until the user moves, the cursor belongs at the top of the sorted list
		switch {
		case s.pendingSelection != "":
			preferred = s.pendingSelection
			s.pendingSelection = ""
		case !s.cursorMoved && len(s.current) > 0:
			preferred = s.current[0].FullPath
		}
	}

	eff := redraw
	if s.applyFilter(preferred) {
		s.clearPreview()
		eff.RequestPreview = true
	}
	if !s.previewPending && s.preview == nil && len(s.visible) > 0 {
		eff.RequestPreview = true
	}
	return eff
}

// applyFilter recomputes the visible indices and anchors the selection on
// preferred. It reports whether the selected entry changed.
func (s *Session) applyFilter(preferred string) bool {
	before := s.selectedPath()
	hadEntries := len(s.visible) > 0

	var keep func(int) bool
	if !s.query.Empty() {
		keep = func(i int) bool { return s.query.Match(s.current[i].Name) }
	}
	s.visible = filter.Indices(len(s.current), keep)
	s.selected = filter.Anchor(s.visible, func(i int) string { return s.current[i].FullPath }, preferred)
	s.ensureVisible()

	if len(s.visible) == 0 {
		return hadEntries
	}
	return s.selectedPath() != before
}

// setQuery replaces the listing filter, reporting whether the selection moved.
func (s *Session) setQuery(raw string) Effect {
	s.query = filter.Compile(raw)
	if s.applyFilter(s.selectedPath()) {
		s.clearPreview()
		return Effect{Redraw: true, RequestPreview: true}
	}
	return redraw
}

// SelectedEntry is the entry under the cursor.
func (s *Session) SelectedEntry() (fs.Entry, bool) {
	if s.selected < 0 || s.selected >= len(s.visible) {
		return fs.Entry{}, false
	}
	return s.current[s.visible[s.selected]], true
}

func (s *Session) selectedPath() string {
	if e, ok := s.SelectedEntry(); ok {
		return e.FullPath
	}
	return ""
}

// ===== NAVIGATION =====

func (s *Session) changeDir(dir string) {
	s.currentDir = filepath.Clean(dir)
	s.query = filter.Query{}
	s.refreshDirs()
}

func (s *Session) goParent() Effect {
	parent := filepath.Dir(s.currentDir)
	if parent == s.currentDir {
		return noEffect
	}
	s.pendingSelection = s.currentDir
	s.changeDir(parent)
	return redraw
}

func (s *Session) openSelected() Effect {
	entry, ok := s.SelectedEntry()
	if !ok {
		return noEffect
	}
	if entry.IsDir {
		s.pendingSelection = ""
		s.changeDir(entry.FullPath)
		return redraw
	}

	open, post, path := s.svc.OpenDefault, s.svc.Post, entry.FullPath
	if open == nil {
		return noEffect
	}
	s.svc.Spawn(func() {
		if err := open(path); err != nil {
			post(StatusEvent{Text: "open failed", Err: err})
		}
	})
	return noEffect
}

func (s *Session) jumpTo(dir string) Effect {
	s.pendingSelection = ""
	s.changeDir(dir)
	return redraw
}

func (s *Session) moveTo(pos int) Effect {
	if len(s.visible) == 0 {
		return noEffect
	}
	if pos < 0 {
		pos = 0
	}
	if pos >= len(s.visible) {
		pos = len(s.visible) - 1
	}
	if pos == s.selected {
		return noEffect
	}
	s.selected = pos
	s.cursorMoved = true
	s.ensureVisible()
	s.clearPreview()
	return Effect{Redraw: true, RequestPreview: true}
}

// ListRows is how many entry rows fit a terminal of the given height: one
// header line and one footer line are reserved.
func ListRows(height int) int {
	if rows := height - 2; rows > 0 {
		return rows
	}
	return 1
}

func (s *Session) pageStep() int {
	if step := ListRows(s.height) - 1; step > 0 {
		return step
	}
	return 1
}

func (s *Session) ensureVisible() {
	rows := ListRows(s.height)
	if s.selected < s.scroll {
		s.scroll = s.selected
	}
	if s.selected >= s.scroll+rows {
		s.scroll = s.selected - rows + 1
	}
	if limit := len(s.visible) - rows; s.scroll > limit {
		s.scroll = limit
	}
	if s.scroll < 0 {
		s.scroll = 0
	}
}
