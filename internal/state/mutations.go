package state

// ===== FILESYSTEM MUTATIONS =====

// mutate runs fn in the background and follows it with a RefreshEvent that
// re-lists the directory, selecting selectPath when the mutation succeeded.
func (s *Session) mutate(op, selectPath string, fn func() error) {
	post := s.svc.Post
	s.svc.Spawn(func() {
		post(RefreshEvent{Op: op, Select: selectPath, Err: fn()})
	})
}

func (s *Session) applyRefresh(ev RefreshEvent) Effect {
	if ev.Err != nil {
		s.setError(ev.Op+" failed", ev.Err)
		return s.refresh("")
	}
	return s.refresh(ev.Select)
}

// refresh re-lists the current directory. The cursor lands on selectPath, or
// stays on the current entry when selectPath is empty.
func (s *Session) refresh(selectPath string) Effect {
	if selectPath == "" {
		selectPath = s.selectedPath()
	}
	s.pendingSelection = selectPath
	s.refreshDirs()
	return redraw
}
