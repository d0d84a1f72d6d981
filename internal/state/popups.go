package state

import (
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/kk-code-lab/vfm/internal/filter"
	"github.com/kk-code-lab/vfm/internal/keymap"
	"github.com/kk-code-lab/vfm/internal/markers"
)

// ===== MARKER LIST =====

type markerField int

const (
	markerAny markerField = iota
	markerName
	markerPath
)

var markerFilterPrefixes = []struct {
	prefix string
	field  markerField
}{
	{"n:", markerName}, {"n/", markerName}, {"name:", markerName}, {"name/", markerName},
	{"p:", markerPath}, {"p/", markerPath}, {"path:", markerPath}, {"path/", markerPath},
}

// parseMarkerQuery splits an optional n:/p: field prefix off a marker query
// and lower-cases the rest.
func parseMarkerQuery(raw string) (markerField, string) {
	q := strings.ToLower(strings.TrimSpace(raw))
	for _, p := range markerFilterPrefixes {
		if rest, ok := strings.CutPrefix(q, p.prefix); ok {
			return p.field, strings.TrimSpace(rest)
		}
	}
	return markerAny, q
}

func matchMarker(m markers.Marker, raw string) bool {
	field, q := parseMarkerQuery(raw)
	if q == "" {
		return true
	}
	name := strings.Contains(strings.ToLower(m.Name), q)
	path := strings.Contains(strings.ToLower(m.Path), q)
	switch field {
	case markerName:
		return name
	case markerPath:
		return path
	default:
		return name || path
	}
}

func newMarkerList(store *markers.Store) *filter.List[markers.Marker] {
	l := filter.NewList(func(m markers.Marker) string { return m.Name }, matchMarker)
	l.SetItems(store.Entries(), "")
	return l
}

func (s *Session) openMarkerList() Effect {
	s.prefix = PrefixNone
	s.markerList = newMarkerList(s.markers)
	s.mode = ModeMarkerList
	return redraw
}

func (s *Session) closeMarkerList() Effect {
	s.markerList = nil
	s.mode = ModeNormal
	return redraw
}

// syncMarkerList reloads the open popup from the store, keeping the query and
// selecting preferred when it is still visible.
func (s *Session) syncMarkerList(preferred string) {
	if s.markerList != nil {
		s.markerList.SetItems(s.markers.Entries(), preferred)
	}
}

var markerListCommands = map[keymap.Action]func(*Session, markers.Marker, bool) Effect{
	keymap.Close: func(s *Session, _ markers.Marker, _ bool) Effect { return s.closeMarkerList() },
	keymap.Up: func(s *Session, _ markers.Marker, _ bool) Effect {
		s.markerList.Move(-1)
		return redraw
	},
	keymap.Down: func(s *Session, _ markers.Marker, _ bool) Effect {
		s.markerList.Move(1)
		return redraw
	},
	keymap.Select: func(s *Session, m markers.Marker, ok bool) Effect {
		if !ok {
			return noEffect
		}
		s.closeMarkerList()
		return s.jumpTo(m.Path)
	},
	keymap.MarkerRen: func(s *Session, m markers.Marker, ok bool) Effect {
		if !ok {
			return noEffect
		}
		return s.startInput(InputMarkerRename, m.Name)
	},
	keymap.EditPath: func(s *Session, m markers.Marker, ok bool) Effect {
		if !ok {
			return noEffect
		}
		return s.startInput(InputMarkerEditPath, m.Name)
	},
	keymap.Remove: func(s *Session, m markers.Marker, ok bool) Effect {
		if !ok {
			return noEffect
		}
		s.markers.Remove(m.Name)
		s.syncMarkerList("")
		return redraw
	},
	keymap.Create: func(s *Session, _ markers.Marker, _ bool) Effect {
		return s.startInput(InputMarkerCreateName, "")
	},
	keymap.Filter: func(s *Session, _ markers.Marker, _ bool) Effect {
		return s.startInput(InputMarkerSearch, "")
	},
}

func (s *Session) handleMarkerList(k keymap.Key) Effect {
	if s.markerList == nil {
		s.mode = ModeNormal
		return redraw
	}
	action, ok := s.keys.Lookup(keymap.MarkerList, k)
	if !ok {
		return noEffect
	}
	cmd, ok := markerListCommands[action]
	if !ok {
		return noEffect
	}
	m, has := s.markerList.Selected()
	return cmd(s, m, has)
}

// ===== PROGRAM LIST =====

func matchProgram(p Program, raw string) bool {
	q := strings.ToLower(strings.TrimSpace(raw))
	return strings.Contains(strings.ToLower(p.Name), q) || strings.Contains(strings.ToLower(p.Path), q)
}

func (s *Session) openProgramList() Effect {
	s.prefix = PrefixNone
	s.programList = filter.NewList(func(p Program) string { return p.Name }, matchProgram)
	s.programList.SetItems(s.programs, "")
	s.mode = ModeProgramList
	return redraw
}

func (s *Session) closeProgramList() Effect {
	s.programList = nil
	s.mode = ModeNormal
	return redraw
}

func (s *Session) handleProgramList(k keymap.Key) Effect {
	list := s.programList
	if list == nil {
		s.mode = ModeNormal
		return redraw
	}

	action, bound := s.keys.Lookup(keymap.OpenWith, k)
	switch {
	case bound && action == keymap.Close:
		return s.closeProgramList()
	case bound && action == keymap.Up:
		list.Move(-1)
		return redraw
	case bound && action == keymap.Down:
		list.Move(1)
		return redraw
	case bound && action == keymap.Select:
		program, ok := list.Selected()
		entry, hasEntry := s.SelectedEntry()
		s.closeProgramList()
		if !ok || !hasEntry {
			return redraw
		}
		return Effect{Redraw: true, Suspend: &SuspendAction{
			Kind:    SuspendOpenWith,
			Program: program.Path,
			Path:    entry.FullPath,
			Dir:     s.currentDir,
		}}
	case bound && action == keymap.Backspace, k.Code == tcell.KeyBackspace2:
		q := []rune(list.Query())
		if len(q) == 0 {
			return noEffect
		}
		list.SetQuery(string(q[:len(q)-1]))
		return redraw
	case k.IsText():
		list.SetQuery(list.Query() + string(k.Rune))
		return redraw
	}
	return noEffect
}
