package state

import (
	"path/filepath"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/kk-code-lab/vfm/internal/fs"
	"github.com/kk-code-lab/vfm/internal/keymap"
)

// ===== INPUT MODE =====

// inputSpec describes one prompt: what it starts with, what live edits do,
// and what Enter and Esc do with the buffer.
type inputSpec struct {
	prefill  func(s *Session, marker string) string
	onChange func(s *Session, text string) Effect
	commit   func(s *Session, in *Input) Effect
	cancel   func(s *Session) Effect
}

var inputSpecs = map[InputAction]inputSpec{
	InputSearch: {
		prefill:  func(s *Session, _ string) string { return s.query.String() },
		onChange: (*Session).setQuery,
		commit:   func(*Session, *Input) Effect { return redraw },
		cancel:   func(s *Session) Effect { return s.setQuery("") },
	},
	InputMarkerSearch: {
		prefill: func(s *Session, _ string) string {
			if s.markerList == nil {
				return ""
			}
			return s.markerList.Query()
		},
		onChange: func(s *Session, text string) Effect {
			if s.markerList != nil {
				s.markerList.SetQuery(text)
			}
			return redraw
		},
		commit: func(*Session, *Input) Effect { return redraw },
		cancel: func(s *Session) Effect {
			if s.markerList != nil {
				s.markerList.SetQuery("")
			}
			return redraw
		},
	},
	InputAddFile: {commit: func(s *Session, in *Input) Effect {
		return s.create(in.text(), false)
	}},
	InputAddDir: {commit: func(s *Session, in *Input) Effect {
		return s.create(in.text(), true)
	}},
	InputRename: {
		prefill: func(s *Session, _ string) string {
			if e, ok := s.SelectedEntry(); ok {
				return e.Name
			}
			return ""
		},
		commit: func(s *Session, in *Input) Effect { return s.renameSelected(in.text()) },
	},
	InputMarkerSet: {commit: func(s *Session, in *Input) Effect {
		name := strings.TrimSpace(in.text())
		if name == "" {
			return redraw
		}
		s.markers.Set(name, s.currentDir)
		s.syncMarkerList(name)
		s.setStatus("marker " + name + " set")
		return redraw
	}},
	InputMarkerJump: {commit: func(s *Session, in *Input) Effect {
		name := strings.TrimSpace(in.text())
		target, ok := s.markers.Get(name)
		if !ok {
			if name != "" {
				s.setStatus("no marker " + name)
			}
			return redraw
		}
		return s.jumpTo(target)
	}},
	InputMarkerRename: {
		prefill: func(_ *Session, marker string) string { return marker },
		commit: func(s *Session, in *Input) Effect {
			name := strings.TrimSpace(in.text())
			if name == "" {
				return redraw
			}
			if name != in.Marker {
				if _, taken := s.markers.Get(name); taken {
					s.setStatus("marker " + name + " already exists")
					return redraw
				}
			}
			s.markers.Rename(in.Marker, name)
			s.syncMarkerList(name)
			return redraw
		},
	},
	InputMarkerEditPath: {
		prefill: func(s *Session, marker string) string {
			target, _ := s.markers.Get(marker)
			return target
		},
		commit: func(s *Session, in *Input) Effect {
			target := strings.TrimSpace(in.text())
			if target == "" {
				return redraw
			}
			s.markers.Set(in.Marker, target)
			s.syncMarkerList(in.Marker)
			return redraw
		},
	},
	InputMarkerCreateName: {commit: func(s *Session, in *Input) Effect {
		name := strings.TrimSpace(in.text())
		if name == "" {
			return redraw
		}
		next := &Input{Action: InputMarkerCreatePath, Marker: name, Buffer: []rune(s.currentDir)}
		s.input = next
		s.mode = ModeInput
		return redraw
	}},
	InputMarkerCreatePath: {
		prefill: func(s *Session, _ string) string { return s.currentDir },
		commit: func(s *Session, in *Input) Effect {
			target := strings.TrimSpace(in.text())
			if target == "" {
				return redraw
			}
			s.markers.Set(in.Marker, target)
			s.syncMarkerList(in.Marker)
			return redraw
		},
	},
}

// startInput opens a prompt for action, prefilled as the action requires.
// Any pending prefix is dropped.
func (s *Session) startInput(action InputAction, marker string) Effect {
	s.prefix = PrefixNone
	in := &Input{Action: action, Marker: marker}
	if spec, ok := inputSpecs[action]; ok && spec.prefill != nil {
		in.Buffer = []rune(spec.prefill(s, marker))
	}
	s.input = in
	s.mode = ModeInput
	return redraw
}

// endInput leaves input mode for whichever popup is still open.
func (s *Session) endInput() {
	s.input = nil
	switch {
	case s.markerList != nil:
		s.mode = ModeMarkerList
	case s.programList != nil:
		s.mode = ModeProgramList
	default:
		s.mode = ModeNormal
	}
}

func (s *Session) handleInput(k keymap.Key) Effect {
	in := s.input
	if in == nil {
		s.endInput()
		return redraw
	}
	if in.Action == InputConfirmDelete {
		return s.handleConfirmDelete(k)
	}
	spec := inputSpecs[in.Action]

	switch {
	case k.Code == tcell.KeyEscape:
		s.endInput()
		if spec.cancel != nil {
			return redraw.merge(spec.cancel(s))
		}
		return redraw
	case k.Code == tcell.KeyEnter:
		s.endInput()
		if spec.commit != nil {
			return redraw.merge(spec.commit(s, in))
		}
		return redraw
	case k.Code == tcell.KeyBackspace2:
		if len(in.Buffer) == 0 {
			return noEffect
		}
		in.Buffer = in.Buffer[:len(in.Buffer)-1]
	case k.IsText():
		in.Buffer = append(in.Buffer, k.Rune)
	default:
		return noEffect
	}

	if spec.onChange != nil {
		return redraw.merge(spec.onChange(s, in.text()))
	}
	return redraw
}

func (s *Session) handleConfirmDelete(k keymap.Key) Effect {
	switch {
	case k.Code == tcell.KeyRune && (k.Rune == 'y' || k.Rune == 'Y'):
		s.endInput()
		return s.deleteSelected()
	case k.Code == tcell.KeyEscape, k.Code == tcell.KeyRune && (k.Rune == 'n' || k.Rune == 'N'):
		s.endInput()
		return redraw
	}
	return noEffect
}

// ===== MUTATIONS FROM PROMPTS =====

func (s *Session) create(name string, dir bool) Effect {
	name = strings.TrimSpace(name)
	if name == "" {
		return redraw
	}
	target := filepath.Join(s.currentDir, name)
	if dir {
		s.mutate("create directory", target, func() error { return fs.CreateDir(target) })
	} else {
		s.mutate("create file", target, func() error { return fs.CreateFile(target) })
	}
	return redraw
}

func (s *Session) renameSelected(name string) Effect {
	e, ok := s.SelectedEntry()
	name = strings.TrimSpace(name)
	if !ok || name == "" {
		return redraw
	}
	dest := filepath.Join(filepath.Dir(e.FullPath), name)
	if dest == e.FullPath {
		return redraw
	}
	src := e.FullPath
	s.mutate("rename", dest, func() error { return fs.Rename(src, dest) })
	return redraw
}

func (s *Session) deleteSelected() Effect {
	e, ok := s.SelectedEntry()
	if !ok {
		return redraw
	}
	target := e.FullPath
	if s.clipboard != nil && s.clipboard.Path == target {
		s.clipboard = nil
	}
	s.mutate("delete", "", func() error { return fs.Remove(target) })
	return redraw
}
