package state

import (
	"path/filepath"

	"github.com/gdamore/tcell/v2"

	"github.com/kk-code-lab/vfm/internal/fs"
	"github.com/kk-code-lab/vfm/internal/keymap"
)

// ===== NORMAL MODE =====

var normalCommands = map[keymap.Action]func(*Session) Effect{
	keymap.Quit:     func(*Session) Effect { return Effect{Exit: true} },
	keymap.Up:       func(s *Session) Effect { return s.moveTo(s.selected - 1) },
	keymap.Down:     func(s *Session) Effect { return s.moveTo(s.selected + 1) },
	keymap.Top:      func(s *Session) Effect { return s.moveTo(0) },
	keymap.Bottom:   func(s *Session) Effect { return s.moveTo(len(s.visible) - 1) },
	keymap.PageUp:   func(s *Session) Effect { return s.moveTo(s.selected - s.pageStep()) },
	keymap.PageDown: func(s *Session) Effect { return s.moveTo(s.selected + s.pageStep()) },
	keymap.Parent:   (*Session).goParent,
	keymap.Open:     (*Session).openSelected,
	keymap.Search:   func(s *Session) Effect { return s.startInput(InputSearch, "") },
	keymap.Rename: func(s *Session) Effect {
		if _, ok := s.SelectedEntry(); !ok {
			return noEffect
		}
		return s.startInput(InputRename, "")
	},
	keymap.MarkerSet:  func(s *Session) Effect { return s.startInput(InputMarkerSet, "") },
	keymap.MarkerJump: func(s *Session) Effect { return s.startInput(InputMarkerJump, "") },
	keymap.MarkerOpen: (*Session).openMarkerList,
	keymap.CopyPrefix: func(s *Session) Effect {
		e, ok := s.SelectedEntry()
		if !ok {
			return noEffect
		}
		s.clipboard = &Clipboard{Path: e.FullPath, Mode: ClipCopy}
		s.prefix = PrefixCopy
		return redraw
	},
	keymap.Cut: func(s *Session) Effect {
		e, ok := s.SelectedEntry()
		if !ok {
			return noEffect
		}
		s.clipboard = &Clipboard{Path: e.FullPath, Mode: ClipCut}
		return redraw
	},
	keymap.Paste:          (*Session).paste,
	keymap.Refresh:        func(s *Session) Effect { return s.refresh("") },
	keymap.OpenShell:      (*Session).openShell,
	keymap.OpenWithPicker: (*Session).openProgramList,
	keymap.AddPrefix:      setPrefix(PrefixAdd),
	keymap.SettingsPrefix: setPrefix(PrefixSettings),
	keymap.ViewPrefix:     setPrefix(PrefixView),
	keymap.DeletePrefix:   setPrefix(PrefixDelete),
	keymap.OpenWithQuick:  setPrefix(PrefixOpenWith),
	keymap.Stop: func(s *Session) Effect {
		return Effect{Suspend: &SuspendAction{Kind: SuspendJob, Dir: s.currentDir}}
	},
}

func setPrefix(p Prefix) func(*Session) Effect {
	return func(s *Session) Effect {
		s.prefix = p
		return redraw
	}
}

func (s *Session) handleNormal(k keymap.Key) Effect {
	if s.prefix != PrefixNone {
		p := s.prefix
		s.prefix = PrefixNone
		if k.Code == tcell.KeyEscape {
			return redraw
		}
		if eff, ok := s.handlePrefix(p, k); ok {
			return eff
		}
		// an unmatched second key acts as if no prefix were pending
		return redraw.merge(s.handleNormal(k))
	}

	action, ok := s.keys.Lookup(keymap.Normal, k)
	if !ok {
		return noEffect
	}
	if cmd, ok := normalCommands[action]; ok {
		return cmd(s)
	}
	return noEffect
}

// ===== PREFIX COMMANDS =====

var settingsToggles = map[keymap.Action]func(*ViewFlags){
	keymap.TogglePermissions: func(v *ViewFlags) { v.ShowPermissions = !v.ShowPermissions; v.ShowMetadata = true },
	keymap.ToggleDates:       func(v *ViewFlags) { v.ShowDates = !v.ShowDates; v.ShowMetadata = true },
	keymap.ToggleOwner:       func(v *ViewFlags) { v.ShowOwner = !v.ShowOwner; v.ShowMetadata = true },
	keymap.ToggleMetadata:    func(v *ViewFlags) { v.ShowMetadata = !v.ShowMetadata },
}

var viewToggles = map[keymap.Action]func(*ViewFlags){
	keymap.ToggleListPermissions: func(v *ViewFlags) { v.ListPermissions = !v.ListPermissions },
	keymap.ToggleListOwner:       func(v *ViewFlags) { v.ListOwner = !v.ListOwner },
}

var prefixContexts = map[Prefix]keymap.Context{
	PrefixAdd:      keymap.Add,
	PrefixSettings: keymap.Settings,
	PrefixCopy:     keymap.Copy,
	PrefixView:     keymap.View,
	PrefixDelete:   keymap.Delete,
}

func (s *Session) handlePrefix(p Prefix, k keymap.Key) (Effect, bool) {
	if p == PrefixOpenWith {
		if k.Code == tcell.KeyRune && k.Mod == 0 && k.Rune >= '0' && k.Rune <= '9' {
			return s.openWithQuick(string(k.Rune)), true
		}
		return noEffect, false
	}

	if p == PrefixAdd {
		if action, ok := s.keys.Lookup(keymap.Add, k); ok && action == keymap.AddDir {
			return s.startInput(InputAddDir, ""), true
		}
		eff := s.startInput(InputAddFile, "")
		return eff.merge(s.handleInput(k)), true
	}

	action, ok := s.keys.Lookup(prefixContexts[p], k)
	if !ok {
		return noEffect, false
	}

	switch p {
	case PrefixSettings:
		if action == keymap.ToggleHidden {
			s.showHidden = !s.showHidden
			s.pendingSelection = s.selectedPath()
			s.refreshDirs()
			return redraw, true
		}
		if toggle, ok := settingsToggles[action]; ok {
			toggle(&s.view)
			return redraw, true
		}
	case PrefixView:
		if toggle, ok := viewToggles[action]; ok {
			toggle(&s.view)
			return redraw, true
		}
	case PrefixCopy:
		if action == keymap.CopyPath {
			return s.copyPathText(), true
		}
	case PrefixDelete:
		if action == keymap.ConfirmDelete {
			if _, ok := s.SelectedEntry(); !ok {
				return redraw, true
			}
			return s.startInput(InputConfirmDelete, ""), true
		}
	}
	return noEffect, false
}

func (s *Session) copyPathText() Effect {
	e, ok := s.SelectedEntry()
	if !ok || s.svc.CopyText == nil {
		return redraw
	}
	copyText, post, path := s.svc.CopyText, s.svc.Post, e.FullPath
	s.svc.Spawn(func() {
		if err := copyText(path); err != nil {
			post(StatusEvent{Text: "copy path failed", Err: err})
			return
		}
		post(StatusEvent{Text: "copied " + path})
	})
	return redraw
}

// ===== EXTERNAL PROGRAMS =====

func (s *Session) openShell() Effect {
	return Effect{Suspend: &SuspendAction{Kind: SuspendShell, Dir: s.currentDir}}
}

func (s *Session) openWithQuick(digit string) Effect {
	name, ok := s.cfg.OpenWith.Quick[digit]
	if !ok || name == "" {
		s.setStatus("no program bound to " + digit)
		return redraw
	}
	e, ok := s.SelectedEntry()
	if !ok {
		return redraw
	}
	return Effect{Redraw: true, Suspend: &SuspendAction{
		Kind:    SuspendOpenWith,
		Program: findProgram(s.programs, name),
		Path:    e.FullPath,
		Dir:     s.currentDir,
	}}
}

// ===== CLIPBOARD =====

func (s *Session) paste() Effect {
	if s.clipboard == nil {
		return noEffect
	}
	clip := *s.clipboard
	dest := filepath.Join(s.currentDir, filepath.Base(clip.Path))
	if clip.Mode == ClipCut {
		s.clipboard = nil
		s.mutate("move", dest, func() error { return fs.Rename(clip.Path, dest) })
	} else {
		s.mutate("copy", dest, func() error { return fs.CopyRecursive(clip.Path, dest) })
	}
	return redraw
}
