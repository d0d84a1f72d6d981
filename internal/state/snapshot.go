package state

import (
	"github.com/kk-code-lab/vfm/internal/fs"
	"github.com/kk-code-lab/vfm/internal/imaging"
	"github.com/kk-code-lab/vfm/internal/keymap"
	"github.com/kk-code-lab/vfm/internal/preview"
)

// ImageView draws the previewed image. Render may hand the encoding to the
// image worker, so it is only called from the loop goroutine.
type ImageView interface {
	Render(c imaging.Canvas, area imaging.Rect)
	Pending() bool
}

// Prompt is the visible part of an input line.
type Prompt struct {
	Title   string
	Value   string
	Confirm bool
}

// PopupItem is one row of a popup list.
type PopupItem struct {
	Name   string
	Detail string
}

// Popup is a filterable list drawn over the panes.
type Popup struct {
	Title    string
	Items    []PopupItem
	Selected int
	Filter   string
}

// UiState is what the renderer gets. Slices are shared with the session and
// must be treated as read-only; a UiState is stale after the next event.
type UiState struct {
	CurrentDir string
	Width      int
	Height     int

	Parent         []fs.Entry
	ParentSelected int
	Entries        []fs.Entry
	Visible        []int
	Selected       int
	Scroll         int
	Loading        bool
	Filter         string
	ShowHidden     bool

	Preview        *preview.Preview
	PreviewPending bool
	Image          ImageView

	View      ViewFlags
	Mode      Mode
	Prefix    string
	Input     *Prompt
	Markers   *Popup
	Programs  *Popup
	Clipboard *Clipboard

	Status      string
	StatusError bool
	Hints       []string
}

// Snapshot captures the session for one frame.
func (s *Session) Snapshot() UiState {
	ui := UiState{
		CurrentDir:     s.currentDir,
		Width:          s.width,
		Height:         s.height,
		Parent:         s.parent,
		ParentSelected: -1,
		Entries:        s.current,
		Visible:        s.visible,
		Selected:       s.selected,
		Scroll:         s.scroll,
		Loading:        !s.currentDone,
		Filter:         s.query.String(),
		ShowHidden:     s.showHidden,
		Preview:        s.preview,
		PreviewPending: s.previewPending,
		View:           s.view,
		Mode:           s.mode,
		Prefix:         s.prefix.String(),
		Clipboard:      s.clipboard,
		Status:         s.status,
		StatusError:    s.statusErr,
		Hints:          s.hints(),
	}
	if len(s.visible) == 0 {
		ui.Selected = -1
	}
	for i, e := range s.parent {
		if e.FullPath == s.currentDir {
			ui.ParentSelected = i
			break
		}
	}
	if s.image != nil {
		ui.Image = imageView{handle: s.image, submit: s.svc.Submit}
	}
	if s.input != nil {
		ui.Input = &Prompt{
			Title:   s.input.Action.Title(),
			Value:   s.input.text(),
			Confirm: s.input.Action == InputConfirmDelete,
		}
	}
	if s.markerList != nil {
		p := &Popup{Title: "Markers", Selected: s.markerList.SelectedIndex(), Filter: s.markerList.Query()}
		for _, m := range s.markerList.Visible() {
			p.Items = append(p.Items, PopupItem{Name: m.Name, Detail: m.Path})
		}
		ui.Markers = p
	}
	if s.programList != nil {
		p := &Popup{Title: "Open With", Selected: s.programList.SelectedIndex(), Filter: s.programList.Query()}
		for _, prog := range s.programList.Visible() {
			p.Items = append(p.Items, PopupItem{Name: prog.Name, Detail: prog.Path})
		}
		ui.Programs = p
	}
	return ui
}

type hint struct {
	ctx    keymap.Context
	action keymap.Action
	label  string
}

var modeHints = map[Mode][]hint{
	ModeNormal: {
		{keymap.Normal, keymap.Quit, "quit"},
		{keymap.Normal, keymap.Search, "search"},
		{keymap.Normal, keymap.AddPrefix, "add"},
		{keymap.Normal, keymap.Rename, "rename"},
		{keymap.Normal, keymap.DeletePrefix, "delete"},
		{keymap.Normal, keymap.CopyPrefix, "copy"},
		{keymap.Normal, keymap.Cut, "cut"},
		{keymap.Normal, keymap.Paste, "paste"},
		{keymap.Normal, keymap.MarkerOpen, "markers"},
		{keymap.Normal, keymap.OpenWithPicker, "open with"},
	},
	ModeMarkerList: {
		{keymap.MarkerList, keymap.Select, "jump"},
		{keymap.MarkerList, keymap.Create, "add"},
		{keymap.MarkerList, keymap.MarkerRen, "rename"},
		{keymap.MarkerList, keymap.EditPath, "path"},
		{keymap.MarkerList, keymap.Remove, "delete"},
		{keymap.MarkerList, keymap.Filter, "search"},
		{keymap.MarkerList, keymap.Close, "close"},
	},
	ModeProgramList: {
		{keymap.OpenWith, keymap.Select, "open"},
		{keymap.OpenWith, keymap.Close, "close"},
	},
}

var prefixHints = map[Prefix][]hint{
	PrefixAdd: {{keymap.Add, keymap.AddDir, "dir"}},
	PrefixSettings: {
		{keymap.Settings, keymap.ToggleHidden, "hidden"},
		{keymap.Settings, keymap.ToggleMetadata, "metadata"},
		{keymap.Settings, keymap.TogglePermissions, "permissions"},
		{keymap.Settings, keymap.ToggleDates, "dates"},
		{keymap.Settings, keymap.ToggleOwner, "owner"},
	},
	PrefixView: {
		{keymap.View, keymap.ToggleListPermissions, "permissions"},
		{keymap.View, keymap.ToggleListOwner, "owner"},
	},
	PrefixCopy:   {{keymap.Copy, keymap.CopyPath, "copy path"}},
	PrefixDelete: {{keymap.Delete, keymap.ConfirmDelete, "delete"}},
}

// hints are the footer's "key label" pairs for the active mode or prefix.
func (s *Session) hints() []string {
	list := modeHints[s.mode]
	if s.mode == ModeNormal && s.prefix != PrefixNone {
		list = prefixHints[s.prefix]
	}
	out := make([]string, 0, len(list))
	for _, h := range list {
		if keys := s.keys.Hint(h.ctx, h.action); keys != "" {
			out = append(out, keys+" "+h.label)
		}
	}
	return out
}
