// Package render draws a state.UiState snapshot onto a tcell screen.
package render

import (
	"path/filepath"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/kk-code-lab/vfm/internal/config"
	"github.com/kk-code-lab/vfm/internal/fs"
	"github.com/kk-code-lab/vfm/internal/state"
	"github.com/kk-code-lab/vfm/internal/textutil"
)

const (
	appTitle            = "vfm"
	breadcrumbSeparator = " › "
	permissionsColumn   = 9
	ownerColumn         = 10
)

// Renderer handles all UI rendering
type Renderer struct {
	screen tcell.Screen
	theme  ColorTheme
	icons  config.Icons
}

// NewRenderer creates a renderer for screen. A nil cfg uses the defaults.
func NewRenderer(screen tcell.Screen, cfg *config.Config) *Renderer {
	if cfg == nil {
		cfg = config.Default()
	}
	return &Renderer{
		screen: screen,
		theme:  NewTheme(cfg.Theme),
		icons:  cfg.Icons,
	}
}

// Render draws the entire UI from ui.
func (r *Renderer) Render(ui state.UiState) {
	r.screen.Clear()

	w, h := r.screen.Size()
	if w <= 0 || h <= 0 {
		return
	}
	layout := computeLayout(w)

	r.drawHeader(ui, w)
	if layout.sidebarWidth > 0 {
		r.drawSidebar(ui, layout.sidebarWidth, h)
		if layout.sideSeparatorWidth > 0 {
			r.drawSeparator(layout.sidebarWidth, h)
		}
	}
	r.drawMainPanel(ui, layout.mainPanelStart, layout.mainPanelWidth, h)
	if layout.showPreview {
		r.drawSeparator(layout.previewStart-layout.contentSeparatorWidth, h)
		r.drawPreviewPanel(ui, layout.previewStart, layout.previewWidth, h)
	}
	r.drawFooter(ui, w, h)

	switch {
	case ui.Markers != nil:
		r.drawPopup(*ui.Markers, w, h)
	case ui.Programs != nil:
		r.drawPopup(*ui.Programs, w, h)
	}

	r.screen.Show()
}

func (r *Renderer) baseStyle() tcell.Style {
	return tcell.StyleDefault.Background(r.theme.Background).Foreground(r.theme.Foreground)
}

func (r *Renderer) selectionStyle() tcell.Style {
	return tcell.StyleDefault.Background(r.theme.SelectionBg).Foreground(r.theme.SelectionFg)
}

func (r *Renderer) drawSeparator(x, h int) {
	style := r.baseStyle().Foreground(r.theme.HiddenFg)
	for y := 1; y < h-1; y++ {
		r.screen.SetContent(x, y, '│', nil, style)
	}
}

// drawHeader renders the top bar with title, breadcrumb and the active filter.
func (r *Renderer) drawHeader(ui state.UiState, w int) {
	headerStyle := tcell.StyleDefault.Background(r.theme.FooterBg).Foreground(r.theme.Accent).Bold(true)
	pathStyle := tcell.StyleDefault.Background(r.theme.FooterBg).Foreground(r.theme.FooterFg)

	endX := r.drawTextLine(0, 0, w, appTitle+" ", headerStyle)

	var suffix string
	if ui.Filter != "" {
		suffix = "  [/" + textutil.SanitizeTerminalText(ui.Filter) + "]"
	}
	if ui.Loading {
		suffix += "  loading…"
	}
	available := w - endX - textutil.DisplayWidth(suffix)
	if available < 1 {
		suffix = ""
		available = w - endX
	}

	crumb := fitBreadcrumb(strings.Join(formatBreadcrumbSegments(ui.CurrentDir), breadcrumbSeparator), available)
	endX = r.drawTextLine(endX, 0, available, textutil.SanitizeTerminalText(crumb), pathStyle)
	if suffix != "" {
		endX = r.drawTextLine(endX, 0, w-endX, suffix, pathStyle.Foreground(r.theme.WarningFg))
	}
	r.fillRow(endX, w, 0, pathStyle)
}

// fitBreadcrumb keeps the end of path, the most specific part, when it does
// not fit in width.
func fitBreadcrumb(path string, width int) string {
	if width <= 0 {
		return ""
	}
	return textutil.TruncateLeft(path, width)
}

func formatBreadcrumbSegments(path string) []string {
	if path == "" {
		return []string{"/"}
	}

	cleanPath := filepath.Clean(path)
	slashed := filepath.ToSlash(cleanPath)
	if slashed == "/" || slashed == "." {
		return []string{"/"}
	}

	var segments []string
	if strings.HasPrefix(slashed, "/") {
		segments = append(segments, "/")
		slashed = strings.TrimPrefix(slashed, "/")
	}
	for _, part := range strings.Split(slashed, "/") {
		if part != "" {
			segments = append(segments, part)
		}
	}
	if len(segments) == 0 {
		return []string{cleanPath}
	}
	return segments
}

// drawSidebar renders the parent directory with the current directory
// highlighted, keeping it vertically centred when the list is long.
func (r *Renderer) drawSidebar(ui state.UiState, width, h int) {
	base := r.baseStyle()
	rows := h - 2
	y := 1

	switch {
	case filepath.Dir(ui.CurrentDir) == ui.CurrentDir:
		r.drawRow(0, y, width, " No parent directory", base.Foreground(r.theme.HiddenFg))
		y++
	case len(ui.Parent) == 0:
	default:
		start := 0
		if len(ui.Parent) > rows && ui.ParentSelected >= 0 {
			start = ui.ParentSelected - rows/2
			if start > len(ui.Parent)-rows {
				start = len(ui.Parent) - rows
			}
			if start < 0 {
				start = 0
			}
		}
		for i := start; i < len(ui.Parent) && y < h-1; i++ {
			e := ui.Parent[i]
			style := r.entryStyle(e)
			if i == ui.ParentSelected {
				style = r.selectionStyle()
			}
			r.drawRow(0, y, width, " "+textutil.Truncate(textutil.SanitizeTerminalText(e.Name), width-1), style)
			y++
		}
	}

	for ; y < h-1; y++ {
		r.fillRow(0, width, y, base)
	}
}

func (r *Renderer) entryStyle(e fs.Entry) tcell.Style {
	style := r.baseStyle()
	switch {
	case e.IsSymlink:
		style = style.Foreground(r.theme.SymlinkFg)
	case e.IsDir:
		style = style.Foreground(r.theme.DirectoryFg).Bold(true)
	}
	if e.IsHidden() {
		style = style.Foreground(r.theme.HiddenFg)
	}
	return style
}

// drawMainPanel renders the visible entries of the current directory.
func (r *Renderer) drawMainPanel(ui state.UiState, startX, width, h int) {
	base := r.baseStyle()
	rows := state.ListRows(h)
	y := 1

	if len(ui.Visible) == 0 {
		msg := " Empty directory"
		switch {
		case ui.Loading:
			msg = " Loading…"
		case ui.Filter != "":
			msg = " No matches"
		}
		r.drawRow(startX, y, width, msg, base.Foreground(r.theme.HiddenFg))
		y++
	}

	for row := 0; row < rows && len(ui.Visible) > 0; row++ {
		pos := ui.Scroll + row
		if pos >= len(ui.Visible) {
			break
		}
		e := ui.Entries[ui.Visible[pos]]
		style := r.entryStyle(e)
		if ui.Clipboard != nil && ui.Clipboard.Path == e.FullPath {
			style = style.Italic(true)
			if ui.Clipboard.Mode == state.ClipCut {
				style = style.Dim(true)
			}
		}
		if pos == ui.Selected {
			style = r.selectionStyle()
		}
		r.drawRow(startX, y, width, r.formatEntry(e, ui.View, width), style)
		y++
	}

	for ; y < h-1; y++ {
		r.fillRow(startX, startX+width, y, base)
	}
}

// formatEntry lays out one list row: icon, name, then the optional
// permissions and owner columns flush right.
func (r *Renderer) formatEntry(e fs.Entry, view state.ViewFlags, width int) string {
	var columns []string
	if view.ListPermissions {
		columns = append(columns, textutil.PadRight(e.Permissions(), permissionsColumn))
	}
	if view.ListOwner {
		columns = append(columns, textutil.PadRight(e.Owner, ownerColumn))
	}
	tail := strings.Join(columns, " ")

	head := " "
	if icon := r.iconFor(e); icon != "" {
		head += icon + " "
	}
	name := textutil.SanitizeTerminalText(e.Name)
	if e.IsDir {
		name += "/"
	}

	nameWidth := width - textutil.DisplayWidth(head) - 1
	if tail != "" {
		nameWidth -= textutil.DisplayWidth(tail) + 1
	}
	if nameWidth < 1 {
		// too narrow for the columns; the name wins
		tail = ""
		nameWidth = width - textutil.DisplayWidth(head) - 1
	}
	line := head + textutil.PadRight(textutil.Truncate(name, nameWidth), nameWidth)
	if tail != "" {
		line += " " + tail
	}
	return line
}

// drawFooter renders the prompt, the status message, or the key hints on the
// last row.
func (r *Renderer) drawFooter(ui state.UiState, w, h int) {
	y := h - 1
	style := tcell.StyleDefault.Background(r.theme.FooterBg).Foreground(r.theme.FooterFg)

	switch {
	case ui.Input != nil:
		r.drawPrompt(ui, *ui.Input, w, y, style)
		return
	case ui.Status != "":
		statusStyle := style.Foreground(r.theme.Accent)
		if ui.StatusError {
			statusStyle = style.Foreground(r.theme.ErrorFg).Bold(true)
		}
		r.drawRow(0, y, w, " "+textutil.Truncate(textutil.SanitizeTerminalText(ui.Status), w-1), statusStyle)
		return
	}

	var b strings.Builder
	b.WriteString(" ")
	if ui.Prefix != "" {
		b.WriteString(ui.Prefix)
		b.WriteString(" › ")
	} else if ui.Mode != state.ModeNormal {
		b.WriteString(ui.Mode.String())
		b.WriteString(" › ")
	}
	b.WriteString(strings.Join(ui.Hints, "  "))
	r.drawRow(0, y, w, textutil.Truncate(b.String(), w), style.Dim(ui.Prefix == ""))
}

func (r *Renderer) drawPrompt(ui state.UiState, p state.Prompt, w, y int, style tcell.Style) {
	if p.Confirm {
		target := ""
		if ui.Selected >= 0 && ui.Selected < len(ui.Visible) {
			target = " " + ui.Entries[ui.Visible[ui.Selected]].Name
		}
		text := " " + p.Title + textutil.SanitizeTerminalText(target) + "? (y/n)"
		r.drawRow(0, y, w, textutil.Truncate(text, w), style.Foreground(r.theme.WarningFg).Bold(true))
		return
	}

	label := " " + p.Title + ": "
	x := r.drawTextLine(0, y, w, label, style.Foreground(r.theme.Accent))
	value := textutil.SanitizeTerminalText(p.Value)
	// keep the cursor end of a long value in view
	value = textutil.TruncateLeft(value, w-x-1)
	x = r.drawTextLine(x, y, w-x, value, style)
	if x < w {
		r.screen.SetContent(x, y, '█', nil, style.Foreground(r.theme.SelectionBg))
		x++
	}
	r.fillRow(x, w, y, style)
}

// drawPopup renders a boxed list centred over the panes.
func (r *Renderer) drawPopup(p state.Popup, w, h int) {
	boxW := w * 2 / 3
	if boxW < 30 {
		boxW = w - 2
	}
	boxH := h * 2 / 3
	if boxH < 5 {
		boxH = h - 2
	}
	if boxW < 4 || boxH < 3 {
		return
	}
	x0 := (w - boxW) / 2
	y0 := (h - boxH) / 2
	style := tcell.StyleDefault.Background(r.theme.PopupBg).Foreground(r.theme.PopupFg)
	border := style.Foreground(r.theme.Accent)

	title := " " + p.Title + " "
	if p.Filter != "" {
		title += "[" + textutil.SanitizeTerminalText(p.Filter) + "] "
	}
	r.drawBox(x0, y0, boxW, boxH, border)
	r.drawTextLine(x0+2, y0, boxW-4, textutil.Truncate(title, boxW-4), border.Bold(true))

	inner := boxW - 2
	rows := boxH - 2
	if len(p.Items) == 0 {
		r.drawRow(x0+1, y0+1, inner, " (none)", style.Foreground(r.theme.HiddenFg))
		return
	}

	start := 0
	if p.Selected >= rows {
		start = p.Selected - rows + 1
	}
	nameWidth := 0
	for _, it := range p.Items {
		if n := textutil.DisplayWidth(it.Name); n > nameWidth {
			nameWidth = n
		}
	}
	if limit := inner / 3; nameWidth > limit {
		nameWidth = limit
	}

	for row := 0; row < rows && start+row < len(p.Items); row++ {
		idx := start + row
		it := p.Items[idx]
		rowStyle := style
		if idx == p.Selected {
			rowStyle = r.selectionStyle()
		}
		name := textutil.PadRight(textutil.Truncate(textutil.SanitizeTerminalText(it.Name), nameWidth), nameWidth)
		detailWidth := inner - nameWidth - 3
		line := " " + name
		if detailWidth > 0 && it.Detail != "" {
			line += "  " + textutil.TruncateLeft(textutil.SanitizeTerminalText(it.Detail), detailWidth)
		}
		r.drawRow(x0+1, y0+1+row, inner, line, rowStyle)
	}
}

func (r *Renderer) drawBox(x0, y0, w, h int, style tcell.Style) {
	x1, y1 := x0+w-1, y0+h-1
	for x := x0 + 1; x < x1; x++ {
		r.screen.SetContent(x, y0, '─', nil, style)
		r.screen.SetContent(x, y1, '─', nil, style)
	}
	for y := y0 + 1; y < y1; y++ {
		r.screen.SetContent(x0, y, '│', nil, style)
		r.screen.SetContent(x1, y, '│', nil, style)
		r.fillRow(x0+1, x1, y, style.Foreground(r.theme.PopupFg))
	}
	r.screen.SetContent(x0, y0, '┌', nil, style)
	r.screen.SetContent(x1, y0, '┐', nil, style)
	r.screen.SetContent(x0, y1, '└', nil, style)
	r.screen.SetContent(x1, y1, '┘', nil, style)
}
