package render

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/gdamore/tcell/v2"

	"github.com/kk-code-lab/vfm/internal/fs"
	"github.com/kk-code-lab/vfm/internal/highlight"
	"github.com/kk-code-lab/vfm/internal/imaging"
	"github.com/kk-code-lab/vfm/internal/mismatch"
	"github.com/kk-code-lab/vfm/internal/preview"
	"github.com/kk-code-lab/vfm/internal/state"
	"github.com/kk-code-lab/vfm/internal/textutil"
)

const previewInnerPadding = 1

// drawPreviewPanel renders the preview pane between the header and footer.
func (r *Renderer) drawPreviewPanel(ui state.UiState, startX, width, h int) {
	base := r.baseStyle()
	for y := 1; y < h-1; y++ {
		r.fillRow(startX, startX+width, y, base)
	}

	x := startX + previewInnerPadding
	inner := width - previewInnerPadding*2
	top, bottom := 1, h-1
	if inner <= 0 || bottom <= top {
		return
	}

	p := ui.Preview
	if p == nil {
		if ui.PreviewPending {
			r.drawTextLine(x, top, inner, "Loading…", base.Foreground(r.theme.Accent))
		}
		return
	}

	if ui.View.ShowMetadata {
		lines := metadataLines(p, ui.View)
		if len(lines) > 0 && bottom-len(lines)-1 > top {
			metaStyle := base.Foreground(r.theme.HiddenFg)
			y := bottom - len(lines)
			for i := x; i < x+inner; i++ {
				r.screen.SetContent(i, y-1, '─', nil, metaStyle)
			}
			for _, line := range lines {
				r.drawTextLine(x, y, inner, textutil.Truncate(line, inner), metaStyle)
				y++
			}
			bottom -= len(lines) + 1
		}
	}

	if p.Mismatch != nil && p.Mismatch.Kind == mismatch.Mismatch {
		warn := mismatchWarning(*p.Mismatch)
		r.drawTextLine(x, top, inner, textutil.Truncate(warn, inner), base.Foreground(r.theme.WarningFg).Bold(true))
		top++
	}
	if top >= bottom {
		return
	}

	area := imaging.Rect{X: x, Y: top, W: inner, H: bottom - top}
	info := base.Foreground(r.theme.HiddenFg)

	switch p.Kind {
	case preview.Text:
		if len(p.Highlighted) > 0 {
			r.drawHighlighted(p.Highlighted, area, base)
		} else {
			r.drawPlainText(p.Text, area, base)
		}
		if p.Truncated {
			r.drawTextLine(x, bottom-1, inner, textutil.PadRight("… truncated", inner), info)
		}
	case preview.Image:
		if ui.Image == nil {
			r.drawTextLine(x, top, inner, fmt.Sprintf("image %d×%d", p.Width, p.Height), info)
			return
		}
		ui.Image.Render(r.screen, area)
		if ui.Image.Pending() {
			r.drawTextLine(x, top, inner, "Rendering…", base.Foreground(r.theme.Accent))
		}
	case preview.Binary:
		r.drawTextLine(x, top, inner, textutil.Truncate("binary file, "+humanize.Bytes(uint64(p.Size)), inner), info)
	default:
		label := "empty file"
		if ui.Selected >= 0 && ui.Selected < len(ui.Visible) && ui.Entries[ui.Visible[ui.Selected]].IsDir {
			label = "directory"
		}
		r.drawTextLine(x, top, inner, label, info)
	}
}

func mismatchWarning(m mismatch.Result) string {
	return fmt.Sprintf("⚠ content is %s, extension says .%s", m.Detected, m.Claimed)
}

// metadataLines builds the detail block under the preview.
func metadataLines(p *preview.Preview, view state.ViewFlags) []string {
	m := p.Metadata
	var head []string
	head = append(head, humanize.Bytes(uint64(m.Size)))
	if view.ShowPermissions && m.Permissions != "" {
		head = append(head, m.Permissions)
	}
	if view.ShowOwner && m.Owner != "" {
		head = append(head, m.Owner)
	}
	lines := []string{strings.Join(head, "  ")}

	if view.ShowDates {
		for _, d := range []struct {
			label string
			value string
		}{
			{"Modified", fs.FormatTimestamp(m.Modified)},
			{"Created ", fs.FormatTimestamp(m.Created)},
			{"Accessed", fs.FormatTimestamp(m.Accessed)},
		} {
			if d.value != "" {
				lines = append(lines, d.label+" "+d.value)
			}
		}
	}
	return lines
}

func previewLines(text string) []string {
	lines := strings.Split(text, "\n")
	if n := len(lines); n > 0 && lines[n-1] == "" {
		lines = lines[:n-1]
	}
	return lines
}

func (r *Renderer) drawPlainText(text string, area imaging.Rect, style tcell.Style) {
	for i, line := range previewLines(text) {
		if i >= area.H {
			break
		}
		line = textutil.SanitizeTerminalText(textutil.ExpandTabs(strings.TrimRight(line, "\r"), textutil.DefaultTabWidth))
		r.drawTextLine(area.X, area.Y+i, area.W, line, style)
	}
}

// drawHighlighted draws chroma segments clipped to area. Tabs are expanded
// against the running column so stops line up across segments.
func (r *Renderer) drawHighlighted(lines []highlight.Line, area imaging.Rect, base tcell.Style) {
	for i, line := range lines {
		if i >= area.H {
			break
		}
		x := area.X
		maxX := area.X + area.W
		for _, seg := range line {
			if x >= maxX {
				break
			}
			style := seg.Style
			if _, bg, _ := style.Decompose(); bg == tcell.ColorDefault {
				_, baseBg, _ := base.Decompose()
				style = style.Background(baseBg)
			}
			parts := strings.Split(strings.TrimRight(seg.Text, "\r"), "\t")
			for j, part := range parts {
				if j > 0 {
					col := x - area.X
					spaces := textutil.DefaultTabWidth - col%textutil.DefaultTabWidth
					for k := 0; k < spaces && x < maxX; k++ {
						r.screen.SetContent(x, area.Y+i, ' ', nil, style)
						x++
					}
				}
				x = r.drawTextLine(x, area.Y+i, maxX-x, textutil.SanitizeTerminalText(part), style)
			}
		}
	}
}
