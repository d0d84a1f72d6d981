package render

import (
	"github.com/gdamore/tcell/v2"

	"github.com/kk-code-lab/vfm/internal/config"
)

// ColorTheme defines application colors.
type ColorTheme struct {
	Background  tcell.Color
	Foreground  tcell.Color
	SelectionBg tcell.Color
	SelectionFg tcell.Color
	Accent      tcell.Color
	DirectoryFg tcell.Color
	SymlinkFg   tcell.Color
	HiddenFg    tcell.Color
	WarningFg   tcell.Color
	ErrorFg     tcell.Color
	FooterBg    tcell.Color
	FooterFg    tcell.Color
	PopupBg     tcell.Color
	PopupFg     tcell.Color
}

// NewTheme resolves the configured colour names. Empty or unknown names keep
// the built-in colour.
func NewTheme(t config.Theme) ColorTheme {
	base := defaultTheme()
	base.Background = colorOr(t.Background, base.Background)
	base.Foreground = colorOr(t.Foreground, base.Foreground)
	base.SelectionBg = colorOr(t.SelectionBg, base.SelectionBg)
	base.SelectionFg = colorOr(t.SelectionFg, base.SelectionFg)
	base.Accent = colorOr(t.Accent, base.Accent)
	base.DirectoryFg = colorOr(t.Folder, base.DirectoryFg)
	base.WarningFg = colorOr(t.Warning, base.WarningFg)
	base.ErrorFg = colorOr(t.Error, base.ErrorFg)
	base.FooterBg = base.Background
	base.FooterFg = base.Foreground
	base.PopupBg = base.Background
	base.PopupFg = base.Foreground
	return base
}

func defaultTheme() ColorTheme {
	return ColorTheme{
		Background:  tcell.ColorDefault,
		Foreground:  tcell.ColorDefault,
		SelectionBg: tcell.Color33,
		SelectionFg: tcell.ColorWhite,
		Accent:      tcell.ColorAqua,
		DirectoryFg: tcell.Color33,
		SymlinkFg:   tcell.Color51,
		HiddenFg:    tcell.ColorLightSlateGray,
		WarningFg:   tcell.ColorYellow,
		ErrorFg:     tcell.ColorRed,
		FooterBg:    tcell.ColorDefault,
		FooterFg:    tcell.ColorDefault,
		PopupBg:     tcell.ColorDefault,
		PopupFg:     tcell.ColorDefault,
	}
}

func colorOr(name string, fallback tcell.Color) tcell.Color {
	if name == "" {
		return fallback
	}
	if c := tcell.GetColor(name); c != tcell.ColorDefault {
		return c
	}
	return fallback
}
