package render

import (
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/kk-code-lab/vfm/internal/config"
	"github.com/kk-code-lab/vfm/internal/fs"
	"github.com/kk-code-lab/vfm/internal/mismatch"
	"github.com/kk-code-lab/vfm/internal/preview"
	"github.com/kk-code-lab/vfm/internal/state"
)

func newTestRenderer(t *testing.T, w, h int) (*Renderer, tcell.SimulationScreen) {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("init simulation screen: %v", err)
	}
	t.Cleanup(screen.Fini)
	screen.SetSize(w, h)

	cfg := config.Default()
	cfg.Icons.Enabled = false
	return NewRenderer(screen, cfg), screen
}

func rowText(screen tcell.SimulationScreen, y int) string {
	w, _ := screen.Size()
	var b strings.Builder
	for x := 0; x < w; x++ {
		r, _, _, _ := screen.GetContent(x, y)
		if r == 0 {
			r = ' '
		}
		b.WriteRune(r)
	}
	return b.String()
}

func screenText(screen tcell.SimulationScreen) string {
	_, h := screen.Size()
	rows := make([]string, h)
	for y := range rows {
		rows[y] = rowText(screen, y)
	}
	return strings.Join(rows, "\n")
}

func sampleState() state.UiState {
	entries := []fs.Entry{
		{Name: "docs", FullPath: "/home/user/proj/docs", IsDir: true, Mode: 0o755},
		{Name: "main.go", FullPath: "/home/user/proj/main.go", Mode: 0o644, Owner: "user"},
		{Name: "notes.txt", FullPath: "/home/user/proj/notes.txt", Mode: 0o600, Owner: "user"},
	}
	return state.UiState{
		CurrentDir:     "/home/user/proj",
		Parent:         []fs.Entry{{Name: "other", FullPath: "/home/user/other", IsDir: true}, {Name: "proj", FullPath: "/home/user/proj", IsDir: true}},
		ParentSelected: 1,
		Entries:        entries,
		Visible:        []int{0, 1, 2},
		Selected:       1,
		Mode:           state.ModeNormal,
		Hints:          []string{"q quit", "/ search"},
	}
}

func TestComputeLayout(t *testing.T) {
	tests := []struct {
		name        string
		width       int
		sidebar     int
		showPreview bool
	}{
		{name: "narrow terminal shows only the list", width: 40, sidebar: 0, showPreview: false},
		{name: "medium terminal", width: 80, sidebar: 16, showPreview: true},
		{name: "wide terminal", width: 160, sidebar: 28, showPreview: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			layout := computeLayout(tt.width)
			if layout.sidebarWidth != tt.sidebar {
				t.Fatalf("sidebar width = %d, want %d", layout.sidebarWidth, tt.sidebar)
			}
			if layout.showPreview != tt.showPreview {
				t.Fatalf("showPreview = %v, want %v", layout.showPreview, tt.showPreview)
			}
			if layout.mainPanelWidth < minMainPanelWidth && tt.showPreview {
				t.Fatalf("main panel too narrow: %d", layout.mainPanelWidth)
			}
			if tt.showPreview && layout.previewStart+layout.previewWidth != tt.width {
				t.Fatalf("preview ends at %d, want %d", layout.previewStart+layout.previewWidth, tt.width)
			}
			if !tt.showPreview && layout.mainPanelStart+layout.mainPanelWidth != tt.width {
				t.Fatalf("list ends at %d, want %d", layout.mainPanelStart+layout.mainPanelWidth, tt.width)
			}
		})
	}
}

func TestFormatBreadcrumbSegments(t *testing.T) {
	tests := []struct {
		path string
		want []string
	}{
		{path: "", want: []string{"/"}},
		{path: "/", want: []string{"/"}},
		{path: "/home/user/", want: []string{"/", "home", "user"}},
		{path: "relative/dir", want: []string{"relative", "dir"}},
	}
	for _, tt := range tests {
		if diff := cmp.Diff(tt.want, formatBreadcrumbSegments(tt.path)); diff != "" {
			t.Fatalf("segments for %q mismatch (-want +got):\n%s", tt.path, diff)
		}
	}
}

func TestRenderDrawsPanes(t *testing.T) {
	r, screen := newTestRenderer(t, 100, 12)
	ui := sampleState()

	r.Render(ui)

	header := rowText(screen, 0)
	require.Contains(t, header, "vfm")
	require.Contains(t, header, "home › user › proj")

	text := screenText(screen)
	require.Contains(t, text, "docs/")
	require.Contains(t, text, "main.go")
	require.Contains(t, text, " proj")
	require.Contains(t, rowText(screen, 11), "q quit  / search")

	// the selected row uses the selection colours
	_, _, style, _ := screen.GetContent(30, 2)
	fg, bg, _ := style.Decompose()
	require.Equal(t, r.theme.SelectionBg, bg)
	require.Equal(t, r.theme.SelectionFg, fg)
}

func TestRenderListColumns(t *testing.T) {
	r, screen := newTestRenderer(t, 120, 8)
	ui := sampleState()
	ui.View.ListPermissions = true
	ui.View.ListOwner = true

	r.Render(ui)

	require.Contains(t, rowText(screen, 2), "rw-r--r-- user")
}

func TestRenderFooterStates(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*state.UiState)
		want   string
	}{
		{
			name:   "input prompt",
			mutate: func(ui *state.UiState) { ui.Input = &state.Prompt{Title: "Rename", Value: "new.go"} },
			want:   "Rename: new.go█",
		},
		{
			name:   "delete confirmation names the entry",
			mutate: func(ui *state.UiState) { ui.Input = &state.Prompt{Title: "Delete", Confirm: true} },
			want:   "Delete main.go? (y/n)",
		},
		{
			name: "status replaces hints",
			mutate: func(ui *state.UiState) {
				ui.Status = "delete failed: permission denied"
				ui.StatusError = true
			},
			want: "delete failed: permission denied",
		},
		{
			name: "pending prefix",
			mutate: func(ui *state.UiState) {
				ui.Prefix = "settings"
				ui.Hints = []string{"h hidden"}
			},
			want: "settings › h hidden",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, screen := newTestRenderer(t, 80, 10)
			ui := sampleState()
			tt.mutate(&ui)
			r.Render(ui)
			footer := rowText(screen, 9)
			if !strings.Contains(footer, tt.want) {
				t.Fatalf("footer %q does not contain %q", footer, tt.want)
			}
		})
	}
}

func TestRenderPopup(t *testing.T) {
	r, screen := newTestRenderer(t, 90, 16)
	ui := sampleState()
	ui.Mode = state.ModeMarkerList
	ui.Markers = &state.Popup{
		Title:    "Markers",
		Filter:   "n:wo",
		Selected: 0,
		Items:    []state.PopupItem{{Name: "work", Detail: "/srv/work"}},
	}

	r.Render(ui)

	text := screenText(screen)
	require.Contains(t, text, "Markers [n:wo]")
	require.Contains(t, text, "work  /srv/work")
	require.Contains(t, text, "┌")
}

func TestRenderTextPreviewWithMetadata(t *testing.T) {
	r, screen := newTestRenderer(t, 100, 14)
	ui := sampleState()
	ui.View = state.ViewFlags{ShowMetadata: true, ShowPermissions: true, ShowOwner: true}
	ui.Preview = &preview.Preview{
		Path: "/home/user/proj/main.go",
		Kind: preview.Text,
		Text: "package main\n\tfunc main() {}\n",
		Metadata: fs.Metadata{
			Permissions: "-rw-r--r--",
			Owner:       "user",
			Size:        2048,
		},
		Mismatch: &mismatch.Result{Kind: mismatch.Mismatch, Detected: "png", Claimed: "go"},
	}

	r.Render(ui)

	text := screenText(screen)
	require.Contains(t, text, "content is png, extension says .go")
	require.Contains(t, text, "package main")
	require.Contains(t, text, "    func main() {}")
	require.Contains(t, text, "2.0 kB  -rw-r--r--  user")
}

func TestRenderBinaryAndLoadingPreview(t *testing.T) {
	r, screen := newTestRenderer(t, 100, 10)
	ui := sampleState()
	ui.PreviewPending = true
	r.Render(ui)
	require.Contains(t, screenText(screen), "Loading…")

	ui.PreviewPending = false
	ui.Preview = &preview.Preview{Kind: preview.Binary, Size: 1500}
	r.Render(ui)
	require.Contains(t, screenText(screen), "binary file, 1.5 kB")
}

func TestIconFor(t *testing.T) {
	r := NewRenderer(nil, nil)
	r.icons = config.Icons{
		Enabled: true, Folder: "D", File: "F", Text: "T", Image: "I",
		Video: "V", Audio: "A", Archive: "Z", Symlink: "L", Unknown: "?",
	}

	tests := []struct {
		entry fs.Entry
		want  string
	}{
		{fs.Entry{Name: "src", IsDir: true}, "D"},
		{fs.Entry{Name: "link", IsSymlink: true, IsDir: true}, "L"},
		{fs.Entry{Name: "README.md"}, "T"},
		{fs.Entry{Name: "photo.PNG"}, "I"},
		{fs.Entry{Name: "clip.mp4"}, "V"},
		{fs.Entry{Name: "song.mp3"}, "A"},
		{fs.Entry{Name: "bundle.zip"}, "Z"},
		{fs.Entry{Name: "Makefile"}, "F"},
		{fs.Entry{Name: "data.qqq"}, "?"},
	}
	for _, tt := range tests {
		if got := r.iconFor(tt.entry); got != tt.want {
			t.Fatalf("iconFor(%q) = %q, want %q", tt.entry.Name, got, tt.want)
		}
	}

	r.icons.Enabled = false
	if got := r.iconFor(fs.Entry{Name: "src", IsDir: true}); got != "" {
		t.Fatalf("disabled icons should be empty, got %q", got)
	}
}

func TestNewThemeFallsBackOnUnknownColours(t *testing.T) {
	theme := NewTheme(config.Theme{Accent: "red", Folder: "not-a-colour"})
	if theme.Accent != tcell.ColorRed {
		t.Fatalf("accent = %v, want red", theme.Accent)
	}
	if theme.DirectoryFg != defaultTheme().DirectoryFg {
		t.Fatalf("unknown colour should keep the default, got %v", theme.DirectoryFg)
	}
}
