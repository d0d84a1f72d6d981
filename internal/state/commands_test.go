package state

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/kk-code-lab/vfm/internal/config"
)

func selectByName(t *testing.T, h *harness, name string) {
	t.Helper()
	for i := 0; i < len(h.s.visible); i++ {
		if h.selectedName() == name {
			return
		}
		h.press("j")
	}
	if h.selectedName() != name {
		t.Fatalf("entry %q not found, at %q", name, h.selectedName())
	}
}

// ===== PREFIXES =====

func TestPrefixEscapeCancels(t *testing.T) {
	h := newHarness(t, sampleTree(t))
	h.settle()

	h.press("s")
	require.Equal(t, "settings", h.s.Snapshot().Prefix)
	h.press("esc")
	require.Equal(t, "", h.s.Snapshot().Prefix)
	require.Equal(t, "sub", h.selectedName())
}

func TestUnmatchedPrefixKeyFallsBackToNormal(t *testing.T) {
	h := newHarness(t, sampleTree(t))
	h.settle()

	h.press("s", "j")
	require.Equal(t, PrefixNone, h.s.prefix)
	require.Equal(t, "a.txt", h.selectedName())
}

func TestSettingsTogglesMetadata(t *testing.T) {
	h := newHarness(t, sampleTree(t))
	h.settle()
	before := h.s.Snapshot().View

	h.press("s", "p")
	after := h.s.Snapshot().View
	require.True(t, after.ShowMetadata)
	require.Equal(t, !before.ShowPermissions, after.ShowPermissions)

	h.press("v", "o")
	require.True(t, h.s.Snapshot().View.ListOwner)
}

// ===== INPUT =====

func TestSearchFilterRoundTrip(t *testing.T) {
	h := newHarness(t, sampleTree(t))
	h.settle()

	h.press("/")
	require.Equal(t, ModeInput, h.s.Mode())
	require.Equal(t, "Search (regex)", h.s.Snapshot().Input.Title)

	h.typeText("^b")
	require.Equal(t, []string{"b.txt"}, h.visibleNames())
	require.Equal(t, "b.txt", h.selectedName())

	h.press("backspace")
	require.Equal(t, []string{"sub", "a.txt", "b.txt"}, h.visibleNames())

	h.typeText("a")
	h.press("enter")
	require.Equal(t, ModeNormal, h.s.Mode())
	require.Equal(t, "^a", h.s.Snapshot().Filter)
	require.Equal(t, []string{"a.txt"}, h.visibleNames())

	h.press("/")
	require.Equal(t, "^a", h.s.Snapshot().Input.Value)
	h.press("esc")
	require.Equal(t, "", h.s.Snapshot().Filter)
	require.Equal(t, []string{"sub", "a.txt", "b.txt"}, h.visibleNames())
	require.Equal(t, "a.txt", h.selectedName())
}

func TestAddFileFeedsFirstKey(t *testing.T) {
	dir := sampleTree(t)
	h := newHarness(t, dir)
	h.settle()

	h.press("a", "n")
	require.Equal(t, "Add File", h.s.Snapshot().Input.Title)
	require.Equal(t, "n", h.s.Snapshot().Input.Value)
	h.typeText("ew.md")
	h.press("enter")
	h.settle()

	require.FileExists(t, filepath.Join(dir, "new.md"))
	require.Equal(t, "new.md", h.selectedName())
}

func TestAddDirectory(t *testing.T) {
	dir := sampleTree(t)
	h := newHarness(t, dir)
	h.settle()

	h.press("a", "d")
	require.Equal(t, "Add Dir", h.s.Snapshot().Input.Title)
	h.typeText("notes")
	h.press("enter")
	h.settle()

	require.DirExists(t, filepath.Join(dir, "notes"))
	require.Equal(t, "notes", h.selectedName())
}

func TestAddExistingFileReportsError(t *testing.T) {
	dir := sampleTree(t)
	h := newHarness(t, dir)
	h.settle()

	h.press("a", "a")
	h.typeText(".txt")
	h.press("enter")
	h.settle()

	ui := h.s.Snapshot()
	require.True(t, ui.StatusError)
	content, err := os.ReadFile(filepath.Join(dir, "a.txt"))
	require.NoError(t, err)
	require.Equal(t, "ay\n", string(content))
}

func TestRenamePrefillsAndSelectsResult(t *testing.T) {
	dir := sampleTree(t)
	h := newHarness(t, dir)
	h.settle()
	selectByName(t, h, "b.txt")

	h.press("r")
	require.Equal(t, "b.txt", h.s.Snapshot().Input.Value)
	h.press("backspace", "backspace", "backspace", "backspace")
	h.typeText("md")
	h.press("enter")
	h.settle()

	require.NoFileExists(t, filepath.Join(dir, "b.txt"))
	require.FileExists(t, filepath.Join(dir, "b.md"))
	require.Equal(t, "b.md", h.selectedName())
}

func TestDeleteNeedsConfirmation(t *testing.T) {
	dir := sampleTree(t)
	h := newHarness(t, dir)
	h.settle()
	selectByName(t, h, "a.txt")

	h.press("d", "d")
	ui := h.s.Snapshot()
	require.NotNil(t, ui.Input)
	require.True(t, ui.Input.Confirm)

	h.press("x")
	require.Equal(t, ModeInput, h.s.Mode())
	h.press("n")
	require.Equal(t, ModeNormal, h.s.Mode())
	require.FileExists(t, filepath.Join(dir, "a.txt"))

	h.press("d", "d", "Y")
	h.settle()
	require.NoFileExists(t, filepath.Join(dir, "a.txt"))
	require.Equal(t, []string{"sub", "b.txt"}, h.visibleNames())
}

// ===== CLIPBOARD =====

func TestCopyPasteSelectsDestination(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "x.txt"), "payload")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "d"), 0o755))
	h := newHarness(t, dir)
	h.settle()

	selectByName(t, h, "x.txt")
	h.press("y", "esc")
	require.Equal(t, &Clipboard{Path: filepath.Join(dir, "x.txt"), Mode: ClipCopy}, h.s.Snapshot().Clipboard)

	h.press("k", "l")
	h.settle()
	require.Equal(t, filepath.Join(dir, "d"), h.s.CurrentDir())

	h.press("p")
	h.settle()

	require.Equal(t, filepath.Join(dir, "d", "x.txt"), h.s.selectedPath())
	require.FileExists(t, filepath.Join(dir, "x.txt"))
	require.NotNil(t, h.s.Snapshot().Clipboard)
}

func TestCutPasteMovesAndClearsClipboard(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "x.txt"), "payload")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "d"), 0o755))
	h := newHarness(t, dir)
	h.settle()

	selectByName(t, h, "x.txt")
	h.press("x", "k", "l")
	h.settle()
	h.press("p")
	h.settle()

	require.NoFileExists(t, filepath.Join(dir, "x.txt"))
	require.FileExists(t, filepath.Join(dir, "d", "x.txt"))
	require.Equal(t, "x.txt", h.selectedName())
	require.Nil(t, h.s.Snapshot().Clipboard)
}

func TestCopyPathUsesSystemClipboard(t *testing.T) {
	dir := sampleTree(t)
	var copied string
	h := newHarness(t, dir, func(_ *Options, svc *Services) {
		svc.CopyText = func(text string) error {
			copied = text
			return nil
		}
	})
	h.settle()

	h.press("y", "p")
	h.settle()
	require.Equal(t, filepath.Join(dir, "sub"), copied)
	require.Contains(t, h.s.Snapshot().Status, "copied")
}

// ===== MARKERS =====

func TestMarkerSetAndJump(t *testing.T) {
	dir := sampleTree(t)
	h := newHarness(t, dir)
	h.settle()

	h.press("m")
	h.typeText("top")
	h.press("enter")
	target, ok := h.s.markers.Get("top")
	require.True(t, ok)
	require.Equal(t, dir, target)

	h.press("l")
	h.settle()
	require.Equal(t, filepath.Join(dir, "sub"), h.s.CurrentDir())

	h.press("'")
	h.typeText("top")
	h.press("enter")
	h.settle()
	require.Equal(t, dir, h.s.CurrentDir())
	require.Equal(t, "sub", h.selectedName())
}

func TestMarkerRenameOutOfFilterLeavesEmptyList(t *testing.T) {
	h := newHarness(t, sampleTree(t))
	h.settle()
	h.s.markers.Set("home", "/srv/data")
	h.s.markers.Set("work", "/srv/work")

	h.press("M")
	require.Equal(t, ModeMarkerList, h.s.Mode())
	h.press("/")
	require.Equal(t, "Search Markers (n:/p:)", h.s.Snapshot().Input.Title)
	h.typeText("home")
	h.press("enter")
	require.Equal(t, ModeMarkerList, h.s.Mode())
	require.Len(t, h.s.Snapshot().Markers.Items, 1)

	h.press("r")
	require.Equal(t, "home", h.s.Snapshot().Input.Value)
	h.press("backspace", "backspace", "backspace")
	h.press("enter")

	ui := h.s.Snapshot()
	require.Equal(t, ModeMarkerList, ui.Mode)
	require.Empty(t, ui.Markers.Items)
	require.Equal(t, 0, ui.Markers.Selected)
	target, ok := h.s.markers.Get("h")
	require.True(t, ok)
	require.Equal(t, "/srv/data", target)
}

func TestMarkerListCreateDeleteAndOpen(t *testing.T) {
	dir := sampleTree(t)
	h := newHarness(t, dir)
	h.settle()

	h.press("M", "a")
	h.typeText("s")
	h.press("enter")
	ui := h.s.Snapshot()
	require.Equal(t, "New Marker Path", ui.Input.Title)
	require.Equal(t, dir, ui.Input.Value)
	h.typeText(string(filepath.Separator) + "sub")
	h.press("enter")

	ui = h.s.Snapshot()
	require.Equal(t, ModeMarkerList, ui.Mode)
	require.Equal(t, []PopupItem{{Name: "s", Detail: filepath.Join(dir, "sub")}}, ui.Markers.Items)

	h.press("enter")
	h.settle()
	require.Equal(t, ModeNormal, h.s.Mode())
	require.Equal(t, filepath.Join(dir, "sub"), h.s.CurrentDir())

	h.press("M", "d")
	require.Empty(t, h.s.Snapshot().Markers.Items)
	h.press("q")
	require.Equal(t, ModeNormal, h.s.Mode())
}

func TestParseMarkerQuery(t *testing.T) {
	tests := []struct {
		raw   string
		field markerField
		query string
	}{
		{"", markerAny, ""},
		{"  Home ", markerAny, "home"},
		{"n:Docs", markerName, "docs"},
		{"name/ x", markerName, "x"},
		{"p:/srv", markerPath, "/srv"},
		{"path:", markerPath, ""},
	}
	for _, tt := range tests {
		field, query := parseMarkerQuery(tt.raw)
		if field != tt.field || query != tt.query {
			t.Errorf("parseMarkerQuery(%q) = %v, %q; want %v, %q", tt.raw, field, query, tt.field, tt.query)
		}
	}
}

// ===== PROGRAMS =====

func TestOpenWithQuickResolvesProgram(t *testing.T) {
	cfg := config.Default()
	cfg.OpenWith.Quick = map[string]string{"1": "VIM"}
	dir := sampleTree(t)
	h := newHarness(t, dir, withConfig(cfg), withPrograms(Program{Name: "vim", Path: "/usr/bin/vim"}))
	h.settle()

	eff := h.press("o", "1")
	require.NotNil(t, eff.Suspend)
	want := SuspendAction{Kind: SuspendOpenWith, Program: "/usr/bin/vim", Path: filepath.Join(dir, "sub"), Dir: dir}
	if diff := cmp.Diff(want, *eff.Suspend); diff != "" {
		t.Fatalf("suspend action mismatch (-want +got):\n%s", diff)
	}

	eff = h.press("o", "2")
	require.Nil(t, eff.Suspend)
	require.Contains(t, h.s.Snapshot().Status, "no program")
}

func TestProgramListFiltersAndOpens(t *testing.T) {
	dir := sampleTree(t)
	h := newHarness(t, dir, withPrograms(
		Program{Name: "less", Path: "/usr/bin/less"},
		Program{Name: "vim", Path: "/usr/bin/vim"},
	))
	h.settle()

	h.press("O")
	require.Len(t, h.s.Snapshot().Programs.Items, 2)
	h.typeText("vi")
	require.Equal(t, []PopupItem{{Name: "vim", Detail: "/usr/bin/vim"}}, h.s.Snapshot().Programs.Items)
	h.press("backspace", "backspace")
	require.Len(t, h.s.Snapshot().Programs.Items, 2)
	h.typeText("m")

	eff := h.press("enter")
	require.NotNil(t, eff.Suspend)
	require.Equal(t, "/usr/bin/vim", eff.Suspend.Program)
	require.Equal(t, ModeNormal, h.s.Mode())

	h.settle()
	h.s.SuspendFinished(*eff.Suspend, nil)
	h.settle()
	require.Equal(t, "sub", h.selectedName())
}

func TestShellSuspendCarriesDirectory(t *testing.T) {
	dir := sampleTree(t)
	h := newHarness(t, dir)
	h.settle()

	eff := h.press("S")
	require.Equal(t, &SuspendAction{Kind: SuspendShell, Dir: dir}, eff.Suspend)
}

func TestStopSuspendsJobAndRelistsOnResume(t *testing.T) {
	dir := sampleTree(t)
	h := newHarness(t, dir)
	h.settle()

	eff := h.press("ctrl+z")
	require.Equal(t, &SuspendAction{Kind: SuspendJob, Dir: dir}, eff.Suspend)

	before := h.selectedName()
	h.s.SuspendFinished(*eff.Suspend, errors.New("stopped"))
	h.settle()
	ui := h.s.Snapshot()
	require.True(t, ui.StatusError)
	require.True(t, strings.HasPrefix(ui.Status, "suspend failed"), "status %q", ui.Status)
	require.Equal(t, before, h.selectedName())
}

func TestScanProgramsFirstPathEntryWins(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("executable bits are not used on windows")
	}
	first, second := t.TempDir(), t.TempDir()
	writeExec := func(dir, name string, mode os.FileMode) {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("#!/bin/sh\n"), mode))
	}
	writeExec(first, "tool", 0o755)
	writeExec(first, "notes", 0o644)
	writeExec(second, "tool", 0o755)
	writeExec(second, "Alpha", 0o755)

	got := ScanPrograms(first + string(os.PathListSeparator) + second)
	want := []Program{
		{Name: "Alpha", Path: filepath.Join(second, "Alpha")},
		{Name: "tool", Path: filepath.Join(first, "tool")},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("ScanPrograms mismatch (-want +got):\n%s", diff)
	}
}
