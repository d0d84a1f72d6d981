package markers

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

func quietLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func TestRenameIsIdempotentSafe(t *testing.T) {
	s := Load(filepath.Join(t.TempDir(), "markers.toml"), quietLogger())
	s.Set("a", "/srv/a")

	require.False(t, s.Rename("a", "a"))
	require.False(t, s.Rename("missing", "b"))

	require.True(t, s.Rename("a", "b"))
	_, ok := s.Get("a")
	require.False(t, ok)
	got, ok := s.Get("b")
	require.True(t, ok)
	require.Equal(t, "/srv/a", got)
	s.Wait()
}

func TestPersistRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "markers.toml")
	s := Load(path, quietLogger())
	s.Set("home", "/home/user")
	s.Set("etc", "/etc")
	s.Set("tmp", "/tmp")
	require.True(t, s.Remove("tmp"))
	require.False(t, s.Remove("tmp"))
	s.Wait()

	reloaded := Load(path, quietLogger())
	want := []Marker{{Name: "etc", Path: "/etc"}, {Name: "home", Path: "/home/user"}}
	if diff := cmp.Diff(want, reloaded.Entries()); diff != "" {
		t.Fatalf("reloaded markers mismatch (-want +got):\n%s", diff)
	}
}

func TestLastSaveWins(t *testing.T) {
	path := filepath.Join(t.TempDir(), "markers.toml")
	s := Load(path, quietLogger())
	for i := 0; i < 50; i++ {
		s.Set("k", filepath.Join("/p", string(rune('a'+i%26))))
	}
	s.Set("final", "/done")
	s.Wait()

	reloaded := Load(path, quietLogger())
	got, ok := reloaded.Get("final")
	require.True(t, ok)
	require.Equal(t, "/done", got)
	require.Equal(t, 2, reloaded.Len())
}

func TestLoadToleratesMissingAndCorruptFiles(t *testing.T) {
	dir := t.TempDir()
	missing := Load(filepath.Join(dir, "none.toml"), quietLogger())
	require.Equal(t, 0, missing.Len())

	corrupt := filepath.Join(dir, "bad.toml")
	require.NoError(t, os.WriteFile(corrupt, []byte("markers = [not toml"), 0o644))
	require.Equal(t, 0, Load(corrupt, quietLogger()).Len())
}

func TestLoadTrimsNamesAndSkipsBlank(t *testing.T) {
	path := filepath.Join(t.TempDir(), "markers.toml")
	content := "[markers]\n\" w \" = \"/work\"\n\" \" = \"/blank\"\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	s := Load(path, quietLogger())
	got, ok := s.Get("w")
	require.True(t, ok)
	require.Equal(t, "/work", got)
	require.Equal(t, 1, s.Len())
}

func TestEntriesSortCaseInsensitive(t *testing.T) {
	s := Load(filepath.Join(t.TempDir(), "m.toml"), quietLogger())
	s.Set("beta", "/b")
	s.Set("Alpha", "/a")
	s.Set("gamma", "/g")
	s.Wait()

	var names []string
	for _, m := range s.Entries() {
		names = append(names, m.Name)
	}
	if diff := cmp.Diff([]string{"Alpha", "beta", "gamma"}, names); diff != "" {
		t.Fatalf("order mismatch (-want +got):\n%s", diff)
	}
}
