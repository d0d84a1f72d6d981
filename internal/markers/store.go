// Package markers keeps the named bookmark table and persists it to a TOML
// file in the background.
package markers

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/BurntSushi/toml"
	"github.com/sirupsen/logrus"
)

// Marker is a single named bookmark.
type Marker struct {
	Name string
	Path string
}

type markerFile struct {
	Markers map[string]string `toml:"markers"`
}

// Store maps marker names to absolute paths. It is owned by the session loop
// and not safe for concurrent mutation; persistence runs on its own
// goroutines against snapshots.
type Store struct {
	path    string
	markers map[string]string
	log     logrus.FieldLogger

	seq     uint64
	writeMu sync.Mutex
	written uint64
	pending sync.WaitGroup
}

// DefaultPath returns <config dir>/vfm/markers.toml, falling back to the home
// directory and finally the working directory.
func DefaultPath() string {
	if dir, err := os.UserConfigDir(); err == nil && dir != "" {
		return filepath.Join(dir, "vfm", "markers.toml")
	}
	if home, err := os.UserHomeDir(); err == nil && home != "" {
		return filepath.Join(home, ".vfm.markers.toml")
	}
	return "markers.toml"
}

// Load reads the marker file at path. A missing or unparsable file yields an
// empty store; an empty path keeps markers in memory only.
func Load(path string, log logrus.FieldLogger) *Store {
	if log == nil {
		log = logrus.StandardLogger()
	}
	s := &Store{path: path, markers: map[string]string{}, log: log}
	if path == "" {
		return s
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.WithError(err).WithField("path", path).Warn("cannot read markers")
		}
		return s
	}

	var file markerFile
	if _, err := toml.Decode(string(data), &file); err != nil {
		log.WithError(err).WithField("path", path).Warn("ignoring malformed markers file")
		return s
	}
	for name, target := range file.Markers {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		s.markers[name] = target
	}
	return s
}

// Path is the file the store persists to.
func (s *Store) Path() string {
	return s.path
}

// Get returns the path stored under name.
func (s *Store) Get(name string) (string, bool) {
	target, ok := s.markers[name]
	return target, ok
}

// Set inserts or overwrites name.
func (s *Store) Set(name, target string) {
	s.markers[name] = target
	s.save()
}

// Remove deletes name, reporting whether it existed.
func (s *Store) Remove(name string) bool {
	if _, ok := s.markers[name]; !ok {
		return false
	}
	delete(s.markers, name)
	s.save()
	return true
}

// Rename moves the marker old to new. Renaming onto itself or renaming a
// missing marker returns false and changes nothing.
func (s *Store) Rename(old, new string) bool {
	if old == new {
		return false
	}
	target, ok := s.markers[old]
	if !ok {
		return false
	}
	delete(s.markers, old)
	s.markers[new] = target
	s.save()
	return true
}

// Len is the number of markers.
func (s *Store) Len() int {
	return len(s.markers)
}

// Entries lists markers sorted case-insensitively by name.
func (s *Store) Entries() []Marker {
	out := make([]Marker, 0, len(s.markers))
	for name, target := range s.markers {
		out = append(out, Marker{Name: name, Path: target})
	}
	sort.Slice(out, func(i, j int) bool {
		li, lj := strings.ToLower(out[i].Name), strings.ToLower(out[j].Name)
		if li != lj {
			return li < lj
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// Wait blocks until every scheduled save has finished.
func (s *Store) Wait() {
	s.pending.Wait()
}

// save snapshots the map and writes it on a detached goroutine. Saves carry a
// sequence number so an older snapshot finishing late never overwrites a
// newer one.
func (s *Store) save() {
	if s.path == "" {
		return
	}
	s.seq++
	seq := s.seq
	snapshot := make(map[string]string, len(s.markers))
	for name, target := range s.markers {
		snapshot[name] = target
	}

	s.pending.Add(1)
	go func() {
		defer s.pending.Done()
		if err := s.write(seq, snapshot); err != nil {
			s.log.WithError(err).WithField("path", s.path).Warn("cannot save markers")
		}
	}()
}

func (s *Store) write(seq uint64, snapshot map[string]string) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	if seq <= s.written {
		return nil
	}

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(markerFile{Markers: snapshot}); err != nil {
		return fmt.Errorf("encode markers: %w", err)
	}
	if err := writeFileAtomic(s.path, buf.Bytes()); err != nil {
		return err
	}
	s.written = seq
	return nil
}

func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create marker dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".markers-*.toml")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("write markers: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("close markers: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("replace markers: %w", err)
	}
	return nil
}
