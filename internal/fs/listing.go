package fs

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
)

// DefaultBatchSize bounds how many entries travel in one listing event.
const DefaultBatchSize = 512

// Batch is one slice of a streamed directory listing. The final batch of a
// stream has Done set and carries no entries.
type Batch struct {
	Entries []Entry
	Done    bool
}

// StreamDir reads dir in batches of at most size entries and hands each one to
// emit, finishing with an empty Done batch. A read failure still produces the
// Done batch so callers observe an empty (or partial) listing; the error is
// returned for logging only.
func StreamDir(dir string, size int, emit func(Batch)) error {
	if size <= 0 {
		size = DefaultBatchSize
	}
	defer emit(Batch{Done: true})

	f, err := os.Open(dir)
	if err != nil {
		return fmt.Errorf("cannot read directory %s: %w", dir, err)
	}
	defer func() {
		_ = f.Close()
	}()

	for {
		dirEntries, readErr := f.ReadDir(size)
		if len(dirEntries) > 0 {
			batch := make([]Entry, 0, len(dirEntries))
			for _, de := range dirEntries {
				if entry, ok := entryFromDirEntry(dir, de); ok {
					batch = append(batch, entry)
				}
			}
			if len(batch) > 0 {
				emit(Batch{Entries: batch})
			}
		}
		if readErr != nil {
			if errors.Is(readErr, io.EOF) {
				return nil
			}
			return fmt.Errorf("cannot read directory %s: %w", dir, readErr)
		}
	}
}

// SortEntries orders directories first, then by case-insensitive name.
func SortEntries(entries []Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].IsDir != entries[j].IsDir {
			return entries[i].IsDir
		}
		return strings.ToLower(entries[i].Name) < strings.ToLower(entries[j].Name)
	})
}
