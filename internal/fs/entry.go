package fs

import (
	"os"
	"path/filepath"

	"golang.org/x/text/unicode/norm"
)

// Entry represents a single file or directory on disk. Entries are built once
// by the listing producer and never mutated afterwards.
type Entry struct {
	Name      string
	FullPath  string
	IsDir     bool
	IsSymlink bool
	Mode      os.FileMode
	Owner     string
}

// IsHidden reports whether the entry should be treated as hidden.
func (e Entry) IsHidden() bool {
	return IsHidden(e.FullPath, e.Name)
}

// Permissions renders the entry mode as an rwx string.
func (e Entry) Permissions() string {
	return PermissionString(e.Mode)
}

// entryFromDirEntry resolves symlinks to decide whether the entry should be
// navigable like a directory.
func entryFromDirEntry(dir string, de os.DirEntry) (Entry, bool) {
	info, err := de.Info()
	if err != nil {
		return Entry{}, false
	}

	rawName := de.Name()
	fullPath := filepath.Join(dir, rawName)
	if ShouldHideFromListing(fullPath, rawName) {
		return Entry{}, false
	}

	isDir := de.IsDir()
	isSymlink := info.Mode()&os.ModeSymlink != 0
	if isSymlink {
		if target, err := os.Stat(fullPath); err == nil {
			isDir = target.IsDir()
		}
	}

	return Entry{
		Name:      norm.NFC.String(rawName),
		FullPath:  fullPath,
		IsDir:     isDir,
		IsSymlink: isSymlink,
		Mode:      info.Mode(),
		Owner:     ownerOf(info),
	}, true
}
