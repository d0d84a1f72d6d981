package fs

import (
	"os"
	"time"
)

// Metadata is the filesystem detail block shown next to a preview. Zero
// timestamps mean the platform could not report that time.
type Metadata struct {
	Permissions string
	Owner       string
	Size        int64
	Created     time.Time
	Modified    time.Time
	Accessed    time.Time
}

// Stat returns metadata for path following symlinks, along with the raw info.
func Stat(path string) (Metadata, os.FileInfo, error) {
	info, err := os.Stat(path)
	if err != nil {
		return Metadata{}, nil, err
	}
	created, accessed := fileTimes(path, info)
	return Metadata{
		Permissions: PermissionString(info.Mode()),
		Owner:       ownerOf(info),
		Size:        info.Size(),
		Created:     created,
		Modified:    info.ModTime(),
		Accessed:    accessed,
	}, info, nil
}

// FormatTimestamp renders t as RFC 3339, or "" when t is unknown.
func FormatTimestamp(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339)
}
