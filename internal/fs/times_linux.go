//go:build linux

package fs

import (
	"os"
	"time"

	"golang.org/x/sys/unix"
)

// fileTimes uses statx so the birth time is available on filesystems that
// record it.
func fileTimes(path string, _ os.FileInfo) (created, accessed time.Time) {
	var stx unix.Statx_t
	if err := unix.Statx(unix.AT_FDCWD, path, 0, unix.STATX_BTIME|unix.STATX_ATIME, &stx); err != nil {
		return time.Time{}, time.Time{}
	}
	if stx.Mask&unix.STATX_BTIME != 0 {
		created = time.Unix(stx.Btime.Sec, int64(stx.Btime.Nsec))
	}
	if stx.Mask&unix.STATX_ATIME != 0 {
		accessed = time.Unix(stx.Atime.Sec, int64(stx.Atime.Nsec))
	}
	return created, accessed
}
