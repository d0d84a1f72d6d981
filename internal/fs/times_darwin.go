//go:build darwin

package fs

import (
	"os"
	"syscall"
	"time"
)

func fileTimes(_ string, info os.FileInfo) (created, accessed time.Time) {
	st, ok := info.Sys().(*syscall.Stat_t)
	if !ok || st == nil {
		return time.Time{}, time.Time{}
	}
	return time.Unix(st.Birthtimespec.Unix()), time.Unix(st.Atimespec.Unix())
}
