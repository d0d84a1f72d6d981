//go:build windows

package shellsetup

import (
	"errors"
	"os"

	"golang.org/x/sys/windows"
)

// DetectParentShellName returns the image path of the parent process, which
// normalizeShellName reduces to a shell name. It returns "" on failure.
func DetectParentShellName() string {
	ppid := os.Getppid()
	if ppid <= 0 {
		return ""
	}

	handle, err := windows.OpenProcess(windows.PROCESS_QUERY_LIMITED_INFORMATION, false, uint32(ppid))
	if err != nil {
		return ""
	}
	defer windows.CloseHandle(handle)

	buf := make([]uint16, windows.MAX_PATH)
	for len(buf) <= 32*1024 {
		size := uint32(len(buf))
		err = windows.QueryFullProcessImageName(handle, 0, &buf[0], &size)
		if err == nil {
			return windows.UTF16ToString(buf[:size])
		}
		if !errors.Is(err, windows.ERROR_INSUFFICIENT_BUFFER) {
			return ""
		}
		buf = make([]uint16, len(buf)*2)
	}
	return ""
}
