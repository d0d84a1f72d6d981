//go:build windows

package fs

import "os"

func ownerOf(_ os.FileInfo) string {
	return "-"
}
