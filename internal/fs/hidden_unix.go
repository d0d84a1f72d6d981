//go:build !windows

package fs

import "strings"

// IsHidden reports dot-files as hidden.
func IsHidden(_ string, name string) bool {
	return strings.HasPrefix(name, ".")
}

// ShouldHideFromListing is a no-op on non-Windows platforms.
func ShouldHideFromListing(_, _ string) bool {
	return false
}
