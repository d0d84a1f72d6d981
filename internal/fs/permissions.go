package fs

import "os"

// PermissionString renders mode as the nine-character rwx form, folding the
// setuid, setgid and sticky bits into the execute columns the way ls does.
func PermissionString(mode os.FileMode) string {
	out := make([]byte, 0, 9)
	triplet := func(bits os.FileMode, special bool, set, unset byte) {
		out = append(out, flag(bits&4 != 0, 'r'), flag(bits&2 != 0, 'w'))
		exec := bits&1 != 0
		switch {
		case exec && special:
			out = append(out, set)
		case special:
			out = append(out, unset)
		case exec:
			out = append(out, 'x')
		default:
			out = append(out, '-')
		}
	}
	perm := mode.Perm()
	triplet(perm>>6, mode&os.ModeSetuid != 0, 's', 'S')
	triplet(perm>>3, mode&os.ModeSetgid != 0, 's', 'S')
	triplet(perm, mode&os.ModeSticky != 0, 't', 'T')
	return string(out)
}

func flag(on bool, c byte) byte {
	if on {
		return c
	}
	return '-'
}
