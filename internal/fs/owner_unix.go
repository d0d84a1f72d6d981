//go:build !windows

package fs

import (
	"os"
	"os/user"
	"strconv"
	"sync"
	"syscall"
)

var ownerNames sync.Map // "u:<id>" / "g:<id>" -> resolved name

func ownerOf(info os.FileInfo) string {
	st, ok := info.Sys().(*syscall.Stat_t)
	if !ok || st == nil {
		return "-"
	}
	return lookupName("u", st.Uid) + ":" + lookupName("g", st.Gid)
}

// lookupName caches id->name resolution since listings stat every entry.
func lookupName(kind string, id uint32) string {
	raw := strconv.FormatUint(uint64(id), 10)
	key := kind + ":" + raw
	if v, ok := ownerNames.Load(key); ok {
		return v.(string)
	}

	name := raw
	switch kind {
	case "u":
		if u, err := user.LookupId(raw); err == nil && u.Username != "" {
			name = u.Username
		}
	case "g":
		if g, err := user.LookupGroupId(raw); err == nil && g.Name != "" {
			name = g.Name
		}
	}
	ownerNames.Store(key, name)
	return name
}
