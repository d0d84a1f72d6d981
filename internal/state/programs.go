package state

import (
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"
)

// Program is an executable found on PATH.
type Program struct {
	Name string
	Path string
}

const programScanLimit = 8

// ScanPrograms lists the executables reachable through pathEnv. Directories
// are read concurrently but the first directory providing a name wins, as a
// shell lookup would. The result is sorted case-insensitively by name.
func ScanPrograms(pathEnv string) []Program {
	dirs := filepath.SplitList(pathEnv)
	found := make([][]Program, len(dirs))

	var g errgroup.Group
	g.SetLimit(programScanLimit)
	for i, dir := range dirs {
		if dir == "" {
			continue
		}
		g.Go(func() error {
			found[i] = scanProgramDir(dir)
			return nil
		})
	}
	_ = g.Wait()

	seen := make(map[string]struct{})
	var programs []Program
	for _, batch := range found {
		for _, p := range batch {
			if _, dup := seen[p.Name]; dup {
				continue
			}
			seen[p.Name] = struct{}{}
			programs = append(programs, p)
		}
	}
	sort.SliceStable(programs, func(i, j int) bool {
		return strings.ToLower(programs[i].Name) < strings.ToLower(programs[j].Name)
	})
	return programs
}

func scanProgramDir(dir string) []Program {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}
	var out []Program
	for _, de := range entries {
		if de.IsDir() {
			continue
		}
		full := filepath.Join(dir, de.Name())
		info, err := os.Stat(full)
		if err != nil || info.IsDir() || !isExecutable(de.Name(), info.Mode()) {
			continue
		}
		out = append(out, Program{Name: de.Name(), Path: full})
	}
	return out
}

func isExecutable(name string, mode os.FileMode) bool {
	if runtime.GOOS == "windows" {
		switch strings.ToLower(filepath.Ext(name)) {
		case ".exe", ".cmd", ".bat", ".com":
			return true
		}
		return false
	}
	return mode&0o111 != 0
}

// findProgram resolves a configured name against the scanned list,
// case-insensitively. Unknown names are passed through for the OS to resolve.
func findProgram(programs []Program, name string) string {
	for _, p := range programs {
		if strings.EqualFold(p.Name, name) {
			return p.Path
		}
	}
	return name
}
