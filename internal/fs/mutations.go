package fs

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// ErrExists is returned when a mutation would overwrite an existing path.
var ErrExists = errors.New("destination already exists")

// CreateFile creates an empty file, refusing to truncate an existing one.
func CreateFile(path string) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return fmt.Errorf("create %s: %w", path, ErrExists)
		}
		return fmt.Errorf("create %s: %w", path, err)
	}
	return f.Close()
}

// CreateDir creates a single directory.
func CreateDir(path string) error {
	if err := os.Mkdir(path, 0o755); err != nil {
		if errors.Is(err, fs.ErrExist) {
			return fmt.Errorf("mkdir %s: %w", path, ErrExists)
		}
		return fmt.Errorf("mkdir %s: %w", path, err)
	}
	return nil
}

// Remove deletes a file, link or whole directory tree. Symlinks are removed
// without following them.
func Remove(path string) error {
	info, err := os.Lstat(path)
	if err != nil {
		return fmt.Errorf("remove %s: %w", path, err)
	}
	if info.IsDir() {
		err = os.RemoveAll(path)
	} else {
		err = os.Remove(path)
	}
	if err != nil {
		return fmt.Errorf("remove %s: %w", path, err)
	}
	return nil
}

// Rename moves src to dest. Renaming a path onto itself does nothing.
func Rename(src, dest string) error {
	if filepath.Clean(src) == filepath.Clean(dest) {
		return nil
	}
	if _, err := os.Lstat(dest); err == nil {
		return fmt.Errorf("rename %s: %w", dest, ErrExists)
	}
	if err := os.Rename(src, dest); err != nil {
		return fmt.Errorf("rename %s -> %s: %w", src, dest, err)
	}
	return nil
}

// CopyRecursive copies a file or directory tree from src to dest. The
// destination must not exist and may not sit inside src. A failed copy
// removes whatever it had written to dest.
func CopyRecursive(src, dest string) error {
	src = filepath.Clean(src)
	dest = filepath.Clean(dest)
	if _, err := os.Lstat(dest); err == nil {
		return fmt.Errorf("copy to %s: %w", dest, ErrExists)
	}
	if dest == src || strings.HasPrefix(dest, src+string(filepath.Separator)) {
		return fmt.Errorf("copy %s into itself", src)
	}

	err := filepath.WalkDir(src, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dest, rel)

		switch {
		case d.IsDir():
			return os.MkdirAll(target, 0o755)
		case d.Type()&os.ModeSymlink != 0:
			link, err := os.Readlink(path)
			if err != nil {
				return err
			}
			return os.Symlink(link, target)
		default:
			return copyFile(path, target)
		}
	})
	if err != nil {
		_ = os.RemoveAll(dest)
		return fmt.Errorf("copy %s -> %s: %w", src, dest, err)
	}
	return nil
}

func copyFile(src, dest string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer func() {
		_ = in.Close()
	}()

	info, err := in.Stat()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return err
	}
	out, err := os.OpenFile(dest, os.O_CREATE|os.O_EXCL|os.O_WRONLY, info.Mode().Perm())
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return fmt.Errorf("copy %s: %w", src, err)
	}
	return out.Close()
}
