// Package fsops implements the synchronous filesystem operations behind the
// script-facing fs surface. It has no engine dependency: every function takes
// plain Go values and returns a typed result or an error that the caller
// classifies onto the error taxonomy.
package fsops

import (
	"io"
	"os"
	"path/filepath"
	"runtime"

	"github.com/minideno/minideno/internal/pathutil"
)

// FileInfo mirrors the script-visible stat result. Time fields are
// milliseconds since the epoch; pointer fields are null where the platform
// has no value.
type FileInfo struct {
	IsFile      bool    `json:"isFile"`
	IsDirectory bool    `json:"isDirectory"`
	IsSymlink   bool    `json:"isSymlink"`
	Size        int64   `json:"size"`
	Mtime       *int64  `json:"mtime"`
	Atime       *int64  `json:"atime"`
	Birthtime   *int64  `json:"birthtime"`
	Ctime       *int64  `json:"ctime"`
	Ino         *uint64 `json:"ino"`
	Mode        *uint32 `json:"mode"`
	Nlink       *uint64 `json:"nlink"`
	Blocks      *int64  `json:"blocks"`
}

// DirEntry is one readDir result row.
type DirEntry struct {
	Name        string `json:"name"`
	IsFile      bool   `json:"isFile"`
	IsDirectory bool   `json:"isDirectory"`
	IsSymlink   bool   `json:"isSymlink"`
}

// WriteOptions controls the write operations. The script-side default for
// Create is true; callers decode it before reaching here.
type WriteOptions struct {
	Append    bool `json:"append"`
	Create    bool `json:"create"`
	CreateNew bool `json:"createNew"`
}

// MakeTempOptions controls temp file and directory creation.
type MakeTempOptions struct {
	Prefix string `json:"prefix"`
	Suffix string `json:"suffix"`
	Dir    string `json:"dir"`
}

// Cwd returns the process working directory.
func Cwd() (string, error) {
	return os.Getwd()
}

// ReadFile reads the whole file.
func ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// WriteFile writes data according to the option flags. createNew wins over
// the other flags and fails if the file already exists.
func WriteFile(path string, data []byte, opts WriteOptions) error {
	flags := os.O_WRONLY
	switch {
	case opts.CreateNew:
		flags |= os.O_CREATE | os.O_EXCL
	case opts.Append:
		flags |= os.O_APPEND
		if opts.Create {
			flags |= os.O_CREATE
		}
	default:
		flags |= os.O_TRUNC
		if opts.Create {
			flags |= os.O_CREATE
		}
	}
	f, err := os.OpenFile(path, flags, 0o644)
	if err != nil {
		return err
	}
	_, werr := f.Write(data)
	cerr := f.Close()
	if werr != nil {
		return werr
	}
	return cerr
}

// Stat follows symlinks.
func Stat(path string) (*FileInfo, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	return newFileInfo(fi), nil
}

// Lstat does not follow symlinks.
func Lstat(path string) (*FileInfo, error) {
	fi, err := os.Lstat(path)
	if err != nil {
		return nil, err
	}
	return newFileInfo(fi), nil
}

func newFileInfo(fi os.FileInfo) *FileInfo {
	mtime := fi.ModTime().UnixMilli()
	info := &FileInfo{
		IsFile:      fi.Mode().IsRegular(),
		IsDirectory: fi.IsDir(),
		IsSymlink:   fi.Mode()&os.ModeSymlink != 0,
		Size:        fi.Size(),
		Mtime:       &mtime,
	}
	fillSysInfo(info, fi)
	return info
}

// Mkdir creates a directory, with parents when recursive.
func Mkdir(path string, recursive bool) error {
	if recursive {
		return os.MkdirAll(path, 0o755)
	}
	return os.Mkdir(path, 0o755)
}

// Remove deletes a file or directory. Non-recursive removal of a non-empty
// directory fails with the OS error.
func Remove(path string, recursive bool) error {
	if recursive {
		// RemoveAll succeeds on a missing path; the operation contract is
		// that removing something that does not exist reports NotFound.
		if _, err := os.Lstat(path); err != nil {
			return err
		}
		return os.RemoveAll(path)
	}
	return os.Remove(path)
}

// CopyFile copies contents and permission bits of a regular file.
func CopyFile(from, to string) error {
	src, err := os.Open(from)
	if err != nil {
		return err
	}
	defer src.Close()

	fi, err := src.Stat()
	if err != nil {
		return err
	}

	dst, err := os.OpenFile(to, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, fi.Mode().Perm())
	if err != nil {
		return err
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		return err
	}
	if err := dst.Close(); err != nil {
		return err
	}
	return os.Chmod(to, fi.Mode().Perm())
}

// ReadDir lists a directory in name order.
func ReadDir(path string) ([]DirEntry, error) {
	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, err
	}
	out := make([]DirEntry, 0, len(entries))
	for _, e := range entries {
		out = append(out, DirEntry{
			Name:        e.Name(),
			IsFile:      e.Type().IsRegular(),
			IsDirectory: e.IsDir(),
			IsSymlink:   e.Type()&os.ModeSymlink != 0,
		})
	}
	return out, nil
}

// Rename moves a file or directory.
func Rename(oldPath, newPath string) error {
	return os.Rename(oldPath, newPath)
}

// RealPath resolves symlinks and returns an absolute path.
func RealPath(path string) (string, error) {
	resolved, err := filepath.EvalSymlinks(path)
	if err != nil {
		return "", err
	}
	abs, err := filepath.Abs(resolved)
	if err != nil {
		return "", err
	}
	if runtime.GOOS == "windows" {
		abs = pathutil.StripUNCPrefix(abs)
	}
	return abs, nil
}

// Truncate sets the file length, extending with zeros when growing.
func Truncate(path string, size int64) error {
	return os.Truncate(path, size)
}

// MakeTempDir creates a unique directory. Empty dir means the OS temp root.
func MakeTempDir(opts MakeTempOptions) (string, error) {
	return os.MkdirTemp(opts.Dir, tempPattern(opts))
}

// MakeTempFile creates a unique empty file and returns its path.
func MakeTempFile(opts MakeTempOptions) (string, error) {
	f, err := os.CreateTemp(opts.Dir, tempPattern(opts))
	if err != nil {
		return "", err
	}
	name := f.Name()
	if err := f.Close(); err != nil {
		return "", err
	}
	return name, nil
}

func tempPattern(opts MakeTempOptions) string {
	prefix := opts.Prefix
	if prefix == "" {
		prefix = "tmp"
	}
	return prefix + "*" + opts.Suffix
}
