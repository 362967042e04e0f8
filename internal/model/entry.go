package model

import (
	"io/fs"
	"strings"
	"time"
)

// Meta is the lstat view of a filesystem object
type Meta struct {
	Mode    fs.FileMode
	Size    int64
	ModTime time.Time
}

// Entry is a single directory listing entry
type Entry struct {
	Name string
	Path string
	Info *Meta // nil when lstat was denied

	// ActualSize is the raw size for files and the recursive content size
	// for directories once CorrectSizes has run.
	ActualSize int64

	// Pruned marks a directory that was not descended into because of the
	// depth limit. Its raw size is kept.
	Pruned bool
}

// NewEntry creates an entry for name inside dir
func NewEntry(dir, name string, info *Meta) Entry {
	e := Entry{
		Name: name,
		Path: JoinPath(dir, name),
		Info: info,
	}
	if info != nil {
		e.ActualSize = info.Size
	}
	return e
}

// IsDot reports whether the entry is "." or ".."
func (e *Entry) IsDot() bool {
	return IsDotName(e.Name)
}

// IsDir reports whether the entry is a directory with known metadata
func (e *Entry) IsDir() bool {
	return e.Info != nil && e.Info.Mode.IsDir()
}

// RawSize returns the size reported by lstat, 0 without metadata
func (e *Entry) RawSize() int64 {
	if e.Info == nil {
		return 0
	}
	return e.Info.Size
}

// summed reports whether CorrectSizes replaces the raw size with the
// sum of the children. Directories reporting a zero size live on
// virtual filesystems and keep it.
func (e *Entry) summed() bool {
	return e.IsDir() && !e.IsDot() && !e.Pruned && e.RawSize() != 0
}

// IsDotName reports whether name is "." or ".."
func IsDotName(name string) bool {
	return name == "." || name == ".."
}

// JoinPath joins a directory and a name without cleaning, so "." and ".."
// stay visible in the result. The root directory gets no doubled separator.
func JoinPath(dir, name string) string {
	if strings.HasSuffix(dir, "/") {
		return dir + name
	}
	return dir + "/" + name
}

// DirPath turns the path of a "." entry back into its directory
func DirPath(dotPath string) string {
	p := strings.TrimSuffix(dotPath, "/.")
	if p == "" {
		return "/"
	}
	return p
}
