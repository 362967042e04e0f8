// Package fsys wraps the filesystem calls the tree engine needs: lstat,
// streamed directory listing, unlink and rmdir.
package fsys

import (
	"errors"
	"io/fs"

	"github.com/lumipallolabs/duview/internal/model"
)

// readBatch is how many names are read from a directory stream at once
const readBatch = 256

// FS is the filesystem seen by the builder and the remover
type FS interface {
	// Lstat returns metadata without following symbolic links
	Lstat(path string) (*model.Meta, error)

	// ReadDir calls fn for each name in the directory, in stream order.
	// An error from fn stops the listing and is returned unchanged.
	ReadDir(path string, fn func(name string) error) error

	// Unlink removes a non-directory
	Unlink(path string) error

	// Rmdir removes an empty directory
	Rmdir(path string) error
}

// IsPermission reports whether err is a permission failure
func IsPermission(err error) bool {
	return errors.Is(err, fs.ErrPermission)
}

// IsNotExist reports whether err means the object is gone
func IsNotExist(err error) bool {
	return errors.Is(err, fs.ErrNotExist)
}

func pathError(op, path string, err error) error {
	if err == nil {
		return nil
	}
	return &fs.PathError{Op: op, Path: path, Err: err}
}
