//go:build !(linux || darwin || freebsd)

package fsys

import (
	"errors"
	"os"

	"github.com/lumipallolabs/duview/internal/model"
)

// Lstat stats path without following symlinks
func (OS) Lstat(path string) (*model.Meta, error) {
	info, err := os.Lstat(path)
	if err != nil {
		return nil, err
	}
	return metaOf(info), nil
}

// Unlink removes a non-directory
func (OS) Unlink(path string) error {
	return os.Remove(path)
}

// Rmdir removes an empty directory
func (OS) Rmdir(path string) error {
	return os.Remove(path)
}

// VolumeOf is not supported on this platform
func VolumeOf(path string) (Volume, error) {
	return Volume{}, pathError("statfs", path, errors.ErrUnsupported)
}
