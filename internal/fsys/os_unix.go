//go:build linux || darwin || freebsd

package fsys

import (
	"io/fs"

	"github.com/lumipallolabs/duview/internal/model"
	"golang.org/x/sys/unix"
)

// Lstat stats path without following symlinks
func (OS) Lstat(path string) (*model.Meta, error) {
	var st unix.Stat_t
	if err := unix.Lstat(path, &st); err != nil {
		return nil, pathError("lstat", path, err)
	}
	return &model.Meta{
		Mode:    fileMode(uint32(st.Mode)),
		Size:    st.Size,
		ModTime: modTime(&st),
	}, nil
}

// Unlink removes a non-directory
func (OS) Unlink(path string) error {
	return pathError("unlink", path, unix.Unlink(path))
}

// Rmdir removes an empty directory
func (OS) Rmdir(path string) error {
	return pathError("rmdir", path, unix.Rmdir(path))
}

// fileMode converts st_mode bits into an fs.FileMode
func fileMode(m uint32) fs.FileMode {
	mode := fs.FileMode(m & 0o777)
	switch m & unix.S_IFMT {
	case unix.S_IFDIR:
		mode |= fs.ModeDir
	case unix.S_IFLNK:
		mode |= fs.ModeSymlink
	case unix.S_IFCHR:
		mode |= fs.ModeDevice | fs.ModeCharDevice
	case unix.S_IFBLK:
		mode |= fs.ModeDevice
	case unix.S_IFIFO:
		mode |= fs.ModeNamedPipe
	case unix.S_IFSOCK:
		mode |= fs.ModeSocket
	}
	if m&unix.S_ISUID != 0 {
		mode |= fs.ModeSetuid
	}
	if m&unix.S_ISGID != 0 {
		mode |= fs.ModeSetgid
	}
	if m&unix.S_ISVTX != 0 {
		mode |= fs.ModeSticky
	}
	return mode
}

// VolumeOf reports the size of the filesystem holding path
func VolumeOf(path string) (Volume, error) {
	var st unix.Statfs_t
	if err := unix.Statfs(path, &st); err != nil {
		return Volume{}, pathError("statfs", path, err)
	}
	bsize := int64(st.Bsize)
	return Volume{
		TotalBytes: int64(st.Blocks) * bsize,
		FreeBytes:  int64(st.Bavail) * bsize,
	}, nil
}
