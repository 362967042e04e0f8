package fsys

import (
	"errors"
	"io"
	"io/fs"

	"github.com/lumipallolabs/duview/internal/model"
	"github.com/spf13/afero"
)

// Afero adapts an afero filesystem. Backends without lstat support fall
// back to stat.
type Afero struct {
	Fs afero.Fs
}

// NewAfero wraps fsys
func NewAfero(fsys afero.Fs) *Afero {
	return &Afero{Fs: fsys}
}

func (a *Afero) Lstat(path string) (*model.Meta, error) {
	var (
		info fs.FileInfo
		err  error
	)
	if l, ok := a.Fs.(afero.Lstater); ok {
		info, _, err = l.LstatIfPossible(path)
	} else {
		info, err = a.Fs.Stat(path)
	}
	if err != nil {
		return nil, err
	}
	return metaOf(info), nil
}

func (a *Afero) ReadDir(path string, fn func(name string) error) error {
	f, err := a.Fs.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	for {
		names, err := f.Readdirnames(readBatch)
		for _, name := range names {
			if err := fn(name); err != nil {
				return err
			}
		}
		if errors.Is(err, io.EOF) || (err == nil && len(names) == 0) {
			return nil
		}
		if err != nil {
			return err
		}
	}
}

func (a *Afero) Unlink(path string) error {
	info, err := a.Lstat(path)
	if err != nil {
		return err
	}
	if info.Mode.IsDir() {
		return &fs.PathError{Op: "unlink", Path: path, Err: errIsDir}
	}
	return a.Fs.Remove(path)
}

func (a *Afero) Rmdir(path string) error {
	empty, err := afero.IsEmpty(a.Fs, path)
	if err != nil {
		return err
	}
	if !empty {
		return &fs.PathError{Op: "rmdir", Path: path, Err: errNotEmpty}
	}
	return a.Fs.Remove(path)
}

var (
	errIsDir    = errors.New("is a directory")
	errNotEmpty = errors.New("directory not empty")
)

func metaOf(info fs.FileInfo) *model.Meta {
	return &model.Meta{
		Mode:    info.Mode(),
		Size:    info.Size(),
		ModTime: info.ModTime(),
	}
}
