// Package fsystest provides filesystem doubles for tests.
package fsystest

import (
	"io/fs"
	"sync"

	"github.com/lumipallolabs/duview/internal/fsys"
	"github.com/lumipallolabs/duview/internal/model"
	"github.com/spf13/afero"
)

// Op names a filesystem call that can be failed
type Op string

const (
	OpLstat   Op = "lstat"
	OpReadDir Op = "readdir"
	OpUnlink  Op = "unlink"
	OpRmdir   Op = "rmdir"
)

// Faulty wraps a filesystem and fails selected calls by path
type Faulty struct {
	fsys.FS

	mu    sync.Mutex
	fails map[Op]map[string]error
	calls map[Op]int
}

// NewFaulty wraps base
func NewFaulty(base fsys.FS) *Faulty {
	return &Faulty{
		FS:    base,
		fails: make(map[Op]map[string]error),
		calls: make(map[Op]int),
	}
}

// NewMem returns an in-memory filesystem and a faulty view of it
func NewMem() (afero.Fs, *Faulty) {
	mem := afero.NewMemMapFs()
	return mem, NewFaulty(fsys.NewAfero(mem))
}

// Fail makes op on path return err wrapped in a *fs.PathError
func (f *Faulty) Fail(op Op, path string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fails[op] == nil {
		f.fails[op] = make(map[string]error)
	}
	f.fails[op][path] = err
}

// Deny makes op on path fail with a permission error
func (f *Faulty) Deny(op Op, path string) {
	f.Fail(op, path, fs.ErrPermission)
}

// Calls returns how many times op was invoked
func (f *Faulty) Calls(op Op) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[op]
}

func (f *Faulty) check(op Op, path string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[op]++
	if err, ok := f.fails[op][path]; ok {
		return &fs.PathError{Op: string(op), Path: path, Err: err}
	}
	return nil
}

func (f *Faulty) Lstat(path string) (*model.Meta, error) {
	if err := f.check(OpLstat, path); err != nil {
		return nil, err
	}
	return f.FS.Lstat(path)
}

func (f *Faulty) ReadDir(path string, fn func(name string) error) error {
	if err := f.check(OpReadDir, path); err != nil {
		return err
	}
	return f.FS.ReadDir(path, fn)
}

func (f *Faulty) Unlink(path string) error {
	if err := f.check(OpUnlink, path); err != nil {
		return err
	}
	return f.FS.Unlink(path)
}

func (f *Faulty) Rmdir(path string) error {
	if err := f.check(OpRmdir, path); err != nil {
		return err
	}
	return f.FS.Rmdir(path)
}
