// Package remover deletes filesystem objects recursively, reading each
// directory fresh from disk instead of trusting the scanned tree.
package remover

import (
	"github.com/lumipallolabs/duview/internal/fsys"
	"github.com/lumipallolabs/duview/internal/logging"
	"github.com/lumipallolabs/duview/internal/model"
	"go.uber.org/multierr"
)

// Stats summarizes a removal
type Stats struct {
	Removed int   // objects deleted
	Denied  int   // objects skipped because of permissions
	Bytes   int64 // raw size of the non-directories deleted
}

// Remover deletes paths through a filesystem
type Remover struct {
	fs fsys.FS
}

// New creates a remover
func New(fs fsys.FS) *Remover {
	return &Remover{fs: fs}
}

// Remove deletes path. Directories are emptied depth-first, then removed.
// Permission failures are skipped and counted; objects that vanished in
// the meantime are ignored. Every other failure is collected while the
// walk goes on, and a directory with failures below it is left in place.
func (r *Remover) Remove(path string) (Stats, error) {
	var st Stats
	err := r.remove(path, &st)
	logging.Remover.Debug().
		Str("path", path).
		Int("removed", st.Removed).
		Int("denied", st.Denied).
		Int64("bytes", st.Bytes).
		Err(err).
		Msg("remove")
	return st, err
}

func (r *Remover) remove(path string, st *Stats) error {
	info, err := r.fs.Lstat(path)
	if err != nil {
		return r.tolerate(err, st)
	}
	if !info.Mode.IsDir() {
		if err := r.fs.Unlink(path); err != nil {
			return r.tolerate(err, st)
		}
		st.Removed++
		st.Bytes += info.Size
		return nil
	}

	var names []string
	err = r.fs.ReadDir(path, func(name string) error {
		if !model.IsDotName(name) {
			names = append(names, name)
		}
		return nil
	})
	if err != nil {
		return r.tolerate(err, st)
	}

	var errs error
	for _, name := range names {
		errs = multierr.Append(errs, r.remove(model.JoinPath(path, name), st))
	}
	if errs != nil {
		return errs
	}
	return r.done(r.fs.Rmdir(path), st)
}

func (r *Remover) done(err error, st *Stats) error {
	if err == nil {
		st.Removed++
		return nil
	}
	return r.tolerate(err, st)
}

func (r *Remover) tolerate(err error, st *Stats) error {
	switch {
	case fsys.IsPermission(err):
		st.Denied++
		logging.Remover.Debug().Err(err).Msg("remove skipped")
		return nil
	case fsys.IsNotExist(err):
		return nil
	default:
		return err
	}
}
