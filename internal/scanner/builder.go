package scanner

import (
	"context"
	"sync/atomic"

	"github.com/lumipallolabs/duview/internal/fsys"
	"github.com/lumipallolabs/duview/internal/logging"
	"github.com/lumipallolabs/duview/internal/model"
)

// Builder walks a directory tree depth-first, one directory at a time, and
// links every entry into a four-way node tree. Symlinks are never followed.
type Builder struct {
	fs   fsys.FS
	opts Options

	files   atomic.Int64
	dirs    atomic.Int64
	bytes   atomic.Int64
	current atomic.Pointer[string]
}

// NewBuilder creates a builder reading through fs
func NewBuilder(fs fsys.FS, opts Options) *Builder {
	return &Builder{fs: fs, opts: opts}
}

// Progress returns the counters of the running build
func (b *Builder) Progress() Progress {
	p := Progress{
		FilesScanned: b.files.Load(),
		DirsScanned:  b.dirs.Load(),
		BytesFound:   b.bytes.Load(),
	}
	if cur := b.current.Load(); cur != nil {
		p.CurrentPath = *cur
	}
	return p
}

// Build walks dir and returns the "." node of its listing. Permission
// failures below dir are absorbed: entries lose their metadata, unreadable
// directories lose their children. Any other failure releases the partial
// tree and is returned.
func (b *Builder) Build(ctx context.Context, dir string) (*model.Node, error) {
	logging.Scanner.Debug().Str("path", dir).Msg("build started")
	head, err := b.build(ctx, dir, nil, 0)
	if err != nil {
		logging.Scanner.Debug().Err(err).Str("path", dir).Msg("build failed")
		return nil, err
	}
	p := b.Progress()
	logging.Scanner.Debug().
		Int64("files", p.FilesScanned).
		Int64("dirs", p.DirsScanned).
		Int64("bytes", p.BytesFound).
		Msg("build finished")
	return head, nil
}

// chain accumulates one directory listing
type chain struct {
	head, tail *model.Node
	parent     *model.Node
	count      int
}

func (c *chain) add(e model.Entry) *model.Node {
	n := model.NewNode(e, c.count)
	n.Parent = c.parent
	if c.tail == nil {
		c.head = n
	} else {
		c.tail.Next = n
		n.Prev = c.tail
	}
	c.tail = n
	c.count++
	return n
}

func (b *Builder) build(ctx context.Context, dir string, parent *model.Node, depth int) (*model.Node, error) {
	b.current.Store(&dir)
	c := &chain{parent: parent}

	for _, name := range []string{".", ".."} {
		e, err := b.entry(dir, name)
		if err != nil {
			model.ReleaseChain(c.head)
			return nil, err
		}
		c.add(e)
	}

	err := b.fs.ReadDir(dir, func(name string) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if model.IsDotName(name) {
			return nil
		}

		e, err := b.entry(dir, name)
		if err != nil {
			return err
		}
		n := c.add(e)
		b.count(n)

		if !n.IsDir() {
			return nil
		}
		if b.opts.MaxDepth > 0 && depth >= b.opts.MaxDepth {
			n.Pruned = true
			logging.Scanner.Debug().Str("path", n.Path).Int("depth", depth+1).Msg("depth limit reached")
			return nil
		}

		child, err := b.build(ctx, n.Path, n, depth+1)
		switch {
		case err == nil:
			n.Child = child
		case fsys.IsPermission(err):
			logging.Scanner.Debug().Err(err).Str("path", n.Path).Msg("directory not readable")
		default:
			return err
		}
		return nil
	})
	if err != nil {
		model.ReleaseChain(c.head)
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, err
	}
	return c.head, nil
}

// entry stats dir/name. A permission failure yields an entry without
// metadata.
func (b *Builder) entry(dir, name string) (model.Entry, error) {
	path := model.JoinPath(dir, name)
	info, err := b.fs.Lstat(path)
	if err != nil {
		if !fsys.IsPermission(err) {
			return model.Entry{}, err
		}
		logging.Scanner.Debug().Err(err).Str("path", path).Msg("metadata not readable")
		info = nil
	}
	return model.NewEntry(dir, name, info), nil
}

func (b *Builder) count(n *model.Node) {
	if n.IsDir() {
		b.dirs.Add(1)
		return
	}
	b.files.Add(1)
	b.bytes.Add(n.RawSize())
}

var _ Scanner = (*Builder)(nil)
