package core

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/lumipallolabs/duview/internal/fsys"
	"github.com/lumipallolabs/duview/internal/logging"
	"github.com/lumipallolabs/duview/internal/model"
	"github.com/lumipallolabs/duview/internal/remover"
)

// Remover deletes a path from disk
type Remover interface {
	Remove(path string) (remover.Stats, error)
}

// Option configures a Navigator
type Option func(*Navigator)

// WithVolume sets how free space is looked up for the title bar
func WithVolume(fn func(path string) (fsys.Volume, error)) Option {
	return func(nv *Navigator) { nv.volume = fn }
}

// WithClock replaces time.Now for modification times
func WithClock(fn func() time.Time) Option {
	return func(nv *Navigator) { nv.now = fn }
}

// WithDetail replaces the status line text shown for the highlighted entry
func WithDetail(fn func(n *model.Node) string) Option {
	return func(nv *Navigator) { nv.detail = fn }
}

// WithRescan sets how a directory is listed again after a partial
// deletion. Without it the stale listing is kept and flagged.
func WithRescan(fn func(dir string) (*model.Node, error)) Option {
	return func(nv *Navigator) { nv.rescan = fn }
}

// Navigator keeps one entry highlighted and a window of rows on screen.
// Every node of the current listing carries its screen row, including
// the ones scrolled out of the window, so moving the highlight only needs
// to look at the node it lands on.
type Navigator struct {
	surface Surface
	remover Remover

	root        *model.Node
	highlighted *model.Node

	rows, cols     int
	minRow, maxRow int

	status string
	freed  FreedState

	volume func(path string) (fsys.Volume, error)
	now    func() time.Time
	detail func(n *model.Node) string
	rescan func(dir string) (*model.Node, error)
}

// NewNavigator creates a navigator for the listing starting at root
func NewNavigator(root *model.Node, surface Surface, rm Remover, opts ...Option) *Navigator {
	nv := &Navigator{
		surface:     surface,
		remover:     rm,
		root:        root,
		highlighted: root,
		volume:      fsys.VolumeOf,
		now:         time.Now,
		detail:      Describe,
	}
	for _, opt := range opts {
		opt(nv)
	}
	nv.layout()
	nv.scrollIntoView()
	return nv
}

// Highlighted returns the highlighted node
func (nv *Navigator) Highlighted() *model.Node {
	return nv.highlighted
}

// Window returns the rows entries can occupy
func (nv *Navigator) Window() (minRow, maxRow int) {
	return nv.minRow, nv.maxRow
}

// Freed returns what was deleted this session
func (nv *Navigator) Freed() FreedState {
	return nv.freed
}

// Dir returns the directory whose listing is shown
func (nv *Navigator) Dir() string {
	if nv.highlighted == nil {
		return ""
	}
	return model.DirPath(nv.highlighted.Head().Path)
}

// Start draws the whole screen
func (nv *Navigator) Start() {
	nv.redraw()
}

// Next moves the highlight to the next sibling
func (nv *Navigator) Next() bool {
	cur := nv.highlighted
	if cur == nil || cur.Next == nil {
		return false
	}
	nv.status = ""
	nv.highlighted = cur.Next
	nv.moved(cur)
	return true
}

// Prev moves the highlight to the previous sibling
func (nv *Navigator) Prev() bool {
	cur := nv.highlighted
	if cur == nil || cur.Prev == nil {
		return false
	}
	nv.status = ""
	nv.highlighted = cur.Prev
	nv.moved(cur)
	return true
}

// moved redraws after the highlight left from. If the new highlight is
// outside the window the whole listing shifts and the window is redrawn,
// otherwise only the two rows involved change.
func (nv *Navigator) moved(from *model.Node) {
	if nv.scrollIntoView() {
		nv.drawEntries()
	} else {
		nv.drawEntry(from, false)
		nv.drawEntry(nv.highlighted, true)
	}
	nv.drawStatus()
}

// Descend enters the highlighted directory
func (nv *Navigator) Descend() bool {
	if nv.highlighted == nil || nv.highlighted.Child == nil {
		return false
	}
	child := nv.highlighted.Child
	model.Renumber(child, nv.minRow)
	nv.status = ""
	nv.highlighted = child
	logging.Debug.Debug().Str("dir", nv.Dir()).Msg("descend")
	nv.redraw()
	return true
}

// Ascend returns to the directory containing the current listing
func (nv *Navigator) Ascend() bool {
	if nv.highlighted == nil || nv.highlighted.Parent == nil {
		return false
	}
	nv.status = ""
	nv.highlighted = nv.highlighted.Parent
	nv.scrollIntoView()
	logging.Debug.Debug().Str("dir", nv.Dir()).Msg("ascend")
	nv.redraw()
	return true
}

// Delete removes the highlighted entry from disk and from the tree. The
// highlight moves to the next sibling, or the previous one for the last
// entry. On failure the entry stays and the error is shown. Only bytes
// that actually left the disk count as freed.
func (nv *Navigator) Delete() Event {
	n := nv.highlighted
	if n == nil {
		return nil
	}
	if n.IsDot() {
		nv.Notify(fmt.Sprintf("Cannot delete %q", n.Name))
		return DeleteRefusedEvent{Path: n.Path}
	}

	st, err := nv.remover.Remove(n.Path)
	if err != nil {
		logging.Debug.Debug().Err(err).Str("path", n.Path).Msg("delete failed")
		status := fmt.Sprintf("Delete failed: %v", err)
		if st.Removed > 0 && n.IsDir() && !nv.refresh(n) {
			status += " (sizes are stale)"
		}
		nv.status = status
		nv.redraw()
		return ErrorEvent{Path: n.Path, Err: err}
	}

	name, path, size := n.Name, n.Path, n.ActualSize
	freed := size
	if st.Denied > 0 {
		freed = st.Bytes
	}

	nv.highlighted = model.Excise(n)
	nv.scrollIntoView()

	switch {
	case st.Removed > 0:
		nv.freed.Add(freed)
		nv.status = fmt.Sprintf("Deleted %s, freed %s", name, humanize.Bytes(uint64(freed)))
		if st.Denied > 0 {
			nv.status += fmt.Sprintf(" (%d skipped: permission denied)", st.Denied)
		}
	case st.Denied > 0:
		nv.status = fmt.Sprintf("Skipped %s: permission denied", name)
	default:
		nv.status = fmt.Sprintf("%s was already gone", name)
	}
	nv.redraw()

	return DeletedEvent{
		Path:    path,
		Size:    size,
		Removed: st.Removed,
		Denied:  st.Denied,
		Freed:   nv.freed,
	}
}

// refresh lists directory n again and replaces its subtree. It reports
// whether the tree now matches the disk.
func (nv *Navigator) refresh(n *model.Node) bool {
	if nv.rescan == nil {
		return false
	}
	head, err := nv.rescan(n.Path)
	if err != nil {
		logging.Debug.Debug().Err(err).Str("path", n.Path).Msg("rescan failed")
		return false
	}
	model.Regraft(n, head)
	return true
}

// Notify shows msg on the status line until the highlight moves
func (nv *Navigator) Notify(msg string) {
	nv.status = msg
	nv.drawStatus()
}

// Resize adapts the window to a new surface size
func (nv *Navigator) Resize() {
	nv.layout()
	nv.scrollIntoView()
	nv.fillWindow()
	nv.redraw()
}

// Close releases the tree
func (nv *Navigator) Close() {
	if nv.root != nil {
		model.ReleaseChain(nv.root)
	}
	nv.root = nil
	nv.highlighted = nil
}

func (nv *Navigator) layout() {
	nv.rows, nv.cols = nv.surface.Size()
	nv.minRow = model.FirstRow
	nv.maxRow = nv.rows - 3
	if nv.maxRow < nv.minRow {
		nv.maxRow = nv.minRow
	}
}

// scrollIntoView shifts the rows of the current listing until the
// highlight is inside the window. It reports whether anything moved.
func (nv *Navigator) scrollIntoView() bool {
	if nv.highlighted == nil {
		return false
	}
	row := nv.highlighted.Display.Row
	var delta int
	switch {
	case row > nv.maxRow:
		delta = nv.maxRow - row
	case row < nv.minRow:
		delta = nv.minRow - row
	default:
		return false
	}
	model.ShiftRows(nv.highlighted.Head(), delta)
	return true
}

// fillWindow pulls entries scrolled off the top back down when the
// window has empty rows below the last entry
func (nv *Navigator) fillWindow() {
	if nv.highlighted == nil {
		return
	}
	head := nv.highlighted.Head()
	tail := nv.highlighted
	for tail.Next != nil {
		tail = tail.Next
	}
	delta := min(nv.maxRow-tail.Display.Row, nv.minRow-head.Display.Row)
	if delta > 0 {
		model.ShiftRows(head, delta)
	}
}

// firstVisible walks back from the highlight to the node on the top row
func (nv *Navigator) firstVisible() *model.Node {
	n := nv.highlighted
	for n.Prev != nil && n.Prev.Display.Row >= nv.minRow {
		n = n.Prev
	}
	return n
}
