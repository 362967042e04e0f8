package model

import "io/fs"

// ColorClass selects how an entry name is colored
type ColorClass int

const (
	ColorDefault ColorClass = iota
	ColorDirectory
	ColorExecutable
	ColorSymlink
	ColorDevice
	ColorSocket
)

// ClassOf derives the color class from file metadata
func ClassOf(info *Meta) ColorClass {
	if info == nil {
		return ColorDefault
	}
	mode := info.Mode
	switch {
	case mode.IsDir():
		return ColorDirectory
	case mode&fs.ModeSymlink != 0:
		return ColorSymlink
	case mode&(fs.ModeDevice|fs.ModeCharDevice|fs.ModeNamedPipe) != 0:
		return ColorDevice
	case mode&fs.ModeSocket != 0:
		return ColorSocket
	case mode.IsRegular() && mode.Perm()&0o111 != 0:
		return ColorExecutable
	default:
		return ColorDefault
	}
}

// Display holds what the navigator needs to draw a node
type Display struct {
	Row      int
	Color    ColorClass
	Trailing byte
}

// FirstRow is the screen row of the first entry in a listing
const FirstRow = 2

// Node is an entry in a directory listing. Next and Child own the rest of
// the tree; Prev and Parent are navigation links only.
type Node struct {
	Entry
	Display Display

	Prev   *Node
	Next   *Node
	Parent *Node // directory node whose Child chain holds this node
	Child  *Node // "." node of the directory listing
}

// NewNode creates a node for the entry at position index of its listing
func NewNode(e Entry, index int) *Node {
	n := &Node{Entry: e}
	n.Display = Display{
		Row:      FirstRow + index,
		Color:    ClassOf(e.Info),
		Trailing: ' ',
	}
	if e.IsDir() {
		n.Display.Trailing = '/'
	}
	return n
}

// Label returns the name with its trailing marker
func (n *Node) Label() string {
	return n.Name + string(n.Display.Trailing)
}

// Head returns the first node of the chain n belongs to
func (n *Node) Head() *Node {
	if n.Parent != nil && n.Parent.Child != nil {
		return n.Parent.Child
	}
	h := n
	for h.Prev != nil {
		h = h.Prev
	}
	return h
}

// Release tears down the subtree below n and unlinks n
func (n *Node) Release() {
	if n.Child != nil {
		ReleaseChain(n.Child)
	}
	n.Child = nil
	n.Prev = nil
	n.Next = nil
	n.Parent = nil
}

// ReleaseChain releases every node of a chain, subtrees first
func ReleaseChain(head *Node) {
	for n := head; n != nil; {
		next := n.Next
		n.Release()
		n = next
	}
}
