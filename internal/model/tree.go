package model

// CorrectSizes replaces the raw size of every directory below head with
// the sum of its content, children first. Dot entries end up at zero and
// directories reporting a zero raw size keep it. It returns the disk usage
// of the chain and is safe to run more than once.
func CorrectSizes(head *Node) int64 {
	var total int64
	for n := head; n != nil; n = n.Next {
		if n.IsDot() {
			n.ActualSize = 0
			continue
		}
		var sum int64
		if n.Child != nil {
			sum = CorrectSizes(n.Child)
		}
		if n.summed() {
			n.ActualSize = sum
		}
		total += n.ActualSize
	}
	return total
}

// DiskUsage sums the actual sizes of a chain, skipping dot entries
func DiskUsage(head *Node) int64 {
	var total int64
	for n := head; n != nil; n = n.Next {
		if !n.IsDot() {
			total += n.ActualSize
		}
	}
	return total
}

// Renumber assigns consecutive rows to a chain starting at first
func Renumber(head *Node, first int) {
	row := first
	for n := head; n != nil; n = n.Next {
		n.Display.Row = row
		row++
	}
}

// ShiftRows moves every row of a chain by delta
func ShiftRows(head *Node, delta int) {
	for n := head; n != nil; n = n.Next {
		n.Display.Row += delta
	}
}

// Excise unlinks n from its chain and releases its subtree. Following
// siblings move up one row and the removed size is taken off every
// enclosing directory that was summed. It returns the node that takes over
// the highlight: the next sibling if any, else the previous one.
func Excise(n *Node) *Node {
	removed := n.ActualSize
	if n.IsDot() {
		removed = 0
	}

	for p := n.Parent; p != nil && p.summed(); p = p.Parent {
		p.ActualSize -= removed
	}

	prev, next := n.Prev, n.Next
	if prev != nil {
		prev.Next = next
	} else if n.Parent != nil && n.Parent.Child == n {
		n.Parent.Child = next
	}
	if next != nil {
		next.Prev = prev
		ShiftRows(next, -1)
	}

	n.Release()

	if next != nil {
		return next
	}
	return prev
}

// Regraft replaces the listing below directory n with head, corrects its
// sizes and carries the size change up through every summed directory.
func Regraft(n, head *Node) {
	if n.Child != nil {
		ReleaseChain(n.Child)
	}
	n.Child = head
	for c := head; c != nil; c = c.Next {
		c.Parent = n
	}

	sum := CorrectSizes(head)
	if !n.summed() {
		return
	}
	delta := sum - n.ActualSize
	n.ActualSize = sum
	for p := n.Parent; p != nil && p.summed(); p = p.Parent {
		p.ActualSize += delta
	}
}

// Len counts the nodes of a chain
func Len(head *Node) int {
	count := 0
	for n := head; n != nil; n = n.Next {
		count++
	}
	return count
}

// Find returns the node named name in the chain, or nil
func Find(head *Node, name string) *Node {
	for n := head; n != nil; n = n.Next {
		if n.Name == name {
			return n
		}
	}
	return nil
}
