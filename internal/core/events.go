package core

// Event describes the outcome of a navigator action
type Event interface {
	isEvent()
}

// DeletedEvent is emitted when an entry was removed and excised
type DeletedEvent struct {
	Path    string
	Size    int64
	Removed int
	Denied  int
	Freed   FreedState
}

func (DeletedEvent) isEvent() {}

// DeleteRefusedEvent is emitted for entries that can't be deleted
type DeleteRefusedEvent struct {
	Path string
}

func (DeleteRefusedEvent) isEvent() {}

// ErrorEvent is emitted when a deletion failed. The entry stays in the tree.
type ErrorEvent struct {
	Path string
	Err  error
}

func (ErrorEvent) isEvent() {}
