package scanner

import (
	"context"

	"github.com/lumipallolabs/duview/internal/model"
)

// Progress reports scanning progress
type Progress struct {
	FilesScanned int64
	DirsScanned  int64
	BytesFound   int64
	CurrentPath  string
}

// Options tune a scan
type Options struct {
	// MaxDepth bounds how many directory levels below the root are read.
	// Zero means no limit.
	MaxDepth int
}

// Scanner builds the in-memory tree for a directory
type Scanner interface {
	// Build walks dir and returns the "." node of its listing
	Build(ctx context.Context, dir string) (*model.Node, error)

	// Progress returns a snapshot of the counters of the running build
	Progress() Progress
}
