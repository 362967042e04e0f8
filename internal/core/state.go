package core

import (
	"time"
)

// ScanPhase represents the current phase of loading a tree
type ScanPhase int

const (
	PhaseIdle ScanPhase = iota
	PhaseScanning
	PhaseComputingSizes
	PhaseComplete
)

// String returns a human-readable phase name
func (p ScanPhase) String() string {
	switch p {
	case PhaseScanning:
		return "Scanning files"
	case PhaseComputingSizes:
		return "Computing sizes"
	case PhaseComplete:
		return "Complete"
	default:
		return ""
	}
}

// ScanState holds the current scan state
type ScanState struct {
	Phase        ScanPhase
	Path         string
	StartTime    time.Time
	FilesScanned int64
	DirsScanned  int64
	BytesFound   int64
	CurrentPath  string
}

// IsScanning returns true while the tree is not ready yet
func (s ScanState) IsScanning() bool {
	return s.Phase == PhaseScanning || s.Phase == PhaseComputingSizes
}

// Elapsed returns time since scan started
func (s ScanState) Elapsed() time.Duration {
	if s.StartTime.IsZero() {
		return 0
	}
	return time.Since(s.StartTime).Truncate(time.Second)
}

// FreedState tracks space recovered from deletions in this session
type FreedState struct {
	Bytes   int64
	Entries int
}

// Add records one successful deletion
func (f *FreedState) Add(size int64) {
	f.Bytes += size
	f.Entries++
}
