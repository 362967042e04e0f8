package core

import (
	"context"
	"sync"
	"time"

	"github.com/lumipallolabs/duview/internal/logging"
	"github.com/lumipallolabs/duview/internal/model"
	"github.com/lumipallolabs/duview/internal/scanner"
)

// Controller loads the tree in two phases and exposes its progress. The
// UI polls State from its own goroutine while Scan runs.
type Controller struct {
	mu      sync.RWMutex
	scan    ScanState
	scanner scanner.Scanner
}

// NewController creates a controller using s for the walk
func NewController(s scanner.Scanner) *Controller {
	return &Controller{scanner: s}
}

// State returns a snapshot of the scan state
func (c *Controller) State() ScanState {
	c.mu.RLock()
	state := c.scan
	c.mu.RUnlock()

	if state.Phase == PhaseScanning {
		p := c.scanner.Progress()
		state.FilesScanned = p.FilesScanned
		state.DirsScanned = p.DirsScanned
		state.BytesFound = p.BytesFound
		state.CurrentPath = p.CurrentPath
	}
	return state
}

func (c *Controller) setPhase(phase ScanPhase) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.scan.Phase = phase
	if phase != PhaseScanning {
		p := c.scanner.Progress()
		c.scan.FilesScanned = p.FilesScanned
		c.scan.DirsScanned = p.DirsScanned
		c.scan.BytesFound = p.BytesFound
	}
}

// Scan builds the tree for path
func (c *Controller) Scan(ctx context.Context, path string) (*model.Node, error) {
	c.mu.Lock()
	c.scan = ScanState{Phase: PhaseScanning, Path: path, StartTime: time.Now()}
	c.mu.Unlock()

	logging.Debug.Debug().Str("path", path).Msg("scan started")
	root, err := c.scanner.Build(ctx, path)
	if err != nil {
		c.setPhase(PhaseIdle)
		return nil, err
	}
	c.setPhase(PhaseComputingSizes)
	return root, nil
}

// ComputeSizes corrects directory sizes of a freshly built tree
func (c *Controller) ComputeSizes(root *model.Node) int64 {
	start := time.Now()
	total := model.CorrectSizes(root)
	logging.Debug.Debug().
		Dur("took", time.Since(start)).
		Int64("total", total).
		Msg("sizes computed")
	c.setPhase(PhaseComplete)
	return total
}

// Load runs both phases
func (c *Controller) Load(ctx context.Context, path string) (*model.Node, error) {
	root, err := c.Scan(ctx, path)
	if err != nil {
		return nil, err
	}
	c.ComputeSizes(root)
	return root, nil
}
