package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/lumipallolabs/duview/internal/config"
	"github.com/lumipallolabs/duview/internal/core"
	"github.com/lumipallolabs/duview/internal/fsys"
	"github.com/lumipallolabs/duview/internal/logging"
	"github.com/lumipallolabs/duview/internal/model"
	"github.com/lumipallolabs/duview/internal/remover"
	"github.com/lumipallolabs/duview/internal/scanner"
	"github.com/mattn/go-runewidth"
)

// scanStartMsg triggers the actual scan start (after UI has rendered)
type scanStartMsg struct{}

// scanCompleteMsg is sent when the filesystem walk finishes
type scanCompleteMsg struct {
	root *model.Node
	err  error
}

// computeSizesMsg triggers size computation phase
type computeSizesMsg struct {
	root *model.Node
}

// computeSizesDoneMsg is sent when size computation completes
type computeSizesDoneMsg struct {
	root *model.Node
}

var phases = []core.ScanPhase{core.PhaseScanning, core.PhaseComputingSizes}

// App is the main application model
type App struct {
	// Components
	help    HelpOverlay
	spinner spinner.Model
	canvas  *Canvas
	nav     *core.Navigator

	// Services
	ctx  context.Context
	cfg  *config.Config
	fs   fsys.FS
	ctrl *core.Controller
	keys KeyMap

	// State
	path    string
	scan    core.ScanState
	pending *model.Node // waiting for delete confirmation
	err     error

	// Dimensions
	width  int
	height int
}

// NewApp creates an application that scans path through fs
func NewApp(ctx context.Context, cfg *config.Config, fs fsys.FS, path string) App {
	keys := DefaultKeyMap()
	sp := spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(lipgloss.NewStyle().Foreground(ColorCyan).Bold(true)),
	)
	builder := scanner.NewBuilder(fs, scanner.Options{MaxDepth: cfg.MaxDepth})

	return App{
		help:    NewHelpOverlay(keys),
		spinner: sp,
		ctx:     ctx,
		cfg:     cfg,
		fs:      fs,
		ctrl:    core.NewController(builder),
		keys:    keys,
		path:    path,
	}
}

// Init implements tea.Model
func (a App) Init() tea.Cmd {
	return tea.Batch(
		tea.SetWindowTitle("duview: "+a.path),
		func() tea.Msg { return scanStartMsg{} },
	)
}

// Err returns the error that ended the program, if any
func (a App) Err() error {
	return a.err
}

// Navigator returns the navigator once the tree is loaded
func (a App) Navigator() *core.Navigator {
	return a.nav
}

// startScan walks the root path in a command goroutine
func (a App) startScan() tea.Cmd {
	ctrl, ctx, path := a.ctrl, a.ctx, a.path
	return func() tea.Msg {
		root, err := ctrl.Scan(ctx, path)
		logging.Debug.Debug().Err(err).Msg("scan completed")
		return scanCompleteMsg{root: root, err: err}
	}
}

// rescan lists a directory again with a fresh builder, leaving the
// controller's progress counters alone
func (a App) rescan() func(dir string) (*model.Node, error) {
	fs, ctx, opts := a.fs, a.ctx, scanner.Options{MaxDepth: a.cfg.MaxDepth}
	return func(dir string) (*model.Node, error) {
		return scanner.NewBuilder(fs, opts).Build(ctx, dir)
	}
}

// Update implements tea.Model
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.help.SetSize(msg.Width, msg.Height)
		if a.nav != nil {
			a.canvas.Resize(msg.Width, msg.Height)
			a.nav.Resize()
		}
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)

	case scanStartMsg:
		a.scan = core.ScanState{Phase: core.PhaseScanning, Path: a.path}
		return a, tea.Batch(a.startScan(), a.spinner.Tick)

	case spinner.TickMsg:
		// Keep ticking while loading to refresh the counters
		if a.nav != nil || a.err != nil {
			return a, nil
		}
		a.scan = a.ctrl.State()
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd

	case scanCompleteMsg:
		if msg.err != nil {
			logging.Debug.Debug().Err(msg.err).Msg("scan failed")
			a.err = msg.err
			return a, tea.Quit
		}
		a.scan = a.ctrl.State()
		return a, func() tea.Msg {
			return computeSizesMsg{root: msg.root}
		}

	case computeSizesMsg:
		ctrl := a.ctrl
		return a, func() tea.Msg {
			ctrl.ComputeSizes(msg.root)
			return computeSizesDoneMsg{root: msg.root}
		}

	case computeSizesDoneMsg:
		a.scan = a.ctrl.State()
		a.canvas = NewCanvas(a.width, a.height, NewPalette(a.cfg.Color))
		a.nav = core.NewNavigator(msg.root, a.canvas, remover.New(a.fs),
			core.WithRescan(a.rescan()))
		a.nav.Start()
		logging.Debug.Debug().Msg("tree ready")
		return a, nil
	}

	return a, nil
}

// handleKey handles keyboard input
func (a App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, a.keys.Quit) {
		if a.nav != nil {
			a.nav.Close()
		}
		return a, tea.Quit
	}

	// Nothing to navigate until the tree is loaded
	if a.nav == nil {
		return a, nil
	}

	// Help overlay takes precedence
	if a.help.IsVisible() {
		if key.Matches(msg, a.keys.Help) || key.Matches(msg, a.keys.Back) || msg.Type == tea.KeyEsc {
			a.help.SetVisible(false)
		}
		return a, nil
	}

	if a.pending != nil {
		target := a.pending
		a.pending = nil
		if key.Matches(msg, a.keys.Confirm) && target == a.nav.Highlighted() {
			a.delete()
		} else {
			a.nav.Notify("Delete cancelled")
		}
		return a, nil
	}

	switch {
	case key.Matches(msg, a.keys.Help):
		a.help.Toggle()

	case key.Matches(msg, a.keys.Up):
		a.nav.Prev()

	case key.Matches(msg, a.keys.Down):
		a.nav.Next()

	case key.Matches(msg, a.keys.Enter):
		a.nav.Descend()

	case key.Matches(msg, a.keys.Back):
		a.nav.Ascend()

	case key.Matches(msg, a.keys.Delete):
		n := a.nav.Highlighted()
		if a.cfg.ConfirmDelete && !n.IsDot() {
			a.pending = n
			a.nav.Notify(fmt.Sprintf("Delete %s (%s)? [y/N]", n.Name, FormatSize(n.ActualSize)))
			return a, nil
		}
		a.delete()
	}

	return a, nil
}

func (a *App) delete() {
	switch ev := a.nav.Delete().(type) {
	case core.DeletedEvent:
		logging.Debug.Info().
			Str("path", ev.Path).
			Int64("size", ev.Size).
			Int("removed", ev.Removed).
			Int("denied", ev.Denied).
			Int64("freed_session", ev.Freed.Bytes).
			Msg("deleted")
	case core.ErrorEvent:
		logging.Debug.Warn().Err(ev.Err).Str("path", ev.Path).Msg("delete failed")
	case core.DeleteRefusedEvent:
		logging.Debug.Debug().Str("path", ev.Path).Msg("delete refused")
	}
}

// View implements tea.Model
func (a App) View() string {
	if a.err != nil {
		return ErrorStyle.Render(fmt.Sprintf("Error: %v", a.err))
	}

	if a.nav == nil {
		return a.scanView()
	}

	if a.help.IsVisible() {
		freed := a.nav.Freed()
		footer := fmt.Sprintf("Freed this session: %s in %s deletions",
			FormatSize(freed.Bytes), humanize.Comma(int64(freed.Entries)))
		return a.help.WithFooter(footer).View()
	}

	return a.canvas.View()
}

// scanView shows the loading phases, the finished ones ticked off
func (a App) scanView() string {
	doneStyle := lipgloss.NewStyle().Foreground(ColorSuccess)
	activeStyle := lipgloss.NewStyle().Foreground(ColorCyan).Bold(true)
	mutedStyle := lipgloss.NewStyle().Foreground(ColorMuted)

	stats := fmt.Sprintf(" · %s files · %s dirs · %s",
		humanize.Comma(a.scan.FilesScanned),
		humanize.Comma(a.scan.DirsScanned),
		FormatSize(a.scan.BytesFound))

	var lines []string
	for _, phase := range phases {
		if phase > a.scan.Phase {
			break
		}
		var line string
		if phase < a.scan.Phase {
			line = doneStyle.Render("✓ " + phase.String())
		} else {
			line = a.spinner.View() + " " + activeStyle.Render(phase.String()+"...")
		}
		if phase == core.PhaseScanning && a.scan.FilesScanned+a.scan.DirsScanned > 0 {
			line += mutedStyle.Render(stats)
		}
		lines = append(lines, line)
	}
	if a.scan.Phase == core.PhaseScanning && a.scan.CurrentPath != "" {
		width := a.width - 12
		if width < 20 {
			width = 20
		}
		lines = append(lines, mutedStyle.Render(runewidth.Truncate(a.scan.CurrentPath, width, "…")))
	}
	if len(lines) == 0 {
		lines = append(lines, "Starting...")
	}

	box := ScanBoxStyle.Render(strings.Join(lines, "\n"))
	if a.width == 0 || a.height == 0 {
		return box
	}
	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, box)
}
