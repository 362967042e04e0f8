package ui

import (
	"context"
	"fmt"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/lumipallolabs/duview/internal/config"
	"github.com/lumipallolabs/duview/internal/core"
	"github.com/lumipallolabs/duview/internal/fsys/fsystest"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	return &config.Config{ConfirmDelete: true, Color: false, LogFile: "debug.log"}
}

// memApp returns an app over /top holding f0..f2 (10 bytes each) and
// sub/x (100 bytes)
func memApp(t *testing.T, cfg *config.Config) (afero.Fs, *fsystest.Faulty, App) {
	t.Helper()
	mem, fs := fsystest.NewMem()
	require.NoError(t, mem.MkdirAll("/top/sub", 0o755))
	for i := 0; i < 3; i++ {
		require.NoError(t, afero.WriteFile(mem, fmt.Sprintf("/top/f%d", i), make([]byte, 10), 0o644))
	}
	require.NoError(t, afero.WriteFile(mem, "/top/sub/x", make([]byte, 100), 0o644))
	return mem, fs, NewApp(context.Background(), cfg, fs, "/top")
}

// load runs the scan and size phases to completion
func load(t *testing.T, a App) App {
	t.Helper()
	m, _ := a.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	m, _ = m.Update(scanStartMsg{})

	msg := m.(App).startScan()()
	for {
		var cmd tea.Cmd
		m, cmd = m.Update(msg)
		if cmd == nil {
			break
		}
		msg = cmd()
		if _, ok := msg.(tea.QuitMsg); ok {
			break
		}
	}
	return m.(App)
}

func press(t *testing.T, a App, keys ...string) App {
	t.Helper()
	var m tea.Model = a
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "up":
			msg = tea.KeyMsg{Type: tea.KeyUp}
		case "down":
			msg = tea.KeyMsg{Type: tea.KeyDown}
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "backspace":
			msg = tea.KeyMsg{Type: tea.KeyBackspace}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		m, _ = m.Update(msg)
	}
	return m.(App)
}

func highlighted(a App) string {
	return a.Navigator().Highlighted().Name
}

func TestAppLoads(t *testing.T) {
	_, _, a := memApp(t, testConfig())
	a = load(t, a)

	require.NotNil(t, a.Navigator())
	require.NoError(t, a.Err())
	assert.Equal(t, ".", highlighted(a))
	assert.Equal(t, core.PhaseComplete, a.scan.Phase)

	assert.Contains(t, a.canvas.Line(0), "duview --- Press ? for help")
	assert.Contains(t, a.canvas.Line(1), "Modified")
	assert.Contains(t, a.canvas.Line(23), "Path: /top")
	assert.Contains(t, a.canvas.Line(23), "Total Disk Usage: 130 B")
	assert.NotEmpty(t, a.View())
}

func TestAppNavigation(t *testing.T) {
	_, _, a := memApp(t, testConfig())
	a = load(t, a)

	a = press(t, a, "down")
	assert.Equal(t, "..", highlighted(a))
	a = press(t, a, "j", "j")
	assert.Equal(t, "f1", highlighted(a))
	a = press(t, a, "k")
	assert.Equal(t, "f0", highlighted(a))

	a = press(t, a, "down", "down", "down", "enter")
	assert.Equal(t, ".", highlighted(a))
	assert.Equal(t, "/top/sub", a.Navigator().Dir())

	a = press(t, a, "backspace")
	assert.Equal(t, "sub", highlighted(a))
	assert.Equal(t, "/top", a.Navigator().Dir())
}

func TestAppDeleteConfirmed(t *testing.T) {
	mem, _, a := memApp(t, testConfig())
	a = load(t, a)

	a = press(t, a, "down", "down", "d")
	assert.Contains(t, a.canvas.Line(22), "Delete f0 (10 B)? [y/N]")
	exists, _ := afero.Exists(mem, "/top/f0")
	assert.True(t, exists, "nothing is removed before confirmation")

	a = press(t, a, "y")
	exists, _ = afero.Exists(mem, "/top/f0")
	assert.False(t, exists)
	assert.Equal(t, "f1", highlighted(a))
	assert.Equal(t, 1, a.Navigator().Freed().Entries)
	assert.Contains(t, a.canvas.Line(22), "Deleted f0")
	assert.Contains(t, a.canvas.Line(23), "Total Disk Usage: 120 B")
	assert.Contains(t, press(t, a, "?").View(), "Freed this session: 10 B in 1 deletions")
}

func TestAppDeleteCancelled(t *testing.T) {
	mem, _, a := memApp(t, testConfig())
	a = load(t, a)

	a = press(t, a, "down", "down", "d", "n")
	exists, _ := afero.Exists(mem, "/top/f0")
	assert.True(t, exists)
	assert.Equal(t, "f0", highlighted(a))
	assert.Contains(t, a.canvas.Line(22), "Delete cancelled")

	// a navigation key also cancels and is consumed
	a = press(t, a, "d", "down")
	exists, _ = afero.Exists(mem, "/top/f0")
	assert.True(t, exists)
	assert.Equal(t, "f0", highlighted(a))
}

func TestAppDeleteWithoutConfirm(t *testing.T) {
	cfg := testConfig()
	cfg.ConfirmDelete = false
	mem, _, a := memApp(t, cfg)
	a = load(t, a)

	a = press(t, a, "down", "down", "down", "down", "down", "d")
	exists, _ := afero.DirExists(mem, "/top/sub")
	assert.False(t, exists)
	assert.Equal(t, "f2", highlighted(a), "deleting the last entry highlights the previous one")
	assert.Equal(t, int64(100), a.Navigator().Freed().Bytes)
}

func TestAppDeleteDotRefused(t *testing.T) {
	mem, _, a := memApp(t, testConfig())
	a = load(t, a)

	a = press(t, a, "d")
	assert.Equal(t, ".", highlighted(a))
	assert.Contains(t, a.canvas.Line(22), "Cannot delete")
	exists, _ := afero.DirExists(mem, "/top")
	assert.True(t, exists)

	// no confirmation is pending
	a = press(t, a, "y")
	assert.Contains(t, a.canvas.Line(22), "Cannot delete")
}

func TestAppDeleteFailure(t *testing.T) {
	mem, fs, a := memApp(t, testConfig())
	fs.Fail(fsystest.OpUnlink, "/top/f0", fmt.Errorf("device busy"))
	a = load(t, a)

	a = press(t, a, "down", "down", "d", "y")
	exists, _ := afero.Exists(mem, "/top/f0")
	assert.True(t, exists)
	assert.Equal(t, "f0", highlighted(a))
	assert.Contains(t, a.canvas.Line(22), "Delete failed")
	assert.Zero(t, a.Navigator().Freed().Entries)
}

func TestAppHelp(t *testing.T) {
	_, _, a := memApp(t, testConfig())
	a = load(t, a)

	a = press(t, a, "?")
	assert.True(t, a.help.IsVisible())
	assert.Contains(t, a.View(), "Keyboard Shortcuts")
	assert.Contains(t, a.View(), "Freed this session: 0 B in 0 deletions")

	a = press(t, a, "down")
	assert.Equal(t, ".", highlighted(a), "keys are swallowed while help is shown")

	a = press(t, a, "esc")
	assert.False(t, a.help.IsVisible())
	assert.Contains(t, a.View(), "duview --- Press ? for help")
}

func TestAppResize(t *testing.T) {
	_, _, a := memApp(t, testConfig())
	a = load(t, a)

	m, _ := a.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	a = m.(App)
	rows, cols := a.canvas.Size()
	assert.Equal(t, 30, rows)
	assert.Equal(t, 100, cols)
	assert.Contains(t, a.canvas.Line(29), "Total Disk Usage")
	_, maxRow := a.Navigator().Window()
	assert.Equal(t, 27, maxRow)
}

func TestAppKeysIgnoredWhileScanning(t *testing.T) {
	_, _, a := memApp(t, testConfig())
	m, _ := a.Update(scanStartMsg{})
	a = m.(App)

	a = press(t, a, "down", "d", "?")
	assert.Nil(t, a.Navigator())
	assert.False(t, a.help.IsVisible())
	assert.Contains(t, a.View(), "Scanning files")
}

func TestAppQuit(t *testing.T) {
	_, _, a := memApp(t, testConfig())
	a = load(t, a)

	m, cmd := a.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.Nil(t, m.(App).Navigator().Highlighted(), "the tree is released on quit")
}

func TestAppScanError(t *testing.T) {
	_, fs, a := memApp(t, testConfig())
	fs.Deny(fsystest.OpReadDir, "/top")

	a = load(t, a)
	require.Error(t, a.Err())
	assert.Nil(t, a.Navigator())
	assert.Contains(t, a.View(), "Error:")
}
