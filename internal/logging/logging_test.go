package logging

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitDisabled(t *testing.T) {
	path := filepath.Join(t.TempDir(), "debug.log")

	closer, err := Init(false, path)
	require.NoError(t, err)
	Debug.Info().Msg("dropped")
	require.NoError(t, closer.Close())

	assert.False(t, Enabled)
	assert.NoFileExists(t, path)
}

func TestInitWritesComponents(t *testing.T) {
	path := filepath.Join(t.TempDir(), "debug.log")
	t.Cleanup(func() { Init(false, "") })

	closer, err := Init(true, path)
	require.NoError(t, err)
	Debug.Info().Str("path", "/tmp").Msg("from ui")
	Scanner.Debug().Msg("from scanner")
	require.NoError(t, closer.Close())
	assert.True(t, Enabled)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 2)

	var first, second map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &first))
	require.NoError(t, json.Unmarshal([]byte(lines[1]), &second))

	assert.Equal(t, "ui", first["component"])
	assert.Equal(t, "from ui", first["message"])
	assert.Equal(t, "/tmp", first["path"])
	assert.Contains(t, first, "time")
	assert.Equal(t, "scanner", second["component"])
	assert.Equal(t, "debug", second["level"])
}

func TestInitAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "debug.log")
	require.NoError(t, os.WriteFile(path, []byte("{\"message\":\"old\"}\n"), 0o644))
	t.Cleanup(func() { Init(false, "") })

	closer, err := Init(true, path)
	require.NoError(t, err)
	Debug.Info().Msg("new")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "old")
	assert.Contains(t, string(data), "new")
}

func TestInitUnwritableFileDisablesLogging(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "debug.log")
	t.Cleanup(func() { Init(false, "") })

	closer, err := Init(true, path)
	require.Error(t, err)
	require.NoError(t, closer.Close())

	assert.False(t, Enabled)
	assert.Equal(t, zerolog.Disabled, Debug.GetLevel(), "nothing may reach the terminal")
	assert.Equal(t, zerolog.Disabled, Scanner.GetLevel())
	assert.Equal(t, zerolog.Disabled, Remover.GetLevel())
	assert.NoFileExists(t, path)
}

func TestInitRemoverComponent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "debug.log")
	t.Cleanup(func() { Init(false, "") })

	closer, err := Init(true, path)
	require.NoError(t, err)
	Remover.Debug().Msg("removed")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var line map[string]any
	require.NoError(t, json.Unmarshal(data, &line))
	assert.Equal(t, "remover", line["component"])
}
