package fsys

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOSLstat(t *testing.T) {
	tmp := t.TempDir()
	file := filepath.Join(tmp, "file.txt")
	require.NoError(t, os.WriteFile(file, []byte("hello"), 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(tmp, "sub"), 0o755))

	var fsys OS

	info, err := fsys.Lstat(file)
	require.NoError(t, err)
	assert.True(t, info.Mode.IsRegular())
	assert.Equal(t, int64(5), info.Size)
	assert.False(t, info.ModTime.IsZero())

	info, err = fsys.Lstat(filepath.Join(tmp, "sub"))
	require.NoError(t, err)
	assert.True(t, info.Mode.IsDir())

	if runtime.GOOS != "windows" {
		link := filepath.Join(tmp, "link")
		require.NoError(t, os.Symlink(file, link))
		info, err = fsys.Lstat(link)
		require.NoError(t, err)
		assert.NotZero(t, info.Mode&fs.ModeSymlink, "lstat must not follow links")
	}

	_, err = fsys.Lstat(filepath.Join(tmp, "missing"))
	require.Error(t, err)
	assert.True(t, IsNotExist(err))
	assert.False(t, IsPermission(err))
}

func TestOSReadDirStreams(t *testing.T) {
	tmp := t.TempDir()
	want := make([]string, 0, readBatch+10)
	for i := 0; i < readBatch+10; i++ {
		name := fmt.Sprintf("f%03d", i)
		want = append(want, name)
		require.NoError(t, os.WriteFile(filepath.Join(tmp, name), nil, 0o644))
	}

	var got []string
	err := OS{}.ReadDir(tmp, func(name string) error {
		got = append(got, name)
		return nil
	})
	require.NoError(t, err)
	sort.Strings(got)
	assert.Equal(t, want, got)

	stop := errors.New("stop")
	calls := 0
	err = OS{}.ReadDir(tmp, func(string) error {
		calls++
		return stop
	})
	assert.ErrorIs(t, err, stop)
	assert.Equal(t, 1, calls)
}

func TestOSRemove(t *testing.T) {
	tmp := t.TempDir()
	dir := filepath.Join(tmp, "d")
	file := filepath.Join(dir, "f")
	require.NoError(t, os.Mkdir(dir, 0o755))
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))

	var fsys OS
	assert.Error(t, fsys.Rmdir(dir), "directory is not empty")
	require.NoError(t, fsys.Unlink(file))
	require.NoError(t, fsys.Rmdir(dir))

	_, err := os.Lstat(dir)
	assert.True(t, os.IsNotExist(err))
	assert.True(t, IsNotExist(fsys.Unlink(file)))
}

func TestAfero(t *testing.T) {
	mem := afero.NewMemMapFs()
	require.NoError(t, mem.MkdirAll("/data/sub", 0o755))
	require.NoError(t, afero.WriteFile(mem, "/data/a.bin", make([]byte, 100), 0o644))
	require.NoError(t, afero.WriteFile(mem, "/data/sub/b.bin", make([]byte, 50), 0o644))

	fsys := NewAfero(mem)

	info, err := fsys.Lstat("/data/a.bin")
	require.NoError(t, err)
	assert.Equal(t, int64(100), info.Size)

	info, err = fsys.Lstat("/data/.")
	require.NoError(t, err)
	assert.True(t, info.Mode.IsDir())

	var names []string
	require.NoError(t, fsys.ReadDir("/data", func(name string) error {
		names = append(names, name)
		return nil
	}))
	sort.Strings(names)
	assert.Equal(t, []string{"a.bin", "sub"}, names)

	assert.Error(t, fsys.Unlink("/data/sub"))
	assert.Error(t, fsys.Rmdir("/data/sub"))
	require.NoError(t, fsys.Unlink("/data/sub/b.bin"))
	require.NoError(t, fsys.Rmdir("/data/sub"))

	_, err = fsys.Lstat("/data/sub")
	assert.True(t, IsNotExist(err))
}

func TestVolumeOf(t *testing.T) {
	switch runtime.GOOS {
	case "linux", "darwin", "freebsd":
	default:
		t.Skip("statfs not supported")
	}

	vol, err := VolumeOf(t.TempDir())
	require.NoError(t, err)
	assert.Positive(t, vol.TotalBytes)
	assert.GreaterOrEqual(t, vol.TotalBytes, vol.FreeBytes)
	assert.GreaterOrEqual(t, vol.UsedPercent(), 0.0)
}

func TestVolumeUsed(t *testing.T) {
	v := Volume{TotalBytes: 1000, FreeBytes: 250}
	assert.Equal(t, int64(750), v.UsedBytes())
	assert.InDelta(t, 75.0, v.UsedPercent(), 0.001)
	assert.Zero(t, Volume{}.UsedPercent())
}
