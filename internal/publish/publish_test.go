package publish

import (
	"errors"
	"os"
	"path/filepath"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/dumpcsv/internal/testutil"
)

func makeScratch(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := filepath.Join(t.TempDir(), ".dumpcsv-1")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
	return dir
}

func TestDestinationPath(t *testing.T) {
	assert.Equal(t, filepath.Join("out", "dump.sql-output"), DestinationPath("out", "/data/dump.sql"))
	assert.Equal(t, filepath.Join("out", "x-output"), DestinationPath("out", "x"))
}

func TestPublish_Rename(t *testing.T) {
	scratch := makeScratch(t, map[string]string{"users.csv": "id\n1\n"})
	dest := filepath.Join(t.TempDir(), "nested", "dump.sql-output")

	res, err := Publish(scratch, dest, testutil.NewTestLogger(t))
	require.NoError(t, err)

	assert.Equal(t, &Result{Destination: dest, Atomic: true}, res)
	data, err := os.ReadFile(filepath.Join(dest, "users.csv"))
	require.NoError(t, err)
	assert.Equal(t, "id\n1\n", string(data))

	_, err = os.Stat(scratch)
	assert.True(t, os.IsNotExist(err))
}

func TestPublish_ReplacesExistingDestination(t *testing.T) {
	scratch := makeScratch(t, map[string]string{"new.csv": "a\n"})
	dest := filepath.Join(t.TempDir(), "dump.sql-output")
	require.NoError(t, os.MkdirAll(dest, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dest, "stale.csv"), []byte("old"), 0o644))

	_, err := Publish(scratch, dest, nil)
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(dest, "stale.csv"))
	assert.True(t, os.IsNotExist(err), "stale file should be gone")
	_, err = os.Stat(filepath.Join(dest, "new.csv"))
	assert.NoError(t, err)
}

func TestPublish_CrossDeviceFallback(t *testing.T) {
	orig := rename
	t.Cleanup(func() { rename = orig })
	rename = func(oldpath, newpath string) error {
		return &os.LinkError{Op: "rename", Old: oldpath, New: newpath, Err: syscall.EXDEV}
	}

	scratch := makeScratch(t, map[string]string{"a.csv": "x\n", "b.csv": "y\n"})
	dest := filepath.Join(t.TempDir(), "dump.sql-output")
	logger, logs := testutil.NewCaptureLogger(t)

	res, err := Publish(scratch, dest, logger)
	require.NoError(t, err)

	assert.False(t, res.Atomic)
	assert.True(t, logs.Contains("publish is not atomic"), "copy fallback must be surfaced")
	for name, want := range map[string]string{"a.csv": "x\n", "b.csv": "y\n"} {
		data, err := os.ReadFile(filepath.Join(dest, name))
		require.NoError(t, err)
		assert.Equal(t, want, string(data))
	}
	_, err = os.Stat(scratch)
	assert.True(t, os.IsNotExist(err))
}

func TestPublish_RenameError(t *testing.T) {
	orig := rename
	t.Cleanup(func() { rename = orig })
	boom := errors.New("permission denied")
	rename = func(string, string) error { return boom }

	scratch := makeScratch(t, nil)
	_, err := Publish(scratch, filepath.Join(t.TempDir(), "out"), nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
}
