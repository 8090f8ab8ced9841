package convert

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

// ScratchDir returns the private staging directory for process pid under
// base (the OS temp dir when empty).
func ScratchDir(base string, pid int) string {
	if base == "" {
		base = os.TempDir()
	}
	return filepath.Join(base, ".dumpcsv-"+strconv.Itoa(pid))
}

// PrepareScratch creates an empty scratch directory, removing a stale one
// left by an earlier process with the same pid.
func PrepareScratch(dir string) error {
	if err := os.RemoveAll(dir); err != nil {
		return fmt.Errorf("failed to clear scratch directory %s: %w", dir, err)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create scratch directory %s: %w", dir, err)
	}
	return nil
}
