// Package publish moves a finished scratch directory to its destination.
package publish

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"syscall"

	"github.com/leapstack-labs/dumpcsv/internal/logging"
)

// rename is swapped out in tests to simulate cross-device moves.
var rename = os.Rename

// Result describes a completed publish.
type Result struct {
	Destination string `json:"destination"`
	// Atomic is false when the scratch tree had to be copied because it
	// lives on a different filesystem; readers could observe a partially
	// populated destination while the copy ran.
	Atomic bool `json:"atomic"`
}

// DestinationPath returns <outputDir>/<base name of input>-output.
func DestinationPath(outputDir, input string) string {
	return filepath.Join(outputDir, filepath.Base(input)+"-output")
}

// Publish replaces dest with the scratch directory. An existing dest is
// removed recursively first, without backup. The move is a rename when
// scratch and dest share a filesystem, otherwise a copy followed by removal
// of scratch.
func Publish(scratch, dest string, logger *slog.Logger) (*Result, error) {
	logger = logging.OrDiscard(logger)

	if _, err := os.Lstat(dest); err == nil {
		logger.Info("removing existing destination", "path", dest)
		if err := os.RemoveAll(dest); err != nil {
			return nil, fmt.Errorf("failed to remove existing destination %s: %w", dest, err)
		}
	} else if !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to stat destination %s: %w", dest, err)
	}

	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	err := rename(scratch, dest)
	if err == nil {
		logger.Info("published output", "path", dest)
		return &Result{Destination: dest, Atomic: true}, nil
	}
	if !errors.Is(err, syscall.EXDEV) {
		return nil, fmt.Errorf("failed to move %s to %s: %w", scratch, dest, err)
	}

	logger.Warn("scratch and destination are on different filesystems; copying, publish is not atomic",
		"scratch", scratch, "path", dest)
	if err := copyTree(scratch, dest); err != nil {
		return nil, fmt.Errorf("failed to copy %s to %s: %w", scratch, dest, err)
	}
	if err := os.RemoveAll(scratch); err != nil {
		return nil, fmt.Errorf("failed to remove scratch directory %s: %w", scratch, err)
	}

	logger.Info("published output", "path", dest, "atomic", false)
	return &Result{Destination: dest, Atomic: false}, nil
}

// copyTree copies the directory src to dst, which must not exist.
func copyTree(src, dst string) error {
	return filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)

		if d.IsDir() {
			return os.MkdirAll(target, 0o755)
		}
		return copyFile(path, target)
	})
}

// copyFile copies a file from src to dst.
func copyFile(src, dst string) error {
	srcFile, err := os.Open(src)
	if err != nil {
		return err
	}
	defer srcFile.Close()

	dstFile, err := os.Create(dst)
	if err != nil {
		return err
	}

	if _, err := io.Copy(dstFile, srcFile); err != nil {
		dstFile.Close()
		return err
	}
	return dstFile.Close()
}
