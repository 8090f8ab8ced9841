package convert

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/leapstack-labs/dumpcsv/internal/dump"
	"github.com/leapstack-labs/dumpcsv/internal/logging"
	"github.com/leapstack-labs/dumpcsv/internal/publish"
	"github.com/leapstack-labs/dumpcsv/internal/registry"
	"github.com/leapstack-labs/dumpcsv/pkg/dialect"
)

// Options configures one conversion.
type Options struct {
	Input     string
	OutputDir string
	Dialect   *dialect.Dialect // nil means the default dialect
	Encoding  string

	MaxOpenTables int
	Reopen        registry.ReopenPolicy

	// ScratchBase is the parent of the scratch directory (OS temp dir when empty).
	ScratchBase string

	Logger *slog.Logger
}

// Result summarises a finished conversion.
type Result struct {
	Input       string                `json:"input"`
	Destination string                `json:"destination"`
	Dialect     string                `json:"dialect"`
	Tables      []registry.TableStats `json:"tables"`
	Statements  int                   `json:"statements"`
	Lines       int                   `json:"lines"`
	Flushes     int                   `json:"flushes"`
	Rows        int64                 `json:"rows"`
	Atomic      bool                  `json:"atomic"`
	Duration    time.Duration         `json:"duration"`
}

// Run converts opts.Input into one CSV per table under
// <OutputDir>/<input base name>-output.
//
// Statements are processed one at a time, in input order. ctx is checked
// between statements. On any error the scratch directory is left as it was
// and the destination is untouched.
func Run(ctx context.Context, opts Options) (*Result, error) {
	start := time.Now()
	logger := logging.OrDiscard(opts.Logger)
	d := opts.Dialect
	if d == nil {
		d = dialect.Default()
	}

	in, err := os.Open(opts.Input)
	if err != nil {
		return nil, fmt.Errorf("failed to open input: %w", err)
	}
	defer in.Close()

	r, err := dump.NewReader(in, opts.Encoding)
	if err != nil {
		return nil, err
	}

	scratch := ScratchDir(opts.ScratchBase, os.Getpid())
	if err := PrepareScratch(scratch); err != nil {
		return nil, err
	}
	logger.Debug("staging output", "scratch", scratch, "dialect", d.Name)

	reg := registry.New(scratch, registry.Options{
		MaxOpen: opts.MaxOpenTables,
		Reopen:  opts.Reopen,
		Logger:  logger,
	})
	defer reg.Close()

	disp := NewDispatcher(d, reg, logger)
	seg := dump.NewSegmenter(r)
	for seg.Next() {
		if err := ctx.Err(); err != nil {
			logger.Warn("conversion cancelled", "scratch", scratch, "line", seg.Statement().Line)
			return nil, fmt.Errorf("conversion cancelled: %w", err)
		}
		if err := disp.Dispatch(seg.Statement().Text); err != nil {
			logger.Error("conversion failed", "scratch", scratch, "line", seg.Statement().Line)
			return nil, err
		}
	}
	if err := seg.Err(); err != nil {
		logger.Error("conversion failed", "scratch", scratch, "line", seg.Lines())
		return nil, err
	}

	if err := reg.FlushAll(); err != nil {
		return nil, fmt.Errorf("failed to close tables: %w", err)
	}

	dest := publish.DestinationPath(opts.OutputDir, opts.Input)
	pub, err := publish.Publish(scratch, dest, logger)
	if err != nil {
		return nil, err
	}

	res := &Result{
		Input:       opts.Input,
		Destination: pub.Destination,
		Dialect:     d.Name,
		Tables:      reg.Stats(),
		Statements:  disp.Statements(),
		Lines:       seg.Lines(),
		Flushes:     reg.Generation(),
		Rows:        disp.Rows(),
		Atomic:      pub.Atomic,
		Duration:    time.Since(start),
	}
	logger.Info("conversion complete",
		"tables", len(res.Tables),
		"rows", res.Rows,
		"statements", res.Statements,
		"lines", res.Lines,
		"flushes", res.Flushes,
		"destination", res.Destination,
		"duration", res.Duration)
	return res, nil
}
