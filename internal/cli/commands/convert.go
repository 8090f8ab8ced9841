package commands

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/dumpcsv/internal/cli/output"
	"github.com/leapstack-labs/dumpcsv/internal/convert"
	"github.com/leapstack-labs/dumpcsv/internal/publish"
	"github.com/leapstack-labs/dumpcsv/internal/state"
	"github.com/leapstack-labs/dumpcsv/pkg/dialect"
)

// NewConvertCommand creates the convert command. The root command runs the
// same conversion when invoked without a subcommand.
func NewConvertCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "convert",
		Short: "Convert a SQL dump into one CSV file per table",
		Long: `Stream a SQL dump and write <output-dir>/<input name>-output/<table>.csv.

Only CREATE TABLE, INSERT and REPLACE statements are used. Statements that
fail to parse are skipped. The result directory replaces any existing one.`,
		Example: `  # Convert a MySQL dump
  dumpcsv convert --input shop.sql --output-dir ./export

  # Same, without the subcommand
  dumpcsv -i shop.sql --output-dir ./export

  # PostgreSQL dump in Latin-1, keep rows of tables evicted mid-run
  dumpcsv -i legacy.sql --output-dir out --dialect postgres --encoding latin1 --reopen append`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return RunConvert(cmd)
		},
	}
}

// RunConvert runs one conversion with the loaded configuration.
func RunConvert(cmd *cobra.Command) error {
	c := NewCommandContext(cmd)
	cfg := c.Cfg
	logger := c.Logger

	if err := cfg.ValidateConvert(); err != nil {
		return err
	}
	if cfg.Dest != "" {
		logger.Debug("dest is accepted but unused", slog.String("dest", cfg.Dest))
	}

	d := dialect.Resolve(cfg.Dialect)
	if _, ok := dialect.Get(cfg.Dialect); !ok {
		logger.Warn("unknown dialect, using fallback grammar",
			slog.String("dialect", cfg.Dialect), slog.String("using", d.Name))
	}

	var (
		store *state.SQLiteStore
		run   *state.Run
	)
	if cfg.History {
		s, err := c.OpenStore()
		if err != nil {
			logger.Warn("run history disabled", slog.String("error", err.Error()))
		} else {
			defer s.Close()
			store = s
			dest := publish.DestinationPath(cfg.OutputDir, cfg.Input)
			if run, err = store.CreateRun(cfg.Input, dest, d.Name); err != nil {
				logger.Warn("failed to record run", slog.String("error", err.Error()))
			}
		}
	}

	res, err := convert.Run(cmd.Context(), convert.Options{
		Input:         cfg.Input,
		OutputDir:     cfg.OutputDir,
		Dialect:       d,
		Encoding:      cfg.Encoding,
		MaxOpenTables: cfg.MaxOpenTables,
		Reopen:        cfg.Reopen,
		ScratchBase:   cfg.ScratchDir,
		Logger:        logger,
	})

	if store != nil && run != nil {
		var recErr error
		if err != nil {
			recErr = store.FailRun(run.ID, err.Error())
		} else {
			recErr = store.CompleteRun(run.ID, state.RunSummary{
				Tables:     len(res.Tables),
				Rows:       res.Rows,
				Statements: res.Statements,
				Atomic:     res.Atomic,
			})
		}
		if recErr != nil {
			logger.Warn("failed to update run history", slog.String("error", recErr.Error()))
		}
	}

	if err != nil {
		return err
	}

	runID := ""
	if run != nil {
		runID = run.ID
	}
	return renderConvert(c.Renderer, runID, res)
}

func renderConvert(r *output.Renderer, runID string, res *convert.Result) error {
	switch r.EffectiveMode() {
	case output.ModeJSON:
		return r.JSON(convertOutput(runID, res))
	case output.ModeMarkdown:
		convertMarkdown(r, res)
	default:
		convertText(r, res)
	}
	return nil
}

func convertOutput(runID string, res *convert.Result) output.ConvertOutput {
	tables := make([]output.TableInfo, 0, len(res.Tables))
	for _, t := range res.Tables {
		tables = append(tables, output.TableInfo{Name: t.Name, File: t.File, Rows: t.Rows})
	}
	return output.ConvertOutput{
		RunID:       runID,
		Input:       res.Input,
		Destination: res.Destination,
		Dialect:     res.Dialect,
		Atomic:      res.Atomic,
		Tables:      tables,
		Summary: output.ConvertStats{
			Tables:     len(res.Tables),
			Statements: res.Statements,
			Lines:      res.Lines,
			Flushes:    res.Flushes,
			Rows:       res.Rows,
			DurationMS: float64(res.Duration.Microseconds()) / 1000,
		},
	}
}

func tableRows(res *convert.Result) [][]string {
	rows := make([][]string, 0, len(res.Tables))
	for _, t := range res.Tables {
		rows = append(rows, []string{t.Name, t.File, strconv.FormatInt(t.Rows, 10)})
	}
	return rows
}

func convertText(r *output.Renderer, res *convert.Result) {
	r.Header(1, "Converted "+filepath.Base(res.Input))
	if len(res.Tables) > 0 {
		r.Table([]string{"Table", "File", "Rows"}, tableRows(res))
	} else {
		r.Muted("No tables found")
	}
	r.Println("")
	r.Success(fmt.Sprintf("%d tables, %d rows from %d statements in %s",
		len(res.Tables), res.Rows, res.Statements, res.Duration.Round(time.Millisecond)))
	r.Muted("Output: " + res.Destination)
	if !res.Atomic {
		r.Warning("output was copied across filesystems; the publish was not atomic")
	}
}

func convertMarkdown(r *output.Renderer, res *convert.Result) {
	r.Println(output.FormatHeader(1, "Converted "+filepath.Base(res.Input)))
	r.Println("")
	r.Println(output.FormatKeyValue("Dialect", res.Dialect))
	r.Println(output.FormatKeyValue("Destination", res.Destination))
	r.Println(output.FormatKeyValue("Atomic publish", strconv.FormatBool(res.Atomic)))
	r.Println("")
	r.Println(output.FormatHeader(2, "Tables"))
	r.Println("")
	if len(res.Tables) > 0 {
		r.Table([]string{"Table", "File", "Rows"}, tableRows(res))
	} else {
		r.Println("No tables found.")
	}
	r.Println("")
	r.Printf("**Total:** %d tables, %d rows, %d statements\n", len(res.Tables), res.Rows, res.Statements)
}
