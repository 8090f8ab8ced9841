package commands

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/dumpcsv/internal/cli/output"
	"github.com/leapstack-labs/dumpcsv/internal/state"
)

// HistoryOptions holds options for the history command.
type HistoryOptions struct {
	Limit int
}

// NewHistoryCommand creates the history command.
func NewHistoryCommand() *cobra.Command {
	opts := &HistoryOptions{}
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent conversions",
		Long:  `List recorded conversion runs, newest first.`,
		Example: `  # Last 20 runs
  dumpcsv history

  # Last 5 runs as JSON
  dumpcsv history --limit 5 -o json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runHistory(cmd, opts)
		},
	}

	cmd.Flags().IntVarP(&opts.Limit, "limit", "n", 20, "Maximum number of runs to show")
	return cmd
}

func runHistory(cmd *cobra.Command, opts *HistoryOptions) error {
	if opts.Limit < 1 {
		return fmt.Errorf("--limit must be at least 1")
	}

	c := NewCommandContext(cmd)
	store, err := c.OpenStore()
	if err != nil {
		return fmt.Errorf("failed to open run history: %w", err)
	}
	defer store.Close()

	runs, err := store.ListRuns(opts.Limit)
	if err != nil {
		return err
	}
	return renderHistory(c.Renderer, runs)
}

func renderHistory(r *output.Renderer, runs []*state.Run) error {
	infos := make([]output.RunInfo, 0, len(runs))
	for _, run := range runs {
		infos = append(infos, output.RunInfo{
			ID:          run.ID,
			Status:      string(run.Status),
			Input:       run.Input,
			Destination: run.Destination,
			Dialect:     run.Dialect,
			Tables:      run.Tables,
			Rows:        run.Rows,
			StartedAt:   run.StartedAt.Format(time.RFC3339),
			DurationMS:  float64(run.Duration().Microseconds()) / 1000,
			Error:       run.Error,
		})
	}

	mode := r.EffectiveMode()
	if mode == output.ModeJSON {
		return r.JSON(output.HistoryOutput{Runs: infos})
	}

	if mode == output.ModeMarkdown {
		r.Println(output.FormatHeader(1, "Run History"))
		r.Println("")
	} else {
		r.Header(1, "Run History")
	}
	if len(infos) == 0 {
		r.Println("No runs recorded.")
		return nil
	}

	rows := make([][]string, 0, len(infos))
	for _, info := range infos {
		status := info.Status
		if info.Error != "" {
			status += ": " + info.Error
		}
		rows = append(rows, []string{
			shortID(info.ID),
			info.StartedAt,
			status,
			info.Dialect,
			info.Input,
			strconv.Itoa(info.Tables),
			strconv.FormatInt(info.Rows, 10),
		})
	}
	r.Table([]string{"ID", "Started", "Status", "Dialect", "Input", "Tables", "Rows"}, rows)
	return nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
