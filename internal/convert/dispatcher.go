package convert

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/leapstack-labs/dumpcsv/internal/logging"
	"github.com/leapstack-labs/dumpcsv/internal/registry"
	"github.com/leapstack-labs/dumpcsv/pkg/core"
	"github.com/leapstack-labs/dumpcsv/pkg/dialect"
)

// legacyTableType is removed from every statement before parsing; old
// mysqldump versions emit it and current grammars reject it.
const legacyTableType = " TYPE=MyISAM"

// Dispatcher applies parsed statements to a table registry.
type Dispatcher struct {
	dialect  *dialect.Dialect
	registry *registry.Registry
	logger   *slog.Logger

	statements int
	rows       int64
}

// NewDispatcher creates a dispatcher for one run.
func NewDispatcher(d *dialect.Dialect, reg *registry.Registry, logger *slog.Logger) *Dispatcher {
	return &Dispatcher{
		dialect:  d,
		registry: reg,
		logger:   logging.OrDiscard(logger),
	}
}

// Dispatch parses one raw statement and applies every CREATE TABLE, INSERT
// and REPLACE it contains. Text that does not parse is dropped; only
// registry I/O errors are returned.
func (d *Dispatcher) Dispatch(text string) error {
	d.statements++
	text = strings.ReplaceAll(text, legacyTableType, "")

	stmts, err := d.dialect.Parse(text)
	if err != nil {
		d.logger.Debug("dropping statement", "dialect", d.dialect.Name, "error", err, "text", preview(text))
		return nil
	}

	for _, stmt := range stmts {
		switch s := stmt.(type) {
		case *core.CreateTable:
			err = d.createTable(s)
		case *core.Insert:
			err = d.insert(s)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func (d *Dispatcher) createTable(s *core.CreateTable) error {
	if err := d.makeRoom(); err != nil {
		return err
	}
	_, err := d.registry.Create(TableKey(s.Name), StripAll(s.Columns))
	return err
}

func (d *Dispatcher) insert(s *core.Insert) error {
	name := TableKey(s.Table)
	if _, ok := d.registry.Get(name); !ok {
		if err := d.makeRoom(); err != nil {
			return err
		}
		if _, _, err := d.registry.GetOrCreate(name, StripAll(s.Columns)); err != nil {
			return err
		}
	}

	for _, row := range s.Rows {
		cells := make([]string, len(row))
		for i, v := range row {
			cells[i] = NormalizeValue(v)
		}
		if err := d.registry.AppendRow(name, cells); err != nil {
			return err
		}
		d.rows++
	}
	return nil
}

// makeRoom flushes the live set when the next creation would be the
// MaxOpen-th of the current generation.
func (d *Dispatcher) makeRoom() error {
	if !d.registry.NeedsFlush() {
		return nil
	}
	d.logger.Debug("table limit reached", "live", d.registry.Len())
	if err := d.registry.FlushAll(); err != nil {
		return fmt.Errorf("failed to flush tables: %w", err)
	}
	return nil
}

// Statements returns the number of raw statements seen.
func (d *Dispatcher) Statements() int { return d.statements }

// Rows returns the number of rows written.
func (d *Dispatcher) Rows() int64 { return d.rows }

// preview shortens statement text for log lines.
func preview(text string) string {
	const limit = 120
	text = strings.TrimSpace(text)
	if len(text) <= limit {
		return text
	}
	return text[:limit] + "..."
}
