// Package registry owns the per-table CSV outputs of a conversion.
//
// Tables are keyed by their quote-stripped name. Each live table holds one
// open file in the scratch directory; the number of live tables is bounded
// by the caller through FlushAll.
package registry

import (
	"encoding/csv"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/leapstack-labs/dumpcsv/internal/logging"
)

// DefaultMaxOpen is the number of tables at which the live set is flushed.
const DefaultMaxOpen = 50

// ErrUnknownTable is returned by AppendRow for a name with no live table.
var ErrUnknownTable = errors.New("unknown table")

// Options configures a Registry.
type Options struct {
	// MaxOpen bounds the live set; see NeedsFlush. Values below 1 mean DefaultMaxOpen.
	MaxOpen int

	// Reopen decides what happens to the file of a table created again
	// after it was flushed.
	Reopen ReopenPolicy

	Logger *slog.Logger
}

// Table is one live output.
type Table struct {
	Name   string
	Header []string
	Path   string

	file *os.File
	w    *csv.Writer
}

// TableStats summarises one output file over the whole run.
type TableStats struct {
	Name string `json:"name"`
	File string `json:"file"`
	Rows int64  `json:"rows"`
}

// Registry maps table names to live tables, in creation order.
type Registry struct {
	mu sync.Mutex

	dir     string
	maxOpen int
	reopen  ReopenPolicy
	logger  *slog.Logger

	// live maps quote-stripped names to open tables
	live  map[string]*Table
	order []string

	// stats covers every table created this run, live or flushed
	stats      map[string]*TableStats
	statsOrder []string

	// files assigns each table name its file for the whole run; claimed
	// holds the case-folded file names in use
	files   map[string]string
	claimed map[string]string

	generation int
}

// New creates a registry writing into dir, which must exist.
func New(dir string, opts Options) *Registry {
	if opts.MaxOpen < 1 {
		opts.MaxOpen = DefaultMaxOpen
	}
	if opts.Reopen == "" {
		opts.Reopen = ReopenTruncate
	}
	return &Registry{
		dir:     dir,
		maxOpen: opts.MaxOpen,
		reopen:  opts.Reopen,
		logger:  logging.OrDiscard(opts.Logger),
		live:    make(map[string]*Table),
		stats:   make(map[string]*TableStats),
		files:   make(map[string]string),
		claimed: make(map[string]string),
	}
}

// Len returns the number of live tables.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.live)
}

// Generation returns how many times the live set has been flushed.
func (r *Registry) Generation() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.generation
}

// NeedsFlush reports whether creating one more table would make it the
// MaxOpen-th of the current generation, i.e. (live+1) % MaxOpen == 0.
func (r *Registry) NeedsFlush() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return (len(r.live)+1)%r.maxOpen == 0
}

// Get returns the live table registered under name.
func (r *Registry) Get(name string) (*Table, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.live[name]
	return t, ok
}

// Create opens a new output for name and writes its header. A live table
// with the same name is closed and replaced; its file is truncated.
func (r *Registry) Create(name string, header []string) (*Table, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.create(name, header)
}

// GetOrCreate returns the live table for name, creating it with header when
// there is none. created reports which happened.
func (r *Registry) GetOrCreate(name string, header []string) (t *Table, created bool, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if t, ok := r.live[name]; ok {
		return t, false, nil
	}
	t, err = r.create(name, header)
	return t, err == nil, err
}

func (r *Registry) create(name string, header []string) (*Table, error) {
	appendMode := false
	if old, ok := r.live[name]; ok {
		if err := old.close(); err != nil {
			return nil, fmt.Errorf("failed to close table %s: %w", name, err)
		}
		r.removeFromOrder(name)
	} else if _, seen := r.stats[name]; seen && r.reopen == ReopenAppend {
		appendMode = true
	}

	file, assigned := r.fileFor(name)
	path := filepath.Join(r.dir, file)
	flags := os.O_CREATE | os.O_WRONLY | os.O_TRUNC
	if appendMode {
		flags = os.O_CREATE | os.O_WRONLY | os.O_APPEND
	}

	f, err := os.OpenFile(path, flags, 0o644)
	if err != nil {
		if assigned {
			r.release(name)
		}
		return nil, fmt.Errorf("failed to open output for table %s: %w", name, err)
	}

	t := &Table{
		Name:   name,
		Header: header,
		Path:   path,
		file:   f,
		w:      csv.NewWriter(f),
	}

	if !appendMode {
		if err := t.w.Write(header); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to write header for table %s: %w", name, err)
		}
		t.w.Flush()
		if err := t.w.Error(); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to write header for table %s: %w", name, err)
		}
	}

	r.live[name] = t
	r.order = append(r.order, name)
	r.track(name, path, appendMode)

	r.logger.Debug("created table", "name", name, "path", path, "append", appendMode, "columns", len(header))
	return t, nil
}

// fileFor returns the file name of table name, assigning one on first use.
// Names that map to a file already held by another table get a numeric
// suffix, so two tables never share a file. assigned reports a new
// assignment.
func (r *Registry) fileFor(name string) (file string, assigned bool) {
	if f, ok := r.files[name]; ok {
		return f, false
	}
	base := strings.TrimSuffix(FileName(name), ".csv")
	file = base + ".csv"
	for i := 2; ; i++ {
		if _, taken := r.claimed[strings.ToLower(file)]; !taken {
			break
		}
		file = fmt.Sprintf("%s-%d.csv", base, i)
	}
	if file != FileName(name) {
		r.logger.Warn("table file name collides, using a suffix",
			"name", name, "held_by", r.claimed[strings.ToLower(FileName(name))], "file", file)
	}
	r.files[name] = file
	r.claimed[strings.ToLower(file)] = name
	return file, true
}

func (r *Registry) release(name string) {
	delete(r.claimed, strings.ToLower(r.files[name]))
	delete(r.files, name)
}

// track records the table in the run statistics.
func (r *Registry) track(name, path string, keepRows bool) {
	st, ok := r.stats[name]
	if !ok {
		st = &TableStats{Name: name}
		r.stats[name] = st
		r.statsOrder = append(r.statsOrder, name)
	}
	st.File = filepath.Base(path)
	if !keepRows {
		st.Rows = 0
	}
}

func (r *Registry) removeFromOrder(name string) {
	for i, n := range r.order {
		if n == name {
			r.order = append(r.order[:i], r.order[i+1:]...)
			return
		}
	}
}

// AppendRow writes cells as one CSV record to the live table name.
// No arity check against the header is made.
func (r *Registry) AppendRow(name string, cells []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.live[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownTable, name)
	}
	if err := t.w.Write(cells); err != nil {
		return fmt.Errorf("failed to write row to table %s: %w", name, err)
	}
	r.stats[name].Rows++
	return nil
}

// FlushAll flushes and closes every live table and empties the registry.
func (r *Registry) FlushAll() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.flushAll()
}

func (r *Registry) flushAll() error {
	if len(r.live) == 0 {
		return nil
	}

	var errs []error
	for _, name := range r.order {
		if err := r.live[name].close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close table %s: %w", name, err))
		}
	}

	count := len(r.order)
	r.live = make(map[string]*Table)
	r.order = nil
	r.generation++

	r.logger.Info("flushed tables", "count", count, "generation", r.generation)
	return errors.Join(errs...)
}

// Close releases every live handle. It is safe to call more than once and
// is meant to be deferred; FlushAll is the checked path.
func (r *Registry) Close() error {
	return r.FlushAll()
}

// Stats returns per-table statistics in first-creation order.
func (r *Registry) Stats() []TableStats {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]TableStats, 0, len(r.statsOrder))
	for _, name := range r.statsOrder {
		out = append(out, *r.stats[name])
	}
	return out
}

func (t *Table) close() error {
	t.w.Flush()
	werr := t.w.Error()
	cerr := t.file.Close()
	if werr != nil {
		return werr
	}
	return cerr
}

// FileName maps a table name to its CSV file name. Path separators are
// replaced so every table lands directly in the output directory.
func FileName(name string) string {
	r := strings.NewReplacer("/", "_", "\\", "_", "\x00", "_")
	return r.Replace(name) + ".csv"
}
