package output

// ConvertOutput is the JSON shape of a finished conversion.
type ConvertOutput struct {
	RunID       string       `json:"run_id,omitempty"`
	Input       string       `json:"input"`
	Destination string       `json:"destination"`
	Dialect     string       `json:"dialect"`
	Atomic      bool         `json:"atomic"`
	Tables      []TableInfo  `json:"tables"`
	Summary     ConvertStats `json:"summary"`
}

// TableInfo describes one produced CSV file.
type TableInfo struct {
	Name string `json:"name"`
	File string `json:"file"`
	Rows int64  `json:"rows"`
}

// ConvertStats holds conversion counters.
type ConvertStats struct {
	Tables     int     `json:"tables"`
	Statements int     `json:"statements"`
	Lines      int     `json:"lines"`
	Flushes    int     `json:"flushes"`
	Rows       int64   `json:"rows"`
	DurationMS float64 `json:"duration_ms"`
}

// DialectInfo describes one registered grammar.
type DialectInfo struct {
	Name        string   `json:"name"`
	Aliases     []string `json:"aliases,omitempty"`
	Description string   `json:"description,omitempty"`
	Quotes      []string `json:"identifier_quotes"`
	Default     bool     `json:"default,omitempty"`
}

// HistoryOutput is the JSON shape of the history listing.
type HistoryOutput struct {
	Runs []RunInfo `json:"runs"`
}

// RunInfo describes one recorded conversion.
type RunInfo struct {
	ID          string  `json:"id"`
	Status      string  `json:"status"`
	Input       string  `json:"input"`
	Destination string  `json:"destination"`
	Dialect     string  `json:"dialect"`
	Tables      int     `json:"tables"`
	Rows        int64   `json:"rows"`
	StartedAt   string  `json:"started_at"`
	DurationMS  float64 `json:"duration_ms,omitempty"`
	Error       string  `json:"error,omitempty"`
}
