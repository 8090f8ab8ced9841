// Package dump reads SQL dump text and splits it into raw statements.
package dump

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"
)

// startPattern matches a line that opens a handled statement. It lets the
// segmenter split dumps whose statements lack terminating semicolons.
var startPattern = regexp.MustCompile(`(?i)^(CREATE TABLE|INSERT( IGNORE)?( INTO)?|REPLACE INTO)`)

// Statement is one raw statement: whole input lines, each followed by "\n".
type Statement struct {
	Text string
	Line int // 1-based line number of the first line
}

// Segmenter splits a dump into raw statements, one line at a time.
//
// Lines that are blank, or start with "--" or "/*", are skipped. A line ending
// in ";" closes the current statement; a line matching the start pattern
// closes the previous one. A ";" inside a literal that ends a line is
// indistinguishable from a terminator and splits the statement there.
//
// Use it like bufio.Scanner:
//
//	seg := dump.NewSegmenter(r)
//	for seg.Next() {
//	    stmt := seg.Statement()
//	}
//	if err := seg.Err(); err != nil { ... }
type Segmenter struct {
	r       *bufio.Reader
	buf     strings.Builder
	start   int // line number of the first buffered line
	line    int // lines read so far
	pending []Statement
	current Statement
	err     error
	eof     bool
}

// NewSegmenter returns a segmenter reading from r. Lines of any length are
// supported.
func NewSegmenter(r io.Reader) *Segmenter {
	return &Segmenter{r: bufio.NewReaderSize(r, 64*1024)}
}

// Next advances to the next statement. It returns false at end of input or
// on a read error; check Err afterwards.
func (s *Segmenter) Next() bool {
	for len(s.pending) == 0 {
		if s.eof || s.err != nil {
			s.current = Statement{}
			return false
		}
		s.readLine()
	}
	s.current = s.pending[0]
	s.pending = s.pending[1:]
	return true
}

// Statement returns the statement produced by the last call to Next.
func (s *Segmenter) Statement() Statement {
	return s.current
}

// Err returns the first read error, if any.
func (s *Segmenter) Err() error {
	return s.err
}

// Lines returns the number of input lines consumed so far.
func (s *Segmenter) Lines() int {
	return s.line
}

func (s *Segmenter) readLine() {
	raw, err := s.r.ReadString('\n')
	if err != nil {
		if !errors.Is(err, io.EOF) {
			s.err = fmt.Errorf("failed to read input at line %d: %w", s.line+1, err)
			return
		}
		s.eof = true
		if raw == "" {
			s.emit()
			return
		}
	}
	s.line++

	line := strings.TrimSuffix(strings.TrimSuffix(raw, "\n"), "\r")
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || strings.HasPrefix(trimmed, "--") || strings.HasPrefix(trimmed, "/*") {
		if s.eof {
			s.emit()
		}
		return
	}

	if startPattern.MatchString(trimmed) {
		s.emit()
	}

	if s.buf.Len() == 0 {
		s.start = s.line
	}
	s.buf.WriteString(line)
	s.buf.WriteByte('\n')

	if strings.HasSuffix(trimmed, ";") || s.eof {
		s.emit()
	}
}

// emit queues the buffered text, if any, as a statement.
func (s *Segmenter) emit() {
	if s.buf.Len() == 0 {
		return
	}
	s.pending = append(s.pending, Statement{Text: s.buf.String(), Line: s.start})
	s.buf.Reset()
}
