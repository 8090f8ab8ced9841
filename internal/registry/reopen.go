package registry

import (
	"fmt"
	"strings"
)

// ReopenPolicy decides how a flushed table's file is treated when the table
// is created again later in the same run.
type ReopenPolicy string

const (
	// ReopenTruncate starts the file over with a fresh header.
	ReopenTruncate ReopenPolicy = "truncate"
	// ReopenAppend keeps the earlier rows and appends without a header.
	ReopenAppend ReopenPolicy = "append"
)

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *ReopenPolicy) UnmarshalText(text []byte) error {
	switch v := ReopenPolicy(strings.ToLower(strings.TrimSpace(string(text)))); v {
	case ReopenTruncate, ReopenAppend:
		*p = v
		return nil
	case "":
		*p = ReopenTruncate
		return nil
	default:
		return fmt.Errorf("invalid reopen policy %q (want truncate or append)", string(text))
	}
}

// String returns the policy name.
func (p ReopenPolicy) String() string {
	return string(p)
}
