package dump

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// NewReader wraps r so it yields UTF-8 text. label is any WHATWG encoding
// label ("utf-8", "latin1", "windows-1252", "shift_jis", ...). A leading byte
// order mark is always removed. UTF-8 input passes through byte for byte.
func NewReader(r io.Reader, label string) (io.Reader, error) {
	if label == "" || isUTF8(label) {
		return transform.NewReader(r, unicode.BOMOverride(transform.Nop)), nil
	}

	enc, err := htmlindex.Get(label)
	if err != nil {
		return nil, fmt.Errorf("unsupported input encoding %q: %w", label, err)
	}
	return transform.NewReader(r, unicode.BOMOverride(enc.NewDecoder())), nil
}

// ValidateEncoding reports whether label names a supported encoding.
func ValidateEncoding(label string) error {
	if label == "" || isUTF8(label) {
		return nil
	}
	if _, err := htmlindex.Get(label); err != nil {
		return fmt.Errorf("unsupported input encoding %q: %w", label, err)
	}
	return nil
}

func isUTF8(label string) bool {
	switch strings.ToLower(strings.TrimSpace(label)) {
	case "utf-8", "utf8", "unicode-1-1-utf-8":
		return true
	}
	return false
}
