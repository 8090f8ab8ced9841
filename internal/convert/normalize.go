// Package convert drives a dump through the segmenter, the dialect parser
// and the table registry, and publishes the resulting CSV directory.
package convert

import "strings"

var escapeReplacer = strings.NewReplacer(`\n`, "\n", `\r`, "\r", `\t`, "\t")

// NormalizeValue turns one rendered literal into a CSV cell. It trims every
// leading and trailing single quote, then every leading and trailing double
// quote, expands the two-character sequences \n, \r and \t, and maps a
// case-insensitive "null" to the empty string. It never fails.
func NormalizeValue(raw string) string {
	v := strings.Trim(raw, "'")
	v = strings.Trim(v, `"`)
	v = escapeReplacer.Replace(v)
	if strings.EqualFold(v, "null") {
		return ""
	}
	return v
}

// StripQuotes removes one pair of identifier delimiters (`x`, "x", [x]) and
// undoubles the closing delimiter inside. Other text is returned unchanged.
func StripQuotes(ident string) string {
	if len(ident) < 2 {
		return ident
	}
	var closer byte
	switch ident[0] {
	case '`':
		closer = '`'
	case '"':
		closer = '"'
	case '[':
		closer = ']'
	default:
		return ident
	}
	if ident[len(ident)-1] != closer {
		return ident
	}
	inner := ident[1 : len(ident)-1]
	return strings.ReplaceAll(inner, string(closer)+string(closer), string(closer))
}

// TableKey is the registry key for a possibly qualified name: each part
// quote-stripped, joined with dots.
func TableKey(parts []string) string {
	stripped := make([]string, len(parts))
	for i, p := range parts {
		stripped[i] = StripQuotes(p)
	}
	return strings.Join(stripped, ".")
}

// StripAll quote-strips every column name.
func StripAll(columns []string) []string {
	if columns == nil {
		return nil
	}
	out := make([]string, len(columns))
	for i, c := range columns {
		out[i] = StripQuotes(c)
	}
	return out
}
