// Package core defines the shared language of the dumpcsv system.
//
// This package contains:
//   - Dialect data (DialectConfig, IdentifierConfig)
//   - The closed set of parsed statement variants (CreateTable, Insert, Other)
//
// The Golden Rule: pkg/core imports ONLY pkg/token and stdlib.
// Grammars in pkg/parser and pkg/dialects produce these types; internal/convert
// consumes them.
package core
