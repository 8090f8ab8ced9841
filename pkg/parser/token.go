package parser

import "github.com/leapstack-labs/dumpcsv/pkg/token"

// Token is an alias for token.Token.
type Token = token.Token

// Position is an alias for token.Position.
type Position = token.Position
