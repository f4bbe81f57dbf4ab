// Package nemexerr holds the sentinel errors shared across nemex packages.
package nemexerr

import "errors"

// Sentinel errors for the error kinds in the engine's design (configuration,
// invalid input, and a failed lookup). Invalid entities and
// degenerate documents are not represented here: both are handled silently
// (drop-and-log, empty result) rather than surfaced as errors.
var (
	ErrInvalidConfig = errors.New("invalid configuration")
	ErrInvalidInput  = errors.New("invalid input")
	ErrNotFound      = errors.New("not found")
)
