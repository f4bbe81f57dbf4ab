// Package tokenize turns a document or entity string into the ordered token
// sequence the rest of nemex operates on: either whitespace-split words, or
// fixed-length character q-grams.
package tokenize

import (
	"fmt"
	"strings"

	"github.com/nemex-go/nemex/pkg/nemex/nemexerr"
)

// Mode selects whether Tokenize produces q-grams or whitespace-split words.
type Mode int

const (
	// ModeChar produces overlapping q-grams of the input string.
	ModeChar Mode = iota
	// ModeWord splits the input on whitespace.
	ModeWord
)

// Options configures a Tokenizer. Mirrors the tokenizer contract in the
// engine's external-interfaces design: mode, q (char mode only),
// specialChar substitution, unique (dedupe preserving order), lower.
type Options struct {
	Mode Mode
	// Q is the q-gram size. Required (>=1) when Mode is ModeChar.
	Q int
	// SpecialChar, if non-zero, replaces U+0020 before q-gram extraction.
	SpecialChar rune
	// Unique deduplicates tokens, preserving first-seen order.
	Unique bool
	// Lower lowercases the input before tokenizing.
	Lower bool
}

// Tokenizer splits strings into tokens per its Options.
type Tokenizer struct {
	opts Options
}

// New validates opts and returns a Tokenizer.
func New(opts Options) (*Tokenizer, error) {
	if opts.Mode == ModeChar && opts.Q < 1 {
		return nil, fmt.Errorf("%w: q-gram size must be at least 1", nemexerr.ErrInvalidConfig)
	}
	return &Tokenizer{opts: opts}, nil
}

// Tokenize splits s into tokens according to the configured mode.
func (t *Tokenizer) Tokenize(s string) []string {
	if t.opts.Lower {
		s = strings.ToLower(s)
	}

	var tokens []string
	switch t.opts.Mode {
	case ModeChar:
		if t.opts.SpecialChar != 0 {
			s = strings.ReplaceAll(s, " ", string(t.opts.SpecialChar))
		}
		tokens = qgrams(s, t.opts.Q)
	case ModeWord:
		tokens = strings.Fields(s)
	}

	if t.opts.Unique {
		tokens = dedupe(tokens)
	}

	return tokens
}

// qgrams returns all contiguous substrings of s of length q, in order.
// Operates on runes so multi-byte characters count as a single unit.
func qgrams(s string, q int) []string {
	runes := []rune(s)
	n := len(runes) - q + 1
	if n <= 0 {
		return nil
	}
	grams := make([]string, n)
	for i := 0; i < n; i++ {
		grams[i] = string(runes[i : i+q])
	}
	return grams
}

// dedupe removes duplicate tokens, preserving first-seen order.
func dedupe(tokens []string) []string {
	seen := make(map[string]struct{}, len(tokens))
	out := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		if _, ok := seen[tok]; ok {
			continue
		}
		seen[tok] = struct{}{}
		out = append(out, tok)
	}
	return out
}

// QgramsToChar reconstructs the original string from a list of overlapping
// q-grams: the first gram in full, then the last rune of every subsequent
// gram. Round-trips any string tokenized with Q <= len(string).
func QgramsToChar(grams []string) string {
	if len(grams) == 0 {
		return ""
	}
	if len(grams) == 1 {
		return grams[0]
	}

	var b strings.Builder
	b.WriteString(grams[0])
	for _, g := range grams[1:] {
		r := []rune(g)
		b.WriteRune(r[len(r)-1])
	}
	return b.String()
}

// Span is a half-open [Start, End) character range into the whitespace-
// joined reconstruction of a token sequence.
type Span struct {
	Start, End int
}

// TokenSpans maps each whitespace-split token to its [start, end) character
// range in strings.Join(tokens, " ").
func TokenSpans(tokens []string) []Span {
	spans := make([]Span, len(tokens))
	i := 0
	for idx, tok := range tokens {
		start := i
		end := i + len([]rune(tok))
		spans[idx] = Span{Start: start, End: end}
		i = end + 1 // +1 for the joining whitespace
	}
	return spans
}
