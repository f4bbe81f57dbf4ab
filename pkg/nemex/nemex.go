// Package nemex is the top-level facade: it wires a tokenizer, entity
// dictionary, inverted index, similarity bounds, Faerie engine, pruner,
// and verifier into a single Extract call over a document.
package nemex

import (
	"context"
	"crypto/rand"
	"fmt"
	"log"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/oklog/ulid/v2"

	"github.com/nemex-go/nemex/pkg/nemex/bounds"
	"github.com/nemex-go/nemex/pkg/nemex/editdist"
	"github.com/nemex-go/nemex/pkg/nemex/entity"
	"github.com/nemex-go/nemex/pkg/nemex/faerie"
	"github.com/nemex-go/nemex/pkg/nemex/invindex"
	"github.com/nemex-go/nemex/pkg/nemex/nemexerr"
	"github.com/nemex-go/nemex/pkg/nemex/pruning"
	"github.com/nemex-go/nemex/pkg/nemex/tokenize"
	"github.com/nemex-go/nemex/pkg/nemex/verify"
)

// Options configures a new Engine.
type Options struct {
	Similarity bounds.Similarity
	Threshold  float64 // similarity score in (0,1], or edit-dist tau (>=0)
	Q          int     // q-gram size; required for character-based similarities
	Pruner     string  // "none"|"lazy"|"bucket"|"batch" (default: batch)
	Verify     bool    // re-check each filtered match with the exact verifier
	EntityIDs  []string
	EntityText []string // raw entity text, tokenized with the same tokenizer as the document
	ReprCache  int      // LRU size for reconstructed entity text; 0 disables caching
}

// Engine owns the tokenizer, entity dictionary, inverted index, Faerie
// engine, and verifier for one extraction configuration. The dictionary,
// inverted index and Faerie engine are read-only after New returns, but
// Extract is not safe for concurrent use: every call draws its RunID from
// one shared monotonic ULID entropy source.
type Engine struct {
	tok        *tokenize.Tokenizer
	dict       *entity.Dictionary
	idx        *invindex.Index
	faerieEng  *faerie.Engine
	similarity bounds.Similarity
	threshold  float64
	verify     bool

	entropy   *ulid.MonotonicEntropy
	reprCache *lru.Cache[string, string]
}

// New builds an Engine from Options: picks the tokenizer mode from the
// similarity (q-grams for edit-sim/edit-dist, words otherwise), checks q
// for character-based similarities, builds the tokenizer, tokenizes and builds the entity
// dictionary, the inverted index, and the Faerie engine with the chosen
// pruner.
func New(opts Options) (*Engine, error) {
	if len(opts.EntityIDs) != len(opts.EntityText) {
		return nil, fmt.Errorf("%w: EntityIDs and EntityText length mismatch", nemexerr.ErrInvalidInput)
	}

	charBased := opts.Similarity == bounds.EditSim || opts.Similarity == bounds.EditDist
	if charBased && opts.Q < 1 {
		return nil, fmt.Errorf("%w: q must be at least 1 for similarity %v", nemexerr.ErrInvalidConfig, opts.Similarity)
	}

	tokOpts := tokenize.Options{Mode: tokenize.ModeWord}
	if charBased {
		tokOpts = tokenize.Options{Mode: tokenize.ModeChar, Q: opts.Q, SpecialChar: '_'}
	}
	tok, err := tokenize.New(tokOpts)
	if err != nil {
		return nil, err
	}

	b, err := bounds.New(opts.Similarity)
	if err != nil {
		return nil, err
	}

	tokenLists := make([][]string, len(opts.EntityText))
	for i, text := range opts.EntityText {
		tokenLists[i] = tok.Tokenize(text)
	}

	dict, skipped, err := entity.Build(opts.EntityIDs, tokenLists, b, opts.Threshold, opts.Q)
	if err != nil {
		return nil, err
	}
	for _, s := range skipped {
		log.Printf("nemex: skipping entity %s: %s", s.ID, s.Reason)
	}

	idx := invindex.Build(dict)

	pruner, err := resolvePruner(opts.Pruner)
	if err != nil {
		return nil, err
	}

	faerieEng := faerie.NewEngine(dict, idx, b, opts.Threshold, opts.Q, pruner)

	e := &Engine{
		tok:        tok,
		dict:       dict,
		idx:        idx,
		faerieEng:  faerieEng,
		similarity: opts.Similarity,
		threshold:  opts.Threshold,
		verify:     opts.Verify,
		entropy:    ulid.Monotonic(rand.Reader, 0),
	}

	if opts.ReprCache > 0 {
		cache, err := lru.New[string, string](opts.ReprCache)
		if err != nil {
			return nil, fmt.Errorf("building entity repr cache: %w", err)
		}
		e.reprCache = cache
	}

	return e, nil
}

func resolvePruner(name string) (pruning.Pruner, error) {
	switch name {
	case "", "batch":
		return pruning.Batch{}, nil
	case "none":
		return pruning.None{}, nil
	case "lazy":
		return pruning.Lazy{}, nil
	case "bucket":
		return pruning.Bucket{}, nil
	default:
		return nil, fmt.Errorf("%w: unknown pruner %q", nemexerr.ErrInvalidConfig, name)
	}
}

// EntityRef identifies the dictionary entity a match refers to.
type EntityRef struct {
	ID   string
	Text string
}

// Match is one extracted span: the entity it matched, its half-open
// [start, end) character span in the reconstructed document, the matched
// text, and optionally its verified score/validity.
type Match struct {
	Entity EntityRef
	Span   [2]int
	Text   string
	Score  *float64
	Valid  *bool
}

// Result is the outcome of one Extract call.
type Result struct {
	RunID    string
	Document string
	Matches  []Match
}

// Extract tokenizes document, runs the Faerie filter over it, optionally
// verifies each filtered candidate, and returns every surviving match.
// Returns an empty Result (not an error) when the document matches no
// dictionary tokens.
func (e *Engine) Extract(document string) (Result, error) {
	docTokens := e.tok.Tokenize(document)

	result := Result{
		RunID:    ulid.MustNew(ulid.Now(), e.entropy).String(),
		Document: e.reconstruct(docTokens),
	}

	run := e.faerieEng.NewRun(docTokens)
	candidates := run.Matches()

	for _, c := range candidates {
		ent, ok := e.dict.Get(c.Entity)
		if !ok {
			continue
		}
		m, err := e.buildMatch(docTokens, ent, c)
		if err != nil {
			return Result{}, err
		}
		result.Matches = append(result.Matches, m)
	}

	return result, nil
}

// ExtractBatch runs Extract over each document in order, stopping and
// returning ctx.Err() before starting the next document if ctx has been
// canceled. A document already in progress always runs to completion;
// cancellation never interrupts a single Extract call.
func (e *Engine) ExtractBatch(ctx context.Context, documents []string) ([]Result, error) {
	results := make([]Result, 0, len(documents))
	for _, doc := range documents {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		res, err := e.Extract(doc)
		if err != nil {
			return results, err
		}
		results = append(results, res)
	}
	return results, nil
}

func (e *Engine) buildMatch(docTokens []string, ent entity.Entity, c faerie.Candidate) (Match, error) {
	window := docTokens[c.Start : c.Start+c.Length]
	entityText := e.entityText(ent)
	matchText := e.reconstruct(window)

	var span [2]int
	if e.similarity == bounds.EditSim || e.similarity == bounds.EditDist {
		// q-gram k starts at character k, and the window's last gram covers
		// q characters.
		q := len([]rune(window[len(window)-1]))
		span = [2]int{c.Start, c.Start + c.Length - 1 + q}
	} else {
		spans := tokenize.TokenSpans(docTokens)
		span = [2]int{spans[c.Start].Start, spans[c.Start+c.Length-1].End}
	}

	m := Match{
		Entity: EntityRef{ID: ent.ID, Text: entityText},
		Span:   span,
		Text:   matchText,
	}

	if e.verify {
		candidate, entityTokens := window, ent.Tokens
		if e.similarity == bounds.EditSim || e.similarity == bounds.EditDist {
			// Edit distance/similarity must be computed over characters, not
			// over the q-gram token sequence: reconstruct the plain strings
			// first, since gram-sequence distance diverges from character
			// distance for anything beyond a single trailing edit.
			candidate, entityTokens = editdist.Runes(matchText), editdist.Runes(entityText)
		}

		res, err := verify.Check(candidate, entityTokens, e.similarity, e.threshold)
		if err != nil {
			return Match{}, err
		}
		score := res.Score
		valid := res.Valid
		m.Score = &score
		m.Valid = &valid
	}

	return m, nil
}

// reconstruct rebuilds display text from a token window: whitespace-joined
// for word mode, q-gram-merged for char mode.
func (e *Engine) reconstruct(tokens []string) string {
	if len(tokens) == 0 {
		return ""
	}
	if e.similarity == bounds.EditSim || e.similarity == bounds.EditDist {
		return tokenize.QgramsToChar(tokens)
	}
	return strings.Join(tokens, " ")
}

// entityText reconstructs an entity's display text, memoized in the
// bounded reprCache so repeated matches against the same entity don't
// repay the reconstruction cost.
func (e *Engine) entityText(ent entity.Entity) string {
	if e.reprCache == nil {
		return e.reconstruct(ent.Tokens)
	}
	if text, ok := e.reprCache.Get(ent.ID); ok {
		return text
	}
	text := e.reconstruct(ent.Tokens)
	e.reprCache.Add(ent.ID, text)
	return text
}
