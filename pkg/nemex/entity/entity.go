// Package entity holds the dictionary entity type and the dense, immutable
// store built from a list of entities once at engine construction time.
package entity

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/nemex-go/nemex/pkg/nemex/bounds"
	"github.com/nemex-go/nemex/pkg/nemex/nemexerr"
)

// Entity is one dictionary entry, immutable after construction. Le/Te are
// the inclusive valid-substring-length bounds and Tl the minimum overlap,
// both derived from Length under the engine's similarity measure.
type Entity struct {
	ID     string
	Index  int
	Tokens []string
	Length int
	Le, Te int
	Tl     int
}

// Skipped records an entity dropped at store-build time because its
// similarity bounds came out negative or invalid for its length.
type Skipped struct {
	ID     string
	Reason string
}

// Dictionary is a dense index -> Entity store plus a userID -> index map.
// Built once and read-only for the lifetime of an engine.
type Dictionary struct {
	entities []Entity
	byID     map[string]int
}

// Build computes Le/Te/Tl for every (id, tokens) pair under b/delta/q and
// assembles a Dictionary, skipping entities whose bounds are invalid or
// negative. Returned Skipped entries are for the caller to log; Build
// itself never writes to a log.
func Build(ids []string, tokenLists [][]string, b bounds.Bounds, delta float64, q int) (*Dictionary, []Skipped, error) {
	if len(ids) != len(tokenLists) {
		return nil, nil, fmt.Errorf("%w: ids and tokenLists length mismatch (%d != %d)", nemexerr.ErrInvalidInput, len(ids), len(tokenLists))
	}

	d := &Dictionary{
		byID: make(map[string]int, len(ids)),
	}
	var skipped []Skipped

	for i, id := range ids {
		tokens := tokenLists[i]
		n := len(tokens)

		le, te, err := b.ValidRange(n, delta, q)
		if err != nil {
			skipped = append(skipped, Skipped{ID: id, Reason: err.Error()})
			continue
		}
		tl, err := b.OverlapLowerBound(n, delta, q)
		if err != nil {
			skipped = append(skipped, Skipped{ID: id, Reason: err.Error()})
			continue
		}
		if le < 0 || te < 0 || tl < 0 || le > te || tl < 1 || tl > n {
			skipped = append(skipped, Skipped{ID: id, Reason: fmt.Sprintf("invalid bounds le=%d te=%d tl=%d for length %d", le, te, tl, n)})
			continue
		}

		idx := len(d.entities)
		d.entities = append(d.entities, Entity{
			ID:     id,
			Index:  idx,
			Tokens: tokens,
			Length: n,
			Le:     le,
			Te:     te,
			Tl:     tl,
		})
		d.byID[id] = idx
	}

	return d, skipped, nil
}

// Len returns the number of entities retained in the dictionary.
func (d *Dictionary) Len() int {
	return len(d.entities)
}

// Get returns the entity at the given dense index.
func (d *Dictionary) Get(index int) (Entity, bool) {
	if index < 0 || index >= len(d.entities) {
		return Entity{}, false
	}
	return d.entities[index], true
}

// GetByID looks up an entity by its user-supplied id.
func (d *Dictionary) GetByID(id string) (Entity, bool) {
	idx, ok := d.byID[id]
	if !ok {
		return Entity{}, false
	}
	return d.entities[idx], true
}

// All returns every entity in the dictionary, in dense index order.
func (d *Dictionary) All() []Entity {
	return d.entities
}

// ReadTSV parses a dictionary TSV: "id<TAB>text" per non-empty line, or a
// single text field, numbered by 0-based line index when the id column is
// absent. Returns the parsed ids and texts; the caller tokenizes and calls
// Build to produce a Dictionary.
func ReadTSV(r io.Reader) (ids []string, texts []string, err error) {
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		raw := scanner.Text()
		if strings.TrimSpace(raw) == "" {
			line++
			continue
		}
		fields := strings.SplitN(raw, "\t", 2)
		if len(fields) == 2 {
			ids = append(ids, fields[0])
			texts = append(texts, fields[1])
		} else {
			ids = append(ids, fmt.Sprintf("%d", line))
			texts = append(texts, fields[0])
		}
		line++
	}
	if err := scanner.Err(); err != nil {
		return nil, nil, fmt.Errorf("reading dictionary tsv: %w", err)
	}
	return ids, texts, nil
}

// LoadTSVFile opens path and delegates to ReadTSV.
func LoadTSVFile(path string) (ids []string, texts []string, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("opening dictionary tsv %s: %w", path, err)
	}
	defer f.Close()
	return ReadTSV(f)
}

// WriteTSV writes the dictionary's entities as "id<TAB>text" lines, text
// being the whitespace-joined token sequence.
func (d *Dictionary) WriteTSV(w io.Writer) error {
	bw := bufio.NewWriter(w)
	for _, e := range d.entities {
		if _, err := fmt.Fprintf(bw, "%s\t%s\n", e.ID, strings.Join(e.Tokens, " ")); err != nil {
			return fmt.Errorf("writing dictionary tsv: %w", err)
		}
	}
	return bw.Flush()
}

// SaveTSVFile creates or truncates path and writes the dictionary to it.
func (d *Dictionary) SaveTSVFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating dictionary tsv %s: %w", path, err)
	}
	defer f.Close()
	return d.WriteTSV(f)
}
