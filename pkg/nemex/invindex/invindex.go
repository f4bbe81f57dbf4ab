// Package invindex builds the token -> entity-index inverted index the
// Faerie heap traversal sweeps over.
package invindex

import (
	"sort"

	"github.com/nemex-go/nemex/pkg/nemex/entity"
)

// Index maps a token to the ascending list of entity indices containing it.
// Ascending order is load-bearing: the heap-driven position extractor
// relies on each token's entity list already being sorted.
type Index struct {
	postings map[string][]int
}

// Build collects, for every token appearing in any entity in d, the
// ascending list of entity indices containing that token. A token
// repeated within one entity's token list appends that entity's index
// once per occurrence, not once per entity: duplicate tokens inside an
// entity are meant to inflate Pe at the matching document positions.
func Build(d *entity.Dictionary) *Index {
	collected := make(map[string][]int)

	for _, e := range d.All() {
		for _, tok := range e.Tokens {
			collected[tok] = append(collected[tok], e.Index)
		}
	}

	postings := make(map[string][]int, len(collected))
	for tok, ids := range collected {
		sort.Ints(ids)
		postings[tok] = ids
	}

	return &Index{postings: postings}
}

// Get returns the ascending entity-index list for a token, or nil if the
// token never appears in any entity.
func (idx *Index) Get(token string) []int {
	return idx.postings[token]
}

// Len returns the number of distinct tokens indexed.
func (idx *Index) Len() int {
	return len(idx.postings)
}
