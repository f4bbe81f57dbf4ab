// Package verify computes exact similarity/distance scores between a
// candidate window and an entity, the final stage of the filter-and-verify
// pipeline: the Faerie filter over-approximates, and verify decides which
// of its candidates are real matches.
package verify

import (
	"fmt"
	"math"

	"github.com/nemex-go/nemex/pkg/nemex/bounds"
	"github.com/nemex-go/nemex/pkg/nemex/editdist"
	"github.com/nemex-go/nemex/pkg/nemex/nemexerr"
)

// Result is the outcome of checking one candidate against one entity.
type Result struct {
	Score float64
	Valid bool
}

// Check scores candidate against entity under sim. For token-based
// similarities (Jaccard, Cosine, Dice) candidate/entity are token
// sequences; for character-based similarities (edit-sim, edit-dist) they
// are character sequences, one rune per element (see editdist.Runes), and
// threshold is compared as score>=t (edit-sim) or distance<=t (edit-dist).
func Check(candidate, entity []string, sim bounds.Similarity, threshold float64) (Result, error) {
	switch sim {
	case bounds.Jaccard:
		s := jaccard(candidate, entity)
		return Result{Score: s, Valid: s >= threshold}, nil
	case bounds.Cosine:
		s := cosine(candidate, entity)
		return Result{Score: s, Valid: s >= threshold}, nil
	case bounds.Dice:
		s := dice(candidate, entity)
		return Result{Score: s, Valid: s >= threshold}, nil
	case bounds.EditSim:
		s := editSim(candidate, entity)
		return Result{Score: s, Valid: s >= threshold}, nil
	case bounds.EditDist:
		d := editdist.Distance(candidate, entity)
		return Result{Score: float64(d), Valid: float64(d) <= threshold}, nil
	default:
		return Result{}, fmt.Errorf("%w: unknown similarity %v", nemexerr.ErrInvalidConfig, sim)
	}
}

func toSet(tokens []string) map[string]struct{} {
	set := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		set[t] = struct{}{}
	}
	return set
}

func intersectionSize(a, b map[string]struct{}) int {
	n := 0
	for t := range a {
		if _, ok := b[t]; ok {
			n++
		}
	}
	return n
}

func jaccard(a, b []string) float64 {
	sa, sb := toSet(a), toSet(b)
	inter := intersectionSize(sa, sb)
	union := len(sa) + len(sb) - inter
	if union == 0 {
		return 0
	}
	return float64(inter) / float64(union)
}

// cosine and dice divide by the raw token-list lengths (duplicates
// included); only the intersection numerator is set-based.
func cosine(a, b []string) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	inter := intersectionSize(toSet(a), toSet(b))
	return float64(inter) / math.Sqrt(float64(len(a))*float64(len(b)))
}

func dice(a, b []string) float64 {
	if len(a)+len(b) == 0 {
		return 0
	}
	inter := intersectionSize(toSet(a), toSet(b))
	return 2 * float64(inter) / float64(len(a)+len(b))
}

func editSim(a, b []string) float64 {
	d := editdist.Distance(a, b)
	m := len(a)
	if len(b) > m {
		m = len(b)
	}
	if m == 0 {
		return 1
	}
	return 1 - float64(d)/float64(m)
}
