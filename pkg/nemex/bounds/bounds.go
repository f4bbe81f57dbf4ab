// Package bounds implements the per-similarity-measure length and overlap
// bound formulas the Faerie filter uses to prune candidate windows before
// verification: valid-substring-length bounds (Le, Te), the overlap lower
// bound (Tl), the per-candidate overlap threshold T(n, |s|), and the two
// "tighter" bounds used by the Bucket-Count and Batch-Count pruners.
package bounds

import (
	"fmt"
	"math"

	"github.com/nemex-go/nemex/pkg/nemex/nemexerr"
)

// Similarity identifies which measure a Bounds implementation was built for.
type Similarity int

const (
	Jaccard Similarity = iota
	Cosine
	Dice
	EditSim
	EditDist
)

// String renders the similarity name, mainly for error messages and logs.
func (s Similarity) String() string {
	switch s {
	case Jaccard:
		return "jaccard"
	case Cosine:
		return "cosine"
	case Dice:
		return "dice"
	case EditSim:
		return "edit-sim"
	case EditDist:
		return "edit-dist"
	default:
		return "unknown"
	}
}

// TokenBased reports whether s operates on token sets (as opposed to
// character q-grams).
func (s Similarity) TokenBased() bool {
	return s == Jaccard || s == Cosine || s == Dice
}

// Bounds computes the length and overlap bounds for one similarity measure.
// delta is the similarity threshold for Jaccard/Cosine/Dice/edit-sim, and
// the (float-encoded) integer edit-distance threshold tau for edit-dist.
type Bounds interface {
	// ValidRange returns the inclusive [Le, Te] range any candidate
	// substring length must fall in for an entity of length n.
	ValidRange(n int, delta float64, q int) (le, te int, err error)
	// OverlapLowerBound returns Tl, the minimum number of positions an
	// entity's position list must retain to have any chance of matching.
	OverlapLowerBound(n int, delta float64, q int) (tl int, err error)
	// OverlapThreshold returns T(n, |s|), the minimum count-array value a
	// candidate window of length sLen must reach to be retained.
	OverlapThreshold(n, sLen int, delta float64, q int) (t int, err error)
	// TighterUpperWindow returns a tighter Te for token-based similarities
	// given the span |Pe[i..j]| currently under consideration. ok is false
	// for character-based similarities, where this bound doesn't apply.
	TighterUpperWindow(n, peLen int, delta float64) (te int, ok bool)
	// TighterNeighbor returns the maximum physical gap between adjacent
	// positions of the same entity for character-based similarities. ok is
	// false for token-based similarities, where this bound doesn't apply.
	TighterNeighbor(n int, delta float64, q int) (t int, ok bool)
}

// New returns the Bounds implementation for sim.
func New(sim Similarity) (Bounds, error) {
	switch sim {
	case Jaccard:
		return jaccardBounds{}, nil
	case Cosine:
		return cosineBounds{}, nil
	case Dice:
		return diceBounds{}, nil
	case EditSim:
		return editSimBounds{}, nil
	case EditDist:
		return editDistBounds{}, nil
	default:
		return nil, fmt.Errorf("%w: unknown similarity %v", nemexerr.ErrInvalidConfig, sim)
	}
}

func checkPrecondition(n int, q int) error {
	if q > n {
		return fmt.Errorf("%w: q (%d) exceeds entity length (%d)", nemexerr.ErrInvalidInput, q, n)
	}
	return nil
}

// jaccardBounds implements the Jaccard similarity bound formulas.
type jaccardBounds struct{}

func (jaccardBounds) ValidRange(n int, delta float64, q int) (int, int, error) {
	if err := checkPrecondition(n, q); err != nil {
		return 0, 0, err
	}
	le := int(math.Ceil(float64(n) * delta))
	te := int(math.Floor(float64(n) / delta))
	return le, te, nil
}

func (jaccardBounds) OverlapLowerBound(n int, delta float64, q int) (int, error) {
	if err := checkPrecondition(n, q); err != nil {
		return 0, err
	}
	return int(math.Ceil(float64(n) * delta)), nil
}

func (jaccardBounds) OverlapThreshold(n, sLen int, delta float64, q int) (int, error) {
	if err := checkPrecondition(n, q); err != nil {
		return 0, err
	}
	t := math.Ceil(float64(n+sLen) * delta / (1 + delta))
	return int(t), nil
}

func (jaccardBounds) TighterUpperWindow(n, peLen int, delta float64) (int, bool) {
	m := n
	if peLen < m {
		m = peLen
	}
	return int(math.Floor(float64(m) / delta)), true
}

func (jaccardBounds) TighterNeighbor(n int, delta float64, q int) (int, bool) {
	return 0, false
}

// cosineBounds implements the Cosine similarity bound formulas.
type cosineBounds struct{}

func (cosineBounds) ValidRange(n int, delta float64, q int) (int, int, error) {
	if err := checkPrecondition(n, q); err != nil {
		return 0, 0, err
	}
	d2 := delta * delta
	le := int(math.Ceil(float64(n) * d2))
	te := int(math.Floor(float64(n) / d2))
	return le, te, nil
}

func (cosineBounds) OverlapLowerBound(n int, delta float64, q int) (int, error) {
	if err := checkPrecondition(n, q); err != nil {
		return 0, err
	}
	return int(math.Ceil(float64(n) * delta * delta)), nil
}

func (cosineBounds) OverlapThreshold(n, sLen int, delta float64, q int) (int, error) {
	if err := checkPrecondition(n, q); err != nil {
		return 0, err
	}
	t := math.Ceil(math.Sqrt(float64(n)*float64(sLen)) * delta)
	return int(t), nil
}

func (cosineBounds) TighterUpperWindow(n, peLen int, delta float64) (int, bool) {
	m := n
	if peLen < m {
		m = peLen
	}
	return int(math.Floor(float64(m) / (delta * delta))), true
}

func (cosineBounds) TighterNeighbor(n int, delta float64, q int) (int, bool) {
	return 0, false
}

// diceBounds implements the Dice similarity bound formulas.
type diceBounds struct{}

func (diceBounds) ValidRange(n int, delta float64, q int) (int, int, error) {
	if err := checkPrecondition(n, q); err != nil {
		return 0, 0, err
	}
	le := int(math.Ceil(float64(n) * delta / (2 - delta)))
	te := int(math.Floor(float64(n) * (2 - delta) / delta))
	return le, te, nil
}

func (diceBounds) OverlapLowerBound(n int, delta float64, q int) (int, error) {
	if err := checkPrecondition(n, q); err != nil {
		return 0, err
	}
	return int(math.Ceil(float64(n) * delta / (2 - delta))), nil
}

func (diceBounds) OverlapThreshold(n, sLen int, delta float64, q int) (int, error) {
	if err := checkPrecondition(n, q); err != nil {
		return 0, err
	}
	t := math.Ceil(float64(n+sLen) * delta / 2)
	return int(t), nil
}

func (diceBounds) TighterUpperWindow(n, peLen int, delta float64) (int, bool) {
	m := n
	if peLen < m {
		m = peLen
	}
	return int(math.Floor(float64(m) * (2 - delta) / delta)), true
}

func (diceBounds) TighterNeighbor(n int, delta float64, q int) (int, bool) {
	return 0, false
}

// editSimBounds implements the edit-similarity bound formulas, all
// expressed in terms of q-gram counts (n, q both measured in q-grams).
type editSimBounds struct{}

func (editSimBounds) ValidRange(n int, delta float64, q int) (int, int, error) {
	if err := checkPrecondition(n, q); err != nil {
		return 0, 0, err
	}
	nq := float64(n + q - 1)
	le := int(math.Ceil(nq*delta - float64(q-1)))
	te := int(math.Floor(nq/delta - float64(q-1)))
	return le, te, nil
}

func (editSimBounds) OverlapLowerBound(n int, delta float64, q int) (int, error) {
	if err := checkPrecondition(n, q); err != nil {
		return 0, err
	}
	nq := float64(n + q - 1)
	tl := math.Ceil(float64(n) - nq*((1-delta)/delta)*float64(q))
	return int(tl), nil
}

func (editSimBounds) OverlapThreshold(n, sLen int, delta float64, q int) (int, error) {
	if err := checkPrecondition(n, q); err != nil {
		return 0, err
	}
	m := n
	if sLen > m {
		m = sLen
	}
	t := math.Ceil(float64(m) - (float64(m+q-1))*(1-delta)*float64(q))
	return int(t), nil
}

func (editSimBounds) TighterUpperWindow(n, peLen int, delta float64) (int, bool) {
	return 0, false
}

func (editSimBounds) TighterNeighbor(n int, delta float64, q int) (int, bool) {
	nq := float64(n + q - 1)
	t := math.Floor((nq / delta) * (1 - delta) * float64(q))
	return int(t), true
}

// editDistBounds implements the edit-distance bound formulas. delta carries
// the integer edit-distance threshold tau, encoded as a float64.
type editDistBounds struct{}

func (editDistBounds) ValidRange(n int, delta float64, q int) (int, int, error) {
	tau := int(delta)
	if tau > n {
		return 0, 0, fmt.Errorf("%w: tau (%d) exceeds entity length (%d)", nemexerr.ErrInvalidInput, tau, n)
	}
	return n - tau, n + tau, nil
}

func (editDistBounds) OverlapLowerBound(n int, delta float64, q int) (int, error) {
	tau := int(delta)
	if tau > n {
		return 0, fmt.Errorf("%w: tau (%d) exceeds entity length (%d)", nemexerr.ErrInvalidInput, tau, n)
	}
	return n - tau*q, nil
}

func (editDistBounds) OverlapThreshold(n, sLen int, delta float64, q int) (int, error) {
	tau := int(delta)
	if tau > n {
		return 0, fmt.Errorf("%w: tau (%d) exceeds entity length (%d)", nemexerr.ErrInvalidInput, tau, n)
	}
	m := n
	if sLen > m {
		m = sLen
	}
	return m - tau*q, nil
}

func (editDistBounds) TighterUpperWindow(n, peLen int, delta float64) (int, bool) {
	return 0, false
}

func (editDistBounds) TighterNeighbor(n int, delta float64, q int) (int, bool) {
	tau := int(delta)
	return tau * q, true
}
