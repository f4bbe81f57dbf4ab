// Package pruning implements the four window pruners used to cut down the
// candidate windows that reach the count-array stage: the exhaustive
// baseline (None), a minimal occurrence-count gate (Lazy), a bucket sweep
// over physically-close positions (Bucket), and the production two-binary-
// search pruner (Batch).
package pruning

import "github.com/nemex-go/nemex/pkg/nemex/bounds"

// Window is a 1-indexed, inclusive sub-range [I, J] into an entity's
// position list Pe.
type Window struct {
	I, J int
}

// Pruner narrows an entity's position list Pe down to the windows worth
// counting, given the entity's length n, its Le/Te/Tl bounds, and the
// similarity threshold/q used to evaluate any tighter bound.
type Pruner interface {
	Prune(pe []int, n, le, te, tl int, delta float64, q int, b bounds.Bounds) []Window
}

// None performs no pruning beyond the Tl window-length gate: every pair
// (i, j) with 1 <= i < j <= len(pe) and j-i+1 >= tl is emitted.
type None struct{}

func (None) Prune(pe []int, n, le, te, tl int, delta float64, q int, b bounds.Bounds) []Window {
	var out []Window
	for i := 1; i <= len(pe); i++ {
		for j := i + 1; j <= len(pe); j++ {
			if j-i+1 >= tl {
				out = append(out, Window{I: i, J: j})
			}
		}
	}
	return out
}

// Lazy emits nothing if the entity cannot possibly reach Tl occurrences;
// otherwise it emits every pair (i, j) with 1 <= i < j <= len(pe), exactly
// like None without the per-window gate (Lemma 3: |Pe| <= Tl < T).
type Lazy struct{}

func (Lazy) Prune(pe []int, n, le, te, tl int, delta float64, q int, b bounds.Bounds) []Window {
	if len(pe) < tl {
		return nil
	}
	var out []Window
	for i := 1; i <= len(pe); i++ {
		for j := i + 1; j <= len(pe); j++ {
			out = append(out, Window{I: i, J: j})
		}
	}
	return out
}

// Bucket sweeps adjacent positions into buckets separated wherever the
// physical gap exceeds a threshold (the tighter neighbor bound when the
// similarity supports one, else Te-Tl), then emits every bucket whose size
// is at least Tl.
type Bucket struct{}

func (Bucket) Prune(pe []int, n, le, te, tl int, delta float64, q int, b bounds.Bounds) []Window {
	if len(pe) < tl {
		return nil
	}

	threshold := te - tl
	if t, ok := b.TighterNeighbor(n, delta, q); ok {
		threshold = t
	}

	var out []Window
	for _, span := range bucketSpans(pe, threshold) {
		if span.J-span.I+1 >= tl {
			out = append(out, span)
		}
	}
	return out
}

// bucketSpans sweeps pe, closing a bucket whenever the span
// Pe[j]-Pe[i]+1 of two adjacent positions exceeds t.
func bucketSpans(pe []int, t int) []Window {
	var spans []Window
	i, j := 1, 2
	k := i
	for {
		if i-1 >= len(pe) || j-1 >= len(pe) {
			spans = append(spans, Window{I: k, J: i})
			break
		}
		pi, pj := pe[i-1], pe[j-1]
		if pj-pi+1 > t {
			spans = append(spans, Window{I: k, J: i})
			k = j
		}
		i++
		j++
	}
	return spans
}

// Batch is the production pruner: two binary searches (binarySpan,
// binaryShift) locate every possible candidate window in roughly
// logarithmic time per window instead of Lazy/Bucket's linear scans.
type Batch struct{}

func (Batch) Prune(pe []int, n, le, te, tl int, delta float64, q int, b bounds.Bounds) []Window {
	if len(pe) < tl {
		return nil
	}

	var out []Window
	i := 1
	for i <= len(pe)-tl+1 {
		j := i + tl - 1
		pi, pj := pe[i-1], pe[j-1]

		if pj-pi+1 <= te {
			mid := binarySpan(i, j, pe, te)

			tighterTe := te
			if t, ok := b.TighterUpperWindow(n, mid-i+1, delta); ok {
				tighterTe = t
			}
			if checkPossibleCandidateWindow(i, mid, pe, le, te, tl, tighterTe) {
				out = append(out, Window{I: i, J: mid})
			}
			i++
		} else {
			i = binaryShift(i, j, pe, te, tl)
		}
	}
	return out
}

// checkPossibleCandidateWindow verifies a window found by the binary
// searches is both a valid window (Tl <= |Pe[i..j]| <= Te) and a candidate
// window (Le <= physical span <= tighterTe).
func checkPossibleCandidateWindow(i, j int, pe []int, le, te, tl, tighterTe int) bool {
	length := j - i + 1
	if length < tl || length > te {
		return false
	}
	pi, pj := pe[i-1], pe[j-1]
	span := pj - pi + 1
	return le <= span && span <= tighterTe
}

// binarySpan extends the right edge of a window starting at index i as far
// right as the physical-position span Pe[mid]-Pe[i]+1 <= te allows,
// starting the search at j.
func binarySpan(i, j int, pe []int, te int) int {
	lower, upper := j, i+te-1
	for lower <= upper {
		mid := ceilDiv(upper+lower, 2)
		if mid <= len(pe) {
			pmid, pi := pe[mid-1], pe[i-1]
			if pmid-pi+1 > te {
				upper = mid - 1
			} else {
				lower = mid + 1
			}
		} else {
			upper = mid - 1
		}
	}
	return upper
}

// binaryShift advances i to the smallest index at which a window of length
// tl could still fit within te physical positions, re-checking (iteratively,
// not recursively) in case the shifted window is itself still too long.
func binaryShift(i, j int, pe []int, te, tl int) int {
	for {
		lower, upper := i, j
		for lower <= upper {
			mid := ceilDiv(lower+upper, 2)
			pmid, pj := pe[mid-1], pe[j-1]
			if (pj+(mid-i))-pmid+1 > te {
				lower = mid + 1
			} else {
				upper = mid - 1
			}
		}

		i = lower
		j = i + tl - 1
		if j > len(pe) {
			j = len(pe)
		}

		pi, pj := pe[i-1], pe[j-1]
		if pj-pi+1 > te {
			continue
		}
		return i
	}
}

func ceilDiv(a, b int) int {
	if a%b == 0 {
		return a / b
	}
	return a/b + 1
}
