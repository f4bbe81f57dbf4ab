// Package faerie implements the heap-driven position extractor and the
// count-array based candidate enumerator at the core of the Faerie
// algorithm: given a document's tokens and a dictionary's inverted index,
// it produces every (entity, start, length) window that passes the
// configured pruner and overlap threshold, ready for verification.
package faerie

import (
	"container/heap"
	"sort"

	"github.com/nemex-go/nemex/pkg/nemex/bounds"
	"github.com/nemex-go/nemex/pkg/nemex/entity"
	"github.com/nemex-go/nemex/pkg/nemex/invindex"
	"github.com/nemex-go/nemex/pkg/nemex/pruning"
)

// Engine holds the read-only collaborators shared by every Run built from
// it: the entity store, its inverted index, the similarity's bounds, and
// the configured pruner. Safe to share across concurrently-running Runs.
type Engine struct {
	dict   *entity.Dictionary
	idx    *invindex.Index
	bounds bounds.Bounds
	delta  float64
	q      int
	pruner pruning.Pruner
}

// NewEngine builds a faerie Engine over a dictionary and its inverted
// index, using b/delta/q to evaluate overlap thresholds and tighter
// bounds, and pruner to narrow candidate windows.
func NewEngine(dict *entity.Dictionary, idx *invindex.Index, b bounds.Bounds, delta float64, q int, pruner pruning.Pruner) *Engine {
	return &Engine{dict: dict, idx: idx, bounds: b, delta: delta, q: q, pruner: pruner}
}

// Candidate is one window that passed pruning and the overlap threshold:
// entity Index matched document tokens [Start, Start+Length-1] inclusive.
type Candidate struct {
	Entity int
	Start  int
	Length int
}

// intHeap is a stdlib container/heap min-heap of entity indices.
type intHeap []int

func (h intHeap) Len() int            { return len(h) }
func (h intHeap) Less(i, j int) bool  { return h[i] < h[j] }
func (h intHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *intHeap) Push(x interface{}) { *h = append(*h, x.(int)) }
func (h *intHeap) Pop() interface{} {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}

// Run holds the per-document state for one extraction: the heap, the
// fully precomputed entity->positions map, the per-position top pointers,
// and the sparse count array V, reset between entities.
type Run struct {
	eng *Engine

	invLists      map[int][]int
	ent2positions map[int][]int
	topPtr        map[int]int
	h             *intHeap

	currentEIndptr int
	lastEntity     int
	haveLast       bool

	v map[int]map[int]int
}

// NewRun builds the per-document data structures for docTokens: the
// inverted lists restricted to tokens that appear in the dictionary, the
// min-heap seeded with each position's top element, and the entity ->
// position-list map used to drain one entity's full occurrence list
// before moving to the next.
func (e *Engine) NewRun(docTokens []string) *Run {
	invLists := make(map[int][]int)
	var positions []int
	for p, tok := range docTokens {
		ids := e.idx.Get(tok)
		if len(ids) == 0 {
			continue
		}
		invLists[p] = ids
		positions = append(positions, p)
	}

	r := &Run{
		eng:           e,
		invLists:      invLists,
		ent2positions: make(map[int][]int),
		topPtr:        make(map[int]int, len(positions)),
		v:             make(map[int]map[int]int),
	}

	h := make(intHeap, 0, len(positions))
	for _, p := range positions {
		for _, eidx := range invLists[p] {
			r.ent2positions[eidx] = append(r.ent2positions[eidx], p)
		}
		r.topPtr[p] = 0
		h = append(h, invLists[p][0])
	}
	heap.Init(&h)
	r.h = &h

	return r
}

// Next advances the heap-driven position extractor by one step, emitting
// the next (entity, position) pair. ok is false once the heap is
// exhausted. Entities are visited in ascending index order, and for each
// entity its positions are emitted consecutively in ascending order.
func (r *Run) Next() (entityIndex int, pos int, ok bool) {
	if r.h.Len() == 0 {
		return 0, 0, false
	}

	ei := heap.Pop(r.h).(int)
	if !r.haveLast || ei != r.lastEntity {
		r.currentEIndptr = 0
	}

	pi := r.ent2positions[ei][r.currentEIndptr]
	r.topPtr[pi]++
	r.currentEIndptr++

	top := r.topPtr[pi]
	if top < len(r.invLists[pi]) {
		heap.Push(r.h, r.invLists[pi][top])
	}

	r.lastEntity = ei
	r.haveLast = true

	return ei, pi, true
}

// resetCount clears the count array between entities.
func (r *Run) resetCount() {
	r.v = make(map[int]map[int]int)
}

// count increments V[j][cl] for every start position j in [position-cl+1,
// position] (clamped to 0) and every length cl in [minLen, maxLen].
func (r *Run) count(position, minLen, maxLen int) {
	for cl := minLen; cl <= maxLen; cl++ {
		start := position - cl + 1
		if start < 0 {
			start = 0
		}
		for j := start; j <= position; j++ {
			row, ok := r.v[j]
			if !ok {
				row = make(map[int]int)
				r.v[j] = row
			}
			row[cl]++
		}
	}
}

// Matches drains Next() for the whole document and returns every
// (entity, start, length) candidate window that passes the engine's
// pruner and overlap threshold.
func (r *Run) Matches() []Candidate {
	var out []Candidate

	var pe []int
	current := -1
	haveCurrent := false

	flush := func() {
		if !haveCurrent || len(pe) == 0 {
			return
		}
		out = append(out, r.processEntity(current, pe)...)
	}

	for {
		ei, pi, ok := r.Next()
		if !ok {
			break
		}
		if !haveCurrent {
			current = ei
			haveCurrent = true
		}
		if ei == current {
			pe = append(pe, pi)
			continue
		}
		flush()
		current = ei
		pe = []int{pi}
	}
	flush()

	return out
}

// processEntity applies the pruner, counts occurrences in every emitted
// window, and retains candidates whose count reaches T(n, len).
func (r *Run) processEntity(entityIndex int, pe []int) []Candidate {
	r.resetCount()

	ent, ok := r.eng.dict.Get(entityIndex)
	if !ok {
		return nil
	}

	sorted := append([]int(nil), pe...)
	sort.Ints(sorted)

	windows := r.eng.pruner.Prune(sorted, ent.Length, ent.Le, ent.Te, ent.Tl, r.eng.delta, r.eng.q, r.eng.bounds)
	if len(windows) == 0 {
		return nil
	}

	type rawCandidate struct{ start, length int }
	var raw []rawCandidate
	countPositions := make(map[int]struct{})

	for _, w := range windows {
		i, j := w.I, w.J
		for _, p := range sorted[i-1 : j] {
			countPositions[p] = struct{}{}
		}

		pi, pj := sorted[i-1], sorted[j-1]

		piPrev := -1 << 62
		if i-1 > 0 {
			piPrev = sorted[i-2]
		}
		pjNext := 1 << 62
		if j < len(sorted) {
			pjNext = sorted[j]
		}

		lo := pj - ent.Te + 1
		if piPrev+1 > lo {
			lo = piPrev + 1
		}
		if lo < 0 {
			lo = 0
		}
		up := pi + ent.Te - 1
		if pjNext-1 < up {
			up = pjNext - 1
		}

		for start := lo; start <= pi; start++ {
			for end := pj; end <= up; end++ {
				length := end - start + 1
				if ent.Le <= length && length <= ent.Te {
					raw = append(raw, rawCandidate{start: start, length: length})
				}
			}
		}
	}

	for p := range countPositions {
		r.count(p, ent.Le, ent.Te)
	}

	var out []Candidate
	for _, c := range raw {
		t, err := r.eng.bounds.OverlapThreshold(ent.Length, c.length, r.eng.delta, r.eng.q)
		if err != nil {
			continue
		}
		if r.v[c.start][c.length] >= t {
			out = append(out, Candidate{Entity: entityIndex, Start: c.start, Length: c.length})
		}
	}
	return out
}
