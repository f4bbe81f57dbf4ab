package pruning

import (
	"testing"

	"github.com/nemex-go/nemex/pkg/nemex/bounds"
)

func TestNoneGatesByWindowLength(t *testing.T) {
	pe := []int{1, 2, 3, 4, 5}
	b, _ := bounds.New(bounds.Jaccard)
	windows := None{}.Prune(pe, 5, 2, 4, 2, 0.8, 1, b)
	for _, w := range windows {
		if w.J-w.I+1 < 2 {
			t.Errorf("window %v has length < tl=2", w)
		}
	}
	if len(windows) == 0 {
		t.Fatal("expected at least one window")
	}
}

func TestLazyEmptyWhenBelowTl(t *testing.T) {
	pe := []int{1, 2}
	b, _ := bounds.New(bounds.Jaccard)
	windows := Lazy{}.Prune(pe, 5, 2, 4, 5, 0.8, 1, b)
	if windows != nil {
		t.Errorf("got %v, want nil", windows)
	}
}

func TestLazyEmitsAllPairsAboveTl(t *testing.T) {
	pe := []int{1, 2, 3}
	b, _ := bounds.New(bounds.Jaccard)
	windows := Lazy{}.Prune(pe, 5, 2, 4, 2, 0.8, 1, b)
	// C(3,2) = 3 pairs: (1,2), (1,3), (2,3)
	if len(windows) != 3 {
		t.Errorf("got %d windows, want 3", len(windows))
	}
}

func TestBucketSpansSplitsOnLargeGap(t *testing.T) {
	pe := []int{1, 2, 100, 101}
	spans := bucketSpans(pe, 5)
	if len(spans) != 2 {
		t.Fatalf("got %d spans, want 2: %v", len(spans), spans)
	}
	if spans[0] != (Window{I: 1, J: 2}) {
		t.Errorf("first span = %v, want {1,2}", spans[0])
	}
	if spans[1] != (Window{I: 3, J: 4}) {
		t.Errorf("second span = %v, want {3,4}", spans[1])
	}
}

func TestBatchWindowsSpanWithinLeTe(t *testing.T) {
	// Every window Batch emits must cover a physical span of Pe within
	// [le, te].
	pe := []int{1, 2, 3, 4, 10, 11, 12}
	b, _ := bounds.New(bounds.Jaccard)
	n, le, te, tl := 4, 3, 6, 3

	batchWindows := Batch{}.Prune(pe, n, le, te, tl, 0.8, 1, b)
	for _, w := range batchWindows {
		span := pe[w.J-1] - pe[w.I-1] + 1
		if span < le || span > te {
			t.Errorf("batch window %v has span %d outside [%d,%d]", w, span, le, te)
		}
	}
}

func TestBatchNoWindowsWhenTooFewPositions(t *testing.T) {
	pe := []int{1, 2}
	b, _ := bounds.New(bounds.Jaccard)
	windows := Batch{}.Prune(pe, 5, 2, 4, 5, 0.8, 1, b)
	if windows != nil {
		t.Errorf("got %v, want nil", windows)
	}
}

func TestCeilDiv(t *testing.T) {
	cases := []struct{ a, b, want int }{
		{4, 2, 2},
		{5, 2, 3},
		{1, 2, 1},
	}
	for _, c := range cases {
		if got := ceilDiv(c.a, c.b); got != c.want {
			t.Errorf("ceilDiv(%d,%d) = %d, want %d", c.a, c.b, got, c.want)
		}
	}
}
