package verify

import (
	"math"
	"testing"

	"github.com/nemex-go/nemex/pkg/nemex/bounds"
)

func TestJaccardExactMatch(t *testing.T) {
	r, err := Check([]string{"new", "york"}, []string{"new", "york"}, bounds.Jaccard, 1.0)
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if !r.Valid || r.Score != 1.0 {
		t.Errorf("got %+v, want score=1.0 valid=true", r)
	}
}

func TestJaccardPartialOverlap(t *testing.T) {
	r, err := Check([]string{"new", "york", "city"}, []string{"new", "york"}, bounds.Jaccard, 0.5)
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	// intersection=2, union=3 -> 0.666...
	if r.Score < 0.66 || r.Score > 0.67 {
		t.Errorf("got score %v, want ~0.667", r.Score)
	}
	if !r.Valid {
		t.Error("expected valid at threshold 0.5")
	}
}

func TestCosineIdentical(t *testing.T) {
	r, _ := Check([]string{"a", "b"}, []string{"a", "b"}, bounds.Cosine, 1.0)
	if !r.Valid || r.Score != 1.0 {
		t.Errorf("got %+v", r)
	}
}

func TestDiceIdentical(t *testing.T) {
	r, _ := Check([]string{"a", "b"}, []string{"a", "b"}, bounds.Dice, 1.0)
	if !r.Valid || r.Score != 1.0 {
		t.Errorf("got %+v", r)
	}
}

func TestCosineDenominatorUsesRawListLength(t *testing.T) {
	// a=["a","a","b"], b=["a","b"]: intersection=2, denom=sqrt(3*2)=~2.449
	r, err := Check([]string{"a", "a", "b"}, []string{"a", "b"}, bounds.Cosine, 0)
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	want := 2.0 / math.Sqrt(6)
	if math.Abs(r.Score-want) > 1e-9 {
		t.Errorf("got score %v, want %v", r.Score, want)
	}
}

func TestDiceDenominatorUsesRawListLength(t *testing.T) {
	// a=["a","a","b"], b=["a","b"]: intersection=2, denom=3+2=5
	r, err := Check([]string{"a", "a", "b"}, []string{"a", "b"}, bounds.Dice, 0)
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	want := 2 * 2.0 / 5.0
	if math.Abs(r.Score-want) > 1e-9 {
		t.Errorf("got score %v, want %v", r.Score, want)
	}
}

func TestEditDistExact(t *testing.T) {
	r, err := Check([]string{"d", "o", "l", "o", "r"}, []string{"d", "o", "l", "o", "r"}, bounds.EditDist, 0)
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if !r.Valid || r.Score != 0 {
		t.Errorf("got %+v, want score=0 valid=true", r)
	}
}

func TestEditDistWithinThreshold(t *testing.T) {
	// "dolo" vs "dolor": distance 1
	r, err := Check([]string{"d", "o", "l", "o"}, []string{"d", "o", "l", "o", "r"}, bounds.EditDist, 1)
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if !r.Valid {
		t.Error("expected valid at threshold 1 (distance 1)")
	}
}

func TestEditDistExceedsThreshold(t *testing.T) {
	r, err := Check([]string{"d", "o", "l", "o"}, []string{"d", "o", "l", "o", "r"}, bounds.EditDist, 0)
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if r.Valid {
		t.Error("expected invalid at threshold 0 (distance 1)")
	}
}

func TestEditSimIdentical(t *testing.T) {
	r, _ := Check([]string{"a", "b", "c"}, []string{"a", "b", "c"}, bounds.EditSim, 1.0)
	if !r.Valid || r.Score != 1.0 {
		t.Errorf("got %+v", r)
	}
}

func TestCheckUnknownSimilarity(t *testing.T) {
	if _, err := Check(nil, nil, bounds.Similarity(99), 0.5); err == nil {
		t.Fatal("expected error for unknown similarity")
	}
}
