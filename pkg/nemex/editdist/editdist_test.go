package editdist

import "testing"

func TestDistanceIdentical(t *testing.T) {
	if d := Distance([]string{"a", "b", "c"}, []string{"a", "b", "c"}); d != 0 {
		t.Errorf("got %d, want 0", d)
	}
}

func TestDistanceEmpty(t *testing.T) {
	if d := Distance(nil, []string{"a", "b"}); d != 2 {
		t.Errorf("got %d, want 2", d)
	}
	if d := Distance([]string{"a", "b"}, nil); d != 2 {
		t.Errorf("got %d, want 2", d)
	}
}

func TestDistanceSubstitution(t *testing.T) {
	if d := Distance([]string{"a", "b", "c"}, []string{"a", "x", "c"}); d != 1 {
		t.Errorf("got %d, want 1", d)
	}
}

func TestDistanceStringKittenSitting(t *testing.T) {
	if d := DistanceString("kitten", "sitting"); d != 3 {
		t.Errorf("got %d, want 3", d)
	}
}

func TestDistanceStringDolorDolo(t *testing.T) {
	if d := DistanceString("dolor", "dolo"); d != 1 {
		t.Errorf("got %d, want 1", d)
	}
}
