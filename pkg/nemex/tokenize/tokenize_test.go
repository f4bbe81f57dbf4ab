package tokenize

import (
	"reflect"
	"testing"
)

func TestNewRejectsCharModeWithoutQ(t *testing.T) {
	if _, err := New(Options{Mode: ModeChar, Q: 0}); err == nil {
		t.Fatal("expected error for q < 1 in char mode")
	}
}

func TestWordMode(t *testing.T) {
	tok, err := New(Options{Mode: ModeWord})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	got := tok.Tokenize("New York City")
	want := []string{"New", "York", "City"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestWordModeLower(t *testing.T) {
	tok, _ := New(Options{Mode: ModeWord, Lower: true})
	got := tok.Tokenize("New York")
	want := []string{"new", "york"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestCharModeQGrams(t *testing.T) {
	tok, err := New(Options{Mode: ModeChar, Q: 2})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	got := tok.Tokenize("abcd")
	want := []string{"ab", "bc", "cd"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestCharModeSpecialChar(t *testing.T) {
	tok, _ := New(Options{Mode: ModeChar, Q: 3, SpecialChar: '_'})
	got := tok.Tokenize("ab cd")
	want := []string{"ab_", "b_c", "_cd"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestUniqueDedupesPreservingOrder(t *testing.T) {
	tok, _ := New(Options{Mode: ModeWord, Unique: true})
	got := tok.Tokenize("a b a c b")
	want := []string{"a", "b", "c"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestCharModeTooShort(t *testing.T) {
	tok, _ := New(Options{Mode: ModeChar, Q: 5})
	if got := tok.Tokenize("ab"); got != nil {
		t.Errorf("got %v, want nil for q > len(s)", got)
	}
}

func TestQgramsToChar(t *testing.T) {
	grams := []string{"ab", "bc", "cd"}
	if got := QgramsToChar(grams); got != "abcd" {
		t.Errorf("got %q, want %q", got, "abcd")
	}
}

func TestQgramsToCharSingleGram(t *testing.T) {
	if got := QgramsToChar([]string{"abc"}); got != "abc" {
		t.Errorf("got %q, want %q", got, "abc")
	}
}

func TestQgramsToCharEmpty(t *testing.T) {
	if got := QgramsToChar(nil); got != "" {
		t.Errorf("got %q, want empty", got)
	}
}

func TestTokenSpans(t *testing.T) {
	tokens := []string{"new", "york", "city"}
	spans := TokenSpans(tokens)
	want := []Span{{0, 3}, {4, 8}, {9, 13}}
	if !reflect.DeepEqual(spans, want) {
		t.Errorf("got %v, want %v", spans, want)
	}
}
