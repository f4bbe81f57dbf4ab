package memstore

import (
	"context"
	"testing"

	"github.com/nemex-go/nemex/pkg/nemex/dictstore"
)

func TestSaveAndLoadRoundTrip(t *testing.T) {
	s := New()
	ctx := context.Background()

	entries := []dictstore.Entry{
		{ID: "e0", Text: "new york city"},
		{ID: "e1", Text: "new delhi"},
	}
	if err := s.SaveEntries(ctx, entries); err != nil {
		t.Fatalf("SaveEntries: %v", err)
	}

	got, err := s.LoadEntries(ctx)
	if err != nil {
		t.Fatalf("LoadEntries: %v", err)
	}
	if len(got) != 2 || got[0].ID != "e0" || got[1].Text != "new delhi" {
		t.Fatalf("got %v", got)
	}
}

func TestLoadEntriesEmptyStore(t *testing.T) {
	s := New()
	got, err := s.LoadEntries(context.Background())
	if err != nil {
		t.Fatalf("LoadEntries: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("got %v, want empty", got)
	}
}

func TestSaveEntriesReplacesContents(t *testing.T) {
	s := New()
	ctx := context.Background()
	_ = s.SaveEntries(ctx, []dictstore.Entry{{ID: "e0", Text: "a"}})
	_ = s.SaveEntries(ctx, []dictstore.Entry{{ID: "e1", Text: "b"}})

	got, _ := s.LoadEntries(ctx)
	if len(got) != 1 || got[0].ID != "e1" {
		t.Fatalf("got %v, want only e1", got)
	}
}

func TestLoadEntriesReturnsIndependentCopy(t *testing.T) {
	s := New()
	ctx := context.Background()
	_ = s.SaveEntries(ctx, []dictstore.Entry{{ID: "e0", Text: "a"}})

	got, _ := s.LoadEntries(ctx)
	got[0].Text = "mutated"

	got2, _ := s.LoadEntries(ctx)
	if got2[0].Text != "a" {
		t.Errorf("internal state mutated via returned slice: %v", got2)
	}
}
