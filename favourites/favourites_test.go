package favourites

import (
	"path/filepath"
	"testing"
)

func TestAddRemoveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "favourites.json")

	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if s.Len() != 0 {
		t.Fatalf("fresh store has %d entries", s.Len())
	}

	if !s.Add("https://example.com", "Example") {
		t.Fatal("Add returned false")
	}
	if s.Add("https://example.com", "Example again") {
		t.Fatal("duplicate URL accepted")
	}
	if err := s.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}

	reloaded, err := Load(path)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if reloaded.Len() != 1 {
		t.Fatalf("reloaded store has %d entries, want 1", reloaded.Len())
	}
	if reloaded.List()[0].Title != "Example" {
		t.Errorf("Title = %q", reloaded.List()[0].Title)
	}

	if !reloaded.Remove("https://example.com") {
		t.Fatal("Remove returned false")
	}
	if reloaded.Remove("https://example.com") {
		t.Fatal("Remove of absent URL returned true")
	}
}
