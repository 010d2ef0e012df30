package session

import (
	"path/filepath"
	"testing"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deep", "session.json")

	if err := Save(path, &State{URL: "https://example.com"}); err != nil {
		t.Fatalf("Save: %v", err)
	}

	st, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if st.URL != "https://example.com" {
		t.Errorf("URL = %q", st.URL)
	}
	if st.SavedAt.IsZero() {
		t.Error("SavedAt not set")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.json")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
