// Package favourites provides persistent bookmark storage for the shell.
package favourites

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Favourite represents a saved bookmark.
type Favourite struct {
	URL     string    `json:"url"`
	Title   string    `json:"title"`
	AddedAt time.Time `json:"added_at"`
}

// Store manages the favourites collection.
type Store struct {
	path       string
	Favourites []Favourite `json:"favourites"`
}

// DefaultPath returns the favourites file under the user config directory.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	dir := filepath.Join(home, ".config", "inkbrowser")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("creating config dir: %w", err)
	}
	return filepath.Join(dir, "favourites.json"), nil
}

// Load reads favourites from the given path. A missing file yields an
// empty store.
func Load(path string) (*Store, error) {
	store := &Store{path: path}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return store, nil
	}
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(data, store); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	return store, nil
}

// Save writes favourites to disk.
func (s *Store) Save() error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0644)
}

// Add adds a new favourite, avoiding duplicates by URL.
func (s *Store) Add(url, title string) bool {
	for _, f := range s.Favourites {
		if f.URL == url {
			return false
		}
	}

	s.Favourites = append(s.Favourites, Favourite{
		URL:     url,
		Title:   title,
		AddedAt: time.Now(),
	})
	return true
}

// Remove removes a favourite by URL.
func (s *Store) Remove(url string) bool {
	for i, f := range s.Favourites {
		if f.URL == url {
			s.Favourites = append(s.Favourites[:i], s.Favourites[i+1:]...)
			return true
		}
	}
	return false
}

// List returns the favourites in insertion order.
func (s *Store) List() []Favourite {
	out := make([]Favourite, len(s.Favourites))
	copy(out, s.Favourites)
	return out
}

// Len returns the number of favourites.
func (s *Store) Len() int {
	return len(s.Favourites)
}
