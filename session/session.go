// Package session persists the viewer's last address between runs.
package session

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"
)

// State is what survives a restart: the last URL the navigator assigned.
type State struct {
	URL     string    `json:"url"`
	SavedAt time.Time `json:"savedAt"`
}

// Path returns the session file path.
func Path() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "inkbrowser", "session.json"), nil
}

// Load reads the session from the given path.
func Load(path string) (*State, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var s State
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// Save writes the session to the given path, creating directories as
// needed.
func Save(path string, s *State) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	s.SavedAt = time.Now()
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
