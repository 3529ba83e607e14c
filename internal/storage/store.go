package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

const defaultDir = "candidate_responses"

// Store persists finished sessions as JSON documents
type Store struct {
	dir string
}

// NewStore creates a store writing into dir. An empty dir selects the default.
func NewStore(dir string) *Store {
	if dir == "" {
		dir = defaultDir
	}
	return &Store{dir: dir}
}

// Save writes the session to a JSON file and returns the file path
func (s *Store) Save(session *Session) (string, error) {
	// Create the directory if it does not exist yet
	err := os.MkdirAll(s.dir, 0755)
	if err != nil {
		return "", fmt.Errorf("error creating directory %s: %w", s.dir, err)
	}

	filename := fmt.Sprintf("interview_%s.json", session.ID)
	path := filepath.Join(s.dir, filename)

	// Serialize with indentation so transcripts stay reviewable by hand
	jsonData, err := json.MarshalIndent(session, "", "  ")
	if err != nil {
		return "", fmt.Errorf("error serializing session: %w", err)
	}

	err = os.WriteFile(path, jsonData, 0644)
	if err != nil {
		return "", fmt.Errorf("error writing file %s: %w", path, err)
	}

	return path, nil
}

// Load reads a previously saved session back from disk
func (s *Store) Load(sessionID string) (*Session, error) {
	filename := fmt.Sprintf("interview_%s.json", sessionID)
	path := filepath.Join(s.dir, filename)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading file %s: %w", path, err)
	}

	var session Session
	err = json.Unmarshal(data, &session)
	if err != nil {
		return nil, fmt.Errorf("error deserializing JSON: %w", err)
	}

	return &session, nil
}

// List returns the IDs of all saved sessions
func (s *Store) List() ([]string, error) {
	if _, err := os.Stat(s.dir); os.IsNotExist(err) {
		return []string{}, nil
	}

	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("error reading directory %s: %w", s.dir, err)
	}

	var ids []string
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}
		name := entry.Name()
		if len(name) > 10 && name[:10] == "interview_" {
			ids = append(ids, name[10:len(name)-5])
		}
	}

	return ids, nil
}
