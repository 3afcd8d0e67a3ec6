package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// JSONStore implements Store using a single JSON file
type JSONStore struct {
	filename string
	data     map[string]json.RawMessage
	mu       sync.RWMutex
}

// NewJSONStore creates or opens a JSON-backed store
func NewJSONStore(filename string) (*JSONStore, error) {
	if filename == "" {
		return nil, fmt.Errorf("json store: empty file name")
	}

	store := &JSONStore{
		filename: filename,
		data:     make(map[string]json.RawMessage),
	}

	// Try to load existing file
	if _, err := os.Stat(filename); err == nil {
		if err := store.load(); err != nil {
			return nil, fmt.Errorf("failed to load store: %w", err)
		}
	}

	return store, nil
}

func (s *JSONStore) load() error {
	data, err := os.ReadFile(s.filename)
	if err != nil {
		return err
	}
	if len(data) == 0 {
		return nil
	}

	return json.Unmarshal(data, &s.data)
}

func (s *JSONStore) save() error {
	data, err := json.MarshalIndent(s.data, "", "  ")
	if err != nil {
		return err
	}

	if dir := filepath.Dir(s.filename); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}

	return os.WriteFile(s.filename, data, 0644)
}

// Get returns the raw JSON stored under key
func (s *JSONStore) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	raw, ok := s.data[key]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, key)
	}

	// Return a copy to prevent external modification
	out := make([]byte, len(raw))
	copy(out, raw)
	return out, nil
}

// Set stores value under key and rewrites the file
func (s *JSONStore) Set(_ context.Context, key string, value []byte) error {
	if !json.Valid(value) {
		return fmt.Errorf("json store: value for %s is not valid JSON", key)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	prev, existed := s.data[key]
	s.data[key] = append(json.RawMessage(nil), value...)

	if err := s.save(); err != nil {
		// keep memory consistent with disk
		if existed {
			s.data[key] = prev
		} else {
			delete(s.data, key)
		}
		return fmt.Errorf("failed to save store: %w", err)
	}
	return nil
}

// Delete removes key; deleting a missing key is not an error
func (s *JSONStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.data[key]; !ok {
		return nil
	}
	delete(s.data, key)
	return s.save()
}

// Close closes the store
func (s *JSONStore) Close() error {
	// JSON store doesn't need cleanup, but interface requires it
	return nil
}
