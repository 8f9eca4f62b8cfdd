package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/julianstephens/backtrack/internal/models"
)

type Store struct {
	Version  int               `json:"version"`
	Settings models.Settings   `json:"settings"`
	Values   map[string]string `json:"values"`
}

type JSONStore struct {
	path  string
	store *Store
}

func NewJSONStore(configPath string) *JSONStore {
	return &JSONStore{
		path: configPath,
	}
}

func (s *JSONStore) Init() error {
	// Create config directory if it doesn't exist
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// Check if file already exists
	if _, err := os.Stat(s.path); err == nil {
		return fmt.Errorf("storage already initialized at %s", s.path)
	}

	// Initialize with default settings
	settings := models.Settings{}
	models.ApplyDefaultSettings(&settings)
	s.store = &Store{
		Version:  1,
		Settings: settings,
		Values:   make(map[string]string),
	}

	return s.save()
}

func (s *JSONStore) Load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("storage not initialized, run 'backtrack init' first")
		}
		return fmt.Errorf("failed to read storage: %w", err)
	}

	s.store = &Store{}
	if err := json.Unmarshal(data, s.store); err != nil {
		return fmt.Errorf("failed to parse storage: %w", err)
	}

	// Ensure maps are initialized
	if s.store.Values == nil {
		s.store.Values = make(map[string]string)
	}

	return nil
}

func (s *JSONStore) Close() error {
	return nil
}

func (s *JSONStore) save() error {
	data, err := json.MarshalIndent(s.store, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize storage: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}

	return nil
}

func (s *JSONStore) GetValue(key string) (string, error) {
	if s.store == nil {
		return "", fmt.Errorf("storage not loaded")
	}

	value, ok := s.store.Values[key]
	if !ok {
		return "", fmt.Errorf("no value for key %q: %w", key, ErrKeyNotFound)
	}

	return value, nil
}

func (s *JSONStore) SetValue(key, value string) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}

	s.store.Values[key] = value
	return s.save()
}

func (s *JSONStore) DeleteValue(key string) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}

	if _, ok := s.store.Values[key]; !ok {
		return fmt.Errorf("no value for key %q: %w", key, ErrKeyNotFound)
	}

	delete(s.store.Values, key)
	return s.save()
}

func (s *JSONStore) GetSettings() (models.Settings, error) {
	if s.store == nil {
		return models.Settings{}, fmt.Errorf("storage not loaded")
	}
	return s.store.Settings, nil
}

func (s *JSONStore) SaveSettings(settings models.Settings) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}
	s.store.Settings = settings
	return s.save()
}

func (s *JSONStore) GetConfigPath() string {
	return s.path
}
