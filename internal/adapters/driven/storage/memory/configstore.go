package memory

import (
	"maps"
	"sync"

	"github.com/Prerna-lily/EstateFlow-AI/internal/core/ports/driven"
)

// Ensure ConfigStore implements the interface.
var _ driven.ConfigStore = (*ConfigStore)(nil)

// ConfigStore is an in-memory implementation of driven.ConfigStore for
// tests. Save snapshots the live values and Load restores the snapshot,
// standing in for a config file on disk.
type ConfigStore struct {
	mu       sync.RWMutex
	live     map[string]any
	snapshot map[string]any
	saves    int
}

// NewConfigStore creates a config store holding seed as both the live
// and the saved values.
func NewConfigStore(seed ...map[string]any) *ConfigStore {
	s := &ConfigStore{
		live:     make(map[string]any),
		snapshot: make(map[string]any),
	}
	for _, m := range seed {
		maps.Copy(s.live, m)
		maps.Copy(s.snapshot, m)
	}
	return s
}

// Get retrieves a configuration value by key.
func (s *ConfigStore) Get(key string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	val, ok := s.live[key]
	return val, ok
}

// GetString retrieves a string configuration value.
func (s *ConfigStore) GetString(key string) string {
	str, _ := s.value(key).(string)
	return str
}

// GetInt retrieves an integer configuration value.
func (s *ConfigStore) GetInt(key string) int {
	switch v := s.value(key).(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	default:
		return 0
	}
}

// GetBool retrieves a boolean configuration value.
func (s *ConfigStore) GetBool(key string) bool {
	b, _ := s.value(key).(bool)
	return b
}

// GetStringSlice retrieves a string slice configuration value.
func (s *ConfigStore) GetStringSlice(key string) []string {
	switch v := s.value(key).(type) {
	case []string:
		return v
	case []any:
		result := make([]string, 0, len(v))
		for _, item := range v {
			if str, ok := item.(string); ok {
				result = append(result, str)
			}
		}
		return result
	default:
		return nil
	}
}

func (s *ConfigStore) value(key string) any {
	val, _ := s.Get(key)
	return val
}

// Set stores a value and saves, like the file store does.
func (s *ConfigStore) Set(key string, value any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.live[key] = value
	s.snapshot = maps.Clone(s.live)
	s.saves++
	return nil
}

// Save snapshots the live values.
func (s *ConfigStore) Save() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot = maps.Clone(s.live)
	s.saves++
	return nil
}

// Load restores the last snapshot.
func (s *ConfigStore) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.live = maps.Clone(s.snapshot)
	return nil
}

// Saves returns how many times the values were persisted.
func (s *ConfigStore) Saves() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.saves
}

// Path returns the configuration file path.
func (s *ConfigStore) Path() string {
	return ":memory:"
}
