// Package settings provides the host key/value settings store that minimum
// needs state is persisted to.
//
// Two implementations are provided: [Memory], for tests and embedding hosts,
// and [File], which persists to a YAML document of kind Settings.
package settings

import "sync"

// Well-known setting keys.
const (
	// KeyMinimumNeeds holds the active minimum needs profile.
	KeyMinimumNeeds = "MinimumNeeds"
	// KeyUserLocale holds the user's locale, e.g. "id_ID".
	KeyUserLocale = "locale/userLocale"
)

// Store is a persistent key/value settings store.
type Store interface {
	// Get returns the value stored under key, and whether it was present.
	Get(key string) (any, bool)
	// Set stores value under key.
	Set(key string, value any) error
}

// Compile-time interface checks.
var (
	_ Store = (*Memory)(nil)
	_ Store = (*File)(nil)
)

// Memory is an in-memory [Store].
type Memory struct {
	values map[string]any
	mu     sync.RWMutex
}

// NewMemory creates a [Memory] store holding a copy of values.
func NewMemory(values map[string]any) *Memory {
	m := &Memory{values: make(map[string]any, len(values))}
	for k, v := range values {
		m.values[k] = v
	}

	return m
}

// Get implements [Store].
func (m *Memory) Get(key string) (any, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	v, ok := m.values[key]

	return v, ok
}

// Set implements [Store].
func (m *Memory) Set(key string, value any) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.values == nil {
		m.values = map[string]any{}
	}

	m.values[key] = value

	return nil
}

// GetString returns the string stored under key, or "" when the key is
// absent or holds another type.
func GetString(s Store, key string) string {
	v, ok := s.Get(key)
	if !ok {
		return ""
	}

	str, ok := v.(string)
	if !ok {
		return ""
	}

	return str
}
