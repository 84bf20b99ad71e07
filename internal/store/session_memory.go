package store

import "sync"

// MemorySessionStore is a [SessionStore] that lives as long as the process.
type MemorySessionStore struct {
	mu     sync.RWMutex
	values map[string]string
}

func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{values: make(map[string]string)}
}

func (s *MemorySessionStore) Get(key string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[key]
	return v, ok
}

func (s *MemorySessionStore) Set(key, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
}

func (s *MemorySessionStore) Delete(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, key)
}

// GetFlag reads a boolean flag stored as "true".
func GetFlag(s SessionStore, key string) bool {
	v, ok := s.Get(key)
	return ok && v == valueTrue
}

// SetFlag stores a boolean flag.
func SetFlag(s SessionStore, key string, on bool) {
	if on {
		s.Set(key, valueTrue)
		return
	}
	s.Delete(key)
}
