package localstorage

import (
	"sync"

	"github.com/jhoicas/caresync-hms/internal/domain/repository"
)

// MemoryStorage implementación en memoria para tests.
// FailWrites hace fallar SetItem/RemoveItem con el error dado.
type MemoryStorage struct {
	mu         sync.Mutex
	items      map[string]string
	FailWrites error
}

var _ repository.LocalStorage = (*MemoryStorage)(nil)

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{items: make(map[string]string)}
}

func (s *MemoryStorage) GetItem(key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.items[key]
	return v, ok, nil
}

func (s *MemoryStorage) SetItem(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailWrites != nil {
		return s.FailWrites
	}
	s.items[key] = value
	return nil
}

func (s *MemoryStorage) RemoveItem(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailWrites != nil {
		return s.FailWrites
	}
	delete(s.items, key)
	return nil
}
