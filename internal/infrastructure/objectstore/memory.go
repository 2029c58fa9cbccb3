package objectstore

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/riskibarqy/itp-onboarding/internal/domain/document"
)

type StoredObject struct {
	ContentType string
	Data        []byte
}

// MemoryStore keeps uploads in process for local development and tests.
type MemoryStore struct {
	mu      sync.RWMutex
	objects map[string]StoredObject
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{objects: make(map[string]StoredObject)}
}

func (s *MemoryStore) Put(_ context.Context, obj document.Object) error {
	data, err := io.ReadAll(obj.Body)
	if err != nil {
		return fmt.Errorf("read object body: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.objects[obj.Key]; ok {
		return fmt.Errorf("%w: %s", document.ErrObjectExists, obj.Key)
	}
	s.objects[obj.Key] = StoredObject{ContentType: obj.ContentType, Data: data}

	return nil
}

func (s *MemoryStore) Get(key string) (StoredObject, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	obj, ok := s.objects[key]
	return obj, ok
}

func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.objects)
}
