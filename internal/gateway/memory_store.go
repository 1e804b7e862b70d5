package gateway

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"activity-flags/internal/domain"
)

// MemoryArtifactStore keeps artifacts in process memory. It is safe for concurrent
// use; its contents are lost when the process exits.
type MemoryArtifactStore struct {
	mu      sync.RWMutex
	objects map[string][]byte
}

// NewMemoryArtifactStore creates an empty in-memory store.
func NewMemoryArtifactStore() *MemoryArtifactStore {
	return &MemoryArtifactStore{objects: make(map[string][]byte)}
}

// Put implements usecase.ArtifactStore.
func (s *MemoryArtifactStore) Put(ctx context.Context, name string, data []byte) (domain.ArtifactRef, error) {
	if err := validArtifactName(name); err != nil {
		return domain.ArtifactRef{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.objects[name]; exists {
		return domain.ArtifactRef{}, fmt.Errorf("artifact %s already exists", name)
	}
	// Copy to avoid external modifications
	s.objects[name] = append([]byte(nil), data...)
	return domain.NewArtifactRef(schemeMemory+name, data), nil
}

// Get implements usecase.ArtifactStore.
func (s *MemoryArtifactStore) Get(ctx context.Context, ref domain.ArtifactRef) ([]byte, error) {
	if !strings.HasPrefix(ref.URI, schemeMemory) {
		return nil, fmt.Errorf("invalid memory artifact URI %s", ref.URI)
	}

	s.mu.RLock()
	data, exists := s.objects[strings.TrimPrefix(ref.URI, schemeMemory)]
	s.mu.RUnlock()

	if !exists {
		return nil, fmt.Errorf("%w: %s", domain.ErrArtifactNotFound, ref.URI)
	}
	if err := ref.Verify(data); err != nil {
		return nil, err
	}
	return append([]byte(nil), data...), nil
}

// Names lists stored artifact names in sorted order.
func (s *MemoryArtifactStore) Names() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.objects))
	for name := range s.objects {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
