package handoff

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"activity-flags/internal/domain"
)

// Logical keys shared by the pipeline stages.
const (
	KeyExtractedLedger  = "extracted-ledger-path"
	KeyTransformedFlags = "transformed-flags-path"
)

var (
	ErrKeyNotFound = errors.New("handoff key not found")
	ErrKeyExists   = errors.New("handoff key already set")
)

// Store is the run-scoped mapping from logical key to artifact reference.
// A new Store is created for every run, so nothing leaks between runs.
// Keys are write-once: artifacts are immutable and so are their handles.
type Store struct {
	mu      sync.RWMutex
	runID   string
	entries map[string]domain.ArtifactRef
}

// New creates an empty store for a run.
func New(runID string) *Store {
	return &Store{
		runID:   runID,
		entries: make(map[string]domain.ArtifactRef),
	}
}

// RunID returns the run the store belongs to.
func (s *Store) RunID() string {
	return s.runID
}

// Set publishes ref under key.
func (s *Store) Set(key string, ref domain.ArtifactRef) error {
	if key == "" {
		return fmt.Errorf("handoff key is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.entries[key]; exists {
		return fmt.Errorf("%w: %s (run %s)", ErrKeyExists, key, s.runID)
	}
	s.entries[key] = ref
	return nil
}

// Get returns the reference published under key.
func (s *Store) Get(key string) (domain.ArtifactRef, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ref, exists := s.entries[key]
	if !exists {
		return domain.ArtifactRef{}, fmt.Errorf("%w: %s (run %s)", ErrKeyNotFound, key, s.runID)
	}
	return ref, nil
}

// Keys lists the published keys in sorted order.
func (s *Store) Keys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	keys := make([]string, 0, len(s.entries))
	for k := range s.entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Snapshot returns a copy of the current mapping.
func (s *Store) Snapshot() map[string]domain.ArtifactRef {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]domain.ArtifactRef, len(s.entries))
	for k, v := range s.entries {
		out[k] = v
	}
	return out
}

// Len is the number of published keys.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}
