package inmemorystore

import (
	"context"
	"slices"
	"sync"
)

// Store is an in-memory document cache. The zero value is ready to use.
type Store struct {
	docs sync.Map // Key: URI, Value: []byte
}

// New creates a new, empty in-memory document store.
func New() *Store {
	return &Store{}
}

// Get returns a copy of the document stored under uri.
func (s *Store) Get(_ context.Context, uri string) ([]byte, bool) {
	v, ok := s.docs.Load(uri)
	if !ok {
		return nil, false
	}
	return slices.Clone(v.([]byte)), true
}

// Put records data under uri. The first document stored under a URI wins.
func (s *Store) Put(_ context.Context, uri string, data []byte) {
	s.docs.LoadOrStore(uri, slices.Clone(data))
}

// Len returns the number of stored documents.
func (s *Store) Len() int {
	n := 0
	s.docs.Range(func(_, _ any) bool {
		n++
		return true
	})
	return n
}
