package session

import (
	"strings"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultID is the session used when a client does not carry its own id.
// Single-user deployments only ever touch this one.
const DefaultID = "default"

const storeCapacity = 1024

// Store keeps live sessions in memory, bounded by an LRU cache. Sessions are
// independent of each other; the store is lookup only and holds no state
// shared across sessions. Nothing is persisted: a session evicted or lost on
// restart simply begins again at INIT.
type Store struct {
	mu    sync.Mutex
	cache *lru.Cache[string, *Session]
}

func NewStore() *Store {
	cache, err := lru.New[string, *Session](storeCapacity)
	if err != nil {
		// lru.New only fails on a non-positive size.
		panic(err)
	}
	return &Store{cache: cache}
}

// Get returns the session for id, creating a fresh INIT session on first
// use. Empty ids resolve to DefaultID.
func (s *Store) Get(id string) *Session {
	id = strings.TrimSpace(id)
	if id == "" {
		id = DefaultID
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if sess, ok := s.cache.Get(id); ok {
		return sess
	}
	sess := New(id)
	s.cache.Add(id, sess)
	return sess
}

// Drop removes a session entirely. The next Get for the same id starts over
// with a fresh log and id counter.
func (s *Store) Drop(id string) {
	id = strings.TrimSpace(id)
	if id == "" {
		id = DefaultID
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cache.Remove(id)
}

// Len reports how many sessions are resident.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cache.Len()
}
