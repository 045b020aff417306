// Package session keeps each browser session's uploaded table in memory.
package session

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"malariadash/internal/table"
)

// Upload is the table a session is currently looking at.
type Upload struct {
	Table      *table.Table
	FileName   string
	FileSize   int64
	UploadTime time.Time
}

type entry struct {
	upload   Upload
	lastSeen time.Time
}

// Store maps session IDs to their upload. Entries idle for longer than the
// TTL are dropped the next time the store is touched.
type Store struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	entries map[string]*entry
}

// NewStore creates a store that forgets sessions idle for ttl.
func NewStore(ttl time.Duration) *Store {
	return &Store{
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]*entry),
	}
}

// NewID returns a fresh, unguessable session ID.
func NewID() string {
	return uuid.NewString()
}

// ValidID reports whether id looks like one NewID produced.
func ValidID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

// Put stores upload for id, replacing whatever was there.
func (s *Store) Put(id string, upload Upload) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.evictLocked(now)
	s.entries[id] = &entry{upload: upload, lastSeen: now}
}

// Get returns the upload for id and refreshes its idle timer.
func (s *Store) Get(id string) (Upload, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.evictLocked(now)
	e, ok := s.entries[id]
	if !ok {
		return Upload{}, false
	}
	e.lastSeen = now
	return e.upload, true
}

// Delete forgets id.
func (s *Store) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, id)
}

// Len returns the number of live sessions.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.evictLocked(s.now())
	return len(s.entries)
}

func (s *Store) evictLocked(now time.Time) {
	for id, e := range s.entries {
		if now.Sub(e.lastSeen) > s.ttl {
			delete(s.entries, id)
		}
	}
}
