package handler

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/bcakit/mutasi2xlsx/internal/domain/statement"
)

// SessionStore keeps extraction results in memory between the upload and
// download requests of one session. Nothing is persisted: entries expire
// after the TTL and die with the process.
type SessionStore struct {
	mu      sync.Mutex
	entries map[uuid.UUID]sessionEntry
	ttl     time.Duration
}

type sessionEntry struct {
	records   []statement.TransactionRecord
	createdAt time.Time
}

// NewSessionStore creates a store whose entries expire after ttl.
func NewSessionStore(ttl time.Duration) *SessionStore {
	return &SessionStore{
		entries: make(map[uuid.UUID]sessionEntry),
		ttl:     ttl,
	}
}

// Put stores the records of one processed document and returns its ID.
func (s *SessionStore) Put(records []statement.TransactionRecord) uuid.UUID {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.purgeLocked()

	id := uuid.New()
	s.entries[id] = sessionEntry{records: records, createdAt: time.Now()}
	return id
}

// Get returns the records for a document ID, or false when the ID is
// unknown or expired.
func (s *SessionStore) Get(id uuid.UUID) ([]statement.TransactionRecord, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.purgeLocked()

	entry, ok := s.entries[id]
	if !ok {
		return nil, false
	}
	return entry.records, true
}

func (s *SessionStore) purgeLocked() {
	cutoff := time.Now().Add(-s.ttl)
	for id, entry := range s.entries {
		if entry.createdAt.Before(cutoff) {
			delete(s.entries, id)
		}
	}
}
