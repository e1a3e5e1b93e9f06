package devcache

import (
	"sync"
	"time"

	"github.com/acsops/acs-console/internal/nbi"
)

// Entry is the cached state for one page size.
type Entry struct {
	PageSize  int
	Frontier  int // highest contiguous page index fetched
	Total     int // server-reported total matching count
	Records   []nbi.DeviceRecord
	FetchedAt time.Time
}

// clone returns an independent copy of the entry, including the record
// slice, so callers can mutate it freely.
func (e *Entry) clone() *Entry {
	cp := *e
	cp.Records = append([]nbi.DeviceRecord(nil), e.Records...)
	return &cp
}

// KeyedStore persists cache entries keyed by page size. Implementations
// must be safe for concurrent use: Load returns an entry the caller owns
// outright, Store replaces the whole entry, last write wins.
type KeyedStore interface {
	Load(pageSize int) (*Entry, bool)
	Store(pageSize int, e *Entry)
	Delete(pageSize int)
	Clear()
}

// MemoryStore is an in-process KeyedStore.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[int]*Entry
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[int]*Entry)}
}

// Load returns a copy of the entry for a page size, if present. Handing
// out the stored pointer would let two callers append to the same record
// slice and corrupt the merged sequence.
func (s *MemoryStore) Load(pageSize int) (*Entry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[pageSize]
	if !ok {
		return nil, false
	}
	return e.clone(), true
}

// Store saves a copy of the entry for a page size, replacing any
// previous one wholesale.
func (s *MemoryStore) Store(pageSize int, e *Entry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[pageSize] = e.clone()
}

// Delete removes the entry for a page size.
func (s *MemoryStore) Delete(pageSize int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, pageSize)
}

// Clear removes all entries.
func (s *MemoryStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = make(map[int]*Entry)
}
