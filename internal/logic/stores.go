package logic

import (
	"sync"
	"time"

	"carosearch/internal/domain"
	"carosearch/internal/filters"
)

// MemoryFilterStore is an in-memory implementation of FilterStore
type MemoryFilterStore struct {
	mu          sync.RWMutex
	state       filters.State
	subscribers map[int]func(filters.State)
	nextID      int
}

// NewMemoryFilterStore creates a store holding the default state
func NewMemoryFilterStore() *MemoryFilterStore {
	return &MemoryFilterStore{
		state:       filters.Default(),
		subscribers: make(map[int]func(filters.State)),
	}
}

// GetFilters returns a snapshot of the current state
func (s *MemoryFilterStore) GetFilters() filters.State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Clone()
}

// SetFilter replaces one field. Range bounds are replaced together.
func (s *MemoryFilterStore) SetFilter(field filters.Field, value filters.Value) error {
	return s.mutate(func(st *filters.State) error {
		return st.Set(field, value)
	})
}

// ClearFilter resets one field to its default
func (s *MemoryFilterStore) ClearFilter(field filters.Field) error {
	if !field.Valid() {
		return &filters.InvalidFieldError{Field: field}
	}
	return s.SetFilter(field, filters.DefaultValue(field))
}

// ClearAllFilters resets every field with a single notification
func (s *MemoryFilterStore) ClearAllFilters() {
	_ = s.mutate(func(st *filters.State) error {
		*st = filters.Default()
		return nil
	})
}

// ApplyPatch replaces every field of the patch with a single notification.
// Nothing changes when any entry is invalid.
func (s *MemoryFilterStore) ApplyPatch(patch filters.Patch) error {
	return s.mutate(func(st *filters.State) error {
		return st.Apply(patch)
	})
}

// GetActiveFiltersCount returns the number of fields away from their default
func (s *MemoryFilterStore) GetActiveFiltersCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.ActiveCount()
}

// Subscribe registers fn for every later mutation and returns a function
// that removes it
func (s *MemoryFilterStore) Subscribe(fn func(filters.State)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++
	s.subscribers[id] = fn

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subscribers, id)
	}
}

// mutate applies fn under the write lock and, on success, calls the
// subscribers outside it so they may read the store again
func (s *MemoryFilterStore) mutate(fn func(*filters.State) error) error {
	s.mu.Lock()
	if err := fn(&s.state); err != nil {
		s.mu.Unlock()
		return err
	}
	snapshot := s.state.Clone()
	subs := make([]func(filters.State), 0, len(s.subscribers))
	for id := 0; id < s.nextID; id++ {
		if sub, ok := s.subscribers[id]; ok {
			subs = append(subs, sub)
		}
	}
	s.mu.Unlock()

	for _, sub := range subs {
		sub(snapshot.Clone())
	}
	return nil
}

// DefaultListingTTL matches how long the web client treats a result as fresh
const DefaultListingTTL = 5 * time.Minute

type listingEntry struct {
	listing domain.Listing
	stored  time.Time
}

// MemoryListingStore is an in-memory ListingStore whose entries expire
type MemoryListingStore struct {
	mu      sync.RWMutex
	ttl     time.Duration
	now     func() time.Time
	entries map[string]listingEntry
}

// NewMemoryListingStore creates a listing cache. A non-positive ttl disables
// caching; a nil clock uses time.Now.
func NewMemoryListingStore(ttl time.Duration, now func() time.Time) *MemoryListingStore {
	if now == nil {
		now = time.Now
	}
	return &MemoryListingStore{
		ttl:     ttl,
		now:     now,
		entries: make(map[string]listingEntry),
	}
}

func (s *MemoryListingStore) GetListing(key string) (domain.Listing, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.entries[key]
	if !ok || s.now().Sub(e.stored) >= s.ttl {
		return domain.Listing{}, false
	}
	return e.listing, true
}

func (s *MemoryListingStore) PutListing(key string, listing domain.Listing) {
	if s.ttl <= 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	for k, e := range s.entries {
		if now.Sub(e.stored) >= s.ttl {
			delete(s.entries, k)
		}
	}
	s.entries[key] = listingEntry{listing: listing, stored: now}
}

// Purge drops every entry
func (s *MemoryListingStore) Purge() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = make(map[string]listingEntry)
}

// Len is the number of stored entries, expired ones included
func (s *MemoryListingStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}
