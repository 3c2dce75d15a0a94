package router

import (
	"fmt"
	"net/url"
	"strings"
	"sync"
)

// Location is one entry of the navigation history
type Location struct {
	Path  string
	Query string
}

// String renders the location as a relative URL
func (l Location) String() string {
	if l.Query == "" {
		return l.Path
	}
	return l.Path + "?" + l.Query
}

// Values parses the query of the location. An unparseable query yields the
// pairs that could be read.
func (l Location) Values() url.Values {
	values, _ := url.ParseQuery(l.Query)
	return values
}

// ParseLocation reads a relative URL such as "/cars?make=Toyota"
func ParseLocation(raw string) (Location, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return Location{}, fmt.Errorf("failed to parse location %q: %w", raw, err)
	}
	path := u.Path
	if path == "" {
		path = "/"
	} else if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return Location{Path: path, Query: u.RawQuery}, nil
}

// Action tells subscribers how the current location changed
type Action int

const (
	ActionPush Action = iota
	ActionReplace
	ActionPop
)

func (a Action) String() string {
	switch a {
	case ActionPush:
		return "push"
	case ActionReplace:
		return "replace"
	case ActionPop:
		return "pop"
	}
	return "unknown"
}

// History is an in-memory navigation stack with a cursor. Pushing drops the
// entries ahead of the cursor.
type History struct {
	mu          sync.RWMutex
	entries     []Location
	index       int
	subscribers map[int]func(Location, Action)
	nextID      int
}

// NewHistory creates a history holding a single entry
func NewHistory(initial string) (*History, error) {
	loc, err := ParseLocation(initial)
	if err != nil {
		return nil, err
	}
	return &History{
		entries:     []Location{loc},
		subscribers: make(map[int]func(Location, Action)),
	}, nil
}

// Current returns the location under the cursor
func (h *History) Current() Location {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.entries[h.index]
}

// Query returns the raw query of the current location
func (h *History) Query() string {
	return h.Current().Query
}

// Len is the number of entries
func (h *History) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.entries)
}

// Push navigates to a new location
func (h *History) Push(raw string) error {
	loc, err := ParseLocation(raw)
	if err != nil {
		return err
	}
	h.mu.Lock()
	h.entries = append(h.entries[:h.index+1], loc)
	h.index = len(h.entries) - 1
	h.mu.Unlock()

	h.notify(loc, ActionPush)
	return nil
}

// ReplaceQuery swaps the query of the current entry in place. No entry is
// added and the path is kept.
func (h *History) ReplaceQuery(query string) {
	h.mu.Lock()
	loc := h.entries[h.index]
	loc.Query = strings.TrimPrefix(query, "?")
	h.entries[h.index] = loc
	h.mu.Unlock()

	h.notify(loc, ActionReplace)
}

// Back moves the cursor one entry back; it reports false at the start
func (h *History) Back() bool {
	return h.move(-1)
}

// Forward moves the cursor one entry forward; it reports false at the end
func (h *History) Forward() bool {
	return h.move(1)
}

func (h *History) move(delta int) bool {
	h.mu.Lock()
	next := h.index + delta
	if next < 0 || next >= len(h.entries) {
		h.mu.Unlock()
		return false
	}
	h.index = next
	loc := h.entries[next]
	h.mu.Unlock()

	h.notify(loc, ActionPop)
	return true
}

// Subscribe registers fn for every location change and returns a function
// that removes it
func (h *History) Subscribe(fn func(Location, Action)) func() {
	h.mu.Lock()
	defer h.mu.Unlock()
	id := h.nextID
	h.nextID++
	h.subscribers[id] = fn
	return func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		delete(h.subscribers, id)
	}
}

func (h *History) notify(loc Location, action Action) {
	h.mu.RLock()
	subs := make([]func(Location, Action), 0, len(h.subscribers))
	for id := 0; id < h.nextID; id++ {
		if fn, ok := h.subscribers[id]; ok {
			subs = append(subs, fn)
		}
	}
	h.mu.RUnlock()

	for _, fn := range subs {
		fn(loc, action)
	}
}
