package urlsync

import (
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"carosearch/internal/codec"
	"carosearch/internal/filters"
	"carosearch/internal/logic"
)

// DefaultDelay is the quiet period before the location is rewritten
const DefaultDelay = 300 * time.Millisecond

// Location is the navigation primitive the controller writes to. ReplaceQuery
// must not add a history entry.
type Location interface {
	Query() string
	ReplaceQuery(query string)
}

// Options configure a Controller. Zero values select the defaults.
type Options struct {
	Delay     time.Duration
	Scheduler Scheduler
	// OnSettled runs after every flush with the state that was flushed
	OnSettled func(filters.State)
	Now       func() time.Time
}

type phase int

const (
	idle phase = iota
	pending
)

// Controller mirrors a FilterStore into a Location. Init seeds the store
// from the location once; after that every store change rewrites the query,
// debounced so a burst of changes produces a single write.
type Controller struct {
	store     logic.FilterStore
	location  Location
	delay     time.Duration
	scheduler Scheduler
	onSettled func(filters.State)
	now       func() time.Time

	mu          sync.Mutex
	initialized bool
	seeding     bool
	phase       phase
	generation  uint64
	timer       Timer
	deadline    time.Time
	unsubscribe func()
}

// New creates a controller subscribed to store. Nothing is written until
// Init has run.
func New(store logic.FilterStore, location Location, opts Options) *Controller {
	c := &Controller{
		store:     store,
		location:  location,
		delay:     opts.Delay,
		scheduler: opts.Scheduler,
		onSettled: opts.OnSettled,
		now:       opts.Now,
	}
	if c.delay <= 0 {
		c.delay = DefaultDelay
	}
	if c.scheduler == nil {
		c.scheduler = TimerScheduler{}
	}
	if c.now == nil {
		c.now = time.Now
	}
	c.unsubscribe = store.Subscribe(c.onChange)
	return c
}

// Init decodes the current location and sets every decoded field on the
// store. It runs once; later calls return nil. Malformed values are skipped
// and returned as codec.DecodeErrors. The location is not written.
func (c *Controller) Init() error {
	c.mu.Lock()
	if c.initialized {
		c.mu.Unlock()
		return nil
	}
	c.seeding = true
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		c.seeding = false
		c.initialized = true
		c.mu.Unlock()
	}()

	patch, decodeErr := codec.ParseQuery(c.location.Query())
	if decodeErr != nil {
		log.Printf("urlsync: %v", decodeErr)
	}

	var errs []error
	for _, f := range patch.Fields() {
		if err := c.store.SetFilter(f, patch[f]); err != nil {
			errs = append(errs, fmt.Errorf("failed to seed %s: %w", f.Name(), err))
		}
	}
	if len(errs) > 0 {
		return errors.Join(append([]error{decodeErr}, errs...)...)
	}
	return decodeErr
}

// Initialized reports whether Init has completed
func (c *Controller) Initialized() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.initialized
}

// Pending reports whether a write is scheduled, and when it is due
func (c *Controller) Pending() (bool, time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.phase == pending, c.deadline
}

// Flush performs a scheduled write now. It does nothing when idle.
func (c *Controller) Flush() {
	c.mu.Lock()
	if c.phase != pending {
		c.mu.Unlock()
		return
	}
	c.cancelLocked()
	c.mu.Unlock()

	c.write()
}

// Close stops following the store and drops a scheduled write
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.unsubscribe != nil {
		c.unsubscribe()
		c.unsubscribe = nil
	}
	c.cancelLocked()
}

func (c *Controller) onChange(filters.State) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.initialized || c.seeding {
		return
	}

	// a new change supersedes the scheduled write
	if c.timer != nil {
		c.timer.Stop()
	}
	c.generation++
	gen := c.generation
	c.phase = pending
	c.deadline = c.now().Add(c.delay)
	c.timer = c.scheduler.AfterFunc(c.delay, func() { c.fire(gen) })
}

func (c *Controller) fire(gen uint64) {
	c.mu.Lock()
	if c.phase != pending || gen != c.generation {
		c.mu.Unlock()
		return
	}
	c.phase = idle
	c.timer = nil
	c.deadline = time.Time{}
	c.mu.Unlock()

	c.write()
}

// cancelLocked returns to idle; a timer that already fired becomes a no-op
// through the generation check
func (c *Controller) cancelLocked() {
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	c.generation++
	c.phase = idle
	c.deadline = time.Time{}
}

func (c *Controller) write() {
	state := c.store.GetFilters()
	query := codec.EncodeQuery(state)
	if query != codec.NormalizeQuery(c.location.Query()) {
		c.location.ReplaceQuery(query)
	}
	if c.onSettled != nil {
		c.onSettled(state)
	}
}
