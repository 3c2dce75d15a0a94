package ui

import (
	"time"

	"carosearch/internal/eventbus"
)

// EventMsg wraps a domain event for the UI
type EventMsg struct {
	Event eventbus.DomainEvent
}

// RunMsg carries a callback to run on the update goroutine. Timers post it
// so that everything touching the filter store stays on that goroutine.
type RunMsg struct {
	Fn func()
}

// tickMsg is sent on a timer for animations
type tickMsg time.Time

// pagerMsg contains the result of a pager command
type pagerMsg struct {
	what string
	err  error
}

// clearStatusMsg clears the status line
type clearStatusMsg struct {
	gen int
}
