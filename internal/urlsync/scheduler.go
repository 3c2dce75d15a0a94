package urlsync

import "time"

// Timer is a pending callback that can be cancelled
type Timer interface {
	Stop() bool
}

// Scheduler arms delayed callbacks
type Scheduler interface {
	AfterFunc(d time.Duration, fn func()) Timer
}

// TimerScheduler runs callbacks on runtime timer goroutines
type TimerScheduler struct{}

func (TimerScheduler) AfterFunc(d time.Duration, fn func()) Timer {
	return time.AfterFunc(d, fn)
}

// DispatchScheduler hands expired callbacks to Dispatch instead of running
// them, so an event loop can run them on its own goroutine. With Bubble Tea,
// Dispatch sends a message carrying fn to the program.
type DispatchScheduler struct {
	Dispatch func(fn func())
}

func (s DispatchScheduler) AfterFunc(d time.Duration, fn func()) Timer {
	return time.AfterFunc(d, func() { s.Dispatch(fn) })
}
