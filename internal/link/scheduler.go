package link

import "time"

type Timer interface {
	Stop() bool
}

// Scheduler runs deferred transitions. Production uses time.AfterFunc.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
}

type timeScheduler struct{}

func (timeScheduler) AfterFunc(d time.Duration, f func()) Timer { return time.AfterFunc(d, f) }

func NewTimeScheduler() Scheduler { return timeScheduler{} }
