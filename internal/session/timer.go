package session

import "time"

// Timer is a pending deferred call. *time.Timer satisfies it.
type Timer interface {
	Stop() bool
}

// Scheduler arms deferred calls.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
}

type clockScheduler struct{}

func (clockScheduler) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// RealScheduler runs deferred calls on the wall clock.
func RealScheduler() Scheduler {
	return clockScheduler{}
}
