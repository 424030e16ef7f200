package keypad

import "time"

// timerScheduler is the default Scheduler, backed by time.AfterFunc. The
// callback runs on the timer goroutine; callers that serialise machine
// access wrap the scheduler accordingly.
type timerScheduler struct{}

func (timerScheduler) Schedule(d time.Duration, fn func()) func() {
	t := time.AfterFunc(d, fn)
	return func() { t.Stop() }
}

// FuncScheduler adapts a function to the Scheduler interface, letting a
// caller inject locking or a fake clock around the scheduled callback.
type FuncScheduler func(d time.Duration, fn func()) (cancel func())

func (f FuncScheduler) Schedule(d time.Duration, fn func()) func() {
	return f(d, fn)
}
