// Package reveal provides the cancellable timers behind the delayed
// answer reveal: a countdown that races the learner's own answer, and a
// small set of named timers for feedback display.
package reveal

import (
	"sync"
	"sync/atomic"
	"time"
)

const (
	pending int32 = iota
	fired
	cancelled
)

// Countdown runs a callback once after a delay unless cancelled first.
// Exactly one of firing and Cancel wins.
type Countdown struct {
	timer    *time.Timer
	state    atomic.Int32
	done     chan struct{}
	deadline time.Time
}

// Start begins a countdown of d. When it runs out, Done is closed and then
// fn, if non-nil, is called on the timer's goroutine.
func Start(d time.Duration, fn func()) *Countdown {
	c := &Countdown{done: make(chan struct{}), deadline: time.Now().Add(d)}
	c.timer = time.AfterFunc(d, func() {
		if !c.state.CompareAndSwap(pending, fired) {
			return
		}
		close(c.done)
		if fn != nil {
			fn()
		}
	})
	return c
}

// Cancel stops the countdown. It reports whether the countdown was still
// pending; false means it already fired or was cancelled.
func (c *Countdown) Cancel() bool {
	if !c.state.CompareAndSwap(pending, cancelled) {
		return false
	}
	c.timer.Stop()
	return true
}

// Done is closed when the countdown fires. It is never closed after Cancel.
func (c *Countdown) Done() <-chan struct{} {
	return c.done
}

// Fired reports whether the countdown ran out.
func (c *Countdown) Fired() bool {
	return c.state.Load() == fired
}

// Remaining returns the time left at now, or 0 once the countdown is over.
func (c *Countdown) Remaining(now time.Time) time.Duration {
	if c.state.Load() != pending {
		return 0
	}
	return max(c.deadline.Sub(now), 0)
}

// Timers is a set of named countdowns. Scheduling a name that is already
// pending replaces it. The zero value is ready to use.
type Timers struct {
	mu     sync.Mutex
	timers map[string]*Countdown
}

// Schedule starts a countdown under name, cancelling any pending one.
func (t *Timers) Schedule(name string, d time.Duration, fn func()) *Countdown {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.timers == nil {
		t.timers = make(map[string]*Countdown)
	}
	if old, ok := t.timers[name]; ok {
		old.Cancel()
	}
	c := Start(d, fn)
	t.timers[name] = c
	return c
}

// Cancel stops the countdown under name and reports whether it was pending.
func (t *Timers) Cancel(name string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	c, ok := t.timers[name]
	if !ok {
		return false
	}
	delete(t.timers, name)
	return c.Cancel()
}

// CancelAll stops every pending countdown.
func (t *Timers) CancelAll() {
	t.mu.Lock()
	defer t.mu.Unlock()
	for name, c := range t.timers {
		c.Cancel()
		delete(t.timers, name)
	}
}
