package loop

import "time"

// Task is a scheduled callback. Cancel is safe to call more than once and
// after the task has stopped.
type Task interface {
	Cancel()
}

// Scheduler arms the two periodic triggers a match needs.
type Scheduler interface {
	// Every calls fn once per interval until cancelled.
	Every(interval time.Duration, fn func()) Task
	// RequestFrame calls fn once on the next frame.
	RequestFrame(fn func()) Task
}

type interval struct {
	every     time.Duration
	next      time.Time
	fn        func()
	cancelled bool
}

func (iv *interval) Cancel() { iv.cancelled = true }

type frameRequest struct {
	fn        func()
	cancelled bool
}

func (fr *frameRequest) Cancel() { fr.cancelled = true }

// Clock is a single-threaded Scheduler driven by its owner's loop: Advance
// fires due intervals, Frame runs the callbacks requested for this frame.
// It is not safe for concurrent use.
type Clock struct {
	now       time.Time
	intervals []*interval
	frames    []*frameRequest
	running   []*frameRequest
}

// Compile-time check that Clock implements Scheduler.
var _ Scheduler = (*Clock)(nil)

// NewClock creates a clock whose current time is now.
func NewClock(now time.Time) *Clock {
	return &Clock{now: now}
}

// Now returns the time of the last Advance.
func (c *Clock) Now() time.Time {
	return c.now
}

// Every implements Scheduler. The first call happens one interval after the
// current clock time.
func (c *Clock) Every(d time.Duration, fn func()) Task {
	iv := &interval{every: d, next: c.now.Add(d), fn: fn}
	c.intervals = append(c.intervals, iv)
	return iv
}

// RequestFrame implements Scheduler. Requests made while a frame is running
// are deferred to the next frame.
func (c *Clock) RequestFrame(fn func()) Task {
	fr := &frameRequest{fn: fn}
	c.frames = append(c.frames, fr)
	return fr
}

// Advance moves the clock to now and fires every interval that came due,
// once per elapsed interval.
func (c *Clock) Advance(now time.Time) {
	if now.After(c.now) {
		c.now = now
	}

	due := make([]*interval, len(c.intervals))
	copy(due, c.intervals)
	for _, iv := range due {
		for !iv.cancelled && !c.now.Before(iv.next) {
			iv.next = iv.next.Add(iv.every)
			iv.fn()
		}
	}

	kept := c.intervals[:0]
	for _, iv := range c.intervals {
		if !iv.cancelled {
			kept = append(kept, iv)
		}
	}
	clear(c.intervals[len(kept):])
	c.intervals = kept
}

// Frame runs the callbacks requested before this call.
func (c *Clock) Frame() {
	c.running, c.frames = c.frames, c.running[:0]
	for _, fr := range c.running {
		if !fr.cancelled {
			fr.cancelled = true
			fr.fn()
		}
	}
	clear(c.running)
	c.running = c.running[:0]
}

// Pending returns the number of live intervals and queued frame callbacks.
func (c *Clock) Pending() (intervals, frames int) {
	for _, iv := range c.intervals {
		if !iv.cancelled {
			intervals++
		}
	}
	for _, fr := range c.frames {
		if !fr.cancelled {
			frames++
		}
	}
	return intervals, frames
}
