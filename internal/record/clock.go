package record

import "sync/atomic"

// Clock is the monotonic logical clock that orders inserts.
//
// The store only advances it while holding its mutex, so seq order equals
// insertion order.
type Clock struct {
	seq atomic.Int64
}

// NewClock creates a clock starting at 0. The first Next returns 1.
func NewClock() *Clock {
	return &Clock{}
}

// Next increments the clock and returns the new value.
func (c *Clock) Next() int64 {
	return c.seq.Add(1)
}
