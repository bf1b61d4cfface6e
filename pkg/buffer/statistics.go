package buffer

import "sync/atomic"

// Statistics tracks buffer activity counters. All fields are updated
// atomically and safe to read from any goroutine.
type Statistics struct {
	writes    atomic.Int64
	reads     atomic.Int64
	peeks     atomic.Int64
	drops     atomic.Int64
	overflows atomic.Int64
	size      atomic.Int64
}

// NewStatistics creates a zeroed statistics tracker.
func NewStatistics() *Statistics {
	return &Statistics{}
}

// Write records a successful write.
func (s *Statistics) Write() { s.writes.Add(1) }

// Read records a successful read.
func (s *Statistics) Read() { s.reads.Add(1) }

// Peek records a peek.
func (s *Statistics) Peek() { s.peeks.Add(1) }

// Drop records a dropped item.
func (s *Statistics) Drop() { s.drops.Add(1) }

// Overflow records an overflow event.
func (s *Statistics) Overflow() { s.overflows.Add(1) }

// UpdateSize records the current buffer size.
func (s *Statistics) UpdateSize(size int64) { s.size.Store(size) }

// Snapshot is a point-in-time copy of the counters.
type Snapshot struct {
	Writes    int64
	Reads     int64
	Peeks     int64
	Drops     int64
	Overflows int64
	Size      int64
}

// Snapshot returns a consistent-enough copy of the counters for reporting.
func (s *Statistics) Snapshot() Snapshot {
	return Snapshot{
		Writes:    s.writes.Load(),
		Reads:     s.reads.Load(),
		Peeks:     s.peeks.Load(),
		Drops:     s.drops.Load(),
		Overflows: s.overflows.Load(),
		Size:      s.size.Load(),
	}
}
