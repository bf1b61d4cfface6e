package pipeline

import "sync"

// resequencer restores frame-sequence order after concurrent processing.
// Workers deliver results keyed by frame sequence number; the emit
// callback fires strictly in ascending order, with no gaps left behind.
// A nil delivery releases the slot without emitting, which is how decode
// failures and dropped frames keep the stream moving.
type resequencer struct {
	mu      sync.Mutex
	next    uint64
	pending map[uint64]*Update
	emit    func(Update)
}

// newResequencer creates a resequencer expecting sequence numbers to begin
// at first.
func newResequencer(first uint64, emit func(Update)) *resequencer {
	return &resequencer{
		next:    first,
		pending: make(map[uint64]*Update),
		emit:    emit,
	}
}

// Deliver records the processing result for seq and flushes every
// contiguous completed slot. Emission happens under the lock, so sink
// calls never interleave or reorder.
func (r *resequencer) Deliver(seq uint64, u *Update) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.pending[seq] = u
	for {
		next, ok := r.pending[r.next]
		if !ok {
			return
		}
		delete(r.pending, r.next)
		r.next++
		if next != nil {
			r.emit(*next)
		}
	}
}

// Skip releases the slot for seq without emitting an update.
func (r *resequencer) Skip(seq uint64) {
	r.Deliver(seq, nil)
}

// PendingCount returns the number of out-of-order results waiting for an
// earlier sequence number to complete.
func (r *resequencer) PendingCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.pending)
}
