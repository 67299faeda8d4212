package wake

import "log"

// A Pool is the single store of all wake samples, active or orphaned. It is a
// fixed-capacity ring over a preallocated array: Push always succeeds,
// overwriting the oldest slot once full, so memory stays bounded and wake
// fidelity degrades gracefully under sustained throughput instead of the
// process growing without limit.
type Pool struct {
	entries []GlobalWakePoint
	head    int
	size    int

	snapshot []GlobalWakePoint
}

// NewPool creates a pool with the given capacity.
func NewPool(capacity int) *Pool {
	if capacity <= 0 {
		log.Panic("wake pool capacity must be positive")
	}

	return &Pool{
		entries:  make([]GlobalWakePoint, capacity),
		snapshot: make([]GlobalWakePoint, 0, capacity),
	}
}

// Capacity returns the fixed capacity of the pool.
func (p *Pool) Capacity() int {
	return len(p.entries)
}

// Size returns the current occupancy.
func (p *Pool) Size() int {
	return p.size
}

// Push inserts a sample. When the pool is full the oldest sample is evicted
// and returned with evicted set.
func (p *Pool) Push(pt GlobalWakePoint) (old GlobalWakePoint, evicted bool) {
	if p.size < len(p.entries) {
		p.entries[(p.head+p.size)%len(p.entries)] = pt
		p.size++
		return GlobalWakePoint{}, false
	}

	old = p.entries[p.head]
	p.entries[p.head] = pt
	p.head = (p.head + 1) % len(p.entries)

	return old, true
}

// ForEach visits every sample oldest to newest. The callback receives a
// pointer into the pool so the tick can update intensities in place.
func (p *Pool) ForEach(fn func(pt *GlobalWakePoint)) {
	for i := 0; i < p.size; i++ {
		fn(&p.entries[(p.head+i)%len(p.entries)])
	}
}

// RemoveExpired compacts the pool, keeping only samples for which expired
// returns false and preserving their relative order. It returns the number of
// samples removed.
func (p *Pool) RemoveExpired(expired func(pt *GlobalWakePoint) bool) int {
	// Compact through the scratch buffer. Writing survivors straight into
	// the front of the ring could clobber wrapped slots not yet visited.
	p.snapshot = p.snapshot[:0]
	for i := 0; i < p.size; i++ {
		src := (p.head + i) % len(p.entries)
		if expired(&p.entries[src]) {
			continue
		}

		p.snapshot = append(p.snapshot, p.entries[src])
	}

	removed := p.size - len(p.snapshot)
	copy(p.entries, p.snapshot)
	p.head = 0
	p.size = len(p.snapshot)

	return removed
}

// GetAll returns a snapshot of the pool oldest to newest. The returned slice
// is reused by the next call and must not be retained.
func (p *Pool) GetAll() []GlobalWakePoint {
	p.snapshot = p.snapshot[:0]
	for i := 0; i < p.size; i++ {
		p.snapshot = append(
			p.snapshot, p.entries[(p.head+i)%len(p.entries)])
	}

	return p.snapshot
}
