package cfg

import (
	"math"
	"sync/atomic"

	"golang.org/x/sys/cpu"
)

// paddedCounter keeps each counter on its own cache line so that blocks
// executed from many goroutines do not false-share neighbouring successors.
type paddedCounter struct {
	atomic.Uint64
	_ cpu.CacheLinePad
}

// saturatingInc increments c unless it already reached limit. It reports
// whether the increment happened.
func (c *paddedCounter) saturatingInc(limit uint64) bool {
	for {
		old := c.Load()
		if old >= limit {
			return false
		}
		if c.CompareAndSwap(old, old+1) {
			return true
		}
	}
}

// BranchProfile holds per-successor execution frequencies of one basic block.
//
// Counters only grow and saturate at their limit instead of wrapping.
// The total is always incremented before the successor counter, and a
// successor is only counted when the total could be, so a reader never
// observes a successor count above the total. Updates are lock-free;
// Record may be called concurrently from any number of goroutines.
type BranchProfile struct {
	total  paddedCounter
	counts []paddedCounter
	limit  uint64
}

// NewBranchProfile creates a zeroed profile for n successors.
func NewBranchProfile(n int) *BranchProfile {
	return newBranchProfileWithLimit(n, math.MaxUint64)
}

func newBranchProfileWithLimit(n int, limit uint64) *BranchProfile {
	return &BranchProfile{
		counts: make([]paddedCounter, n),
		limit:  limit,
	}
}

// Len returns the number of successors tracked.
func (p *BranchProfile) Len() int { return len(p.counts) }

// Record counts one transfer to successor i. Once the total saturates the
// profile is frozen; that is not an error.
func (p *BranchProfile) Record(i int) {
	if !p.total.saturatingInc(p.limit) {
		saturatedCounter.Inc(1)
		return
	}
	if !p.counts[i].saturatingInc(p.limit) {
		saturatedCounter.Inc(1)
	}
}

// IsFirstTake reports whether successor i has never been recorded. It is a
// single atomic load and is meant to be checked before Record.
func (p *BranchProfile) IsFirstTake(i int) bool {
	return p.counts[i].Load() == 0
}

// Count returns the number of recorded transfers to successor i.
func (p *BranchProfile) Count(i int) uint64 { return p.counts[i].Load() }

// Total returns the number of recorded executions.
func (p *BranchProfile) Total() uint64 { return p.total.Load() }

// Probability returns the observed frequency of successor i in [0, 1].
func (p *BranchProfile) Probability(i int) float64 {
	// Load the successor before the total: totals are bumped first.
	n := p.counts[i].Load()
	if n == 0 {
		return 0
	}
	return ratio(n, p.total.Load())
}

// Snapshot copies the current counters.
func (p *BranchProfile) Snapshot() ProfileSnapshot {
	s := ProfileSnapshot{Counts: make([]uint64, len(p.counts))}
	for i := range p.counts {
		s.Counts[i] = p.counts[i].Load()
	}
	s.Total = p.total.Load()
	return s
}

// ProfileSnapshot is a point-in-time copy of a BranchProfile.
type ProfileSnapshot struct {
	Counts []uint64
	Total  uint64
}

// Probability follows the same rules as BranchProfile.Probability.
func (s ProfileSnapshot) Probability(i int) float64 {
	if s.Counts[i] == 0 {
		return 0
	}
	return ratio(s.Counts[i], s.Total)
}

func ratio(n, total uint64) float64 {
	if n >= total {
		return 1
	}
	return float64(n) / float64(total)
}
