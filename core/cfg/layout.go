package cfg

import (
	"sort"

	mapset "github.com/deckarep/golang-set/v2"
)

// HotLayout orders the function's block ids for code placement. Starting
// at the entry it follows, from each placed block, the most probable
// successor that is not placed yet (lower successor index wins ties).
// When a chain cannot be extended, the lowest unplaced id starts the next
// chain. Every block appears exactly once.
func (f *Function) HotLayout() []int {
	placed := mapset.NewThreadUnsafeSet[int]()
	order := make([]int, 0, len(f.blocks))

	remaining := make([]int, 0, len(f.blocks))
	for _, b := range f.blocks {
		remaining = append(remaining, b.id)
	}
	sort.Ints(remaining)

	chain := func(b *BasicBlock) {
		for b != nil {
			placed.Add(b.id)
			order = append(order, b.id)
			b = f.hottestUnplaced(b, placed)
		}
	}
	chain(f.Entry())
	for _, id := range remaining {
		if !placed.Contains(id) {
			chain(f.byID[id])
		}
	}
	return order
}

func (f *Function) hottestUnplaced(b *BasicBlock, placed mapset.Set[int]) *BasicBlock {
	snap := b.profile.Snapshot()
	best, bestP := -1, -1.0
	for i, s := range b.successors {
		if placed.Contains(s) {
			continue
		}
		if p := snap.Probability(i); p > bestP {
			best, bestP = s, p
		}
	}
	if best < 0 {
		return nil
	}
	return f.byID[best]
}
