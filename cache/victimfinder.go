package cache

// A VictimFinder decides which block of a set should be written next.
type VictimFinder interface {
	FindVictim(set *Set) *Block
}

// LRUVictimFinder selects the least-recently-used block of a set.
type LRUVictimFinder struct {
}

// NewLRUVictimFinder returns a newly constructed LRU victim finder.
func NewLRUVictimFinder() *LRUVictimFinder {
	f := new(LRUVictimFinder)
	return f
}

// FindVictim returns the least-recently-used block of the set and promotes
// its way to most recently used, since the caller is about to rewrite it.
// Invalid blocks are consumed before any valid block is evicted: a way that
// has never been visited sits at the least-recently-used end of the queue.
func (f *LRUVictimFinder) FindVictim(set *Set) *Block {
	return set.Blocks[set.Recency.EvictCandidate()]
}
