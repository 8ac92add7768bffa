package cache

// A Block is the metadata associated with one cache line.
type Block struct {
	Tag     uint64
	SetID   int
	WayID   int
	IsValid bool
}

// A Set is a group of blocks where a certain memory block can be stored,
// together with the least-recently-used order of its ways.
type Set struct {
	Blocks  []*Block
	Recency *RecencyQueue
}
