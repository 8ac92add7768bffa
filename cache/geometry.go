// Package cache models the tag state of a set-associative cache.
//
// The package tracks which memory blocks occupy each cache set and maintains
// the least-recently-used order of the ways within each set. It never stores
// data bytes: the goal is to reproduce the hit, miss, and eviction behavior
// of a real cache with the same geometry, not its contents.
package cache

import "fmt"

// AddressWidth is the number of bits in a simulated address.
const AddressWidth = 64

// A Geometry describes the shape of a set-associative cache. It is fixed
// when a directory is built and never changes afterwards.
type Geometry struct {
	// SetIndexBits is the number of address bits that select a set.
	SetIndexBits int

	// BlockOffsetBits is the number of address bits that select a byte
	// within a block.
	BlockOffsetBits int

	// WayAssociativity is the number of ways (line slots) per set.
	WayAssociativity int
}

// AddressFields is the decomposition of an address under a Geometry.
type AddressFields struct {
	Offset uint64
	SetID  int
	Tag    uint64
}

// NumSets returns the number of sets in the cache.
func (g Geometry) NumSets() int {
	return 1 << g.SetIndexBits
}

// TagBits returns the number of address bits that form the tag.
func (g Geometry) TagBits() int {
	return AddressWidth - g.SetIndexBits - g.BlockOffsetBits
}

// BlockSize returns the number of bytes in a block.
func (g Geometry) BlockSize() uint64 {
	return 1 << g.BlockOffsetBits
}

// Validate returns an error if the geometry cannot describe a cache.
func (g Geometry) Validate() error {
	if g.SetIndexBits < 0 {
		return fmt.Errorf("set index bits must not be negative, got %d",
			g.SetIndexBits)
	}

	if g.BlockOffsetBits < 0 {
		return fmt.Errorf("block offset bits must not be negative, got %d",
			g.BlockOffsetBits)
	}

	if g.WayAssociativity < 1 {
		return fmt.Errorf("way associativity must be at least 1, got %d",
			g.WayAssociativity)
	}

	if g.SetIndexBits+g.BlockOffsetBits > AddressWidth {
		return fmt.Errorf(
			"set index bits and block offset bits use %d bits, "+
				"addresses only have %d",
			g.SetIndexBits+g.BlockOffsetBits, AddressWidth)
	}

	return nil
}

// Decode splits an address into its offset, set index, and tag fields.
// Decode is pure: any 64-bit address is valid input once the geometry itself
// has been validated.
func (g Geometry) Decode(addr uint64) AddressFields {
	return AddressFields{
		Offset: addr & (uint64(1)<<g.BlockOffsetBits - 1),
		SetID:  int(addr >> g.BlockOffsetBits & (uint64(1)<<g.SetIndexBits - 1)),
		Tag:    addr >> (g.SetIndexBits + g.BlockOffsetBits),
	}
}

// SetID returns the set index field of an address.
func (g Geometry) SetID(addr uint64) int {
	return g.Decode(addr).SetID
}

// Tag returns the tag field of an address.
func (g Geometry) Tag(addr uint64) uint64 {
	return g.Decode(addr).Tag
}
