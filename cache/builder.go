package cache

import "fmt"

// A Builder can build cache directories.
type Builder struct {
	setIndexBits     int
	blockOffsetBits  int
	wayAssociativity int
}

// MakeBuilder creates a new builder with a default geometry of 16 sets,
// 4 ways, and 64-byte blocks.
func MakeBuilder() Builder {
	return Builder{
		setIndexBits:     4,
		blockOffsetBits:  6,
		wayAssociativity: 4,
	}
}

// WithSetIndexBits sets the number of address bits that select a set.
func (b Builder) WithSetIndexBits(n int) Builder {
	b.setIndexBits = n
	return b
}

// WithBlockOffsetBits sets the number of address bits that select a byte
// within a block.
func (b Builder) WithBlockOffsetBits(n int) Builder {
	b.blockOffsetBits = n
	return b
}

// WithWayAssociativity sets the number of ways per set.
func (b Builder) WithWayAssociativity(n int) Builder {
	b.wayAssociativity = n
	return b
}

// Build builds a directory with an LRU victim finder.
func (b Builder) Build() (*DirectoryImpl, error) {
	geometry := Geometry{
		SetIndexBits:     b.setIndexBits,
		BlockOffsetBits:  b.blockOffsetBits,
		WayAssociativity: b.wayAssociativity,
	}

	if err := geometry.Validate(); err != nil {
		return nil, fmt.Errorf("cannot build directory: %w", err)
	}

	return NewDirectory(geometry, NewLRUVictimFinder()), nil
}

// MustBuild builds a directory and panics if the geometry is invalid.
func (b Builder) MustBuild() *DirectoryImpl {
	d, err := b.Build()
	if err != nil {
		panic(err)
	}

	return d
}
