package cache

// A Directory stores the information about what is stored in the cache.
type Directory interface {
	// Lookup returns the block that currently holds the address, or nil if
	// the address is not cached.
	Lookup(addr uint64) *Block

	// FindVictim returns the block that should store the address next. The
	// returned block may still be valid; the caller decides what an
	// overwrite means.
	FindVictim(addr uint64) *Block

	// Visit marks a block as just used.
	Visit(block *Block)

	// Decode exposes the directory's address decomposition.
	Decode(addr uint64) AddressFields

	GetSets() []Set
	WayAssociativity() int
	TotalSize() uint64
	Reset()
}

// A DirectoryImpl is the default implementation of a Directory.
type DirectoryImpl struct {
	geometry Geometry

	Sets []Set

	victimFinder VictimFinder
}

// NewDirectory returns a new directory for a validated geometry.
func NewDirectory(geometry Geometry, victimFinder VictimFinder) *DirectoryImpl {
	d := new(DirectoryImpl)
	d.geometry = geometry
	d.victimFinder = victimFinder

	d.Reset()

	return d
}

// Geometry returns the geometry the directory was built with.
func (d *DirectoryImpl) Geometry() Geometry {
	return d.geometry
}

// Decode splits an address according to the directory's geometry.
func (d *DirectoryImpl) Decode(addr uint64) AddressFields {
	return d.geometry.Decode(addr)
}

// TotalSize returns the maximum number of bytes that a cache with this
// directory could store.
func (d *DirectoryImpl) TotalSize() uint64 {
	return uint64(d.geometry.NumSets()) *
		uint64(d.geometry.WayAssociativity) *
		d.geometry.BlockSize()
}

// WayAssociativity returns the number of ways per set.
func (d *DirectoryImpl) WayAssociativity() int {
	return d.geometry.WayAssociativity
}

// Lookup finds the block that holds the address. Blocks are scanned in way
// order; at most one valid block per set can carry a given tag.
func (d *DirectoryImpl) Lookup(addr uint64) *Block {
	fields := d.geometry.Decode(addr)
	set := &d.Sets[fields.SetID]

	for _, block := range set.Blocks {
		if block.IsValid && block.Tag == fields.Tag {
			return block
		}
	}

	return nil
}

// FindVictim returns the block that can be used to store the address. If the
// block is valid, writing into it is an eviction.
func (d *DirectoryImpl) FindVictim(addr uint64) *Block {
	fields := d.geometry.Decode(addr)
	set := &d.Sets[fields.SetID]

	return d.victimFinder.FindVictim(set)
}

// Visit moves the block's way to the most-recently-used position of its set.
func (d *DirectoryImpl) Visit(block *Block) {
	d.Sets[block.SetID].Recency.Touch(block.WayID)
}

// GetSets returns all the sets in the directory.
func (d *DirectoryImpl) GetSets() []Set {
	return d.Sets
}

// Reset marks all the blocks in the directory invalid and restores the
// identity recency order, with way 0 of every set the first candidate.
func (d *DirectoryImpl) Reset() {
	numSets := d.geometry.NumSets()
	numWays := d.geometry.WayAssociativity

	d.Sets = make([]Set, numSets)
	for i := 0; i < numSets; i++ {
		d.Sets[i].Recency = NewRecencyQueue(numWays)
		for j := 0; j < numWays; j++ {
			block := &Block{
				SetID: i,
				WayID: j,
			}
			d.Sets[i].Blocks = append(d.Sets[i].Blocks, block)
		}
	}
}
