package sim

import (
	"fmt"

	"github.com/sarchlab/csim/cache"
)

// An Outcome classifies the result of one access.
type Outcome int

const (
	// OutcomeHit means the address was already cached.
	OutcomeHit Outcome = iota

	// OutcomeMiss means the address was absent and filled an empty way.
	OutcomeMiss

	// OutcomeMissEvict means the address was absent and displaced a valid
	// block.
	OutcomeMissEvict
)

func (o Outcome) String() string {
	switch o {
	case OutcomeHit:
		return "hit"
	case OutcomeMiss:
		return "miss"
	case OutcomeMissEvict:
		return "miss evict"
	default:
		return "unknown"
	}
}

// Stats holds the counters of one simulation run.
type Stats struct {
	Accesses  uint64
	Hits      uint64
	Misses    uint64
	Evictions uint64
}

// An AccessResult describes the processing of one access. It is the item of
// the HookPosAccessDone hook position.
type AccessResult struct {
	Seq     uint64
	Access  Access
	SetID   int
	Tag     uint64
	Outcome Outcome
}

// A Simulator runs access sequences against a cache directory. It owns its
// counters, so multiple simulators can run independently in one process.
type Simulator struct {
	HookableBase

	directory cache.Directory
	stats     Stats
	seq       uint64
}

// NewSimulator creates a Simulator over a directory.
func NewSimulator(directory cache.Directory) *Simulator {
	s := new(Simulator)
	s.directory = directory

	return s
}

// Directory returns the directory the simulator runs against.
func (s *Simulator) Directory() cache.Directory {
	return s.directory
}

// Process applies one access to the cache state, counts the outcome, and
// fires the HookPosAccessDone hook.
func (s *Simulator) Process(access Access) Outcome {
	fields := s.directory.Decode(access.Address)
	outcome := s.apply(access.Address, fields.Tag)

	s.seq++
	s.stats.Accesses++

	s.InvokeHook(HookCtx{
		Domain: s,
		Pos:    HookPosAccessDone,
		Item: AccessResult{
			Seq:     s.seq,
			Access:  access,
			SetID:   fields.SetID,
			Tag:     fields.Tag,
			Outcome: outcome,
		},
	})

	return outcome
}

// apply consults and mutates the directory for one access. A miss claims the
// set's eviction candidate whether or not the set still has an empty way; a
// freshly filled way must become the most recently used either way, so the
// two miss kinds differ only in counting.
func (s *Simulator) apply(addr, tag uint64) Outcome {
	block := s.directory.Lookup(addr)
	if block != nil {
		s.directory.Visit(block)
		s.stats.Hits++

		return OutcomeHit
	}

	victim := s.directory.FindVictim(addr)

	outcome := OutcomeMiss
	if victim.IsValid {
		s.stats.Evictions++
		outcome = OutcomeMissEvict
	}

	victim.Tag = tag
	victim.IsValid = true
	s.stats.Misses++

	return outcome
}

// Run pulls every access from the source in order and processes it. The
// accesses of one run must never be reordered: the recency state is a total
// order that depends on exact processing order.
func (s *Simulator) Run(src AccessSource) error {
	for src.Scan() {
		s.Process(src.Access())
	}

	if err := src.Err(); err != nil {
		return fmt.Errorf("reading accesses: %w", err)
	}

	s.InvokeHook(HookCtx{
		Domain: s,
		Pos:    HookPosRunDone,
		Item:   s.stats,
	})

	return nil
}

// Stats returns the counters accumulated so far.
func (s *Simulator) Stats() Stats {
	return s.stats
}

// Summary formats the final counters as a single line.
func (s *Simulator) Summary() string {
	return fmt.Sprintf("hits:%d misses:%d evictions:%d",
		s.stats.Hits, s.stats.Misses, s.stats.Evictions)
}

// Reset clears the cache state and the counters for a fresh run.
func (s *Simulator) Reset() {
	s.directory.Reset()
	s.stats = Stats{}
	s.seq = 0
}
