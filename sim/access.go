package sim

// An Access is one normalized memory reference to simulate.
type Access struct {
	// Address is the accessed 64-bit address.
	Address uint64

	// Label is the textual form of the originating trace record, such as
	// "M 20,1". It is carried for observation only and has no effect on the
	// outcome.
	Label string
}

// An AccessSource produces the accesses of one simulation run in order. It
// follows the bufio.Scanner idiom: Scan advances to the next access and
// reports whether one is available, Access returns it, and Err explains an
// early stop.
type AccessSource interface {
	Scan() bool
	Access() Access
	Err() error
}
