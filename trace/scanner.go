// Package trace parses valgrind lackey-style memory traces into the access
// records that drive a simulation.
package trace

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/sarchlab/csim/sim"
)

// A Record is one parsed memory-reference line.
type Record struct {
	// Op is the operation character, such as 'L', 'S', or 'M'.
	Op byte

	// Addr is the accessed address.
	Addr uint64

	// Size is the number of bytes accessed.
	Size uint64

	// Text is the reference in canonical "{op} {addr},{size}" form.
	Text string
}

// ParseLine parses one trace line. It reports false when the line is not a
// memory reference: instruction-fetch lines, blank lines, and lines that do
// not follow the " {op} {addr},{size}" shape are all rejected.
func ParseLine(line string) (Record, bool) {
	// Memory references start with a space, instruction fetches do not.
	if len(line) == 0 || line[0] != ' ' {
		return Record{}, false
	}

	fields := strings.Fields(line)
	if len(fields) != 2 || len(fields[0]) != 1 {
		return Record{}, false
	}

	op := fields[0][0]
	if op == 'I' {
		return Record{}, false
	}

	addrStr, sizeStr, found := strings.Cut(fields[1], ",")
	if !found {
		return Record{}, false
	}

	addr, err := strconv.ParseUint(addrStr, 16, 64)
	if err != nil {
		return Record{}, false
	}

	size, err := strconv.ParseUint(sizeStr, 10, 64)
	if err != nil {
		return Record{}, false
	}

	record := Record{
		Op:   op,
		Addr: addr,
		Size: size,
		Text: fmt.Sprintf("%c %s,%s", op, addrStr, sizeStr),
	}

	return record, true
}

// A Scanner reads a trace and produces one access per memory reference, or
// two for a modify, which is a load followed by a store at the same address.
// It follows the bufio.Scanner idiom and satisfies sim.AccessSource.
type Scanner struct {
	lines   *bufio.Scanner
	current sim.Access
	pending bool
}

// NewScanner creates a Scanner that reads trace text from r.
func NewScanner(r io.Reader) *Scanner {
	return &Scanner{
		lines: bufio.NewScanner(r),
	}
}

// Scan advances to the next access. It returns false when the trace is
// exhausted or reading fails; Err tells the two cases apart.
func (s *Scanner) Scan() bool {
	if s.pending {
		s.pending = false
		return true
	}

	for s.lines.Scan() {
		record, ok := ParseLine(s.lines.Text())
		if !ok {
			continue
		}

		s.current = sim.Access{
			Address: record.Addr,
			Label:   record.Text,
		}
		s.pending = record.Op == 'M'

		return true
	}

	return false
}

// Access returns the access produced by the last successful Scan.
func (s *Scanner) Access() sim.Access {
	return s.current
}

// Err returns the first error encountered while reading the trace.
func (s *Scanner) Err() error {
	return s.lines.Err()
}
