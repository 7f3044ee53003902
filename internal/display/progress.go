package display

import (
	"fmt"
	"io"
)

// ProgressInterval is how many processed items one dot represents.
const ProgressInterval = 100

// Progress prints a dot for every ProgressInterval steps, matching the
// tool's phase output (a header line followed by a slowly growing dot row).
type Progress struct {
	writer io.Writer
	count  int
}

// NewProgress creates a Progress writing to w and prints the phase header.
func NewProgress(w io.Writer, phase string) *Progress {
	fmt.Fprintln(w, phase)
	return &Progress{writer: w}
}

// Step records one processed item, emitting a dot every ProgressInterval
// steps.
func (p *Progress) Step() {
	p.count++
	if p.count%ProgressInterval == 0 {
		fmt.Fprint(p.writer, ".")
	}
}

// Count returns the number of recorded steps.
func (p *Progress) Count() int {
	return p.count
}

// Done terminates the dot row.
func (p *Progress) Done() {
	fmt.Fprintln(p.writer)
}
