package fixer

import (
	"bufio"
	"io"
)

// Prompter reads one line of operator input. It is an interface so tests and
// scripted drivers can stand in for the terminal.
type Prompter interface {
	ReadLine() (string, error)
}

// ReaderPrompter wraps a bufio.Reader over any input stream, typically
// os.Stdin.
type ReaderPrompter struct {
	reader *bufio.Reader
}

// NewReaderPrompter creates a ReaderPrompter over in.
func NewReaderPrompter(in io.Reader) *ReaderPrompter {
	return &ReaderPrompter{reader: bufio.NewReader(in)}
}

// ReadLine reads up to the next newline. The trailing newline is included;
// callers are expected to trim. A final unterminated line is returned
// without an error.
func (p *ReaderPrompter) ReadLine() (string, error) {
	line, err := p.reader.ReadString('\n')
	if err == io.EOF && line != "" {
		return line, nil
	}
	return line, err
}
