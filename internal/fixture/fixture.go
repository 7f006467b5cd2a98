// Package fixture loads a flat text fixture and segments it into the test
// cases it contains. Cases are separated by delimiter lines, i.e. lines that
// start with '='.
package fixture

import (
	"fmt"
	"os"
	"strings"
)

// Fixture is the immutable, line-oriented content of a fixture file.
type Fixture struct {
	// Name is the path the fixture was loaded from, empty if it was built
	// from a string.
	Name  string
	Lines []string
}

// Load reads the fixture file at path.
func Load(path string) (*Fixture, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load fixture: %w", err)
	}
	fx := Split(string(b))
	fx.Name = path
	return fx, nil
}

// Split returns the fixture made of the lines of text. Each line has its
// terminating newline stripped, a final line without newline is kept, and
// an empty text has no line at all.
func Split(text string) *Fixture {
	var lines []string
	if text != "" {
		lines = strings.Split(text, "\n")
		if lines[len(lines)-1] == "" {
			lines = lines[:len(lines)-1]
		}
	}
	return &Fixture{Lines: lines}
}

// Len returns the number of lines in the fixture.
func (f *Fixture) Len() int { return len(f.Lines) }

// Text returns the whole fixture, lines joined with a newline.
func (f *Fixture) Text() string { return strings.Join(f.Lines, "\n") }

// Scanner returns a new scanner positioned at the start of the fixture.
func (f *Fixture) Scanner() *Scanner {
	return &Scanner{fx: f}
}

// IsDelimiter returns true if line marks the boundary between two cases.
func IsDelimiter(line string) bool {
	return line != "" && line[0] == '='
}

// Collapse replaces each doubled newline in s by a single one. It makes a
// single left-to-right pass, so a run of three newlines becomes two.
func Collapse(s string) string {
	return strings.ReplaceAll(s, "\n\n", "\n")
}
