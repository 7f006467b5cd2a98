package fixture

import "strings"

// Case is a single test case extracted from a fixture.
type Case struct {
	Num   int      // 1-based number of the case in the fixture
	Start int      // index of the first line of the case
	End   int      // index one past the last line of the case
	Lines []string // raw lines of the case, delimiter excluded

	// Delimiter is the delimiter line that terminated the case, empty if the
	// case ended with the fixture.
	Delimiter string

	// Text is the lines joined with a newline, doubled newlines collapsed.
	Text string
}

// Scanner produces the cases of a fixture one at a time. The zero value is
// not usable, create it with Fixture.Scanner.
//
// The first call to Scan always succeeds, even on an empty fixture. After
// collecting a case, the cursor unconditionally skips one line (the
// delimiter, or past the end of the fixture) and scanning stops once the
// cursor reaches the number of lines.
type Scanner struct {
	fx     *Fixture
	cursor int
	num    int
	done   bool
	cur    Case
}

// Scan advances to the next case, returning false when the fixture is
// exhausted.
func (s *Scanner) Scan() bool {
	if s.done {
		return false
	}

	lines := s.fx.Lines
	start := s.cursor
	for s.cursor < len(lines) && !IsDelimiter(lines[s.cursor]) {
		s.cursor++
	}
	end := s.cursor

	var delim string
	if s.cursor < len(lines) {
		delim = lines[s.cursor]
	}
	s.cursor++

	s.num++
	s.cur = Case{
		Num:       s.num,
		Start:     start,
		End:       end,
		Lines:     lines[start:end:end],
		Delimiter: delim,
		Text:      Collapse(strings.Join(lines[start:end], "\n")),
	}
	s.done = s.cursor >= len(lines)
	return true
}

// Case returns the case produced by the most recent call to Scan.
func (s *Scanner) Case() Case { return s.cur }

// Cursor returns the index of the next line to be scanned. It may be past
// the end of the fixture.
func (s *Scanner) Cursor() int { return s.cursor }

// Remaining returns the fixture text from the cursor to the end, lines
// joined with a newline. It is empty once the cursor is past the last line.
func (s *Scanner) Remaining() string {
	if s.cursor >= len(s.fx.Lines) {
		return ""
	}
	return strings.Join(s.fx.Lines[s.cursor:], "\n")
}

// Reset restarts the scanner at the start of the fixture.
func (s *Scanner) Reset() {
	s.cursor, s.num, s.done = 0, 0, false
	s.cur = Case{}
}

// Cases returns all cases of the fixture, in order.
func (f *Fixture) Cases() []Case {
	var cases []Case
	for s := f.Scanner(); s.Scan(); {
		cases = append(cases, s.Case())
	}
	return cases
}
