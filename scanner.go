package reltime

import (
	"fmt"
	"strings"
	"unicode"
)

// scanner is a cursor over a whitespace-free expression. Reads never go past
// end, which lets the offset decoder run over a window of the expression
// without slicing it.
type scanner struct {
	src string
	pos int
	end int
}

func newScanner(src string) *scanner {
	return &scanner{src: src, end: len(src)}
}

// stripSpace removes Unicode white space and the byte order mark U+FEFF,
// which unicode.IsSpace does not cover.
func stripSpace(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) || r == '\ufeff' {
			return -1
		}
		return r
	}, s)
}

func (s *scanner) done() bool {
	return s.pos >= s.end
}

func (s *scanner) rest() string {
	return s.src[s.pos:s.end]
}

func (s *scanner) consume(lit string) bool {
	if strings.HasPrefix(s.rest(), lit) {
		s.pos += len(lit)
		return true
	}
	return false
}

// digits consumes a run of ASCII decimal digits.
func (s *scanner) digits() string {
	start := s.pos
	for s.pos < s.end && '0' <= s.src[s.pos] && s.src[s.pos] <= '9' {
		s.pos++
	}
	return s.src[start:s.pos]
}

// unit consumes the longest unit token at the cursor.
func (s *scanner) unit() (Unit, bool) {
	for _, t := range unitTokens {
		if s.consume(t.token) {
			return t.unit, true
		}
	}
	return unitNone, false
}

func (s *scanner) errorf(pos int, format string, args ...any) *SyntaxError {
	return &SyntaxError{Expr: s.src, Pos: pos, Msg: fmt.Sprintf(format, args...)}
}
