package reltime

import "strings"

const (
	snapDelim     = '@'
	snapUnitNames = "s, m, h, d, mon, y"
)

// validated is the output of validate. The offsets text is the window
// [offsets.pos, offsets.end) of the stripped expression.
type validated struct {
	modifier Modifier
	offsets  *scanner
	snap     Unit
}

func validate(expr string) (validated, error) {
	s := newScanner(stripSpace(expr))

	v := validated{offsets: s}
	matched := false
	for _, t := range modifierTokens {
		if s.consume(t.token) {
			v.modifier = t.modifier
			matched = true
			break
		}
	}
	if !matched {
		return validated{}, s.errorf(0, "expression must start with %s", modifierList())
	}

	if i := strings.IndexByte(s.rest(), snapDelim); i >= 0 {
		at := s.pos + i
		unit, ok := ParseUnit(s.src[at+1:])
		if !ok {
			return validated{}, s.errorf(at+1, "can only snap to %s", snapUnitNames)
		}
		v.snap = unit
		s.end = at
	}
	return v, nil
}

func modifierList() string {
	tokens := make([]string, len(modifierTokens))
	for i, t := range modifierTokens {
		tokens[i] = t.token
	}
	return strings.Join(tokens, ", ")
}
