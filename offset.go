package reltime

import (
	"strconv"
	"time"
)

// Offset is a signed quantity of a calendar unit.
type Offset struct {
	Magnitude int
	Unit      Unit
}

func (o Offset) String() string {
	sign := "+"
	n := o.Magnitude
	if n < 0 {
		sign = "-"
		n = -n
	}
	return sign + strconv.Itoa(n) + o.Unit.Token()
}

// Apply adds the offset to the matching UTC calendar field of t and lets
// time.Date normalize any overflow, so Jan 31 +1mon lands in March.
func (o Offset) Apply(t time.Time) time.Time {
	c := civilOf(t)
	switch o.Unit {
	case UnitYear:
		c.year += o.Magnitude
	case UnitMonth:
		c.month += time.Month(o.Magnitude)
	case UnitDay:
		c.day += o.Magnitude
	case UnitHour:
		c.hour += o.Magnitude
	case UnitMinute:
		c.min += o.Magnitude
	case UnitSecond:
		c.sec += o.Magnitude
	}
	return c.time()
}

// DecodeOffsets decodes a run of offsets such as "+1mon-5d" in textual order.
// Whitespace must already be removed.
func DecodeOffsets(text string) ([]Offset, error) {
	return decodeOffsets(newScanner(text))
}

func decodeOffsets(s *scanner) ([]Offset, error) {
	var offsets []Offset
	for !s.done() {
		start := s.pos
		sign := 1
		switch {
		case s.consume("+"):
		case s.consume("-"):
			sign = -1
		default:
			return nil, s.errorf(s.pos, "invalid operator %q", s.src[s.pos])
		}

		digitsPos := s.pos
		digits := s.digits()
		if digits == "" {
			return nil, s.errorf(digitsPos, "invalid offset period")
		}
		n, err := strconv.Atoi(digits)
		if err != nil {
			return nil, s.errorf(digitsPos, "offset period %s out of range", digits)
		}

		unitPos := s.pos
		unit, ok := s.unit()
		if !ok {
			return nil, s.errorf(unitPos, "invalid offset unit in %q", s.src[start:s.end])
		}
		if int64(n) > unit.maxMagnitude() {
			return nil, s.errorf(digitsPos, "offset period %s out of range for unit %s", digits, unit.Token())
		}
		offsets = append(offsets, Offset{Magnitude: sign * n, Unit: unit})
	}
	return offsets, nil
}
