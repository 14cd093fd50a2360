package reltime

import "fmt"

// Unit is a calendar unit usable both as an offset unit and as a snap target.
type Unit int

const (
	unitNone Unit = iota
	UnitSecond
	UnitMinute
	UnitHour
	UnitDay
	UnitMonth
	UnitYear
)

// unitTokens is ordered longest token first so that "mon" is tried before "m".
var unitTokens = []struct {
	token string
	unit  Unit
}{
	{"mon", UnitMonth},
	{"s", UnitSecond},
	{"m", UnitMinute},
	{"h", UnitHour},
	{"d", UnitDay},
	{"y", UnitYear},
}

// ParseUnit returns the unit spelled exactly by token.
func ParseUnit(token string) (Unit, bool) {
	for _, t := range unitTokens {
		if t.token == token {
			return t.unit, true
		}
	}
	return unitNone, false
}

// Token returns the expression spelling of u ("mon" for UnitMonth).
func (u Unit) Token() string {
	for _, t := range unitTokens {
		if t.unit == u {
			return t.token
		}
	}
	return ""
}

func (u Unit) String() string {
	switch u {
	case UnitSecond:
		return "second"
	case UnitMinute:
		return "minute"
	case UnitHour:
		return "hour"
	case UnitDay:
		return "day"
	case UnitMonth:
		return "month"
	case UnitYear:
		return "year"
	}
	return fmt.Sprintf("Unit(%d)", int(u))
}

// maxMagnitude is the largest offset in u that could keep an instant inside
// the representable range: the full width of that range measured in the
// shortest length u can have.
func (u Unit) maxMagnitude() int64 {
	const spanSeconds = 2 * maxInstantMillis / 1000
	switch u {
	case UnitSecond:
		return spanSeconds
	case UnitMinute:
		return spanSeconds / 60
	case UnitHour:
		return spanSeconds / 3600
	case UnitDay:
		return spanSeconds / 86400
	case UnitMonth:
		return spanSeconds/(28*86400) + 1
	case UnitYear:
		return spanSeconds/(365*86400) + 1
	}
	return 0
}

func (u Unit) valid() bool {
	return UnitSecond <= u && u <= UnitYear
}
