package reltime

import (
	"fmt"
	"time"
)

// Modifier selects the base instant an expression is evaluated against.
type Modifier int

const (
	Now Modifier = iota
)

var modifierTokens = []struct {
	token    string
	modifier Modifier
}{
	{"now()", Now},
}

func (m Modifier) Token() string {
	for _, t := range modifierTokens {
		if t.modifier == m {
			return t.token
		}
	}
	return ""
}

func (m Modifier) String() string {
	switch m {
	case Now:
		return "now"
	}
	return fmt.Sprintf("Modifier(%d)", int(m))
}

// resolveModifier is the only place a modifier is turned into an instant.
// The result is UTC with millisecond resolution.
func resolveModifier(m Modifier, clock Clock) (time.Time, error) {
	var base time.Time
	switch m {
	case Now:
		base = clock.Now()
	default:
		return time.Time{}, fmt.Errorf("reltime: unsupported modifier %v", m)
	}
	return base.UTC().Truncate(time.Millisecond), nil
}
