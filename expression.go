package reltime

import (
	"strings"
	"time"
)

// Expression is a validated relative time expression.
type Expression struct {
	Modifier Modifier
	Offsets  []Offset
	// Snap is the unit to round down to. The zero value means no snap.
	Snap Unit
}

// Compile validates expr and decodes its offsets without reading any clock.
func Compile(expr string) (Expression, error) {
	v, err := validate(expr)
	if err != nil {
		return Expression{}, err
	}
	offsets, err := decodeOffsets(v.offsets)
	if err != nil {
		return Expression{}, err
	}
	return Expression{Modifier: v.modifier, Offsets: offsets, Snap: v.snap}, nil
}

func (e Expression) Snapped() bool {
	return e.Snap.valid()
}

// Eval applies the offsets to base and then snaps. It fails with a
// *RangeError if any step leaves the representable range.
func (e Expression) Eval(base time.Time) (time.Time, error) {
	t, err := CheckedApplyOffsets(base, e.Offsets)
	if err != nil {
		return time.Time{}, err
	}
	if e.Snapped() {
		t = Snap(t, e.Snap)
		if !inRange(t) {
			return time.Time{}, &RangeError{Instant: t}
		}
	}
	return t, nil
}

// String renders e in canonical form, e.g. "now()+1mon-1d@d".
func (e Expression) String() string {
	var b strings.Builder
	b.WriteString(e.Modifier.Token())
	for _, o := range e.Offsets {
		b.WriteString(o.String())
	}
	if e.Snapped() {
		b.WriteByte(snapDelim)
		b.WriteString(e.Snap.Token())
	}
	return b.String()
}
