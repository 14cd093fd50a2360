package reltime

import "time"

// civil holds the UTC calendar fields of an instant.
type civil struct {
	year  int
	month time.Month
	day   int
	hour  int
	min   int
	sec   int
	nsec  int
}

func civilOf(t time.Time) civil {
	t = t.UTC()
	year, month, day := t.Date()
	hour, min, sec := t.Clock()
	return civil{year, month, day, hour, min, sec, t.Nanosecond()}
}

func (c civil) time() time.Time {
	return time.Date(c.year, c.month, c.day, c.hour, c.min, c.sec, c.nsec, time.UTC)
}

// snapResets lists one reset per snap unit, coarsest first. Snapping to a
// unit applies its reset and every reset after it.
var snapResets = []struct {
	unit  Unit
	reset func(*civil)
}{
	{UnitYear, func(c *civil) { c.month = time.January }},
	{UnitMonth, func(c *civil) { c.day = 1 }},
	{UnitDay, func(c *civil) { c.hour = 0 }},
	{UnitHour, func(c *civil) { c.min = 0 }},
	{UnitMinute, func(c *civil) { c.sec = 0 }},
	{UnitSecond, func(c *civil) { c.nsec = 0 }},
}

// maxInstantMillis bounds instants to ±8.64e15 ms around the Unix epoch,
// the range of an ECMAScript Date.
const maxInstantMillis = 8_640_000_000_000_000

var (
	minInstant = time.UnixMilli(-maxInstantMillis).UTC()
	maxInstant = time.UnixMilli(maxInstantMillis).UTC()
)

func inRange(t time.Time) bool {
	return !t.Before(minInstant) && !t.After(maxInstant)
}

// ApplyOffsets applies offsets to base left to right, each to the result of
// the previous one. It does not range check; offsets accepted by
// DecodeOffsets cannot overflow an in-range base in a single step, but
// repeated offsets can leave the range. Use CheckedApplyOffsets to detect
// that.
func ApplyOffsets(base time.Time, offsets []Offset) time.Time {
	t := base.UTC()
	for _, o := range offsets {
		t = o.Apply(t)
	}
	return t
}

// CheckedApplyOffsets is ApplyOffsets that fails with a *RangeError as soon
// as the base or any intermediate instant leaves the representable range.
func CheckedApplyOffsets(base time.Time, offsets []Offset) (time.Time, error) {
	t := base.UTC()
	if !inRange(t) {
		return time.Time{}, &RangeError{Instant: t}
	}
	for i, o := range offsets {
		if m, limit := int64(o.Magnitude), o.Unit.maxMagnitude(); m > limit || m < -limit {
			return time.Time{}, &RangeError{Instant: t, Offset: &offsets[i]}
		}
		t = o.Apply(t)
		if !inRange(t) {
			return time.Time{}, &RangeError{Instant: t, Offset: &offsets[i]}
		}
	}
	return t, nil
}

// Snap rounds t down to the start of unit in UTC. An unknown unit only converts
// t to UTC.
func Snap(t time.Time, unit Unit) time.Time {
	c := civilOf(t)
	for i, r := range snapResets {
		if r.unit != unit {
			continue
		}
		for _, r := range snapResets[i:] {
			r.reset(&c)
		}
		break
	}
	return c.time()
}
