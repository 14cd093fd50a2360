// Package reltime parses relative time expressions such as "now()-1d@d".
//
// An expression is a modifier naming the base instant, any number of signed
// offsets applied left to right, and an optional snap that rounds the result
// down to the start of a calendar unit:
//
//	now()+10d+12h      ten and a half days from now
//	now()-1y@mon       the start of this month, one year ago
//	now()@d            midnight today (UTC)
//
// Whitespace is ignored anywhere in an expression. All arithmetic is done on
// UTC calendar fields.
package reltime

import (
	"io"
	"log/slog"
	"time"
)

// Parser evaluates expressions against a configurable clock. It holds no
// mutable state and is safe for concurrent use.
type Parser struct {
	clock  Clock
	logger *slog.Logger
}

// Option configures a Parser.
type Option func(*Parser)

// WithClock sets the clock used to resolve now().
func WithClock(c Clock) Option {
	return func(p *Parser) {
		p.clock = c
	}
}

// WithLogger sets a logger that receives debug records for each parse.
func WithLogger(l *slog.Logger) Option {
	return func(p *Parser) {
		p.logger = l
	}
}

// New returns a Parser reading the system clock and discarding logs unless
// opts say otherwise.
func New(opts ...Option) *Parser {
	p := &Parser{
		clock:  SystemClock{},
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse evaluates expr against the parser's clock. The clock is read once.
func (p *Parser) Parse(expr string) (time.Time, error) {
	e, err := Compile(expr)
	if err != nil {
		return time.Time{}, err
	}

	base, err := resolveModifier(e.Modifier, p.clock)
	if err != nil {
		return time.Time{}, err
	}
	result, err := e.Eval(base)
	if err != nil {
		return time.Time{}, err
	}

	p.logger.Debug("evaluated expression",
		slog.String("expr", e.String()),
		slog.Int("offsets", len(e.Offsets)),
		slog.Time("base", base),
		slog.Time("result", result),
	)
	return result, nil
}

// ParseValue is Parse for input of unknown type. Anything other than a
// string fails with ErrInvalidArgumentType.
func (p *Parser) ParseValue(v any) (time.Time, error) {
	expr, ok := v.(string)
	if !ok {
		return time.Time{}, &ArgumentTypeError{Value: v}
	}
	return p.Parse(expr)
}

var defaultParser = New()

// Parse evaluates expr against the system clock.
func Parse(expr string) (time.Time, error) {
	return defaultParser.Parse(expr)
}

// ParseValue evaluates v against the system clock if v is a string.
func ParseValue(v any) (time.Time, error) {
	return defaultParser.ParseValue(v)
}
