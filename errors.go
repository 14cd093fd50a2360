package reltime

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrInvalidArgumentType is returned when the input is not a string.
	ErrInvalidArgumentType = errors.New("invalid argument type")
	// ErrInvalidExpression is returned for any grammar violation.
	ErrInvalidExpression = errors.New("invalid expression")
)

// SyntaxError describes where an expression failed to parse. Pos is a byte
// offset into the expression after whitespace removal.
type SyntaxError struct {
	Expr string
	Pos  int
	Msg  string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("reltime: %s at position %d in %q", e.Msg, e.Pos, e.Expr)
}

func (e *SyntaxError) Unwrap() error {
	return ErrInvalidExpression
}

// RangeError is returned when evaluation leaves the representable range of
// ±8.64e15 ms around the Unix epoch. Offset is the offset being applied, or
// nil when the base or the snapped result is out of range.
type RangeError struct {
	Instant time.Time
	Offset  *Offset
}

func (e *RangeError) Error() string {
	if e.Offset == nil {
		return fmt.Sprintf("reltime: instant %s out of range", e.Instant.Format(time.RFC3339))
	}
	return fmt.Sprintf("reltime: offset %s moves the instant out of range", e.Offset)
}

func (e *RangeError) Unwrap() error {
	return ErrInvalidExpression
}

// ArgumentTypeError is returned by ParseValue for non-string input.
type ArgumentTypeError struct {
	Value any
}

func (e *ArgumentTypeError) Error() string {
	return fmt.Sprintf("reltime: expected a string expression, got %T", e.Value)
}

func (e *ArgumentTypeError) Unwrap() error {
	return ErrInvalidArgumentType
}
