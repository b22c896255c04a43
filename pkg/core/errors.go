package core

import (
	"errors"
	"fmt"
)

// UnsupportedOperationError is returned for DDL the dialect cannot express.
type UnsupportedOperationError struct {
	Dialect   string
	Operation string
	Reason    string
}

func (e *UnsupportedOperationError) Error() string {
	msg := fmt.Sprintf("%s: %s is not supported", e.Dialect, e.Operation)
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	return msg
}

// CoercionError is returned when a boolean-valued column holds a value
// outside {0, 1, "0", "1", NULL}.
type CoercionError struct {
	Column string
	Index  int
	Value  any
}

func (e *CoercionError) Error() string {
	return fmt.Sprintf("unexpected boolean value %#v in column %q (index %d)", e.Value, e.Column, e.Index)
}

// WidthError is returned when no native integer type has the requested byte width.
type WidthError struct {
	Width int
}

func (e *WidthError) Error() string {
	return fmt.Sprintf("no integer type has byte size %d, use a numeric with scale 0 instead", e.Width)
}

// StatementInvalidError wraps a driver failure for a specific statement.
type StatementInvalidError struct {
	SQL string
	Err error
}

func (e *StatementInvalidError) Error() string {
	return fmt.Sprintf("statement invalid: %v", e.Err)
}

func (e *StatementInvalidError) Unwrap() error { return e.Err }

// ShapeError is returned when a raw row does not have one value per column.
type ShapeError struct {
	Row  int
	Want int
	Got  int
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("row %d has %d values, want %d", e.Row, e.Got, e.Want)
}

// ErrNotConnected is returned when an operation needs a live connection.
var ErrNotConnected = errors.New("database connection not established")

// IsStatementInvalid reports whether err wraps a StatementInvalidError.
func IsStatementInvalid(err error) bool {
	var si *StatementInvalidError
	return errors.As(err, &si)
}
