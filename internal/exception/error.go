package exception

import (
	"errors"
	"fmt"
)

// ErrRecordNotFound custom database error for failure to find record
var ErrRecordNotFound = errors.New("record not found")

// InputError represents malformed user input such as an unresolvable host
// or an invalid port specification. Sweeps fail fast on these.
type InputError struct {
	Field string
	Value string
	Err   error
}

// NewInputError returns a new InputError for field with the offending value
func NewInputError(field, value string, err error) *InputError {
	return &InputError{Field: field, Value: value, Err: err}
}

func (e *InputError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("invalid %s: %s", e.Field, e.Err)
	}

	return fmt.Sprintf("invalid %s %q: %s", e.Field, e.Value, e.Err)
}

func (e *InputError) Unwrap() error {
	return e.Err
}

// UnexpectedIOError represents a probe failure that is neither a timeout nor
// a refused connection. It aborts the sweep it occurred in.
type UnexpectedIOError struct {
	Address string
	Err     error
}

// NewUnexpectedIOError returns a new UnexpectedIOError for address
func NewUnexpectedIOError(address string, err error) *UnexpectedIOError {
	return &UnexpectedIOError{Address: address, Err: err}
}

func (e *UnexpectedIOError) Error() string {
	return fmt.Sprintf("unexpected i/o error probing %s: %s", e.Address, e.Err)
}

func (e *UnexpectedIOError) Unwrap() error {
	return e.Err
}

// IsInputError returns true if err is or wraps an InputError
func IsInputError(err error) bool {
	var inputErr *InputError
	return errors.As(err, &inputErr)
}

// IsUnexpectedIOError returns true if err is or wraps an UnexpectedIOError
func IsUnexpectedIOError(err error) bool {
	var ioErr *UnexpectedIOError
	return errors.As(err, &ioErr)
}
