package oerror

import "fmt"

// Error is returned for failures that happen while building a simulation, such as an invalid
// settings file or a tunable out of range. Nothing inside a tick returns one.
type Error struct {
	Err string
}

// New formats a new Error.
func New(format string, args ...any) *Error {
	return &Error{Err: fmt.Sprintf(format, args...)}
}

func (e *Error) Error() string {
	return e.Err
}
