package xerror

import "fmt"

// Error is a plain formatted error used across the module.
type Error struct {
	Err string
}

// New creates an Error from a format string and arguments.
func New(format string, args ...interface{}) *Error {
	return &Error{Err: fmt.Sprintf(format, args...)}
}

func (e *Error) Error() string {
	return e.Err
}
