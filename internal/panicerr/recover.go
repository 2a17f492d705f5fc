// Package panicerr converts abnormal goroutine exits into error values.
package panicerr

import (
	"errors"
	"fmt"
	"runtime/debug"
)

// Error is a recovered abnormal exit of a function run under Recover:
// either a panic, carrying its value and stack, or a runtime.Goexit call.
type Error struct {
	Name   string
	Value  interface{}
	Stack  []byte
	Goexit bool
}

func (err *Error) Error() string { return fmt.Sprint(err) }

// Format implements fmt.Formatter; the "%+v" form includes the panic stack.
func (err *Error) Format(f fmt.State, c rune) {
	switch {
	case err.Goexit && err.Name == "":
		fmt.Fprint(f, "runtime.Goexit called")
	case err.Goexit:
		fmt.Fprintf(f, "%v called runtime.Goexit", err.Name)
	case err.Name == "":
		fmt.Fprintf(f, "paniced: %v", err.Value)
	default:
		fmt.Fprintf(f, "%v paniced: %v", err.Name, err.Value)
	}
	if c == 'v' && f.Flag('+') && len(err.Stack) > 0 {
		fmt.Fprintf(f, "\nPanic stack: %s", err.Stack)
	}
}

// Unwrap returns the panic value if it was an error.
func (err *Error) Unwrap() error {
	e, _ := err.Value.(error)
	return e
}

// Recover runs f in a new goroutine, returning its error, or an *Error if
// f panics or calls runtime.Goexit.
func Recover(name string, f func() error) error {
	errch := make(chan error, 1)
	go func() {
		defer close(errch)
		defer func() {
			// a Goexit skips the happy path send but still runs defers
			select {
			case errch <- &Error{Name: name, Goexit: true}:
			default:
			}
		}()
		defer func() {
			if e := recover(); e != nil {
				errch <- &Error{Name: name, Value: e, Stack: debug.Stack()}
			}
		}()
		errch <- f()
	}()
	return <-errch
}

// IsPanic reports whether err carries a recovered panic.
func IsPanic(err error) bool {
	var pe *Error
	return errors.As(err, &pe) && !pe.Goexit
}

// IsExit reports whether err carries a recovered runtime.Goexit.
func IsExit(err error) bool {
	var pe *Error
	return errors.As(err, &pe) && pe.Goexit
}

// PanicStack returns the stack trace captured with a recovered panic, if
// any.
func PanicStack(err error) string {
	var pe *Error
	if errors.As(err, &pe) {
		return string(pe.Stack)
	}
	return ""
}
