package interp

import (
	"fmt"

	"github.com/lamp100307/Pluto/token"
)

// ErrorKind classifies runtime errors; each kind is itself an error so that
// errors.Is(err, NameError) matches any *Error of that kind.
type ErrorKind string

// Runtime error kinds.
const (
	NameError         ErrorKind = "NameError"
	ArityError        ErrorKind = "ArityError"
	TypeMismatchError ErrorKind = "TypeMismatchError"
	IndexError        ErrorKind = "IndexError"
	OperatorError     ErrorKind = "OperatorError"
	ValueError        ErrorKind = "ValueError"
	ZeroDivisionError ErrorKind = "ZeroDivisionError"
	OverflowError     ErrorKind = "OverflowError"
	EOFError          ErrorKind = "EOFError"
	RecursionError    ErrorKind = "RecursionError"
	StepLimitError    ErrorKind = "StepLimitError"
)

func (kind ErrorKind) Error() string { return string(kind) }

// Error is a runtime failure raised while evaluating the node at Pos.
type Error struct {
	Kind ErrorKind
	Msg  string
	Pos  token.Pos
}

func (err *Error) Error() string {
	return fmt.Sprintf("%v: %v: %v", err.Pos, err.Kind, err.Msg)
}

func (err *Error) Unwrap() error { return err.Kind }

// haltError carries an evaluation failure up through panic to Run.
type haltError struct{ error }

func (err haltError) Error() string {
	if err.error != nil {
		return fmt.Sprintf("halted: %v", err.error)
	}
	return "halted"
}

func (err haltError) Unwrap() error { return err.error }
