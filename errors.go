package distexpr

import "errors"

// ErrParse and ErrArithmetic classify evaluation failures for errors.Is.
var (
	ErrParse      = errors.New("distexpr: parse error")
	ErrArithmetic = errors.New("distexpr: arithmetic error")
)

// ParseError indicates malformed input: an unknown character, a malformed
// number, a distribution operator without a number on each side, or operators
// and operands out of order. It implements InputError and matches ErrParse.
type ParseError struct {
	// Col is the 1-based rune column of the offending token. It is 0 when the
	// error is not attached to a token, e.g. for hand-built slots.
	Col int
	// Text is the offending input text, if any.
	Text string
	// Msg is the human-readable description of the failure.
	Msg string
}

func (err *ParseError) Error() string {
	return err.Msg
}

func (err *ParseError) Pos() int {
	return err.Col
}

func (err *ParseError) Is(target error) bool {
	return target == ErrParse
}

// ArithmeticError indicates an operation the engine cannot perform, e.g.
// division by zero. It matches ErrArithmetic.
type ArithmeticError struct {
	// Op is the operator being applied.
	Op Op
	// Msg is the human-readable description of the failure.
	Msg string
}

func (err *ArithmeticError) Error() string {
	return err.Msg
}

func (err *ArithmeticError) Is(target error) bool {
	return target == ErrArithmetic
}

// InputError is an error with position information. Every error resulting from
// invalid input text implements InputError.
type InputError interface {
	error
	// Pos returns the position of the error as the number of runes up to and
	// including the start of the token that caused the error.
	Pos() int
}

var _ InputError = (*ParseError)(nil)
