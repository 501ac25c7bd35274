package distexpr

import (
	"io"
	"strconv"
	"strings"
)

// EvalSlots evaluates a sequence of alternating values and arithmetic
// operators with the usual precedence: * and / before + and -, each tier
// reduced left to right. An empty sequence gives a nil Result and no error. A
// sequence whose values and operators do not alternate, or which still holds a
// distribution operator, gives a *ParseError; failures combining operands are
// the *ArithmeticError from Apply. slots is not modified.
func EvalSlots(slots []Slot) (Result, error) {
	if len(slots) == 0 {
		return nil, nil
	}
	if err := checkSlots(slots); err != nil {
		return nil, err
	}
	if len(slots) == 1 {
		return slots[0].Val, nil
	}
	s := make([]Slot, len(slots))
	copy(s, slots)
	s, err := reduce(s, OpMul, OpDiv)
	if err != nil {
		return nil, err
	}
	s, err = reduce(s, OpAdd, OpSub)
	if err != nil {
		return nil, err
	}
	if len(s) != 1 {
		panic("distexpr: inconsistent reduction: " + strconv.Itoa(len(s)) + " slots left")
	}
	return s[0].Val, nil
}

// reduce collapses every "l op r" with op in {a, b} into one value, left to
// right, and returns the shortened sequence. s must alternate values and
// operators.
func reduce(s []Slot, a, b Op) ([]Slot, error) {
	for i := 1; i < len(s); {
		op := s[i].Op
		if op != a && op != b {
			i += 2
			continue
		}
		r, err := Apply(s[i-1].Val, op, s[i+1].Val)
		if err != nil {
			return nil, err
		}
		s[i-1] = Slot{Val: r, Pos: s[i-1].Pos}
		s = append(s[:i], s[i+2:]...)
	}
	return s, nil
}

// checkSlots verifies that slots alternate value, operator, value, ... and
// that every operator is arithmetic.
func checkSlots(slots []Slot) error {
	for i, s := range slots {
		switch {
		case i%2 == 0 && s.IsOp():
			return &ParseError{Col: s.Pos, Text: s.Op.String(), Msg: "Unexpected operator " + s.Op.String()}
		case i%2 == 0 && s.Val == nil:
			return &ParseError{Col: s.Pos, Msg: "Missing operand"}
		case i%2 == 1 && !s.IsOp():
			return &ParseError{Col: s.Pos, Msg: "Missing operator before " + Format(s.Val)}
		case i%2 == 1 && s.Op.dist():
			return &ParseError{
				Col:  s.Pos,
				Text: s.Op.String(),
				Msg:  "Distribution operator " + s.Op.String() + " needs a number on each side",
			}
		case i%2 == 1 && !s.Op.arith():
			return &ParseError{Col: s.Pos, Text: s.Op.String(), Msg: "Unknown operator " + strconv.Quote(s.Op.String())}
		}
	}
	if last := slots[len(slots)-1]; last.IsOp() {
		return &ParseError{Col: last.Pos, Text: last.Op.String(), Msg: "Missing operand after " + last.Op.String()}
	}
	return nil
}

// EvalTokens binds distributions in tokens and evaluates the result. An empty
// token sequence gives a nil Result and no error.
func EvalTokens(tokens []Token) (Result, error) {
	slots, err := BindDistributions(tokens)
	if err != nil {
		return nil, err
	}
	return EvalSlots(slots)
}

// Eval is a shortcut to scan and evaluate an expression.
func Eval(src io.RuneScanner) (Result, error) {
	toks, err := Lex(src)
	if err != nil {
		return nil, err
	}
	return EvalTokens(toks)
}

// EvalString is a shortcut to scan and evaluate a string expression.
func EvalString(src string) (Result, error) {
	return Eval(strings.NewReader(src))
}

// Calculate evaluates an expression and formats the result for display. Any
// failure is rendered through ErrorResult, so every outcome takes the same
// path through Format. Blank input gives the empty string.
func Calculate(src string) string {
	r, err := EvalString(src)
	if err != nil {
		r = ErrorResult{Message: err.Error()}
	}
	return Format(r)
}
