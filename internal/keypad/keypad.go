// Package keypad models the calculator's input surface: an expression built
// up one key press at a time and evaluated on demand.
package keypad

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/zephyrtronium/distexpr"
)

// ErrUnknownKey is returned by Press for keys the pad does not have.
var ErrUnknownKey = errors.New("unknown key")

// Keys with special meaning.
const (
	KeyClear     = "C"
	KeyBackspace = "⌫"
	KeyEquals    = "="
)

// aliases maps keyboard key names onto pad keys.
var aliases = map[string]string{
	"Enter":     KeyEquals,
	"Backspace": KeyBackspace,
	"Escape":    KeyClear,
	"Delete":    KeyClear,
	"c":         KeyClear,
	"x":         "*",
	"×":         "*",
	"÷":         "/",
}

// Pad accumulates an expression from key presses. A Pad is not safe for
// concurrent use.
type Pad struct {
	expr string
	// res is the most recent evaluation, nil before any.
	res  distexpr.Result
	done bool
	live bool
}

// Option configures a Pad.
type Option func(*Pad)

// Live makes the pad re-evaluate its expression after every edit instead of
// only when = is pressed.
func Live() Option {
	return func(p *Pad) { p.live = true }
}

// New creates an empty pad.
func New(opts ...Option) *Pad {
	p := &Pad{}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Press applies one key. Digits and the decimal point are appended directly;
// operators are appended with a space on each side. Keyboard names such as
// "Enter" and "Backspace" are accepted as aliases.
func (p *Pad) Press(key string) error {
	if k, ok := aliases[key]; ok {
		key = k
	}
	switch {
	case len(key) == 1 && (key[0] == '.' || '0' <= key[0] && key[0] <= '9'):
		p.expr += key
	case len(key) == 1 && strings.Contains(distexpr.Operators, key):
		p.expr += " " + key + " "
	case key == KeyClear:
		p.expr = ""
		p.res = nil
		p.done = false
		return nil
	case key == KeyBackspace:
		p.backspace()
	case key == KeyEquals:
		p.eval()
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnknownKey, key)
	}
	if p.live {
		p.eval()
	}
	return nil
}

// PressAll presses each key in order, stopping at the first error.
func (p *Pad) PressAll(keys ...string) error {
	for _, k := range keys {
		if err := p.Press(k); err != nil {
			return err
		}
	}
	return nil
}

// backspace removes the last character, or a whole spaced operator.
func (p *Pad) backspace() {
	if n := len(p.expr); n >= 3 && p.expr[n-1] == ' ' && p.expr[n-3] == ' ' {
		p.expr = p.expr[:n-3]
		return
	}
	_, sz := utf8.DecodeLastRuneInString(p.expr)
	p.expr = p.expr[:len(p.expr)-sz]
}

func (p *Pad) eval() {
	r, err := distexpr.EvalString(p.expr)
	if err != nil {
		r = distexpr.ErrorResult{Message: err.Error()}
	}
	p.res = r
	p.done = true
}

// Expression returns the raw expression text.
func (p *Pad) Expression() string {
	return p.expr
}

// Display returns the expression as shown on the calculator, "0" when empty.
func (p *Pad) Display() string {
	s := strings.TrimSpace(p.expr)
	if s == "" {
		return "0"
	}
	return s
}

// Value returns the most recent evaluation, or nil if the pad has not been
// evaluated since it was created or cleared.
func (p *Pad) Value() distexpr.Result {
	return p.res
}

// Result returns the result line, e.g. "Result: 5", or the empty string when
// there is nothing to show.
func (p *Pad) Result() string {
	if !p.done {
		return ""
	}
	s := distexpr.Format(p.res)
	if s == "" {
		return ""
	}
	return "Result: " + s
}

// State is a snapshot of a pad.
type State struct {
	Expression string          `json:"expression"`
	Display    string          `json:"display"`
	Result     string          `json:"result"`
	Value      distexpr.Result `json:"value"`
}

// State returns a snapshot of the pad.
func (p *Pad) State() State {
	return State{
		Expression: p.expr,
		Display:    p.Display(),
		Result:     p.Result(),
		Value:      p.res,
	}
}
