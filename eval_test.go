package distexpr_test

import (
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/zephyrtronium/distexpr"
)

// near reports whether two results are the same variant with parameters
// within tol of each other.
func near(a, b distexpr.Result, tol float64) bool {
	eq := func(x, y float64) bool { return math.Abs(x-y) <= tol }
	switch a := a.(type) {
	case distexpr.Number:
		b, ok := b.(distexpr.Number)
		return ok && eq(a.Value, b.Value)
	case distexpr.Normal:
		b, ok := b.(distexpr.Normal)
		return ok && eq(a.Mean, b.Mean) && eq(a.Std, b.Std)
	case distexpr.Uniform:
		b, ok := b.(distexpr.Uniform)
		return ok && eq(a.Min, b.Min) && eq(a.Max, b.Max)
	case nil:
		return b == nil
	}
	return false
}

func TestEvalString(t *testing.T) {
	cases := []struct {
		name string
		src  string
		r    distexpr.Result
	}{
		{"num", "1", distexpr.Number{Value: 1}},
		{"add", "2 + 3", distexpr.Number{Value: 5}},
		{"add-chain", "4+5+6", distexpr.Number{Value: 4 + 5 + 6}},
		{"sub", "4-5-6", distexpr.Number{Value: 4 - 5 - 6}},
		{"mul", "4*5*6", distexpr.Number{Value: 4 * 5 * 6}},
		{"div", "4/5/6", distexpr.Number{Value: 4.0 / 5.0 / 6.0}},
		{"div-exact", "10 / 2", distexpr.Number{Value: 5}},
		{"prec", "2 + 3*4", distexpr.Number{Value: 14}},
		{"prec-left", "2*3 + 4", distexpr.Number{Value: 10}},
		{"prec-mixed", "1 - 6 / 3 * 2 + 8", distexpr.Number{Value: 1 - 6.0/3*2 + 8}},
		{"decimal", "0.5 * .5", distexpr.Number{Value: 0.25}},
		{"normal", "4 ~ 6", distexpr.Normal{Mean: 5, Std: 2 / (2 * distexpr.Z95)}},
		{"normal-reversed", "6 ~ 4", distexpr.Normal{Mean: 5, Std: 2 / (2 * distexpr.Z95)}},
		{"normal-point", "3 ~ 3", distexpr.Normal{Mean: 3, Std: 0}},
		{"uniform", "4 _ 6", distexpr.Uniform{Min: 4, Max: 6}},
		{"uniform-reversed", "6 _ 4", distexpr.Uniform{Min: 4, Max: 6}},
		{"shift-normal", "2 + 4 ~ 6", distexpr.Normal{Mean: 7, Std: 2 / (2 * distexpr.Z95)}},
		{"shift-normal-right", "4 ~ 6 - 1", distexpr.Normal{Mean: 4, Std: 2 / (2 * distexpr.Z95)}},
		{"scale-normal", "4 ~ 6 * 2", distexpr.Normal{Mean: 10, Std: 4 / (2 * distexpr.Z95)}},
		{"scale-before-shift", "1 + 4 _ 6 * 2", distexpr.Uniform{Min: 9, Max: 13}},
		{"flip-uniform", "0 - 4 _ 6 * 2", distexpr.Uniform{Min: -12, Max: -8}},
		{"sum-normals", "0 ~ 2 + 10 ~ 12", distexpr.Normal{Mean: 12, Std: math.Sqrt2 / distexpr.Z95}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			r, err := distexpr.EvalString(c.src)
			if err != nil {
				t.Fatalf("%q failed to evaluate: %v", c.src, err)
			}
			if !near(r, c.r, 1e-12) {
				t.Errorf("%q: want %#v, got %#v", c.src, c.r, r)
			}
		})
	}
}

func TestEvalEmpty(t *testing.T) {
	for _, src := range []string{"", "   ", "\t\n"} {
		r, err := distexpr.EvalString(src)
		if err != nil {
			t.Errorf("%q gave error %v", src, err)
		}
		if r != nil {
			t.Errorf("%q gave non-nil result %#v", src, r)
		}
	}
	r, err := distexpr.EvalSlots(nil)
	if r != nil || err != nil {
		t.Errorf("no slots gave %#v, %v", r, err)
	}
}

func TestEvalParseError(t *testing.T) {
	cases := []struct {
		name string
		src  string
		col  int
	}{
		{"unknown-char", "1 $ 2", 3},
		{"trailing-op", "1 +", 3},
		{"leading-op", "+ 1", 1},
		{"unary-minus", "-3", 1},
		{"double-op", "1 + * 2", 5},
		{"adjacent-nums", "123 456 7.89", 5},
		{"normal-leading", "~ 6", 1},
		{"normal-trailing", "4 ~", 3},
		{"normal-chain", "4 ~ 6 ~ 8", 7},
		{"mixed-chain", "4 ~ 6 _ 8", 7},
		{"normal-after-op", "4 + ~ 6", 5},
		{"normal-alone", "~", 1},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			r, err := distexpr.EvalString(c.src)
			if r != nil {
				t.Errorf("evaluating %q gave non-nil result %#v", c.src, r)
			}
			if err == nil {
				t.Fatalf("evaluating %q gave no error", c.src)
			}
			var perr *distexpr.ParseError
			if !errors.As(err, &perr) {
				t.Fatalf("%#v is not *distexpr.ParseError", err)
			}
			if perr.Pos() != c.col {
				t.Errorf("evaluating %q: want column %d, got %d (%v)", c.src, c.col, perr.Pos(), err)
			}
			if errors.Is(err, distexpr.ErrArithmetic) {
				t.Errorf("%v matches ErrArithmetic", err)
			}
		})
	}
}

func TestEvalArithmeticError(t *testing.T) {
	cases := []struct {
		name string
		src  string
		msg  string
	}{
		{"div-zero", "6 / 0", "Division by zero"},
		{"div-zero-later", "1 + 6 / 2 / 0", "Division by zero"},
		{"normal-div-zero", "4 ~ 6 / 0", "Division by zero"},
		{"uniform-div-zero", "4 _ 6 / 0", "Division by zero"},
		{"div-centered-normal", "1 / 0 ~ 0", "Division by distribution with zero mean"},
		{"div-spanning-uniform", "1 / 0 _ 2", "Division by distribution spanning zero"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			r, err := distexpr.EvalString(c.src)
			if r != nil {
				t.Errorf("evaluating %q gave non-nil result %#v", c.src, r)
			}
			var aerr *distexpr.ArithmeticError
			if !errors.As(err, &aerr) {
				t.Fatalf("%#v is not *distexpr.ArithmeticError", err)
			}
			if aerr.Error() != c.msg {
				t.Errorf("want %q, got %q", c.msg, aerr.Error())
			}
			if !errors.Is(err, distexpr.ErrArithmetic) {
				t.Errorf("%v does not match ErrArithmetic", err)
			}
		})
	}
}

func TestEvalSlots(t *testing.T) {
	num := func(v float64) distexpr.Slot { return distexpr.Value(distexpr.Number{Value: v}) }
	op := distexpr.Operator
	cases := []struct {
		name  string
		slots []distexpr.Slot
		r     distexpr.Result
	}{
		{"single", []distexpr.Slot{num(42)}, distexpr.Number{Value: 42}},
		{"add", []distexpr.Slot{num(2), op('+'), num(3)}, distexpr.Number{Value: 5}},
		{"prec", []distexpr.Slot{num(2), op('+'), num(3), op('*'), num(4)}, distexpr.Number{Value: 14}},
		{"div", []distexpr.Slot{num(10), op('/'), num(2)}, distexpr.Number{Value: 5}},
		{"left-assoc-sub", []distexpr.Slot{num(10), op('-'), num(4), op('-'), num(3)}, distexpr.Number{Value: 3}},
		{"left-assoc-div", []distexpr.Slot{num(64), op('/'), num(4), op('/'), num(2)}, distexpr.Number{Value: 8}},
		{"single-dist", []distexpr.Slot{distexpr.Value(distexpr.Uniform{Min: 1, Max: 2})}, distexpr.Uniform{Min: 1, Max: 2}},
		{"dist", []distexpr.Slot{
			distexpr.Value(distexpr.Normal{Mean: 5, Std: 1}), op('+'),
			distexpr.Value(distexpr.Normal{Mean: 3, Std: 2}),
		}, distexpr.Normal{Mean: 8, Std: math.Sqrt(5)}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			in := append([]distexpr.Slot(nil), c.slots...)
			r, err := distexpr.EvalSlots(c.slots)
			if err != nil {
				t.Fatalf("evaluating %v: %v", c.slots, err)
			}
			if !near(r, c.r, 1e-12) {
				t.Errorf("evaluating %v: want %#v, got %#v", c.slots, c.r, r)
			}
			for i := range in {
				if in[i] != c.slots[i] {
					t.Errorf("slot %d modified: was %v, now %v", i, in[i], c.slots[i])
				}
			}
		})
	}
}

func TestEvalSlotsMalformed(t *testing.T) {
	num := distexpr.Value(distexpr.Number{Value: 1})
	cases := []struct {
		name  string
		slots []distexpr.Slot
	}{
		{"op-only", []distexpr.Slot{distexpr.Operator('+')}},
		{"nil-value", []distexpr.Slot{distexpr.Value(nil)}},
		{"unbound-dist", []distexpr.Slot{num, distexpr.Operator('~'), num}},
		{"unknown-op", []distexpr.Slot{num, distexpr.Operator('^'), num}},
		{"two-values", []distexpr.Slot{num, num}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := distexpr.EvalSlots(c.slots)
			if !errors.Is(err, distexpr.ErrParse) {
				t.Errorf("want parse error, got %v", err)
			}
		})
	}
}

func TestEvalTokens(t *testing.T) {
	toks := []distexpr.Token{
		{Kind: distexpr.TokenNum, Num: 2},
		{Kind: distexpr.TokenOp, Op: distexpr.OpAdd},
		{Kind: distexpr.TokenNum, Num: 4},
		{Kind: distexpr.TokenOp, Op: distexpr.OpNormal},
		{Kind: distexpr.TokenNum, Num: 6},
	}
	r, err := distexpr.EvalTokens(toks)
	if err != nil {
		t.Fatal(err)
	}
	n, ok := r.(distexpr.Normal)
	if !ok {
		t.Fatalf("want normal, got %#v", r)
	}
	if n.Mean != 7 {
		t.Errorf("want mean 7, got %g", n.Mean)
	}
	if math.Abs(n.Std-0.51) > 0.005 {
		t.Errorf("want std near 0.51, got %g", n.Std)
	}
}

func TestCalculate(t *testing.T) {
	cases := []struct {
		src  string
		want string
	}{
		{"", ""},
		{"2 + 3", "5"},
		{"1 / 4", "0.25"},
		{"6 / 0", "Error: Division by zero"},
		{"123 $ 456", "Error: Unknown character: $"},
		{"4 _ 6", "Uniform distribution: min=4.00, max=6.00"},
		{"4 ~ 6", "Normal distribution: μ=5.00, σ=0.51 (95% between 4.00 and 6.00)"},
	}
	for _, c := range cases {
		if got := distexpr.Calculate(c.src); got != c.want {
			t.Errorf("%q: want %q, got %q", c.src, c.want, got)
		}
	}
}

func BenchmarkEval(b *testing.B) {
	b.Run("nums", func(b *testing.B) {
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			distexpr.EvalString("2 + 3 * 4 - 5 / 6")
		}
	})
	b.Run("dists", func(b *testing.B) {
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			distexpr.EvalString("2 + 4 ~ 6 * 3 - 1 _ 2")
		}
	})
}

func Example() {
	for _, src := range []string{"2 + 3*4", "2 + 4 ~ 6", "4 _ 6 * -1", "4 _ 6 * 0 - 2", "6 / 0"} {
		fmt.Printf("%-14s %s\n", src, distexpr.Calculate(src))
	}

	// Output:
	// 2 + 3*4        14
	// 2 + 4 ~ 6      Normal distribution: μ=7.00, σ=0.51 (95% between 6.00 and 8.00)
	// 4 _ 6 * -1     Error: Unexpected operator -
	// 4 _ 6 * 0 - 2  Uniform distribution: min=-2.00, max=-2.00
	// 6 / 0          Error: Division by zero
}
