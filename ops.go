package distexpr

import "math"

// Apply combines two results with an arithmetic operator. The combination is
// chosen by the kinds of both operands:
//
//   - number with number is ordinary floating-point arithmetic.
//   - a distribution with a number shifts (+ -) or scales (* /) it. Scaling a
//     uniform distribution by a negative factor swaps its bounds.
//   - a number with a distribution commutes for + and *. n - X and n / X
//     transform X accordingly; n / X for a normal X uses the first-order
//     approximation around its mean.
//   - two distributions are combined as independent variables, approximating
//     uniform operands by their normal equivalents. The result is always
//     normal.
//
// Division by zero, division by a distribution centered on or spanning zero,
// and any operand or operator outside these rules give an *ArithmeticError.
func Apply(left Result, op Op, right Result) (Result, error) {
	if !op.arith() {
		return nil, unsupported(left, op, right)
	}
	switch l := left.(type) {
	case Number:
		switch r := right.(type) {
		case Number:
			return numNum(l.Value, op, r.Value)
		case Normal:
			return numNormal(l.Value, op, r)
		case Uniform:
			return numUniform(l.Value, op, r)
		}
	case Normal:
		switch r := right.(type) {
		case Number:
			return normalNum(l, op, r.Value)
		case Normal:
			return normalNormal(l, op, r)
		case Uniform:
			return normalNormal(l, op, r.Normal())
		}
	case Uniform:
		switch r := right.(type) {
		case Number:
			return uniformNum(l, op, r.Value)
		case Normal:
			return normalNormal(l.Normal(), op, r)
		case Uniform:
			return normalNormal(l.Normal(), op, r.Normal())
		}
	}
	return nil, unsupported(left, op, right)
}

func unsupported(left Result, op Op, right Result) error {
	return &ArithmeticError{
		Op:  op,
		Msg: "Unsupported operation: " + kindOf(left).String() + " " + op.String() + " " + kindOf(right).String(),
	}
}

func kindOf(r Result) Kind {
	if r == nil {
		return KindNone
	}
	return r.Kind()
}

func divZero(op Op) error {
	return &ArithmeticError{Op: op, Msg: "Division by zero"}
}

func numNum(a float64, op Op, b float64) (Result, error) {
	switch op {
	case OpAdd:
		return Number{Value: a + b}, nil
	case OpSub:
		return Number{Value: a - b}, nil
	case OpMul:
		return Number{Value: a * b}, nil
	default:
		if b == 0 {
			return nil, divZero(op)
		}
		return Number{Value: a / b}, nil
	}
}

func normalNum(n Normal, op Op, k float64) (Result, error) {
	switch op {
	case OpAdd:
		return Normal{Mean: n.Mean + k, Std: n.Std}, nil
	case OpSub:
		return Normal{Mean: n.Mean - k, Std: n.Std}, nil
	case OpMul:
		return Normal{Mean: n.Mean * k, Std: n.Std * math.Abs(k)}, nil
	default:
		if k == 0 {
			return nil, divZero(op)
		}
		return Normal{Mean: n.Mean / k, Std: n.Std / math.Abs(k)}, nil
	}
}

func uniformNum(u Uniform, op Op, k float64) (Result, error) {
	switch op {
	case OpAdd:
		return Uniform{Min: u.Min + k, Max: u.Max + k}, nil
	case OpSub:
		return Uniform{Min: u.Min - k, Max: u.Max - k}, nil
	case OpMul:
		return UniformBetween(u.Min*k, u.Max*k), nil
	default:
		if k == 0 {
			return nil, divZero(op)
		}
		return UniformBetween(u.Min/k, u.Max/k), nil
	}
}

func numNormal(k float64, op Op, n Normal) (Result, error) {
	switch op {
	case OpAdd, OpMul:
		return normalNum(n, op, k)
	case OpSub:
		return Normal{Mean: k - n.Mean, Std: n.Std}, nil
	default:
		if n.Mean == 0 {
			return nil, &ArithmeticError{Op: op, Msg: "Division by distribution with zero mean"}
		}
		return Normal{Mean: k / n.Mean, Std: math.Abs(k) * n.Std / (n.Mean * n.Mean)}, nil
	}
}

func numUniform(k float64, op Op, u Uniform) (Result, error) {
	switch op {
	case OpAdd, OpMul:
		return uniformNum(u, op, k)
	case OpSub:
		return Uniform{Min: k - u.Max, Max: k - u.Min}, nil
	default:
		if u.Min <= 0 && u.Max >= 0 {
			return nil, &ArithmeticError{Op: op, Msg: "Division by distribution spanning zero"}
		}
		return UniformBetween(k/u.Max, k/u.Min), nil
	}
}

// normalNormal combines two independent normal variables.
func normalNormal(a Normal, op Op, b Normal) (Result, error) {
	switch op {
	case OpAdd:
		return Normal{Mean: a.Mean + b.Mean, Std: math.Hypot(a.Std, b.Std)}, nil
	case OpSub:
		return Normal{Mean: a.Mean - b.Mean, Std: math.Hypot(a.Std, b.Std)}, nil
	case OpMul:
		// Exact mean and variance of a product of independent variables.
		va, vb := a.Std*a.Std, b.Std*b.Std
		v := a.Mean*a.Mean*vb + b.Mean*b.Mean*va + va*vb
		return Normal{Mean: a.Mean * b.Mean, Std: math.Sqrt(v)}, nil
	default:
		if b.Mean == 0 {
			return nil, &ArithmeticError{Op: op, Msg: "Division by distribution with zero mean"}
		}
		// First-order approximation around the means.
		q := a.Mean / b.Mean
		v := (a.Std*a.Std + q*q*b.Std*b.Std) / (b.Mean * b.Mean)
		return Normal{Mean: q, Std: math.Sqrt(v)}, nil
	}
}
