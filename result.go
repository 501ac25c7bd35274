package distexpr

import (
	"encoding/json"
	"math"
	"strconv"
)

// Op is an operator symbol.
type Op rune

const (
	OpAdd     Op = '+'
	OpSub     Op = '-'
	OpMul     Op = '*'
	OpDiv     Op = '/'
	OpNormal  Op = '~'
	OpUniform Op = '_'
)

func (op Op) String() string {
	return string(op)
}

// arith reports whether op is one of + - * /.
func (op Op) arith() bool {
	switch op {
	case OpAdd, OpSub, OpMul, OpDiv:
		return true
	}
	return false
}

// dist reports whether op builds a distribution from two numbers.
func (op Op) dist() bool {
	return op == OpNormal || op == OpUniform
}

// Z95 is the two-sided 95% quantile of the standard normal distribution. An
// expression "a ~ b" describes the normal distribution with 95% of its mass
// between a and b.
const Z95 = 1.959963984540054

// IntervalZ is the z-score used when displaying 95% intervals.
const IntervalZ = 1.96

// Kind identifies the variant of a Result.
type Kind int8

const (
	KindNone Kind = iota
	KindNumber
	KindNormal
	KindUniform
	KindError
)

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindNumber:
		return "number"
	case KindNormal:
		return "normal"
	case KindUniform:
		return "uniform"
	case KindError:
		return "error"
	default:
		return "Kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Result is the value of an expression: a Number, Normal, Uniform, or
// ErrorResult. A nil Result means there was nothing to evaluate. Results are
// values; operations always produce new ones.
type Result interface {
	Kind() Kind
	// result seals the set of variants.
	result()
}

// Number is a plain real number.
type Number struct {
	Value float64
}

// Normal is a normal distribution. Std is never negative in results produced
// by this package.
type Normal struct {
	Mean float64
	Std  float64
}

// Uniform is a uniform distribution. Min is never greater than Max in results
// produced by this package.
type Uniform struct {
	Min float64
	Max float64
}

// ErrorResult is a failure already classified for display. Hosts produce it
// from errors returned during evaluation.
type ErrorResult struct {
	Message string
}

func (Number) Kind() Kind      { return KindNumber }
func (Normal) Kind() Kind      { return KindNormal }
func (Uniform) Kind() Kind     { return KindUniform }
func (ErrorResult) Kind() Kind { return KindError }

func (Number) result()      {}
func (Normal) result()      {}
func (Uniform) result()     {}
func (ErrorResult) result() {}

// NormalBetween returns the normal distribution with 95% of its mass between
// a and b. The bounds may be given in either order.
func NormalBetween(a, b float64) Normal {
	if a > b {
		a, b = b, a
	}
	return Normal{Mean: (a + b) / 2, Std: (b - a) / (2 * Z95)}
}

// UniformBetween returns the uniform distribution over [a, b]. The bounds may
// be given in either order.
func UniformBetween(a, b float64) Uniform {
	if a > b {
		a, b = b, a
	}
	return Uniform{Min: a, Max: b}
}

// Interval returns the bounds of the 95% interval of n as displayed.
func (n Normal) Interval() (lo, hi float64) {
	return n.Mean - IntervalZ*n.Std, n.Mean + IntervalZ*n.Std
}

// Normal returns the normal distribution whose 95% interval spans u.
func (u Uniform) Normal() Normal {
	return NormalBetween(u.Min, u.Max)
}

// jsonFloat is a float64 that encodes non-finite values as the strings
// "Infinity", "-Infinity", and "NaN", which JSON numbers cannot express.
type jsonFloat float64

func (f jsonFloat) MarshalJSON() ([]byte, error) {
	v := float64(f)
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return json.Marshal(formatNumber(v))
	}
	return json.Marshal(v)
}

func (r Number) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type  string    `json:"type"`
		Value jsonFloat `json:"value"`
	}{"number", jsonFloat(r.Value)})
}

func (r Normal) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type             string    `json:"type"`
		DistributionType string    `json:"distributionType"`
		Mean             jsonFloat `json:"mean"`
		Std              jsonFloat `json:"std"`
	}{"distribution", "normal", jsonFloat(r.Mean), jsonFloat(r.Std)})
}

func (r Uniform) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type             string    `json:"type"`
		DistributionType string    `json:"distributionType"`
		Min              jsonFloat `json:"min"`
		Max              jsonFloat `json:"max"`
	}{"distribution", "uniform", jsonFloat(r.Min), jsonFloat(r.Max)})
}

func (r ErrorResult) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Error string `json:"error"`
	}{r.Message})
}

// Slot is one element of a sequence reduced by BindDistributions: either an
// operator or a value.
type Slot struct {
	// Op is the operator in an operator slot and 0 in a value slot.
	Op Op
	// Val is the value in a value slot and nil in an operator slot.
	Val Result
	// Pos is the column of the token the slot came from, or 0.
	Pos int
}

// Value returns a value slot.
func Value(r Result) Slot {
	return Slot{Val: r}
}

// Operator returns an operator slot.
func Operator(op Op) Slot {
	return Slot{Op: op}
}

// IsOp reports whether s is an operator slot.
func (s Slot) IsOp() bool {
	return s.Op != 0
}

func (s Slot) String() string {
	if s.IsOp() {
		return s.Op.String()
	}
	return Format(s.Val)
}
