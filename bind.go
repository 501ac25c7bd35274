package distexpr

// BindDistributions is the first evaluation pass. It replaces each run
// "a ~ b" or "a _ b" of two number tokens around a distribution operator with
// a single distribution value, turns the remaining numbers into Number values,
// and passes arithmetic operators through unchanged.
//
// Distribution operators bind tighter than arithmetic and do not chain: each
// must have a number token immediately on both sides, and a number already
// used as a bound cannot be the bound of another distribution. Violations
// return a *ParseError. Bounds given in descending order are swapped, so
// "6 ~ 4" is the same as "4 ~ 6".
func BindDistributions(tokens []Token) ([]Slot, error) {
	slots := make([]Slot, 0, len(tokens))
	// bound is whether the previous token was consumed as an upper bound.
	bound := false
	for i := 0; i < len(tokens); i++ {
		tok := tokens[i]
		switch {
		case tok.Kind == TokenNum:
			slots = append(slots, Slot{Val: Number{Value: tok.Num}, Pos: tok.Pos})
			bound = false
		case tok.Kind == TokenOp && tok.Op.dist():
			if bound {
				return nil, &ParseError{
					Col:  tok.Pos,
					Text: tok.Op.String(),
					Msg:  "Distribution operator " + tok.Op.String() + " cannot be chained",
				}
			}
			if i == 0 || tokens[i-1].Kind != TokenNum || i+1 >= len(tokens) || tokens[i+1].Kind != TokenNum {
				return nil, &ParseError{
					Col:  tok.Pos,
					Text: tok.Op.String(),
					Msg:  "Distribution operator " + tok.Op.String() + " needs a number on each side",
				}
			}
			lo, hi := tokens[i-1], tokens[i+1]
			var d Result
			if tok.Op == OpNormal {
				d = NormalBetween(lo.Num, hi.Num)
			} else {
				d = UniformBetween(lo.Num, hi.Num)
			}
			// The lower bound is always the last slot appended.
			slots[len(slots)-1] = Slot{Val: d, Pos: lo.Pos}
			i++
			bound = true
		case tok.Kind == TokenOp:
			slots = append(slots, Slot{Op: tok.Op, Pos: tok.Pos})
			bound = false
		default:
			return nil, &ParseError{Col: tok.Pos, Msg: "Invalid token " + tok.String()}
		}
	}
	return slots, nil
}
