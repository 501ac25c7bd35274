// Package distexpr implements a calculator over real numbers and probability
// distributions.
//
// An expression is a flat sequence of numbers joined by the operators
// + - * / and the two distribution operators ~ and _. "4 ~ 6" is a normal
// distribution whose 95% interval is [4, 6], and "4 _ 6" is a uniform
// distribution over the same range. The distribution operators bind tighter
// than arithmetic and cannot be chained, so "2 + 4 ~ 6 * 3" adds 2 to three
// times the distribution. There are no brackets, variables, or unary
// operators.
//
// Evaluation happens in stages: Tokenize scans the text, BindDistributions
// collapses each "a ~ b" or "a _ b" into a single value, and EvalSlots
// reduces the remaining arithmetic with the usual precedence, combining
// operands with Apply. Format renders any Result for display, and Calculate
// does all of it at once.
package distexpr
