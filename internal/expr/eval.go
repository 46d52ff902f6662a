package expr

import (
	"fmt"

	"github.com/vahtras/matchstick/internal/glyph"
)

// EvalError reports an expression that does not follow the
// number (op number)* = number (op number)* grammar.
type EvalError struct {
	Expr   string
	Pos    int // token index, -1 when the error concerns the whole expression
	Reason string
}

func (e *EvalError) Error() string {
	if e.Pos < 0 {
		return fmt.Sprintf("cannot evaluate %q: %s", e.Expr, e.Reason)
	}
	return fmt.Sprintf("cannot evaluate %q: %s at token %d", e.Expr, e.Reason, e.Pos)
}

// Evaluate compares both sides of an equation. The expression must hold
// exactly one "="; each side is a left-to-right chain of "+" and "-" over
// decimal numbers made of adjacent digits.
func Evaluate(e Expression) (bool, error) {
	eq := -1
	for i, t := range e {
		if t.Is('=') {
			if eq >= 0 {
				return false, &EvalError{Expr: e.String(), Pos: i, Reason: "second '='"}
			}
			eq = i
		}
	}
	if eq < 0 {
		return false, &EvalError{Expr: e.String(), Pos: -1, Reason: "no '='"}
	}
	left, err := sum(e, 0, eq)
	if err != nil {
		return false, err
	}
	right, err := sum(e, eq+1, len(e))
	if err != nil {
		return false, err
	}
	return left == right, nil
}

// Sum evaluates an expression without "=".
func Sum(e Expression) (int, error) {
	return sum(e, 0, len(e))
}

func sum(e Expression, from, to int) (int, error) {
	total, sign := 0, 1
	number, digits := 0, 0
	for i := from; i < to; i++ {
		t := e[i]
		if d, ok := t.Digit(); ok {
			number = number*10 + d
			digits++
			continue
		}
		v, ok := t.Value()
		if !ok {
			return 0, &EvalError{Expr: e.String(), Pos: i, Reason: "token without value"}
		}
		if v != '+' && v != '-' {
			return 0, &EvalError{Expr: e.String(), Pos: i, Reason: fmt.Sprintf("unexpected %q", v)}
		}
		if digits == 0 {
			return 0, &EvalError{Expr: e.String(), Pos: i, Reason: "operator without left operand"}
		}
		total += sign * number
		number, digits = 0, 0
		sign = 1
		if v == '-' {
			sign = -1
		}
	}
	if digits == 0 {
		return 0, &EvalError{Expr: e.String(), Pos: to, Reason: "missing operand"}
	}
	return total + sign*number, nil
}

// isOperator reports whether t is a valid operator token with value v.
func isOperator(t glyph.Token, v rune) bool {
	return t.Family() == glyph.Operator && t.Is(v)
}
