// Package expr holds token sequences: scanning them from text, printing
// them in canonical form, evaluating them and classifying them as
// equations and riddles.
package expr

import (
	"strings"

	"github.com/vahtras/matchstick/internal/glyph"
)

// Expression is an ordered sequence of tokens, e.g. Digit, Operator, Digit
// for "1 + 2".
type Expression []glyph.Token

// String returns the canonical form: digits written adjacently, operators
// surrounded by single spaces ("12 + 3 = 15"). Tokens without a value print as "?".
func (e Expression) String() string {
	var b strings.Builder
	for i, t := range e {
		if t.Family() == glyph.Operator {
			if i > 0 {
				b.WriteByte(' ')
			}
			b.WriteString(t.String())
			if i < len(e)-1 {
				b.WriteByte(' ')
			}
			continue
		}
		b.WriteString(t.String())
	}
	return b.String()
}

// Key returns the compact value string ("12+3=15") used to deduplicate
// expressions by value.
func (e Expression) Key() string {
	var b strings.Builder
	for _, t := range e {
		b.WriteString(t.String())
	}
	return b.String()
}

// Equal reports element-wise token equality, order sensitive.
func (e Expression) Equal(o Expression) bool {
	if len(e) != len(o) {
		return false
	}
	for i := range e {
		if !e[i].Equal(o[i]) {
			return false
		}
	}
	return true
}

// Clone returns a copy that can be modified without touching e.
func (e Expression) Clone() Expression {
	out := make(Expression, len(e))
	copy(out, e)
	return out
}

// Matches returns the total number of matches in the expression.
func (e Expression) Matches() int {
	n := 0
	for _, t := range e {
		n += t.Len()
	}
	return n
}
