package riddle

import (
	"errors"
	"fmt"
	"sort"

	"github.com/vahtras/matchstick/internal/expr"
	"github.com/vahtras/matchstick/internal/glyph"
)

// ErrUnsupportedShape is returned for shapes without equation templates.
var ErrUnsupportedShape = errors.New("unsupported shape")

// templates lists the operator patterns per shape. A pattern has one
// operator between each pair of adjacent digits.
var templates = map[int][]string{
	2: {"="},
	3: {"+=", "-=", "=+", "=-"},
	4: {"++=", "+-=", "-+=", "--=", "=++", "=+-", "=-+", "=--"},
}

// Shapes returns the supported shapes in ascending order.
func Shapes() []int {
	out := make([]int, 0, len(templates))
	for s := range templates {
		out = append(out, s)
	}
	sort.Ints(out)
	return out
}

// Equations returns every true equation with shape single digits, one
// template at a time, as sorted canonical strings.
//
//	2: a = b
//	3: a ± b = c, a = b ± c
//	4: a ± b ± c = d, a = b ± c ± d
func Equations(reg *glyph.Registry, shape int) ([]string, error) {
	patterns, ok := templates[shape]
	if !ok {
		return nil, fmt.Errorf("%w: %d (want one of %v)", ErrUnsupportedShape, shape, Shapes())
	}

	digits := make([]glyph.Token, 10)
	for d := range digits {
		tok, err := reg.Token(rune('0' + d))
		if err != nil {
			return nil, fmt.Errorf("equations: %w", err)
		}
		digits[d] = tok
	}

	var out []string
	for _, pattern := range patterns {
		ops := make([]glyph.Token, 0, len(pattern))
		for _, r := range pattern {
			tok, err := reg.Token(r)
			if err != nil {
				return nil, fmt.Errorf("equations: %w", err)
			}
			ops = append(ops, tok)
		}

		values := make([]int, shape)
		for {
			e := make(expr.Expression, 0, 2*shape-1)
			for i, v := range values {
				if i > 0 {
					e = append(e, ops[i-1])
				}
				e = append(e, digits[v])
			}
			holds, err := expr.Evaluate(e)
			if err != nil {
				return nil, fmt.Errorf("equations: %w", err)
			}
			if holds {
				out = append(out, e.String())
			}
			if !next(values) {
				break
			}
		}
	}
	sort.Strings(out)
	return out, nil
}

// next advances an odometer over 0..9 per position. Returns false after
// the last combination.
func next(values []int) bool {
	for i := len(values) - 1; i >= 0; i-- {
		if values[i] < 9 {
			values[i]++
			return true
		}
		values[i] = 0
	}
	return false
}
