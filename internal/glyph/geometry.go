package glyph

import (
	"errors"
	"fmt"
)

// Family is the category a token belongs to. Each family owns its own
// Geometry and position universe.
type Family uint8

const (
	// Digit is the 0–9 family over seven positions.
	Digit Family = iota + 1
	// Operator is the "-", "+", "=" family over two positions.
	Operator
)

// String returns the lower-case family name.
func (f Family) String() string {
	switch f {
	case Digit:
		return "digit"
	case Operator:
		return "operator"
	default:
		return "unknown"
	}
}

// Entry pairs a symbolic value with its canonical occupancy.
type Entry struct {
	Value rune
	Shape Segments
}

// Geometry is the immutable table of canonical shapes for one family,
// together with its exact inverse.
type Geometry struct {
	family   Family
	universe Segments
	values   []rune
	shapes   map[rune]Segments
	lookup   map[Segments]rune
}

// ErrInvalidGeometry is returned when a table is not a bijection inside its universe.
var ErrInvalidGeometry = errors.New("invalid geometry")

// NewGeometry builds a geometry from entries. Entry order defines the
// canonical value order used when results are listed.
//
// Returns ErrInvalidGeometry if a value or a shape appears twice, or if a
// shape uses positions outside universe.
func NewGeometry(family Family, universe Segments, entries ...Entry) (*Geometry, error) {
	g := &Geometry{
		family:   family,
		universe: universe,
		values:   make([]rune, 0, len(entries)),
		shapes:   make(map[rune]Segments, len(entries)),
		lookup:   make(map[Segments]rune, len(entries)),
	}
	for _, e := range entries {
		if !universe.Contains(e.Shape) {
			return nil, fmt.Errorf("%w: %s %q uses %s outside %s", ErrInvalidGeometry, family, e.Value, e.Shape, universe)
		}
		if _, dup := g.shapes[e.Value]; dup {
			return nil, fmt.Errorf("%w: %s %q defined twice", ErrInvalidGeometry, family, e.Value)
		}
		if other, dup := g.lookup[e.Shape]; dup {
			return nil, fmt.Errorf("%w: %s %q and %q share %s", ErrInvalidGeometry, family, other, e.Value, e.Shape)
		}
		g.values = append(g.values, e.Value)
		g.shapes[e.Value] = e.Shape
		g.lookup[e.Shape] = e.Value
	}
	return g, nil
}

// Family returns the family this geometry describes.
func (g *Geometry) Family() Family { return g.family }

// Universe returns every position a token of this family can occupy.
func (g *Geometry) Universe() Segments { return g.universe }

// Values returns the canonical values in table order.
func (g *Geometry) Values() []rune {
	out := make([]rune, len(g.values))
	copy(out, g.values)
	return out
}

// Has reports whether v is a canonical value of this family.
func (g *Geometry) Has(v rune) bool {
	_, ok := g.shapes[v]
	return ok
}

// Shape returns the canonical occupancy of v.
func (g *Geometry) Shape(v rune) (Segments, bool) {
	s, ok := g.shapes[v]
	return s, ok
}

// ValueOf returns the value whose canonical occupancy equals s.
func (g *Geometry) ValueOf(s Segments) (rune, bool) {
	v, ok := g.lookup[s]
	return v, ok
}

// Token returns the canonical token for v.
func (g *Geometry) Token(v rune) (Token, error) {
	s, ok := g.shapes[v]
	if !ok {
		return Token{}, fmt.Errorf("%w: %q is not a %s", ErrUnknownSymbol, v, g.family)
	}
	return Token{geom: g, shape: s}, nil
}

// FromSegments returns a token of this family with occupancy s.
// No validity check is made; see Token.Valid.
func (g *Geometry) FromSegments(s Segments) Token {
	return Token{geom: g, shape: s}
}

// Registry holds one geometry per family.
type Registry struct {
	geometries []*Geometry
}

// ErrUnknownSymbol is returned when a value belongs to no registered family.
var ErrUnknownSymbol = errors.New("unknown symbol")

// NewRegistry collects geometries. Families must be distinct and no value
// may be claimed by two families.
func NewRegistry(geometries ...*Geometry) (*Registry, error) {
	r := &Registry{}
	for _, g := range geometries {
		for _, seen := range r.geometries {
			if seen.family == g.family {
				return nil, fmt.Errorf("%w: family %s registered twice", ErrInvalidGeometry, g.family)
			}
			for _, v := range g.values {
				if seen.Has(v) {
					return nil, fmt.Errorf("%w: %q claimed by %s and %s", ErrInvalidGeometry, v, seen.family, g.family)
				}
			}
		}
		r.geometries = append(r.geometries, g)
	}
	return r, nil
}

// Geometry returns the geometry registered for f, or nil.
func (r *Registry) Geometry(f Family) *Geometry {
	for _, g := range r.geometries {
		if g.family == f {
			return g
		}
	}
	return nil
}

// Token returns the canonical token for v from whichever family owns it.
func (r *Registry) Token(v rune) (Token, error) {
	for _, g := range r.geometries {
		if g.Has(v) {
			return g.Token(v)
		}
	}
	return Token{}, fmt.Errorf("%w: %q", ErrUnknownSymbol, v)
}

// MustToken is like Token but panics on unknown values.
// Intended for fixed literals in tables and tests.
func (r *Registry) MustToken(v rune) Token {
	t, err := r.Token(v)
	if err != nil {
		panic(err)
	}
	return t
}

var digitEntries = []Entry{
	{'0', SegmentsOf(0, 1, 2, 4, 5, 6)},
	{'1', SegmentsOf(2, 5)},
	{'2', SegmentsOf(0, 2, 3, 4, 6)},
	{'3', SegmentsOf(0, 2, 3, 5, 6)},
	{'4', SegmentsOf(1, 2, 3, 5)},
	{'5', SegmentsOf(0, 1, 3, 5, 6)},
	{'6', SegmentsOf(0, 1, 3, 4, 5, 6)},
	{'7', SegmentsOf(0, 2, 5)},
	{'8', SegmentsOf(0, 1, 2, 3, 4, 5, 6)},
	{'9', SegmentsOf(0, 1, 2, 3, 5, 6)},
}

var operatorEntries = []Entry{
	{'-', SegmentsOf()},
	{'+', SegmentsOf(0)},
	{'=', SegmentsOf(1)},
}

var standard = mustStandard()

func mustStandard() *Registry {
	digits, err := NewGeometry(Digit, SegmentsOf(0, 1, 2, 3, 4, 5, 6), digitEntries...)
	if err != nil {
		panic(err)
	}
	ops, err := NewGeometry(Operator, SegmentsOf(0, 1), operatorEntries...)
	if err != nil {
		panic(err)
	}
	r, err := NewRegistry(digits, ops)
	if err != nil {
		panic(err)
	}
	return r
}

// Standard returns the read-only registry with the seven-segment digit
// table and the operator table.
func Standard() *Registry { return standard }
