package glyph

// Token is one glyph: a family geometry plus the positions holding a match.
//
// The zero Token has no geometry and no occupancy; it is never valid.
// Tokens are values. ReplaceSegments returns a new token rather than
// mutating the receiver.
type Token struct {
	geom  *Geometry
	shape Segments
}

// Family returns the token's family, or 0 for the zero Token.
func (t Token) Family() Family {
	if t.geom == nil {
		return 0
	}
	return t.geom.family
}

// Geometry returns the geometry the token was built from.
func (t Token) Geometry() *Geometry { return t.geom }

// Segments returns the occupied positions.
func (t Token) Segments() Segments { return t.shape }

// Virtual returns the positions of the family universe not holding a match.
func (t Token) Virtual() Segments {
	if t.geom == nil {
		return 0
	}
	return t.geom.universe.Minus(t.shape)
}

// Len returns the number of matches in the token.
func (t Token) Len() int { return t.shape.Len() }

// Value returns the symbolic value of the occupancy, if it has one.
func (t Token) Value() (rune, bool) {
	if t.geom == nil {
		return 0, false
	}
	return t.geom.ValueOf(t.shape)
}

// Valid reports whether the occupancy resolves to a value.
func (t Token) Valid() bool {
	_, ok := t.Value()
	return ok
}

// Digit returns the numeric value of a valid digit token.
func (t Token) Digit() (int, bool) {
	if t.Family() != Digit {
		return 0, false
	}
	v, ok := t.Value()
	if !ok {
		return 0, false
	}
	return int(v - '0'), true
}

// Is reports whether t is a valid token with value v.
func (t Token) Is(v rune) bool {
	got, ok := t.Value()
	return ok && got == v
}

// Equal reports whether t and u are the same symbol. Two tokens are equal
// only if both are valid, share a family and resolve to the same value;
// tokens without a value never compare equal, not even to themselves.
func (t Token) Equal(u Token) bool {
	if t.Family() != u.Family() {
		return false
	}
	tv, ok := t.Value()
	if !ok {
		return false
	}
	uv, ok := u.Value()
	return ok && tv == uv
}

// ReplaceSegments returns a token of the same family with occupancy s.
func (t Token) ReplaceSegments(s Segments) Token {
	return Token{geom: t.geom, shape: s}
}

// String returns the value, or "?" for an occupancy without one.
func (t Token) String() string {
	v, ok := t.Value()
	if !ok {
		return "?"
	}
	return string(v)
}
