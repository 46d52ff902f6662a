package glyph

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// values renders tokens as a compact string of their values, e.g. "069".
func values(tokens []Token) string {
	out := make([]rune, 0, len(tokens))
	for _, t := range tokens {
		v, ok := t.Value()
		if !ok {
			out = append(out, '?')
			continue
		}
		out = append(out, v)
	}
	return string(out)
}

func TestDigitMatchCounts(t *testing.T) {
	want := map[rune]int{'0': 6, '1': 2, '2': 5, '3': 5, '4': 4, '5': 5, '6': 6, '7': 3, '8': 7, '9': 6}
	reg := Standard()
	for v, n := range want {
		tok := reg.MustToken(v)
		assert.Equal(t, n, tok.Len(), "digit %c", v)
		assert.Equal(t, Digit, tok.Family())
	}
}

func TestOperatorMatchCounts(t *testing.T) {
	want := map[rune]int{'-': 0, '+': 1, '=': 1}
	reg := Standard()
	for v, n := range want {
		tok := reg.MustToken(v)
		assert.Equal(t, n, tok.Len(), "operator %c", v)
		assert.Equal(t, Operator, tok.Family())
	}
}

func TestRoundTrip(t *testing.T) {
	for _, f := range []Family{Digit, Operator} {
		g := Standard().Geometry(f)
		require.NotNil(t, g)
		for _, v := range g.Values() {
			shape, ok := g.Shape(v)
			require.True(t, ok)
			got, ok := g.ValueOf(shape)
			require.True(t, ok)
			assert.Equal(t, v, got)
		}
	}
}

func TestFromSegments(t *testing.T) {
	digits := Standard().Geometry(Digit)
	tests := []struct {
		name  string
		shape Segments
		want  rune
		valid bool
	}{
		{"eight", SegmentsOf(0, 1, 2, 3, 4, 5, 6), '8', true},
		{"zero", SegmentsOf(0, 1, 2, 4, 5, 6), '0', true},
		{"broken", SegmentsOf(0, 1, 2, 4, 5), 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tok := digits.FromSegments(tt.shape)
			assert.Equal(t, tt.shape, tok.Segments())
			v, ok := tok.Value()
			assert.Equal(t, tt.valid, ok)
			assert.Equal(t, tt.want, v)
		})
	}
}

func TestVirtual(t *testing.T) {
	reg := Standard()
	assert.Equal(t, SegmentsOf(0, 1, 3, 4, 6), reg.MustToken('1').Virtual())
	assert.Equal(t, Segments(0), reg.MustToken('8').Virtual())
	assert.Equal(t, SegmentsOf(0, 1), reg.MustToken('-').Virtual())
	assert.Equal(t, SegmentsOf(1), reg.MustToken('+').Virtual())
}

func TestTokenEqual(t *testing.T) {
	reg := Standard()
	digits := reg.Geometry(Digit)
	broken := digits.FromSegments(SegmentsOf(0, 1))

	assert.True(t, reg.MustToken('5').Equal(reg.MustToken('5')))
	assert.False(t, reg.MustToken('5').Equal(reg.MustToken('6')))
	assert.False(t, broken.Equal(broken), "tokens without a value never compare equal")
	assert.False(t, broken.Equal(digits.FromSegments(SegmentsOf(3))))
	assert.False(t, Token{}.Equal(Token{}))
	assert.Equal(t, "?", broken.String())
}

func TestUnknownSymbol(t *testing.T) {
	_, err := Standard().Token('x')
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownSymbol))

	_, err = Standard().Geometry(Operator).Token('7')
	assert.ErrorIs(t, err, ErrUnknownSymbol)
}

func TestNewGeometryRejectsAmbiguousTable(t *testing.T) {
	_, err := NewGeometry(Digit, SegmentsOf(0, 1), Entry{'a', SegmentsOf(0)}, Entry{'b', SegmentsOf(0)})
	assert.ErrorIs(t, err, ErrInvalidGeometry)

	_, err = NewGeometry(Digit, SegmentsOf(0, 1), Entry{'a', SegmentsOf(3)})
	assert.ErrorIs(t, err, ErrInvalidGeometry)

	_, err = NewGeometry(Digit, SegmentsOf(0, 1), Entry{'a', SegmentsOf(0)}, Entry{'a', SegmentsOf(1)})
	assert.ErrorIs(t, err, ErrInvalidGeometry)
}

func TestNewRegistryRejectsSharedValue(t *testing.T) {
	a, err := NewGeometry(Digit, SegmentsOf(0), Entry{'x', SegmentsOf(0)})
	require.NoError(t, err)
	b, err := NewGeometry(Operator, SegmentsOf(0), Entry{'x', SegmentsOf()})
	require.NoError(t, err)

	_, err = NewRegistry(a, b)
	assert.ErrorIs(t, err, ErrInvalidGeometry)
}

func TestSubsets(t *testing.T) {
	s := SegmentsOf(1, 3, 4)
	var got []Segments
	for sub := range s.Subsets(2) {
		got = append(got, sub)
	}
	assert.Equal(t, []Segments{SegmentsOf(1, 3), SegmentsOf(1, 4), SegmentsOf(3, 4)}, got)

	count := 0
	for range SegmentsOf(0, 1, 2, 3, 4, 5, 6).Subsets(2) {
		count++
	}
	assert.Equal(t, 21, count)

	count = 0
	for range s.Subsets(4) {
		count++
	}
	assert.Zero(t, count)
	assert.Equal(t, "{1,3,4}", s.String())
}
