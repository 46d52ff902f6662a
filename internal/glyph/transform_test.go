package glyph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type transformFunc func(Token, int) ([]Token, error)

func runTable(t *testing.T, fn transformFunc, n int, table map[rune]string) {
	t.Helper()
	reg := Standard()
	for v, want := range table {
		got, err := fn(reg.MustToken(v), n)
		require.NoError(t, err, "value %c", v)
		assert.Equal(t, want, values(got), "value %c", v)
	}
}

func TestRemoveOne(t *testing.T) {
	runTable(t, Remove, 1, map[rune]string{
		'0': "", '1': "", '2': "", '3': "", '4': "",
		'5': "", '6': "5", '7': "1", '8': "069", '9': "35",
		'+': "-", '=': "-",
	})
}

func TestRemoveTwo(t *testing.T) {
	runTable(t, Remove, 2, map[rune]string{
		'0': "", '1': "", '2': "", '3': "7", '4': "1",
		'5': "", '6': "", '7': "", '8': "235", '9': "4",
	})
}

func TestAddOne(t *testing.T) {
	runTable(t, Add, 1, map[rune]string{
		'0': "8", '1': "7", '2': "", '3': "9", '4': "",
		'5': "69", '6': "8", '7': "", '9': "8",
		'-': "+=", '+': "", '=': "",
	})
}

func TestMoveOne(t *testing.T) {
	runTable(t, Move, 1, map[rune]string{
		'0': "69", '1': "", '2': "3", '3': "25", '4': "",
		'5': "3", '6': "09", '7': "", '8': "", '9': "06",
		'-': "", '+': "=", '=': "+",
	})
}

func TestMoveTwoIsDoubleRemoval(t *testing.T) {
	runTable(t, Move, 2, map[rune]string{'8': "235", '9': "4", '3': "7"})
}

func TestRemoveKeepsFamilyAndCount(t *testing.T) {
	reg := Standard()
	for _, f := range []Family{Digit, Operator} {
		g := reg.Geometry(f)
		for _, v := range g.Values() {
			tok := reg.MustToken(v)
			for n := 1; n <= tok.Len(); n++ {
				got, err := Remove(tok, n)
				require.NoError(t, err)
				for _, r := range got {
					assert.Equal(t, tok.Family(), r.Family())
					assert.Equal(t, tok.Len()-n, r.Len())
				}
			}
		}
	}
}

func TestRemoveInsufficientMatches(t *testing.T) {
	reg := Standard()

	_, err := Remove(reg.MustToken('1'), 3)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInsufficientMatches)

	var me *MatchError
	require.ErrorAs(t, err, &me)
	assert.Equal(t, Digit, me.Family)
	assert.Equal(t, 2, me.Have)
	assert.Equal(t, 3, me.Want)

	_, err = Remove(reg.MustToken('-'), 1)
	assert.ErrorIs(t, err, ErrInsufficientMatches)

	_, err = Move(reg.MustToken('+'), 2)
	assert.ErrorIs(t, err, ErrInsufficientMatches)
}

func TestAddExcessMatches(t *testing.T) {
	reg := Standard()

	_, err := Add(reg.MustToken('8'), 1)
	assert.ErrorIs(t, err, ErrExcessMatches)

	_, err = Add(reg.MustToken('+'), 2)
	assert.ErrorIs(t, err, ErrExcessMatches)
	assert.Contains(t, err.Error(), "EXCESS_MATCHES")
}

func TestInvalidArity(t *testing.T) {
	reg := Standard()

	_, err := Remove(reg.MustToken('8'), 0)
	assert.ErrorIs(t, err, ErrInvalidArity)
	_, err = Add(reg.MustToken('1'), -1)
	assert.ErrorIs(t, err, ErrInvalidArity)
	_, err = Move(reg.MustToken('8'), 3)
	assert.ErrorIs(t, err, ErrInvalidArity)
}

func TestResultsAreCanonical(t *testing.T) {
	got, err := Remove(Standard().MustToken('8'), 1)
	require.NoError(t, err)
	for _, tok := range got {
		v, _ := tok.Value()
		shape, _ := tok.Geometry().Shape(v)
		assert.Equal(t, shape, tok.Segments())
	}
}
