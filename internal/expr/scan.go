package expr

import (
	"errors"
	"fmt"
	"unicode"

	"golang.org/x/text/unicode/norm"

	"github.com/vahtras/matchstick/internal/glyph"
)

// ErrEmpty is returned when the input holds no tokens.
var ErrEmpty = errors.New("empty expression")

// ScanError reports a character that is neither whitespace nor a known symbol.
type ScanError struct {
	Input string
	Pos   int // byte offset in the NFKC-normalised input
	Char  rune
}

func (e *ScanError) Error() string {
	return fmt.Sprintf("unrecognized character %q at offset %d in %q", e.Char, e.Pos, e.Input)
}

// Unwrap lets callers test for glyph.ErrUnknownSymbol.
func (e *ScanError) Unwrap() error { return glyph.ErrUnknownSymbol }

// aliases maps look-alike characters NFKC leaves alone onto known symbols.
var aliases = map[rune]rune{
	'−': '-', // MINUS SIGN
}

// Scan turns text such as "1 + 2 = 3" into tokens, one per character.
// Input is NFKC-normalised first, so fullwidth forms ("１＋２") are read as
// their ASCII equivalents. Whitespace is dropped; anything else unknown is
// a *ScanError.
func Scan(reg *glyph.Registry, input string) (Expression, error) {
	normalized := norm.NFKC.String(input)
	var out Expression
	for i, r := range normalized {
		if unicode.IsSpace(r) {
			continue
		}
		if alias, ok := aliases[r]; ok {
			r = alias
		}
		tok, err := reg.Token(r)
		if err != nil {
			return nil, &ScanError{Input: input, Pos: i, Char: r}
		}
		out = append(out, tok)
	}
	if len(out) == 0 {
		return nil, ErrEmpty
	}
	return out, nil
}

// MustScan is like Scan but panics on error. Intended for literals.
func MustScan(reg *glyph.Registry, input string) Expression {
	e, err := Scan(reg, input)
	if err != nil {
		panic(err)
	}
	return e
}
