package glyph

import "iter"

// Remove returns every valid token of t's family reachable by taking n
// matches away from t, in canonical value order.
//
// Returns ErrInsufficientMatches if t holds fewer than n matches.
func Remove(t Token, n int) ([]Token, error) {
	if n < 1 {
		return nil, &MatchError{Code: ErrCodeInvalidArity, Family: t.Family(), Want: n}
	}
	if n > t.Len() {
		return nil, &MatchError{Code: ErrCodeInsufficientMatches, Family: t.Family(), Have: t.Len(), Want: n}
	}
	return reachable(t, func(yield func(Segments) bool) {
		for drop := range t.shape.Subsets(n) {
			if !yield(t.shape.Minus(drop)) {
				return
			}
		}
	}), nil
}

// Add returns every valid token reachable by placing n matches on free
// positions of t.
//
// Returns ErrExcessMatches if t has fewer than n free positions.
func Add(t Token, n int) ([]Token, error) {
	if n < 1 {
		return nil, &MatchError{Code: ErrCodeInvalidArity, Family: t.Family(), Want: n}
	}
	free := t.Virtual()
	if n > free.Len() {
		return nil, &MatchError{Code: ErrCodeExcessMatches, Family: t.Family(), Have: free.Len(), Want: n}
	}
	return reachable(t, func(yield func(Segments) bool) {
		for fill := range free.Subsets(n) {
			if !yield(t.shape.Union(fill)) {
				return
			}
		}
	}), nil
}

// Move returns every valid token reachable by rearranging matches inside t.
//
// For n == 1 one match is lifted from an occupied position and laid on a
// free one. For n == 2 the operation is a double removal: two matches are
// taken away and the remainder is read back, exactly as Remove(t, 2).
// Other arities return ErrInvalidArity.
func Move(t Token, n int) ([]Token, error) {
	switch n {
	case 1:
		free := t.Virtual()
		return reachable(t, func(yield func(Segments) bool) {
			for _, from := range t.shape.Positions() {
				for _, to := range free.Positions() {
					if !yield(t.shape.Without(from).With(to)) {
						return
					}
				}
			}
		}), nil
	case 2:
		return Remove(t, 2)
	default:
		return nil, &MatchError{Code: ErrCodeInvalidArity, Family: t.Family(), Want: n}
	}
}

// reachable folds candidate occupancies into distinct valid tokens ordered
// by the geometry's value order.
func reachable(t Token, shapes iter.Seq[Segments]) []Token {
	g := t.geom
	if g == nil {
		return nil
	}
	seen := make(map[rune]bool)
	for s := range shapes {
		if v, ok := g.ValueOf(s); ok {
			seen[v] = true
		}
	}
	out := make([]Token, 0, len(seen))
	for _, v := range g.values {
		if seen[v] {
			out = append(out, Token{geom: g, shape: g.shapes[v]})
		}
	}
	return out
}
