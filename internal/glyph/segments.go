package glyph

import (
	"iter"
	"math/bits"
	"strconv"
	"strings"
)

// Segments is a set of segment positions, one bit per position.
type Segments uint8

// MaxPositions is the number of positions a Segments value can hold.
const MaxPositions = 8

// SegmentsOf builds a set from explicit positions.
// Positions outside [0, MaxPositions) are ignored.
func SegmentsOf(positions ...int) Segments {
	var s Segments
	for _, p := range positions {
		s = s.With(p)
	}
	return s
}

// Has reports whether position p is in the set.
func (s Segments) Has(p int) bool {
	return p >= 0 && p < MaxPositions && s&(1<<p) != 0
}

// With returns s with position p added.
func (s Segments) With(p int) Segments {
	if p < 0 || p >= MaxPositions {
		return s
	}
	return s | 1<<p
}

// Without returns s with position p removed.
func (s Segments) Without(p int) Segments {
	if p < 0 || p >= MaxPositions {
		return s
	}
	return s &^ (1 << p)
}

// Union returns the positions in s or o.
func (s Segments) Union(o Segments) Segments { return s | o }

// Minus returns the positions in s that are not in o.
func (s Segments) Minus(o Segments) Segments { return s &^ o }

// Contains reports whether every position of o is in s.
func (s Segments) Contains(o Segments) bool { return o&^s == 0 }

// Len returns the number of positions in the set.
func (s Segments) Len() int { return bits.OnesCount8(uint8(s)) }

// Positions returns the positions in ascending order.
func (s Segments) Positions() []int {
	out := make([]int, 0, s.Len())
	for p := 0; p < MaxPositions; p++ {
		if s.Has(p) {
			out = append(out, p)
		}
	}
	return out
}

// Subsets yields every subset of s with exactly k positions, in ascending
// numeric order. Each subset is produced once regardless of selection order.
func (s Segments) Subsets(k int) iter.Seq[Segments] {
	return func(yield func(Segments) bool) {
		if k < 0 || k > s.Len() {
			return
		}
		// Ascending submask walk: (sub - s) & s visits every submask of s once.
		sub := Segments(0)
		for {
			if sub.Len() == k && !yield(sub) {
				return
			}
			sub = (sub - s) & s
			if sub == 0 {
				return
			}
		}
	}
}

// String formats the set as "{0,2,5}".
func (s Segments) String() string {
	parts := make([]string, 0, s.Len())
	for _, p := range s.Positions() {
		parts = append(parts, strconv.Itoa(p))
	}
	return "{" + strings.Join(parts, ",") + "}"
}
