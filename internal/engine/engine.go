package engine

import (
	"context"
	"fmt"
	"iter"
	"log/slog"
	"runtime"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/vahtras/matchstick/internal/expr"
	"github.com/vahtras/matchstick/internal/glyph"
)

// Kind selects the move family.
type Kind string

const (
	KindMove   Kind = "move"
	KindRemove Kind = "remove"
	KindAdd    Kind = "add"
)

// Kinds lists the supported move families.
var Kinds = []Kind{KindMove, KindRemove, KindAdd}

// ParseKind validates a kind name. The empty string means KindMove.
func ParseKind(s string) (Kind, error) {
	if s == "" {
		return KindMove, nil
	}
	for _, k := range Kinds {
		if string(k) == s {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown kind %q: must be one of %v", s, Kinds)
}

// Slot is one segment position of one token in an expression.
type Slot struct {
	Index    int
	Position int
}

// Occupied returns every slot holding a match, in expression order.
func Occupied(seq expr.Expression) []Slot {
	var out []Slot
	for i, t := range seq {
		for _, p := range t.Segments().Positions() {
			out = append(out, Slot{Index: i, Position: p})
		}
	}
	return out
}

// Free returns every slot a match could be laid on, in expression order.
func Free(seq expr.Expression) []Slot {
	var out []Slot
	for i, t := range seq {
		for _, p := range t.Virtual().Positions() {
			out = append(out, Slot{Index: i, Position: p})
		}
	}
	return out
}

// Stats describes the work done by one transform.
type Stats struct {
	Candidates int           // slot selections evaluated
	Results    int           // distinct valid expressions
	Duration   time.Duration // wall time
}

// Engine runs transforms. It holds no per-call state and is safe for
// concurrent use.
type Engine struct {
	workers int
}

// Option configures an Engine.
type Option func(*Engine)

// WithWorkers bounds the goroutines used by one transform. Values below 1
// mean a single worker.
func WithWorkers(n int) Option {
	return func(e *Engine) {
		if n < 1 {
			n = 1
		}
		e.workers = n
	}
}

// New creates an engine. By default it uses GOMAXPROCS workers.
func New(opts ...Option) *Engine {
	e := &Engine{workers: runtime.GOMAXPROCS(0)}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Workers returns the configured worker bound.
func (e *Engine) Workers() int { return e.workers }

// Transform dispatches on kind.
func (e *Engine) Transform(ctx context.Context, kind Kind, seq expr.Expression, n int) ([]expr.Expression, Stats, error) {
	switch kind {
	case KindMove, "":
		return e.Move(ctx, seq, n)
	case KindRemove:
		return e.Remove(ctx, seq, n)
	case KindAdd:
		return e.Add(ctx, seq, n)
	default:
		return nil, Stats{}, fmt.Errorf("unknown kind %q", kind)
	}
}

// Remove returns every valid expression reachable by taking n matches away
// from anywhere in seq. For n == 1 this is the per-token removal applied at
// each index in turn.
//
// Returns glyph.ErrInsufficientMatches if seq holds fewer than n matches.
func (e *Engine) Remove(ctx context.Context, seq expr.Expression, n int) ([]expr.Expression, Stats, error) {
	if n < 1 {
		return nil, Stats{}, &glyph.MatchError{Code: glyph.ErrCodeInvalidArity, Want: n}
	}
	occupied := Occupied(seq)
	if len(occupied) < n {
		return nil, Stats{}, &glyph.MatchError{Code: glyph.ErrCodeInsufficientMatches, Have: len(occupied), Want: n}
	}
	return e.run(ctx, KindRemove, seq, n, occupied, n, nil, 0)
}

// Add returns every valid expression reachable by laying n extra matches on
// free positions anywhere in seq.
//
// Returns glyph.ErrExcessMatches if seq has fewer than n free positions.
func (e *Engine) Add(ctx context.Context, seq expr.Expression, n int) ([]expr.Expression, Stats, error) {
	if n < 1 {
		return nil, Stats{}, &glyph.MatchError{Code: glyph.ErrCodeInvalidArity, Want: n}
	}
	free := Free(seq)
	if len(free) < n {
		return nil, Stats{}, &glyph.MatchError{Code: glyph.ErrCodeExcessMatches, Have: len(free), Want: n}
	}
	return e.run(ctx, KindAdd, seq, n, nil, 0, free, n)
}

// Move returns every valid expression reachable by relocating n matches.
// Sources and destinations range over the whole expression: a match may
// stay inside its token or travel to another one. An expression without
// enough matches or free positions simply has no moves.
func (e *Engine) Move(ctx context.Context, seq expr.Expression, n int) ([]expr.Expression, Stats, error) {
	if n < 1 {
		return nil, Stats{}, &glyph.MatchError{Code: glyph.ErrCodeInvalidArity, Want: n}
	}
	return e.run(ctx, KindMove, seq, n, Occupied(seq), n, Free(seq), n)
}

func (e *Engine) run(ctx context.Context, kind Kind, seq expr.Expression, n int, take []Slot, nTake int, put []Slot, nPut int) ([]expr.Expression, Stats, error) {
	if err := ctx.Err(); err != nil {
		return nil, Stats{}, err
	}
	start := time.Now()

	found, candidates, err := e.search(ctx, seq, take, nTake, put, nPut)
	if err != nil {
		return nil, Stats{}, err
	}

	keys := make([]string, 0, len(found))
	for k := range found {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]expr.Expression, len(keys))
	for i, k := range keys {
		out[i] = found[k]
	}

	stats := Stats{Candidates: candidates, Results: len(out), Duration: time.Since(start)}
	slog.Debug("transform complete",
		"kind", kind,
		"input", seq.String(),
		"arity", n,
		"candidates", stats.Candidates,
		"results", stats.Results,
		"duration", stats.Duration,
	)
	return out, stats, nil
}

// search evaluates every choice of nTake slots from take combined with
// every choice of nPut slots from put. One task per removal choice.
func (e *Engine) search(ctx context.Context, seq expr.Expression, take []Slot, nTake int, put []Slot, nPut int) (map[string]expr.Expression, int, error) {
	var (
		mu         sync.Mutex
		found      = make(map[string]expr.Expression)
		candidates int
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)

	for pick := range combinations(len(take), nTake) {
		removed := make([]glyph.Segments, len(seq))
		for _, k := range pick {
			s := take[k]
			removed[s.Index] = removed[s.Index].With(s.Position)
		}

		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			local := make(map[string]expr.Expression)
			count := 0
			added := make([]glyph.Segments, len(seq))
			for fill := range combinations(len(put), nPut) {
				clear(added)
				for _, k := range fill {
					s := put[k]
					added[s.Index] = added[s.Index].With(s.Position)
				}
				count++
				if next, ok := apply(seq, removed, added); ok {
					local[next.Key()] = next
				}
			}

			mu.Lock()
			defer mu.Unlock()
			for k, v := range local {
				found[k] = v
			}
			candidates += count
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, 0, err
	}
	return found, candidates, nil
}

// apply builds the expression with removed and added positions applied per
// token. It fails as soon as one token has no value.
func apply(seq expr.Expression, removed, added []glyph.Segments) (expr.Expression, bool) {
	next := make(expr.Expression, len(seq))
	for i, t := range seq {
		nt := t.ReplaceSegments(t.Segments().Minus(removed[i]).Union(added[i]))
		if !nt.Valid() {
			return nil, false
		}
		next[i] = nt
	}
	return next, true
}

// combinations yields every k-subset of {0..n-1} in lexicographic order.
// The yielded slice is reused between iterations.
func combinations(n, k int) iter.Seq[[]int] {
	return func(yield func([]int) bool) {
		if k < 0 || k > n {
			return
		}
		idx := make([]int, k)
		for i := range idx {
			idx[i] = i
		}
		for {
			if !yield(idx) {
				return
			}
			i := k - 1
			for i >= 0 && idx[i] == n-k+i {
				i--
			}
			if i < 0 {
				return
			}
			idx[i]++
			for j := i + 1; j < k; j++ {
				idx[j] = idx[j-1] + 1
			}
		}
	}
}
