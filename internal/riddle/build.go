package riddle

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/vahtras/matchstick/internal/engine"
	"github.com/vahtras/matchstick/internal/expr"
	"github.com/vahtras/matchstick/internal/glyph"
)

// Params selects which riddles a Build produces.
type Params struct {
	Shape int         `json:"shape"`
	Arity int         `json:"arity"`
	Kind  engine.Kind `json:"kind"`
}

// Validate checks shape, arity and kind.
func (p Params) Validate() error {
	if _, ok := templates[p.Shape]; !ok {
		return fmt.Errorf("%w: %d (want one of %v)", ErrUnsupportedShape, p.Shape, Shapes())
	}
	if p.Arity < 1 || p.Arity > 2 {
		return &glyph.MatchError{Code: glyph.ErrCodeInvalidArity, Want: p.Arity}
	}
	if _, err := engine.ParseKind(string(p.Kind)); err != nil {
		return err
	}
	return nil
}

// String formats the parameters as "shape=3 kind=move arity=1".
func (p Params) String() string {
	kind := p.Kind
	if kind == "" {
		kind = engine.KindMove
	}
	return fmt.Sprintf("shape=%d kind=%s arity=%d", p.Shape, kind, p.Arity)
}

// Build transforms every equation of p.Shape and maps each resulting
// riddle to the equations that produced it.
//
// Equations that cannot give up or take on p.Arity matches are skipped for
// remove and add builds rather than reported as errors.
func Build(ctx context.Context, eng *engine.Engine, reg *glyph.Registry, p Params) (*Map, error) {
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("build riddles: %w", err)
	}
	equations, err := Equations(reg, p.Shape)
	if err != nil {
		return nil, fmt.Errorf("build riddles: %w", err)
	}

	start := time.Now()
	m := NewMap()
	candidates := 0
	for _, eq := range equations {
		seq, err := expr.Scan(reg, eq)
		if err != nil {
			return nil, fmt.Errorf("build riddles: %w", err)
		}
		if !feasible(p, seq) {
			continue
		}
		results, stats, err := eng.Transform(ctx, p.Kind, seq, p.Arity)
		if err != nil {
			return nil, fmt.Errorf("build riddles from %q: %w", eq, err)
		}
		candidates += stats.Candidates
		for _, r := range results {
			if expr.IsRiddle(r) {
				m.Add(r.String(), eq)
			}
		}
	}

	slog.Info("riddles built",
		"params", p.String(),
		"equations", len(equations),
		"candidates", candidates,
		"riddles", m.Len(),
		"duration", time.Since(start),
	)
	return m, nil
}

// feasible pre-filters sequences whose match budget rules out the request.
func feasible(p Params, seq expr.Expression) bool {
	switch p.Kind {
	case engine.KindRemove:
		return seq.Matches() >= p.Arity
	case engine.KindAdd:
		return len(engine.Free(seq)) >= p.Arity
	default:
		return true
	}
}
