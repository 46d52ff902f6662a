package harness

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/vahtras/matchstick/internal/engine"
	"github.com/vahtras/matchstick/internal/expr"
	"github.com/vahtras/matchstick/internal/glyph"
)

// Run executes a scenario and returns its result.
//
// An error is returned only when the scenario cannot be executed (bad input
// expression, cancelled context). Failed checks are reported in the result.
func Run(ctx context.Context, eng *engine.Engine, reg *glyph.Registry, s *Scenario) (*Result, error) {
	seq, err := expr.Scan(reg, s.Input)
	if err != nil {
		return nil, fmt.Errorf("scenario %s: %w", s.Name, err)
	}
	kind, err := engine.ParseKind(s.Kind)
	if err != nil {
		return nil, fmt.Errorf("scenario %s: %w", s.Name, err)
	}

	result := NewResult()
	out, stats, err := eng.Transform(ctx, kind, seq, s.Arity)
	if err != nil {
		if ctx.Err() != nil {
			return nil, err
		}
		checkError(result, s, err)
		return result, nil
	}
	if s.Error != "" {
		result.AddError(fmt.Sprintf("expected %s, got %d result(s)", s.Error, len(out)))
	}
	result.Candidates = stats.Candidates

	for _, e := range out {
		if s.RiddlesOnly && !expr.IsRiddle(e) {
			continue
		}
		result.Results = append(result.Results, e.String())
	}

	checkResults(result, s)

	slog.Debug("scenario executed",
		"scenario", s.Name,
		"results", len(result.Results),
		"pass", result.Pass,
	)
	return result, nil
}

func checkError(result *Result, s *Scenario, err error) {
	var me *glyph.MatchError
	switch {
	case s.Error == "":
		result.AddError(fmt.Sprintf("unexpected error: %v", err))
	case !errors.As(err, &me):
		result.AddError(fmt.Sprintf("expected %s, got %v", s.Error, err))
	case string(me.Code) != s.Error:
		result.AddError(fmt.Sprintf("expected %s, got %s", s.Error, me.Code))
	}
}

func checkResults(result *Result, s *Scenario) {
	got := make(map[string]bool, len(result.Results))
	for _, r := range result.Results {
		got[r] = true
	}

	if s.Expect != nil {
		want := make(map[string]bool, len(s.Expect))
		var missing, unexpected []string
		for _, w := range s.Expect {
			want[w] = true
			if !got[w] {
				missing = append(missing, w)
			}
		}
		for _, r := range result.Results {
			if !want[r] {
				unexpected = append(unexpected, r)
			}
		}
		if len(missing) > 0 {
			result.AddError("missing: " + quoteAll(missing))
		}
		if len(unexpected) > 0 {
			result.AddError("unexpected: " + quoteAll(unexpected))
		}
	}

	for _, c := range s.Contains {
		if !got[c] {
			result.AddError(fmt.Sprintf("expected result %q not found", c))
		}
	}

	if s.Count != nil && *s.Count != len(result.Results) {
		result.AddError(fmt.Sprintf("expected %d result(s), got %d", *s.Count, len(result.Results)))
	}
}

func quoteAll(ss []string) string {
	ss = slices.Clone(ss)
	slices.Sort(ss)
	q := make([]string, len(ss))
	for i, s := range ss {
		q[i] = fmt.Sprintf("%q", s)
	}
	return strings.Join(q, ", ")
}
