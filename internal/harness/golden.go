package harness

import (
	"encoding/json"
	"testing"

	"github.com/sebdah/goldie/v2"
)

// ResultSnapshot captures a scenario execution for golden comparison.
type ResultSnapshot struct {
	Scenario string   `json:"scenario"`
	Input    string   `json:"input"`
	Kind     string   `json:"kind"`
	Arity    int      `json:"arity"`
	Results  []string `json:"results"`
}

// Snapshot renders the outcome of s as indented JSON with a trailing
// newline.
func Snapshot(s *Scenario, result *Result) ([]byte, error) {
	kind := s.Kind
	if kind == "" {
		kind = "move"
	}
	data, err := json.MarshalIndent(ResultSnapshot{
		Scenario: s.Name,
		Input:    s.Input,
		Kind:     kind,
		Arity:    s.Arity,
		Results:  result.Results,
	}, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

// AssertGolden compares the snapshot of result against
// testdata/golden/<scenario name>.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
func AssertGolden(t *testing.T, s *Scenario, result *Result) {
	t.Helper()

	data, err := Snapshot(s, result)
	if err != nil {
		t.Fatalf("snapshot %s: %v", s.Name, err)
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, s.Name, data)
}
