package harness

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/vahtras/matchstick/internal/engine"
	"github.com/vahtras/matchstick/internal/glyph"
)

// Scenario defines a conformance test scenario: one transform of one
// expression and the checks its results must pass.
type Scenario struct {
	// Name uniquely identifies this scenario.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Input is the expression to transform, e.g. "1 - 1".
	Input string `yaml:"input"`

	// Kind is move, remove or add. Empty means move.
	Kind string `yaml:"kind,omitempty"`

	// Arity is the number of matches moved, removed or added.
	Arity int `yaml:"arity"`

	// RiddlesOnly drops results that are not riddles before checking.
	RiddlesOnly bool `yaml:"riddles_only,omitempty"`

	// Expect is the exact result set. Order is ignored.
	Expect []string `yaml:"expect,omitempty"`

	// Contains lists results that must appear.
	Contains []string `yaml:"contains,omitempty"`

	// Count is the expected number of results, when set.
	Count *int `yaml:"count,omitempty"`

	// Error is the expected match error code.
	Error string `yaml:"error,omitempty"`
}

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}
	return ParseScenario(data)
}

// ParseScenario decodes a scenario strictly and validates it.
func ParseScenario(data []byte) (*Scenario, error) {
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true) // Reject unknown fields
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}

	if s.Description == "" {
		return fmt.Errorf("description is required")
	}

	if s.Input == "" {
		return fmt.Errorf("input is required")
	}

	if s.Arity == 0 {
		return fmt.Errorf("arity is required")
	}

	if _, err := engine.ParseKind(s.Kind); err != nil {
		return err
	}

	if s.Expect == nil && len(s.Contains) == 0 && s.Count == nil && s.Error == "" {
		return fmt.Errorf("at least one of expect, contains, count or error is required")
	}

	if s.Error != "" {
		switch glyph.MatchErrorCode(s.Error) {
		case glyph.ErrCodeInsufficientMatches, glyph.ErrCodeExcessMatches, glyph.ErrCodeInvalidArity:
		default:
			return fmt.Errorf("unknown error code %q", s.Error)
		}
		if s.Expect != nil || len(s.Contains) > 0 || s.Count != nil {
			return fmt.Errorf("error cannot be combined with result checks")
		}
	}

	return nil
}
