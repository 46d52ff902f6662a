package harness

// Result is the outcome of a scenario execution.
type Result struct {
	// Pass is true if every check matched.
	Pass bool `json:"pass"`

	// Results are the canonical strings the transform produced, in engine
	// order, after the riddles_only filter.
	Results []string `json:"results"`

	// Candidates is the number of expressions the engine examined.
	Candidates int `json:"candidates"`

	// Errors contains check failures. Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`
}

// NewResult creates a new passing result.
func NewResult() *Result {
	return &Result{
		Pass:    true,
		Results: []string{},
		Errors:  []string{},
	}
}

// AddError adds a check failure and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}
