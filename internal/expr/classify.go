package expr

// Valid reports whether every token resolves to a value.
func Valid(e Expression) bool {
	for _, t := range e {
		if !t.Valid() {
			return false
		}
	}
	return true
}

// CountEquals returns the number of "=" operators.
func CountEquals(e Expression) int {
	n := 0
	for _, t := range e {
		if isOperator(t, '=') {
			n++
		}
	}
	return n
}

// IsEquation reports whether e holds exactly one "=".
func IsEquation(e Expression) bool { return CountEquals(e) == 1 }

// IsTrivial reports whether the equation holds as written. A true equation
// is not a puzzle: "0 = 0 + 0" is trivial, "1 = 0 + 0" is not.
func IsTrivial(e Expression) (bool, error) {
	return Evaluate(e)
}

// IsRiddle reports whether e is a valid, false equation.
func IsRiddle(e Expression) bool {
	if !Valid(e) || !IsEquation(e) {
		return false
	}
	holds, err := Evaluate(e)
	return err == nil && !holds
}

// Class summarises how an expression classifies.
type Class struct {
	Valid    bool `json:"valid"`
	Equation bool `json:"equation"`
	Holds    bool `json:"holds"`
	Riddle   bool `json:"riddle"`
}

// Classify evaluates every predicate at once.
func Classify(e Expression) Class {
	c := Class{Valid: Valid(e), Equation: IsEquation(e)}
	if c.Valid && c.Equation {
		holds, err := Evaluate(e)
		c.Holds = err == nil && holds
		c.Riddle = err == nil && !holds
	}
	return c
}
