package glyph

import "fmt"

// MatchErrorCode categorizes requests a token or expression cannot honour.
type MatchErrorCode string

const (
	// ErrCodeInsufficientMatches indicates more matches were requested than are present.
	ErrCodeInsufficientMatches MatchErrorCode = "INSUFFICIENT_MATCHES"

	// ErrCodeExcessMatches indicates adding matches would overflow the position universe.
	ErrCodeExcessMatches MatchErrorCode = "EXCESS_MATCHES"

	// ErrCodeInvalidArity indicates an arity the operation does not support.
	ErrCodeInvalidArity MatchErrorCode = "INVALID_ARITY"
)

// MatchError reports a structurally impossible transform request.
//
// It is a contract violation by the caller, distinct from a request that is
// possible but has no valid result (which yields an empty result and no error).
type MatchError struct {
	// Code identifies the error category.
	Code MatchErrorCode

	// Family is the token family, or 0 when the request was for a whole expression.
	Family Family

	// Have is the number of matches (or free positions) available.
	Have int

	// Want is the requested arity.
	Want int
}

// Sentinels for errors.Is. Only Code is compared.
var (
	ErrInsufficientMatches = &MatchError{Code: ErrCodeInsufficientMatches}
	ErrExcessMatches       = &MatchError{Code: ErrCodeExcessMatches}
	ErrInvalidArity        = &MatchError{Code: ErrCodeInvalidArity}
)

// Error implements the error interface.
func (e *MatchError) Error() string {
	subject := "expression"
	if e.Family != 0 {
		subject = e.Family.String()
	}
	switch e.Code {
	case ErrCodeInsufficientMatches:
		return fmt.Sprintf("%s: cannot take %d match(es) from %s with %d", e.Code, e.Want, subject, e.Have)
	case ErrCodeExcessMatches:
		return fmt.Sprintf("%s: cannot add %d match(es) to %s with %d free position(s)", e.Code, e.Want, subject, e.Have)
	case ErrCodeInvalidArity:
		return fmt.Sprintf("%s: arity %d not supported for %s", e.Code, e.Want, subject)
	}
	return string(e.Code)
}

// Is matches any MatchError with the same code.
func (e *MatchError) Is(target error) bool {
	t, ok := target.(*MatchError)
	return ok && t.Code == e.Code
}
