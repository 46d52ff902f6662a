package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/vahtras/matchstick/internal/config"
	"github.com/vahtras/matchstick/internal/expr"
	"github.com/vahtras/matchstick/internal/glyph"
	"github.com/vahtras/matchstick/internal/riddle"
	"github.com/vahtras/matchstick/internal/store"
)

// Exit codes for CLI commands.
const (
	ExitSuccess      = 0 // Successful execution
	ExitFailure      = 1 // Request failed (impossible transform, failed scenarios, digest mismatch)
	ExitCommandError = 2 // Command error (bad flags, unreadable files, database errors)
)

// Error codes reported in JSON responses. Match errors use their own codes
// (INSUFFICIENT_MATCHES, EXCESS_MATCHES, INVALID_ARITY).
const (
	CodeParse       = "E_PARSE"
	CodeInput       = "E_INPUT"
	CodeConfig      = "E_CONFIG"
	CodeStore       = "E_STORE"
	CodeNotFound    = "E_NOT_FOUND"
	CodeCheckFailed = "E_CHECK_FAILED"
	CodeInternal    = "E_INTERNAL"
)

// ExitError represents an error with a specific exit code.
type ExitError struct {
	Code    int    // Exit code (use ExitFailure or ExitCommandError)
	Message string // Error message
	Err     error  // Underlying error (optional)
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// NewExitError creates a new ExitError with the given code and message.
func NewExitError(code int, message string) *ExitError {
	return &ExitError{Code: code, Message: message}
}

// WrapExitError wraps an existing error with an exit code.
func WrapExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

// GetExitCode extracts the exit code from an error.
// Returns ExitFailure (1) if the error is not an ExitError.
func GetExitCode(err error) int {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}

// OutputFormatter handles JSON vs text output for CLI commands.
type OutputFormatter struct {
	Format    string
	Writer    io.Writer
	ErrWriter io.Writer // Separate writer for verbose/diagnostic output (defaults to Writer)
	Verbose   bool
}

// CLIResponse is the standard JSON response format for CLI output.
type CLIResponse struct {
	Status string    `json:"status"`          // "ok" or "error"
	Data   any       `json:"data,omitempty"`  // success payload
	Error  *CLIError `json:"error,omitempty"` // error details
}

// CLIError is the error structure for CLI responses.
type CLIError struct {
	Code    string `json:"code"`              // E_PARSE, INSUFFICIENT_MATCHES, ...
	Message string `json:"message"`           // human-readable message
	Details any    `json:"details,omitempty"` // additional context
}

func newFormatter(opts *RootOptions, cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}
}

// JSON reports whether the formatter emits JSON.
func (f *OutputFormatter) JSON() bool { return f.Format == "json" }

// Success outputs a successful result in the configured format.
func (f *OutputFormatter) Success(data any) error {
	if f.JSON() {
		enc := json.NewEncoder(f.Writer)
		enc.SetIndent("", "  ")
		return enc.Encode(CLIResponse{
			Status: "ok",
			Data:   data,
		})
	}

	fmt.Fprintln(f.Writer, data)
	return nil
}

// Error outputs an error in the configured format.
func (f *OutputFormatter) Error(code, message string, details any) error {
	if f.JSON() {
		enc := json.NewEncoder(f.Writer)
		enc.SetIndent("", "  ")
		return enc.Encode(CLIResponse{
			Status: "error",
			Error: &CLIError{
				Code:    code,
				Message: message,
				Details: details,
			},
		})
	}

	fmt.Fprintf(f.Writer, "Error [%s]: %s\n", code, message)
	if f.Verbose && details != nil {
		fmt.Fprintf(f.Writer, "Details: %v\n", details)
	}
	return nil
}

// Fail reports err and returns it as an ExitError. JSON mode writes a
// structured error response; text mode leaves printing to the caller of
// Execute.
func (f *OutputFormatter) Fail(exitCode int, message string, err error) error {
	if f.JSON() {
		if werr := f.Error(errorCode(err), fmt.Sprintf("%s: %v", message, err), nil); werr != nil {
			return werr
		}
	}
	return WrapExitError(exitCode, message, err)
}

// VerboseLog outputs a message only if verbose mode is enabled.
// Uses ErrWriter if set, otherwise falls back to Writer.
func (f *OutputFormatter) VerboseLog(format string, args ...any) {
	if !f.Verbose {
		return
	}
	fmt.Fprintf(f.GetErrWriter(), format+"\n", args...)
}

// GetErrWriter returns the appropriate writer for diagnostic output.
func (f *OutputFormatter) GetErrWriter() io.Writer {
	if f.ErrWriter != nil {
		return f.ErrWriter
	}
	return f.Writer
}

// errorCode classifies err for JSON responses.
func errorCode(err error) string {
	var (
		matchErr  *glyph.MatchError
		scanErr   *expr.ScanError
		evalErr   *expr.EvalError
		configErr *config.Error
	)
	switch {
	case errors.As(err, &matchErr):
		return string(matchErr.Code)
	case errors.As(err, &scanErr), errors.As(err, &evalErr), errors.Is(err, expr.ErrEmpty):
		return CodeParse
	case errors.As(err, &configErr), errors.Is(err, config.ErrEmpty):
		return CodeConfig
	case errors.Is(err, riddle.ErrUnsupportedShape):
		return CodeInput
	case errors.Is(err, store.ErrRunNotFound):
		return CodeNotFound
	case errors.Is(err, store.ErrDigestMismatch):
		return CodeStore
	}
	return CodeInternal
}
