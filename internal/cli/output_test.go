package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vahtras/matchstick/internal/config"
	"github.com/vahtras/matchstick/internal/expr"
	"github.com/vahtras/matchstick/internal/glyph"
	"github.com/vahtras/matchstick/internal/riddle"
	"github.com/vahtras/matchstick/internal/store"
)

func TestOutputFormatter_JSONSuccess(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{Format: "json", Writer: buf}

	require.NoError(t, formatter.Success(map[string]int{"riddles": 12}))

	var resp CLIResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.NotNil(t, resp.Data)
	assert.Nil(t, resp.Error)
}

func TestOutputFormatter_JSONError(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{Format: "json", Writer: buf}

	require.NoError(t, formatter.Error(CodeParse, "invalid expression", []string{"pos 2"}))

	var resp CLIResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "error", resp.Status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, CodeParse, resp.Error.Code)
	assert.Equal(t, "invalid expression", resp.Error.Message)
	assert.NotNil(t, resp.Error.Details)
}

func TestOutputFormatter_Text(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{Format: "text", Writer: buf, Verbose: true}

	require.NoError(t, formatter.Success("12 riddles"))
	require.NoError(t, formatter.Error(CodeStore, "locked", "details here"))

	out := buf.String()
	assert.Contains(t, out, "12 riddles")
	assert.Contains(t, out, "Error [E_STORE]: locked")
	assert.Contains(t, out, "Details: details here")
}

func TestOutputFormatter_VerboseLog(t *testing.T) {
	tests := []struct {
		name    string
		verbose bool
		wantLog bool
	}{
		{"verbose_enabled", true, true},
		{"verbose_disabled", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := &bytes.Buffer{}
			errOut := &bytes.Buffer{}
			formatter := &OutputFormatter{
				Format:    "json",
				Writer:    out,
				ErrWriter: errOut,
				Verbose:   tt.verbose,
			}

			formatter.VerboseLog("searched %d candidates", 45)

			assert.Empty(t, out.String())
			if tt.wantLog {
				assert.Contains(t, errOut.String(), "searched 45 candidates")
			} else {
				assert.Empty(t, errOut.String())
			}
		})
	}
}

func TestOutputFormatter_Fail(t *testing.T) {
	matchErr := &glyph.MatchError{Code: glyph.ErrCodeExcessMatches, Have: 0, Want: 1}

	t.Run("json", func(t *testing.T) {
		buf := &bytes.Buffer{}
		formatter := &OutputFormatter{Format: "json", Writer: buf}

		err := formatter.Fail(ExitFailure, "cannot add 1 match(es)", matchErr)
		assert.Equal(t, ExitFailure, GetExitCode(err))
		assert.ErrorIs(t, err, glyph.ErrExcessMatches)

		var resp CLIResponse
		require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
		require.NotNil(t, resp.Error)
		assert.Equal(t, "EXCESS_MATCHES", resp.Error.Code)
	})

	t.Run("text", func(t *testing.T) {
		buf := &bytes.Buffer{}
		formatter := &OutputFormatter{Format: "text", Writer: buf}

		err := formatter.Fail(ExitCommandError, "invalid expression", expr.ErrEmpty)
		assert.Equal(t, ExitCommandError, GetExitCode(err))
		assert.Empty(t, buf.String())
		assert.Equal(t, "invalid expression: empty expression", err.Error())
	})
}

func TestErrorCode(t *testing.T) {
	_, scanErr := expr.Scan(glyph.Standard(), "1 * 2")
	require.Error(t, scanErr)

	tests := []struct {
		err  error
		want string
	}{
		{&glyph.MatchError{Code: glyph.ErrCodeInsufficientMatches}, "INSUFFICIENT_MATCHES"},
		{fmt.Errorf("wrapped: %w", &glyph.MatchError{Code: glyph.ErrCodeInvalidArity}), "INVALID_ARITY"},
		{scanErr, CodeParse},
		{expr.ErrEmpty, CodeParse},
		{&config.Error{Path: "runs", Message: "x"}, CodeConfig},
		{fmt.Errorf("x: %w", riddle.ErrUnsupportedShape), CodeInput},
		{fmt.Errorf("x: %w", store.ErrRunNotFound), CodeNotFound},
		{store.ErrDigestMismatch, CodeStore},
		{errors.New("disk full"), CodeInternal},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, errorCode(tt.err))
		})
	}
}

func TestGetExitCode(t *testing.T) {
	assert.Equal(t, ExitCommandError, GetExitCode(NewExitError(ExitCommandError, "bad")))
	assert.Equal(t, ExitFailure, GetExitCode(fmt.Errorf("wrapped: %w", NewExitError(ExitFailure, "x"))))
	assert.Equal(t, ExitFailure, GetExitCode(errors.New("plain")))

	inner := errors.New("inner")
	wrapped := WrapExitError(ExitCommandError, "outer", inner)
	assert.ErrorIs(t, wrapped, inner)
	assert.Equal(t, "outer: inner", wrapped.Error())
}
