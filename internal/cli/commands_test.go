package cli

import (
	"archive/zip"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vahtras/matchstick/internal/riddle"
	"github.com/vahtras/matchstick/internal/store"
)

// decode unmarshals a CLIResponse whose data has type T.
func decode[T any](t *testing.T, out string) (string, T, *CLIError) {
	t.Helper()
	var resp struct {
		Status string    `json:"status"`
		Data   T         `json:"data"`
		Error  *CLIError `json:"error"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp), out)
	return resp.Status, resp.Data, resp.Error
}

func TestShow_Text(t *testing.T) {
	out, err := execute(t, "show", "7=1")
	require.NoError(t, err)

	assert.Contains(t, out, " ━━ ")
	assert.Contains(t, out, "7 = 1  (6 matches)")
	assert.Contains(t, out, "valid: true  equation: true  holds: false  riddle: true")
}

func TestShow_JSON(t *testing.T) {
	out, err := execute(t, "show", "1", "+", "2=3", "--format", "json")
	require.NoError(t, err)

	status, data, _ := decode[ShowResult](t, out)
	assert.Equal(t, "ok", status)
	assert.Equal(t, "1 + 2 = 3", data.Expression)
	assert.Equal(t, "1+2=3", data.Key)
	assert.Equal(t, 2+1+5+1+5, data.Matches)
	require.Len(t, data.Tokens, 5)
	assert.Equal(t, TokenView{Value: "1", Family: "digit", Segments: []int{2, 5}, Valid: true}, data.Tokens[0])
	assert.Equal(t, TokenView{Value: "+", Family: "operator", Segments: []int{0}, Valid: true}, data.Tokens[1])
	assert.True(t, data.Class.Holds)
	assert.False(t, data.Class.Riddle)
}

func TestShow_InvalidExpression(t *testing.T) {
	out, err := execute(t, "show", "1 * 2", "--format", "json")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))

	status, _, cliErr := decode[any](t, out)
	assert.Equal(t, "error", status)
	require.NotNil(t, cliErr)
	assert.Equal(t, CodeParse, cliErr.Code)
}

func TestMoves_Remove(t *testing.T) {
	out, err := execute(t, "moves", "8", "--kind", "remove")
	require.NoError(t, err)
	assert.Equal(t, "0\n6\n9\n", out)
}

func TestMoves_AddJSON(t *testing.T) {
	out, err := execute(t, "moves", "1 - 1", "--kind", "add", "--workers", "2", "--format", "json")
	require.NoError(t, err)

	_, data, _ := decode[MovesResult](t, out)
	assert.Equal(t, "1 - 1", data.Input)
	assert.Equal(t, "add", data.Kind)
	assert.Equal(t, []string{"1 + 1", "1 - 7", "1 = 1", "7 - 1"}, data.Results)
}

func TestMoves_Riddles(t *testing.T) {
	out, err := execute(t, "moves", "2 = 2", "--riddles")
	require.NoError(t, err)
	assert.Contains(t, strings.Split(strings.TrimSpace(out), "\n"), "2 = 3")
}

func TestMoves_NoResults(t *testing.T) {
	out, err := execute(t, "moves", "8", "--kind", "remove", "--arity", "7")
	require.NoError(t, err)
	assert.Contains(t, out, "No results.")
}

func TestMoves_MatchError(t *testing.T) {
	out, err := execute(t, "moves", "8", "--kind", "add", "--format", "json")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))

	_, _, cliErr := decode[any](t, out)
	require.NotNil(t, cliErr)
	assert.Equal(t, "EXCESS_MATCHES", cliErr.Code)
}

func TestMoves_BadKind(t *testing.T) {
	_, err := execute(t, "moves", "8", "--kind", "jump")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestEquations(t *testing.T) {
	out, err := execute(t, "equations", "--shape", "2")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.Len(t, lines, 10)
	assert.Equal(t, "0 = 0", lines[0])

	out, err = execute(t, "equations", "--shape", "3", "--format", "json")
	require.NoError(t, err)
	_, data, _ := decode[EquationsResult](t, out)
	assert.Equal(t, 220, data.Count)

	_, err = execute(t, "equations", "--shape", "5")
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestRiddles_InvalidParams(t *testing.T) {
	_, err := execute(t, "riddles", "--arity", "3")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestRiddles_StoreAndLookup(t *testing.T) {
	db := filepath.Join(t.TempDir(), "riddles.db")

	out, err := execute(t, "riddles", "--shape", "2", "--db", db, "--name", "pairs", "--format", "json")
	require.NoError(t, err)
	_, run, _ := decode[riddle.Run](t, out)
	require.NotEmpty(t, run.ID)
	require.NotNil(t, run.Map)
	assert.Equal(t, []string{"2 = 2", "3 = 3"}, run.Map.Solutions("2 = 3"))

	out, err = execute(t, "runs", "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, run.ID)
	assert.Contains(t, out, "pairs")

	out, err = execute(t, "lookup", "--db", db, "--run", run.ID, "2=3")
	require.NoError(t, err)
	assert.Equal(t, "2 = 2\n3 = 3\n", out)

	out, err = execute(t, "lookup", "--db", db, "3 = 3", "--format", "json")
	require.NoError(t, err)
	_, hits, _ := decode[LookupResult](t, out)
	assert.Contains(t, hits.Riddles, store.Hit{RunID: run.ID, Riddle: "2 = 3"})

	_, err = execute(t, "lookup", "--db", db, "--run", "nope", "2 = 3")
	assert.Equal(t, ExitFailure, GetExitCode(err))
}

func TestRuns_MissingDatabase(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing.db")
	_, err := execute(t, "runs", "--db", missing)
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.NoFileExists(t, missing)
}

func TestRuns_Empty(t *testing.T) {
	db := filepath.Join(t.TempDir(), "empty.db")
	st, err := store.Open(db)
	require.NoError(t, err)
	require.NoError(t, st.Close())

	out, err := execute(t, "runs", "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "No runs stored.")
}

func TestGenerate(t *testing.T) {
	dir := t.TempDir()
	db := filepath.Join(dir, "gen.db")
	zipPath := filepath.Join(dir, "gen.zip")
	cfgPath := filepath.Join(dir, "matchstick.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(`
database: `+db+`
workers: 2
archive: `+zipPath+`
runs:
  - {name: pairs, shape: 2, arity: 1}
  - {name: thin, shape: 2, arity: 1, kind: remove}
`), 0o644))

	out, err := execute(t, "generate", "--config", cfgPath)
	require.NoError(t, err)
	assert.Contains(t, out, "✓ pairs:")
	assert.Contains(t, out, "✓ thin:")
	assert.Contains(t, out, "2 run(s) stored in "+db)

	st, err := store.Open(db)
	require.NoError(t, err)
	defer st.Close()
	runs, err := st.Runs(t.Context())
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "pairs", runs[0].Name)
	assert.Equal(t, "thin", runs[1].Name)

	zr, err := zip.OpenReader(zipPath)
	require.NoError(t, err)
	defer zr.Close()
	names := make(map[string]bool)
	for _, f := range zr.File {
		names[f.Name] = true
	}
	assert.True(t, names["riddles/2=3/riddle.png"])
	assert.True(t, names["equations/3=3.png"])
}

func TestGenerate_BadConfig(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("runs:\n  - {shape: 9, arity: 1}\n"), 0o644))

	out, err := execute(t, "generate", "--config", cfgPath, "--format", "json")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	_, _, cliErr := decode[any](t, out)
	require.NotNil(t, cliErr)
	assert.Equal(t, CodeConfig, cliErr.Code)
}

func TestPack(t *testing.T) {
	zipPath := filepath.Join(t.TempDir(), "pairs.zip")

	out, err := execute(t, "pack", "--shape", "2", "--scale", "1", "-o", zipPath)
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote "+zipPath)

	zr, err := zip.OpenReader(zipPath)
	require.NoError(t, err)
	defer zr.Close()

	var link *zip.File
	for _, f := range zr.File {
		if f.Name == "riddles/2=3/solutions/3=3.png" {
			link = f
		}
	}
	require.NotNil(t, link)
	assert.NotZero(t, link.Mode()&os.ModeSymlink)
}

func TestPack_RequiresOutput(t *testing.T) {
	_, err := execute(t, "pack", "--shape", "2")
	assert.Error(t, err)
}

func TestCheck_Scenarios(t *testing.T) {
	out, err := execute(t, "check", "../harness/testdata/scenarios")
	require.NoError(t, err, out)
	assert.Contains(t, out, "✓ eight_remove_one")
	assert.Contains(t, out, "✓ All scenarios passed")
}

func TestCheck_Filter(t *testing.T) {
	out, err := execute(t, "check", "../harness/testdata/scenarios", "--filter", "eight_*", "--format", "json")
	require.NoError(t, err)
	_, data, _ := decode[CheckResult](t, out)
	assert.Equal(t, 2, data.Total)
	assert.Equal(t, 2, data.Passed)
}

func TestCheck_GoldenUpdateAndCompare(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "nine.yaml"), []byte(`
name: nine_remove_one
description: "9 loses a match"
input: "9"
kind: remove
arity: 1
contains: ["3"]
`), 0o644))

	out, err := execute(t, "check", dir, "--update")
	require.NoError(t, err)
	assert.Contains(t, out, "golden updated")

	golden := filepath.Join(dir, "golden", "nine.golden")
	require.FileExists(t, golden)

	_, err = execute(t, "check", dir)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(golden, []byte("{}\n"), 0o644))
	out, err = execute(t, "check", dir)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "do not match golden file")
}

func TestCheck_FailingScenario(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "wrong.yaml"), []byte(`
name: wrong
description: "8 never loses a match to become 1"
input: "8"
kind: remove
arity: 1
contains: ["1"]
`), 0o644))

	out, err := execute(t, "check", dir)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "✗ wrong")
	assert.Contains(t, out, "1 failed")
}

func TestCheck_MissingDir(t *testing.T) {
	_, err := execute(t, "check", filepath.Join(t.TempDir(), "none"))
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestCheck_Empty(t *testing.T) {
	out, err := execute(t, "check", t.TempDir())
	require.NoError(t, err)
	assert.Contains(t, out, "No scenarios found.")
}
