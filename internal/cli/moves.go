package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vahtras/matchstick/internal/engine"
	"github.com/vahtras/matchstick/internal/expr"
	"github.com/vahtras/matchstick/internal/glyph"
)

// MovesOptions holds flags for the moves command.
type MovesOptions struct {
	*RootOptions
	Kind    string
	Arity   int
	Riddles bool // keep only riddles
}

// MovesResult is the JSON payload of the moves command.
type MovesResult struct {
	Input      string   `json:"input"`
	Kind       string   `json:"kind"`
	Arity      int      `json:"arity"`
	Results    []string `json:"results"`
	Candidates int      `json:"candidates"`
}

// NewMovesCommand creates the moves command.
func NewMovesCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &MovesOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "moves <expression>",
		Short: "List expressions one transform away",
		Long: `List every valid expression reachable from the input by moving,
removing or adding matches.

Exit codes:
  0 - Success (an empty list is a success)
  1 - The expression cannot give up or take on that many matches
  2 - Command error (bad expression or flags)

Examples:
  matchstick moves "1 + 1 = 3"
  matchstick moves 8 --kind remove --arity 2
  matchstick moves "6 - 4 = 9" --riddles`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMoves(opts, cmd, strings.Join(args, " "))
		},
	}

	cmd.Flags().StringVar(&opts.Kind, "kind", "move", "transform kind (move|remove|add)")
	cmd.Flags().IntVarP(&opts.Arity, "arity", "n", 1, "number of matches")
	cmd.Flags().BoolVar(&opts.Riddles, "riddles", false, "only list riddles")

	return cmd
}

func runMoves(opts *MovesOptions, cmd *cobra.Command, input string) error {
	f := newFormatter(opts.RootOptions, cmd)

	kind, err := engine.ParseKind(opts.Kind)
	if err != nil {
		return f.Fail(ExitCommandError, "invalid --kind", err)
	}
	e, err := expr.Scan(glyph.Standard(), input)
	if err != nil {
		return f.Fail(ExitCommandError, "invalid expression", err)
	}

	out, stats, err := opts.newEngine().Transform(cmd.Context(), kind, e, opts.Arity)
	if err != nil {
		return f.Fail(ExitFailure, fmt.Sprintf("cannot %s %d match(es)", kind, opts.Arity), err)
	}

	results := []string{}
	for _, r := range out {
		if opts.Riddles && !expr.IsRiddle(r) {
			continue
		}
		results = append(results, r.String())
	}
	f.VerboseLog("%d candidate(s), %d result(s) in %s", stats.Candidates, stats.Results, stats.Duration)

	if f.JSON() {
		return f.Success(MovesResult{
			Input:      e.String(),
			Kind:       string(kind),
			Arity:      opts.Arity,
			Results:    results,
			Candidates: stats.Candidates,
		})
	}

	w := cmd.OutOrStdout()
	for _, r := range results {
		fmt.Fprintln(w, r)
	}
	if len(results) == 0 {
		fmt.Fprintln(w, "No results.")
	}
	return nil
}
