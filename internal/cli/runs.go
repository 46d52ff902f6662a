package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vahtras/matchstick/internal/expr"
	"github.com/vahtras/matchstick/internal/glyph"
	"github.com/vahtras/matchstick/internal/store"
)

// NewRunsCommand creates the runs command.
func NewRunsCommand(rootOpts *RootOptions) *cobra.Command {
	var database string

	cmd := &cobra.Command{
		Use:   "runs",
		Short: "List stored riddle runs",
		Long: `List the riddle runs stored in a database, oldest first.

Examples:
  matchstick runs --db riddles.db
  matchstick runs --db riddles.db --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := newFormatter(rootOpts, cmd)

			st, err := openExisting(database)
			if err != nil {
				return f.Fail(ExitCommandError, "failed to open database", err)
			}
			defer st.Close()

			runs, err := st.Runs(cmd.Context())
			if err != nil {
				return f.Fail(ExitCommandError, "failed to list runs", err)
			}

			if f.JSON() {
				return f.Success(runs)
			}
			w := cmd.OutOrStdout()
			if len(runs) == 0 {
				fmt.Fprintln(w, "No runs stored.")
				return nil
			}
			for _, r := range runs {
				name := r.Name
				if name == "" {
					name = "-"
				}
				fmt.Fprintf(w, "%3d  %s  %-8s %s  %d riddle(s)\n", r.Seq, r.ID, name, r.Params, r.Riddles)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&database, "db", "", "path to SQLite database (required)")
	_ = cmd.MarkFlagRequired("db")

	return cmd
}

// LookupOptions holds flags for the lookup command.
type LookupOptions struct {
	*RootOptions
	Database string
	RunID    string
}

// LookupResult is the JSON payload of the lookup command.
type LookupResult struct {
	Query     string      `json:"query"`
	RunID     string      `json:"run_id,omitempty"`
	Solutions []string    `json:"solutions,omitempty"`
	Riddles   []store.Hit `json:"riddles,omitempty"`
}

// NewLookupCommand creates the lookup command.
func NewLookupCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &LookupOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "lookup <expression>",
		Short: "Look up stored riddles and solutions",
		Long: `Look up a stored expression.

With --run the expression is a riddle and its solutions in that run are
listed. Without --run the expression is an equation and every stored riddle
it solves is listed.

Examples:
  matchstick lookup --db riddles.db --run 0190... "2 = 3"
  matchstick lookup --db riddles.db "3 = 3"`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLookup(opts, cmd, strings.Join(args, " "))
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (required)")
	_ = cmd.MarkFlagRequired("db")
	cmd.Flags().StringVar(&opts.RunID, "run", "", "run ID to search for riddle solutions")

	return cmd
}

func runLookup(opts *LookupOptions, cmd *cobra.Command, input string) error {
	f := newFormatter(opts.RootOptions, cmd)
	ctx := cmd.Context()

	e, err := expr.Scan(glyph.Standard(), input)
	if err != nil {
		return f.Fail(ExitCommandError, "invalid expression", err)
	}
	query := e.String()

	st, err := openExisting(opts.Database)
	if err != nil {
		return f.Fail(ExitCommandError, "failed to open database", err)
	}
	defer st.Close()

	w := cmd.OutOrStdout()
	if opts.RunID != "" {
		sols, err := st.Solutions(ctx, opts.RunID, query)
		if errors.Is(err, store.ErrRunNotFound) {
			return f.Fail(ExitFailure, "unknown run", err)
		}
		if err != nil {
			return f.Fail(ExitCommandError, "lookup failed", err)
		}
		if f.JSON() {
			return f.Success(LookupResult{Query: query, RunID: opts.RunID, Solutions: sols})
		}
		if len(sols) == 0 {
			fmt.Fprintf(w, "%s is not a riddle of run %s\n", query, opts.RunID)
			return nil
		}
		for _, s := range sols {
			fmt.Fprintln(w, s)
		}
		return nil
	}

	hits, err := st.FindRiddles(ctx, query)
	if err != nil {
		return f.Fail(ExitCommandError, "lookup failed", err)
	}
	if f.JSON() {
		return f.Success(LookupResult{Query: query, Riddles: hits})
	}
	if len(hits) == 0 {
		fmt.Fprintf(w, "%s solves no stored riddle\n", query)
		return nil
	}
	for _, h := range hits {
		fmt.Fprintf(w, "%s  %s\n", h.RunID, h.Riddle)
	}
	return nil
}

// openExisting opens a store that must already exist on disk.
func openExisting(path string) (*store.Store, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("database not found: %w", err)
	}
	return store.Open(path)
}
