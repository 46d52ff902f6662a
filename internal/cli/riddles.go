package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vahtras/matchstick/internal/engine"
	"github.com/vahtras/matchstick/internal/glyph"
	"github.com/vahtras/matchstick/internal/riddle"
	"github.com/vahtras/matchstick/internal/store"
)

// BuildFlags are the riddle build parameters shared by riddles and pack.
type BuildFlags struct {
	Shape int
	Arity int
	Kind  string
}

func (b *BuildFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntVar(&b.Shape, "shape", 2, "number of digits (2-4)")
	cmd.Flags().IntVarP(&b.Arity, "arity", "n", 1, "matches per riddle (1-2)")
	cmd.Flags().StringVar(&b.Kind, "kind", "move", "transform kind (move|remove|add)")
}

func (b *BuildFlags) params() (riddle.Params, error) {
	kind, err := engine.ParseKind(b.Kind)
	if err != nil {
		return riddle.Params{}, err
	}
	p := riddle.Params{Shape: b.Shape, Arity: b.Arity, Kind: kind}
	return p, p.Validate()
}

// RiddlesOptions holds flags for the riddles command.
type RiddlesOptions struct {
	*RootOptions
	BuildFlags
	Database string
	Name     string

	// IDGenerator allows overriding the run ID generator (for testing).
	// If nil, defaults to riddle.UUIDv7Generator.
	IDGenerator riddle.RunIDGenerator
}

// NewRiddlesCommand creates the riddles command.
func NewRiddlesCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RiddlesOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "riddles",
		Short: "Build riddles from true equations",
		Long: `Transform every true equation of a shape and collect the results that
are false equations: riddles, each listed with the equations that solve it.

With --db the run is stored for later lookup.

Examples:
  matchstick riddles --shape 2
  matchstick riddles --shape 3 --arity 2 --db riddles.db --name hard
  matchstick riddles --shape 3 --kind remove --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRiddles(opts, cmd)
		},
	}

	opts.BuildFlags.register(cmd)
	cmd.Flags().StringVar(&opts.Database, "db", "", "store the run in this SQLite database")
	cmd.Flags().StringVar(&opts.Name, "name", "", "run name")

	return cmd
}

func runRiddles(opts *RiddlesOptions, cmd *cobra.Command) error {
	f := newFormatter(opts.RootOptions, cmd)

	p, err := opts.params()
	if err != nil {
		return f.Fail(ExitCommandError, "invalid build parameters", err)
	}

	gen := opts.IDGenerator
	if gen == nil {
		gen = riddle.UUIDv7Generator{}
	}
	run, err := riddle.NewRun(cmd.Context(), gen, opts.newEngine(), glyph.Standard(), opts.Name, p)
	if err != nil {
		return f.Fail(ExitFailure, "build failed", err)
	}

	if opts.Database != "" {
		if err := saveRun(opts.Database, cmd, run); err != nil {
			return f.Fail(ExitCommandError, "failed to store run", err)
		}
		f.VerboseLog("stored run %s in %s", run.ID, opts.Database)
	}

	if f.JSON() {
		return f.Success(run)
	}

	printMap(cmd, run.Map)
	fmt.Fprintf(cmd.OutOrStdout(), "\n%d riddle(s), %s, run %s\n", run.Map.Len(), p, run.ID)
	return nil
}

func saveRun(path string, cmd *cobra.Command, run *riddle.Run) error {
	st, err := store.Open(path)
	if err != nil {
		return err
	}
	defer st.Close()
	_, err = st.SaveRun(cmd.Context(), run)
	return err
}

func printMap(cmd *cobra.Command, m *riddle.Map) {
	w := cmd.OutOrStdout()
	for _, e := range m.Entries() {
		fmt.Fprintf(w, "%s  <-  %s\n", e.Riddle, strings.Join(e.Solutions, ", "))
	}
}
