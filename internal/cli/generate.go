package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/vahtras/matchstick/internal/config"
	"github.com/vahtras/matchstick/internal/engine"
	"github.com/vahtras/matchstick/internal/glyph"
	"github.com/vahtras/matchstick/internal/render"
	"github.com/vahtras/matchstick/internal/riddle"
	"github.com/vahtras/matchstick/internal/store"
)

// GenerateOptions holds flags for the generate command.
type GenerateOptions struct {
	*RootOptions
	Config   string
	Database string // overrides the config
	Archive  string // overrides the config

	// IDGenerator allows overriding the run ID generator (for testing).
	IDGenerator riddle.RunIDGenerator
}

// GeneratedRun summarises one configured run.
type GeneratedRun struct {
	ID       string        `json:"id"`
	Name     string        `json:"name,omitempty"`
	Params   riddle.Params `json:"params"`
	Riddles  int           `json:"riddles"`
	Digest   string        `json:"digest"`
	Inserted bool          `json:"inserted"`
}

// GenerateResult is the JSON payload of the generate command.
type GenerateResult struct {
	Database string         `json:"database"`
	Archive  string         `json:"archive,omitempty"`
	Runs     []GeneratedRun `json:"runs"`
}

// NewGenerateCommand creates the generate command.
func NewGenerateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &GenerateOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Build every configured riddle run",
		Long: `Build the riddle runs listed in a YAML configuration, store them in
SQLite and optionally write one archive with the riddles of all runs.

Without --config, two runs are built: single moves on shapes 2 and 3.

Configuration:
  database: riddles.db
  workers: 4
  archive: riddles.zip
  runs:
    - {name: pairs, shape: 2, arity: 1}
    - {name: hard, shape: 3, arity: 2, kind: move}

Examples:
  matchstick generate
  matchstick generate --config matchstick.yaml
  matchstick generate --config matchstick.yaml --db /tmp/r.db --archive out.zip`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(opts, cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Config, "config", "c", "", "YAML configuration file")
	cmd.Flags().StringVar(&opts.Database, "db", "", "SQLite database (overrides the config)")
	cmd.Flags().StringVar(&opts.Archive, "archive", "", "archive path (overrides the config)")

	return cmd
}

func runGenerate(opts *GenerateOptions, cmd *cobra.Command) error {
	f := newFormatter(opts.RootOptions, cmd)
	ctx := cmd.Context()

	cfg := config.Default()
	if opts.Config != "" {
		loaded, err := config.Load(opts.Config)
		if err != nil {
			return f.Fail(ExitCommandError, "failed to load config", err)
		}
		cfg = loaded
	}
	if opts.Database != "" {
		cfg.Database = opts.Database
	}
	if opts.Archive != "" {
		cfg.Archive = opts.Archive
	}

	workers := cfg.Workers
	if opts.Workers > 0 {
		workers = opts.Workers
	}
	eng := engine.New()
	if workers > 0 {
		eng = engine.New(engine.WithWorkers(workers))
	}
	gen := opts.IDGenerator
	if gen == nil {
		gen = riddle.UUIDv7Generator{}
	}

	st, err := store.Open(cfg.Database)
	if err != nil {
		return f.Fail(ExitCommandError, "failed to open database", err)
	}
	defer func() {
		if closeErr := st.Close(); closeErr != nil {
			slog.Error("error closing database", "error", closeErr)
		}
	}()

	result := GenerateResult{Database: cfg.Database, Archive: cfg.Archive, Runs: []GeneratedRun{}}
	all := riddle.NewMap()
	for _, rc := range cfg.Runs {
		p, err := rc.Params()
		if err != nil {
			return f.Fail(ExitCommandError, "invalid run", err)
		}
		run, err := riddle.NewRun(ctx, gen, eng, glyph.Standard(), rc.Name, p)
		if err != nil {
			return f.Fail(ExitFailure, fmt.Sprintf("run %s failed", p), err)
		}
		inserted, err := st.SaveRun(ctx, run)
		if err != nil {
			return f.Fail(ExitCommandError, "failed to store run", err)
		}
		all.Merge(run.Map)

		result.Runs = append(result.Runs, GeneratedRun{
			ID:       run.ID,
			Name:     run.Name,
			Params:   run.Params,
			Riddles:  run.Map.Len(),
			Digest:   run.Digest,
			Inserted: inserted,
		})
		if !f.JSON() {
			label := run.Name
			if label == "" {
				label = p.String()
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ %s: %d riddle(s) (run %s)\n", label, run.Map.Len(), run.ID)
		}
	}

	if cfg.Archive != "" {
		stats, err := writeArchive(cfg.Archive, all, render.Options{})
		if err != nil {
			return f.Fail(ExitCommandError, "failed to write archive", err)
		}
		f.VerboseLog("archive %s: %d riddle(s), %d link(s)", cfg.Archive, stats.Riddles, stats.Links)
	}

	if f.JSON() {
		return f.Success(result)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "\n%d run(s) stored in %s\n", len(result.Runs), cfg.Database)
	if cfg.Archive != "" {
		fmt.Fprintf(cmd.OutOrStdout(), "Archive written to %s\n", cfg.Archive)
	}
	return nil
}
