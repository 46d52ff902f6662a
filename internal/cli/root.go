package cli

import (
	"fmt"
	"io"
	"log/slog"
	"slices"

	"github.com/spf13/cobra"

	"github.com/vahtras/matchstick/internal/engine"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose bool
	Format  string // "json" | "text"
	Workers int    // engine workers, 0 = GOMAXPROCS
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the matchstick CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "matchstick",
		Short: "Matchstick equation riddles",
		Long: `Explore seven-segment matchstick equations.

Move, remove or add matches in an expression, list the true equations of a
given size, and build riddles: false equations that one or two matches away
become true.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return NewExitError(ExitCommandError,
					fmt.Sprintf("invalid format %q: must be one of %v", opts.Format, ValidFormats))
			}
			if opts.Workers < 0 {
				return NewExitError(ExitCommandError, "--workers must not be negative")
			}
			setupLogging(cmd.ErrOrStderr(), opts.Verbose)
			return nil
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().IntVar(&opts.Workers, "workers", 0, "search workers (0 = one per CPU)")

	cmd.AddCommand(NewShowCommand(opts))
	cmd.AddCommand(NewMovesCommand(opts))
	cmd.AddCommand(NewEquationsCommand(opts))
	cmd.AddCommand(NewRiddlesCommand(opts))
	cmd.AddCommand(NewGenerateCommand(opts))
	cmd.AddCommand(NewRunsCommand(opts))
	cmd.AddCommand(NewLookupCommand(opts))
	cmd.AddCommand(NewPackCommand(opts))
	cmd.AddCommand(NewCheckCommand(opts))

	return cmd
}

// setupLogging routes slog output to w, at Debug level when verbose.
func setupLogging(w io.Writer, verbose bool) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})))
}

func isValidFormat(format string) bool {
	return slices.Contains(ValidFormats, format)
}

// newEngine builds an engine honouring --workers.
func (o *RootOptions) newEngine() *engine.Engine {
	if o.Workers > 0 {
		return engine.New(engine.WithWorkers(o.Workers))
	}
	return engine.New()
}
