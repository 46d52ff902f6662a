package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vahtras/matchstick/internal/archive"
	"github.com/vahtras/matchstick/internal/glyph"
	"github.com/vahtras/matchstick/internal/render"
	"github.com/vahtras/matchstick/internal/riddle"
)

// PackOptions holds flags for the pack command.
type PackOptions struct {
	*RootOptions
	BuildFlags
	Output string
	Scale  int
}

// NewPackCommand creates the pack command.
func NewPackCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &PackOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "pack",
		Short: "Write riddle images to a zip archive",
		Long: `Build riddles and write them as PNG images to a zip archive.

Each equation image is stored once under equations/. Every riddle has
its own directory with riddle.png and a solutions/ folder of symlinks
into equations/.

Examples:
  matchstick pack --shape 2 -o pairs.zip
  matchstick pack --shape 3 --arity 1 --scale 4 -o sums.zip`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPack(opts, cmd)
		},
	}

	opts.BuildFlags.register(cmd)
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "archive path (required)")
	_ = cmd.MarkFlagRequired("output")
	cmd.Flags().IntVar(&opts.Scale, "scale", 8, "pixels per match width")

	return cmd
}

func runPack(opts *PackOptions, cmd *cobra.Command) error {
	f := newFormatter(opts.RootOptions, cmd)

	p, err := opts.params()
	if err != nil {
		return f.Fail(ExitCommandError, "invalid build parameters", err)
	}

	m, err := riddle.Build(cmd.Context(), opts.newEngine(), glyph.Standard(), p)
	if err != nil {
		return f.Fail(ExitFailure, "build failed", err)
	}

	stats, err := writeArchive(opts.Output, m, render.Options{Scale: opts.Scale})
	if err != nil {
		return f.Fail(ExitCommandError, "failed to write archive", err)
	}

	if f.JSON() {
		return f.Success(map[string]any{
			"archive":   opts.Output,
			"equations": stats.Equations,
			"riddles":   stats.Riddles,
			"links":     stats.Links,
		})
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s: %d riddle(s), %d equation image(s)\n",
		opts.Output, stats.Riddles, stats.Equations)
	return nil
}

// writeArchive writes m to path, removing the partial file on failure.
func writeArchive(path string, m *riddle.Map, ro render.Options) (archive.Stats, error) {
	file, err := os.Create(path)
	if err != nil {
		return archive.Stats{}, err
	}
	stats, err := archive.Write(file, glyph.Standard(), m, archive.PNG(ro))
	if cerr := file.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(path)
		return archive.Stats{}, err
	}
	return stats, nil
}
