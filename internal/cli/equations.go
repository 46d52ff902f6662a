package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vahtras/matchstick/internal/glyph"
	"github.com/vahtras/matchstick/internal/riddle"
)

// EquationsResult is the JSON payload of the equations command.
type EquationsResult struct {
	Shape     int      `json:"shape"`
	Count     int      `json:"count"`
	Equations []string `json:"equations"`
}

// NewEquationsCommand creates the equations command.
func NewEquationsCommand(rootOpts *RootOptions) *cobra.Command {
	var shape int

	cmd := &cobra.Command{
		Use:   "equations",
		Short: "List the true equations of a shape",
		Long: `List every true single-digit equation with the given number of digits.

Shapes:
  2 - a = b
  3 - a + b = c, a - b = c, a = b + c, a = b - c
  4 - three operands on one side of "=", one on the other

Examples:
  matchstick equations --shape 2
  matchstick equations --shape 3 --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := newFormatter(rootOpts, cmd)
			eqs, err := riddle.Equations(glyph.Standard(), shape)
			if err != nil {
				return f.Fail(ExitCommandError, "invalid --shape", err)
			}
			if f.JSON() {
				return f.Success(EquationsResult{Shape: shape, Count: len(eqs), Equations: eqs})
			}
			w := cmd.OutOrStdout()
			for _, eq := range eqs {
				fmt.Fprintln(w, eq)
			}
			f.VerboseLog("%d equation(s)", len(eqs))
			return nil
		},
	}

	cmd.Flags().IntVar(&shape, "shape", 2, "number of digits (2-4)")

	return cmd
}
