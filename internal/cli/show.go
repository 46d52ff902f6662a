package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vahtras/matchstick/internal/expr"
	"github.com/vahtras/matchstick/internal/glyph"
	"github.com/vahtras/matchstick/internal/render"
)

// TokenView is the JSON form of one token.
type TokenView struct {
	Value    string `json:"value"`
	Family   string `json:"family"`
	Segments []int  `json:"segments"`
	Valid    bool   `json:"valid"`
}

// ShowResult is the JSON payload of the show command.
type ShowResult struct {
	Expression string      `json:"expression"`
	Key        string      `json:"key"`
	Matches    int         `json:"matches"`
	Tokens     []TokenView `json:"tokens"`
	Class      expr.Class  `json:"class"`
}

// NewShowCommand creates the show command.
func NewShowCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show <expression>",
		Short: "Draw an expression in matches",
		Long: `Draw an expression as matchstick art and classify it.

Heavy strokes are matches, light strokes the empty digit positions.

Examples:
  matchstick show "1 + 2 = 3"
  matchstick show 7=1
  matchstick show 8 --format json`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShow(rootOpts, cmd, strings.Join(args, " "))
		},
	}
}

func runShow(opts *RootOptions, cmd *cobra.Command, input string) error {
	f := newFormatter(opts, cmd)

	e, err := expr.Scan(glyph.Standard(), input)
	if err != nil {
		return f.Fail(ExitCommandError, "invalid expression", err)
	}
	class := expr.Classify(e)

	if f.JSON() {
		tokens := make([]TokenView, len(e))
		for i, t := range e {
			tokens[i] = TokenView{
				Value:    t.String(),
				Family:   t.Family().String(),
				Segments: t.Segments().Positions(),
				Valid:    t.Valid(),
			}
		}
		return f.Success(ShowResult{
			Expression: e.String(),
			Key:        e.Key(),
			Matches:    e.Matches(),
			Tokens:     tokens,
			Class:      class,
		})
	}

	w := cmd.OutOrStdout()
	fmt.Fprint(w, render.Text(e))
	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s  (%d matches)\n", e, e.Matches())
	fmt.Fprintf(w, "valid: %t  equation: %t  holds: %t  riddle: %t\n",
		class.Valid, class.Equation, class.Holds, class.Riddle)
	return nil
}
