package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/c2nes/reltime"
)

type ExplainOutput struct {
	Expression string          `json:"expression"`
	Modifier   string          `json:"modifier"`
	Offsets    []ExplainOffset `json:"offsets"`
	Snap       string          `json:"snap,omitempty"`
}

type ExplainOffset struct {
	Magnitude int    `json:"magnitude"`
	Unit      string `json:"unit"`
}

func newExplainOutput(e reltime.Expression) ExplainOutput {
	out := ExplainOutput{
		Expression: e.String(),
		Modifier:   e.Modifier.String(),
		Offsets:    make([]ExplainOffset, 0, len(e.Offsets)),
	}
	for _, o := range e.Offsets {
		out.Offsets = append(out.Offsets, ExplainOffset{Magnitude: o.Magnitude, Unit: o.Unit.String()})
	}
	if e.Snapped() {
		out.Snap = e.Snap.String()
	}
	return out
}

func (o ExplainOutput) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "expression\t%s\n", o.Expression)
	fmt.Fprintf(&b, "modifier\t%s", o.Modifier)
	for _, off := range o.Offsets {
		fmt.Fprintf(&b, "\noffset\t%+d %s", off.Magnitude, off.Unit)
	}
	if o.Snap != "" {
		fmt.Fprintf(&b, "\nsnap\t%s", o.Snap)
	}
	return b.String()
}

// NewExplainCommand creates the explain command, which shows how an
// expression decomposes without evaluating it.
func NewExplainCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "explain <expression...>",
		Short:         "Show the modifier, offsets and snap of an expression",
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := newFormatter(cmd, rootOpts)
			e, err := reltime.Compile(strings.Join(args, " "))
			if err != nil {
				return reportExpressionError(formatter, err)
			}
			return formatter.Success(newExplainOutput(e))
		},
	}
	cmd.Flags().SetInterspersed(false)
	return cmd
}
