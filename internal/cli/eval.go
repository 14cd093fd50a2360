package cli

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/c2nes/reltime"
)

// InstantOutput is the evaluate payload. The text form matches the JSON
// fields one per line.
type InstantOutput struct {
	Output     string `json:"output"`
	Local      string `json:"local"`
	UTC        string `json:"utc"`
	Unix       int64  `json:"unix"`
	UnixMillis int64  `json:"unix_millis"`
	UnixMicros int64  `json:"unix_micros"`
	UnixNanos  int64  `json:"unix_nanos"`
}

func newInstantOutput(t time.Time, layout string, loc *time.Location) InstantOutput {
	return InstantOutput{
		Output:     t.UTC().Format(layout),
		Local:      t.In(loc).Format(layout),
		UTC:        t.UTC().Format(time.RFC3339Nano),
		Unix:       t.Unix(),
		UnixMillis: t.UnixMilli(),
		UnixMicros: t.UnixMicro(),
		UnixNanos:  t.UnixNano(),
	}
}

func (o InstantOutput) String() string {
	return fmt.Sprintf("%s\n%s\n%s\ns\t%d\nms\t%d\nµs\t%d\nns\t%d",
		o.Output, o.Local, o.UTC, o.Unix, o.UnixMillis, o.UnixMicros, o.UnixNanos)
}

// UntilOutput is the --until payload.
type UntilOutput struct {
	Until      string `json:"until"`
	UntilNanos int64  `json:"until_nanos"`
}

func (o UntilOutput) String() string {
	return o.Until
}

// ExpressionErrorDetails is attached to JSON error output for rejected
// expressions.
type ExpressionErrorDetails struct {
	Expression string `json:"expression"`
	Position   int    `json:"position"`
}

func runEval(opts *RootOptions, env Env, until bool, cmd *cobra.Command, args []string) error {
	formatter := newFormatter(cmd, opts)

	expr := reltime.Now.Token()
	if len(args) > 0 {
		expr = strings.Join(args, " ")
	}

	now := env.Clock.Now()
	parser := reltime.New(
		reltime.WithClock(reltime.FixedClock(now)),
		reltime.WithLogger(opts.logger),
	)
	t, err := parser.Parse(expr)
	if err != nil {
		return reportExpressionError(formatter, err)
	}

	if until {
		d := t.Sub(now)
		return formatter.Success(UntilOutput{Until: d.String(), UntilNanos: int64(d)})
	}
	return formatter.Success(newInstantOutput(t, opts.Layout, env.Location))
}

func reportExpressionError(f *OutputFormatter, err error) error {
	code := ErrCodeGeneric
	if errors.Is(err, reltime.ErrInvalidExpression) {
		code = ErrCodeInvalidExpression
	}
	var details any
	var syntaxErr *reltime.SyntaxError
	if errors.As(err, &syntaxErr) {
		details = ExpressionErrorDetails{Expression: syntaxErr.Expr, Position: syntaxErr.Pos}
	}
	if outErr := f.Error(code, err.Error(), details); outErr != nil {
		return outErr
	}
	return WrapExitError(ExitFailure, "invalid expression", err)
}
