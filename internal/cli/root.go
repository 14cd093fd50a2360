package cli

import (
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/spf13/cobra"

	"github.com/c2nes/reltime"
	"github.com/c2nes/reltime/internal/config"
	"github.com/c2nes/reltime/internal/logging"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Format     string // "json" | "text"
	Layout     string
	Verbose    bool
	LogFormat  string
	ConfigPath string

	logger *slog.Logger
}

// Env is what the commands read from the outside world.
type Env struct {
	Clock    reltime.Clock
	Location *time.Location // display zone for the local line
}

func DefaultEnv() Env {
	return Env{Clock: reltime.SystemClock{}, Location: time.Local}
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the reltime command. Without a subcommand the
// arguments are joined into one expression and evaluated.
func NewRootCommand(env Env) *cobra.Command {
	opts := &RootOptions{}
	defaults := config.Default()
	var until bool

	cmd := &cobra.Command{
		Use:   "reltime [expression...]",
		Short: "Resolve relative time expressions",
		Long: `Resolve a relative time expression such as "now()-1d@d" to an instant.

An expression is now() followed by any number of offsets (+5d, -1mon) and an
optional trailing snap (@s, @m, @h, @d, @mon, @y). Whitespace is ignored, so
the expression may be split across arguments. With no arguments, now() is used.`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setup(cmd, opts)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEval(opts, env, until, cmd, args)
		},
	}
	// Everything after the first argument is expression text, so "-1d" is
	// not mistaken for a flag.
	cmd.Flags().SetInterspersed(false)

	cmd.PersistentFlags().StringVar(&opts.Format, "format", defaults.Format, "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.Layout, "layout", defaults.Layout, "Go time layout for the formatted output lines")
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "debug logging on stderr")
	cmd.PersistentFlags().StringVar(&opts.LogFormat, "log-format", defaults.LogFormat, "log format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", "", "YAML config file (default $"+config.EnvPath+")")
	cmd.Flags().BoolVar(&until, "until", false, "print the time until (or since) the resolved instant")

	cmd.AddCommand(NewExplainCommand(opts))

	return cmd
}

// setup merges the config file under explicitly set flags and builds the
// logger.
func setup(cmd *cobra.Command, opts *RootOptions) error {
	if err := applyConfig(cmd, opts); err != nil {
		return reportSetupError(cmd, opts, err)
	}
	if !slices.Contains(ValidFormats, opts.Format) {
		err := fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
		return reportSetupError(cmd, opts, err)
	}
	logFormat, err := logging.ParseFormat(opts.LogFormat)
	if err != nil {
		return reportSetupError(cmd, opts, err)
	}
	opts.logger = logging.New(cmd.ErrOrStderr(), logFormat, opts.Verbose)
	return nil
}

func applyConfig(cmd *cobra.Command, opts *RootOptions) error {
	cfg, err := config.Load(config.Path(opts.ConfigPath))
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if !flags.Changed("format") {
		opts.Format = cfg.Format
	}
	if !flags.Changed("layout") {
		opts.Layout = cfg.Layout
	}
	if !flags.Changed("verbose") {
		opts.Verbose = cfg.Verbose
	}
	if !flags.Changed("log-format") {
		opts.LogFormat = cfg.LogFormat
	}
	return nil
}

func reportSetupError(cmd *cobra.Command, opts *RootOptions, err error) error {
	f := newFormatter(cmd, opts)
	if !slices.Contains(ValidFormats, f.Format) {
		f.Format = "text"
	}
	if outErr := f.Error(ErrCodeConfig, err.Error(), nil); outErr != nil {
		return outErr
	}
	return WrapExitError(ExitCommandError, "setup failed", err)
}

func newFormatter(cmd *cobra.Command, opts *RootOptions) *OutputFormatter {
	return &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
	}
}
