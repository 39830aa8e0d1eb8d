package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/specialistvlad/surveynav/internal/app"
	"github.com/specialistvlad/surveynav/internal/navigator"
)

// Exit codes returned through ExitError.
const (
	ExitUsage    = 2
	ExitNotFound = 3
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

func usageError(format string, args ...any) error {
	return &ExitError{Code: ExitUsage, Message: fmt.Sprintf(format, args...)}
}

// rootOptions holds the values of the persistent flags.
type rootOptions struct {
	schemaPath   string
	snapshotPath string
	logFormat    string
	logLevel     string
	maxRepeats   int

	loader app.SchemaLoader
}

// NewRootCommand builds the surveynav command tree. Schemas are read with
// loader.
func NewRootCommand(loader app.SchemaLoader) *cobra.Command {
	opts := &rootOptions{loader: loader}

	cmd := &cobra.Command{
		Use:   "surveynav",
		Short: "Inspect how a survey schema routes a respondent",
		Long: `surveynav loads an HCL survey schema and an optional YAML snapshot of a
respondent's answers, metadata and progress, then reports the path the
respondent would follow through the survey.

Locations are written as group/instance/block, for example people/1/age.
Questionnaire URLs are accepted wherever a location is expected.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError("%s", err)
	})

	flags := cmd.PersistentFlags()
	flags.StringVarP(&opts.schemaPath, "schema", "s", "", "Path to a schema .hcl file or a directory of them.")
	flags.StringVar(&opts.snapshotPath, "snapshot", "", "Path to a YAML respondent snapshot. Empty means no answers.")
	flags.StringVar(&opts.logFormat, "log-format", "text", "Log output format. Options: 'text' or 'json'.")
	flags.StringVar(&opts.logLevel, "log-level", "warn", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	flags.IntVar(&opts.maxRepeats, "max-repeats", 50, "Upper bound on the instances of a repeating group.")

	cmd.AddCommand(
		newPathCommand(opts),
		newStepCommand(opts, stepNext),
		newStepCommand(opts, stepPrevious),
		newNavCommand(opts),
		newHubCommand(opts),
	)
	return cmd
}

// Execute runs the command tree with args. Output goes to outW, logs and
// help for failed invocations to errW.
func Execute(ctx context.Context, args []string, outW, errW io.Writer, loader app.SchemaLoader) error {
	slog.Debug("CLI started.", "args", args)
	cmd := NewRootCommand(loader)
	cmd.SetArgs(args)
	cmd.SetOut(outW)
	cmd.SetErr(errW)
	return cmd.ExecuteContext(ctx)
}

// newApp validates the persistent flags and loads the schema and snapshot.
func (o *rootOptions) newApp(cmd *cobra.Command) (*app.App, error) {
	cfg, err := app.NewConfig(app.Config{
		SchemaPath:         o.schemaPath,
		SnapshotPath:       o.snapshotPath,
		LogFormat:          o.logFormat,
		LogLevel:           o.logLevel,
		MaxRepeatInstances: o.maxRepeats,
	})
	if err != nil {
		return nil, usageError("%s", err)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return app.NewApp(ctx, cmd.ErrOrStderr(), cfg, o.loader)
}

// exactArgs is cobra.ExactArgs reporting a usage exit code.
func exactArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := cobra.ExactArgs(n)(cmd, args); err != nil {
			return usageError("%s", err)
		}
		return nil
	}
}

// engineError maps engine errors to exit codes.
func engineError(err error) error {
	if errors.Is(err, navigator.ErrLocationNotFound) {
		return &ExitError{Code: ExitNotFound, Message: err.Error()}
	}
	return err
}
