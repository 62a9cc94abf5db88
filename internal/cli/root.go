package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/macropower/needs/api"
	"github.com/macropower/needs/pkg/log"
	"github.com/macropower/needs/pkg/version"
)

const (
	cmdName = "needs"
	cmdDesc = `Manage minimum needs profiles for disaster impact assessments.`

	cmdExamples = `  # List the available profiles, seeding the bundled ones on first run:
  needs list

  # Show the active profile and its parameters:
  needs show

  # Activate a profile and persist it to the settings file:
  needs use BNPB_id

  # Copy the active profile to a new profile file:
  needs save my-district

  # Compare two profiles:
  needs diff BNPB_en my-district`
)

type RootArgs struct {
	shutdownTracing func(context.Context) error

	LogLevel     string
	LogFormat    string
	Root         string
	Locale       string
	OTLPEndpoint string
}

func NewRootArgs() *RootArgs {
	return &RootArgs{}
}

func (ra *RootArgs) AddFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().
		StringVar(&ra.LogLevel, "log-level", "info", fmt.Sprintf("Log level, one of: %s", log.AllLevels))
	cmd.PersistentFlags().
		StringVar(&ra.LogFormat, "log-format", "text", fmt.Sprintf("Log format, one of: %s", log.AllFormats))
	cmd.PersistentFlags().
		StringVar(&ra.Root, "root", "", "Root directory for settings and profiles (default is the user config directory)")
	cmd.PersistentFlags().
		StringVar(&ra.Locale, "locale", "", "Locale used to order profiles, e.g. id_ID (default is the stored or system locale)")
	cmd.PersistentFlags().
		StringVar(&ra.OTLPEndpoint, "otlp-endpoint", "", "OTLP gRPC endpoint URL to export traces to")

	var err error

	err = cmd.RegisterFlagCompletionFunc("log-format",
		cobra.FixedCompletions(log.AllFormats, cobra.ShellCompDirectiveNoFileComp),
	)
	if err != nil {
		panic(err)
	}

	err = cmd.RegisterFlagCompletionFunc("log-level",
		cobra.FixedCompletions(log.AllLevels, cobra.ShellCompDirectiveNoFileComp),
	)
	if err != nil {
		panic(err)
	}

	err = cmd.MarkPersistentFlagDirname("root")
	if err != nil {
		panic(fmt.Errorf("mark root flag: %w", err))
	}
}

// settingsDir is the host settings directory: the --root flag, else the
// user config directory.
func (ra *RootArgs) settingsDir() (string, error) {
	if ra.Root != "" {
		return ra.Root, nil
	}

	return api.GetConfigDir(), nil
}

func NewRootCmd() *cobra.Command {
	args := NewRootArgs()

	cmd := &cobra.Command{
		Use:                cmdName,
		Short:              cmdDesc,
		Example:            cmdExamples,
		SilenceUsage:       true,
		PersistentPreRunE:  setup(args),
		PersistentPostRunE: teardown(args),
	}

	args.AddFlags(cmd)

	cmd.AddCommand(
		NewListCmd(args),
		NewShowCmd(args),
		NewUseCmd(args),
		NewSaveCmd(args),
		NewRemoveCmd(args),
		NewDiffCmd(args),
		NewSentenceCmd(args),
	)

	bindEnvVars(cmd)

	return cmd
}

func setup(ra *RootArgs) func(cmd *cobra.Command, _ []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		logHandler, err := log.Options{
			Writer: cmd.ErrOrStderr(),
			Level:  ra.LogLevel,
			Format: ra.LogFormat,
		}.Handler()
		if err != nil {
			return fmt.Errorf("create log handler: %w", err)
		}

		logger := slog.New(logHandler)
		slog.SetDefault(logger)
		cmd.SetContext(log.NewContext(cmd.Context(), logger))

		logger.Debug("starting", slog.String("version", version.Summary()))

		ra.shutdownTracing, err = setupTracing(cmd.Context(), ra.OTLPEndpoint)
		if err != nil {
			return fmt.Errorf("setup tracing: %w", err)
		}

		return nil
	}
}

func teardown(ra *RootArgs) func(cmd *cobra.Command, _ []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		if ra.shutdownTracing == nil {
			return nil
		}

		err := ra.shutdownTracing(cmd.Context())
		if err != nil {
			return fmt.Errorf("shutdown tracing: %w", err)
		}

		return nil
	}
}
