package cli

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/rshade/launchdeck/internal/config"
	"github.com/rshade/launchdeck/internal/logging"
	"github.com/rshade/launchdeck/internal/spacex"
)

// logger is the package-level logger for CLI operations.
var logger = zerolog.Nop() //nolint:gochecknoglobals // Required for zerolog context integration

// rootFlags holds the persistent flags shared by every command.
type rootFlags struct {
	configPath string
	debug      bool
	apiURL     string
	timeout    time.Duration
}

// session is what PersistentPreRunE resolved for the running command.
type session struct {
	flags     rootFlags
	cfg       *config.Config
	logResult *logging.LogPathResult
}

// NewRootCmd creates the root Cobra command for the launchdeck CLI.
// Running it without a subcommand starts the interactive browser.
func NewRootCmd(ver string) *cobra.Command {
	s := &session{}

	cmd := &cobra.Command{
		Use:          "launchdeck",
		Short:        "Browse SpaceX launches in the terminal",
		Long:         "launchdeck: search, page through and inspect SpaceX launches",
		Version:      ver,
		Example:      rootCmdExample,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return s.setup(cmd)
		},
		PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
			return s.logResult.Close()
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runBrowse(cmd, s, false)
		},
	}

	cmd.PersistentFlags().StringVar(&s.flags.configPath, "config", "",
		"config file (default "+config.DefaultConfigPath()+")")
	cmd.PersistentFlags().BoolVar(&s.flags.debug, "debug", false, "enable debug logging to stderr")
	cmd.PersistentFlags().StringVar(&s.flags.apiURL, "api-url", spacex.DefaultBaseURL,
		"launches API base URL (overrides config file and env var)")
	cmd.PersistentFlags().DurationVar(&s.flags.timeout, "timeout", spacex.DefaultTimeout,
		"launches API request timeout (overrides config file and env var)")

	cmd.AddCommand(newBrowseCmd(s), newListCmd(s), newVersionCmd())

	return cmd
}

const rootCmdExample = `  # Browse launches interactively
  launchdeck

  # Print the first ten Falcon launches as a table
  launchdeck list --search falcon --limit 10

  # Page through all launches as JSON, newest flight first
  launchdeck list --page 2 --page-size 20 --sort flight:desc --output json

  # Use a local mirror of the API
  launchdeck --api-url http://localhost:8080 list`

// setup resolves configuration (defaults, file, env, then flags) and logging.
func (s *session) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(s.flags.configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// CLI flags override environment variables and config file
	if cmd.Flags().Changed("api-url") {
		cfg.API.BaseURL = s.flags.apiURL
	}
	if cmd.Flags().Changed("timeout") {
		cfg.API.Timeout = s.flags.timeout
	}

	if err = cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	s.cfg = cfg

	result := setupLogging(cmd, cfg.Logging, s.flags.debug)
	s.logResult = &result
	return nil
}

// newLoader builds the once-only launch loader for the resolved config.
func (s *session) newLoader() *spacex.Loader {
	clientLogger := logging.ComponentLogger(logger, "spacex")
	client := spacex.NewClient(s.cfg.API.BaseURL,
		spacex.WithTimeout(s.cfg.API.Timeout),
		spacex.WithLogger(clientLogger),
	)
	return spacex.NewLoader(client, clientLogger)
}
