package cli

import (
	"github.com/spf13/cobra"

	"github.com/rshade/launchdeck/internal/config"
	"github.com/rshade/launchdeck/internal/logging"
)

// loggerConfig resolves the logger settings. --debug sends console output
// with caller locations to stderr; otherwise entries go to the log file so the
// full-screen browser is not disturbed.
func loggerConfig(loggingCfg config.LoggingConfig, debug bool) logging.Config {
	if !debug {
		return loggingCfg.ToLoggingConfig()
	}

	loggingCfg.Level = "debug"
	loggingCfg.Format = logging.FormatConsole
	loggingCfg.File = ""
	cfg := loggingCfg.ToLoggingConfig()
	cfg.Caller = true
	return cfg
}

// setupLogging builds the root logger from the resolved logging config and the
// --debug flag, then stores it with a trace ID in the command context.
func setupLogging(cmd *cobra.Command, loggingCfg config.LoggingConfig, debug bool) logging.LogPathResult {
	result := logging.NewLoggerWithPath(loggerConfig(loggingCfg, debug))
	logger = logging.ComponentLogger(result.Logger, "cli")

	if result.FallbackUsed {
		logging.PrintFallbackWarning(cmd.ErrOrStderr(), result.FallbackReason)
	}

	ctx := cmd.Context()
	traceID := logging.GetOrGenerateTraceID(ctx)
	ctx = logging.ContextWithTraceID(ctx, traceID)
	ctx = logger.WithContext(ctx)
	cmd.SetContext(ctx)

	logging.FromContext(ctx).Info().
		Str("command", cmd.Name()).
		Str("log_file", result.FilePath).
		Msg("command started")

	return result
}
