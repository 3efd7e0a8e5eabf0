package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/c0pp3rdru1d/C02-Monitor/internal/config"
	"github.com/c0pp3rdru1d/C02-Monitor/internal/logging"
	"github.com/c0pp3rdru1d/C02-Monitor/pkg/version"
)

// logToFile records whether the active logger writes to a file. The
// dashboard only logs when it does, so log lines never land on the screen.
var logToFile bool //nolint:gochecknoglobals // Set once per invocation in setupLogging

// setupLogging configures logging from the config file, environment and
// the --debug flag, and attaches the logger and a trace ID to the command
// context.
func setupLogging(cmd *cobra.Command, debug bool) logging.LogPathResult {
	loggingCfg := config.GetLoggingConfig()

	if debug {
		loggingCfg.Level = "debug"
		loggingCfg.Format = "console"
		loggingCfg.File = ""
	}

	// Ensure log directory exists after all overrides have been applied.
	if loggingCfg.File != "" {
		if err := config.EnsureLogDir(); err != nil {
			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Warning: could not create log directory: %v\n", err)
		}
	}

	result := logging.NewLoggerWithPath(loggingCfg.ToLoggingConfig())
	logger = logging.ComponentLogger(result.Logger, "cli")
	logToFile = result.UsingFile

	if result.UsingFile {
		logging.PrintLogPathMessage(cmd.ErrOrStderr(), result.FilePath)
	} else if result.FallbackUsed {
		logging.PrintFallbackWarning(cmd.ErrOrStderr(), result.FallbackReason)
	}

	ctx := cmd.Context()
	traceID := logging.GetOrGenerateTraceID(ctx)
	ctx = logging.ContextWithTraceID(ctx, traceID)
	ctx = logger.WithContext(ctx)
	cmd.SetContext(ctx)

	logger.Debug().Ctx(ctx).
		Str("command", cmd.Name()).
		Str("version", version.GetVersion()).
		Bool("dev_build", version.IsDefault()).
		Msg("command started")

	return result
}

// closeLogs closes the log file handle, if any. It is safe to call twice.
func (s *rootState) closeLogs() error {
	if s.logResult == nil {
		return nil
	}
	err := s.logResult.Close()
	s.logResult = nil
	return err
}
