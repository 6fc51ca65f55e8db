package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/dshills/coderev/internal/config"
	"github.com/dshills/coderev/internal/logger"
	"github.com/dshills/coderev/internal/providers"
)

const version = "1.0.0"

// Exit codes
const (
	ExitSuccess      = 0
	ExitFallback     = 1
	ExitUsageError   = 2
	ExitAuthError    = 3
	ExitRuntimeError = 4
)

var (
	flagLogLevel  string
	flagLogFormat string
)

var rootCmd = &cobra.Command{
	Use:   "coderev",
	Short: "Empathetic code review assistant",
	Long: "CodeRev rewrites blunt code review comments into supportive, educational feedback " +
		"using an LLM provider, and exports the result as text, JSON or Markdown.",
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&flagLogFormat, "log-format", "", "Log format (text, json)")

	rootCmd.AddCommand(reviewCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(modelsCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(versionCmd)
}

// Run executes the root command with the process arguments and returns an
// exit code.
func Run() int {
	return Execute(os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
}

// Execute runs the command tree with explicit arguments and streams.
func Execute(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	exitCode = ExitSuccess
	rootCmd.SetArgs(args)
	rootCmd.SetIn(stdin)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	if err := rootCmd.Execute(); err != nil {
		// Cobra already prints the error
		return ExitUsageError
	}

	return exitCode
}

// exitCode is set by command handlers to control the process exit code.
var exitCode = ExitSuccess

// providerExitCode maps a provider construction failure to an exit code. An
// unknown name is a usage error; anything else is missing credentials.
func providerExitCode(err error) int {
	if errors.Is(err, providers.ErrUnknownProvider) {
		return ExitUsageError
	}
	return ExitAuthError
}

// newLogger builds the command logger on stderr from the effective config.
func newLogger(cmd *cobra.Command, cfg config.Config) *slog.Logger {
	return logger.NewLogger(logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
	}, cmd.ErrOrStderr())
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print coderev version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "coderev version %s\n", version)
	},
}
