package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dshills/coderev/internal/config"
	"github.com/dshills/coderev/internal/output"
	"github.com/dshills/coderev/internal/providers"
	"github.com/dshills/coderev/internal/review"
)

// Shared review flags
var (
	flagFile           string
	flagComments       []string
	flagCommentsFile   string
	flagLang           string
	flagSample         bool
	flagProvider       string
	flagModel          string
	flagFormat         string
	flagOut            string
	flagConcurrency    int
	flagNoRedact       bool
	flagFailOnFallback bool
)

var reviewCmd = &cobra.Command{
	Use:   "review",
	Short: "Rewrite review comments as empathetic feedback",
	Long: `Review reads a code snippet from --file or stdin and one or more review
comments, asks the configured LLM provider for a supportive rephrasing of each
comment, and prints the report.

Examples:
  coderev review --sample --provider offline
  coderev review --file users.py -c "This is inefficient." -c "Bad name."
  cat main.go | coderev review --comments-file comments.txt --format markdown --out .`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		runReview(cmd)
	},
}

func init() {
	f := reviewCmd.Flags()
	f.StringVarP(&flagFile, "file", "f", "", "Code snippet file (default: stdin)")
	f.StringArrayVarP(&flagComments, "comment", "c", nil, "Review comment (repeatable)")
	f.StringVar(&flagCommentsFile, "comments-file", "", "File with one review comment per line")
	f.StringVar(&flagLang, "lang", "", "Snippet language or auto-detect (python, javascript, java, cpp, c, go, rust, php)")
	f.BoolVar(&flagSample, "sample", false, "Use the built-in sample snippet and comments")
	f.StringVar(&flagProvider, "provider", "", "LLM provider (groq, openai, anthropic, gemini, ollama, offline)")
	f.StringVar(&flagModel, "model", "", "Model name")
	f.StringVar(&flagFormat, "format", "", "Output format (text, json, markdown)")
	f.StringVarP(&flagOut, "out", "o", "", "Output file or directory (default: stdout)")
	f.IntVar(&flagConcurrency, "concurrency", 0, "Number of comments processed in parallel")
	f.BoolVar(&flagNoRedact, "no-redact", false, "Disable secret redaction (use with caution)")
	f.BoolVar(&flagFailOnFallback, "fail-on-fallback", false, "Exit 1 if any fallback feedback was used")
}

func buildOverrides() map[string]string {
	m := make(map[string]string)
	if flagProvider != "" {
		m["provider"] = flagProvider
	}
	if flagModel != "" {
		m["model"] = flagModel
	}
	if flagFormat != "" {
		m["format"] = flagFormat
	}
	if flagLang != "" {
		m["language"] = flagLang
	}
	if flagConcurrency > 0 {
		m["concurrency"] = strconv.Itoa(flagConcurrency)
	}
	if flagLogLevel != "" {
		m["log.level"] = flagLogLevel
	}
	if flagLogFormat != "" {
		m["log.format"] = flagLogFormat
	}
	return m
}

// buildRequest gathers the snippet and comments from flags, files or stdin.
func buildRequest(stdin io.Reader, cfg config.Config) (review.Request, error) {
	req := review.Request{LanguageHint: cfg.Language}

	if flagSample {
		req.Snippet = sampleSnippet
		req.Comments = append([]string(nil), sampleComments...)
	}

	switch {
	case flagFile != "":
		data, err := os.ReadFile(flagFile)
		if err != nil {
			return review.Request{}, fmt.Errorf("reading snippet: %w", err)
		}
		req.Snippet = string(data)
	case !flagSample:
		data, err := io.ReadAll(stdin)
		if err != nil {
			return review.Request{}, fmt.Errorf("reading snippet from stdin: %w", err)
		}
		req.Snippet = string(data)
	}

	var comments []string
	if flagCommentsFile != "" {
		fromFile, err := readLines(flagCommentsFile)
		if err != nil {
			return review.Request{}, err
		}
		comments = append(comments, fromFile...)
	}
	comments = append(comments, flagComments...)
	if len(comments) > 0 {
		req.Comments = comments
	}

	return req, nil
}

func readLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("reading comments: %w", err)
	}
	defer f.Close()

	var lines []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		if line := strings.TrimSpace(sc.Text()); line != "" {
			lines = append(lines, line)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading comments: %w", err)
	}
	return lines, nil
}

func runReview(cmd *cobra.Command) {
	stderr := cmd.ErrOrStderr()

	cfg, err := config.Load(buildOverrides())
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		exitCode = ExitUsageError
		return
	}
	if flagNoRedact {
		cfg.Privacy.RedactSecrets = false
		fmt.Fprintln(stderr, "WARNING: secret redaction is disabled")
	}

	req, err := buildRequest(cmd.InOrStdin(), cfg)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		exitCode = ExitUsageError
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	report, err := review.Run(ctx, req, cfg, newLogger(cmd, cfg))
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		var ive *review.InputValidationError
		switch {
		case errors.As(err, &ive), errors.Is(err, providers.ErrUnknownProvider):
			exitCode = ExitUsageError
		case providers.IsAuthError(err):
			exitCode = ExitAuthError
		default:
			exitCode = ExitRuntimeError
		}
		return
	}

	path, err := output.WriteReport(report, cfg.Format, flagOut, cmd.OutOrStdout())
	if err != nil {
		fmt.Fprintf(stderr, "Error writing output: %v\n", err)
		exitCode = ExitRuntimeError
		return
	}
	if path != "" {
		fmt.Fprintf(stderr, "Report written to %s\n", path)
	}

	// Text output already shows notices inline.
	if cfg.Format != "text" {
		for i, e := range report.Entries {
			if e.Notice != "" {
				fmt.Fprintf(stderr, "Warning: comment %d: %s\n", i+1, e.Notice)
			}
		}
	}

	switch {
	case allAuthFailures(report):
		fmt.Fprintf(stderr, "Error: every request to %s was rejected; check your API key (coderev models doctor)\n", report.Provider)
		exitCode = ExitAuthError
	case flagFailOnFallback && (report.Stats.Fallbacks > 0 || report.SummaryOutcome.Fallback()):
		exitCode = ExitFallback
	}
}

func allAuthFailures(r *review.Report) bool {
	if len(r.Entries) == 0 {
		return false
	}
	for _, e := range r.Entries {
		if !providers.IsAuthError(e.Err()) {
			return false
		}
	}
	return true
}
