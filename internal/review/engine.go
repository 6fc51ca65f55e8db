package review

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/dshills/coderev/internal/config"
	"github.com/dshills/coderev/internal/providers"
	"github.com/dshills/coderev/internal/redact"
)

// Options tune a pipeline run.
type Options struct {
	Model               string
	FeedbackTemperature float64
	FeedbackMaxTokens   int
	SummaryTemperature  float64
	SummaryMaxTokens    int
	MaxComments         int
	Concurrency         int
	RedactSecrets       bool
	Logger              *slog.Logger
}

// OptionsFromConfig maps the effective configuration to pipeline options.
func OptionsFromConfig(cfg config.Config) Options {
	return Options{
		Model:               cfg.Model,
		FeedbackTemperature: cfg.FeedbackTemperature,
		FeedbackMaxTokens:   cfg.FeedbackMaxTokens,
		SummaryTemperature:  cfg.SummaryTemperature,
		SummaryMaxTokens:    cfg.SummaryMaxTokens,
		MaxComments:         cfg.MaxComments,
		Concurrency:         cfg.Concurrency,
		RedactSecrets:       cfg.Privacy.RedactSecrets,
	}
}

// Engine runs the classification and prompt/response pipeline against a
// completion provider.
type Engine struct {
	completer providers.Completer
	opts      Options
	logger    *slog.Logger
}

// NewEngine creates an Engine. Zero-valued options fall back to the defaults.
func NewEngine(c providers.Completer, opts Options) *Engine {
	d := OptionsFromConfig(config.Default())
	if opts.FeedbackMaxTokens <= 0 {
		opts.FeedbackMaxTokens = d.FeedbackMaxTokens
	}
	if opts.SummaryMaxTokens <= 0 {
		opts.SummaryMaxTokens = d.SummaryMaxTokens
	}
	if opts.MaxComments <= 0 {
		opts.MaxComments = d.MaxComments
	}
	if opts.Concurrency <= 0 {
		opts.Concurrency = 1
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Engine{completer: c, opts: opts, logger: logger}
}

// Run executes a review with the provider named in the configuration.
func Run(ctx context.Context, req Request, cfg config.Config, logger *slog.Logger) (*Report, error) {
	opts := OptionsFromConfig(cfg)
	opts.Logger = logger

	// Validate before creating the provider so that bad input never needs
	// credentials.
	if _, _, _, err := validate(req, opts.MaxComments); err != nil {
		return nil, err
	}

	provider, err := providers.New(cfg.Provider, cfg.Model)
	if err != nil {
		return nil, fmt.Errorf("creating provider: %w", err)
	}
	return NewEngine(provider, opts).Run(ctx, req)
}

func validate(req Request, maxComments int) (string, []string, Language, error) {
	if strings.TrimSpace(req.Snippet) == "" {
		return "", nil, "", &InputValidationError{Field: "snippet", Message: "paste a code snippet to analyze"}
	}
	comments := make([]string, 0, len(req.Comments))
	for _, c := range req.Comments {
		if c = strings.TrimSpace(c); c != "" {
			comments = append(comments, c)
		}
	}
	if len(comments) == 0 {
		return "", nil, "", &InputValidationError{Field: "comments", Message: "add at least one review comment"}
	}
	if maxComments > 0 && len(comments) > maxComments {
		return "", nil, "", &InputValidationError{
			Field:   "comments",
			Message: fmt.Sprintf("at most %d comments are supported, got %d", maxComments, len(comments)),
		}
	}
	lang, err := ResolveLanguage(req.LanguageHint, req.Snippet)
	if err != nil {
		return "", nil, "", err
	}
	return req.Snippet, comments, lang, nil
}

// Run analyzes every comment and builds the report. Completion failures are
// contained per comment and replaced with fallback feedback; only invalid
// input returns an error.
func (e *Engine) Run(ctx context.Context, req Request) (*Report, error) {
	startTime := time.Now()

	snippet, comments, lang, err := validate(req, e.opts.MaxComments)
	if err != nil {
		return nil, err
	}

	promptSnippet := snippet
	if e.opts.RedactSecrets {
		var n int
		promptSnippet, n = redact.Snippet(snippet)
		if n > 0 {
			e.logger.Info("redacted secrets from snippet", "count", n)
		}
	}

	e.logger.Debug("starting review", "language", lang, "comments", len(comments), "provider", e.completer.Name())

	llmStart := time.Now()
	entries := e.feedbackAll(ctx, promptSnippet, comments, lang)

	items := make([]FeedbackItem, len(entries))
	tokens := 0
	for i, en := range entries {
		items[i] = en.Feedback
		tokens += en.tokens
	}
	summary, summaryOutcome, summaryTokens := e.summary(ctx, promptSnippet, items, lang)
	llmMs := time.Since(llmStart).Milliseconds()

	report, err := assemble(snippet, lang, comments, entries, summary, summaryOutcome)
	if err != nil {
		return nil, err
	}
	report.Provider = e.completer.Name()
	report.Model = e.opts.Model
	report.Timing = Timing{
		LLMMs:      llmMs,
		TotalMs:    time.Since(startTime).Milliseconds(),
		TokensUsed: tokens + summaryTokens,
	}
	return report, nil
}

// feedbackAll returns one entry per comment in input order. With
// Concurrency > 1 comments are processed in parallel, each goroutine writing
// only its own index.
func (e *Engine) feedbackAll(ctx context.Context, snippet string, comments []string, lang Language) []Entry {
	entries := make([]Entry, len(comments))

	if e.opts.Concurrency <= 1 || len(comments) == 1 {
		for i, c := range comments {
			e.logger.Debug("processing comment", "index", i+1, "total", len(comments))
			entries[i] = e.feedback(ctx, snippet, c, lang)
		}
		return entries
	}

	var g errgroup.Group
	g.SetLimit(min(e.opts.Concurrency, len(comments)))
	for i, c := range comments {
		g.Go(func() error {
			e.logger.Debug("processing comment", "index", i+1, "total", len(comments))
			entries[i] = e.feedback(ctx, snippet, c, lang)
			return nil
		})
	}
	_ = g.Wait()
	return entries
}

func (e *Engine) feedback(ctx context.Context, snippet, comment string, lang Language) Entry {
	sev := ClassifyTone(comment)
	entry := Entry{Comment: comment, Severity: sev, Outcome: OutcomeOK}

	resp, err := e.completer.Complete(ctx, providers.Request{
		SystemPrompt: FeedbackSystemPrompt(),
		UserPrompt:   BuildFeedbackPrompt(snippet, comment, lang, sev),
		Temperature:  e.opts.FeedbackTemperature,
		MaxTokens:    e.opts.FeedbackMaxTokens,
	})
	if err != nil {
		entry.err = err
		entry.Outcome = classifyFailure(err)
		entry.Feedback = Fallback(entry.Outcome, lang)
		entry.Notice = serviceNotice(err)
		if entry.Outcome == OutcomeMalformedResponse {
			entry.Notice = malformedNotice(err)
		}
		e.logger.Warn("using fallback feedback", "outcome", entry.Outcome, "rate_limited", providers.IsRateLimited(err), "error", err)
		return entry
	}

	entry.tokens = resp.TokensUsed
	entry.Feedback, err = normalize(resp.Content, lang)
	if err != nil {
		entry.err = err
		entry.Outcome = OutcomeMalformedResponse
		entry.Notice = malformedNotice(err)
		e.logger.Warn("using fallback feedback", "outcome", entry.Outcome, "error", err)
	}
	return entry
}

func serviceNotice(err error) string {
	if providers.IsRateLimited(err) {
		return fmt.Sprintf("API call error: %v. The provider is rate limiting requests; lower the concurrency or try again later.", err)
	}
	return fmt.Sprintf("API call error: %v", err)
}

func malformedNotice(err error) string {
	return fmt.Sprintf("JSON parsing error: %v. Returning safe fallback.", err)
}

func (e *Engine) summary(ctx context.Context, snippet string, items []FeedbackItem, lang Language) (string, Outcome, int) {
	resp, err := e.completer.Complete(ctx, providers.Request{
		SystemPrompt: SummarySystemPrompt(),
		UserPrompt:   BuildSummaryPrompt(snippet, items, lang),
		Temperature:  e.opts.SummaryTemperature,
		MaxTokens:    e.opts.SummaryMaxTokens,
	})
	if err != nil {
		e.logger.Warn("error generating summary", "error", err)
		return SummaryFallback(), classifyFailure(err), 0
	}
	text := strings.TrimSpace(resp.Content)
	if text == "" {
		e.logger.Warn("empty summary response")
		return SummaryFallback(), OutcomeMalformedResponse, resp.TokensUsed
	}
	return text, OutcomeOK, resp.TokensUsed
}

func classifyFailure(err error) Outcome {
	var mre *MalformedResponseError
	var re *providers.ResponseError
	if errors.As(err, &mre) || errors.As(err, &re) {
		return OutcomeMalformedResponse
	}
	return OutcomeServiceError
}
