package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dshills/coderev/internal/config"
	"github.com/dshills/coderev/internal/providers"
	"github.com/dshills/coderev/internal/review"
	"github.com/dshills/coderev/internal/server/handler"
)

const requestTimeout = 5 * time.Minute

// NewRouter creates and configures a new HTTP router with middleware and API routes.
func NewRouter(cfg config.Config, completer providers.Completer, logger *slog.Logger) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(requestTimeout))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	opts := review.OptionsFromConfig(cfg)
	opts.Logger = logger

	r.Route("/api/v1", func(r chi.Router) {
		reviewHandler := handler.NewReviewHandler(completer, opts, logger)
		r.Post("/review", reviewHandler.Review)
		r.Post("/review/markdown", reviewHandler.Markdown)
		r.Get("/languages", handler.Languages)
	})

	return r
}

// requestLogger logs one line per request through slog.
func requestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			logger.Info("request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"request_id", middleware.GetReqID(r.Context()),
			)
		})
	}
}
