// Package handler provides HTTP handlers for the review API.
package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/dshills/coderev/internal/output"
	"github.com/dshills/coderev/internal/providers"
	"github.com/dshills/coderev/internal/review"
)

// maxBodyBytes bounds a review request body.
const maxBodyBytes = 1 << 20

// ReviewHandler runs the review pipeline for API requests.
type ReviewHandler struct {
	engine *review.Engine
	logger *slog.Logger
}

// NewReviewHandler creates a handler that reviews with the given completer.
func NewReviewHandler(completer providers.Completer, opts review.Options, logger *slog.Logger) *ReviewHandler {
	return &ReviewHandler{
		engine: review.NewEngine(completer, opts),
		logger: logger,
	}
}

// Review answers with the JSON report.
func (h *ReviewHandler) Review(w http.ResponseWriter, r *http.Request) {
	report, ok := h.run(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, report)
}

// Markdown answers with the report as a downloadable Markdown document.
func (h *ReviewHandler) Markdown(w http.ResponseWriter, r *http.Request) {
	report, ok := h.run(w, r)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := (&output.MarkdownWriter{}).Write(&buf, report); err != nil {
		h.logger.Error("rendering markdown report", "error", err)
		writeError(w, http.StatusInternalServerError, "could not render report")
		return
	}

	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", output.DefaultFilename(report.GeneratedAt)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

func (h *ReviewHandler) run(w http.ResponseWriter, r *http.Request) (*review.Report, bool) {
	var req review.Request
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		var mbe *http.MaxBytesError
		if errors.As(err, &mbe) {
			writeError(w, http.StatusRequestEntityTooLarge, "request body too large")
			return nil, false
		}
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return nil, false
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "request body must contain a single JSON object")
		return nil, false
	}

	report, err := h.engine.Run(r.Context(), req)
	if err != nil {
		if review.IsInputValidation(err) {
			writeError(w, http.StatusBadRequest, err.Error())
			return nil, false
		}
		h.logger.Error("review failed", "error", err)
		writeError(w, http.StatusInternalServerError, "review failed")
		return nil, false
	}

	h.logger.Info("review completed",
		"run_id", report.RunID,
		"language", report.Language,
		"comments", report.Stats.Comments,
		"fallbacks", report.Stats.Fallbacks,
	)
	return report, true
}

type languageInfo struct {
	Tag  review.Language `json:"tag"`
	Name string          `json:"name"`
}

// Languages lists the supported language tags in detection order.
func Languages(w http.ResponseWriter, _ *http.Request) {
	langs := review.Languages()
	out := make([]languageInfo, len(langs))
	for i, l := range langs {
		out[i] = languageInfo{Tag: l, Name: l.DisplayName()}
	}
	writeJSON(w, http.StatusOK, out)
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
