package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/soos-lab/reflectd/pkg/domain/model"
	"github.com/soos-lab/reflectd/pkg/usecase"
	"github.com/soos-lab/reflectd/pkg/utils/errutil"
	"github.com/soos-lab/reflectd/pkg/utils/logging"
	"github.com/soos-lab/reflectd/pkg/utils/safe"
)

// Error codes returned in {"error": code}
const (
	codeMissingFields  = "missing required fields"
	codeInvalidBody    = "invalid request body"
	codeAnalysisFailed = "analysis_failed"
	codeSimilarFailed  = "similar_failed"
	codeSummaryFailed  = "summary_failed"
)

type analyzeRequest struct {
	EntryID   string `json:"entry_id"`
	UserID    string `json:"user_id"`
	Text      string `json:"text"`
	CreatedAt string `json:"created_at"`
}

func (x *analyzeRequest) entry() *model.Entry {
	entry := &model.Entry{
		ID:     x.EntryID,
		UserID: x.UserID,
		Text:   x.Text,
	}
	if x.CreatedAt != "" {
		if ts, err := time.Parse(time.RFC3339Nano, x.CreatedAt); err == nil {
			entry.CreatedAt = ts.UTC()
		}
	}
	return entry
}

type similarRequest struct {
	EntryID string `json:"entry_id"`
	UserID  string `json:"user_id"`
	Limit   int    `json:"limit"`
}

type similarResponse struct {
	Similar []model.SimilarEntry `json:"similar"`
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	safe.WriteJSON(r.Context(), w, v)
}

// writeClientError answers 400 without reporting to Sentry
func writeClientError(w http.ResponseWriter, r *http.Request, err error, code string) {
	logging.From(r.Context()).Info("rejected request", "path", r.URL.Path, "error", err)
	writeJSON(w, r, http.StatusBadRequest, map[string]string{"error": code})
}

// decodeBody reads a JSON body into dst. An empty body leaves dst zero so
// that field validation reports it.
func decodeBody(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil && !errors.Is(err, io.EOF) {
		return goerr.Wrap(err, "failed to decode request body")
	}
	return nil
}

func healthzHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, map[string]bool{"ok": true})
}

func analyzeHandler(uc AnalysisUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req analyzeRequest
		if err := decodeBody(r, &req); err != nil {
			writeClientError(w, r, err, codeInvalidBody)
			return
		}

		result, err := uc.Analyze(r.Context(), req.entry())
		if err != nil {
			if errors.Is(err, usecase.ErrInvalidRequest) {
				writeClientError(w, r, err, codeMissingFields)
				return
			}
			errutil.HandleHTTP(r.Context(), w, err, http.StatusInternalServerError, codeAnalysisFailed)
			return
		}

		writeJSON(w, r, http.StatusOK, result)
	}
}

func analyzeLiteHandler(uc AnalysisUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req analyzeRequest
		if err := decodeBody(r, &req); err != nil {
			writeClientError(w, r, err, codeInvalidBody)
			return
		}

		result, err := uc.AnalyzeLite(r.Context(), req.entry())
		if err != nil {
			if errors.Is(err, usecase.ErrInvalidRequest) {
				writeClientError(w, r, err, codeMissingFields)
				return
			}
			errutil.HandleHTTP(r.Context(), w, err, http.StatusInternalServerError, codeAnalysisFailed)
			return
		}

		writeJSON(w, r, http.StatusOK, result)
	}
}

func similarHandler(uc AnalysisUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req similarRequest
		if err := decodeBody(r, &req); err != nil {
			writeClientError(w, r, err, codeInvalidBody)
			return
		}

		similar, err := uc.Similar(r.Context(), req.UserID, req.EntryID, req.Limit)
		if err != nil {
			if errors.Is(err, usecase.ErrInvalidRequest) {
				writeClientError(w, r, err, codeMissingFields)
				return
			}
			errutil.HandleHTTP(r.Context(), w, err, http.StatusInternalServerError, codeSimilarFailed)
			return
		}

		writeJSON(w, r, http.StatusOK, similarResponse{Similar: similar})
	}
}

func summaryHandler(uc SummaryUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input model.SummaryInput
		if err := decodeBody(r, &input); err != nil {
			writeClientError(w, r, err, codeInvalidBody)
			return
		}

		summary, err := uc.Summarize(r.Context(), &input)
		if err != nil {
			errutil.HandleHTTP(r.Context(), w, err, http.StatusInternalServerError, codeSummaryFailed)
			return
		}

		writeJSON(w, r, http.StatusOK, summary)
	}
}
