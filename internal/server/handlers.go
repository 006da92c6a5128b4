package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/AJStolp/tts-reader-aws-backend-sub000/models"
	"github.com/AJStolp/tts-reader-aws-backend-sub000/pkg/orchestrator"
)

type extractRequest struct {
	URL string `json:"url"`

	// PreferDocumentAnalysis defaults to true when omitted; send false to
	// skip the cost-bearing document analysis call.
	PreferDocumentAnalysis *bool   `json:"prefer_document_analysis,omitempty"`
	Sequential             bool    `json:"sequential,omitempty"`
	ShortCircuitConfidence float64 `json:"short_circuit_confidence,omitempty"`
}

type extractResponse struct {
	Text             string         `json:"text"`
	Method           string         `json:"method"`
	ContentType      string         `json:"content_type"`
	Confidence       float64        `json:"confidence"`
	WordCount        int            `json:"word_count"`
	CharCount        int            `json:"char_count"`
	ProcessingTimeMS int64          `json:"processing_time_ms"`
	TTSSuitability   float64        `json:"tts_suitability"`
	HighQuality      bool           `json:"high_quality"`
	Metadata         map[string]any `json:"metadata,omitempty"`
}

type errorResponse struct {
	Error   string            `json:"error"`
	Reasons map[string]string `json:"reasons,omitempty"`
}

func (s *Server) handleExtract(w http.ResponseWriter, r *http.Request) {
	var req extractRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	if req.URL == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "url is required"})
		return
	}

	skipDoc := req.PreferDocumentAnalysis != nil && !*req.PreferDocumentAnalysis
	result, err := s.orch.Extract(r.Context(), req.URL, orchestrator.Options{
		DisableDocumentAnalysis: skipDoc,
		Sequential:              req.Sequential,
		ShortCircuitConfidence:  req.ShortCircuitConfidence,
	})
	if err != nil {
		s.writeExtractError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, extractResponse{
		Text:             result.Text,
		Method:           string(result.Method),
		ContentType:      string(result.ContentType),
		Confidence:       result.Confidence,
		WordCount:        result.WordCount,
		CharCount:        result.CharCount,
		ProcessingTimeMS: result.ProcessingTime.Milliseconds(),
		TTSSuitability:   result.TTSSuitability(),
		HighQuality:      result.IsHighQuality(),
		Metadata:         result.Metadata,
	})
}

// writeExtractError maps pipeline errors onto status codes: bad input is
// the caller's fault, exhaustion means the page yielded nothing usable,
// anything else is ours.
func (s *Server) writeExtractError(w http.ResponseWriter, err error) {
	var exhausted *models.ExhaustedError
	switch {
	case errors.Is(err, models.ErrInvalidURL):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
	case errors.As(err, &exhausted):
		reasons := make(map[string]string, len(exhausted.Reasons))
		for method, reason := range exhausted.Reasons {
			reasons[string(method)] = reason
		}
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{
			Error:   "no strategy produced usable content",
			Reasons: reasons,
		})
	default:
		s.logger.Error().Err(err).Msg("extraction failed")
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	health := s.orch.Health()
	status := http.StatusOK
	if health.Status != "healthy" {
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, health)
}

func (s *Server) handleAnalytics(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.orch.Analytics())
}

type runEntry struct {
	ID          string  `json:"id"`
	URL         string  `json:"url"`
	Domain      string  `json:"domain"`
	Method      string  `json:"method"`
	ContentType string  `json:"content_type"`
	Confidence  float64 `json:"confidence"`
	CharCount   int     `json:"char_count"`
	WordCount   int     `json:"word_count"`
	DurationMS  int64   `json:"duration_ms"`
	CreatedAt   string  `json:"created_at"`
}

func (s *Server) handleRuns(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		writeJSON(w, http.StatusOK, []runEntry{})
		return
	}

	runs, err := s.store.RecentRuns(r.Context(), 50)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list runs")
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
		return
	}

	entries := make([]runEntry, 0, len(runs))
	for _, run := range runs {
		entries = append(entries, runEntry{
			ID:          run.ID,
			URL:         run.URL,
			Domain:      run.Domain,
			Method:      string(run.Method),
			ContentType: string(run.ContentType),
			Confidence:  run.Confidence,
			CharCount:   run.CharCount,
			WordCount:   run.WordCount,
			DurationMS:  run.Duration.Milliseconds(),
			CreatedAt:   run.CreatedAt.Format(time.RFC3339),
		})
	}
	writeJSON(w, http.StatusOK, entries)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
