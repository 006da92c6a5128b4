package strategies

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/AJStolp/tts-reader-aws-backend-sub000/models"
	"github.com/AJStolp/tts-reader-aws-backend-sub000/pkg/docanalysis"
	"github.com/AJStolp/tts-reader-aws-backend-sub000/pkg/render"
)

// documentConfidence is the highest base confidence of any strategy:
// layout-aware analysis almost never mistakes navigation for body text.
const documentConfidence = 0.9

// DocumentAnalysis renders the page to a fixed-layout PDF and submits it
// to the cloud analysis service. The call is cost-bearing, so it is made
// at most once per request and never retried here.
type DocumentAnalysis struct {
	renderer render.PageRenderer
	analyzer docanalysis.Analyzer
	cfg      *models.ExtractionConfig
}

// NewDocumentAnalysis builds the strategy. Analyzer must be non-nil; the
// orchestrator skips this strategy entirely when no analyzer is configured.
func NewDocumentAnalysis(renderer render.PageRenderer, analyzer docanalysis.Analyzer, cfg *models.ExtractionConfig) *DocumentAnalysis {
	return &DocumentAnalysis{renderer: renderer, analyzer: analyzer, cfg: cfg}
}

func (s *DocumentAnalysis) Method() models.ExtractionMethod {
	return models.MethodDocumentAnalysis
}

func (s *DocumentAnalysis) Extract(ctx context.Context, req Request) (*models.ExtractionResult, error) {
	start := time.Now()

	pdf, err := s.renderer.PDF(ctx, req.URL, req.UserAgent)
	if err != nil {
		return nil, &models.RenderError{URL: req.URL, Err: err}
	}

	pageCount, err := docanalysis.ValidatePDF(pdf, s.cfg.MaxPDFSize)
	if err != nil {
		return nil, &models.RenderError{URL: req.URL, Err: err}
	}

	log.Debug().Str("url", req.URL).Int("pdf_bytes", len(pdf)).Int("pages", pageCount).
		Msg("submitting document for analysis")

	analysisCtx, cancel := context.WithTimeout(ctx, s.cfg.DocAnalysisTimeout)
	defer cancel()

	blocks, err := s.analyzer.AnalyzeDocument(analysisCtx, pdf)
	if err != nil {
		return nil, &models.ServiceError{Err: err}
	}

	text := docanalysis.AssembleText(blocks)

	metadata := map[string]any{
		"pdf_size":   len(pdf),
		"page_count": pageCount,
		"blocks":     len(blocks),
	}
	return finalize(text, s.Method(), req.Hint, documentConfidence, start, metadata, s.cfg.MinTextLength)
}
