package strategies

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/AJStolp/tts-reader-aws-backend-sub000/models"
	"github.com/AJStolp/tts-reader-aws-backend-sub000/pkg/render"
)

// semanticTags earn the configured multiplier boost in heuristic scoring.
var semanticTags = map[string]struct{}{
	"article": {}, "main": {}, "section": {},
}

// heuristicContentTokens and heuristicNavTokens drive class/id scoring.
// Narrower than the shared validity lists: these tune a score rather than
// reject outright.
var (
	heuristicContentTokens = []string{"content", "article", "post"}
	heuristicNavTokens     = []string{"nav", "menu", "sidebar"}
)

// HeuristicDOM scores every block-level candidate with a weighted formula
// dominated by text length and returns the top scorer. All weights come
// from configuration.
type HeuristicDOM struct {
	renderer render.PageRenderer
	cfg      *models.ExtractionConfig
}

func NewHeuristicDOM(renderer render.PageRenderer, cfg *models.ExtractionConfig) *HeuristicDOM {
	return &HeuristicDOM{renderer: renderer, cfg: cfg}
}

func (s *HeuristicDOM) Method() models.ExtractionMethod {
	return models.MethodDOMHeuristic
}

func (s *HeuristicDOM) Extract(ctx context.Context, req Request) (*models.ExtractionResult, error) {
	start := time.Now()

	doc, err := loadDocument(ctx, s.renderer, req)
	if err != nil {
		return nil, err
	}

	hint := refineHint(doc, req.URL, req.Hint)
	weights := s.cfg.Heuristics

	var (
		bestScore   float64
		bestText    string
		bestTag     string
		bestDensity float64
	)

	doc.Find("div, section, article, main, p").Each(func(_ int, el *goquery.Selection) {
		text := strings.TrimSpace(el.Text())
		if len(text) < s.cfg.MinTextLength {
			return
		}

		score := float64(len(text))

		tag := goquery.NodeName(el)
		if _, ok := semanticTags[tag]; ok {
			score *= weights.SemanticTagBoost
		}

		classID := classIDOf(el)
		if hasToken(classID, heuristicContentTokens) {
			score *= weights.ContentTokenBoost
		}
		if hasToken(classID, heuristicNavTokens) {
			score *= weights.NavTokenPenalty
		}

		density := linkTextRatio(el)
		if density > weights.LinkDensityCutoff {
			score *= weights.LinkDensityPenalty
		}

		if score > bestScore {
			bestScore = score
			bestText = text
			bestTag = tag
			bestDensity = density
		}
	})

	if bestText == "" {
		return nil, fmt.Errorf("%w: no candidate above length floor", models.ErrInsufficientContent)
	}

	// Score over twice the raw length approaches 1 only when every boost
	// fired; cap below the semantic strategy's ceiling.
	confidence := bestScore / (float64(len(bestText)) * 2)
	if confidence > 0.8 {
		confidence = 0.8
	}

	metadata := map[string]any{
		"score":        bestScore,
		"link_density": bestDensity,
		"tag":          bestTag,
	}
	return finalize(bestText, s.Method(), hint, confidence, start, metadata, s.cfg.MinTextLength)
}
