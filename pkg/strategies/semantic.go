package strategies

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/AJStolp/tts-reader-aws-backend-sub000/models"
	"github.com/AJStolp/tts-reader-aws-backend-sub000/pkg/render"
)

// SemanticDOM walks a priority-ordered list of content-container selectors
// and returns the first validated match. Confidence scales with the
// matched selector's priority, capped at 0.9.
type SemanticDOM struct {
	renderer render.PageRenderer
	cfg      *models.ExtractionConfig
}

func NewSemanticDOM(renderer render.PageRenderer, cfg *models.ExtractionConfig) *SemanticDOM {
	return &SemanticDOM{renderer: renderer, cfg: cfg}
}

func (s *SemanticDOM) Method() models.ExtractionMethod {
	return models.MethodDOMSemantic
}

func (s *SemanticDOM) Extract(ctx context.Context, req Request) (*models.ExtractionResult, error) {
	start := time.Now()

	doc, err := loadDocument(ctx, s.renderer, req)
	if err != nil {
		return nil, err
	}

	hint := refineHint(doc, req.URL, req.Hint)

	for _, sel := range s.selectorsByPriority() {
		var found *goquery.Selection
		doc.Find(sel.selector).EachWithBreak(func(_ int, el *goquery.Selection) bool {
			if isLikelyMainContent(el, s.cfg.MinTextLength) {
				found = el
				return false
			}
			return true
		})
		if found == nil {
			continue
		}

		text := strings.TrimSpace(found.Text())
		confidence := float64(sel.priority) / 10.0
		if confidence > 0.9 {
			confidence = 0.9
		}

		metadata := map[string]any{
			"selector": sel.selector,
			"priority": sel.priority,
		}
		return finalize(text, s.Method(), hint, confidence, start, metadata, s.cfg.MinTextLength)
	}

	return nil, fmt.Errorf("%w: no content container matched", models.ErrInsufficientContent)
}

type rankedSelector struct {
	selector string
	priority int
}

// selectorsByPriority orders the configured selector table by priority,
// breaking priority ties alphabetically so the walk is deterministic.
func (s *SemanticDOM) selectorsByPriority() []rankedSelector {
	ranked := make([]rankedSelector, 0, len(s.cfg.ContentSelectors))
	for sel, prio := range s.cfg.ContentSelectors {
		ranked = append(ranked, rankedSelector{selector: sel, priority: prio})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].priority != ranked[j].priority {
			return ranked[i].priority > ranked[j].priority
		}
		return ranked[i].selector < ranked[j].selector
	})
	return ranked
}
