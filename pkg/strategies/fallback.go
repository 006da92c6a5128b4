package strategies

import (
	"context"
	"fmt"
	stdhtml "html"
	"regexp"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"

	"github.com/AJStolp/tts-reader-aws-backend-sub000/models"
	"github.com/AJStolp/tts-reader-aws-backend-sub000/pkg/render"
	"github.com/AJStolp/tts-reader-aws-backend-sub000/pkg/textproc"
)

// fallbackConfidence is the lowest band of all strategies: whole-body
// extraction is a last resort.
const fallbackConfidence = 0.4

// blockCloseRe turns block-element boundaries into newlines so the line
// filters have lines to work with after tag stripping.
var blockCloseRe = regexp.MustCompile(`(?i)</(?:p|div|h[1-6]|li|tr|section|article|blockquote|pre)>|<br\s*/?>`)

var scriptStyleRe = regexp.MustCompile(`(?is)<(script|style|noscript)[^>]*>.*?</(?:script|style|noscript)>`)

// Fallback extracts the entire page body and filters it line by line:
// short lines, boilerplate vocabulary, punctuation-dense separators, and
// shouted headings are dropped. It accepts almost anything, which is why
// it runs last and scores lowest.
type Fallback struct {
	renderer render.PageRenderer
	cfg      *models.ExtractionConfig
	policy   *bluemonday.Policy
}

func NewFallback(renderer render.PageRenderer, cfg *models.ExtractionConfig) *Fallback {
	return &Fallback{
		renderer: renderer,
		cfg:      cfg,
		policy:   bluemonday.StrictPolicy(),
	}
}

func (s *Fallback) Method() models.ExtractionMethod {
	return models.MethodDOMFallback
}

func (s *Fallback) Extract(ctx context.Context, req Request) (*models.ExtractionResult, error) {
	start := time.Now()

	html, err := s.renderer.HTML(ctx, req.URL, req.UserAgent)
	if err != nil {
		return nil, &models.RenderError{URL: req.URL, Err: err}
	}

	body := bodyText(html, s.policy)
	if body == "" {
		return nil, fmt.Errorf("%w: empty page body", models.ErrInsufficientContent)
	}

	filtered := textproc.FilterNavigationLines(body)

	metadata := map[string]any{
		"body_chars":     len(body),
		"filtered_chars": len(filtered),
	}
	return finalize(filtered, s.Method(), req.Hint, fallbackConfidence, start, metadata, s.cfg.MinTextLength)
}

// bodyText strips scripts and styles, converts block boundaries into
// newlines, sanitizes away all remaining markup, and unescapes entities.
func bodyText(html string, policy *bluemonday.Policy) string {
	// Drop script/style payloads entirely; sanitizing alone would keep
	// their text content.
	html = scriptStyleRe.ReplaceAllString(html, "")
	html = blockCloseRe.ReplaceAllString(html, "\n")

	text := policy.Sanitize(html)
	text = stdhtml.UnescapeString(text)
	return strings.TrimSpace(text)
}
