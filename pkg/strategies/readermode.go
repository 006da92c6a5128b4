package strategies

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	readability "github.com/go-shiori/go-readability"

	"github.com/AJStolp/tts-reader-aws-backend-sub000/models"
	"github.com/AJStolp/tts-reader-aws-backend-sub000/pkg/render"
)

// paragraphWeight values a paragraph as worth this many characters when
// scoring candidate containers.
const paragraphWeight = 100

// ReaderMode strips page chrome and extracts paragraph- and heading-level
// text the way a browser reader view would. Distillation is delegated to
// the readability algorithm; a container scan covers pages where it fails.
// Confidence stays in the 0.6-0.7 band: the technique is heuristic, not
// layout-verified, so it never scores higher.
type ReaderMode struct {
	renderer render.PageRenderer
	cfg      *models.ExtractionConfig
}

func NewReaderMode(renderer render.PageRenderer, cfg *models.ExtractionConfig) *ReaderMode {
	return &ReaderMode{renderer: renderer, cfg: cfg}
}

func (s *ReaderMode) Method() models.ExtractionMethod {
	return models.MethodReaderMode
}

func (s *ReaderMode) Extract(ctx context.Context, req Request) (*models.ExtractionResult, error) {
	start := time.Now()

	doc, err := loadDocument(ctx, s.renderer, req)
	if err != nil {
		return nil, err
	}

	hint := refineHint(doc, req.URL, req.Hint)

	// Strip chrome before distilling.
	for _, sel := range s.cfg.ExcludeSelectors {
		doc.Find(sel).Remove()
	}

	text, confidence, source := s.distill(doc, req.URL)
	if text == "" {
		return nil, fmt.Errorf("%w: no readable container found", models.ErrInsufficientContent)
	}

	metadata := map[string]any{"distiller": source}
	return finalize(text, s.Method(), hint, confidence, start, metadata, s.cfg.MinTextLength)
}

// distill tries the readability algorithm first, then falls back to a
// container scan. Returns the joined text, confidence, and which path ran.
func (s *ReaderMode) distill(doc *goquery.Document, rawURL string) (string, float64, string) {
	if text := s.readabilityText(doc, rawURL); text != "" {
		return text, 0.7, "readability"
	}
	if text := s.bestContainerText(doc); text != "" {
		return text, 0.6, "container_scan"
	}
	return "", 0, ""
}

// readabilityText runs the readability algorithm over the stripped
// document and joins paragraph and heading text with blank lines.
func (s *ReaderMode) readabilityText(doc *goquery.Document, rawURL string) string {
	html, err := doc.Html()
	if err != nil {
		return ""
	}
	pageURL, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}

	article, err := readability.FromReader(strings.NewReader(html), pageURL)
	if err != nil {
		return ""
	}

	contentDoc, err := goquery.NewDocumentFromReader(strings.NewReader(article.Content))
	if err != nil {
		return ""
	}
	return joinParagraphs(contentDoc.Selection)
}

// bestContainerText scans div/article/section containers and keeps the one
// maximizing text length plus a paragraph-count bonus, mirroring how
// reader views pick the main column.
func (s *ReaderMode) bestContainerText(doc *goquery.Document) string {
	var best *goquery.Selection
	bestScore := 0

	doc.Find("div, article, section, main").Each(func(_ int, el *goquery.Selection) {
		textLen := len(strings.TrimSpace(el.Text()))
		if textLen < 200 {
			return
		}
		score := textLen + paragraphWeight*el.Find("p").Length()
		if score > bestScore {
			bestScore = score
			best = el
		}
	})

	if best == nil {
		return ""
	}
	return joinParagraphs(best)
}

// joinParagraphs extracts paragraph- and heading-level child text joined
// with double line breaks, dropping fragments too short to be prose.
func joinParagraphs(s *goquery.Selection) string {
	var parts []string
	s.Find("p, h1, h2, h3, h4, h5, h6").Each(func(_ int, el *goquery.Selection) {
		if t := strings.TrimSpace(el.Text()); len(t) > 10 {
			parts = append(parts, t)
		}
	})
	return strings.Join(parts, "\n\n")
}
