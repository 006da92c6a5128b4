package strategies

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/AJStolp/tts-reader-aws-backend-sub000/models"
	"github.com/AJStolp/tts-reader-aws-backend-sub000/pkg/classifier"
	"github.com/AJStolp/tts-reader-aws-backend-sub000/pkg/render"
)

// excludeTokens in an element's class or id mark it as chrome, not content.
var excludeTokens = []string{
	"nav", "navigation", "menu", "sidebar", "aside", "header", "footer",
	"banner", "advertisement", "social", "share", "related",
	"comments", "pagination", "breadcrumb", "widget", "toolbar",
	"cookie", "gdpr", "consent", "popup", "modal", "overlay",
}

// contentTokens are positive indicators of body content.
var contentTokens = []string{"content", "article", "post", "story", "main", "body", "text"}

// excludedTags never contain main content.
var excludedTags = map[string]struct{}{
	"nav": {}, "aside": {}, "header": {}, "footer": {},
}

// maxLinkTextRatio rejects containers that are mostly link text.
const maxLinkTextRatio = 0.7

// loadDocument renders the page and parses the snapshot.
func loadDocument(ctx context.Context, renderer render.PageRenderer, req Request) (*goquery.Document, error) {
	html, err := renderer.HTML(ctx, req.URL, req.UserAgent)
	if err != nil {
		return nil, &models.RenderError{URL: req.URL, Err: err}
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, &models.RenderError{URL: req.URL, Err: err}
	}
	return doc, nil
}

// classIDOf returns the lowercased class and id attributes joined.
func classIDOf(s *goquery.Selection) string {
	class, _ := s.Attr("class")
	id, _ := s.Attr("id")
	return strings.ToLower(class + " " + id)
}

// hasToken reports whether any token appears in the class/id string.
func hasToken(classID string, tokens []string) bool {
	for _, t := range tokens {
		if strings.Contains(classID, t) {
			return true
		}
	}
	return false
}

// linkTextRatio computes link text length over total text length. An
// empty container counts as all links.
func linkTextRatio(s *goquery.Selection) float64 {
	total := len(strings.TrimSpace(s.Text()))
	if total == 0 {
		return 1
	}
	linkLen := 0
	s.Find("a").Each(func(_ int, a *goquery.Selection) {
		linkLen += len(strings.TrimSpace(a.Text()))
	})
	return float64(linkLen) / float64(total)
}

// isLikelyMainContent applies the candidate-validity checks shared by the
// DOM strategies: not chrome by class/id or tag, enough text, and not
// dominated by link text.
func isLikelyMainContent(s *goquery.Selection, minTextLength int) bool {
	classID := classIDOf(s)
	if hasToken(classID, excludeTokens) {
		return false
	}

	tag := goquery.NodeName(s)
	if _, excluded := excludedTags[tag]; excluded {
		return false
	}

	text := strings.TrimSpace(s.Text())
	if len(text) < minTextLength {
		return false
	}

	if linkTextRatio(s) > maxLinkTextRatio {
		return false
	}

	return true
}

// refineHint upgrades an UNKNOWN content-type hint using in-page metadata:
// title, meta description, and schema.org types from ld+json scripts.
func refineHint(doc *goquery.Document, url string, hint models.ContentType) models.ContentType {
	if hint != models.ContentUnknown && hint != "" {
		return hint
	}

	meta := &classifier.PageMeta{
		Title: strings.TrimSpace(doc.Find("title").First().Text()),
	}
	if desc, ok := doc.Find(`meta[name="description"]`).Attr("content"); ok {
		meta.MetaDescription = desc
	}
	meta.StructuredDataTypes = structuredDataTypes(doc)

	return classifier.Classify(url, meta)
}

// structuredDataTypes collects @type values from ld+json blocks. Parse
// failures are ignored; structured data on the wild web is often invalid.
func structuredDataTypes(doc *goquery.Document) []string {
	var types []string
	doc.Find(`script[type="application/ld+json"]`).Each(func(_ int, s *goquery.Selection) {
		var data map[string]any
		if err := json.Unmarshal([]byte(s.Text()), &data); err != nil {
			return
		}
		switch v := data["@type"].(type) {
		case string:
			types = append(types, v)
		case []any:
			for _, item := range v {
				if str, ok := item.(string); ok {
					types = append(types, str)
				}
			}
		}
	})
	return types
}

// blockLines flattens a selection into one line per paragraph-level
// element, approximating rendered line structure. Nav menus and footers
// come out as short lines the text filters can then drop.
func blockLines(s *goquery.Selection) string {
	var sb strings.Builder
	s.Find("p, h1, h2, h3, h4, h5, h6, li, td, blockquote, pre, figcaption").
		Each(func(_ int, block *goquery.Selection) {
			if t := strings.TrimSpace(block.Text()); t != "" {
				sb.WriteString(t)
				sb.WriteByte('\n')
			}
		})
	if sb.Len() == 0 {
		return strings.TrimSpace(s.Text())
	}
	return strings.TrimSpace(sb.String())
}
