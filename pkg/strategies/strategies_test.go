package strategies

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/AJStolp/tts-reader-aws-backend-sub000/models"
)

// fakeRenderer serves canned HTML and PDF bytes without a browser.
type fakeRenderer struct {
	html    string
	htmlErr error
	pdf     []byte
	pdfErr  error
}

func (f *fakeRenderer) HTML(ctx context.Context, url, userAgent string) (string, error) {
	return f.html, f.htmlErr
}

func (f *fakeRenderer) PDF(ctx context.Context, url, userAgent string) ([]byte, error) {
	return f.pdf, f.pdfErr
}

const prose = "The committee published its findings after months of careful review and deliberation. " +
	"Researchers examined hundreds of documents and interviewed dozens of witnesses across the region. " +
	"Their conclusions point to a gradual shift in how local institutions handle public records requests."

func articlePage(body string) string {
	return `<html><head><title>Findings published</title></head><body>
<nav class="navigation"><a href="/">Home</a><a href="/about">About</a></nav>
<article><p>` + body + `</p><p>` + body + `</p></article>
<footer class="footer">Copyright 2026</footer>
</body></html>`
}

func testReq() Request {
	return Request{URL: "https://example.com/article/findings", Hint: models.ContentArticle}
}

func TestSemanticDOM_PicksArticleContainer(t *testing.T) {
	renderer := &fakeRenderer{html: articlePage(prose)}
	s := NewSemanticDOM(renderer, models.DefaultConfig())

	result, err := s.Extract(context.Background(), testReq())
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}

	if result.Method != models.MethodDOMSemantic {
		t.Errorf("Method = %s, want %s", result.Method, models.MethodDOMSemantic)
	}
	if result.Confidence != 0.9 {
		t.Errorf("Confidence = %f, want 0.9 for a priority-10 selector", result.Confidence)
	}
	if !strings.Contains(result.Text, "committee published") {
		t.Errorf("Text = %q, missing article prose", result.Text[:min(80, len(result.Text))])
	}
	if strings.Contains(result.Text, "Copyright") {
		t.Error("Text contains footer chrome")
	}
	if result.Metadata["selector"] != "article" {
		t.Errorf("Metadata[selector] = %v, want article", result.Metadata["selector"])
	}
}

func TestSemanticDOM_NoContainer(t *testing.T) {
	renderer := &fakeRenderer{html: `<html><body><div class="nav">` + prose + `</div></body></html>`}
	s := NewSemanticDOM(renderer, models.DefaultConfig())

	_, err := s.Extract(context.Background(), testReq())
	if !errors.Is(err, models.ErrInsufficientContent) {
		t.Fatalf("Extract() error = %v, want ErrInsufficientContent", err)
	}
}

func TestSemanticDOM_RenderErrorWrapped(t *testing.T) {
	renderer := &fakeRenderer{htmlErr: errors.New("connection refused")}
	s := NewSemanticDOM(renderer, models.DefaultConfig())

	_, err := s.Extract(context.Background(), testReq())
	var renderErr *models.RenderError
	if !errors.As(err, &renderErr) {
		t.Fatalf("Extract() error = %v, want RenderError", err)
	}
}

func TestHeuristicDOM_PrefersContentOverNav(t *testing.T) {
	html := `<html><body>
<div class="sidebar-menu"><a href="/a">` + prose + `</a></div>
<div class="post-content"><p>` + prose + `</p><p>` + prose + `</p></div>
</body></html>`
	renderer := &fakeRenderer{html: html}
	s := NewHeuristicDOM(renderer, models.DefaultConfig())

	result, err := s.Extract(context.Background(), testReq())
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}

	if result.Confidence > 0.8 {
		t.Errorf("Confidence = %f, want <= 0.8 cap", result.Confidence)
	}
	if !strings.Contains(result.Text, "committee published") {
		t.Error("winning candidate does not carry the body prose")
	}
	if _, ok := result.Metadata["score"]; !ok {
		t.Error("Metadata missing score")
	}
}

func TestHeuristicDOM_NothingAboveFloor(t *testing.T) {
	renderer := &fakeRenderer{html: `<html><body><div>tiny</div></body></html>`}
	s := NewHeuristicDOM(renderer, models.DefaultConfig())

	_, err := s.Extract(context.Background(), testReq())
	if !errors.Is(err, models.ErrInsufficientContent) {
		t.Fatalf("Extract() error = %v, want ErrInsufficientContent", err)
	}
}

func TestReaderMode_ExtractsParagraphs(t *testing.T) {
	renderer := &fakeRenderer{html: articlePage(prose)}
	s := NewReaderMode(renderer, models.DefaultConfig())

	result, err := s.Extract(context.Background(), testReq())
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}

	if result.Method != models.MethodReaderMode {
		t.Errorf("Method = %s, want %s", result.Method, models.MethodReaderMode)
	}
	if result.Confidence < 0.6 || result.Confidence > 0.7 {
		t.Errorf("Confidence = %f, want within [0.6, 0.7]", result.Confidence)
	}
	if !strings.Contains(result.Text, "committee published") {
		t.Error("Text missing article prose")
	}
}

func TestFallback_FiltersChromeLines(t *testing.T) {
	html := `<html><body>
<script>var tracking = "beacon";</script>
<p>Home | About | Contact</p>
<p>` + prose + `</p>
<p>COPYRIGHT NOTICE</p>
</body></html>`
	renderer := &fakeRenderer{html: html}
	s := NewFallback(renderer, models.DefaultConfig())

	result, err := s.Extract(context.Background(), testReq())
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}

	if result.Confidence != 0.4 {
		t.Errorf("Confidence = %f, want 0.4", result.Confidence)
	}
	if strings.Contains(result.Text, "tracking") {
		t.Error("Text contains script payload")
	}
	if strings.Contains(result.Text, "Home | About") {
		t.Error("Text contains navigation line")
	}
	if !strings.Contains(result.Text, "committee published") {
		t.Error("Text missing body prose")
	}
}

func TestFallback_EmptyBody(t *testing.T) {
	renderer := &fakeRenderer{html: `<html><body></body></html>`}
	s := NewFallback(renderer, models.DefaultConfig())

	_, err := s.Extract(context.Background(), testReq())
	if !errors.Is(err, models.ErrInsufficientContent) {
		t.Fatalf("Extract() error = %v, want ErrInsufficientContent", err)
	}
}

func TestDocumentAnalysis_PDFRenderFailure(t *testing.T) {
	renderer := &fakeRenderer{pdfErr: errors.New("page crashed")}
	s := NewDocumentAnalysis(renderer, nil, models.DefaultConfig())

	_, err := s.Extract(context.Background(), testReq())
	var renderErr *models.RenderError
	if !errors.As(err, &renderErr) {
		t.Fatalf("Extract() error = %v, want RenderError", err)
	}
}

func TestDocumentAnalysis_RejectsInvalidPDF(t *testing.T) {
	renderer := &fakeRenderer{pdf: []byte("not a pdf at all")}
	s := NewDocumentAnalysis(renderer, nil, models.DefaultConfig())

	_, err := s.Extract(context.Background(), testReq())
	var renderErr *models.RenderError
	if !errors.As(err, &renderErr) {
		t.Fatalf("Extract() error = %v, want RenderError for invalid PDF", err)
	}
}

func TestFinalize_ShortTextRejected(t *testing.T) {
	_, err := finalize("too short", models.MethodDOMSemantic, models.ContentArticle,
		0.9, time.Now(), nil, 100)
	if !errors.Is(err, models.ErrInsufficientContent) {
		t.Fatalf("finalize() error = %v, want ErrInsufficientContent", err)
	}
}

func TestFinalize_PopulatesCounts(t *testing.T) {
	result, err := finalize(prose, models.MethodDOMSemantic, models.ContentArticle,
		0.9, time.Now(), nil, 100)
	if err != nil {
		t.Fatalf("finalize() error = %v", err)
	}

	if result.WordCount != len(strings.Fields(result.Text)) {
		t.Errorf("WordCount = %d, want %d", result.WordCount, len(strings.Fields(result.Text)))
	}
	if result.CharCount != len(result.Text) {
		t.Errorf("CharCount = %d, want %d", result.CharCount, len(result.Text))
	}
	if _, ok := result.Metadata["quality_score"]; !ok {
		t.Error("Metadata missing quality_score")
	}
	if result.ContentType != models.ContentArticle {
		t.Errorf("ContentType = %s, want %s", result.ContentType, models.ContentArticle)
	}
}
