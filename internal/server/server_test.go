package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/AJStolp/tts-reader-aws-backend-sub000/models"
	"github.com/AJStolp/tts-reader-aws-backend-sub000/pkg/orchestrator"
)

// fakeRenderer returns a fixed page so handlers can be tested without a
// browser.
type fakeRenderer struct {
	html string
	err  error
}

func (f *fakeRenderer) HTML(ctx context.Context, url, userAgent string) (string, error) {
	return f.html, f.err
}

func (f *fakeRenderer) PDF(ctx context.Context, url, userAgent string) ([]byte, error) {
	return nil, errors.New("no browser in tests")
}

const articleHTML = `<html><head><title>Quarterly findings</title></head><body>
<article><p>The committee published its findings after months of careful review and deliberation.
Researchers examined hundreds of documents and interviewed dozens of witnesses across the region.</p>
<p>Their conclusions point to a gradual shift in how local institutions handle public records requests.</p></article>
</body></html>`

func testServer(renderer *fakeRenderer) *Server {
	cfg := models.DefaultConfig()
	cfg.MaxRetries = 1
	cfg.RetryDelay = time.Millisecond
	orch := orchestrator.New(cfg, zerolog.Nop(), renderer, nil)
	return New(":0", zerolog.Nop(), orch, nil)
}

func TestHandleExtract_Success(t *testing.T) {
	srv := testServer(&fakeRenderer{html: articleHTML})
	router := srv.Router()

	body := `{"url": "https://example.com/article/findings"}`
	req := httptest.NewRequest(http.MethodPost, "/extract", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body: %s", rec.Code, rec.Body.String())
	}

	var resp extractResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Text == "" {
		t.Error("response text is empty")
	}
	if resp.Method == "" {
		t.Error("response method is empty")
	}
	if resp.Confidence <= 0 {
		t.Errorf("confidence = %f, want > 0", resp.Confidence)
	}
}

func TestHandleExtract_InvalidURL(t *testing.T) {
	srv := testServer(&fakeRenderer{html: articleHTML})
	router := srv.Router()

	body := `{"url": "ftp://example.com/file"}`
	req := httptest.NewRequest(http.MethodPost, "/extract", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestHandleExtract_MissingURL(t *testing.T) {
	srv := testServer(&fakeRenderer{html: articleHTML})
	router := srv.Router()

	req := httptest.NewRequest(http.MethodPost, "/extract", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestHandleExtract_BadJSON(t *testing.T) {
	srv := testServer(&fakeRenderer{html: articleHTML})
	router := srv.Router()

	req := httptest.NewRequest(http.MethodPost, "/extract", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestHandleExtract_Exhausted(t *testing.T) {
	srv := testServer(&fakeRenderer{err: errors.New("connection refused")})
	router := srv.Router()

	body := `{"url": "https://example.com/unreachable"}`
	req := httptest.NewRequest(http.MethodPost, "/extract", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422; body: %s", rec.Code, rec.Body.String())
	}

	var resp errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp.Reasons) != 4 {
		t.Errorf("len(Reasons) = %d, want 4 (one per DOM strategy)", len(resp.Reasons))
	}
}

func TestHandleHealth(t *testing.T) {
	srv := testServer(&fakeRenderer{html: articleHTML})
	router := srv.Router()

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var health orchestrator.Health
	if err := json.Unmarshal(rec.Body.Bytes(), &health); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if health.Status != "healthy" {
		t.Errorf("status = %q, want healthy with an empty log", health.Status)
	}
	if health.DocumentAnalysisAvailable {
		t.Error("DocumentAnalysisAvailable = true, want false without an analyzer")
	}
	if !health.DOMExtractionAvailable {
		t.Error("DOMExtractionAvailable = false, want true")
	}
}

func TestHandleAnalytics(t *testing.T) {
	srv := testServer(&fakeRenderer{html: articleHTML})
	router := srv.Router()

	req := httptest.NewRequest(http.MethodGet, "/analytics", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var analytics orchestrator.Analytics
	if err := json.Unmarshal(rec.Body.Bytes(), &analytics); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if analytics.TotalAttempts != 0 {
		t.Errorf("TotalAttempts = %d, want 0 before any extraction", analytics.TotalAttempts)
	}
}

func TestHandleRuns_NoStore(t *testing.T) {
	srv := testServer(&fakeRenderer{html: articleHTML})
	router := srv.Router()

	req := httptest.NewRequest(http.MethodGet, "/runs", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if got := strings.TrimSpace(rec.Body.String()); got != "[]" {
		t.Errorf("body = %q, want empty array", got)
	}
}
