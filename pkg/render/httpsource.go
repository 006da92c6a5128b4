package render

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// maxSnapshotBytes caps how much of a response body is read. Pages larger
// than this are cut off rather than rejected.
const maxSnapshotBytes = 10 << 20

// HTTPSource fetches raw HTML over plain HTTP. It cannot execute
// JavaScript or print PDFs, but it needs no browser and is the renderer
// of last resort when Chrome is unavailable.
type HTTPSource struct {
	client *http.Client
}

// NewHTTPSource returns an HTTPSource with the given per-request timeout.
func NewHTTPSource(timeout time.Duration) *HTTPSource {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &HTTPSource{
		client: &http.Client{Timeout: timeout},
	}
}

// HTML fetches the page body without rendering.
func (s *HTTPSource) HTML(ctx context.Context, url, userAgent string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("failed to build request: %w", err)
	}
	if userAgent != "" {
		req.Header.Set("User-Agent", userAgent)
	}
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("failed to fetch %s: status %d", url, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxSnapshotBytes))
	if err != nil {
		return "", fmt.Errorf("failed to read response body: %w", err)
	}
	return string(body), nil
}

// PDF is unsupported without a browser.
func (s *HTTPSource) PDF(ctx context.Context, url, userAgent string) ([]byte, error) {
	return nil, fmt.Errorf("PDF rendering requires a browser session")
}
