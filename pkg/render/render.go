// Package render provides the page-render capability behind the extraction
// strategies: headless-Chrome HTML snapshots and PDF rendering via Rod,
// with a plain-HTTP snapshot source as a browserless fallback.
package render

import (
	"context"
)

// PageRenderer produces isolated views of a live webpage. Each call opens
// its own session; implementations must release all resources on every
// exit path, including cancellation.
type PageRenderer interface {
	// HTML navigates to the URL and returns the rendered DOM as HTML.
	HTML(ctx context.Context, url, userAgent string) (string, error)

	// PDF navigates to the URL and prints it to a fixed-layout PDF.
	PDF(ctx context.Context, url, userAgent string) ([]byte, error)
}
