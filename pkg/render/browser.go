package render

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/go-rod/stealth"
	"github.com/rs/zerolog/log"
)

// Browser renders pages through a shared headless Chrome instance. Pages
// are created per call so concurrent renders never share state; the Chrome
// process itself is reused until Close.
type Browser struct {
	pageLoadTimeout time.Duration
	contentLoadWait time.Duration

	mu      sync.Mutex
	lnch    *launcher.Launcher
	browser *rod.Browser
}

// BrowserConfig configures a Browser.
type BrowserConfig struct {
	// PageLoadTimeout bounds navigation and load waits. Default: 30s.
	PageLoadTimeout time.Duration
	// ContentLoadWait is the extra delay for dynamic content. Default: 3s.
	ContentLoadWait time.Duration
}

// NewBrowser launches headless Chrome and connects to it.
func NewBrowser(cfg BrowserConfig) (*Browser, error) {
	if cfg.PageLoadTimeout <= 0 {
		cfg.PageLoadTimeout = 30 * time.Second
	}
	if cfg.ContentLoadWait <= 0 {
		cfg.ContentLoadWait = 3 * time.Second
	}

	lnch := launcher.New().
		Headless(true).
		NoSandbox(true).
		Set("disable-gpu").
		Set("disable-dev-shm-usage").
		Set("disable-extensions")

	controlURL, err := lnch.Launch()
	if err != nil {
		return nil, fmt.Errorf("failed to launch browser: %w", err)
	}

	browser := rod.New().ControlURL(controlURL)
	if err := browser.Connect(); err != nil {
		lnch.Cleanup()
		return nil, fmt.Errorf("failed to connect to browser: %w", err)
	}

	return &Browser{
		pageLoadTimeout: cfg.PageLoadTimeout,
		contentLoadWait: cfg.ContentLoadWait,
		lnch:            lnch,
		browser:         browser,
	}, nil
}

// HTML renders the page and returns the full DOM as HTML, with overlays
// and consent chrome removed first.
func (b *Browser) HTML(ctx context.Context, url, userAgent string) (string, error) {
	page, err := b.openPage(ctx, url, userAgent)
	if err != nil {
		return "", err
	}
	defer page.Close()

	res, err := page.Context(ctx).Eval(`() => document.documentElement.outerHTML`)
	if err != nil {
		return "", fmt.Errorf("failed to read DOM: %w", err)
	}
	return res.Value.Str(), nil
}

// PDF renders the page and prints it to an A4 PDF without backgrounds,
// which keeps the document small and text-dominant for layout analysis.
func (b *Browser) PDF(ctx context.Context, url, userAgent string) ([]byte, error) {
	page, err := b.openPage(ctx, url, userAgent)
	if err != nil {
		return nil, err
	}
	defer page.Close()

	margin := 0.4 // inches, ~1cm
	reader, err := page.Context(ctx).PDF(&proto.PagePrintToPDF{
		PrintBackground:   false,
		PreferCSSPageSize: true,
		MarginTop:         &margin,
		MarginBottom:      &margin,
		MarginLeft:        &margin,
		MarginRight:       &margin,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to print page to PDF: %w", err)
	}

	pdf, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read PDF stream: %w", err)
	}
	return pdf, nil
}

// openPage creates a stealth page, navigates, waits for dynamic content,
// and strips overlays. The caller owns the returned page and must Close it.
func (b *Browser) openPage(ctx context.Context, url, userAgent string) (*rod.Page, error) {
	b.mu.Lock()
	browser := b.browser
	b.mu.Unlock()
	if browser == nil {
		return nil, fmt.Errorf("browser is closed")
	}

	page, err := stealth.Page(browser)
	if err != nil {
		return nil, fmt.Errorf("failed to create page: %w", err)
	}

	ok := false
	defer func() {
		if !ok {
			page.Close()
		}
	}()

	if userAgent != "" {
		if err := page.SetUserAgent(&proto.NetworkSetUserAgentOverride{UserAgent: userAgent}); err != nil {
			return nil, fmt.Errorf("failed to set user agent: %w", err)
		}
	}

	if err := page.SetViewport(&proto.EmulationSetDeviceMetricsOverride{
		Width:             1200,
		Height:            800,
		DeviceScaleFactor: 1,
	}); err != nil {
		return nil, fmt.Errorf("failed to set viewport: %w", err)
	}

	navCtx, cancel := context.WithTimeout(ctx, b.pageLoadTimeout)
	defer cancel()

	if err := page.Context(navCtx).Navigate(url); err != nil {
		return nil, fmt.Errorf("failed to navigate to %s: %w", url, err)
	}
	if err := page.Context(navCtx).WaitLoad(); err != nil {
		// Slow pages are still usable; log and keep whatever has rendered.
		log.Warn().Str("url", url).Err(err).Msg("page load wait timed out")
	}

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-time.After(b.contentLoadWait):
	}

	if _, err := page.Context(ctx).Eval(overlayRemovalJS); err != nil {
		log.Warn().Str("url", url).Err(err).Msg("overlay removal failed")
	}

	ok = true
	return page, nil
}

// Close shuts down the shared Chrome instance.
func (b *Browser) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.browser == nil {
		return nil
	}
	err := b.browser.Close()
	b.browser = nil
	if b.lnch != nil {
		b.lnch.Cleanup()
	}
	return err
}
