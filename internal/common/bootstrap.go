package common

import (
	"context"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"

	"github.com/AJStolp/tts-reader-aws-backend-sub000/models"
	"github.com/AJStolp/tts-reader-aws-backend-sub000/pkg/caching"
	"github.com/AJStolp/tts-reader-aws-backend-sub000/pkg/db"
	"github.com/AJStolp/tts-reader-aws-backend-sub000/pkg/docanalysis"
	"github.com/AJStolp/tts-reader-aws-backend-sub000/pkg/orchestrator"
	"github.com/AJStolp/tts-reader-aws-backend-sub000/pkg/render"
)

// NewLogger builds the console logger shared by every command.
func NewLogger(c *cli.Context) zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339
	level := zerolog.InfoLevel
	switch {
	case c.Bool("quiet"):
		level = zerolog.ErrorLevel
	case c.Bool("verbose"):
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		Level(level).
		With().Timestamp().Logger()
}

// LoadConfig reads the extraction config file named by the --config flag,
// falling back to defaults when the flag is unset.
func LoadConfig(c *cli.Context) (*models.ExtractionConfig, error) {
	path := c.String("config")
	if path == "" {
		return models.DefaultConfig(), nil
	}
	return models.LoadConfig(path)
}

// Pipeline bundles everything a command needs to run extractions.
type Pipeline struct {
	Config       *models.ExtractionConfig
	Logger       zerolog.Logger
	Orchestrator *orchestrator.Orchestrator
	Store        *db.DB

	browser *render.Browser
}

// BuildPipeline wires renderer, analyzer, persistence, and orchestrator
// from CLI flags. Callers must Close it.
func BuildPipeline(ctx context.Context, c *cli.Context, logger zerolog.Logger) (*Pipeline, error) {
	cfg, err := LoadConfig(c)
	if err != nil {
		return nil, err
	}

	p := &Pipeline{Config: cfg, Logger: logger}

	var renderer render.PageRenderer
	if c.Bool("no-browser") {
		renderer = render.NewHTTPSource(cfg.PageLoadTimeout)
	} else {
		browser, err := render.NewBrowser(render.BrowserConfig{
			PageLoadTimeout: cfg.PageLoadTimeout,
			ContentLoadWait: cfg.ContentLoadWait,
		})
		if err != nil {
			return nil, err
		}
		p.browser = browser
		renderer = browser
	}

	var analyzer docanalysis.Analyzer
	if !c.Bool("no-textract") {
		analyzer, err = docanalysis.NewTextractAnalyzer(ctx)
		if err != nil {
			// Document analysis is an enhancement, not a requirement.
			logger.Warn().Err(err).Msg("document analysis unavailable, continuing with DOM strategies")
			analyzer = nil
		}
	}

	p.Orchestrator = orchestrator.New(cfg, logger, renderer, analyzer)

	if cacheDir := c.String("cache-dir"); cacheDir != "" {
		cache, err := caching.NewResultCache(cacheDir, c.Duration("cache-max-age"))
		if err != nil {
			p.Close()
			return nil, err
		}
		p.Orchestrator.SetCache(cache)
	}

	if dbPath := c.String("db"); dbPath != "" {
		store, err := db.Open(dbPath)
		if err != nil {
			p.Close()
			return nil, err
		}
		p.Store = store
		p.Orchestrator.SetRecorder(store)
	}

	return p, nil
}

// Close releases the browser and database.
func (p *Pipeline) Close() {
	if p.browser != nil {
		if err := p.browser.Close(); err != nil {
			p.Logger.Warn().Err(err).Msg("failed to close browser")
		}
	}
	if p.Store != nil {
		_ = p.Store.Close()
	}
}
