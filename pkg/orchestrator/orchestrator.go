package orchestrator

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/AJStolp/tts-reader-aws-backend-sub000/models"
	"github.com/AJStolp/tts-reader-aws-backend-sub000/pkg/caching"
	"github.com/AJStolp/tts-reader-aws-backend-sub000/pkg/classifier"
	"github.com/AJStolp/tts-reader-aws-backend-sub000/pkg/docanalysis"
	"github.com/AJStolp/tts-reader-aws-backend-sub000/pkg/render"
	"github.com/AJStolp/tts-reader-aws-backend-sub000/pkg/strategies"
	"github.com/AJStolp/tts-reader-aws-backend-sub000/pkg/textproc"
)

// Recorder persists completed extraction runs. The orchestrator treats
// persistence as best effort: a recording failure is logged, never
// surfaced to the caller.
type Recorder interface {
	RecordRun(ctx context.Context, run RunRecord) error
}

// RunRecord is the persisted summary of one successful extraction.
type RunRecord struct {
	ID          string
	URL         string
	Method      models.ExtractionMethod
	ContentType models.ContentType
	Confidence  float64
	CharCount   int
	WordCount   int
	Duration    time.Duration
	CreatedAt   time.Time
}

// Options tune a single Extract call.
type Options struct {
	// DisableDocumentAnalysis skips the document analysis strategy even
	// when an analyzer is configured, avoiding its per-call service cost.
	DisableDocumentAnalysis bool

	// Sequential runs DOM strategies one at a time in priority order
	// instead of fanning out. Required for short-circuiting.
	Sequential bool

	// ShortCircuitConfidence stops a sequential run early once a result
	// reaches this confidence. Zero means run everything and rank.
	ShortCircuitConfidence float64
}

// Orchestrator runs the extraction strategies against a URL, retries the
// retryable ones, and selects the best candidate by composite score.
type Orchestrator struct {
	cfg    *models.ExtractionConfig
	logger zerolog.Logger

	doc strategies.Strategy
	dom []strategies.Strategy

	attempts attemptLog
	recorder Recorder
	cache    *caching.ResultCache
}

// New wires the full strategy set. analyzer may be nil, in which case the
// document analysis strategy is unavailable and DOM strategies carry every
// request.
func New(cfg *models.ExtractionConfig, logger zerolog.Logger, renderer render.PageRenderer, analyzer docanalysis.Analyzer) *Orchestrator {
	o := &Orchestrator{
		cfg:    cfg,
		logger: logger,
		dom: []strategies.Strategy{
			strategies.NewSemanticDOM(renderer, cfg),
			strategies.NewHeuristicDOM(renderer, cfg),
			strategies.NewReaderMode(renderer, cfg),
			strategies.NewFallback(renderer, cfg),
		},
	}
	if analyzer != nil {
		o.doc = strategies.NewDocumentAnalysis(renderer, analyzer, cfg)
	}
	return o
}

// SetRecorder attaches run persistence. Call before serving requests.
func (o *Orchestrator) SetRecorder(r Recorder) {
	o.recorder = r
}

// SetCache attaches a result cache. Cached results bypass every strategy.
func (o *Orchestrator) SetCache(c *caching.ResultCache) {
	o.cache = c
}

// Extract runs the pipeline for one URL and returns the best candidate.
// It fails fast on invalid URLs and returns an ExhaustedError carrying
// per-strategy reasons when nothing produced usable text.
func (o *Orchestrator) Extract(ctx context.Context, rawURL string, opts Options) (*models.ExtractionResult, error) {
	if err := classifier.ValidateURL(rawURL); err != nil {
		return nil, err
	}

	if o.cache != nil {
		if cached, ok := o.cache.Get(rawURL); ok {
			o.logger.Debug().Str("url", rawURL).Msg("serving cached extraction result")
			return cached, nil
		}
	}

	start := time.Now()
	hint := classifier.FromURL(rawURL)

	var (
		candidates []*models.ExtractionResult
		reasons    = make(map[models.ExtractionMethod]string)
	)

	if o.doc != nil && !opts.DisableDocumentAnalysis {
		// Document analysis never retries: re-rendering the PDF and
		// re-billing the analysis service on a transient failure is not
		// worth it when four DOM strategies are still available.
		result, err := o.runStrategy(ctx, o.doc, rawURL, hint, o.cfg.UserAgentFor(0))
		if err != nil {
			reasons[o.doc.Method()] = err.Error()
		} else {
			candidates = append(candidates, result)
			if opts.Sequential && o.shortCircuits(opts, result) {
				return o.finish(ctx, rawURL, candidates, start)
			}
		}
	}

	if opts.Sequential {
		for _, s := range o.dom {
			result, err := o.runWithRetry(ctx, s, rawURL, hint)
			if err != nil {
				reasons[s.Method()] = err.Error()
				continue
			}
			candidates = append(candidates, result)
			if o.shortCircuits(opts, result) {
				break
			}
		}
	} else {
		var (
			mu sync.Mutex
			wg sync.WaitGroup
		)
		for _, s := range o.dom {
			wg.Add(1)
			go func(s strategies.Strategy) {
				defer wg.Done()
				result, err := o.runWithRetry(ctx, s, rawURL, hint)
				mu.Lock()
				defer mu.Unlock()
				if err != nil {
					reasons[s.Method()] = err.Error()
					return
				}
				candidates = append(candidates, result)
			}(s)
		}
		wg.Wait()
	}

	if len(candidates) == 0 {
		err := &models.ExhaustedError{URL: rawURL, Reasons: reasons}
		o.logger.Warn().Str("url", rawURL).Int("strategies_failed", len(reasons)).Msg("all extraction strategies exhausted")
		return nil, err
	}

	return o.finish(ctx, rawURL, candidates, start)
}

// Attempts returns a copy of the bounded attempt log, oldest first.
func (o *Orchestrator) Attempts() []models.ExtractionAttempt {
	return o.attempts.snapshot()
}

func (o *Orchestrator) shortCircuits(opts Options, result *models.ExtractionResult) bool {
	return opts.ShortCircuitConfidence > 0 && result.Confidence >= opts.ShortCircuitConfidence
}

// runWithRetry drives a DOM strategy through the configured retry budget,
// rotating user agents between attempts. The outcome is logged once per
// strategy per request, not once per retry.
func (o *Orchestrator) runWithRetry(ctx context.Context, s strategies.Strategy, rawURL string, hint models.ContentType) (*models.ExtractionResult, error) {
	retries := o.cfg.MaxRetries
	if retries < 1 {
		retries = 1
	}

	var lastErr error
	for attempt := 0; attempt < retries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				lastErr = ctx.Err()
				o.attempts.append(s.Method(), nil, lastErr)
				return nil, lastErr
			case <-time.After(o.cfg.RetryDelay):
			}
		}

		result, err := s.Extract(ctx, strategies.Request{
			URL:       rawURL,
			Hint:      hint,
			UserAgent: o.cfg.UserAgentFor(attempt),
		})
		if err == nil {
			o.attempts.append(s.Method(), result, nil)
			return result, nil
		}
		lastErr = err
		o.logger.Debug().
			Str("url", rawURL).
			Str("method", string(s.Method())).
			Int("attempt", attempt+1).
			Err(err).
			Msg("extraction attempt failed")

		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			break
		}
	}

	o.attempts.append(s.Method(), nil, lastErr)
	return nil, lastErr
}

// runStrategy executes a strategy exactly once and logs the outcome.
func (o *Orchestrator) runStrategy(ctx context.Context, s strategies.Strategy, rawURL string, hint models.ContentType, userAgent string) (*models.ExtractionResult, error) {
	result, err := s.Extract(ctx, strategies.Request{URL: rawURL, Hint: hint, UserAgent: userAgent})
	o.attempts.append(s.Method(), result, err)
	return result, err
}

// finish selects the winner, enriches it with language metadata, and
// records the run.
func (o *Orchestrator) finish(ctx context.Context, rawURL string, candidates []*models.ExtractionResult, start time.Time) (*models.ExtractionResult, error) {
	best := selectBest(candidates)

	if best.Metadata == nil {
		best.Metadata = make(map[string]any)
	}
	if lang, conf := textproc.DetectLanguage(best.Text); lang != "" {
		best.Metadata["language"] = lang
		best.Metadata["language_confidence"] = conf
	}
	best.Metadata["reading_time_minutes"] = textproc.EstimateReadingTime(best.Text, 0)
	best.Metadata["candidates"] = len(candidates)

	o.logger.Info().
		Str("url", rawURL).
		Str("method", string(best.Method)).
		Float64("confidence", best.Confidence).
		Int("chars", best.CharCount).
		Dur("elapsed", time.Since(start)).
		Msg("extraction complete")

	if o.cache != nil {
		if err := o.cache.Set(rawURL, best); err != nil {
			o.logger.Warn().Err(err).Str("url", rawURL).Msg("failed to cache extraction result")
		}
	}

	if o.recorder != nil {
		run := RunRecord{
			ID:          uuid.NewString(),
			URL:         rawURL,
			Method:      best.Method,
			ContentType: best.ContentType,
			Confidence:  best.Confidence,
			CharCount:   best.CharCount,
			WordCount:   best.WordCount,
			Duration:    time.Since(start),
			CreatedAt:   time.Now().UTC(),
		}
		if err := o.recorder.RecordRun(ctx, run); err != nil {
			o.logger.Warn().Err(err).Str("url", rawURL).Msg("failed to record extraction run")
		}
	}

	return best, nil
}
