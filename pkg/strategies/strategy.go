// Package strategies implements the five extraction techniques behind one
// shared interface: document analysis, semantic DOM, heuristic DOM, reader
// mode, and whole-body fallback. Strategies are stateless and independently
// constructible; the orchestrator owns sequencing and retries.
package strategies

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/AJStolp/tts-reader-aws-backend-sub000/models"
	"github.com/AJStolp/tts-reader-aws-backend-sub000/pkg/textproc"
)

// Request carries one extraction attempt's inputs. The orchestrator
// rotates UserAgent across retries; strategies just use what they're given.
type Request struct {
	URL       string
	Hint      models.ContentType
	UserAgent string
}

// Strategy is one self-contained extraction technique.
type Strategy interface {
	// Method identifies the strategy in results and attempt logs.
	Method() models.ExtractionMethod

	// Extract produces a cleaned result or an error. Implementations must
	// honor ctx and never mutate shared state.
	Extract(ctx context.Context, req Request) (*models.ExtractionResult, error)
}

// finalize runs the common cleaning pass and builds the uniform result.
// Returns ErrInsufficientContent when the cleaned text is below minLen,
// so short junk never reaches the candidate pool.
func finalize(text string, method models.ExtractionMethod, hint models.ContentType,
	confidence float64, start time.Time, metadata map[string]any, minLen int) (*models.ExtractionResult, error) {

	cleaned := textproc.CleanForSpeech(text)
	if len(cleaned) < minLen {
		return nil, fmt.Errorf("%w: %d chars after cleaning (minimum %d)",
			models.ErrInsufficientContent, len(cleaned), minLen)
	}

	if metadata == nil {
		metadata = map[string]any{}
	}
	metadata["quality_score"] = textproc.ScoreQuality(cleaned, method)

	if hint == "" {
		hint = models.ContentUnknown
	}

	return &models.ExtractionResult{
		Text:           cleaned,
		Method:         method,
		ContentType:    hint,
		Confidence:     confidence,
		WordCount:      len(strings.Fields(cleaned)),
		CharCount:      len(cleaned),
		ProcessingTime: time.Since(start),
		Metadata:       metadata,
	}, nil
}
