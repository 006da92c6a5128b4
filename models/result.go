package models

import (
	"time"
)

// ExtractionResult is the uniform record every strategy produces.
// It is immutable once built; the quality properties are derived on
// demand rather than stored.
type ExtractionResult struct {
	Text           string           `json:"text"`
	Method         ExtractionMethod `json:"method"`
	ContentType    ContentType      `json:"content_type"`
	Confidence     float64          `json:"confidence"`
	WordCount      int              `json:"word_count"`
	CharCount      int              `json:"char_count"`
	ProcessingTime time.Duration    `json:"processing_time_ms"`
	Metadata       map[string]any   `json:"metadata,omitempty"`
}

// IsHighQuality reports whether the result meets the thresholds that make
// text read well aloud: trusted extraction, enough material, and a
// char-to-word ratio typical of prose.
func (r *ExtractionResult) IsHighQuality() bool {
	words := r.WordCount
	if words < 1 {
		words = 1
	}
	ratio := float64(r.CharCount) / float64(words)
	return r.Confidence >= 0.7 &&
		r.CharCount >= 200 &&
		r.WordCount >= 50 &&
		ratio >= 4 && ratio <= 8
}

// TTSSuitability scores how well the text will convert to speech, in [0,1].
// Starts from the strategy's confidence, rewards the length sweet spot,
// penalizes very short text, and rewards a prose-like char/word ratio.
func (r *ExtractionResult) TTSSuitability() float64 {
	score := r.Confidence

	switch {
	case r.CharCount >= 500 && r.CharCount <= 50000:
		score += 0.1
	case r.CharCount < 200:
		score -= 0.2
	}

	if r.WordCount > 0 {
		ratio := float64(r.CharCount) / float64(r.WordCount)
		if ratio >= 4 && ratio <= 8 {
			score += 0.1
		}
	}

	if score > 1 {
		score = 1
	}
	if score < 0 {
		score = 0
	}
	return score
}

// ExtractionAttempt records one strategy invocation, successful or not.
// Attempts feed health and analytics only; they never influence ranking.
type ExtractionAttempt struct {
	Method    ExtractionMethod  `json:"method"`
	Success   bool              `json:"success"`
	Result    *ExtractionResult `json:"result,omitempty"`
	Error     string            `json:"error,omitempty"`
	Timestamp time.Time         `json:"timestamp"`
}
