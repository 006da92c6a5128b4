package orchestrator

import (
	"sync"
	"time"

	"github.com/AJStolp/tts-reader-aws-backend-sub000/models"
)

const (
	// attemptLogMax caps retained attempts; on overflow the log is trimmed
	// to attemptLogTrim so trimming is amortized, not per-append.
	attemptLogMax  = 100
	attemptLogTrim = 50
)

// attemptLog is the bounded, append-only record of strategy outcomes.
// It is the only mutable state shared across concurrent extraction
// requests, so appends and reads are mutex-serialized.
type attemptLog struct {
	mu      sync.Mutex
	entries []models.ExtractionAttempt
}

func (l *attemptLog) append(method models.ExtractionMethod, result *models.ExtractionResult, err error) {
	attempt := models.ExtractionAttempt{
		Method:    method,
		Success:   err == nil && result != nil,
		Result:    result,
		Timestamp: time.Now().UTC(),
	}
	if err != nil {
		attempt.Error = err.Error()
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	l.entries = append(l.entries, attempt)
	if len(l.entries) > attemptLogMax {
		trimmed := make([]models.ExtractionAttempt, attemptLogTrim)
		copy(trimmed, l.entries[len(l.entries)-attemptLogTrim:])
		l.entries = trimmed
	}
}

// snapshot returns a copy of the current entries, oldest first.
func (l *attemptLog) snapshot() []models.ExtractionAttempt {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]models.ExtractionAttempt, len(l.entries))
	copy(out, l.entries)
	return out
}
