package models

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidURL is returned before any strategy runs when the input URL is
// malformed or uses a disallowed scheme.
var ErrInvalidURL = errors.New("invalid URL")

// ErrInsufficientContent marks a strategy result below the minimum text
// length. It stays strategy-local; the orchestrator records it as a failed
// attempt and moves on.
var ErrInsufficientContent = errors.New("extracted text below minimum length")

// RenderError wraps a page navigation or render failure.
type RenderError struct {
	URL string
	Err error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("render failed for %s: %v", e.URL, e.Err)
}

func (e *RenderError) Unwrap() error { return e.Err }

// ServiceError wraps a cloud document-analysis call failure. These calls
// are cost-bearing and never retried automatically.
type ServiceError struct {
	Err error
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("document analysis service: %v", e.Err)
}

func (e *ServiceError) Unwrap() error { return e.Err }

// ExhaustedError is the only error a normal extraction run surfaces to the
// caller: every attempted strategy failed or produced nothing acceptable.
// Reasons holds one entry per attempted strategy for diagnosability.
type ExhaustedError struct {
	URL     string
	Reasons map[ExtractionMethod]string
}

func (e *ExhaustedError) Error() string {
	if len(e.Reasons) == 0 {
		return fmt.Sprintf("extraction failed for %s: no strategies available", e.URL)
	}
	parts := make([]string, 0, len(e.Reasons))
	for method, reason := range e.Reasons {
		parts = append(parts, fmt.Sprintf("%s: %s", method, reason))
	}
	return fmt.Sprintf("extraction failed for %s: %s", e.URL, strings.Join(parts, "; "))
}
