package caching

import (
	"testing"
	"time"

	"github.com/AJStolp/tts-reader-aws-backend-sub000/models"
)

func TestResultCache_RoundTrip(t *testing.T) {
	cache, err := NewResultCache(t.TempDir(), time.Hour)
	if err != nil {
		t.Fatalf("NewResultCache() error = %v", err)
	}

	url := "https://example.com/article/one"
	stored := &models.ExtractionResult{
		Text:       "Cached article body long enough to matter.",
		Method:     models.MethodDOMSemantic,
		Confidence: 0.9,
		CharCount:  42,
		WordCount:  7,
	}

	if err := cache.Set(url, stored); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	got, ok := cache.Get(url)
	if !ok {
		t.Fatal("Get() miss after Set")
	}
	if got.Text != stored.Text {
		t.Errorf("Text = %q, want %q", got.Text, stored.Text)
	}
	if got.Method != stored.Method {
		t.Errorf("Method = %s, want %s", got.Method, stored.Method)
	}
}

func TestResultCache_Miss(t *testing.T) {
	cache, err := NewResultCache(t.TempDir(), time.Hour)
	if err != nil {
		t.Fatalf("NewResultCache() error = %v", err)
	}

	if _, ok := cache.Get("https://example.com/never-stored"); ok {
		t.Error("Get() hit for a URL never stored")
	}
}

func TestResultCache_DistinctURLs(t *testing.T) {
	cache, err := NewResultCache(t.TempDir(), time.Hour)
	if err != nil {
		t.Fatalf("NewResultCache() error = %v", err)
	}

	if err := cache.Set("https://example.com/a", &models.ExtractionResult{Text: "a"}); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if err := cache.Set("https://example.com/b", &models.ExtractionResult{Text: "b"}); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	got, ok := cache.Get("https://example.com/b")
	if !ok || got.Text != "b" {
		t.Errorf("Get(b) = %+v %v, want text b", got, ok)
	}
}
