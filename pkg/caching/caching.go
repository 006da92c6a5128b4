// Package caching persists extraction results on disk so repeat requests
// for the same URL skip the render and analysis cost.
package caching

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/AJStolp/tts-reader-aws-backend-sub000/models"
)

// ResultCache is a file-based cache of extraction results with a TTL.
type ResultCache struct {
	dir string
	ttl time.Duration
}

// NewResultCache creates the cache directory if needed. A zero ttl means
// entries never expire.
func NewResultCache(dir string, ttl time.Duration) (*ResultCache, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}
	return &ResultCache{
		dir: dir,
		ttl: ttl,
	}, nil
}

// key generates a SHA256 hash of the URL to use as a filename.
func (c *ResultCache) key(url string) string {
	hash := sha256.Sum256([]byte(url))
	return fmt.Sprintf("%x.json", hash)
}

// Get retrieves a cached result for the URL. Returns false on a miss, an
// expired entry, or an unreadable file.
func (c *ResultCache) Get(url string) (*models.ExtractionResult, bool) {
	filePath := filepath.Join(c.dir, c.key(url))

	info, err := os.Stat(filePath)
	if os.IsNotExist(err) {
		return nil, false
	}

	if c.ttl > 0 && time.Since(info.ModTime()) > c.ttl {
		return nil, false
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, false
	}

	var result models.ExtractionResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, false
	}
	return &result, true
}

// Set stores a result for the URL.
func (c *ResultCache) Set(url string, result *models.ExtractionResult) error {
	data, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to marshal cached result: %w", err)
	}

	filePath := filepath.Join(c.dir, c.key(url))
	if err := os.WriteFile(filePath, data, 0644); err != nil {
		return fmt.Errorf("failed to write to cache: %w", err)
	}
	return nil
}
