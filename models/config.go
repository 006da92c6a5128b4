package models

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// ExtractionConfig holds the tunable knobs of the extraction pipeline.
// Zero values are replaced by defaults in Normalize, so a partial YAML
// file or a bare DefaultConfig() both work.
type ExtractionConfig struct {
	// Document-analysis limits.
	MaxPDFSize         int64         `yaml:"max_pdf_size"`
	DocAnalysisTimeout time.Duration `yaml:"doc_analysis_timeout"`

	// Page loading.
	PageLoadTimeout time.Duration `yaml:"page_load_timeout"`
	ContentLoadWait time.Duration `yaml:"content_load_wait"`

	// Quality thresholds and retry policy.
	MinTextLength int           `yaml:"min_text_length"`
	MaxRetries    int           `yaml:"max_retries"`
	RetryDelay    time.Duration `yaml:"retry_delay"`

	// UserAgents are rotated across DOM retry attempts.
	UserAgents []string `yaml:"user_agents"`

	// ContentSelectors maps a CSS selector to its priority (1-10).
	// Semantic selectors outrank content-class selectors, which outrank IDs.
	ContentSelectors map[string]int `yaml:"content_selectors"`

	// ExcludeSelectors are stripped before reader-mode extraction.
	ExcludeSelectors []string `yaml:"exclude_selectors"`

	// Heuristic weights. Fuzzy by nature; tune without touching orchestration.
	Heuristics HeuristicWeights `yaml:"heuristics"`
}

// HeuristicWeights are the multipliers of the heuristic-DOM scoring formula.
type HeuristicWeights struct {
	SemanticTagBoost   float64 `yaml:"semantic_tag_boost"`
	ContentTokenBoost  float64 `yaml:"content_token_boost"`
	NavTokenPenalty    float64 `yaml:"nav_token_penalty"`
	LinkDensityPenalty float64 `yaml:"link_density_penalty"`
	LinkDensityCutoff  float64 `yaml:"link_density_cutoff"`
}

// DefaultConfig returns the configuration used when no YAML file is given.
func DefaultConfig() *ExtractionConfig {
	cfg := &ExtractionConfig{}
	cfg.Normalize()
	return cfg
}

// LoadConfig reads a YAML config file and fills in defaults for any field
// the file leaves unset.
func LoadConfig(path string) (*ExtractionConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := &ExtractionConfig{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.Normalize()
	return cfg, nil
}

// Normalize fills zero-valued fields with defaults.
func (c *ExtractionConfig) Normalize() {
	if c.MaxPDFSize <= 0 {
		c.MaxPDFSize = 10 << 20 // 10MB
	}
	if c.DocAnalysisTimeout <= 0 {
		c.DocAnalysisTimeout = 45 * time.Second
	}
	if c.PageLoadTimeout <= 0 {
		c.PageLoadTimeout = 30 * time.Second
	}
	if c.ContentLoadWait <= 0 {
		c.ContentLoadWait = 3 * time.Second
	}
	if c.MinTextLength <= 0 {
		c.MinTextLength = 100
	}
	if c.MaxRetries <= 0 {
		c.MaxRetries = 3
	}
	if c.RetryDelay <= 0 {
		c.RetryDelay = 2 * time.Second
	}
	if len(c.UserAgents) == 0 {
		c.UserAgents = []string{
			"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
			"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.1 Safari/605.1.15",
			"Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
		}
	}
	if len(c.ContentSelectors) == 0 {
		c.ContentSelectors = map[string]int{
			// Semantic selectors (highest priority)
			"main":           10,
			"article":        10,
			"[role=main]":    10,
			"[role=article]": 10,

			// Content-specific class selectors
			".article-content": 9,
			".post-content":    9,
			".entry-content":   9,
			".content-body":    9,
			".article-body":    9,
			".story-body":      9,
			".article-text":    9,
			".main-content":    8,
			".page-content":    8,
			".post-body":       8,
			".entry-text":      8,
			".documentation":   8,
			".docs-content":    8,
			".wiki-content":    8,
			".content":         7,

			// ID-based selectors
			"#main-content":    8,
			"#article-content": 8,
			"#main":            8,
			"#content":         7,
		}
	}
	if len(c.ExcludeSelectors) == 0 {
		c.ExcludeSelectors = []string{
			"script", "style", "noscript", "nav", "header", "footer", "aside",
			".sidebar", ".navigation", ".menu", ".nav", ".header", ".footer",
			".advertisement", ".ad", ".social", ".share", ".related",
			".comments", ".pagination", ".breadcrumb", ".widget", ".toolbar",
			".banner", ".popup", ".modal", ".overlay", ".skip-link",
			".screen-reader-text", ".visually-hidden",
			"[class*=cookie]", "[class*=gdpr]", "[class*=consent]",
		}
	}
	if c.Heuristics.SemanticTagBoost == 0 {
		c.Heuristics.SemanticTagBoost = 1.5
	}
	if c.Heuristics.ContentTokenBoost == 0 {
		c.Heuristics.ContentTokenBoost = 1.3
	}
	if c.Heuristics.NavTokenPenalty == 0 {
		c.Heuristics.NavTokenPenalty = 0.3
	}
	if c.Heuristics.LinkDensityPenalty == 0 {
		c.Heuristics.LinkDensityPenalty = 0.5
	}
	if c.Heuristics.LinkDensityCutoff == 0 {
		c.Heuristics.LinkDensityCutoff = 0.5
	}
}

// UserAgentFor returns the user agent for a given attempt number, rotating
// through the configured list.
func (c *ExtractionConfig) UserAgentFor(attempt int) string {
	if len(c.UserAgents) == 0 {
		return ""
	}
	return c.UserAgents[attempt%len(c.UserAgents)]
}
