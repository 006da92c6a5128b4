// Package classifier guesses a content category for a URL from cheap
// signals: structured-data type hints, URL path keywords, and known
// social-media domains. Pure functions, safe for concurrent use.
package classifier

import (
	"net/url"
	"strings"

	"github.com/AJStolp/tts-reader-aws-backend-sub000/models"
)

// PageMeta carries optional page-level hints. All fields may be empty;
// classification degrades to URL-only signals.
type PageMeta struct {
	Title               string
	MetaDescription     string
	StructuredDataTypes []string
}

// socialDomains are platforms whose pages read poorly aloud.
var socialDomains = []string{
	"twitter.com", "x.com", "facebook.com", "linkedin.com",
	"instagram.com", "youtube.com", "tiktok.com", "reddit.com",
}

// pathKeywords maps URL path fragments to content types, checked in order
// of declaration within each group.
var pathKeywords = []struct {
	fragments []string
	ctype     models.ContentType
}{
	{[]string{"/article/", "/story/", "/news/"}, models.ContentArticle},
	{[]string{"/blog/", "/post/", "/posts/"}, models.ContentBlogPost},
	{[]string{"/docs/", "/documentation/", "/wiki/", "/help/"}, models.ContentDocumentation},
	{[]string{"/product/", "/shop/", "/store/"}, models.ContentECommerce},
	{[]string{"/forum/", "/thread/", "/topic/"}, models.ContentForum},
}

// Classify returns a content-type guess for a URL, optionally refined by
// page metadata. It never fails; anything unrecognized is UNKNOWN.
// Precedence: structured-data hints > URL path keywords > social domains
// > title/description keywords.
func Classify(rawURL string, meta *PageMeta) models.ContentType {
	if meta != nil {
		if ct := fromStructuredData(meta.StructuredDataTypes); ct != models.ContentUnknown {
			return ct
		}
	}

	if ct := FromURL(rawURL); ct != models.ContentUnknown {
		return ct
	}

	if meta != nil {
		if ct := fromTitleAndDescription(meta.Title, meta.MetaDescription); ct != models.ContentUnknown {
			return ct
		}
	}

	return models.ContentUnknown
}

// FromURL classifies using only the URL string.
func FromURL(rawURL string) models.ContentType {
	lower := strings.ToLower(rawURL)

	for _, group := range pathKeywords {
		for _, fragment := range group.fragments {
			if strings.Contains(lower, fragment) {
				return group.ctype
			}
		}
	}

	if IsSocialMedia(rawURL) {
		return models.ContentSocialMedia
	}

	return models.ContentUnknown
}

// fromStructuredData maps schema.org types to content types.
func fromStructuredData(types []string) models.ContentType {
	for _, t := range types {
		switch t {
		case "Article", "NewsArticle":
			return models.ContentArticle
		case "BlogPosting":
			return models.ContentBlogPost
		case "Product":
			return models.ContentECommerce
		case "DiscussionForumPosting":
			return models.ContentForum
		}
	}
	return models.ContentUnknown
}

// fromTitleAndDescription is the weakest signal, checked last.
func fromTitleAndDescription(title, description string) models.ContentType {
	combined := strings.ToLower(title + " " + description)

	for _, word := range []string{"article", "story", "news"} {
		if strings.Contains(combined, word) {
			return models.ContentArticle
		}
	}
	for _, word := range []string{"blog", "post"} {
		if strings.Contains(combined, word) {
			return models.ContentBlogPost
		}
	}

	return models.ContentUnknown
}

// IsSocialMedia reports whether the URL's host belongs to a known
// social-media platform.
func IsSocialMedia(rawURL string) bool {
	host := Domain(rawURL)
	for _, social := range socialDomains {
		if host == social || strings.HasSuffix(host, "."+social) {
			return true
		}
	}
	return false
}

// Domain extracts the lowercased host from a URL, or "" if unparseable.
func Domain(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return strings.ToLower(parsed.Hostname())
}

// ValidateURL checks that a URL is well formed and uses an allowed scheme.
// Localhost hosts are accepted for development use.
func ValidateURL(rawURL string) error {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return models.ErrInvalidURL
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return models.ErrInvalidURL
	}
	host := parsed.Hostname()
	if host == "" {
		return models.ErrInvalidURL
	}
	isLocal := host == "localhost" || strings.HasPrefix(host, "127.0.0.1")
	if !strings.Contains(host, ".") && !isLocal {
		return models.ErrInvalidURL
	}
	return nil
}
