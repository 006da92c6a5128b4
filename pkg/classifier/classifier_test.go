package classifier

import (
	"errors"
	"testing"

	"github.com/AJStolp/tts-reader-aws-backend-sub000/models"
)

func TestFromURL(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want models.ContentType
	}{
		{"article path", "https://example.com/article/some-title", models.ContentArticle},
		{"news path", "https://example.com/news/2026/08/headline", models.ContentArticle},
		{"blog path", "https://example.com/blog/my-thoughts", models.ContentBlogPost},
		{"docs path", "https://example.com/docs/getting-started", models.ContentDocumentation},
		{"wiki path", "https://en.example.org/wiki/Some_Topic", models.ContentDocumentation},
		{"shop path", "https://example.com/product/widget-9000", models.ContentECommerce},
		{"forum path", "https://example.com/forum/general-discussion", models.ContentForum},
		{"social domain", "https://twitter.com/someone/status/123", models.ContentSocialMedia},
		{"social subdomain", "https://mobile.facebook.com/page", models.ContentSocialMedia},
		{"plain page", "https://example.com/about", models.ContentUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FromURL(tt.url); got != tt.want {
				t.Errorf("FromURL(%q) = %s, want %s", tt.url, got, tt.want)
			}
		})
	}
}

func TestClassify_StructuredDataWinsOverPath(t *testing.T) {
	// Path says blog, structured data says product. Structured data is the
	// page's own declaration and takes precedence.
	meta := &PageMeta{StructuredDataTypes: []string{"Product"}}
	got := Classify("https://example.com/blog/announcing-our-widget", meta)
	if got != models.ContentECommerce {
		t.Errorf("Classify() = %s, want %s", got, models.ContentECommerce)
	}
}

func TestClassify_FallsBackToTitle(t *testing.T) {
	meta := &PageMeta{Title: "Breaking news: something happened"}
	got := Classify("https://example.com/p/12345", meta)
	if got != models.ContentArticle {
		t.Errorf("Classify() = %s, want %s", got, models.ContentArticle)
	}
}

func TestClassify_UnknownWhenNoSignals(t *testing.T) {
	got := Classify("https://example.com/x", &PageMeta{})
	if got != models.ContentUnknown {
		t.Errorf("Classify() = %s, want %s", got, models.ContentUnknown)
	}
}

func TestValidateURL(t *testing.T) {
	valid := []string{
		"https://example.com/article",
		"http://example.com",
		"http://localhost:8080/test",
		"http://127.0.0.1/page",
	}
	for _, u := range valid {
		if err := ValidateURL(u); err != nil {
			t.Errorf("ValidateURL(%q) = %v, want nil", u, err)
		}
	}

	invalid := []string{
		"",
		"not a url",
		"ftp://example.com/file",
		"javascript:alert(1)",
		"https://",
		"https://nodots",
	}
	for _, u := range invalid {
		if err := ValidateURL(u); !errors.Is(err, models.ErrInvalidURL) {
			t.Errorf("ValidateURL(%q) = %v, want ErrInvalidURL", u, err)
		}
	}
}

func TestDomain(t *testing.T) {
	if got := Domain("https://WWW.Example.COM/page"); got != "www.example.com" {
		t.Errorf("Domain() = %q, want %q", got, "www.example.com")
	}
	if got := Domain("https://example.com:8443/x"); got != "example.com" {
		t.Errorf("Domain() = %q, want %q (port stripped)", got, "example.com")
	}
}
