// Package textproc cleans and scores extracted text for speech synthesis.
package textproc

import (
	"regexp"
	"strings"
)

var (
	multiSpaceRe  = regexp.MustCompile(`[ \t]+`)
	multiBlankRe  = regexp.MustCompile(`\n\s*\n`)
	ellipsisRe    = regexp.MustCompile(`\.{3,}`)
	dashRunRe     = regexp.MustCompile(`-{3,}`)
	underscoreRe  = regexp.MustCompile(`_{3,}`)
	urlRe         = regexp.MustCompile(`https?://\S+`)
	emailRe       = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)
	handleRe      = regexp.MustCompile(`[@#]\w+`)
	allCapsWordRe = regexp.MustCompile(`\b[A-Z]{4,}\b`)
)

// boilerplatePhrases are web artifacts that disrupt read-aloud flow.
// Stripped case-insensitively wherever they appear.
var boilerplatePhrases = []string{
	"cookie policy", "accept cookies", "privacy policy", "terms of service",
	"subscribe to newsletter", "follow us on", "share this article",
	"print this page", "read more", "continue reading", "click here",
	"skip to content", "jump to navigation", "show more", "load more",
	"view all",
}

var boilerplateRe = buildBoilerplateRe()

func buildBoilerplateRe() *regexp.Regexp {
	escaped := make([]string, len(boilerplatePhrases))
	for i, p := range boilerplatePhrases {
		escaped[i] = regexp.QuoteMeta(p)
	}
	return regexp.MustCompile(`(?i)(?:` + strings.Join(escaped, "|") + `)\s*`)
}

// CleanForSpeech normalizes raw extracted text into something a speech
// engine can read: collapsed whitespace, capped punctuation runs, no URLs
// or handles, no boilerplate phrases, no shouting-case tokens.
func CleanForSpeech(text string) string {
	if text == "" {
		return ""
	}

	text = multiSpaceRe.ReplaceAllString(text, " ")
	text = multiBlankRe.ReplaceAllString(text, "\n\n")

	text = ellipsisRe.ReplaceAllString(text, "...")
	text = dashRunRe.ReplaceAllString(text, "---")
	text = underscoreRe.ReplaceAllString(text, "")

	text = boilerplateRe.ReplaceAllString(text, "")

	text = urlRe.ReplaceAllString(text, "")
	text = emailRe.ReplaceAllString(text, "")
	text = handleRe.ReplaceAllString(text, "")

	// SHOUTING tokens read badly; fold them to a single capital.
	text = allCapsWordRe.ReplaceAllStringFunc(text, func(w string) string {
		return strings.ToUpper(w[:1]) + strings.ToLower(w[1:])
	})

	text = multiSpaceRe.ReplaceAllString(text, " ")
	text = multiBlankRe.ReplaceAllString(text, "\n\n")

	return strings.TrimSpace(text)
}

// navigationKeywords mark lines that are navigation or legal chrome rather
// than body text.
var navigationKeywords = []string{
	"home", "about", "contact", "menu", "login", "register",
	"privacy", "terms", "copyright", "©", "all rights reserved",
	"follow us", "subscribe", "newsletter", "cookies", "gdpr",
	"skip to", "jump to", "accessibility",
}

// FilterNavigationLines drops lines that look like navigation, legal
// boilerplate, separator art, or shouted headings. Used by the fallback
// strategy over whole-body text.
func FilterNavigationLines(body string) string {
	var kept []string

	for _, line := range strings.Split(body, "\n") {
		line = strings.TrimSpace(line)
		if len(line) < 20 {
			continue
		}

		lower := strings.ToLower(line)
		skip := false
		for _, kw := range navigationKeywords {
			if strings.Contains(lower, kw) {
				skip = true
				break
			}
		}
		if skip {
			continue
		}

		// Separator-heavy lines are menus or breadcrumbs.
		punct := strings.Count(line, "|") + strings.Count(line, "•") +
			strings.Count(line, "→") + strings.Count(line, "»")
		if float64(punct)/float64(len(line)) > 0.2 {
			continue
		}

		if len(line) > 10 && line == strings.ToUpper(line) && line != strings.ToLower(line) {
			continue
		}

		kept = append(kept, line)
	}

	return strings.Join(kept, "\n")
}
