package textproc

import (
	"strings"
	"sync"

	"github.com/pemistahl/lingua-go"
)

// detectorLanguages is the closed set we distinguish between. A closed set
// keeps the lingua models small and detection fast.
var detectorLanguages = []lingua.Language{
	lingua.English, lingua.Spanish, lingua.French, lingua.German,
	lingua.Italian, lingua.Portuguese, lingua.Dutch, lingua.Japanese,
	lingua.Chinese, lingua.Russian,
}

var (
	detectorOnce sync.Once
	detector     lingua.LanguageDetector
)

// DetectLanguage returns the ISO-639-1 code and confidence for the text's
// language, or ("", 0) when detection is inconclusive. The underlying
// detector is built once and reused; it is safe for concurrent use.
func DetectLanguage(text string) (string, float64) {
	if strings.TrimSpace(text) == "" {
		return "", 0
	}

	detectorOnce.Do(func() {
		detector = lingua.NewLanguageDetectorBuilder().
			FromLanguages(detectorLanguages...).
			Build()
	})

	// Long texts don't improve accuracy past a few thousand chars.
	sample := text
	if len(sample) > 4000 {
		sample = sample[:4000]
	}

	language, ok := detector.DetectLanguageOf(sample)
	if !ok {
		return "", 0
	}

	confidence := detector.ComputeLanguageConfidence(sample, language)
	return strings.ToLower(language.IsoCode639_1().String()), confidence
}
