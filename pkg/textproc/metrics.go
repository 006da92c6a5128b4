package textproc

import (
	"regexp"
	"strings"

	"github.com/AJStolp/tts-reader-aws-backend-sub000/models"
)

// Metrics holds basic readability measurements over a block of text.
type Metrics struct {
	Words             int
	Sentences         int
	Characters        int
	AvgWordLength     float64
	AvgSentenceLength float64
}

var sentenceSplitRe = regexp.MustCompile(`[.!?]+`)

// Measure computes readability metrics for a block of text.
func Measure(text string) Metrics {
	if text == "" {
		return Metrics{}
	}

	words := strings.Fields(text)

	var sentences int
	for _, s := range sentenceSplitRe.Split(text, -1) {
		if strings.TrimSpace(s) != "" {
			sentences++
		}
	}

	totalWordLen := 0
	for _, w := range words {
		totalWordLen += len(w)
	}

	m := Metrics{
		Words:      len(words),
		Sentences:  sentences,
		Characters: len(text),
	}
	if len(words) > 0 {
		m.AvgWordLength = float64(totalWordLen) / float64(len(words))
	}
	if sentences > 0 {
		m.AvgSentenceLength = float64(len(words)) / float64(sentences)
	}
	return m
}

// methodQualityBonus adjusts the base quality score by extraction method:
// layout-verified methods earn trust, aggressive fallbacks lose it.
var methodQualityBonus = map[models.ExtractionMethod]float64{
	models.MethodDocumentAnalysis: 0.1,
	models.MethodDOMSemantic:      0.05,
	models.MethodDOMHeuristic:     0.0,
	models.MethodReaderMode:       -0.05,
	models.MethodDOMFallback:      -0.1,
}

// ScoreQuality rates text quality for read-aloud conversion in [0,1].
// Rewards the length sweet spot, short words, and moderate sentence
// length; shifts by the producing method's trust bonus.
func ScoreQuality(text string, method models.ExtractionMethod) float64 {
	if text == "" {
		return 0
	}

	m := Measure(text)
	score := 0.5

	switch {
	case m.Characters >= 500 && m.Characters <= 50000:
		score += 0.2
	case m.Characters < 200:
		score -= 0.3
	}

	if m.AvgWordLength >= 3 && m.AvgWordLength <= 6 {
		score += 0.1
	}

	if m.AvgSentenceLength >= 10 && m.AvgSentenceLength <= 25 {
		score += 0.1
	}

	score += methodQualityBonus[method]

	if score > 1 {
		score = 1
	}
	if score < 0 {
		score = 0
	}
	return score
}

// EstimateReadingTime returns the listening time in minutes at a typical
// speech rate, never less than one minute for non-empty text.
func EstimateReadingTime(text string, wordsPerMinute int) int {
	if text == "" {
		return 0
	}
	if wordsPerMinute <= 0 {
		wordsPerMinute = 200
	}
	words := len(strings.Fields(text))
	minutes := (words + wordsPerMinute/2) / wordsPerMinute
	if minutes < 1 {
		minutes = 1
	}
	return minutes
}
