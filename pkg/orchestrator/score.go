package orchestrator

import (
	"time"

	"github.com/AJStolp/tts-reader-aws-backend-sub000/models"
)

// methodScoreBonus rewards structurally verified extraction paths over
// permissive ones when candidates compete.
var methodScoreBonus = map[models.ExtractionMethod]float64{
	models.MethodDocumentAnalysis: 30,
	models.MethodDOMSemantic:      25,
	models.MethodDOMHeuristic:     20,
	models.MethodReaderMode:       15,
	models.MethodDOMFallback:      5,
}

// contentTypeScoreBonus biases selection toward prose-heavy page classes
// and away from pages that rarely read well aloud.
var contentTypeScoreBonus = map[models.ContentType]float64{
	models.ContentArticle:       15,
	models.ContentBlogPost:      12,
	models.ContentNews:          10,
	models.ContentDocumentation: 8,
	models.ContentUnknown:       0,
	models.ContentECommerce:     -5,
	models.ContentSocialMedia:   -10,
	models.ContentForum:         -5,
}

// compositeScore ranks a candidate result for selection. Suitability for
// speech dominates; method, quality, length, and page class adjust around
// it. Suspiciously fast extractions lose points because they usually mean
// the page had not finished loading.
func compositeScore(r *models.ExtractionResult) float64 {
	score := r.TTSSuitability() * 100

	score += methodScoreBonus[r.Method]

	if r.IsHighQuality() {
		score += 15
	}

	switch {
	case r.CharCount >= 500 && r.CharCount <= 50000:
		score += 15
	case r.CharCount >= 200 && r.CharCount <= 100000:
		score += 10
	}

	score += contentTypeScoreBonus[r.ContentType]

	if r.ProcessingTime < time.Second {
		score -= 10
	}

	return score
}

// selectBest returns the highest-scoring candidate. Exact score ties break
// on method priority so ranking stays deterministic regardless of the
// order candidates arrived in.
func selectBest(candidates []*models.ExtractionResult) *models.ExtractionResult {
	var best *models.ExtractionResult
	var bestScore float64

	for _, c := range candidates {
		if c == nil {
			continue
		}
		score := compositeScore(c)
		switch {
		case best == nil, score > bestScore:
			best = c
			bestScore = score
		case score == bestScore && c.Method.Priority() > best.Method.Priority():
			best = c
		}
	}
	return best
}
