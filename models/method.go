// Package models defines data structures shared across the extraction pipeline.
package models

// ExtractionMethod identifies the technique that produced a result.
type ExtractionMethod string

const (
	MethodDocumentAnalysis ExtractionMethod = "document_analysis"
	MethodDOMSemantic      ExtractionMethod = "dom_semantic"
	MethodDOMHeuristic     ExtractionMethod = "dom_heuristic"
	MethodReaderMode       ExtractionMethod = "reader_mode"
	MethodDOMFallback      ExtractionMethod = "dom_fallback"
)

// methodPriority is the fixed total order over methods, highest first.
// Used for ranking bonuses and as the deterministic tie-breaker.
var methodPriority = map[ExtractionMethod]int{
	MethodDocumentAnalysis: 5,
	MethodDOMSemantic:      4,
	MethodDOMHeuristic:     3,
	MethodReaderMode:       2,
	MethodDOMFallback:      1,
}

// Priority returns the method's rank in the fixed order, highest first.
// Unknown methods rank below every known one.
func (m ExtractionMethod) Priority() int {
	return methodPriority[m]
}

func (m ExtractionMethod) String() string {
	return string(m)
}

// ContentType is a cheap guess at what kind of page a URL points to.
type ContentType string

const (
	ContentArticle       ContentType = "article"
	ContentBlogPost      ContentType = "blog_post"
	ContentNews          ContentType = "news"
	ContentDocumentation ContentType = "documentation"
	ContentECommerce     ContentType = "e_commerce"
	ContentSocialMedia   ContentType = "social_media"
	ContentForum         ContentType = "forum"
	ContentUnknown       ContentType = "unknown"
)

func (c ContentType) String() string {
	return string(c)
}
