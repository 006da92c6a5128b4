// Package docanalysis talks to the cloud document-analysis service and
// reassembles its typed layout blocks into reading-order text.
package docanalysis

import (
	"context"
	"strings"
)

// BlockType mirrors the service's block taxonomy. Values match the wire
// strings so mapping stays trivial.
type BlockType string

const (
	BlockLayoutHeader BlockType = "LAYOUT_HEADER"
	BlockLayoutFooter BlockType = "LAYOUT_FOOTER"
	BlockLayoutText   BlockType = "LAYOUT_TEXT"
	BlockLayoutTitle  BlockType = "LAYOUT_TITLE"
	BlockLine         BlockType = "LINE"
	BlockWord         BlockType = "WORD"
)

// Block is one typed unit of the analysis response. Layout blocks carry
// child IDs; line and word blocks carry text.
type Block struct {
	ID       string
	Type     BlockType
	Text     string
	ChildIDs []string
}

// Analyzer is the cloud document-analysis capability. Implementations must
// honor the context deadline; callers never retry these calls.
type Analyzer interface {
	AnalyzeDocument(ctx context.Context, document []byte) ([]Block, error)
}

// AssembleText reconstructs reading order from analysis blocks. Children
// of header and footer layout regions are excluded; remaining line blocks
// join with newlines and word blocks with spaces, so paragraph breaks
// survive into the extracted text.
func AssembleText(blocks []Block) string {
	headerFooterIDs := make(map[string]struct{})
	mainContentIDs := make(map[string]struct{})

	for _, b := range blocks {
		switch b.Type {
		case BlockLayoutHeader, BlockLayoutFooter:
			for _, id := range b.ChildIDs {
				headerFooterIDs[id] = struct{}{}
			}
		case BlockLayoutText, BlockLayoutTitle:
			for _, id := range b.ChildIDs {
				mainContentIDs[id] = struct{}{}
			}
		}
	}

	var sb strings.Builder
	for _, b := range blocks {
		if b.Type != BlockLine && b.Type != BlockWord {
			continue
		}
		if _, excluded := headerFooterIDs[b.ID]; excluded {
			continue
		}
		// When the service returned no layout regions at all, keep
		// everything rather than nothing.
		if len(mainContentIDs) > 0 {
			if _, ok := mainContentIDs[b.ID]; !ok {
				continue
			}
		}

		text := strings.TrimSpace(b.Text)
		if len(text) <= 2 {
			continue
		}

		sb.WriteString(text)
		if b.Type == BlockLine {
			sb.WriteByte('\n')
		} else {
			sb.WriteByte(' ')
		}
	}

	return sb.String()
}
