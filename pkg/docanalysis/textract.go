package docanalysis

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/textract"
	"github.com/aws/aws-sdk-go-v2/service/textract/types"
)

// TextractAnalyzer implements Analyzer against AWS Textract's synchronous
// AnalyzeDocument API with layout and table features enabled.
type TextractAnalyzer struct {
	client *textract.Client
}

// NewTextractAnalyzer builds an analyzer from the default AWS credential
// chain (environment, shared config, instance role).
func NewTextractAnalyzer(ctx context.Context) (*TextractAnalyzer, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}
	return &TextractAnalyzer{client: textract.NewFromConfig(cfg)}, nil
}

// NewTextractAnalyzerFromClient wraps an existing client. Used by tests
// and callers that manage AWS configuration themselves.
func NewTextractAnalyzerFromClient(client *textract.Client) *TextractAnalyzer {
	return &TextractAnalyzer{client: client}
}

// AnalyzeDocument submits the document bytes and maps the response into
// the package's block model.
func (a *TextractAnalyzer) AnalyzeDocument(ctx context.Context, document []byte) ([]Block, error) {
	out, err := a.client.AnalyzeDocument(ctx, &textract.AnalyzeDocumentInput{
		Document: &types.Document{Bytes: document},
		FeatureTypes: []types.FeatureType{
			types.FeatureTypeLayout,
			types.FeatureTypeTables,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("AnalyzeDocument call failed: %w", err)
	}

	blocks := make([]Block, 0, len(out.Blocks))
	for _, b := range out.Blocks {
		block := Block{
			ID:   aws.ToString(b.Id),
			Type: BlockType(b.BlockType),
			Text: aws.ToString(b.Text),
		}
		for _, rel := range b.Relationships {
			if rel.Type == types.RelationshipTypeChild {
				block.ChildIDs = append(block.ChildIDs, rel.Ids...)
			}
		}
		blocks = append(blocks, block)
	}
	return blocks, nil
}
