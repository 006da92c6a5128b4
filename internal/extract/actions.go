package extract

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/AJStolp/tts-reader-aws-backend-sub000/internal/common"
	"github.com/AJStolp/tts-reader-aws-backend-sub000/pkg/orchestrator"
)

// ExtractAction runs the pipeline once for a single URL and prints the
// winning result.
func ExtractAction(c *cli.Context) error {
	logger := common.NewLogger(c)

	rawURL := c.String("url")
	if rawURL == "" && c.Args().Len() > 0 {
		rawURL = c.Args().First()
	}
	if rawURL == "" {
		fmt.Fprintln(os.Stderr, "Error: No URL provided")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Usage:")
		fmt.Fprintln(os.Stderr, `  tts-extractor extract --url "https://example.com/article"`)
		fmt.Fprintln(os.Stderr, `  tts-extractor extract https://example.com/article --format=text`)
		os.Exit(1)
	}

	pipeline, err := common.BuildPipeline(c.Context, c, logger)
	if err != nil {
		logger.Error().Err(err).Msg("failed to initialize pipeline")
		os.Exit(2)
	}
	defer pipeline.Close()

	result, err := pipeline.Orchestrator.Extract(c.Context, rawURL, orchestrator.Options{
		DisableDocumentAnalysis: c.Bool("no-textract"),
		Sequential:              c.Bool("sequential"),
		ShortCircuitConfidence:  c.Float64("short-circuit"),
	})
	if err != nil {
		logger.Error().Err(err).Str("url", rawURL).Msg("extraction failed")
		os.Exit(2)
	}

	switch c.String("format") {
	case "text":
		fmt.Println(result.Text)
	default:
		out := map[string]any{
			"text":               result.Text,
			"method":             result.Method,
			"content_type":       result.ContentType,
			"confidence":         result.Confidence,
			"word_count":         result.WordCount,
			"char_count":         result.CharCount,
			"processing_time_ms": result.ProcessingTime.Milliseconds(),
			"tts_suitability":    result.TTSSuitability(),
			"high_quality":       result.IsHighQuality(),
			"metadata":           result.Metadata,
		}
		data, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			logger.Error().Err(err).Msg("failed to marshal output")
			os.Exit(2)
		}
		fmt.Println(string(data))
	}

	return nil
}
