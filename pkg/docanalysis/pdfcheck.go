package docanalysis

import (
	"bytes"
	"fmt"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// ValidatePDF checks that the rendered document is a well-formed PDF
// within the size cap before it is submitted to the paid analysis call.
// Returns the page count.
func ValidatePDF(pdf []byte, maxSize int64) (int, error) {
	if int64(len(pdf)) > maxSize {
		return 0, fmt.Errorf("document too large: %d bytes (limit %d)", len(pdf), maxSize)
	}

	conf := model.NewDefaultConfiguration()
	pdfCtx, err := api.ReadValidateAndOptimize(bytes.NewReader(pdf), conf)
	if err != nil {
		return 0, fmt.Errorf("invalid PDF: %w", err)
	}

	return pdfCtx.PageCount, nil
}
