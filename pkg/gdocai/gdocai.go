// Package gdocai sends PDFs to Google Document AI and converts the response
// into hOCR, so the recognized words can be laid over the original pages as
// an invisible text layer.
//
// Main Functions:
//
// - ProcessDocument: Sends a PDF to a Document AI processor
// - HOCRFromProto: Converts the Document AI response to hOCR structures
// - DocumentHOCR: Both of the above in one call
//
// Usage Requirements:
//
// - Google Cloud project with the Document AI API enabled
// - Document AI processor configured for OCR
// - Credentials from Config.CredentialsFile or application default credentials
package gdocai

import (
	"context"
	"fmt"

	"cloud.google.com/go/documentai/apiv1/documentaipb"

	"github.com/gardar/pdfutils/pkg/hocr"
)

// DocumentHOCR processes a PDF with Document AI and returns the raw response
// together with its hOCR conversion.
func DocumentHOCR(ctx context.Context, pdfBytes []byte, cfg *Config) (*documentaipb.Document, *hocr.HOCR, error) {
	raw, err := ProcessDocument(ctx, pdfBytes, cfg)
	if err != nil {
		return nil, nil, err
	}
	doc, err := HOCRFromProto(raw)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to convert Document AI response: %w", err)
	}
	return raw, doc, nil
}
