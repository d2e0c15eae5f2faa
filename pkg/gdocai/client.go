package gdocai

import (
	"context"
	"fmt"

	documentai "cloud.google.com/go/documentai/apiv1"
	"cloud.google.com/go/documentai/apiv1/documentaipb"
	"google.golang.org/api/option"
)

// newRequest builds the ProcessDocument request for a PDF.
func newRequest(pdfBytes []byte, cfg *Config) *documentaipb.ProcessRequest {
	return &documentaipb.ProcessRequest{
		Name: cfg.processorName(),
		Source: &documentaipb.ProcessRequest_RawDocument{
			RawDocument: &documentaipb.RawDocument{
				Content:  pdfBytes,
				MimeType: "application/pdf",
			},
		},
		ProcessOptions: &documentaipb.ProcessOptions{
			OcrConfig: &documentaipb.OcrConfig{
				EnableNativePdfParsing: cfg.NativePDFParsing,
			},
		},
		SkipHumanReview: true,
	}
}

// ProcessDocument sends PDF bytes to Google Document AI for processing
// and returns the raw Document proto response
func ProcessDocument(ctx context.Context, pdfBytes []byte, cfg *Config) (*documentaipb.Document, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	opts := []option.ClientOption{option.WithEndpoint(cfg.endpoint())}
	if cfg.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}
	client, err := documentai.NewDocumentProcessorClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create Document AI client: %w", err)
	}
	defer client.Close()

	resp, err := client.ProcessDocument(ctx, newRequest(pdfBytes, cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to process document: %w", err)
	}
	return resp.GetDocument(), nil
}
