package ocr

import (
	"context"
	"fmt"
	"io"
	"os"

	"cloud.google.com/go/documentai/apiv1/documentaipb"

	"github.com/gardar/pdfutils/pkg/gdocai"
	"github.com/gardar/pdfutils/pkg/hocr"
	"github.com/gardar/pdfutils/pkg/pdfocr"
)

// DocumentAI recognizes text with Google Document AI and draws it as an
// invisible layer over the original pages.
//
// Document AI straightens skewed pages on its own, so Job.Deskew needs no
// extra work here. Job.ForceOCR disables native PDF parsing and allows the
// layer to be drawn again over an earlier OCR layer.
type DocumentAI struct {
	Config       *gdocai.Config
	LayerName    string    // Defaults to pdfocr's "OCR Text"
	HOCRFile     string    // Optional path for the recognized text as hOCR
	ResponseFile string    // Optional path for the raw API response as JSON
	Logger       io.Writer // Progress and warnings (nil = stdout)

	// recognize is replaced in tests to avoid calling the API.
	recognize func(ctx context.Context, pdf []byte, cfg *gdocai.Config) (*documentaipb.Document, *hocr.HOCR, error)
}

// Name implements Engine.
func (e *DocumentAI) Name() string { return EngineDocumentAI }

// Run implements Engine.
func (e *DocumentAI) Run(ctx context.Context, job Job) error {
	input, err := os.ReadFile(job.Input)
	if err != nil {
		return fmt.Errorf("failed to read input PDF: %w", err)
	}
	if e.Config == nil {
		return fmt.Errorf("no Document AI configuration")
	}

	cfg := *e.Config
	cfg.NativePDFParsing = !job.ForceOCR

	recognize := e.recognize
	if recognize == nil {
		recognize = gdocai.DocumentHOCR
	}
	raw, doc, err := recognize(ctx, input, &cfg)
	if err != nil {
		return err
	}
	if e.ResponseFile != "" {
		data, err := gdocai.ResponseJSON(raw)
		if err != nil {
			return fmt.Errorf("failed to encode Document AI response: %w", err)
		}
		if err := os.WriteFile(e.ResponseFile, data, 0644); err != nil {
			return fmt.Errorf("failed to write Document AI response: %w", err)
		}
	}

	layer := pdfocr.DefaultConfig()
	layer.Force = job.ForceOCR
	layer.Logger = e.Logger
	if e.LayerName != "" {
		layer.LayerName = e.LayerName
	}
	output, err := pdfocr.ApplyOCR(input, doc, layer)
	if err != nil {
		return fmt.Errorf("failed to apply OCR to PDF: %w", err)
	}

	if err := os.WriteFile(job.Output, output, 0644); err != nil {
		return fmt.Errorf("failed to write output PDF: %w", err)
	}
	if e.HOCRFile != "" {
		out, err := hocr.GenerateHOCRDocument(doc)
		if err != nil {
			return err
		}
		if err := os.WriteFile(e.HOCRFile, []byte(out), 0644); err != nil {
			return fmt.Errorf("failed to write hOCR: %w", err)
		}
	}
	if job.Sidecar != "" {
		if err := os.WriteFile(job.Sidecar, []byte(hocr.ExtractText(doc)), 0644); err != nil {
			return fmt.Errorf("failed to write sidecar text: %w", err)
		}
	}
	return nil
}
