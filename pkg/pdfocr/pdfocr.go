// Package pdfocr lays hOCR text over the pages of an existing PDF.
//
// Each recognized word is drawn invisibly at the position of its bounding
// box, on a per-page optional content layer named "<LayerName> (Page N)".
// The resulting PDF looks exactly like the input but is searchable and its
// text can be selected. The layer can be toggled in compatible viewers.
//
// ApplyOCR refuses to add a second OCR layer to a document that already has
// one unless Config.Force is set.
package pdfocr

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/gardar/pdfutils/pkg/hocr"
	"github.com/gardar/pdfutils/pkg/pdfcheck"
)

// ErrOCRLayerExists is returned when the input already carries the OCR layer.
var ErrOCRLayerExists = errors.New("file already has an OCR layer")

// ApplyOCR takes an existing PDF and returns a copy with the hOCR text laid
// over its pages. The source title is kept unless config.Title is set.
func ApplyOCR(inputPDFData []byte, doc *hocr.HOCR, config Config) ([]byte, error) {
	if len(inputPDFData) == 0 {
		return nil, fmt.Errorf("input PDF data is empty")
	}
	if doc == nil || len(doc.Pages) == 0 {
		return nil, fmt.Errorf("HOCR data contains no pages")
	}
	if config.LayerName == "" {
		config.LayerName = DefaultConfig().LayerName
	}
	if config.Font.Name == "" {
		config.Font = DefaultFont
	}

	src, err := pdfcheck.Parse(bytes.NewReader(inputPDFData))
	if err != nil {
		return nil, fmt.Errorf("cannot read input PDF: %w", err)
	}

	layerResult, err := detectLayers(src, config.LayerName)
	if err != nil {
		return nil, fmt.Errorf("layer detection failed: %w", err)
	}
	for _, warning := range layerResult.Warnings {
		logf(config, "Warning: %s", warning)
	}
	if layerResult.HasOCRLayer {
		if !config.Force {
			return nil, fmt.Errorf("%w (layer '%s')", ErrOCRLayerExists, layerResult.OCRLayerName)
		}
		logf(config, "Warning: file already has OCR; reapplying will result in duplicate OCR data")
	}

	dims, err := src.PageDims()
	if err != nil {
		return nil, err
	}
	if len(dims) == 0 {
		return nil, fmt.Errorf("input PDF has no pages")
	}
	if len(doc.Pages) > len(dims) {
		logf(config, "Warning: HOCR has %d pages but the PDF only %d; extra pages are ignored",
			len(doc.Pages), len(dims))
	}

	title := config.Title
	if title == "" {
		title = src.Title()
	}

	finalPDF, err := overlayPDF(inputPDFData, doc, dims, title, config)
	if err != nil {
		return nil, fmt.Errorf("error modifying existing PDF: %w", err)
	}
	return finalPDF, nil
}
