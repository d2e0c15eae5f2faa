package pdfocr

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"

	"github.com/gardar/pdfutils/pkg/pdfcheck"
)

// LayerCheckResult contains the results of checking for OCR layers
type LayerCheckResult struct {
	Layers       []string // All detected layers
	HasOCRLayer  bool     // True if the specified OCR layer exists
	OCRLayerName string   // Name of the detected OCR layer (if any)
	Warnings     []string // Any warnings about potential OCR layers
}

// CheckExistingOCRLayers looks for ocrLayerName, with or without a
// "(Page N)" suffix, among the given layer names. Other layers mentioning
// OCR are reported as warnings.
func CheckExistingOCRLayers(layers []string, ocrLayerName string) LayerCheckResult {
	result := LayerCheckResult{Layers: layers}
	pageLayer := regexp.MustCompile(`^` + regexp.QuoteMeta(ocrLayerName) + `\s*\(Page\s*\d+`)

	for _, layer := range layers {
		if layer == ocrLayerName || pageLayer.MatchString(layer) {
			if !result.HasOCRLayer {
				result.HasOCRLayer = true
				result.OCRLayerName = layer
			}
			continue
		}
		if strings.Contains(strings.ToLower(layer), "ocr") {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("Existing layer detected that might contain OCR: %s", layer))
		}
	}
	return result
}

// DetectOCR parses a PDF and checks its optional content groups for an
// existing OCR layer.
func DetectOCR(pdfData []byte, ocrLayerName string) (LayerCheckResult, error) {
	if len(pdfData) == 0 {
		return LayerCheckResult{}, fmt.Errorf("empty PDF data")
	}
	doc, err := pdfcheck.Parse(bytes.NewReader(pdfData))
	if err != nil {
		return LayerCheckResult{}, fmt.Errorf("cannot analyze layers: %w", err)
	}
	return detectLayers(doc, ocrLayerName)
}

func detectLayers(doc *pdfcheck.Document, ocrLayerName string) (LayerCheckResult, error) {
	layers, err := doc.Layers()
	if err != nil {
		return LayerCheckResult{}, fmt.Errorf("cannot analyze layers: %w", err)
	}
	return CheckExistingOCRLayers(layers, ocrLayerName), nil
}
