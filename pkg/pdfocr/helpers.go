package pdfocr

import (
	"fmt"
	"io"
	"os"
)

// normalizeCoords rescales hOCR bounding box coordinates to PDF coordinates.
func normalizeCoords(x, y, hocrW, hocrH, pdfW, pdfH float64) (float64, float64) {
	if hocrW <= 0 || hocrH <= 0 {
		return x, y
	}
	return (x / hocrW) * pdfW, (y / hocrH) * pdfH
}

// logf writes a line to the configured logger, defaulting to os.Stdout.
func logf(config Config, format string, args ...any) {
	var w io.Writer = os.Stdout
	if config.Logger != nil {
		w = config.Logger
	}
	fmt.Fprintf(w, format+"\n", args...)
}
