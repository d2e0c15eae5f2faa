package pdfocr

import (
	"fmt"

	"codeberg.org/go-pdf/fpdf"
	"golang.org/x/text/encoding/charmap"

	"github.com/gardar/pdfutils/pkg/hocr"
)

type transformFunc func(x, y float64) (float64, float64)

// drawOCRLayer draws the words of page onto a new layer named after
// layerName and pageNum.
func drawOCRLayer(pdf *fpdf.Fpdf, page hocr.Page, pageNum int, transform transformFunc, config Config) error {
	layer := pdf.AddLayer(fmt.Sprintf("%s (Page %d)", config.LayerName, pageNum), true)
	pdf.BeginLayer(layer)
	pdf.SetFont(config.Font.Name, config.Font.Style, config.Font.Size)

	if config.Debug {
		pdf.SetTextColor(255, 0, 0)
		pdf.SetDrawColor(255, 0, 0)
	} else {
		pdf.SetAlpha(0.0, "Normal")
	}

	words := page.Words()
	encodingErrors := 0
	for _, word := range words {
		if !drawWord(pdf, word, transform, config) {
			encodingErrors++
		}
	}

	if !config.Debug {
		pdf.SetAlpha(1.0, "Normal")
	}
	pdf.EndLayer()

	if encodingErrors > 0 && encodingErrors > len(words)/10 {
		return fmt.Errorf("character encoding issues in %d of %d words on page %d",
			encodingErrors, len(words), pageNum)
	}
	return nil
}

// drawWord places one word so that its rendered width matches its box.
// Words the core font cannot encode are skipped and reported as false.
func drawWord(pdf *fpdf.Fpdf, word hocr.Word, transform transformFunc, config Config) bool {
	if word.Text == "" || word.BBox.Width() <= 0 {
		return true
	}

	x, y := transform(word.BBox.X1, word.BBox.Y1)
	x2, y2 := transform(word.BBox.X2, word.BBox.Y2)
	width := x2 - x

	// Core fonts are single-byte, Windows-1252 encoded
	encoded, err := charmap.Windows1252.NewEncoder().String(word.Text)
	if err != nil {
		return false
	}

	if strWidth := pdf.GetStringWidth(encoded); strWidth > 0 {
		pdf.SetFontSize(config.Font.Size * width / strWidth)
	}
	fontSize, _ := pdf.GetFontSize()
	pdf.Text(x, y+fontSize*config.Font.AscentRatio, encoded)
	pdf.SetFontSize(config.Font.Size)

	if config.Debug {
		pdf.Rect(x, y, width, y2-y, "D")
	}
	return true
}
