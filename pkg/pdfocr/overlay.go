package pdfocr

import (
	"bytes"
	"fmt"
	"io"

	"codeberg.org/go-pdf/fpdf"
	"codeberg.org/go-pdf/fpdf/contrib/gofpdi"

	"github.com/gardar/pdfutils/pkg/hocr"
	"github.com/gardar/pdfutils/pkg/pdfcheck"
)

// overlayPDF imports every page of the input and draws the matching hOCR
// page on top of it. Pages without recognized text are copied as they are.
func overlayPDF(inputPDFData []byte, doc *hocr.HOCR, dims []pdfcheck.PageDim, title string, config Config) ([]byte, error) {
	pdf := fpdf.New("P", "pt", "A4", "")
	if title != "" {
		pdf.SetTitle(title, true)
	}
	pdf.SetCreator("pdfutils", false)

	importer := gofpdi.NewImporter()
	rs := io.ReadSeeker(bytes.NewReader(inputPDFData))
	pages := pagesByNumber(doc)

	for i, dim := range dims {
		pageNum := i + 1
		pdf.AddPageFormat("P", fpdf.SizeType{Wd: dim.Width, Ht: dim.Height})

		tpl := importer.ImportPageFromStream(pdf, &rs, pageNum, "/MediaBox")
		importer.UseImportedTemplate(pdf, tpl, 0, 0, dim.Width, dim.Height)

		page, ok := pages[pageNum]
		if !ok {
			continue
		}
		hocrW, hocrH := page.BBox.Width(), page.BBox.Height()
		transform := func(x, y float64) (float64, float64) {
			return normalizeCoords(x, y, hocrW, hocrH, dim.Width, dim.Height)
		}
		if err := drawOCRLayer(pdf, page, pageNum, transform, config); err != nil {
			return nil, err
		}
	}

	if err := pdf.Error(); err != nil {
		return nil, fmt.Errorf("failed to assemble PDF: %w", err)
	}
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}
	return buf.Bytes(), nil
}

// pagesByNumber keys hOCR pages by their page number, falling back to
// their position for pages without one.
func pagesByNumber(doc *hocr.HOCR) map[int]hocr.Page {
	pages := make(map[int]hocr.Page, len(doc.Pages))
	for i, page := range doc.Pages {
		num := page.PageNumber
		if num <= 0 {
			num = i + 1
		}
		pages[num] = page
	}
	return pages
}
