package hocr

import (
	"bytes"
	"embed"
	"fmt"
	"math"
	"text/template"

	"golang.org/x/net/html"
)

//go:embed templates/hocr.tmpl
var templateFS embed.FS

var templateFuncs = template.FuncMap{
	"esc":       html.EscapeString,
	"lang":      langAttr,
	"bbox":      bboxAttr,
	"pageTitle": pageTitle,
	"wordTitle": wordTitle,
}

// GenerateHOCRDocument renders doc as an hOCR (XHTML) document using the
// embedded template.
func GenerateHOCRDocument(doc *HOCR) (string, error) {
	if doc == nil {
		return "", fmt.Errorf("no hOCR document")
	}
	tmpl, err := template.New("hocr.tmpl").Funcs(templateFuncs).ParseFS(templateFS, "templates/hocr.tmpl")
	if err != nil {
		return "", fmt.Errorf("error parsing hOCR template: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, doc); err != nil {
		return "", fmt.Errorf("error rendering hOCR template: %w", err)
	}
	return buf.String(), nil
}

// String formats the box as an hOCR bbox property.
func (b BoundingBox) String() string {
	return fmt.Sprintf("bbox %d %d %d %d", px(b.X1), px(b.Y1), px(b.X2), px(b.Y2))
}

func px(v float64) int { return int(math.Round(v)) }

func langAttr(lang string) string {
	if lang == "" {
		return ""
	}
	return fmt.Sprintf(` lang="%s"`, html.EscapeString(lang))
}

// bboxAttr leaves out the title of elements that were never positioned.
func bboxAttr(b BoundingBox) string {
	if b.IsZero() {
		return ""
	}
	return fmt.Sprintf(` title="%s"`, b)
}

// pageTitle numbers pages from 0, as hOCR ppageno does.
func pageTitle(p Page) string {
	return fmt.Sprintf("%s; ppageno %d", p.BBox, p.PageNumber-1)
}

func wordTitle(w Word) string {
	return fmt.Sprintf("%s; x_wconf %d", w.BBox, px(w.Confidence))
}
