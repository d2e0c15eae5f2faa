package gdocai

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"cloud.google.com/go/documentai/apiv1/documentaipb"

	"github.com/gardar/pdfutils/pkg/hocr"
)

// HOCRFromProto converts a Document AI response into an hOCR document.
// Bounding boxes are scaled from Document AI's normalized vertices to the
// pixel dimensions of each page.
func HOCRFromProto(doc *documentaipb.Document) (*hocr.HOCR, error) {
	if doc == nil {
		return nil, fmt.Errorf("no document in Document AI response")
	}
	text := []rune(doc.GetText())

	result := &hocr.HOCR{
		Title:    "Document OCR",
		Language: dominantLanguage(doc),
		Pages:    make([]hocr.Page, 0, len(doc.GetPages())),
	}
	for i, page := range doc.GetPages() {
		num := int(page.GetPageNumber())
		if num == 0 {
			num = i + 1
		}
		result.Pages = append(result.Pages, convertPage(page, text, num))
	}
	if result.Language == "" {
		result.Language = "unknown"
	}
	result.Metadata = map[string]string{
		"ocr-system":          "Document AI OCR",
		"ocr-number-of-pages": strconv.Itoa(len(result.Pages)),
		"ocr-capabilities":    "ocr_page ocr_par ocr_line ocrx_word",
		"ocr-langs":           result.Language,
	}
	return result, nil
}

// convertPage nests tokens into lines and lines into paragraphs by text span.
// Lines outside every paragraph stay on the page.
func convertPage(page *documentaipb.Document_Page, text []rune, num int) hocr.Page {
	dim := page.GetDimension()
	out := hocr.Page{
		ID:         fmt.Sprintf("page_%d", num),
		PageNumber: num,
		Lang:       firstLanguage(page.GetDetectedLanguages()),
		BBox:       hocr.BoundingBox{X2: float64(dim.GetWidth()), Y2: float64(dim.GetHeight())},
	}

	assigned := make([]bool, len(page.GetLines()))
	for pidx, para := range page.GetParagraphs() {
		p := hocr.Paragraph{
			ID:   fmt.Sprintf("par_%d_%d", num, pidx),
			Lang: firstLanguage(para.GetDetectedLanguages()),
			BBox: boundingBox(para.GetLayout(), dim),
		}
		for lidx, line := range page.GetLines() {
			if assigned[lidx] || !within(line.GetLayout(), para.GetLayout()) {
				continue
			}
			assigned[lidx] = true
			p.Lines = append(p.Lines, convertLine(line, page, text, num, lidx))
		}
		out.Paragraphs = append(out.Paragraphs, p)
	}
	for lidx, line := range page.GetLines() {
		if !assigned[lidx] {
			out.Lines = append(out.Lines, convertLine(line, page, text, num, lidx))
		}
	}
	return out
}

func convertLine(line *documentaipb.Document_Page_Line, page *documentaipb.Document_Page,
	text []rune, pageNum, lineIdx int) hocr.Line {

	dim := page.GetDimension()
	out := hocr.Line{
		ID:   fmt.Sprintf("line_%d_%d", pageNum, lineIdx),
		Lang: firstLanguage(line.GetDetectedLanguages()),
		BBox: boundingBox(line.GetLayout(), dim),
	}
	for tidx, token := range page.GetTokens() {
		if !within(token.GetLayout(), line.GetLayout()) {
			continue
		}
		word := strings.TrimSpace(textFromLayout(token.GetLayout(), text))
		word = strings.Join(strings.Fields(word), " ")
		if word == "" {
			continue
		}
		out.Words = append(out.Words, hocr.Word{
			ID:         fmt.Sprintf("word_%d_%d_%d", pageNum, lineIdx, tidx),
			Text:       word,
			BBox:       boundingBox(token.GetLayout(), dim),
			Confidence: float64(token.GetLayout().GetConfidence()) * 100,
			Lang:       firstLanguage(token.GetDetectedLanguages()),
		})
	}
	return out
}

// boundingBox scales the normalized vertices of a layout to page pixels.
// Vertices are taken as a polygon so rotated boxes still enclose the text.
func boundingBox(layout *documentaipb.Document_Page_Layout, dim *documentaipb.Document_Page_Dimension) hocr.BoundingBox {
	vertices := layout.GetBoundingPoly().GetNormalizedVertices()
	if len(vertices) == 0 || dim == nil {
		return hocr.BoundingBox{}
	}
	minX, minY := math.MaxFloat64, math.MaxFloat64
	maxX, maxY := 0.0, 0.0
	for _, v := range vertices {
		x := math.Round(float64(v.GetX()) * float64(dim.GetWidth()))
		y := math.Round(float64(v.GetY()) * float64(dim.GetHeight()))
		minX, maxX = math.Min(minX, x), math.Max(maxX, x)
		minY, maxY = math.Min(minY, y), math.Max(maxY, y)
	}
	return hocr.BoundingBox{X1: minX, Y1: minY, X2: maxX, Y2: maxY}
}

func firstLanguage(langs []*documentaipb.Document_Page_DetectedLanguage) string {
	if len(langs) == 0 {
		return ""
	}
	return langs[0].GetLanguageCode()
}

// dominantLanguage counts page and token languages and returns the most
// frequent one. Ties go to the alphabetically first code.
func dominantLanguage(doc *documentaipb.Document) string {
	counts := make(map[string]int)
	for _, page := range doc.GetPages() {
		for _, lang := range page.GetDetectedLanguages() {
			counts[lang.GetLanguageCode()]++
		}
		for _, token := range page.GetTokens() {
			for _, lang := range token.GetDetectedLanguages() {
				counts[lang.GetLanguageCode()]++
			}
		}
	}
	best, bestCount := "", 0
	for lang, n := range counts {
		if lang == "" {
			continue
		}
		if n > bestCount || (n == bestCount && lang < best) {
			best, bestCount = lang, n
		}
	}
	return best
}
