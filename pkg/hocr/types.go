package hocr

// HOCR represents an entire hOCR document
type HOCR struct {
	Title    string            // Document title
	Language string            // Dominant document language
	Metadata map[string]string // ocr-system, ocr-number-of-pages, ...
	Pages    []Page
}

// Page is one page of recognized text (class 'ocr_page')
type Page struct {
	ID         string
	PageNumber int         // 1-based
	Lang       string      // Language code for this page
	BBox       BoundingBox // Page image size, origin at the top-left
	Paragraphs []Paragraph
	Lines      []Line // Lines not assigned to any paragraph
}

// Paragraph groups lines (class 'ocr_par')
type Paragraph struct {
	ID    string
	Lang  string
	BBox  BoundingBox
	Lines []Line
}

// Line is a line of text (class 'ocr_line')
type Line struct {
	ID    string
	Lang  string
	BBox  BoundingBox
	Words []Word
}

// Word is a recognized word (class 'ocrx_word')
type Word struct {
	ID         string
	Text       string
	BBox       BoundingBox
	Confidence float64 // 0-100
	Lang       string
}

// BoundingBox is the hOCR 'bbox' property: top-left and bottom-right corners
type BoundingBox struct {
	X1, Y1 float64
	X2, Y2 float64
}

// Width of the box
func (b BoundingBox) Width() float64 { return b.X2 - b.X1 }

// Height of the box
func (b BoundingBox) Height() float64 { return b.Y2 - b.Y1 }

// IsZero reports whether the box was never set
func (b BoundingBox) IsZero() bool { return b == BoundingBox{} }

// AllLines returns all lines of the page in reading order: paragraph lines
// first, then the page-level lines.
func (p Page) AllLines() []Line {
	var lines []Line
	for _, para := range p.Paragraphs {
		lines = append(lines, para.Lines...)
	}
	return append(lines, p.Lines...)
}

// Words returns every word on the page, in reading order.
func (p Page) Words() []Word {
	var words []Word
	for _, line := range p.AllLines() {
		words = append(words, line.Words...)
	}
	return words
}
