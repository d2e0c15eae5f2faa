package hocr

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/net/html"
)

func recognizedDocument() *HOCR {
	return &HOCR{
		Title:    "Document OCR",
		Language: "en",
		Metadata: map[string]string{
			"ocr-system":          "Document AI OCR",
			"ocr-number-of-pages": "1",
		},
		Pages: []Page{{
			ID:         "page_1",
			PageNumber: 1,
			Lang:       "en",
			BBox:       BoundingBox{X2: 2480, Y2: 3508},
			Paragraphs: []Paragraph{{
				ID: "par_1_0",
				Lines: []Line{{
					ID:   "line_1_0",
					BBox: BoundingBox{X1: 100, Y1: 200, X2: 500.4, Y2: 300},
					Words: []Word{
						{ID: "word_1_0_0", Text: "Smith", BBox: BoundingBox{X1: 100, Y1: 200, X2: 250, Y2: 300}, Confidence: 97.6, Lang: "en"},
						{ID: "word_1_0_1", Text: "&", BBox: BoundingBox{X1: 260, Y1: 200, X2: 280, Y2: 300}, Confidence: 88},
						{ID: "word_1_0_2", Text: "<Sons>", BBox: BoundingBox{X1: 290, Y1: 200, X2: 500.4, Y2: 300}, Confidence: 91, Lang: "de"},
					},
				}},
			}},
		}},
	}
}

type element struct {
	Class, ID, Lang, Title, Text string
}

// collect returns the hOCR elements of the parsed document in order.
func collect(n *html.Node) []element {
	var out []element
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			var el element
			for _, a := range n.Attr {
				switch a.Key {
				case "class":
					el.Class = a.Val
				case "id":
					el.ID = a.Val
				case "lang":
					el.Lang = a.Val
				case "title":
					el.Title = a.Val
				}
			}
			if strings.HasPrefix(el.Class, "ocr") {
				if el.Class == "ocrx_word" && n.FirstChild != nil {
					el.Text = n.FirstChild.Data
				}
				out = append(out, el)
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return out
}

func TestGenerateHOCRDocument(t *testing.T) {
	out, err := GenerateHOCRDocument(recognizedDocument())
	if err != nil {
		t.Fatalf("GenerateHOCRDocument() error = %v", err)
	}

	root, err := html.Parse(strings.NewReader(out))
	if err != nil {
		t.Fatalf("output does not parse as HTML: %v", err)
	}
	want := []element{
		{Class: "ocr_page", ID: "page_1", Lang: "en", Title: "bbox 0 0 2480 3508; ppageno 0"},
		{Class: "ocr_par", ID: "par_1_0"},
		{Class: "ocr_line", ID: "line_1_0", Title: "bbox 100 200 500 300"},
		{Class: "ocrx_word", ID: "word_1_0_0", Lang: "en", Title: "bbox 100 200 250 300; x_wconf 98", Text: "Smith"},
		{Class: "ocrx_word", ID: "word_1_0_1", Title: "bbox 260 200 280 300; x_wconf 88", Text: "&"},
		{Class: "ocrx_word", ID: "word_1_0_2", Lang: "de", Title: "bbox 290 200 500 300; x_wconf 91", Text: "<Sons>"},
	}
	if diff := cmp.Diff(want, collect(root)); diff != "" {
		t.Errorf("unexpected hOCR elements (-want +got):\n%s", diff)
	}

	for _, s := range []string{
		`<title>Document OCR</title>`,
		`<meta name="ocr-number-of-pages" content="1"/>`,
		`<meta name="ocr-system" content="Document AI OCR"/>`,
		`xml:lang="en"`,
		`&lt;Sons&gt;`,
	} {
		if !strings.Contains(out, s) {
			t.Errorf("output is missing %s", s)
		}
	}
}

func TestGenerateHOCRDocumentNil(t *testing.T) {
	if _, err := GenerateHOCRDocument(nil); err == nil {
		t.Errorf("expected an error for a nil document")
	}
}
