package pdfocr

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"codeberg.org/go-pdf/fpdf"
	"github.com/google/go-cmp/cmp"

	"github.com/gardar/pdfutils/pkg/hocr"
	"github.com/gardar/pdfutils/pkg/pdfcheck"
)

// scannedPDF generates a stand-in for a scanned document.
func scannedPDF(t *testing.T, pages int, title string) []byte {
	t.Helper()
	pdf := fpdf.New("P", "pt", "A4", "")
	if title != "" {
		pdf.SetTitle(title, false)
	}
	for i := 0; i < pages; i++ {
		pdf.AddPage()
		pdf.SetFillColor(220, 220, 220)
		pdf.Rect(50, 50, 400, 100, "F")
	}
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		t.Fatalf("failed to generate PDF: %v", err)
	}
	return buf.Bytes()
}

func hocrPage(num int, words ...string) hocr.Page {
	line := hocr.Line{ID: "line"}
	x := 100.0
	for _, w := range words {
		line.Words = append(line.Words, hocr.Word{
			Text: w,
			BBox: hocr.BoundingBox{X1: x, Y1: 100, X2: x + 150, Y2: 140},
		})
		x += 200
	}
	return hocr.Page{
		PageNumber: num,
		BBox:       hocr.BoundingBox{X2: 2480, Y2: 3508},
		Lines:      []hocr.Line{line},
	}
}

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.Logger = io.Discard
	return cfg
}

func TestApplyOCR(t *testing.T) {
	input := scannedPDF(t, 2, "Scan 2026")
	doc := &hocr.HOCR{Pages: []hocr.Page{
		hocrPage(1, "Quarterly", "report"),
		hocrPage(2, "Appendix"),
	}}

	out, err := ApplyOCR(input, doc, testConfig())
	if err != nil {
		t.Fatalf("ApplyOCR() error = %v", err)
	}

	parsed, err := pdfcheck.Parse(bytes.NewReader(out))
	if err != nil {
		t.Fatalf("output does not parse: %v", err)
	}
	if parsed.PageCount != 2 {
		t.Errorf("PageCount = %d, want 2", parsed.PageCount)
	}
	if got := parsed.Title(); got != "Scan 2026" {
		t.Errorf("Title() = %q, want the source title", got)
	}
	layers, err := parsed.Layers()
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"OCR Text (Page 1)", "OCR Text (Page 2)"}, layers); diff != "" {
		t.Errorf("unexpected layers (-want +got):\n%s", diff)
	}
}

func TestApplyOCRRefusesExistingLayer(t *testing.T) {
	doc := &hocr.HOCR{Pages: []hocr.Page{hocrPage(1, "text")}}
	once, err := ApplyOCR(scannedPDF(t, 1, "Scan"), doc, testConfig())
	if err != nil {
		t.Fatalf("first ApplyOCR() error = %v", err)
	}

	_, err = ApplyOCR(once, doc, testConfig())
	if !errors.Is(err, ErrOCRLayerExists) {
		t.Fatalf("expected ErrOCRLayerExists, got %v", err)
	}

	cfg := testConfig()
	cfg.Force = true
	if _, err := ApplyOCR(once, doc, cfg); err != nil {
		t.Fatalf("forced ApplyOCR() error = %v", err)
	}
}

func TestApplyOCRTitleOverride(t *testing.T) {
	cfg := testConfig()
	cfg.Title = "Überblick"
	doc := &hocr.HOCR{Pages: []hocr.Page{hocrPage(1, "text")}}

	out, err := ApplyOCR(scannedPDF(t, 1, "Scan"), doc, cfg)
	if err != nil {
		t.Fatal(err)
	}
	parsed, err := pdfcheck.Parse(bytes.NewReader(out))
	if err != nil {
		t.Fatal(err)
	}
	if got := parsed.Title(); got != "Überblick" {
		t.Errorf("Title() = %q, want %q", got, "Überblick")
	}
}

func TestApplyOCRPagesWithoutText(t *testing.T) {
	doc := &hocr.HOCR{Pages: []hocr.Page{hocrPage(2, "second")}}
	out, err := ApplyOCR(scannedPDF(t, 3, "Scan"), doc, testConfig())
	if err != nil {
		t.Fatal(err)
	}
	parsed, err := pdfcheck.Parse(bytes.NewReader(out))
	if err != nil {
		t.Fatal(err)
	}
	if parsed.PageCount != 3 {
		t.Errorf("PageCount = %d, want 3", parsed.PageCount)
	}
	layers, _ := parsed.Layers()
	if diff := cmp.Diff([]string{"OCR Text (Page 2)"}, layers); diff != "" {
		t.Errorf("unexpected layers (-want +got):\n%s", diff)
	}
}

func TestApplyOCRInputErrors(t *testing.T) {
	doc := &hocr.HOCR{Pages: []hocr.Page{hocrPage(1, "text")}}
	pdf := scannedPDF(t, 1, "")

	tests := []struct {
		name  string
		input []byte
		doc   *hocr.HOCR
	}{
		{"empty input", nil, doc},
		{"nil hocr", pdf, nil},
		{"no hocr pages", pdf, &hocr.HOCR{}},
		{"not a pdf", []byte("plain text"), doc},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := ApplyOCR(tc.input, tc.doc, testConfig()); err == nil {
				t.Errorf("expected an error")
			}
		})
	}
}

func TestApplyOCRUnencodableText(t *testing.T) {
	doc := &hocr.HOCR{Pages: []hocr.Page{hocrPage(1, "日本", "語")}}
	if _, err := ApplyOCR(scannedPDF(t, 1, ""), doc, testConfig()); err == nil {
		t.Fatalf("expected an encoding error")
	}
}

func TestCheckExistingOCRLayers(t *testing.T) {
	tests := []struct {
		name     string
		layers   []string
		found    string
		warnings int
	}{
		{"none", nil, "", 0},
		{"exact", []string{"Background", "OCR Text"}, "OCR Text", 0},
		{"per page", []string{"OCR Text (Page 3)", "OCR Text (Page 4)"}, "OCR Text (Page 3)", 0},
		{"other ocr layer", []string{"Tesseract OCR"}, "", 1},
		{"prefix only", []string{"OCR Textual notes"}, "", 1},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			res := CheckExistingOCRLayers(tc.layers, "OCR Text")
			if res.HasOCRLayer != (tc.found != "") || res.OCRLayerName != tc.found {
				t.Errorf("got HasOCRLayer=%v name=%q, want %q", res.HasOCRLayer, res.OCRLayerName, tc.found)
			}
			if len(res.Warnings) != tc.warnings {
				t.Errorf("got %d warnings, want %d: %v", len(res.Warnings), tc.warnings, res.Warnings)
			}
		})
	}
}

func TestDetectOCR(t *testing.T) {
	if _, err := DetectOCR(nil, "OCR Text"); err == nil {
		t.Errorf("expected an error for empty data")
	}
	res, err := DetectOCR(scannedPDF(t, 1, ""), "OCR Text")
	if err != nil {
		t.Fatal(err)
	}
	if res.HasOCRLayer || len(res.Layers) != 0 {
		t.Errorf("unexpected layers in a plain PDF: %+v", res)
	}
}

func TestNormalizeCoords(t *testing.T) {
	x, y := normalizeCoords(1240, 1754, 2480, 3508, 595, 842)
	if x != 297.5 || y != 421 {
		t.Errorf("got (%v, %v), want (297.5, 421)", x, y)
	}
	x, y = normalizeCoords(10, 20, 0, 0, 595, 842)
	if x != 10 || y != 20 {
		t.Errorf("zero sized hOCR page should leave coordinates alone, got (%v, %v)", x, y)
	}
}
