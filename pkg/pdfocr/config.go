package pdfocr

import (
	"io"
)

// Config holds user options for applying OCR to PDF
type Config struct {
	Debug     bool      // Draw the OCR text in red with word boxes instead of hiding it
	Force     bool      // Reapply OCR even if the layer already exists
	LayerName string    // Base name of the OCR layer, the page number is appended
	Title     string    // Title of the output; empty keeps the source title
	Logger    io.Writer // Warnings and progress (nil = stdout)
	Font      FontConfig
}

// DefaultConfig returns a config with sensible defaults
func DefaultConfig() Config {
	return Config{
		LayerName: "OCR Text", // Will be formatted as "OCR Text (Page X)" in the final PDF
		Font:      DefaultFont,
	}
}

// FontConfig contains font settings for OCR text rendering
type FontConfig struct {
	Name        string  // Core font name (e.g., "Helvetica")
	Style       string  // Font style ("", "B", "I", "BI")
	Size        float64 // Size before a word is scaled to its box
	AscentRatio float64 // Baseline offset relative to the font size
}

// DefaultFont sets the default font to Helvetica which is tried and tested for the OCR layer
var DefaultFont = FontConfig{
	Name:        "Helvetica",
	Style:       "",
	Size:        10,
	AscentRatio: 0.718,
}
