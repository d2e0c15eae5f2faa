// Package ocr adds a text layer to scanned PDFs by handing them to an OCR
// engine.
//
// A Job names the input and output files and carries the two fixed options
// every run uses: deskew the page images, and force OCR even on pages that
// already have text. Perform checks that the input is readable, runs the
// engine and checks that it left a PDF behind.
//
// Engines:
//
// - OCRmyPDF: runs the ocrmypdf command line tool (default)
// - DocumentAI: Google Document AI recognition with the text layer drawn by pdfocr
package ocr

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
)

var (
	// ErrNoOutput is returned when an engine reports success without writing the output file.
	ErrNoOutput = errors.New("OCR engine produced no output")

	// ErrUnknownEngine is returned by NewEngine for unsupported engine names.
	ErrUnknownEngine = errors.New("unknown OCR engine")
)

// Job is a single OCR run.
type Job struct {
	Input    string // Path of the scanned PDF
	Output   string // Path of the PDF to write, overwritten if it exists
	Deskew   bool   // Straighten skewed page images before recognition
	ForceOCR bool   // Recognize pages even if they already contain text
	Sidecar  string // Optional path for the recognized plain text
}

// NewJob returns a job with deskewing and forced OCR enabled.
func NewJob(input, output string) Job {
	return Job{
		Input:    input,
		Output:   output,
		Deskew:   true,
		ForceOCR: true,
	}
}

// Engine runs OCR for a job.
type Engine interface {
	Name() string
	Run(ctx context.Context, job Job) error
}

// Perform runs OCR on input and writes the result to output.
func Perform(ctx context.Context, engine Engine, input, output string) error {
	return PerformJob(ctx, engine, NewJob(input, output))
}

// PerformJob runs a prepared job. Missing or unreadable input is reported
// before the engine is started; engine errors are returned wrapped.
func PerformJob(ctx context.Context, engine Engine, job Job) error {
	if engine == nil {
		return fmt.Errorf("no OCR engine configured")
	}
	if job.Input == "" || job.Output == "" {
		return fmt.Errorf("input and output paths are required")
	}
	if err := checkReadable(job.Input); err != nil {
		return err
	}

	before, _ := os.Stat(job.Output)
	if err := engine.Run(ctx, job); err != nil {
		return fmt.Errorf("%s: %w", engine.Name(), err)
	}
	return checkOutput(engine.Name(), job.Output, before)
}

// checkOutput verifies that the engine wrote a non-empty output. before is
// the state of the output path prior to the run, nil if it did not exist.
func checkOutput(engine, path string, before os.FileInfo) error {
	after, err := os.Stat(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return fmt.Errorf("%s: %w: %s", engine, ErrNoOutput, path)
	case err != nil:
		return fmt.Errorf("%s: cannot check output: %w", engine, err)
	case after.Size() == 0:
		return fmt.Errorf("%s: %w: %s is empty", engine, ErrNoOutput, path)
	case before != nil && os.SameFile(before, after) &&
		after.ModTime().Equal(before.ModTime()) && after.Size() == before.Size():
		return fmt.Errorf("%s: %w: %s was not rewritten", engine, ErrNoOutput, path)
	}
	return nil
}

func checkReadable(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("cannot read input: %w", err)
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		return fmt.Errorf("cannot read input: %w", err)
	}
	if fi.IsDir() {
		return fmt.Errorf("cannot read input: %s is a directory", path)
	}
	return nil
}

// Engine names accepted by NewEngine.
const (
	EngineOCRmyPDF   = "ocrmypdf"
	EngineDocumentAI = "gdocai"
)

// Settings holds the configuration of every engine; NewEngine picks one.
type Settings struct {
	OCRmyPDF   OCRmyPDF
	DocumentAI DocumentAI
}

// NewEngine returns the named engine configured from s. An empty name
// selects ocrmypdf.
func NewEngine(name string, s Settings) (Engine, error) {
	switch name {
	case "", EngineOCRmyPDF:
		e := s.OCRmyPDF
		return &e, nil
	case EngineDocumentAI:
		e := s.DocumentAI
		if err := e.Config.Validate(); err != nil {
			return nil, fmt.Errorf("%s engine: %w", EngineDocumentAI, err)
		}
		return &e, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownEngine, name)
}
