package ocr

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"
)

// OCRmyPDF runs the ocrmypdf command line tool.
type OCRmyPDF struct {
	Path      string    // Executable; empty looks up "ocrmypdf" on PATH
	Languages []string  // Tesseract language codes, e.g. "eng", "deu"
	ExtraArgs []string  // Passed through before the file arguments
	Stderr    io.Writer // Receives the tool's progress output (nil = discarded)
}

// Name implements Engine.
func (e *OCRmyPDF) Name() string { return EngineOCRmyPDF }

// Args returns the command line arguments for a job.
func (e *OCRmyPDF) Args(job Job) []string {
	var args []string
	if job.Deskew {
		args = append(args, "--deskew")
	}
	if job.ForceOCR {
		args = append(args, "--force-ocr")
	}
	if len(e.Languages) > 0 {
		args = append(args, "--language", strings.Join(e.Languages, "+"))
	}
	if job.Sidecar != "" {
		args = append(args, "--sidecar", job.Sidecar)
	}
	args = append(args, e.ExtraArgs...)
	return append(args, job.Input, job.Output)
}

// Run implements Engine.
func (e *OCRmyPDF) Run(ctx context.Context, job Job) error {
	bin := e.Path
	if bin == "" {
		bin = "ocrmypdf"
	}
	path, err := exec.LookPath(bin)
	if err != nil {
		return fmt.Errorf("ocrmypdf not found: %w", err)
	}

	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, path, e.Args(job)...)
	if e.Stderr != nil {
		cmd.Stderr = io.MultiWriter(&stderr, e.Stderr)
	} else {
		cmd.Stderr = &stderr
	}

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return &EngineError{
				Engine:   EngineOCRmyPDF,
				ExitCode: exitErr.ExitCode(),
				Stderr:   lastLines(stderr.String(), 5),
				Err:      err,
			}
		}
		return fmt.Errorf("failed to run ocrmypdf: %w", err)
	}
	return nil
}

// EngineError reports an OCR engine that exited unsuccessfully.
type EngineError struct {
	Engine   string
	ExitCode int
	Stderr   string // Last lines of the engine's error output
	Err      error
}

func (e *EngineError) Error() string {
	msg := fmt.Sprintf("%s exited with code %d", e.Engine, e.ExitCode)
	if meaning := ExitCodeMeaning(e.ExitCode); meaning != "" {
		msg += " (" + meaning + ")"
	}
	if e.Stderr != "" {
		msg += ": " + e.Stderr
	}
	return msg
}

func (e *EngineError) Unwrap() error { return e.Err }

// ocrmypdf's documented exit codes.
var exitCodes = map[int]string{
	1:   "invalid arguments",
	2:   "input file is not a valid PDF or image",
	3:   "missing dependency",
	4:   "output file is invalid",
	5:   "file access error",
	6:   "page already has text",
	7:   "child process error",
	8:   "input PDF is encrypted",
	9:   "invalid configuration",
	10:  "PDF/A conversion failed",
	15:  "other error",
	130: "interrupted",
}

// ExitCodeMeaning describes an ocrmypdf exit code, or returns "".
func ExitCodeMeaning(code int) string {
	return exitCodes[code]
}

func lastLines(s string, n int) string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}
