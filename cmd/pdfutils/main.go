// pdfutils is a command-line tool for checking PDF structure and adding
// OCR text layers to scanned PDFs.
//
// Usage:
//
//	pdfutils <command> [options] arguments
//
// Commands:
//
//	validate_pdf [-v] <file>
//	    Checks that the file parses as a PDF with at least one page, a
//	    non-empty Title in its information dictionary and a non-empty
//	    cross-reference table. Prints "valid" or "invalid".
//
//	perform_ocr [-engine NAME] [-config FILE] [-sidecar FILE] [-hocr FILE] <input> <output>
//	    Runs OCR on input with deskewing and forced OCR and writes the
//	    searchable PDF to output. Prints "Success". -hocr saves the
//	    recognized text as hOCR and needs the gdocai engine.
//
// Exit status:
//
//	0  valid PDF, or OCR succeeded
//	1  invalid PDF, or OCR failed
//	2  unreadable file or usage error
//
// Configuration:
//
// perform_ocr reads an optional YAML file:
//
//	engine: ocrmypdf        # or gdocai
//	ocrmypdf:
//	  path: /usr/bin/ocrmypdf
//	  language: [eng, deu]
//	gdocai:
//	  project_id: "your-gcp-project-id"
//	  location: "us"
//	  processor_id: "your-processor-id"
//
// Variables in a .env file in the working directory are loaded first, so
// GOOGLE_APPLICATION_CREDENTIALS can be set there.
//
// Examples:
//
//	pdfutils validate_pdf -v report.pdf
//	pdfutils perform_ocr scan.pdf scan_ocr.pdf
//	pdfutils perform_ocr -engine gdocai -config config.yml -sidecar scan.txt -hocr scan.hocr scan.pdf scan_ocr.pdf
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/gardar/pdfutils/pkg/ocr"
	"github.com/gardar/pdfutils/pkg/pdfcheck"
)

const (
	exitOK      = 0
	exitFailure = 1
	exitUsage   = 2
)

const usageText = `Usage:
  pdfutils validate_pdf [-v] <file>
  pdfutils perform_ocr [-engine NAME] [-config FILE] [-sidecar FILE] [-hocr FILE] <input> <output>
  pdfutils help
`

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		fmt.Fprint(stderr, usageText)
		return exitUsage
	}

	switch args[0] {
	case "validate_pdf":
		return validateCmd(args[1:], stdout, stderr)
	case "perform_ocr":
		return performOCRCmd(context.Background(), args[1:], stdout, stderr)
	case "help", "-h", "-help", "--help":
		fmt.Fprint(stdout, usageText)
		return exitOK
	}

	fmt.Fprintf(stderr, "Error: unknown command %q\n", args[0])
	fmt.Fprint(stderr, usageText)
	return exitUsage
}

func validateCmd(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("validate_pdf", flag.ContinueOnError)
	fs.SetOutput(stderr)
	verbose := fs.Bool("v", false, "Print the failing check")
	if err := fs.Parse(args); err != nil {
		return parseStatus(err)
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(stderr, "Error: validate_pdf takes exactly one file")
		fs.Usage()
		return exitUsage
	}

	res, err := pdfcheck.DefaultValidator.ValidateFile(fs.Arg(0))
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitUsage
	}
	if res.Valid {
		fmt.Fprintln(stdout, "valid")
		return exitOK
	}

	if *verbose {
		fmt.Fprintf(stdout, "invalid: %s\n", res.Reason())
	} else {
		fmt.Fprintln(stdout, "invalid")
	}
	return exitFailure
}

func performOCRCmd(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("perform_ocr", flag.ContinueOnError)
	fs.SetOutput(stderr)
	engineName := fs.String("engine", "", "OCR engine: ocrmypdf or gdocai (overrides the config file)")
	configPath := fs.String("config", "", "Path to the YAML configuration file")
	sidecar := fs.String("sidecar", "", "Path to save the recognized text")
	hocrPath := fs.String("hocr", "", "Path to save the recognized text as hOCR (gdocai engine only)")
	if err := fs.Parse(args); err != nil {
		return parseStatus(err)
	}
	if fs.NArg() != 2 {
		fmt.Fprintln(stderr, "Error: perform_ocr takes an input and an output file")
		fs.Usage()
		return exitUsage
	}

	if err := loadEnv(".env"); err != nil {
		fmt.Fprintf(stderr, "Warning: %v\n", err)
	}
	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitFailure
	}
	if *engineName != "" {
		cfg.Engine = *engineName
	}

	settings := cfg.settings(stdout, stderr)
	if *hocrPath != "" {
		if cfg.Engine != ocr.EngineDocumentAI {
			fmt.Fprintln(stderr, "Error: -hocr requires the gdocai engine")
			return exitUsage
		}
		settings.DocumentAI.HOCRFile = *hocrPath
	}

	engine, err := ocr.NewEngine(cfg.Engine, settings)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitFailure
	}

	job := ocr.NewJob(fs.Arg(0), fs.Arg(1))
	job.Sidecar = *sidecar
	if err := ocr.PerformJob(ctx, engine, job); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitFailure
	}
	fmt.Fprintln(stdout, "Success")
	return exitOK
}

func parseStatus(err error) int {
	if errors.Is(err, flag.ErrHelp) {
		return exitOK
	}
	return exitUsage
}
