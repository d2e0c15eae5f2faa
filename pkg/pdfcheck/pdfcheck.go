// Package pdfcheck runs structural sanity checks on PDF files.
//
// A file is valid when it parses and passes every check of a short, ordered
// checklist: it has at least one page, its information dictionary carries a
// non-empty title, and its cross-reference table is present and non-empty.
// The first failing check decides the result.
//
// Failures are split into two tiers:
//
// - A file that cannot be opened or read (missing, permission denied) is an error.
// - A file that does not parse, or fails a check, is simply invalid.
//
// Callers that need more than the default checklist can build a Validator
// with their own Checks.
package pdfcheck

import (
	"errors"
	"fmt"
	"io"
	"os"
)

// Result is the outcome of validating one file.
type Result struct {
	Valid    bool
	Check    string // Name of the first failing check, empty if none failed
	Detail   string // Description of the failing check
	ParseErr error  // Set when the file could not be parsed as a PDF
}

// Reason returns a short human readable explanation of an invalid result.
func (r Result) Reason() string {
	switch {
	case r.Valid:
		return ""
	case r.ParseErr != nil:
		return r.ParseErr.Error()
	case r.Detail != "":
		return fmt.Sprintf("failed check %q: %s", r.Check, r.Detail)
	default:
		return fmt.Sprintf("failed check %q", r.Check)
	}
}

// Validator runs an ordered list of checks.
type Validator struct {
	Checks []Check
}

// DefaultValidator uses DefaultChecks.
var DefaultValidator = &Validator{Checks: DefaultChecks}

// Validate reports whether the file at path passes the default checks.
// The error is non-nil only when the file cannot be opened or read.
func Validate(path string) (bool, error) {
	res, err := DefaultValidator.ValidateFile(path)
	if err != nil {
		return false, err
	}
	return res.Valid, nil
}

// ValidateFile opens path and validates its content.
func (v *Validator) ValidateFile(path string) (Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return Result{}, fmt.Errorf("failed to open PDF: %w", err)
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		return Result{}, fmt.Errorf("failed to stat PDF: %w", err)
	}
	if fi.IsDir() {
		return Result{}, fmt.Errorf("failed to open PDF: %s is a directory", path)
	}

	return v.ValidateReader(f)
}

// ValidateReader validates a PDF read from rs. Content that does not parse
// gives an invalid Result; only failures of rs itself are returned as errors.
func (v *Validator) ValidateReader(rs io.ReadSeeker) (Result, error) {
	doc, err := Parse(rs)
	if errors.Is(err, ErrMalformed) {
		return Result{ParseErr: err}, nil
	}
	if err != nil {
		return Result{}, err
	}
	return v.Run(doc), nil
}

// Run applies the checks to an already parsed document.
func (v *Validator) Run(doc *Document) Result {
	for _, c := range v.Checks {
		if !c.Test(doc) {
			return Result{Check: c.Name, Detail: c.Description}
		}
	}
	return Result{Valid: true}
}
