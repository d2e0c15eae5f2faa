package pdfcheck

import (
	"errors"
	"fmt"
	"io"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
)

func init() {
	// Keep pdfcpu from creating its configuration directory under $HOME.
	model.ConfigPath = "disable"
}

// ErrMalformed is wrapped by every error returned from Parse, except for
// failures to read the underlying stream.
var ErrMalformed = errors.New("malformed PDF")

// Document is a read-only view of a parsed PDF file.
type Document struct {
	PageCount   int               // Number of pages reported by the page tree
	Info        map[string]string // Document information dictionary, keys without the leading slash
	XRefEntries int               // In-use cross-reference entries

	ctx *model.Context
}

// PageDim is the size of a page in PDF points.
type PageDim struct {
	Width  float64
	Height float64
}

// Title returns the /Title entry of the information dictionary.
func (d *Document) Title() string {
	if d.Info == nil {
		return ""
	}
	return d.Info["Title"]
}

// Parse reads a PDF from rs and collects the properties the checks look at.
func Parse(rs io.ReadSeeker) (doc *Document, err error) {
	src := &recordingReader{rs: rs}
	defer func() {
		if r := recover(); r != nil {
			doc, err = nil, fmt.Errorf("%w: parser panic: %v", ErrMalformed, r)
		}
		// pdfcpu flattens I/O failures into parse errors.
		if src.err != nil {
			doc, err = nil, fmt.Errorf("failed to read PDF: %w", src.err)
		}
	}()

	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed

	ctx, err := api.ReadContext(src, conf)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if err := ctx.EnsurePageCount(); err != nil {
		return nil, fmt.Errorf("%w: page tree: %v", ErrMalformed, err)
	}

	doc = &Document{
		PageCount:   ctx.PageCount,
		XRefEntries: countInUse(ctx.XRefTable),
		ctx:         ctx,
	}
	doc.Info, err = decodeInfo(ctx.XRefTable)
	if err != nil {
		return nil, fmt.Errorf("%w: info dictionary: %v", ErrMalformed, err)
	}
	return doc, nil
}

// recordingReader keeps the first read error of the stream. Seek errors are
// not kept: the parser seeks out of range while scanning damaged files.
type recordingReader struct {
	rs  io.ReadSeeker
	err error
}

func (r *recordingReader) Read(p []byte) (int, error) {
	n, err := r.rs.Read(p)
	if err != nil && err != io.EOF && r.err == nil {
		r.err = err
	}
	return n, err
}

func (r *recordingReader) Seek(offset int64, whence int) (int64, error) {
	return r.rs.Seek(offset, whence)
}

// PageDims returns the media box size of every page, in page order.
func (d *Document) PageDims() ([]PageDim, error) {
	if d.ctx == nil {
		return nil, nil
	}
	dims, err := d.ctx.PageDims()
	if err != nil {
		return nil, fmt.Errorf("failed to read page dimensions: %w", err)
	}
	result := make([]PageDim, 0, len(dims))
	for _, dim := range dims {
		result = append(result, PageDim{Width: dim.Width, Height: dim.Height})
	}
	return result, nil
}

// Layers returns the names of the optional content groups listed in the
// document catalog.
func (d *Document) Layers() ([]string, error) {
	if d.ctx == nil {
		return nil, nil
	}
	xt := d.ctx.XRefTable

	catalog, err := xt.Catalog()
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}
	obj, found := catalog.Find("OCProperties")
	if !found {
		return nil, nil
	}
	props, err := xt.DereferenceDict(obj)
	if err != nil || props == nil {
		return nil, err
	}
	obj, found = props.Find("OCGs")
	if !found {
		return nil, nil
	}
	groups, err := xt.DereferenceArray(obj)
	if err != nil {
		return nil, err
	}

	var names []string
	for _, g := range groups {
		group, err := xt.DereferenceDict(g)
		if err != nil || group == nil {
			continue
		}
		if name, ok := textValue(xt, group["Name"]); ok {
			names = append(names, name)
		}
	}
	return names, nil
}

func countInUse(xt *model.XRefTable) int {
	n := 0
	for _, entry := range xt.Table {
		if entry != nil && !entry.Free {
			n++
		}
	}
	return n
}

// decodeInfo returns nil when the trailer has no /Info entry.
func decodeInfo(xt *model.XRefTable) (map[string]string, error) {
	if xt.Info == nil {
		return nil, nil
	}
	dict, err := xt.DereferenceDict(*xt.Info)
	if err != nil {
		return nil, err
	}
	if dict == nil {
		return nil, nil
	}
	info := make(map[string]string, len(dict))
	for key, value := range dict {
		if s, ok := textValue(xt, value); ok {
			info[key] = s
		}
	}
	return info, nil
}

// textValue decodes string-like PDF objects, following indirect references.
func textValue(xt *model.XRefTable, obj types.Object) (string, bool) {
	obj, err := xt.Dereference(obj)
	if err != nil || obj == nil {
		return "", false
	}
	switch v := obj.(type) {
	case types.StringLiteral:
		s, err := types.StringLiteralToString(v)
		if err != nil {
			return string(v), true
		}
		return s, true
	case types.HexLiteral:
		s, err := types.HexLiteralToString(v)
		if err != nil {
			return "", false
		}
		return s, true
	case types.Name:
		return string(v), true
	}
	return "", false
}
