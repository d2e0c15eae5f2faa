package pdfcheck

// Check is a single structural test run against a parsed document.
type Check struct {
	Name        string               // Short identifier, reported when the check fails
	Description string               // Human readable statement of what must hold
	Test        func(*Document) bool // Returns true if the document passes
}

// DefaultChecks is the checklist used by Validate, in evaluation order.
var DefaultChecks = []Check{
	{Name: "pages", Description: "document has at least one page", Test: HasPages},
	{Name: "title", Description: "information dictionary has a non-empty title", Test: HasTitle},
	{Name: "xref", Description: "cross-reference table is present and non-empty", Test: HasXRef},
}

// HasPages reports whether the document has at least one page.
func HasPages(doc *Document) bool {
	return doc.PageCount >= 1
}

// HasTitle reports whether the information dictionary carries a title.
func HasTitle(doc *Document) bool {
	return doc.Title() != ""
}

// HasXRef reports whether the document has any in-use cross-reference entries.
func HasXRef(doc *Document) bool {
	return doc.XRefEntries > 0
}
