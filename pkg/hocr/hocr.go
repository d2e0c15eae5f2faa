// Package hocr holds the object model of an hOCR document, the HTML based
// format for OCR results.
//
// The hierarchy is Document → Pages → Paragraphs → Lines → Words, each level
// carrying a bounding box in the pixel space of the recognized page image.
// Lines that belong to no paragraph hang directly off the page.
//
// The OCR layer renderer only needs words and their boxes, so Page.Words
// flattens the hierarchy. ExtractText turns a document into plain text for
// sidecar files and GenerateHOCRDocument writes it out as hOCR XHTML.
package hocr
