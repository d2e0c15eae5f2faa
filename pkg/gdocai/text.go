package gdocai

import (
	"strings"

	"cloud.google.com/go/documentai/apiv1/documentaipb"
)

// textFromLayout extracts text from a layout's text anchor segments.
// Indexes are clamped to the document text.
func textFromLayout(layout *documentaipb.Document_Page_Layout, fullText []rune) string {
	if layout == nil || layout.TextAnchor == nil {
		return ""
	}
	var b strings.Builder
	for _, seg := range layout.TextAnchor.TextSegments {
		start, end := clampSegment(seg, len(fullText))
		b.WriteString(string(fullText[start:end]))
	}
	return b.String()
}

func clampSegment(seg *documentaipb.Document_TextAnchor_TextSegment, n int) (int, int) {
	start, end := int(seg.StartIndex), int(seg.EndIndex)
	if start < 0 {
		start = 0
	}
	if end > n {
		end = n
	}
	if start > end {
		start = end
	}
	return start, end
}

// span returns the first text segment of a layout.
func span(layout *documentaipb.Document_Page_Layout) (start, end int64, ok bool) {
	if layout == nil || layout.TextAnchor == nil || len(layout.TextAnchor.TextSegments) == 0 {
		return 0, 0, false
	}
	seg := layout.TextAnchor.TextSegments[0]
	return seg.StartIndex, seg.EndIndex, true
}

// within reports whether child's text span lies inside parent's.
func within(child, parent *documentaipb.Document_Page_Layout) bool {
	cs, ce, ok := span(child)
	if !ok {
		return false
	}
	ps, pe, ok := span(parent)
	if !ok {
		return false
	}
	return cs >= ps && ce <= pe
}
