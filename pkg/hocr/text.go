package hocr

import "strings"

// ExtractText returns the plain text of a document. Words are separated by
// spaces, lines by newlines, paragraphs by an empty line and pages by a form
// feed, the way ocrmypdf writes its sidecar text.
func ExtractText(doc *HOCR) string {
	if doc == nil {
		return ""
	}
	var b strings.Builder
	for i, page := range doc.Pages {
		if i > 0 {
			b.WriteString("\f")
		}
		for _, para := range page.Paragraphs {
			writeLines(&b, para.Lines)
			b.WriteString("\n")
		}
		writeLines(&b, page.Lines)
	}
	return b.String()
}

func writeLines(b *strings.Builder, lines []Line) {
	for _, line := range lines {
		texts := make([]string, 0, len(line.Words))
		for _, w := range line.Words {
			if w.Text != "" {
				texts = append(texts, w.Text)
			}
		}
		if len(texts) == 0 {
			continue
		}
		b.WriteString(strings.Join(texts, " "))
		b.WriteString("\n")
	}
}
