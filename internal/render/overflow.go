package render

import "unicode/utf8"

// Frozen template metrics. The one-page projection runs on the shared
// section model before any renderer is invoked, so the accept/refuse
// decision is deterministic and independent of the PDF engine.
const (
	// LinesPerPage is the body capacity of one A4 page under the fixed
	// margins, font size and line height of the template.
	LinesPerPage = 54
	// CharsPerLine is the wrap width of body text under the same metrics.
	CharsPerLine = 92

	headingCost = 2 // heading plus its rule and spacing
	sectionGap  = 1
)

// ProjectedLines estimates the rendered line count of the section list.
func ProjectedLines(sections []Section) int {
	total := 0
	for _, s := range sections {
		if s.Heading != "" {
			total += headingCost
		}
		for _, l := range s.Lines {
			n := utf8.RuneCountInString(l.Text)
			lines := n / CharsPerLine
			if n%CharsPerLine != 0 || n == 0 {
				lines++
			}
			total += lines
		}
		total += sectionGap
	}
	return total
}

// FitsOnePage reports whether the projected content stays within one page.
func FitsOnePage(sections []Section) (int, bool) {
	n := ProjectedLines(sections)
	return n, n <= LinesPerPage
}
