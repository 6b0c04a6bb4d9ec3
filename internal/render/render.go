// Renders blocks into text lines.

package render

import "strings"

// Render converts blocks into one line per recognized block, keeping input
// order. Unsupported blocks produce no line.
func Render(blocks []Block) []string {
	lines := make([]string, 0, len(blocks))
	for _, b := range blocks {
		if line, ok := Line(b); ok {
			lines = append(lines, line)
		}
	}
	return lines
}

// Line renders a single block. It returns false for blocks that produce no
// line.
//
// Empty text still gets its prefix: an empty Heading1 is "## " and a Callout
// without emoji starts with a single space.
func Line(b Block) (string, bool) {
	switch b := b.(type) {
	case Paragraph:
		return join(b.Text), true
	case Heading1:
		return "## " + join(b.Text), true
	case Heading2:
		return "### " + join(b.Text), true
	case Quote:
		return "> " + join(b.Text), true
	case BulletedListItem:
		return "- " + join(b.Text), true
	case Callout:
		return b.Emoji + " " + join(b.Text), true
	case Unsupported:
		return "", false
	default:
		return "", false
	}
}

func join(spans []Span) string {
	switch len(spans) {
	case 0:
		return ""
	case 1:
		return spans[0].PlainText
	}
	var sb strings.Builder
	for _, s := range spans {
		sb.WriteString(s.PlainText)
	}
	return sb.String()
}
