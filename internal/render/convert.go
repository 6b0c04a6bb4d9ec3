// Converts Notion API blocks into renderer blocks.

package render

import "github.com/maruel/notionctl/internal/notion"

// FromNotion converts API blocks, keeping order. Types the renderer does not
// handle, heading_3 included, become Unsupported. A recognized type with a
// missing payload converts to a block with no text.
func FromNotion(blocks []notion.Block) []Block {
	out := make([]Block, 0, len(blocks))
	for i := range blocks {
		out = append(out, fromNotion(&blocks[i]))
	}
	return out
}

func fromNotion(b *notion.Block) Block {
	switch b.Type {
	case "paragraph":
		return Paragraph{Text: textOf(b.Paragraph)}
	case "heading_1":
		return Heading1{Text: textOf(b.Heading1)}
	case "heading_2":
		return Heading2{Text: textOf(b.Heading2)}
	case "quote":
		return Quote{Text: textOf(b.Quote)}
	case "bulleted_list_item":
		return BulletedListItem{Text: textOf(b.BulletedListItem)}
	case "callout":
		if b.Callout == nil {
			return Callout{}
		}
		c := Callout{Text: spans(b.Callout.RichText)}
		if b.Callout.Icon != nil {
			c.Emoji = b.Callout.Icon.Emoji
		}
		return c
	default:
		return Unsupported{Type: b.Type}
	}
}

func textOf(t *notion.TextBlock) []Span {
	if t == nil {
		return nil
	}
	return spans(t.RichText)
}

func spans(rt []notion.RichText) []Span {
	if len(rt) == 0 {
		return nil
	}
	out := make([]Span, len(rt))
	for i := range rt {
		out[i] = Span{PlainText: rt[i].PlainText}
	}
	return out
}
