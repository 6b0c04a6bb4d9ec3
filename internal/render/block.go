// Defines the block variants understood by the renderer.

package render

// Kind identifies a block variant.
type Kind string

// Recognized kinds. Anything else is KindOther.
const (
	KindParagraph        Kind = "paragraph"
	KindHeading1         Kind = "heading_1"
	KindHeading2         Kind = "heading_2"
	KindQuote            Kind = "quote"
	KindBulletedListItem Kind = "bulleted_list_item"
	KindCallout          Kind = "callout"
	KindOther            Kind = "other"
)

// Span is a fragment of rich text. Only its plain text is kept.
type Span struct {
	PlainText string
}

// Block is one unit of page content.
//
// The set of implementations is closed: Paragraph, Heading1, Heading2, Quote,
// BulletedListItem, Callout and Unsupported.
type Block interface {
	Kind() Kind
	block()
}

// Paragraph renders as its text.
type Paragraph struct{ Text []Span }

// Heading1 renders as "## " followed by its text.
type Heading1 struct{ Text []Span }

// Heading2 renders as "### " followed by its text.
type Heading2 struct{ Text []Span }

// Quote renders as "> " followed by its text.
type Quote struct{ Text []Span }

// BulletedListItem renders as "- " followed by its text.
type BulletedListItem struct{ Text []Span }

// Callout renders as its emoji, a space, then its text. Emoji is empty when
// the callout has no emoji icon.
type Callout struct {
	Text  []Span
	Emoji string
}

// Unsupported is any block the renderer skips. Type keeps the original type
// tag for diagnostics.
type Unsupported struct{ Type string }

func (Paragraph) Kind() Kind        { return KindParagraph }
func (Heading1) Kind() Kind         { return KindHeading1 }
func (Heading2) Kind() Kind         { return KindHeading2 }
func (Quote) Kind() Kind            { return KindQuote }
func (BulletedListItem) Kind() Kind { return KindBulletedListItem }
func (Callout) Kind() Kind          { return KindCallout }
func (Unsupported) Kind() Kind      { return KindOther }

func (Paragraph) block()        {}
func (Heading1) block()         {}
func (Heading2) block()         {}
func (Quote) block()            {}
func (BulletedListItem) block() {}
func (Callout) block()          {}
func (Unsupported) block()      {}
