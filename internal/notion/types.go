// Defines Notion API request and response types.

package notion

import (
	"encoding/json"
	"time"
)

// Paginated is the common structure for paginated API responses.
type Paginated[T any] struct {
	Object     string  `json:"object"`
	Results    []T     `json:"results"`
	NextCursor *string `json:"next_cursor"`
	HasMore    bool    `json:"has_more"`
}

// UsersResponse is the response from the users endpoint.
type UsersResponse = Paginated[User]

// QueryResponse is the response from the database query endpoint.
type QueryResponse = Paginated[Page]

// BlocksResponse is the response from the block children endpoints.
type BlocksResponse = Paginated[Block]

// Parent represents the parent of a page, database or block.
type Parent struct {
	Type       string `json:"type,omitempty"` // "database_id", "page_id", "workspace", "block_id"
	DatabaseID string `json:"database_id,omitempty"`
	PageID     string `json:"page_id,omitempty"`
	BlockID    string `json:"block_id,omitempty"`
	Workspace  bool   `json:"workspace,omitempty"`
}

// User represents a workspace member or an integration.
type User struct {
	Object    string         `json:"object,omitempty"`
	ID        string         `json:"id"`
	Name      string         `json:"name,omitempty"`
	AvatarURL *string        `json:"avatar_url,omitempty"`
	Type      string         `json:"type,omitempty"` // "person" or "bot"
	Person    *PersonDetails `json:"person,omitempty"`
}

// PersonDetails contains person-specific details.
type PersonDetails struct {
	Email string `json:"email"`
}

// IsBot reports whether the user is an integration.
func (u *User) IsBot() bool {
	return u.Type == "bot"
}

// Database represents a Notion database.
type Database struct {
	Object         string                `json:"object"`
	ID             string                `json:"id"`
	CreatedTime    time.Time             `json:"created_time"`
	LastEditedTime time.Time             `json:"last_edited_time"`
	Title          []RichText            `json:"title"`
	Description    []RichText            `json:"description"`
	Properties     map[string]DBProperty `json:"properties"`
	Parent         Parent                `json:"parent"`
	URL            string                `json:"url"`
	Icon           *Icon                 `json:"icon,omitempty"`
	Archived       bool                  `json:"archived"`
	IsInline       bool                  `json:"is_inline"`
}

// CreateDatabaseRequest is the body of POST /databases.
type CreateDatabaseRequest struct {
	Parent     Parent                `json:"parent"`
	Title      []RichText            `json:"title"`
	Icon       *Icon                 `json:"icon,omitempty"`
	Properties map[string]DBProperty `json:"properties"`
}

// DBProperty represents a property definition in a database schema.
//
// When creating a database only the pointer matching the property type is set;
// an empty struct is serialized as {} which is what the API expects.
type DBProperty struct {
	ID   string `json:"id,omitempty"`
	Name string `json:"name,omitempty"`
	Type string `json:"type,omitempty"`

	Title          *struct{}     `json:"title,omitempty"`
	RichText       *struct{}     `json:"rich_text,omitempty"`
	Number         *NumberConfig `json:"number,omitempty"`
	Select         *SelectConfig `json:"select,omitempty"`
	MultiSelect    *SelectConfig `json:"multi_select,omitempty"`
	Status         *SelectConfig `json:"status,omitempty"`
	Date           *struct{}     `json:"date,omitempty"`
	Checkbox       *struct{}     `json:"checkbox,omitempty"`
	URL            *struct{}     `json:"url,omitempty"`
	Email          *struct{}     `json:"email,omitempty"`
	PhoneNumber    *struct{}     `json:"phone_number,omitempty"`
	People         *struct{}     `json:"people,omitempty"`
	Files          *struct{}     `json:"files,omitempty"`
	CreatedTime    *struct{}     `json:"created_time,omitempty"`
	LastEditedTime *struct{}     `json:"last_edited_time,omitempty"`
}

// NumberConfig defines number property configuration.
type NumberConfig struct {
	Format string `json:"format"` // number, number_with_commas, percent, dollar, etc.
}

// SelectConfig defines select/multi_select/status property configuration.
type SelectConfig struct {
	Options []SelectOption `json:"options"`
}

// SelectOption represents a select option, either as schema or as value.
type SelectOption struct {
	ID    string `json:"id,omitempty"`
	Name  string `json:"name"`
	Color string `json:"color,omitempty"`
}

// Page represents a Notion page (including database rows).
type Page struct {
	Object         string                   `json:"object"`
	ID             string                   `json:"id"`
	CreatedTime    time.Time                `json:"created_time"`
	LastEditedTime time.Time                `json:"last_edited_time"`
	Parent         Parent                   `json:"parent"`
	Archived       bool                     `json:"archived"`
	Properties     map[string]PropertyValue `json:"properties"`
	URL            string                   `json:"url"`
	Icon           *Icon                    `json:"icon,omitempty"`
}

// CreatePageRequest is the body of POST /pages.
type CreatePageRequest struct {
	Parent     Parent                   `json:"parent"`
	Properties map[string]PropertyValue `json:"properties"`
	Icon       *Icon                    `json:"icon,omitempty"`
}

// UpdatePageRequest is the body of PATCH /pages/{id}.
type UpdatePageRequest struct {
	Properties map[string]PropertyValue `json:"properties,omitempty"`
	Archived   *bool                    `json:"archived,omitempty"`
}

// Icon represents a page, database or callout icon.
type Icon struct {
	Type     string `json:"type"` // "emoji", "external", "file"
	Emoji    string `json:"emoji,omitempty"`
	External *File  `json:"external,omitempty"`
	File     *File  `json:"file,omitempty"`
}

// EmojiIcon returns an emoji icon.
func EmojiIcon(emoji string) *Icon {
	if emoji == "" {
		return nil
	}
	return &Icon{Type: "emoji", Emoji: emoji}
}

// File represents a file reference.
type File struct {
	URL        string     `json:"url"`
	ExpiryTime *time.Time `json:"expiry_time,omitempty"`
}

// PropertyValue represents a property value on a page.
//
// Only the field matching Type is populated in responses. In requests only the
// value field needs to be set.
type PropertyValue struct {
	ID   string `json:"id,omitempty"`
	Type string `json:"type,omitempty"`

	Title       []RichText     `json:"title,omitempty"`
	RichText    []RichText     `json:"rich_text,omitempty"`
	Number      *float64       `json:"number,omitempty"`
	Select      *SelectOption  `json:"select,omitempty"`
	MultiSelect []SelectOption `json:"multi_select,omitempty"`
	Status      *SelectOption  `json:"status,omitempty"`
	Date        *DateValue     `json:"date,omitempty"`
	Checkbox    *bool          `json:"checkbox,omitempty"`
	URL         *string        `json:"url,omitempty"`
	Email       *string        `json:"email,omitempty"`
	PhoneNumber *string        `json:"phone_number,omitempty"`
	People      []User         `json:"people,omitempty"`
}

// DateValue represents a date property value.
type DateValue struct {
	Start    string  `json:"start"`
	End      *string `json:"end,omitempty"`
	TimeZone *string `json:"time_zone,omitempty"`
}

// RichText represents formatted text content.
type RichText struct {
	Type        string       `json:"type,omitempty"` // "text", "mention", "equation"
	Text        *TextContent `json:"text,omitempty"`
	Annotations *Annotations `json:"annotations,omitempty"`
	PlainText   string       `json:"plain_text,omitempty"`
	Href        *string      `json:"href,omitempty"`
}

// TextContent represents plain text content.
type TextContent struct {
	Content string `json:"content"`
	Link    *Link  `json:"link,omitempty"`
}

// Link represents a hyperlink.
type Link struct {
	URL string `json:"url"`
}

// Annotations represents text formatting.
type Annotations struct {
	Bold          bool   `json:"bold"`
	Italic        bool   `json:"italic"`
	Strikethrough bool   `json:"strikethrough"`
	Underline     bool   `json:"underline"`
	Code          bool   `json:"code"`
	Color         string `json:"color"`
}

// Text returns a single plain text rich text element, suitable for requests.
func Text(content string) []RichText {
	return []RichText{{Type: "text", Text: &TextContent{Content: content}}}
}

// PlainText concatenates the plain text of rich text elements.
//
// Request payloads built with Text have no plain_text, so the text content is
// used as a fallback.
func PlainText(rt []RichText) string {
	var n int
	for i := range rt {
		n += len(rt[i].PlainText)
	}
	b := make([]byte, 0, n)
	for i := range rt {
		if rt[i].PlainText == "" && rt[i].Text != nil {
			b = append(b, rt[i].Text.Content...)
			continue
		}
		b = append(b, rt[i].PlainText...)
	}
	return string(b)
}

// Block represents a Notion block.
//
// Only the payload matching Type is populated. Types that are not listed here
// still decode, with Type set and no payload.
type Block struct {
	Object         string    `json:"object,omitempty"`
	ID             string    `json:"id,omitempty"`
	Parent         *Parent   `json:"parent,omitempty"`
	Type           string    `json:"type"`
	CreatedTime    time.Time `json:"created_time,omitzero"`
	LastEditedTime time.Time `json:"last_edited_time,omitzero"`
	Archived       bool      `json:"archived,omitempty"`
	HasChildren    bool      `json:"has_children,omitempty"`

	Paragraph        *TextBlock    `json:"paragraph,omitempty"`
	Heading1         *TextBlock    `json:"heading_1,omitempty"`
	Heading2         *TextBlock    `json:"heading_2,omitempty"`
	Heading3         *TextBlock    `json:"heading_3,omitempty"`
	BulletedListItem *TextBlock    `json:"bulleted_list_item,omitempty"`
	NumberedListItem *TextBlock    `json:"numbered_list_item,omitempty"`
	Toggle           *TextBlock    `json:"toggle,omitempty"`
	Quote            *TextBlock    `json:"quote,omitempty"`
	ToDo             *ToDoBlock    `json:"to_do,omitempty"`
	Callout          *CalloutBlock `json:"callout,omitempty"`
	Code             *CodeBlock    `json:"code,omitempty"`
}

// TextBlock is the payload shared by blocks that only carry rich text.
type TextBlock struct {
	RichText []RichText `json:"rich_text"`
	Color    string     `json:"color,omitempty"`
}

// ToDoBlock represents a to-do block.
type ToDoBlock struct {
	RichText []RichText `json:"rich_text"`
	Checked  bool       `json:"checked"`
	Color    string     `json:"color,omitempty"`
}

// CalloutBlock represents a callout block.
type CalloutBlock struct {
	RichText []RichText `json:"rich_text"`
	Icon     *Icon      `json:"icon,omitempty"`
	Color    string     `json:"color,omitempty"`
}

// CodeBlock represents a code block.
type CodeBlock struct {
	RichText []RichText `json:"rich_text"`
	Caption  []RichText `json:"caption,omitempty"`
	Language string     `json:"language"`
}

// ParagraphBlock returns a new paragraph block holding text.
func ParagraphBlock(text string) Block {
	return Block{
		Object:    "block",
		Type:      "paragraph",
		Paragraph: &TextBlock{RichText: Text(text)},
	}
}

// AppendBlocksRequest is the body of PATCH /blocks/{id}/children.
type AppendBlocksRequest struct {
	Children []Block `json:"children"`
}

// QueryRequest is the body of POST /databases/{id}/query.
type QueryRequest struct {
	Filter      json.RawMessage `json:"filter,omitempty"`
	Sorts       []Sort          `json:"sorts,omitempty"`
	StartCursor string          `json:"start_cursor,omitempty"`
	PageSize    int             `json:"page_size,omitempty"`
}

// Sort defines a sort order for database queries.
type Sort struct {
	Property  string `json:"property,omitempty"`
	Timestamp string `json:"timestamp,omitempty"` // "created_time" or "last_edited_time"
	Direction string `json:"direction"`           // "ascending" or "descending"
}

// Title returns the plain text of the title property of a page.
func Title(props map[string]PropertyValue) string {
	for _, p := range props {
		if p.Type == "title" || p.Title != nil {
			return PlainText(p.Title)
		}
	}
	return ""
}
