// Tests for page content retrieval and paragraph append.

package content

import (
	"context"
	"errors"
	"slices"
	"testing"

	"github.com/maruel/notionctl/internal/notion"
)

type fakeService struct {
	blocks   map[string][]notion.Block
	appended map[string][]notion.Block
	// reply replaces the AppendBlockChildren response when set.
	reply []notion.Block
	err   error
}

func (f *fakeService) GetBlockChildrenAll(ctx context.Context, blockID string) ([]notion.Block, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.blocks[blockID], nil
}

func (f *fakeService) AppendBlockChildren(ctx context.Context, blockID string, children []notion.Block) ([]notion.Block, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.appended == nil {
		f.appended = map[string][]notion.Block{}
	}
	f.appended[blockID] = append(f.appended[blockID], children...)
	if f.reply != nil {
		return f.reply, nil
	}
	out := make([]notion.Block, len(children))
	for i := range children {
		out[i] = children[i]
		out[i].ID = "created"
	}
	return out, nil
}

func TestRetrievePageContent(t *testing.T) {
	svc := &fakeService{blocks: map[string][]notion.Block{
		"page": {
			{Type: "heading_2", Heading2: &notion.TextBlock{RichText: []notion.RichText{{PlainText: "Menu"}}}},
			{Type: "image"},
			{Type: "paragraph", Paragraph: &notion.TextBlock{RichText: []notion.RichText{{PlainText: "Soup"}}}},
		},
	}}

	got, err := RetrievePageContent(t.Context(), svc, "page")
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"### Menu", "Soup"}
	if !slices.Equal(got, want) {
		t.Errorf("RetrievePageContent() = %q, want %q", got, want)
	}

	got, err = RetrievePageContent(t.Context(), svc, "empty")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 0 {
		t.Errorf("RetrievePageContent(empty) = %q", got)
	}
}

func TestRetrievePageContent_Error(t *testing.T) {
	boom := errors.New("boom")
	_, err := RetrievePageContent(t.Context(), &fakeService{err: boom}, "page")
	if !errors.Is(err, boom) {
		t.Errorf("RetrievePageContent() error = %v, want wrapping %v", err, boom)
	}
}

func TestAppendParagraph(t *testing.T) {
	svc := &fakeService{}
	b, err := AppendParagraph(t.Context(), svc, "page", "## not markdown")
	if err != nil {
		t.Fatal(err)
	}
	if b.ID != "created" {
		t.Errorf("AppendParagraph() = %+v", b)
	}
	sent := svc.appended["page"]
	if len(sent) != 1 {
		t.Fatalf("sent %d blocks, want 1", len(sent))
	}
	if sent[0].Type != "paragraph" || sent[0].Paragraph == nil {
		t.Fatalf("sent %+v", sent[0])
	}
	rt := sent[0].Paragraph.RichText
	if len(rt) != 1 || rt[0].Type != "text" || rt[0].Text == nil || rt[0].Text.Content != "## not markdown" {
		t.Errorf("rich text = %+v", rt)
	}
}

func TestAppendParagraph_PicksMatchingBlock(t *testing.T) {
	para := func(id, text string) notion.Block {
		return notion.Block{ID: id, Type: "paragraph", Paragraph: &notion.TextBlock{RichText: []notion.RichText{{PlainText: text}}}}
	}
	tests := []struct {
		name  string
		reply []notion.Block
		want  string
	}{
		{"only new block", []notion.Block{para("new", "Hello")}, "new"},
		{"whole child list", []notion.Block{para("a", "Hello"), para("new", "Hello"), {ID: "img", Type: "image"}}, "new"},
		{"first page without the new block", []notion.Block{para("a", "Other"), {ID: "img", Type: "image"}}, "img"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := AppendParagraph(t.Context(), &fakeService{reply: tt.reply}, "page", "Hello")
			if err != nil {
				t.Fatal(err)
			}
			if b.ID != tt.want {
				t.Errorf("AppendParagraph() = %q, want %q", b.ID, tt.want)
			}
		})
	}
}

func TestAppendParagraph_EmptyReply(t *testing.T) {
	if _, err := AppendParagraph(t.Context(), &fakeService{reply: []notion.Block{}}, "page", "Hello"); err == nil {
		t.Error("AppendParagraph() with no returned block succeeded")
	}
}
