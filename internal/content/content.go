// Package content reads and writes page content through a block service.
//
// The service is always passed in explicitly; *notion.Client satisfies
// BlockService.
package content

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/maruel/notionctl/internal/notion"
	"github.com/maruel/notionctl/internal/render"
)

// BlockService is the part of the content service used to read and append
// page blocks.
type BlockService interface {
	// GetBlockChildrenAll returns every direct child of a block, all result
	// pages concatenated in order.
	GetBlockChildrenAll(ctx context.Context, blockID string) ([]notion.Block, error)
	// AppendBlockChildren appends blocks and returns the created blocks.
	AppendBlockChildren(ctx context.Context, blockID string, children []notion.Block) ([]notion.Block, error)
}

// RetrievePageContent returns the rendered text lines of a page.
//
// Only the direct children of the page are rendered; nested children are
// ignored.
func RetrievePageContent(ctx context.Context, svc BlockService, pageID string) ([]string, error) {
	blocks, err := svc.GetBlockChildrenAll(ctx, pageID)
	if err != nil {
		return nil, fmt.Errorf("failed to list blocks of page %s: %w", pageID, err)
	}
	converted := render.FromNotion(blocks)
	lines := render.Render(converted)
	if skipped := len(converted) - len(lines); skipped > 0 {
		slog.DebugContext(ctx, "Skipped unsupported blocks", "page", pageID, "blocks", len(converted), "skipped", skipped)
	}
	return lines, nil
}

// AppendParagraph appends one paragraph block with text to a page. The text is
// sent as is.
//
// The returned block is the last paragraph in the response whose text equals
// text. The API may answer with the parent's first page of children, capped at
// 100 blocks; on a larger page the new block is then absent and the last block
// of the response is returned instead, which is not the one just created.
func AppendParagraph(ctx context.Context, svc BlockService, pageID, text string) (*notion.Block, error) {
	created, err := svc.AppendBlockChildren(ctx, pageID, []notion.Block{notion.ParagraphBlock(text)})
	if err != nil {
		return nil, fmt.Errorf("failed to append paragraph to page %s: %w", pageID, err)
	}
	if len(created) == 0 {
		return nil, errors.New("no block returned")
	}
	for i := len(created) - 1; i >= 0; i-- {
		b := &created[i]
		if b.Type == "paragraph" && b.Paragraph != nil && notion.PlainText(b.Paragraph.RichText) == text {
			return b, nil
		}
	}
	slog.WarnContext(ctx, "Appended block not found in response", "page", pageID, "blocks", len(created))
	return &created[len(created)-1], nil
}
