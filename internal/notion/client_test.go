// Tests for the Notion API client.

package notion

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func newTestClient(t *testing.T, h http.HandlerFunc, opts ...Option) *Client {
	t.Helper()
	server := httptest.NewServer(h)
	t.Cleanup(server.Close)
	opts = append([]Option{WithBaseURL(server.URL), WithRateLimit(0)}, opts...)
	return NewClient("secret-token", opts...)
}

func writeJSON(t *testing.T, w http.ResponseWriter, status int, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		t.Errorf("Failed to write response: %v", err)
	}
}

func TestClient_Headers(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer secret-token" {
			t.Errorf("Authorization = %q", got)
		}
		if got := r.Header.Get("Notion-Version"); got != APIVersion {
			t.Errorf("Notion-Version = %q", got)
		}
		if r.Method != http.MethodGet || r.URL.Path != "/pages/abc" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		writeJSON(t, w, http.StatusOK, map[string]any{"object": "page", "id": "abc", "url": "https://notion.so/abc"})
	})

	page, err := c.GetPage(t.Context(), "abc")
	if err != nil {
		t.Fatal(err)
	}
	if page.ID != "abc" || page.URL != "https://notion.so/abc" {
		t.Errorf("GetPage() = %+v", page)
	}
}

func TestClient_APIError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusNotFound, map[string]any{
			"object":  "error",
			"status":  404,
			"code":    "object_not_found",
			"message": "Could not find page with ID: abc.",
		})
	})

	_, err := c.GetPage(t.Context(), "abc")
	if err == nil {
		t.Fatal("expected error")
	}
	if !IsNotFound(err) {
		t.Errorf("IsNotFound(%v) = false", err)
	}
	if IsUnauthorized(err) {
		t.Errorf("IsUnauthorized(%v) = true", err)
	}
	if got, want := err.Error(), "object_not_found: Could not find page with ID: abc."; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestClient_NonJSONError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = io.WriteString(w, "upstream down")
	})

	_, err := c.GetDatabase(t.Context(), "db")
	if err == nil {
		t.Fatal("expected error")
	}
	if got, want := err.Error(), "API error (status 502): upstream down"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestClient_GetBlockChildrenAll_Paginates(t *testing.T) {
	var calls atomic.Int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		if r.URL.Path != "/blocks/page-1/children" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("page_size"); got != "100" {
			t.Errorf("page_size = %q", got)
		}
		switch r.URL.Query().Get("start_cursor") {
		case "":
			writeJSON(t, w, http.StatusOK, map[string]any{
				"object":      "list",
				"results":     []map[string]any{{"id": "b1", "type": "paragraph", "paragraph": map[string]any{"rich_text": []map[string]any{{"plain_text": "one"}}}}},
				"next_cursor": "cur-2",
				"has_more":    true,
			})
		case "cur-2":
			writeJSON(t, w, http.StatusOK, map[string]any{
				"object":      "list",
				"results":     []map[string]any{{"id": "b2", "type": "image", "image": map[string]any{"type": "external"}}},
				"next_cursor": nil,
				"has_more":    false,
			})
		default:
			t.Errorf("unexpected cursor %q", r.URL.Query().Get("start_cursor"))
		}
	})

	blocks, err := c.GetBlockChildrenAll(t.Context(), "page-1")
	if err != nil {
		t.Fatal(err)
	}
	if len(blocks) != 2 {
		t.Fatalf("got %d blocks, want 2", len(blocks))
	}
	if blocks[0].ID != "b1" || blocks[0].Paragraph == nil || PlainText(blocks[0].Paragraph.RichText) != "one" {
		t.Errorf("blocks[0] = %+v", blocks[0])
	}
	if blocks[1].ID != "b2" || blocks[1].Type != "image" {
		t.Errorf("blocks[1] = %+v", blocks[1])
	}
	if n := calls.Load(); n != 2 {
		t.Errorf("got %d calls, want 2", n)
	}
}

func TestClient_AppendBlockChildren(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPatch || r.URL.Path != "/blocks/page-1/children" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		body, err := io.ReadAll(r.Body)
		if err != nil {
			t.Error(err)
			return
		}
		want := `{"children":[{"object":"block","type":"paragraph","paragraph":{"rich_text":[{"type":"text","text":{"content":"hi"}}]}}]}`
		if string(body) != want {
			t.Errorf("body =\n%s\nwant\n%s", body, want)
		}
		writeJSON(t, w, http.StatusOK, map[string]any{
			"object":  "list",
			"results": []map[string]any{{"id": "new", "type": "paragraph"}},
		})
	})

	blocks, err := c.AppendBlockChildren(t.Context(), "page-1", []Block{ParagraphBlock("hi")})
	if err != nil {
		t.Fatal(err)
	}
	if len(blocks) != 1 || blocks[0].ID != "new" {
		t.Errorf("AppendBlockChildren() = %+v", blocks)
	}
}

func TestClient_QueryDatabaseAll(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var req QueryRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Error(err)
			return
		}
		if string(req.Filter) != `{"property":"In stock","checkbox":{"equals":true}}` {
			t.Errorf("filter = %s", req.Filter)
		}
		if req.PageSize != 100 {
			t.Errorf("page_size = %d", req.PageSize)
		}
		resp := map[string]any{"object": "list", "has_more": false}
		if req.StartCursor == "" {
			resp["has_more"] = true
			resp["next_cursor"] = "c2"
			resp["results"] = []map[string]any{{"id": "p1"}}
		} else {
			resp["results"] = []map[string]any{{"id": "p2"}}
		}
		writeJSON(t, w, http.StatusOK, resp)
	})

	pages, err := c.QueryDatabaseAll(t.Context(), "db", &QueryRequest{
		Filter: json.RawMessage(`{"property":"In stock","checkbox":{"equals":true}}`),
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(pages) != 2 || pages[0].ID != "p1" || pages[1].ID != "p2" {
		t.Errorf("QueryDatabaseAll() = %+v", pages)
	}
}

func TestClient_Cache(t *testing.T) {
	var gets, patches atomic.Int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			gets.Add(1)
		case http.MethodPatch:
			patches.Add(1)
		}
		writeJSON(t, w, http.StatusOK, map[string]any{"object": "page", "id": "abc"})
	}, WithCache(time.Minute))

	ctx := t.Context()
	for range 3 {
		if _, err := c.GetPage(ctx, "abc"); err != nil {
			t.Fatal(err)
		}
	}
	if n := gets.Load(); n != 1 {
		t.Errorf("got %d GETs before mutation, want 1", n)
	}
	if _, err := c.UpdatePage(ctx, "abc", &UpdatePageRequest{}); err != nil {
		t.Fatal(err)
	}
	if _, err := c.GetPage(ctx, "abc"); err != nil {
		t.Fatal(err)
	}
	if n := gets.Load(); n != 2 {
		t.Errorf("got %d GETs after mutation, want 2", n)
	}
	if n := patches.Load(); n != 1 {
		t.Errorf("got %d PATCHes, want 1", n)
	}
}

func TestClient_RateLimitHonorsContext(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusOK, map[string]any{"object": "list"})
	}, WithRateLimit(time.Hour))

	ctx := t.Context()
	if _, err := c.ListUsers(ctx, ""); err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithTimeout(ctx, 10*time.Millisecond)
	defer cancel()
	if _, err := c.ListUsers(ctx, ""); err == nil {
		t.Fatal("expected the second request to be throttled past the deadline")
	}
}

func TestTitle(t *testing.T) {
	props := map[string]PropertyValue{
		"Price": {Type: "number"},
		"Name":  {Type: "title", Title: []RichText{{PlainText: "Sample "}, {PlainText: "Item"}}},
	}
	if got := Title(props); got != "Sample Item" {
		t.Errorf("Title() = %q", got)
	}
	if got := Title(nil); got != "" {
		t.Errorf("Title(nil) = %q", got)
	}
	if got := PlainText(Text("request")); got != "request" {
		t.Errorf("PlainText(Text()) = %q", got)
	}
}
