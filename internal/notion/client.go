// Implements the Notion API client with rate limiting.

package notion

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"
)

const (
	// BaseURL is the Notion API base URL.
	BaseURL = "https://api.notion.com/v1"
	// APIVersion is the pinned Notion API version.
	APIVersion = "2022-06-28"
	// MinInterval is the minimum time between requests (3 req/sec).
	MinInterval = 334 * time.Millisecond
	// maxPageSize is the largest page size the API accepts.
	maxPageSize = 100
)

// Client is a rate-limited Notion API client.
//
// It is safe for concurrent use.
type Client struct {
	token      string
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	cache      *cache.Cache
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the API endpoint.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = u }
}

// WithHTTPClient overrides the HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.httpClient = h }
}

// WithCache keeps GET responses for ttl. Any mutation through the client
// flushes the cache. A ttl of 0 disables caching.
func WithCache(ttl time.Duration) Option {
	return func(c *Client) {
		if ttl > 0 {
			c.cache = cache.New(ttl, 2*ttl)
		}
	}
}

// WithRateLimit overrides the minimum interval between requests. 0 disables
// throttling.
func WithRateLimit(interval time.Duration) Option {
	return func(c *Client) {
		if interval <= 0 {
			c.limiter = rate.NewLimiter(rate.Inf, 1)
			return
		}
		c.limiter = rate.NewLimiter(rate.Every(interval), 1)
	}
}

// NewClient creates a new Notion API client.
func NewClient(token string, opts ...Option) *Client {
	c := &Client{
		token:   token,
		baseURL: BaseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		limiter: rate.NewLimiter(rate.Every(MinInterval), 1),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// do performs an HTTP request with rate limiting.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	if method == http.MethodGet && c.cache != nil {
		if data, ok := c.cache.Get(path); ok {
			slog.DebugContext(ctx, "notion", "method", method, "path", path, "cached", true)
			return decode(data.([]byte), out)
		}
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Notion-Version", APIVersion)
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}
	slog.DebugContext(ctx, "notion", "method", method, "path", path, "status", resp.StatusCode, "dur", time.Since(start).Round(time.Millisecond))

	if resp.StatusCode >= 400 {
		var apiErr Error
		if err := json.Unmarshal(respBody, &apiErr); err != nil || apiErr.Message == "" {
			return fmt.Errorf("API error (status %d): %s", resp.StatusCode, string(respBody))
		}
		if apiErr.Status == 0 {
			apiErr.Status = resp.StatusCode
		}
		return &apiErr
	}

	if c.cache != nil {
		if method == http.MethodGet {
			c.cache.SetDefault(path, respBody)
		} else {
			c.cache.Flush()
		}
	}
	return decode(respBody, out)
}

func decode(data []byte, out any) error {
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}

// ListUsers returns one page of workspace users.
func (c *Client) ListUsers(ctx context.Context, cursor string) (*UsersResponse, error) {
	q := url.Values{"page_size": {fmt.Sprint(maxPageSize)}}
	if cursor != "" {
		q.Set("start_cursor", cursor)
	}
	var resp UsersResponse
	if err := c.do(ctx, http.MethodGet, "/users?"+q.Encode(), nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ListUsersAll returns all workspace users, handling pagination.
func (c *Client) ListUsersAll(ctx context.Context) ([]User, error) {
	return collect(func(cursor string) (*UsersResponse, error) {
		return c.ListUsers(ctx, cursor)
	})
}

// GetPage retrieves a page by ID.
func (c *Client) GetPage(ctx context.Context, id string) (*Page, error) {
	var page Page
	if err := c.do(ctx, http.MethodGet, "/pages/"+id, nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// CreatePage creates a page, typically a new entry in a database.
func (c *Client) CreatePage(ctx context.Context, req *CreatePageRequest) (*Page, error) {
	var page Page
	if err := c.do(ctx, http.MethodPost, "/pages", req, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// UpdatePage updates the properties of a page.
func (c *Client) UpdatePage(ctx context.Context, id string, req *UpdatePageRequest) (*Page, error) {
	var page Page
	if err := c.do(ctx, http.MethodPatch, "/pages/"+id, req, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// GetDatabase retrieves a database by ID.
func (c *Client) GetDatabase(ctx context.Context, id string) (*Database, error) {
	var db Database
	if err := c.do(ctx, http.MethodGet, "/databases/"+id, nil, &db); err != nil {
		return nil, err
	}
	return &db, nil
}

// CreateDatabase creates a database as a child of a page.
func (c *Client) CreateDatabase(ctx context.Context, req *CreateDatabaseRequest) (*Database, error) {
	var db Database
	if err := c.do(ctx, http.MethodPost, "/databases", req, &db); err != nil {
		return nil, err
	}
	return &db, nil
}

// QueryDatabase queries one page of entries of a database.
func (c *Client) QueryDatabase(ctx context.Context, databaseID string, req *QueryRequest) (*QueryResponse, error) {
	if req == nil {
		req = &QueryRequest{}
	}
	if req.PageSize == 0 {
		req.PageSize = maxPageSize
	}
	var resp QueryResponse
	if err := c.do(ctx, http.MethodPost, "/databases/"+databaseID+"/query", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// QueryDatabaseAll queries all entries of a database, handling pagination.
func (c *Client) QueryDatabaseAll(ctx context.Context, databaseID string, req *QueryRequest) ([]Page, error) {
	return collect(func(cursor string) (*QueryResponse, error) {
		r := &QueryRequest{StartCursor: cursor, PageSize: maxPageSize}
		if req != nil {
			r.Filter = req.Filter
			r.Sorts = req.Sorts
		}
		return c.QueryDatabase(ctx, databaseID, r)
	})
}

// GetBlockChildren retrieves one page of the children of a block.
func (c *Client) GetBlockChildren(ctx context.Context, blockID, cursor string) (*BlocksResponse, error) {
	q := url.Values{"page_size": {fmt.Sprint(maxPageSize)}}
	if cursor != "" {
		q.Set("start_cursor", cursor)
	}
	var resp BlocksResponse
	if err := c.do(ctx, http.MethodGet, "/blocks/"+blockID+"/children?"+q.Encode(), nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetBlockChildrenAll retrieves all children of a block, handling pagination.
// Nested children are not fetched.
func (c *Client) GetBlockChildrenAll(ctx context.Context, blockID string) ([]Block, error) {
	return collect(func(cursor string) (*BlocksResponse, error) {
		return c.GetBlockChildren(ctx, blockID, cursor)
	})
}

// AppendBlockChildren appends blocks to a page or block and returns the
// created blocks.
func (c *Client) AppendBlockChildren(ctx context.Context, blockID string, children []Block) ([]Block, error) {
	var resp BlocksResponse
	if err := c.do(ctx, http.MethodPatch, "/blocks/"+blockID+"/children", &AppendBlocksRequest{Children: children}, &resp); err != nil {
		return nil, err
	}
	return resp.Results, nil
}

// collect follows next_cursor until the API reports no more results.
func collect[T any](fetch func(cursor string) (*Paginated[T], error)) ([]T, error) {
	var all []T
	var cursor string
	for {
		resp, err := fetch(cursor)
		if err != nil {
			return nil, err
		}
		all = append(all, resp.Results...)
		if !resp.HasMore || resp.NextCursor == nil {
			return all, nil
		}
		cursor = *resp.NextCursor
	}
}
