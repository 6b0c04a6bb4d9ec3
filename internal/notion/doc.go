// Package notion provides a client for the Notion API.
//
// It covers the calls the CLI needs:
//   - API client with rate limiting (3 req/sec) and an optional GET cache
//   - Users, pages, databases, queries and block children
//   - Parsing page and database IDs out of URLs
package notion
