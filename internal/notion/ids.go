// Parses Notion object IDs out of user input.

package notion

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// ParseID normalizes a page or database reference into a dashed UUID.
//
// Accepted forms are a 32 hex digit ID, a dashed UUID and a notion.so URL
// whose last path segment is the ID or "Title-With-Dashes-<id>". For database
// view URLs the "?v=" query is ignored.
func ParseID(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", errors.New("empty ID")
	}
	raw := s
	if strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://") {
		u, err := url.Parse(s)
		if err != nil {
			return "", fmt.Errorf("invalid URL %q: %w", s, err)
		}
		// A "p" query parameter points at a page opened as peek view.
		if p := u.Query().Get("p"); p != "" {
			raw = p
		} else {
			path := strings.TrimSuffix(u.Path, "/")
			raw = slugID(path[strings.LastIndex(path, "/")+1:])
		}
	}
	id, ok := canonicalID(raw)
	if !ok {
		return "", fmt.Errorf("invalid ID %q", s)
	}
	return id, nil
}

// slugID returns the ID suffix of a "Title-With-Dashes-<id>" path segment, or
// seg unchanged.
func slugID(seg string) string {
	for _, n := range []int{36, 32} {
		if len(seg) > n && seg[len(seg)-n-1] == '-' {
			if _, ok := canonicalID(seg[len(seg)-n:]); ok {
				return seg[len(seg)-n:]
			}
		}
	}
	return seg
}

// canonicalID accepts exactly 32 hex digits, optionally dashed as 8-4-4-4-12.
func canonicalID(s string) (string, bool) {
	switch len(s) {
	case 32:
	case 36:
		for _, i := range []int{8, 13, 18, 23} {
			if s[i] != '-' {
				return "", false
			}
		}
		s = s[0:8] + s[9:13] + s[14:18] + s[19:23] + s[24:]
	default:
		return "", false
	}
	s = strings.ToLower(s)
	for _, c := range s {
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return "", false
		}
	}
	return s[0:8] + "-" + s[8:12] + "-" + s[12:16] + "-" + s[16:20] + "-" + s[20:32], true
}
