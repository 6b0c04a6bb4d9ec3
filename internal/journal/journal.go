// Package journal records the mutations performed against the workspace.
//
// Each successful create, update or append is appended to a local JSONL file
// so a later run can list what was changed and where.
package journal

import (
	"fmt"
	"iter"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"github.com/maruel/ksid"
)

// Op is the kind of mutation.
type Op string

// Recorded operations.
const (
	OpCreateDatabase Op = "create_database"
	OpCreateEntry    Op = "create_entry"
	OpUpdateEntry    Op = "update_entry"
	OpAppendBlock    Op = "append_block"
)

// Entry is one recorded mutation.
type Entry struct {
	ID       ksid.ID   `json:"id"`
	Time     time.Time `json:"time"`
	Op       Op        `json:"op"`
	TargetID string    `json:"target_id"`
	ParentID string    `json:"parent_id,omitempty"`
	URL      string    `json:"url,omitempty"`
	Title    string    `json:"title,omitempty"`
}

// Journal is an append-only log of entries, fully loaded in memory.
//
// It is safe for concurrent use.
type Journal struct {
	path string

	mu      sync.RWMutex
	entries []Entry
}

// Open loads the journal at path. The file and its directory are created on
// the first Record.
func Open(path string) (*Journal, error) {
	entries, err := readEntries(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open journal: %w", err)
	}
	return &Journal{path: path, entries: entries}, nil
}

// Path returns the journal file location.
func (j *Journal) Path() string {
	return j.path
}

// Record stamps e with a new ID and the current time, then appends it.
func (j *Journal) Record(e Entry) (*Entry, error) {
	if e.Op == "" || e.TargetID == "" {
		return nil, fmt.Errorf("incomplete journal entry: %+v", e)
	}
	e.ID = ksid.NewID()
	e.Time = time.Now().UTC()

	j.mu.Lock()
	defer j.mu.Unlock()
	if err := os.MkdirAll(filepath.Dir(j.path), 0o755); err != nil { //nolint:gosec // G301: 0o755 is intentional for data directories
		return nil, fmt.Errorf("failed to create journal directory: %w", err)
	}
	if err := writeEntry(j.path, &e); err != nil {
		return nil, fmt.Errorf("failed to record %s: %w", e.Op, err)
	}
	j.entries = append(j.entries, e)
	return &e, nil
}

// Len returns the number of entries.
func (j *Journal) Len() int {
	j.mu.RLock()
	defer j.mu.RUnlock()
	return len(j.entries)
}

// Entries iterates over copies of the entries, oldest first, restricted to ops
// when any are given.
func (j *Journal) Entries(ops ...Op) iter.Seq[*Entry] {
	return func(yield func(*Entry) bool) {
		j.mu.RLock()
		defer j.mu.RUnlock()
		for _, e := range j.entries {
			if len(ops) > 0 && !slices.Contains(ops, e.Op) {
				continue
			}
			if !yield(&e) {
				return
			}
		}
	}
}
