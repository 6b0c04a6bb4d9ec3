// On-disk format: one JSON encoded Entry per line, append only.

package journal

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

// readEntries decodes every entry in path. A missing file is an empty journal.
func readEntries(path string) ([]Entry, error) {
	f, err := os.Open(path) //nolint:gosec // G304: path comes from the --data-dir flag
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = f.Close()
	}()

	var out []Entry
	s := bufio.NewScanner(f)
	for n := 1; s.Scan(); n++ {
		if len(s.Bytes()) == 0 {
			continue
		}
		var e Entry
		if err := json.Unmarshal(s.Bytes(), &e); err != nil {
			return nil, fmt.Errorf("%s:%d: %w", path, n, err)
		}
		out = append(out, e)
	}
	return out, s.Err()
}

// writeEntry appends e as one line, creating path as needed.
func writeEntry(path string, e *Entry) error {
	line, err := json.Marshal(e)
	if err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644) //nolint:gosec // G302: the journal is not secret
	if err != nil {
		return err
	}
	if _, err = f.Write(append(line, '\n')); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
