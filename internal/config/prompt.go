// Line based interactive prompts.

package config

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
)

// Prompter reads answers line by line.
type Prompter struct {
	// Interactive is false when input is not a terminal; callers should then
	// fail instead of prompting.
	Interactive bool

	r *bufio.Reader
	w io.Writer
}

// NewPrompter returns a Prompter reading from r and writing questions to w.
func NewPrompter(r io.Reader, w io.Writer, interactive bool) *Prompter {
	return &Prompter{Interactive: interactive, r: bufio.NewReader(r), w: w}
}

// StdioPrompter prompts on stdin/stderr, interactive only when stdin is a
// terminal.
func StdioPrompter() *Prompter {
	fd := os.Stdin.Fd()
	return NewPrompter(os.Stdin, os.Stderr, isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd))
}

// Ask prints label and returns the first non-empty trimmed answer.
func (p *Prompter) Ask(label string) (string, error) {
	for {
		if _, err := fmt.Fprint(p.w, label); err != nil {
			return "", err
		}
		line, err := p.r.ReadString('\n')
		if s := strings.TrimSpace(line); s != "" {
			return s, nil
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				return "", fmt.Errorf("no answer for %q", strings.TrimSpace(label))
			}
			return "", err
		}
	}
}

// AskValid repeats Ask until check accepts the answer, printing each
// rejection.
func (p *Prompter) AskValid(label string, check func(string) (string, error)) (string, error) {
	for {
		ans, err := p.Ask(label)
		if err != nil {
			return "", err
		}
		v, err := check(ans)
		if err == nil {
			return v, nil
		}
		if _, err := fmt.Fprintf(p.w, "Error: %v\n", err); err != nil {
			return "", err
		}
	}
}
