// Package config resolves the settings the CLI needs before talking to the
// API: the integration token, the log level and interactive prompts.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// LoadDotEnv reads KEY=VALUE pairs from path. A missing file yields an empty
// map.
func LoadDotEnv(path string) (map[string]string, error) {
	env := make(map[string]string)
	raw, err := os.ReadFile(path) //nolint:gosec // G304: path comes from the --env-file flag
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return env, nil
		}
		return nil, err
	}
	for line := range strings.SplitSeq(string(raw), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, val, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		key = strings.TrimSpace(strings.TrimPrefix(key, "export "))
		val = strings.TrimSpace(val)

		if strings.HasPrefix(val, "'") || strings.HasSuffix(val, "'") {
			if len(val) > 1 && strings.HasPrefix(val, "'") && strings.HasSuffix(val, "'") {
				return nil, fmt.Errorf("single quotes are not supported for wrapping in .env: %s", line)
			}
			return nil, fmt.Errorf("unbalanced single quotes in .env: %s", line)
		}
		if strings.HasPrefix(val, "\"") {
			unquoted, err := strconv.Unquote(val)
			if err != nil {
				return nil, fmt.Errorf("failed to unquote %s: %w", key, err)
			}
			val = unquoted
		}
		env[key] = val
	}
	return env, nil
}
