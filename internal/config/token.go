// Resolves the integration token.

package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
)

// TokenEnv is the variable holding the integration token.
const TokenEnv = "NOTION_TOKEN"

// ErrNoToken is returned when no source provided a token and prompting is not
// possible.
var ErrNoToken = errors.New("no token: pass --token, set " + TokenEnv + " or add it to the .env file")

// TokenSources lists where a token may come from.
type TokenSources struct {
	// Flag is the value of --token.
	Flag string
	// Getenv looks up process environment variables. Typically os.Getenv.
	Getenv func(string) string
	// EnvFile is the path of the .env file.
	EnvFile string
	// Prompter asks the user when nothing else is set. May be nil.
	Prompter *Prompter
}

// Token returns the first non-empty token from the flag, the environment, the
// .env file and finally an interactive prompt.
func Token(src TokenSources) (string, error) {
	if t := strings.TrimSpace(src.Flag); t != "" {
		slog.Debug("token", "source", "flag")
		return t, nil
	}
	if src.Getenv != nil {
		if t := strings.TrimSpace(src.Getenv(TokenEnv)); t != "" {
			slog.Debug("token", "source", "env")
			return t, nil
		}
	}
	if src.EnvFile != "" {
		env, err := LoadDotEnv(src.EnvFile)
		if err != nil {
			return "", fmt.Errorf("failed to load %s: %w", src.EnvFile, err)
		}
		if t := strings.TrimSpace(env[TokenEnv]); t != "" {
			slog.Debug("token", "source", src.EnvFile)
			return t, nil
		}
	}
	if src.Prompter == nil || !src.Prompter.Interactive {
		return "", ErrNoToken
	}
	return src.Prompter.Ask("Notion integration token: ")
}
