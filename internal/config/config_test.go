// Tests for token resolution and .env parsing.

package config

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeEnv(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadDotEnv(t *testing.T) {
	path := writeEnv(t, "# comment\n\nNOTION_TOKEN=secret_abc\nQUOTED=\"a b\\tc\"\n export SPACED = value \nnoequals\nEMPTY=\n")
	env, err := LoadDotEnv(path)
	if err != nil {
		t.Fatal(err)
	}
	want := map[string]string{
		"NOTION_TOKEN": "secret_abc",
		"QUOTED":       "a b\tc",
		"SPACED":       "value",
		"EMPTY":        "",
	}
	if len(env) != len(want) {
		t.Errorf("got %d keys, want %d: %v", len(env), len(want), env)
	}
	for k, v := range want {
		if env[k] != v {
			t.Errorf("%s = %q, want %q", k, env[k], v)
		}
	}
}

func TestLoadDotEnv_Missing(t *testing.T) {
	env, err := LoadDotEnv(filepath.Join(t.TempDir(), "nope"))
	if err != nil {
		t.Fatal(err)
	}
	if len(env) != 0 {
		t.Errorf("got %v", env)
	}
}

func TestLoadDotEnv_Errors(t *testing.T) {
	tests := []struct {
		content string
		want    string
	}{
		{"A='x'\n", "single quotes are not supported"},
		{"A='x\n", "unbalanced single quotes"},
		{"A=x'\n", "unbalanced single quotes"},
		{"A=\"x\n", "failed to unquote A"},
	}
	for _, tt := range tests {
		_, err := LoadDotEnv(writeEnv(t, tt.content))
		if err == nil || !strings.Contains(err.Error(), tt.want) {
			t.Errorf("LoadDotEnv(%q) error = %v, want %q", tt.content, err, tt.want)
		}
	}
}

func TestToken(t *testing.T) {
	envFile := writeEnv(t, "NOTION_TOKEN=from_file\n")
	getenv := func(v string) func(string) string {
		return func(k string) string {
			if k == TokenEnv {
				return v
			}
			return ""
		}
	}
	tests := []struct {
		name string
		src  TokenSources
		want string
	}{
		{"flag", TokenSources{Flag: "from_flag", Getenv: getenv("from_env"), EnvFile: envFile}, "from_flag"},
		{"env", TokenSources{Getenv: getenv("from_env"), EnvFile: envFile}, "from_env"},
		{"file", TokenSources{Getenv: getenv(""), EnvFile: envFile}, "from_file"},
		{"blank flag", TokenSources{Flag: "  ", Getenv: getenv(" from_env ")}, "from_env"},
		{"prompt", TokenSources{Getenv: getenv(""), Prompter: NewPrompter(strings.NewReader("\n\nfrom_prompt\n"), &strings.Builder{}, true)}, "from_prompt"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Token(tt.src)
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.want {
				t.Errorf("Token() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestToken_None(t *testing.T) {
	p := NewPrompter(strings.NewReader("ignored\n"), &strings.Builder{}, false)
	_, err := Token(TokenSources{EnvFile: filepath.Join(t.TempDir(), ".env"), Prompter: p})
	if !errors.Is(err, ErrNoToken) {
		t.Errorf("Token() error = %v, want ErrNoToken", err)
	}
}

func TestPrompter_Ask(t *testing.T) {
	var out strings.Builder
	p := NewPrompter(strings.NewReader("  \n answer \n"), &out, true)
	got, err := p.Ask("Name: ")
	if err != nil {
		t.Fatal(err)
	}
	if got != "answer" {
		t.Errorf("Ask() = %q", got)
	}
	if out.String() != "Name: Name: " {
		t.Errorf("prompt output = %q", out.String())
	}
	if _, err := p.Ask("Again: "); err == nil {
		t.Error("Ask() at EOF succeeded")
	}
}

func TestPrompter_AskValid(t *testing.T) {
	var out strings.Builder
	p := NewPrompter(strings.NewReader("bad\ngood\n"), &out, true)
	got, err := p.AskValid("ID: ", func(s string) (string, error) {
		if s != "good" {
			return "", errors.New("not good")
		}
		return strings.ToUpper(s), nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if got != "GOOD" {
		t.Errorf("AskValid() = %q", got)
	}
	if want := "ID: Error: not good\nID: "; out.String() != want {
		t.Errorf("output = %q, want %q", out.String(), want)
	}
}

func TestParseLevel(t *testing.T) {
	for in, want := range map[string]slog.Level{"debug": slog.LevelDebug, "info": slog.LevelInfo, "warn": slog.LevelWarn, "error": slog.LevelError} {
		got, err := ParseLevel(in)
		if err != nil || got != want {
			t.Errorf("ParseLevel(%q) = %v, %v", in, got, err)
		}
	}
	if _, err := ParseLevel("verbose"); err == nil {
		t.Error("ParseLevel(verbose) succeeded")
	}
}
