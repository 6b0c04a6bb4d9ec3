// Root command and shared state.

package main

import (
	"fmt"
	"log/slog"
	"math/rand/v2"
	"path/filepath"
	"time"

	"github.com/maruel/notionctl/internal/config"
	"github.com/maruel/notionctl/internal/journal"
	"github.com/maruel/notionctl/internal/notion"
	"github.com/spf13/cobra"
)

// offlineKey marks commands that never talk to the API.
const offlineKey = "offline"

// app carries what subcommands need. It is filled by the root command's
// PersistentPreRunE.
type app struct {
	level  *slog.LevelVar
	getenv func(string) string
	prompt *config.Prompter
	rng    *rand.Rand

	client  *notion.Client
	journal *journal.Journal

	// Flags.
	token    string
	envFile  string
	logLevel string
	dataDir  string
	apiURL   string
	cacheTTL time.Duration
	interval time.Duration
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "notionctl",
		Short: "Manage Notion databases, entries and page content",
		Long: `notionctl talks to the Notion API with an integration token.

It creates databases from templates, adds, updates and lists entries, seeds
sample data, reads page content as text lines and appends paragraphs.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}
	f := root.PersistentFlags()
	f.StringVar(&a.token, "token", "", "Integration token (default: $"+config.TokenEnv+" or the .env file)")
	f.StringVar(&a.envFile, "env-file", ".env", "Path of the .env file")
	f.StringVar(&a.logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	f.StringVar(&a.dataDir, "data-dir", "./data", "Directory holding the mutation journal")
	f.StringVar(&a.apiURL, "api-url", notion.BaseURL, "Notion API base URL")
	f.DurationVar(&a.cacheTTL, "cache-ttl", 30*time.Second, "Lifetime of cached GET responses; 0 disables the cache")
	f.DurationVar(&a.interval, "min-interval", notion.MinInterval, "Minimum delay between API requests")

	root.AddCommand(
		newUsersCmd(a),
		newDBCmd(a),
		newEntriesCmd(a),
		newPageCmd(a),
		newTemplatesCmd(a),
		newJournalCmd(a),
		&cobra.Command{
			Use:         "version",
			Short:       "Print version and exit",
			Args:        cobra.NoArgs,
			Annotations: map[string]string{offlineKey: "true"},
			Run: func(cmd *cobra.Command, _ []string) {
				printVersion(cmd.OutOrStdout())
			},
		},
	)
	return root
}

func (a *app) setup(cmd *cobra.Command, _ []string) error {
	lvl, err := config.ParseLevel(a.logLevel)
	if err != nil {
		return err
	}
	if a.level != nil {
		a.level.Set(lvl)
	}
	if a.prompt == nil {
		a.prompt = config.StdioPrompter()
	}
	if a.rng == nil {
		a.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())) //nolint:gosec // G404: sample data only
	}
	if isOffline(cmd) {
		return nil
	}
	token, err := config.Token(config.TokenSources{
		Flag:     a.token,
		Getenv:   a.getenv,
		EnvFile:  a.envFile,
		Prompter: a.prompt,
	})
	if err != nil {
		return err
	}
	a.client = notion.NewClient(token,
		notion.WithBaseURL(a.apiURL),
		notion.WithCache(a.cacheTTL),
		notion.WithRateLimit(a.interval))
	return nil
}

// isOffline reports whether cmd or one of its parents never talks to the API.
// Cobra's own help and completion commands are included.
func isOffline(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations[offlineKey] == "true" {
			return true
		}
		if c.HasParent() && !c.Parent().HasParent() {
			switch c.Name() {
			case "help", "completion", cobra.ShellCompRequestCmd, cobra.ShellCompNoDescRequestCmd:
				return true
			}
		}
	}
	return false
}

// openJournal opens the journal on first use.
func (a *app) openJournal() (*journal.Journal, error) {
	if a.journal == nil {
		j, err := journal.Open(filepath.Join(a.dataDir, "journal.jsonl"))
		if err != nil {
			return nil, err
		}
		a.journal = j
	}
	return a.journal, nil
}

// record notes a mutation that already succeeded remotely; failures are only
// logged.
func (a *app) record(e journal.Entry) {
	j, err := a.openJournal()
	if err == nil {
		_, err = j.Record(e)
	}
	if err != nil {
		slog.Warn("journal", "op", e.Op, "target", e.TargetID, "err", err)
	}
}

// resolveID parses a page or database reference given on the command line.
func resolveID(s string) (string, error) {
	id, err := notion.ParseID(s)
	if err != nil {
		return "", fmt.Errorf("invalid id %q: %w", s, err)
	}
	return id, nil
}
