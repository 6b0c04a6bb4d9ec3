// Database commands.

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/maruel/notionctl/internal/journal"
	"github.com/maruel/notionctl/internal/notion"
	"github.com/maruel/notionctl/internal/templates"
	"github.com/spf13/cobra"
)

func newDBCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "db",
		Short: "Create and inspect databases",
	}
	var parent, name, tmpl string
	create := &cobra.Command{
		Use:   "create",
		Short: "Create a database from a template",
		Long: `Create a database under a parent page.

The parent page and the database name are asked for when not given. The
parent is checked to exist before the database is created.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.createDatabase(cmd.Context(), cmd.OutOrStdout(), parent, name, tmpl)
		},
	}
	create.Flags().StringVar(&parent, "parent", "", "Parent page ID or URL")
	create.Flags().StringVar(&name, "name", "", "Database title")
	create.Flags().StringVar(&tmpl, "template", "grocery", "Built-in template name or path to a YAML template")

	schema := &cobra.Command{
		Use:   "schema <database>",
		Short: "Print the properties of a database",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := resolveID(args[0])
			if err != nil {
				return err
			}
			db, err := a.client.GetDatabase(cmd.Context(), id)
			if err != nil {
				return fmt.Errorf("failed to get database: %w", err)
			}
			printSchema(cmd.OutOrStdout(), db)
			return nil
		},
	}
	cmd.AddCommand(create, schema)
	return cmd
}

func (a *app) createDatabase(ctx context.Context, w io.Writer, parent, name, tmpl string) error {
	t, err := templates.Load(tmpl)
	if err != nil {
		return err
	}
	var parentID string
	if parent != "" {
		if parentID, err = a.checkPage(ctx, parent); err != nil {
			return err
		}
	} else {
		if !a.prompt.Interactive {
			return errors.New("--parent is required")
		}
		parentID, err = a.prompt.AskValid("Enter the parent page ID or URL: ", func(s string) (string, error) {
			return a.checkPage(ctx, s)
		})
		if err != nil {
			return err
		}
		fmt.Fprintln(w, "Page found")
	}
	if name == "" && a.prompt.Interactive {
		if name, err = a.prompt.Ask("Name of the database that you want to create: "); err != nil {
			return err
		}
	}
	if name == "" && t.Title == "" {
		return errors.New("--name is required")
	}
	req := t.DatabaseRequest(parentID, name)
	title := notion.PlainText(req.Title)
	fmt.Fprintf(w, "Creating database '%s' in page %s...\n", title, parentID)
	db, err := a.client.CreateDatabase(ctx, req)
	if err != nil {
		return fmt.Errorf("failed to create database: %w", err)
	}
	a.record(journal.Entry{Op: journal.OpCreateDatabase, TargetID: db.ID, ParentID: parentID, URL: db.URL, Title: title})
	fmt.Fprintf(w, "Database created: %s\n", db.URL)
	return nil
}

// checkPage parses s and verifies the page exists.
func (a *app) checkPage(ctx context.Context, s string) (string, error) {
	id, err := resolveID(s)
	if err != nil {
		return "", err
	}
	if _, err := a.client.GetPage(ctx, id); err != nil {
		if notion.IsNotFound(err) {
			return "", fmt.Errorf("page %s not found or not shared with the integration", id)
		}
		return "", fmt.Errorf("failed to get page %s: %w", id, err)
	}
	return id, nil
}

func printSchema(w io.Writer, db *notion.Database) {
	fmt.Fprintf(w, "%s (%s)\n", notion.PlainText(db.Title), db.ID)
	names := make([]string, 0, len(db.Properties))
	for n := range db.Properties {
		names = append(names, n)
	}
	slices.Sort(names)
	for _, n := range names {
		p := db.Properties[n]
		line := fmt.Sprintf("  %s: %s", n, p.Type)
		if opts := optionNames(&p); len(opts) > 0 {
			line += " [" + strings.Join(opts, ", ") + "]"
		}
		fmt.Fprintln(w, line)
	}
}

func optionNames(p *notion.DBProperty) []string {
	var cfg *notion.SelectConfig
	switch {
	case p.Select != nil:
		cfg = p.Select
	case p.MultiSelect != nil:
		cfg = p.MultiSelect
	case p.Status != nil:
		cfg = p.Status
	default:
		return nil
	}
	out := make([]string, 0, len(cfg.Options))
	for _, o := range cfg.Options {
		out = append(out, o.Name)
	}
	return out
}
