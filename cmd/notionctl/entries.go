// Database entry commands.

package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/maruel/notionctl/internal/journal"
	"github.com/maruel/notionctl/internal/notion"
	"github.com/maruel/notionctl/internal/templates"
	"github.com/spf13/cobra"
)

func newEntriesCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "entries",
		Aliases: []string{"entry"},
		Short:   "Add, update, list and seed database entries",
	}

	var addSet []string
	add := &cobra.Command{
		Use:   "add <database> --set name=value...",
		Short: "Add an entry to a database",
		Long: `Add an entry to a database.

Values are converted according to the database schema. Multi-select values
are comma separated and dates are YYYY-MM-DD or start/end.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.addEntry(cmd.Context(), cmd.OutOrStdout(), args[0], addSet)
		},
	}
	add.Flags().StringArrayVar(&addSet, "set", nil, "Property assignment name=value, repeatable")

	var updSet []string
	var archive bool
	update := &cobra.Command{
		Use:   "update <page> --set name=value...",
		Short: "Update the properties of an entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.updateEntry(cmd.Context(), cmd.OutOrStdout(), args[0], updSet, archive)
		},
	}
	update.Flags().StringArrayVar(&updSet, "set", nil, "Property assignment name=value, repeatable")
	update.Flags().BoolVar(&archive, "archive", false, "Archive the entry")

	var filter string
	list := &cobra.Command{
		Use:   "list <database>",
		Short: "List the entries of a database",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.listEntries(cmd.Context(), cmd.OutOrStdout(), args[0], filter)
		},
	}
	list.Flags().StringVar(&filter, "filter", "", "Query filter as JSON, passed as is to the API")

	var tmpl string
	var count int
	seed := &cobra.Command{
		Use:   "seed <database>",
		Short: "Add generated sample entries",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.seedEntries(cmd.Context(), cmd.OutOrStdout(), args[0], tmpl, count)
		},
	}
	seed.Flags().StringVar(&tmpl, "template", "blog", "Template providing the sample values")
	seed.Flags().IntVar(&count, "count", 10, "Number of entries to add")

	cmd.AddCommand(add, update, list, seed)
	return cmd
}

// coerceFor converts assignments against the live schema of databaseID.
func (a *app) coerceFor(ctx context.Context, databaseID string, set []string) (map[string]notion.PropertyValue, error) {
	values, err := templates.ParseAssignments(set)
	if err != nil {
		return nil, err
	}
	db, err := a.client.GetDatabase(ctx, databaseID)
	if err != nil {
		return nil, fmt.Errorf("failed to get database %s: %w", databaseID, err)
	}
	return templates.Coerce(db.Properties, values)
}

func (a *app) addEntry(ctx context.Context, w io.Writer, database string, set []string) error {
	dbID, err := resolveID(database)
	if err != nil {
		return err
	}
	if len(set) == 0 {
		return errors.New("at least one --set is required")
	}
	props, err := a.coerceFor(ctx, dbID, set)
	if err != nil {
		return err
	}
	page, err := a.createEntry(ctx, dbID, props)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "New entry added: %s\n", page.URL)
	return nil
}

func (a *app) createEntry(ctx context.Context, dbID string, props map[string]notion.PropertyValue) (*notion.Page, error) {
	page, err := a.client.CreatePage(ctx, &notion.CreatePageRequest{
		Parent:     notion.Parent{Type: "database_id", DatabaseID: dbID},
		Properties: props,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create entry: %w", err)
	}
	a.record(journal.Entry{Op: journal.OpCreateEntry, TargetID: page.ID, ParentID: dbID, URL: page.URL, Title: notion.Title(page.Properties)})
	return page, nil
}

func (a *app) updateEntry(ctx context.Context, w io.Writer, entry string, set []string, archive bool) error {
	pageID, err := resolveID(entry)
	if err != nil {
		return err
	}
	if len(set) == 0 && !archive {
		return errors.New("nothing to update: use --set or --archive")
	}
	req := &notion.UpdatePageRequest{}
	if len(set) > 0 {
		page, err := a.client.GetPage(ctx, pageID)
		if err != nil {
			return fmt.Errorf("failed to get entry %s: %w", pageID, err)
		}
		if page.Parent.DatabaseID == "" {
			return fmt.Errorf("page %s is not a database entry", pageID)
		}
		if req.Properties, err = a.coerceFor(ctx, page.Parent.DatabaseID, set); err != nil {
			return err
		}
	}
	if archive {
		req.Archived = &archive
	}
	page, err := a.client.UpdatePage(ctx, pageID, req)
	if err != nil {
		return fmt.Errorf("failed to update entry: %w", err)
	}
	a.record(journal.Entry{Op: journal.OpUpdateEntry, TargetID: page.ID, ParentID: page.Parent.DatabaseID, URL: page.URL, Title: notion.Title(page.Properties)})
	fmt.Fprintf(w, "Entry updated: %s\n", page.URL)
	return nil
}

func (a *app) listEntries(ctx context.Context, w io.Writer, database, filter string) error {
	dbID, err := resolveID(database)
	if err != nil {
		return err
	}
	req := &notion.QueryRequest{}
	if filter != "" {
		if !json.Valid([]byte(filter)) {
			return fmt.Errorf("--filter is not valid JSON: %s", filter)
		}
		req.Filter = json.RawMessage(filter)
	}
	pages, err := a.client.QueryDatabaseAll(ctx, dbID, req)
	if err != nil {
		return fmt.Errorf("failed to query database: %w", err)
	}
	for i := range pages {
		fmt.Fprintf(w, "Entry Name: %s, Page ID: %s\n", notion.Title(pages[i].Properties), pages[i].ID)
	}
	return nil
}

func (a *app) seedEntries(ctx context.Context, w io.Writer, database, tmpl string, count int) error {
	dbID, err := resolveID(database)
	if err != nil {
		return err
	}
	if count < 1 {
		return fmt.Errorf("--count must be positive, got %d", count)
	}
	t, err := templates.Load(tmpl)
	if err != nil {
		return err
	}
	for i := 1; i <= count; i++ {
		props, err := t.Fake(i, a.rng)
		if err != nil {
			return err
		}
		page, err := a.createEntry(ctx, dbID, props)
		if err != nil {
			return fmt.Errorf("entry %d: %w", i, err)
		}
		fmt.Fprintf(w, "Entry %d added: %s\n", i, page.URL)
	}
	return nil
}
