// Journal command.

package main

import (
	"fmt"
	"time"

	"github.com/maruel/notionctl/internal/journal"
	"github.com/spf13/cobra"
)

func newJournalCmd(a *app) *cobra.Command {
	var ops []string
	cmd := &cobra.Command{
		Use:         "journal",
		Short:       "List the mutations made by previous runs",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{offlineKey: "true"},
		RunE: func(cmd *cobra.Command, _ []string) error {
			j, err := a.openJournal()
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			if j.Len() == 0 {
				fmt.Fprintf(w, "No mutations recorded in %s\n", j.Path())
				return nil
			}
			filter := make([]journal.Op, 0, len(ops))
			for _, o := range ops {
				filter = append(filter, journal.Op(o))
			}
			for e := range j.Entries(filter...) {
				line := fmt.Sprintf("%s %s %-15s %s", e.ID, e.Time.Local().Format(time.DateTime), e.Op, e.TargetID)
				if e.Title != "" {
					line += " " + e.Title
				}
				if e.URL != "" {
					line += " " + e.URL
				}
				fmt.Fprintln(w, line)
			}
			return nil
		},
	}
	cmd.Flags().StringSliceVar(&ops, "op", nil, "Only show these operations (create_database, create_entry, update_entry, append_block)")
	return cmd
}
