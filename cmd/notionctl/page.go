// Page content commands.

package main

import (
	"encoding/json"
	"fmt"

	"github.com/maruel/notionctl/internal/content"
	"github.com/maruel/notionctl/internal/journal"
	"github.com/spf13/cobra"
)

func newPageCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "page",
		Short: "Read and append page content",
	}
	var asJSON bool
	read := &cobra.Command{
		Use:   "read <page>",
		Short: "Print the text lines of a page",
		Long: `Print the top level blocks of a page as text lines.

Paragraphs, level 1 and 2 headings, quotes, bulleted list items and callouts
are rendered; other blocks are skipped.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := resolveID(args[0])
			if err != nil {
				return err
			}
			lines, err := content.RetrievePageContent(cmd.Context(), a.client, id)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			if asJSON {
				if lines == nil {
					lines = []string{}
				}
				e := json.NewEncoder(w)
				e.SetIndent("", "  ")
				return e.Encode(lines)
			}
			for _, l := range lines {
				fmt.Fprintln(w, l)
			}
			return nil
		},
	}
	read.Flags().BoolVar(&asJSON, "json", false, "Print the lines as a JSON array")

	appendCmd := &cobra.Command{
		Use:   "append <page> <text>",
		Short: "Append a paragraph to a page",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := resolveID(args[0])
			if err != nil {
				return err
			}
			b, err := content.AppendParagraph(cmd.Context(), a.client, id, args[1])
			if err != nil {
				return err
			}
			a.record(journal.Entry{Op: journal.OpAppendBlock, TargetID: b.ID, ParentID: id, Title: args[1]})
			fmt.Fprintf(cmd.OutOrStdout(), "Block added: %s\n", b.ID)
			return nil
		},
	}
	cmd.AddCommand(read, appendCmd)
	return cmd
}
