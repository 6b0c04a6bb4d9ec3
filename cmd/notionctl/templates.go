// Template inspection commands. None of them need a token.

package main

import (
	"fmt"
	"strings"

	"github.com/maruel/notionctl/internal/templates"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newTemplatesCmd(_ *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:         "templates",
		Short:       "Inspect database templates",
		Annotations: map[string]string{offlineKey: "true"},
	}
	list := &cobra.Command{
		Use:   "list",
		Short: "List the built-in templates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			w := cmd.OutOrStdout()
			for _, n := range templates.Names() {
				t, err := templates.Load(n)
				if err != nil {
					return err
				}
				fmt.Fprintf(w, "%-10s %s %s (%d properties)\n", n, t.Icon, t.Title, len(t.Properties))
			}
			return nil
		},
	}
	show := &cobra.Command{
		Use:   "show <name|file.yaml>",
		Short: "Validate a template and print it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := templates.Load(args[0])
			if err != nil {
				return err
			}
			e := yaml.NewEncoder(cmd.OutOrStdout())
			e.SetIndent(2)
			if err := e.Encode(t); err != nil {
				return err
			}
			return e.Close()
		},
	}
	schema := &cobra.Command{
		Use:   "schema",
		Short: "Print the JSON schema of the template format",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			b, err := templates.Schema()
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), strings.TrimSpace(string(b)))
			return err
		},
	}
	cmd.AddCommand(list, show, schema)
	return cmd
}
