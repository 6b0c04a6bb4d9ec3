// Users command.

package main

import (
	"fmt"

	"github.com/maruel/notionctl/internal/notion"
	"github.com/spf13/cobra"
)

func newUsersCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "users",
		Short: "List the users of the workspace",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			users, err := a.client.ListUsersAll(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to list users: %w", err)
			}
			w := cmd.OutOrStdout()
			for i := range users {
				fmt.Fprintln(w, describeUser(&users[i]))
			}
			return nil
		},
	}
}

func describeUser(u *notion.User) string {
	emoji := "🙋‍♂️"
	if u.IsBot() {
		emoji = "😅"
	}
	return fmt.Sprintf("%s is a %s %s", u.Name, u.Type, emoji)
}
