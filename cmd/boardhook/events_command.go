package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"boardhook/internal/events"
	"boardhook/internal/subscription"
)

func newEventsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:         "events",
		Short:       "List the event catalog and its subscription keys",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			rows := make([][]string, 0, len(events.All()))
			for _, id := range events.All() {
				userKey := "-"
				if events.CategoryOf(id) == events.CategoryTask {
					userKey = subscription.UserKey(id)
				}
				rows = append(rows, []string{
					string(id),
					events.CategoryOf(id).String(),
					subscription.ProjectKey(id),
					userKey,
				})
			}

			out := renderTable(
				[]string{"Event", "Category", "Project key", "User key"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft},
			)
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}
}
