package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/VasupriyaPatnaik/AI-Redliner/internal/workspace"
)

func newStatsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show dashboard totals",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, _, err := a.authed(cmd.Context())
			if err != nil {
				return err
			}

			stats, err := workspace.LoadStats(ctx, a.api)
			if err != nil {
				return err
			}

			out := newPrinter(cmd.OutOrStdout())
			out.heading("Dashboard")
			out.table([]string{"METRIC", "COUNT"}, [][]string{
				{"Documents", fmt.Sprint(stats.Documents)},
				{"  processing", fmt.Sprint(stats.Processing)},
				{"  processed", fmt.Sprint(stats.Processed)},
				{"  failed", fmt.Sprint(stats.Failed)},
				{"Playbooks", fmt.Sprint(stats.Playbooks)},
				{"Reviews", fmt.Sprint(stats.Reviews)},
				{"Conflicts", fmt.Sprint(stats.Conflicts)},
				{"Gaps", fmt.Sprint(stats.Gaps)},
				{"Irrelevant", fmt.Sprint(stats.Irrelevant)},
			})
			return nil
		},
	}
}
