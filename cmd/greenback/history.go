package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mverdier/greenback/internal/cli"
)

func historyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recent analysis runs",
		RunE:  runHistory,
	}

	cmd.Flags().Int("limit", 20, "maximum number of runs to show")

	return cmd
}

func runHistory(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	limit, _ := cmd.Flags().GetInt("limit")

	store, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	runs, err := store.ListRuns(ctx, limit)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(runs) == 0 {
		fmt.Fprintln(out, cli.SubtleStyle.Render("No analyses recorded yet."))
		return nil
	}

	fmt.Fprintln(out, cli.TitleStyle.Render("Recent analyses"))
	for _, run := range runs {
		fmt.Fprintf(out, "  %s  %-10s %-24s %4d notes  %s / %s\n",
			run.CreatedAt.Local().Format("2006-01-02 15:04"),
			run.Source,
			run.Filename,
			run.Stats.Total,
			cli.GenuineStyle.Render(fmt.Sprintf("%.2f%% genuine", run.Stats.GenuinePercentage)),
			cli.FakeStyle.Render(fmt.Sprintf("%.2f%% fake", run.Stats.FakePercentage)))
	}

	return nil
}
