package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mverdier/greenback/internal/tui"
)

func dashboardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard [file]",
		Short: "Analyze notes in the interactive dashboard",
		Long: `Open the interactive dashboard. With a file argument the upload is loaded
immediately; otherwise the dashboard prompts for one. Results are paginated
with aggregate statistics and per-class confidence charts.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			p, err := loadPipeline()
			if err != nil {
				return err
			}

			var store tui.RunStore
			if s := openStoreOrWarn(ctx); s != nil {
				defer func() { _ = s.Close() }()
				store = s
			}

			cfg := tui.Config{
				Pipeline: p,
				Store:    store,
				PageSize: viper.GetInt("dashboard.page_size"),
			}
			if len(args) == 1 {
				cfg.Path = args[0]
			}

			return tui.Run(ctx, cfg)
		},
	}
}
