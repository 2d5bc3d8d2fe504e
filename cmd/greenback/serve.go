package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mverdier/greenback/internal/server"
)

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the prediction API over HTTP",
		Long: `Start the HTTP server exposing POST /predict for delimited-text uploads,
the static result images, and the run history.`,
		RunE: runServe,
	}

	cmd.Flags().String("addr", "", "listen address (default :8000)")
	_ = viper.BindPFlag("server.addr", cmd.Flags().Lookup("addr"))

	return cmd
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	p, err := loadPipeline()
	if err != nil {
		return err
	}

	var runStore server.RunStore
	if store := openStoreOrWarn(ctx); store != nil {
		defer func() { _ = store.Close() }()
		runStore = store
	}

	cfg := server.DefaultConfig()
	if addr := viper.GetString("server.addr"); addr != "" {
		cfg.Addr = addr
	}
	cfg.CORSOrigins = viper.GetStringSlice("server.cors_origins")

	srv, err := server.New(p, runStore, cfg)
	if err != nil {
		return err
	}

	return srv.ListenAndServe(ctx)
}
