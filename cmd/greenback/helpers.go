package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/viper"

	"github.com/mverdier/greenback/internal/artifact"
	"github.com/mverdier/greenback/internal/config"
	"github.com/mverdier/greenback/internal/pipeline"
	"github.com/mverdier/greenback/internal/storage"
)

// loadPipeline loads both model artifacts and builds the pipeline. Artifact
// failures here are fatal to the command: nothing is served without them.
func loadPipeline() (*pipeline.Pipeline, error) {
	set, err := artifact.LoadSet(
		config.ExpandPath(viper.GetString("artifacts.scaler")),
		config.ExpandPath(viper.GetString("artifacts.classifier")),
	)
	if err != nil {
		return nil, err
	}
	return pipeline.New(set.Scaler, set.Classifier)
}

// openStore opens the run-history database and applies migrations. Commands
// that can work without history call this best-effort.
func openStore(ctx context.Context) (*storage.SQLiteStorage, error) {
	store, err := storage.NewSQLiteStorage(config.ExpandPath(viper.GetString("storage.database")))
	if err != nil {
		return nil, fmt.Errorf("failed to open run history: %w", err)
	}
	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to migrate run history: %w", err)
	}
	return store, nil
}

// openStoreOrWarn opens the store, returning nil when it fails so the caller
// can keep serving without history.
func openStoreOrWarn(ctx context.Context) *storage.SQLiteStorage {
	store, err := openStore(ctx)
	if err != nil {
		slog.Warn("run history unavailable", "error", err)
		return nil
	}
	return store
}
