package artifact

import (
	"fmt"
	"log/slog"
)

// Set bundles the two artifacts one process serves with.
type Set struct {
	Scaler     *StandardScaler
	Classifier *Forest
}

// LoadSet loads both artifacts. Callers treat any error as fatal: the process
// must not serve predictions with a partial set.
func LoadSet(scalerPath, classifierPath string) (*Set, error) {
	scaler, err := LoadScaler(scalerPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load scaler: %w", err)
	}

	classifier, err := LoadForest(classifierPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load classifier: %w", err)
	}

	slog.Info("Loaded model artifacts",
		"scaler", scalerPath,
		"classifier", classifierPath,
		"features", scaler.Dimensions(),
		"trees", classifier.NumTrees())

	return &Set{Scaler: scaler, Classifier: classifier}, nil
}
