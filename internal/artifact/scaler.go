// Package artifact loads the pre-fit scaler and classifier the pipeline
// scores with. Artifacts are exported from the training environment as JSON
// files and loaded once at process start; a load failure must keep the
// process from serving traffic.
package artifact

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/mverdier/greenback/internal/common"
)

// StandardScaler standardizes each feature with the mean and scale fit at
// training time: (x - mean) / scale. Immutable after load.
type StandardScaler struct {
	mean  []float64
	scale []float64
}

type scalerFile struct {
	Type  string    `json:"type"`
	Mean  []float64 `json:"mean"`
	Scale []float64 `json:"scale"`
}

// LoadScaler reads a standard scaler artifact from disk.
func LoadScaler(path string) (*StandardScaler, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", common.ErrArtifactMissing, path, err)
	}

	var file scalerFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", common.ErrArtifactInvalid, path, err)
	}
	if file.Type != "standard_scaler" {
		return nil, fmt.Errorf("%w: %s: unexpected scaler type %q", common.ErrArtifactInvalid, path, file.Type)
	}

	return NewStandardScaler(file.Mean, file.Scale)
}

// NewStandardScaler builds a scaler from per-feature means and scales.
func NewStandardScaler(mean, scale []float64) (*StandardScaler, error) {
	if len(mean) == 0 || len(mean) != len(scale) {
		return nil, fmt.Errorf("%w: mean/scale length mismatch (%d vs %d)",
			common.ErrArtifactInvalid, len(mean), len(scale))
	}
	for i, s := range scale {
		if s == 0 {
			return nil, fmt.Errorf("%w: zero scale for feature %d", common.ErrArtifactInvalid, i)
		}
	}
	return &StandardScaler{
		mean:  append([]float64(nil), mean...),
		scale: append([]float64(nil), scale...),
	}, nil
}

// Dimensions returns the number of features the scaler was fit on.
func (s *StandardScaler) Dimensions() int {
	return len(s.mean)
}

// Transform returns a standardized copy of the vector.
func (s *StandardScaler) Transform(vector []float64) ([]float64, error) {
	if len(vector) != len(s.mean) {
		return nil, fmt.Errorf("expected %d features, got %d", len(s.mean), len(vector))
	}
	out := make([]float64, len(vector))
	for i, v := range vector {
		out[i] = (v - s.mean[i]) / s.scale[i]
	}
	return out, nil
}
