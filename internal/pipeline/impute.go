package pipeline

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/mverdier/greenback/internal/common"
	"github.com/mverdier/greenback/internal/model"
)

// Impute restricts the validated table to the six canonical columns, coerces
// every cell to a float, and fills unparseable or blank cells with the
// batch-local median of their column. The median is deliberately computed
// from the current batch rather than reused from training time.
//
// A required column with zero parseable values has no median to offer; the
// whole batch is rejected with an EmptyColumnError rather than letting NaN
// reach the scorer. An empty batch imputes to zero rows without error.
func Impute(t *model.Table) ([]model.Features, error) {
	numRows := t.NumRows()
	matrix := make([][]float64, numRows)
	for i := range matrix {
		matrix[i] = make([]float64, model.FeatureCount)
	}

	for j, canonical := range model.FeatureColumns {
		cells, _ := t.Column(canonical)

		values := make([]float64, numRows)
		present := make([]float64, 0, numRows)
		for i, cell := range cells {
			v, ok := parseCell(cell)
			if ok {
				values[i] = v
				present = append(present, v)
			} else {
				values[i] = math.NaN()
			}
		}

		if len(present) == 0 && numRows > 0 {
			return nil, &common.EmptyColumnError{Column: canonical}
		}

		med := median(present)
		for i := range values {
			if math.IsNaN(values[i]) {
				values[i] = med
			}
			matrix[i][j] = values[i]
		}
	}

	features := make([]model.Features, numRows)
	for i, row := range matrix {
		features[i] = model.FeaturesFromVector(row)
	}
	return features, nil
}

// parseCell coerces one cell to a float. Blank cells and anything that fails
// to parse count as missing, not as errors. Decimal commas are accepted since
// the French-locale exports use them.
func parseCell(cell string) (float64, bool) {
	cell = strings.TrimSpace(cell)
	if cell == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(cell, ",", "."), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// median returns the middle value of vs, averaging the two central values for
// even lengths. vs must be non-empty; it is not modified.
func median(vs []float64) float64 {
	if len(vs) == 0 {
		return math.NaN()
	}
	sorted := make([]float64, len(vs))
	copy(sorted, vs)
	sort.Float64s(sorted)

	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid]
	}
	return (sorted[mid-1] + sorted[mid]) / 2
}
