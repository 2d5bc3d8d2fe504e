package pipeline

import (
	"github.com/mverdier/greenback/internal/common"
	"github.com/mverdier/greenback/internal/model"
)

// Validate confirms every canonical feature column is present in the resolved
// table. It returns a MissingColumnsError naming exactly the absent columns,
// in canonical order, and the pipeline must not proceed past it.
func Validate(t *model.Table) error {
	var missing []string
	for _, canonical := range model.FeatureColumns {
		if !t.HasColumn(canonical) {
			missing = append(missing, canonical)
		}
	}
	if len(missing) > 0 {
		return &common.MissingColumnsError{Columns: missing}
	}
	return nil
}
