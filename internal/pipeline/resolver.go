// Package pipeline implements the canonical note-classification pipeline:
// column resolution, validation, median imputation, scoring, and stats
// aggregation, composed behind a single Classify entry point. Every surface
// of the application (HTTP, dashboard, CLI) calls into this package and
// nothing else performs prediction logic.
package pipeline

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/mverdier/greenback/internal/model"
)

//go:embed aliases.yaml
var aliasesYAML []byte

// aliasTable maps each canonical feature name to its accepted spellings in
// priority order. Loaded once from the embedded table.
var aliasTable = mustLoadAliases()

func mustLoadAliases() map[string][]string {
	var table map[string][]string
	if err := yaml.Unmarshal(aliasesYAML, &table); err != nil {
		panic(fmt.Sprintf("pipeline: embedded alias table invalid: %v", err))
	}
	for _, canonical := range model.FeatureColumns {
		if len(table[canonical]) == 0 {
			panic(fmt.Sprintf("pipeline: alias table missing canonical column %q", canonical))
		}
	}
	return table
}

// normalizeName cleans a raw column name: trim, lowercase, spaces to
// underscores. Applied to every header cell before alias lookup.
func normalizeName(name string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), " ", "_")
}

// Resolve returns a copy of the table with column names normalized and known
// aliases renamed to their canonical feature names. For each canonical name
// the alias list is scanned in priority order and only the first matching
// column is renamed; additional columns that would map to an already-claimed
// canonical name are left under their normalized spelling. Unrecognized
// columns pass through untouched. Resolve never fails; absent features are
// caught by Validate.
func Resolve(t *model.Table) *model.Table {
	columns := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		columns[i] = normalizeName(c)
	}

	for _, canonical := range model.FeatureColumns {
		for _, alias := range aliasTable[canonical] {
			idx := -1
			for i, c := range columns {
				if c == alias {
					idx = i
					break
				}
			}
			if idx < 0 {
				continue
			}
			columns[idx] = canonical
			break
		}
	}

	return &model.Table{Columns: columns, Rows: t.Rows}
}
