package pipeline

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mverdier/greenback/internal/common"
	"github.com/mverdier/greenback/internal/model"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name        string
		columns     []string
		wantMissing []string
	}{
		{
			name:    "all present",
			columns: []string{"diagonal", "height_left", "height_right", "margin_low", "margin_up", "length"},
		},
		{
			name:    "all present with extras",
			columns: []string{"id", "diagonal", "height_left", "height_right", "margin_low", "margin_up", "length", "note"},
		},
		{
			name:        "one missing",
			columns:     []string{"diagonal", "height_left", "margin_low", "margin_up", "length"},
			wantMissing: []string{"height_right"},
		},
		{
			name:        "several missing reported in canonical order",
			columns:     []string{"length", "height_left"},
			wantMissing: []string{"diagonal", "height_right", "margin_low", "margin_up"},
		},
		{
			name:        "empty table misses everything",
			columns:     nil,
			wantMissing: []string{"diagonal", "height_left", "height_right", "margin_low", "margin_up", "length"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(&model.Table{Columns: tt.columns})
			if len(tt.wantMissing) == 0 {
				require.NoError(t, err)
				return
			}
			var missingErr *common.MissingColumnsError
			require.True(t, errors.As(err, &missingErr), "expected MissingColumnsError, got %T", err)
			assert.Equal(t, tt.wantMissing, missingErr.Columns)
		})
	}
}
