package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mverdier/greenback/internal/model"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		name    string
		columns []string
		want    []string
	}{
		{
			name:    "already canonical",
			columns: []string{"diagonal", "height_left", "height_right", "margin_low", "margin_up", "length"},
			want:    []string{"diagonal", "height_left", "height_right", "margin_low", "margin_up", "length"},
		},
		{
			name:    "french aliases",
			columns: []string{"diagonale", "hauteur_gauche", "hauteur_droite", "marge_basse", "marge_haute", "longueur"},
			want:    []string{"diagonal", "height_left", "height_right", "margin_low", "margin_up", "length"},
		},
		{
			name:    "ocr misreads",
			columns: []string{"dingmail", "height_left", "height_right", "margin_bow", "margin_up", "length"},
			want:    []string{"diagonal", "height_left", "height_right", "margin_low", "margin_up", "length"},
		},
		{
			name:    "trailing space and capitalization",
			columns: []string{"Diagonale ", "Height_Left", "HEIGHT_RIGHT", " margin_low", "Margin Up", "length"},
			want:    []string{"diagonal", "height_left", "height_right", "margin_low", "margin_up", "length"},
		},
		{
			name:    "unknown columns pass through",
			columns: []string{"diagonal", "serial_number", "length"},
			want:    []string{"diagonal", "serial_number", "length"},
		},
		{
			name:    "first alias match wins over later duplicate",
			columns: []string{"diagonal", "diagonale"},
			want:    []string{"diagonal", "diagonale"},
		},
		{
			name:    "priority order decides between competing aliases",
			columns: []string{"diagonale", "dingmail"},
			want:    []string{"diagonale", "diagonal"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := &model.Table{Columns: tt.columns}
			got := Resolve(in)
			assert.Equal(t, tt.want, got.Columns)
			// The input table must not be mutated.
			assert.Equal(t, tt.columns, in.Columns)
		})
	}
}

func TestResolveKeepsRows(t *testing.T) {
	in := &model.Table{
		Columns: []string{"Diagonale "},
		Rows:    [][]string{{"171.81"}, {"171.46"}},
	}
	got := Resolve(in)
	assert.Equal(t, []string{"diagonal"}, got.Columns)
	assert.Equal(t, in.Rows, got.Rows)
}
