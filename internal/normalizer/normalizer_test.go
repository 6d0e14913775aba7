package normalizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ecom-data-loader/pkg/models"
)

func TestNormalizeBooleanLiterals(t *testing.T) {
	tests := []struct {
		name  string
		value interface{}
		want  int
	}{
		{"upper true", "TRUE", 1},
		{"lower true", "true", 1},
		{"mixed true", "True", 1},
		{"padded true", "  TRUE  ", 1},
		{"upper false", "FALSE", 0},
		{"padded lower false", " false ", 0},
		{"unrecognized word", "yes", 0},
		{"numeric string", "1", 0},
		{"empty string", "", 0},
		{"whitespace only", "   ", 0},
		{"nil value", nil, 0},
		{"integer value", 1, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := models.Dataset{
				Columns: []string{"in_stock"},
				Rows:    []models.Row{{"in_stock": tt.value}},
			}

			out := NormalizeBoolean(data, "in_stock")
			assert.Equal(t, tt.want, out.Rows[0]["in_stock"])
		})
	}
}

func TestNormalizeBooleanReturnsIntegers(t *testing.T) {
	data := models.Dataset{
		Columns: []string{"in_stock"},
		Rows:    []models.Row{{"in_stock": "TRUE"}, {"in_stock": "FALSE"}},
	}

	out := NormalizeBoolean(data, "in_stock")
	for _, row := range out.Rows {
		assert.IsType(t, int(0), row["in_stock"])
	}
}

func TestNormalizeBooleanDoesNotMutateInput(t *testing.T) {
	data := models.Dataset{
		Columns: []string{"product_id", "in_stock"},
		Rows: []models.Row{
			{"product_id": "P001", "in_stock": "True"},
			{"product_id": "P002", "in_stock": " false "},
		},
	}

	out := NormalizeBoolean(data, "in_stock")

	require.Equal(t, "True", data.Rows[0]["in_stock"])
	require.Equal(t, " false ", data.Rows[1]["in_stock"])
	assert.Equal(t, 1, out.Rows[0]["in_stock"])
	assert.Equal(t, 0, out.Rows[1]["in_stock"])
}

func TestNormalizeBooleanLeavesOtherColumnsAlone(t *testing.T) {
	data := models.Dataset{
		Columns: []string{"product_id", "in_stock", "price"},
		Rows:    []models.Row{{"product_id": "P001", "in_stock": "FALSE", "price": "29.99"}},
	}

	out := NormalizeBoolean(data, "in_stock")

	assert.Equal(t, data.Columns, out.Columns)
	assert.Equal(t, "P001", out.Rows[0]["product_id"])
	assert.Equal(t, "29.99", out.Rows[0]["price"])
}

func TestNormalizeBooleanMissingColumn(t *testing.T) {
	data := models.Dataset{
		Columns: []string{"product_id"},
		Rows:    []models.Row{{"product_id": "P001"}},
	}

	out := NormalizeBoolean(data, "in_stock")
	assert.Equal(t, 0, out.Rows[0]["in_stock"])
}
