package normalizer

import (
	"fmt"
	"strings"

	"ecom-data-loader/pkg/models"
)

// NormalizeBoolean returns a copy of the dataset with the named column
// canonicalized to integer 0 or 1. The value's textual form is trimmed and
// upper-cased, then TRUE maps to 1 and FALSE to 0; anything else, including
// empty or missing values, maps to 0. The input dataset is not modified.
func NormalizeBoolean(data models.Dataset, column string) models.Dataset {
	out := data.Clone()
	for _, row := range out.Rows {
		row[column] = booleanInt(row[column])
	}
	return out
}

func booleanInt(value interface{}) int {
	text := strings.ToUpper(strings.TrimSpace(fmt.Sprintf("%v", value)))
	switch text {
	case "TRUE":
		return 1
	case "FALSE":
		return 0
	default:
		return 0
	}
}
