package summary

import (
	"fmt"

	"github.com/montanaflynn/stats"

	"malariadash/internal/errors"
	"malariadash/internal/table"
)

// Operations accepted by ColumnStat, in the order the UI lists them.
var Operations = []string{"sum", "average", "median", "min", "max", "count", "std"}

// CalculationResult is one column's value for an operation.
type CalculationResult struct {
	Column  string  `json:"column"`
	Value   float64 `json:"value"`
	Skipped int     `json:"skipped"`
}

// ColumnStat applies op to the numeric cells of column.
func ColumnStat(t *table.Table, column, op string) (CalculationResult, error) {
	if !t.Schema().Has(column) {
		return CalculationResult{}, errors.NotFound(fmt.Sprintf("column %q", column))
	}
	values, skipped := numbers(t.Column(column))
	if len(values) == 0 {
		return CalculationResult{}, errors.InvalidInput(fmt.Sprintf("column %q has no numeric values", column))
	}

	var (
		result float64
		err    error
	)
	switch op {
	case "sum":
		result, err = stats.Sum(values)
	case "average":
		result, err = stats.Mean(values)
	case "median":
		result, err = stats.Median(values)
	case "min":
		result, err = stats.Min(values)
	case "max":
		result, err = stats.Max(values)
	case "count":
		result = float64(len(values))
	case "std":
		if len(values) > 1 {
			result, err = stats.StandardDeviationSample(values)
		}
	default:
		return CalculationResult{}, errors.InvalidInput(fmt.Sprintf("unsupported operation %q", op))
	}
	if err != nil {
		return CalculationResult{}, errors.Wrapf(err, "%s of %q", op, column)
	}
	return CalculationResult{Column: column, Value: result, Skipped: skipped}, nil
}

// NumericColumns lists the columns where at least 80% of the non-missing cells are numbers.
func NumericColumns(t *table.Table) []string {
	var out []string
	for _, column := range t.Schema().Columns() {
		if isColumnNumeric(t.Column(column)) {
			out = append(out, column)
		}
	}
	return out
}

func isColumnNumeric(values []table.Value) bool {
	numericCount := 0
	totalCount := 0
	for _, v := range values {
		if v.IsMissing() {
			continue
		}
		totalCount++
		if v.Kind() == table.Number {
			numericCount++
		}
	}
	if totalCount == 0 {
		return false
	}
	return float64(numericCount)/float64(totalCount) >= 0.8
}
