package summary

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"malariadash/internal/errors"
)

func TestColumnStat(t *testing.T) {
	tbl := load(t, "cases,region\n1,A\n2,B\n3,C\n4,D\nx,E\n")

	tests := []struct {
		op   string
		want float64
	}{
		{"sum", 10},
		{"average", 2.5},
		{"median", 2.5},
		{"min", 1},
		{"max", 4},
		{"count", 4},
	}
	for _, tt := range tests {
		t.Run(tt.op, func(t *testing.T) {
			res, err := ColumnStat(tbl, "cases", tt.op)
			require.NoError(t, err)
			assert.Equal(t, tt.want, res.Value)
			assert.Equal(t, 1, res.Skipped)
		})
	}

	res, err := ColumnStat(tbl, "cases", "std")
	require.NoError(t, err)
	assert.InDelta(t, 1.2910, res.Value, 1e-4)
}

func TestColumnStatErrors(t *testing.T) {
	tbl := load(t, "cases,region\n1,A\n")

	_, err := ColumnStat(tbl, "deaths", "sum")
	assert.Equal(t, errors.CodeNotFound, errors.GetCode(err))

	_, err = ColumnStat(tbl, "region", "sum")
	assert.Equal(t, errors.CodeInvalidInput, errors.GetCode(err))

	_, err = ColumnStat(tbl, "cases", "mode")
	assert.Equal(t, errors.CodeInvalidInput, errors.GetCode(err))

	res, err := ColumnStat(tbl, "cases", "std")
	require.NoError(t, err)
	assert.Equal(t, 0.0, res.Value)
}

func TestNumericColumns(t *testing.T) {
	tbl := load(t, "a,b,c,d\n1,x,1,\n2,y,2,\n3,z,3,\n4,w,4,\n5,v,oops,\n")

	assert.Equal(t, []string{"a", "c"}, NumericColumns(tbl))
}
