package table

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"malariadash/internal/errors"
)

func TestDecodeCSV(t *testing.T) {
	input := "region,cases,month\nNorth,10,Jan\nNorth,5,Feb\nSouth,7,Jan\n"

	tbl, err := DecodeCSV(strings.NewReader(input), Options{})
	require.NoError(t, err)

	assert.Equal(t, []string{"region", "cases", "month"}, tbl.Schema().Columns())
	assert.Equal(t, 3, tbl.Len())
	assert.True(t, tbl.Schema().Has(ColRegion, ColCases))
	assert.False(t, tbl.Schema().Has(ColLatitude))

	first := tbl.Row(0)
	assert.Equal(t, "North", first.Get(ColRegion).String())
	cases, ok := first.Get(ColCases).Float()
	assert.True(t, ok)
	assert.Equal(t, 10.0, cases)
	assert.Equal(t, Missing, first.Get("unknown").Kind())
}

func TestDecodeCSVHeaderRules(t *testing.T) {
	input := "\ufeff region ,,cases,cases\nA,x,1,2\n"

	tbl, err := DecodeCSV(strings.NewReader(input), Options{})
	require.NoError(t, err)

	assert.Equal(t, []string{"region", "Column_2", "cases", "cases.1"}, tbl.Schema().Columns())
	v, _ := tbl.Row(0).Get("cases.1").Float()
	assert.Equal(t, 2.0, v)
}

func TestDecodeCSVRaggedRows(t *testing.T) {
	input := "a,b,c\n1\n1,2,3,4\n"

	tbl, err := DecodeCSV(strings.NewReader(input), Options{})
	require.NoError(t, err)
	require.Equal(t, 2, tbl.Len())

	assert.True(t, tbl.Row(0).Get("b").IsMissing())
	assert.Len(t, tbl.Row(1).Values(), 3)
}

func TestDecodeCSVHeaderOnly(t *testing.T) {
	tbl, err := DecodeCSV(strings.NewReader("cases,region\n"), Options{})
	require.NoError(t, err)
	assert.Equal(t, 0, tbl.Len())
	assert.True(t, tbl.Schema().Has(ColCases))
}

func TestDecodeCSVErrors(t *testing.T) {
	_, err := DecodeCSV(strings.NewReader(""), Options{})
	assert.Equal(t, errors.CodeEmptyFile, errors.GetCode(err))

	_, err = DecodeCSV(strings.NewReader("a,b\n\"unterminated,1\n"), Options{})
	assert.Equal(t, errors.CodeInvalidInput, errors.GetCode(err))

	_, err = DecodeCSV(strings.NewReader("a\n1\n2\n3\n"), Options{MaxRows: 2})
	assert.Equal(t, errors.CodeTooLarge, errors.GetCode(err))
}

func TestDecodeDispatch(t *testing.T) {
	_, err := Decode("cases.txt", strings.NewReader("a\n1\n"), Options{})
	assert.Equal(t, errors.CodeUnsupportedFile, errors.GetCode(err))

	tbl, err := Decode("CASES.CSV", strings.NewReader("a\n1\n"), Options{})
	require.NoError(t, err)
	assert.Equal(t, 1, tbl.Len())
}

func TestDecodeXLSX(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]interface{}{"region", "cases"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A2", &[]interface{}{"North", 10}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A3", &[]interface{}{"South", 7}))
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	tbl, err := Decode("upload.xlsx", buf, Options{})
	require.NoError(t, err)

	assert.Equal(t, []string{"region", "cases"}, tbl.Schema().Columns())
	require.Equal(t, 2, tbl.Len())
	v, ok := tbl.Row(1).Get(ColCases).Float()
	assert.True(t, ok)
	assert.Equal(t, 7.0, v)
}

func TestDecodeXLSXRejectsGarbage(t *testing.T) {
	_, err := DecodeXLSX(strings.NewReader("not a zip"), Options{})
	assert.Equal(t, errors.CodeInvalidInput, errors.GetCode(err))
}
