package report

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"malariadash/internal/summary"
	"malariadash/internal/table"
)

func TestWriteWorkbook(t *testing.T) {
	tbl, err := table.DecodeCSV(strings.NewReader("region,cases,month\nNorth,10,Jan\nNorth,5,Feb\nSouth,7,Jan\n"), table.Options{})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteWorkbook(&buf, "cases.csv", summary.Summarize(tbl), tbl))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{SheetSummary, SheetRegions, SheetMonthly, SheetData}, f.GetSheetList())

	total, err := f.GetCellValue(SheetSummary, "B3")
	require.NoError(t, err)
	assert.Equal(t, "22", total)

	regions, err := f.GetRows(SheetRegions)
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"region", "cases"}, {"North", "15"}, {"South", "7"}}, regions)

	monthly, err := f.GetRows(SheetMonthly)
	require.NoError(t, err)
	assert.Equal(t, []string{"month", "cases", "region"}, monthly[0])
	assert.Len(t, monthly, 4)

	data, err := f.GetRows(SheetData)
	require.NoError(t, err)
	assert.Equal(t, []string{"North", "10", "Jan"}, data[1])
}

func TestWriteWorkbookWithoutCharts(t *testing.T) {
	tbl, err := table.DecodeCSV(strings.NewReader("latitude,longitude\n1,2\n"), table.Options{})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteWorkbook(&buf, "points.csv", summary.Summarize(tbl), tbl))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{SheetSummary, SheetData}, f.GetSheetList())
	total, err := f.GetCellValue(SheetSummary, "B3")
	require.NoError(t, err)
	assert.Equal(t, summary.NotAvailable, total)
}
