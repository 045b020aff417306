// Package report writes the dashboard out as an Excel workbook.
package report

import (
	"io"

	"github.com/xuri/excelize/v2"

	"malariadash/internal/errors"
	"malariadash/internal/summary"
	"malariadash/internal/table"
)

// Sheet names, in workbook order.
const (
	SheetSummary = "Summary"
	SheetRegions = "Cases by Region"
	SheetMonthly = "Monthly"
	SheetData    = "Data"
)

// WriteWorkbook writes the summary, both chart series and the full table to w.
// Chart sheets are only added when the dashboard has that chart.
func WriteWorkbook(w io.Writer, fileName string, d summary.Dashboard, t *table.Table) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetSummary); err != nil {
		return errors.Wrap(err, "rename summary sheet")
	}

	summaryRows := [][]interface{}{
		{"Source file", fileName},
		{"Total Records", d.TotalRecords},
		{"Total Cases", metricCell(d.TotalCases)},
		{"Regions", metricCell(d.RegionCount)},
	}
	if d.TotalCases.Skipped > 0 {
		summaryRows = append(summaryRows, []interface{}{"Non-numeric case cells", d.TotalCases.Skipped})
	}
	if err := writeRows(f, SheetSummary, summaryRows); err != nil {
		return err
	}

	if d.HasRegionChart {
		rows := [][]interface{}{{table.ColRegion, table.ColCases}}
		for _, rt := range d.CasesByRegion {
			rows = append(rows, []interface{}{rt.Region, rt.Cases})
		}
		if err := addSheet(f, SheetRegions, rows); err != nil {
			return err
		}
	}

	if d.HasMonthlyChart {
		header := []interface{}{table.ColMonth, table.ColCases}
		if d.MonthlyByRegion {
			header = append(header, table.ColRegion)
		}
		rows := [][]interface{}{header}
		for _, p := range d.Monthly {
			row := []interface{}{cell(p.Month), cell(p.Cases)}
			if d.MonthlyByRegion {
				row = append(row, cell(p.Region))
			}
			rows = append(rows, row)
		}
		if err := addSheet(f, SheetMonthly, rows); err != nil {
			return err
		}
	}

	dataRows := make([][]interface{}, 0, t.Len()+1)
	header := make([]interface{}, 0, t.Schema().Len())
	for _, c := range t.Schema().Columns() {
		header = append(header, c)
	}
	dataRows = append(dataRows, header)
	for _, row := range t.Rows() {
		values := row.Values()
		out := make([]interface{}, len(values))
		for i, v := range values {
			out[i] = cell(v)
		}
		dataRows = append(dataRows, out)
	}
	if err := addSheet(f, SheetData, dataRows); err != nil {
		return err
	}

	f.SetActiveSheet(0)
	if err := f.Write(w); err != nil {
		return errors.Wrap(err, "write workbook")
	}
	return nil
}

func addSheet(f *excelize.File, name string, rows [][]interface{}) error {
	if _, err := f.NewSheet(name); err != nil {
		return errors.Wrapf(err, "create sheet %q", name)
	}
	return writeRows(f, name, rows)
}

func writeRows(f *excelize.File, sheet string, rows [][]interface{}) error {
	for i, row := range rows {
		addr, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return errors.Wrap(err, "cell address")
		}
		if err := f.SetSheetRow(sheet, addr, &row); err != nil {
			return errors.Wrapf(err, "write %s row %d", sheet, i+1)
		}
	}
	return nil
}

func cell(v table.Value) interface{} {
	if f, ok := v.Float(); ok {
		return f
	}
	if v.IsMissing() {
		return nil
	}
	return v.String()
}

func metricCell(m summary.Metric) interface{} {
	if !m.Available {
		return summary.NotAvailable
	}
	return m.Value
}
