package table

import (
	"encoding/csv"
	stderrors "errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"malariadash/internal/errors"
)

// Options limits what a decoder will accept. Zero means no limit.
type Options struct {
	MaxRows int
}

// Decode picks a decoder from the file name's extension.
func Decode(name string, r io.Reader, opts Options) (*Table, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".csv":
		return DecodeCSV(r, opts)
	case ".xlsx":
		return DecodeXLSX(r, opts)
	default:
		return nil, errors.UnsupportedFile(name)
	}
}

// DecodeCSV reads a comma-separated file whose first record is the header row.
func DecodeCSV(r io.Reader, opts Options) (*Table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return nil, errors.EmptyFile("file has no header row")
	}
	if err != nil {
		return nil, csvError(err)
	}

	var rows [][]string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, csvError(err)
		}
		rows = append(rows, record)
		if opts.MaxRows > 0 && len(rows) > opts.MaxRows {
			return nil, errors.TooLarge(fmt.Sprintf("too many rows (> %d)", opts.MaxRows))
		}
	}

	return build(header, rows), nil
}

// DecodeXLSX reads the first sheet of a workbook; its first row is the header row.
func DecodeXLSX(r io.Reader, opts Options) (*Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, errors.WithCode(errors.CodeInvalidInput, err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, errors.EmptyFile("workbook has no sheets")
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, errors.Wrapf(err, "read sheet %q", sheet)
	}
	if len(rows) == 0 {
		return nil, errors.EmptyFile("sheet has no header row")
	}

	body := make([][]string, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if isBlankRecord(row) {
			continue
		}
		body = append(body, row)
	}
	if opts.MaxRows > 0 && len(body) > opts.MaxRows {
		return nil, errors.TooLarge(fmt.Sprintf("too many rows (> %d)", opts.MaxRows))
	}

	return build(rows[0], body), nil
}

func build(header []string, records [][]string) *Table {
	schema := NewSchema(normalizeHeaders(header))
	width := schema.Len()

	rows := make([][]Value, len(records))
	for i, record := range records {
		cells := make([]Value, width)
		for j := 0; j < width && j < len(record); j++ {
			cells[j] = ParseValue(record[j])
		}
		rows[i] = cells
	}
	return New(schema, rows)
}

// normalizeHeaders trims names, fills blanks with Column_N and makes duplicates
// unique by appending .1, .2, ...
func normalizeHeaders(header []string) []string {
	out := make([]string, len(header))
	seen := make(map[string]bool, len(header))
	for i, h := range header {
		if i == 0 {
			h = strings.TrimPrefix(h, "\ufeff")
		}
		h = strings.TrimSpace(h)
		if h == "" {
			h = fmt.Sprintf("Column_%d", i+1)
		}
		name := h
		for n := 1; seen[name]; n++ {
			name = fmt.Sprintf("%s.%d", h, n)
		}
		seen[name] = true
		out[i] = name
	}
	return out
}

func isBlankRecord(record []string) bool {
	for _, f := range record {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}

func csvError(err error) error {
	var parseErr *csv.ParseError
	if stderrors.As(err, &parseErr) {
		return errors.WithCode(errors.CodeInvalidInput, err)
	}
	return errors.Wrap(err, "read csv")
}
