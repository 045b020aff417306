package ui

import (
	"malariadash/internal/summary"
)

// UploadPage is rendered when the session has no table yet, or an upload failed.
type UploadPage struct {
	Error    string
	MaxBytes int64
}

// DisplayData is everything the dashboard page shows for one table.
type DisplayData struct {
	FileName   string
	FileSize   int64
	UploadedAt string

	Columns []string
	Preview [][]string
	Rows    [][]string

	Summary    summary.Dashboard
	Charts     ChartData
	Operations []string
}

// ResultPage shows the outcome of a column calculation.
type ResultPage struct {
	Operation string
	Results   []summary.CalculationResult
	Errors    []string
	FileName  string
	Timestamp string
}

// APIResponse is the envelope every JSON endpoint returns.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
	Code    string      `json:"code,omitempty"`
}

// SchemaInfo describes a decoded upload without keeping it.
type SchemaInfo struct {
	FileName       string   `json:"fileName"`
	Rows           int      `json:"rows"`
	Columns        []string `json:"columns"`
	NumericColumns []string `json:"numericColumns"`
	Recognized     []string `json:"recognized"`
}

// SummaryResponse is the JSON form of a session's dashboard.
type SummaryResponse struct {
	FileName string            `json:"fileName"`
	Summary  summary.Dashboard `json:"summary"`
}
