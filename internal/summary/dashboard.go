package summary

import (
	"malariadash/internal/table"
)

// Dashboard bundles every derived statistic for one table.
type Dashboard struct {
	Columns        []string `json:"columns"`
	NumericColumns []string `json:"numericColumns"`

	TotalRecords int    `json:"totalRecords"`
	TotalCases   Metric `json:"totalCases"`
	RegionCount  Metric `json:"regionCount"`

	CasesByRegion   []RegionTotal  `json:"casesByRegion,omitempty"`
	HasRegionChart  bool           `json:"hasRegionChart"`
	Monthly         []MonthlyPoint `json:"monthly,omitempty"`
	HasMonthlyChart bool           `json:"hasMonthlyChart"`
	// MonthlyByRegion is set when the trend chart should draw one line per region.
	MonthlyByRegion bool `json:"monthlyByRegion"`

	GeoPoints []GeoPoint `json:"geoPoints,omitempty"`
	HasMap    bool       `json:"hasMap"`
	MapBounds *Bounds    `json:"mapBounds,omitempty"`
}

// Summarize computes the whole dashboard from t.
func Summarize(t *table.Table) Dashboard {
	d := Dashboard{
		Columns:        t.Schema().Columns(),
		NumericColumns: NumericColumns(t),
		TotalRecords:   TotalRecords(t),
		TotalCases:     TotalCases(t),
		RegionCount:    RegionCount(t),
	}

	d.CasesByRegion, d.HasRegionChart = CasesByRegion(t)
	d.Monthly, d.HasMonthlyChart = MonthlySeries(t)
	d.MonthlyByRegion = d.HasMonthlyChart && t.Schema().Has(table.ColRegion)

	d.GeoPoints, d.HasMap = GeoPoints(t)
	if b, ok := BoundsOf(d.GeoPoints); ok {
		d.MapBounds = &b
	}
	return d
}
