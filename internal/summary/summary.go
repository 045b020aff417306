// Package summary derives the dashboard statistics from an uploaded table.
//
// Every function takes the table as an argument and only reads it. A statistic
// whose columns are missing from the schema is reported as unavailable rather
// than as an error.
package summary

import (
	"encoding/json"
	"math"
	"sort"
	"strconv"

	"github.com/montanaflynn/stats"

	"malariadash/internal/table"
)

// NotAvailable is shown in place of a statistic whose columns are missing.
const NotAvailable = "N/A"

// Metric is an optional number.
type Metric struct {
	Value     float64
	Available bool
	// Skipped counts non-numeric cells left out of a sum.
	Skipped int
}

func available(v float64) Metric { return Metric{Value: v, Available: true} }

// String renders the metric for display: whole numbers without decimals,
// fractions to two places, NotAvailable when unavailable.
func (m Metric) String() string {
	if !m.Available {
		return NotAvailable
	}
	return FormatNumber(m.Value)
}

func (m Metric) MarshalJSON() ([]byte, error) {
	out := struct {
		Available bool     `json:"available"`
		Value     *float64 `json:"value"`
		Display   string   `json:"display"`
		Skipped   int      `json:"skipped,omitempty"`
	}{Available: m.Available, Display: m.String(), Skipped: m.Skipped}
	if m.Available {
		v := m.Value
		out.Value = &v
	}
	return json.Marshal(out)
}

// FormatNumber prints whole numbers without decimals and everything else to two places.
func FormatNumber(v float64) string {
	if v == math.Trunc(v) && math.Abs(v) < 1e15 {
		return strconv.FormatInt(int64(v), 10)
	}
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// RegionTotal is one bar of the cases-by-region chart.
type RegionTotal struct {
	Region string  `json:"region"`
	Cases  float64 `json:"cases"`
}

// MonthlyPoint is one row projected for the monthly trend chart. Region is
// Missing when the table has no region column.
type MonthlyPoint struct {
	Month  table.Value `json:"month"`
	Cases  table.Value `json:"cases"`
	Region table.Value `json:"region"`
}

// GeoPoint is one latitude/longitude pair exactly as it appeared in the table.
type GeoPoint struct {
	Latitude  table.Value `json:"latitude"`
	Longitude table.Value `json:"longitude"`
}

// Coordinates returns the pair as numbers; ok is false if either cell is not numeric.
func (p GeoPoint) Coordinates() (lat, lon float64, ok bool) {
	lat, latOK := p.Latitude.Float()
	lon, lonOK := p.Longitude.Float()
	return lat, lon, latOK && lonOK
}

// TotalRecords returns the number of rows.
func TotalRecords(t *table.Table) int {
	return t.Len()
}

// TotalCases sums the cases column. Missing cells are ignored; non-numeric
// cells are ignored and counted in Skipped. A present but empty column sums to 0.
func TotalCases(t *table.Table) Metric {
	if !t.Schema().Has(table.ColCases) {
		return Metric{}
	}
	values, skipped := numbers(t.Column(table.ColCases))
	m := available(sum(values))
	m.Skipped = skipped
	return m
}

// RegionCount counts the distinct non-missing values of the region column.
func RegionCount(t *table.Table) Metric {
	if !t.Schema().Has(table.ColRegion) {
		return Metric{}
	}
	seen := make(map[string]struct{})
	for _, v := range t.Column(table.ColRegion) {
		if v.IsMissing() {
			continue
		}
		seen[key(v)] = struct{}{}
	}
	return available(float64(len(seen)))
}

// CasesByRegion sums cases per region, ordered by region label. Rows without a
// region are left out. ok is false unless both columns exist.
func CasesByRegion(t *table.Table) ([]RegionTotal, bool) {
	if !t.Schema().Has(table.ColRegion, table.ColCases) {
		return nil, false
	}

	groups := make(map[string][]float64)
	labels := make(map[string]string)
	for _, row := range t.Rows() {
		region := row.Get(table.ColRegion)
		if region.IsMissing() {
			continue
		}
		k := key(region)
		if _, ok := labels[k]; !ok {
			labels[k] = region.String()
			groups[k] = nil
		}
		if f, ok := row.Get(table.ColCases).Float(); ok {
			groups[k] = append(groups[k], f)
		}
	}

	out := make([]RegionTotal, 0, len(groups))
	for k, values := range groups {
		out = append(out, RegionTotal{Region: labels[k], Cases: sum(values)})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Region < out[j].Region })
	return out, true
}

// MonthlySeries projects month, cases and, when present, region from every
// row in input order. ok is false unless month and cases exist.
func MonthlySeries(t *table.Table) ([]MonthlyPoint, bool) {
	if !t.Schema().Has(table.ColMonth, table.ColCases) {
		return nil, false
	}
	rows := t.Rows()
	out := make([]MonthlyPoint, len(rows))
	for i, row := range rows {
		out[i] = MonthlyPoint{
			Month:  row.Get(table.ColMonth),
			Cases:  row.Get(table.ColCases),
			Region: row.Get(table.ColRegion),
		}
	}
	return out, true
}

// GeoPoints returns the latitude/longitude pairs unchanged and in input order.
// ok is false unless both columns exist.
func GeoPoints(t *table.Table) ([]GeoPoint, bool) {
	if !t.Schema().Has(table.ColLatitude, table.ColLongitude) {
		return nil, false
	}
	rows := t.Rows()
	out := make([]GeoPoint, len(rows))
	for i, row := range rows {
		out[i] = GeoPoint{
			Latitude:  row.Get(table.ColLatitude),
			Longitude: row.Get(table.ColLongitude),
		}
	}
	return out, true
}

func numbers(values []table.Value) (out []float64, skipped int) {
	out = make([]float64, 0, len(values))
	for _, v := range values {
		switch v.Kind() {
		case table.Number:
			f, _ := v.Float()
			out = append(out, f)
		case table.String:
			skipped++
		}
	}
	return out, skipped
}

func sum(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	s, err := stats.Sum(values)
	if err != nil {
		return 0
	}
	return s
}

// key identifies a category value so that "1" and "1.0" fall in the same group.
func key(v table.Value) string {
	if f, ok := v.Float(); ok {
		return "n:" + strconv.FormatFloat(f, 'g', -1, 64)
	}
	return "s:" + v.String()
}
