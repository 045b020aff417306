package ui

import (
	"malariadash/internal/summary"
)

// ChartData is serialised into the dashboard page for the client-side charts and map.
type ChartData struct {
	Bar  *BarChart  `json:"bar,omitempty"`
	Line *LineChart `json:"line,omitempty"`
	Map  *MapData   `json:"map,omitempty"`
}

type BarChart struct {
	Title  string    `json:"title"`
	Labels []string  `json:"labels"`
	Values []float64 `json:"values"`
}

type LineChart struct {
	Title    string        `json:"title"`
	Labels   []string      `json:"labels"`
	Datasets []LineDataset `json:"datasets"`
}

type LineDataset struct {
	Label  string      `json:"label"`
	Points []LinePoint `json:"data"`
}

type LinePoint struct {
	X string  `json:"x"`
	Y float64 `json:"y"`
}

type MapData struct {
	Points  []MapPoint      `json:"points"`
	Bounds  *summary.Bounds `json:"bounds,omitempty"`
	Skipped int             `json:"skipped"`
}

type MapPoint struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

const (
	regionChartTitle  = "Malaria Cases by Region"
	monthlyChartTitle = "Monthly Malaria Trends"
	unlabelled        = "N/A"
)

// buildCharts turns the dashboard's series into chart payloads.
func buildCharts(d summary.Dashboard) ChartData {
	var c ChartData
	if d.HasRegionChart {
		c.Bar = buildBar(d.CasesByRegion)
	}
	if d.HasMonthlyChart {
		c.Line = buildLine(d.Monthly, d.MonthlyByRegion)
	}
	if d.HasMap {
		c.Map = buildMap(d.GeoPoints, d.MapBounds)
	}
	return c
}

func buildBar(totals []summary.RegionTotal) *BarChart {
	bar := &BarChart{
		Title:  regionChartTitle,
		Labels: make([]string, len(totals)),
		Values: make([]float64, len(totals)),
	}
	for i, rt := range totals {
		bar.Labels[i] = rt.Region
		bar.Values[i] = rt.Cases
	}
	return bar
}

// buildLine groups the monthly rows into one dataset per region, keeping row
// order within each dataset. Rows without a month or a numeric case count are skipped.
func buildLine(points []summary.MonthlyPoint, byRegion bool) *LineChart {
	line := &LineChart{Title: monthlyChartTitle}
	seenMonth := make(map[string]bool)
	index := make(map[string]int)

	for _, p := range points {
		if p.Month.IsMissing() {
			continue
		}
		cases, ok := p.Cases.Float()
		if !ok {
			continue
		}
		month := p.Month.String()
		if !seenMonth[month] {
			seenMonth[month] = true
			line.Labels = append(line.Labels, month)
		}

		label := "cases"
		if byRegion {
			label = p.Region.String()
			if p.Region.IsMissing() {
				label = unlabelled
			}
		}
		i, ok := index[label]
		if !ok {
			i = len(line.Datasets)
			index[label] = i
			line.Datasets = append(line.Datasets, LineDataset{Label: label})
		}
		line.Datasets[i].Points = append(line.Datasets[i].Points, LinePoint{X: month, Y: cases})
	}
	return line
}

func buildMap(points []summary.GeoPoint, bounds *summary.Bounds) *MapData {
	m := &MapData{Points: make([]MapPoint, 0, len(points)), Bounds: bounds}
	for _, p := range points {
		lat, lon, ok := summary.Plottable(p)
		if !ok {
			m.Skipped++
			continue
		}
		m.Points = append(m.Points, MapPoint{Lat: lat, Lon: lon})
	}
	return m
}
