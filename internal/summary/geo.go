package summary

import (
	"gonum.org/v1/gonum/floats"
)

// Bounds is the bounding box of the plottable geo points.
type Bounds struct {
	MinLat    float64 `json:"minLat"`
	MinLon    float64 `json:"minLon"`
	MaxLat    float64 `json:"maxLat"`
	MaxLon    float64 `json:"maxLon"`
	CenterLat float64 `json:"centerLat"`
	CenterLon float64 `json:"centerLon"`
	// Plotted counts the points with numeric, in-range coordinates.
	Plotted int `json:"plotted"`
}

// Plottable reports whether a point can be drawn on a map.
func Plottable(p GeoPoint) (lat, lon float64, ok bool) {
	lat, lon, ok = p.Coordinates()
	if !ok {
		return 0, 0, false
	}
	if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		return 0, 0, false
	}
	return lat, lon, true
}

// BoundsOf computes the box around the plottable points; ok is false when none are.
func BoundsOf(points []GeoPoint) (Bounds, bool) {
	lats := make([]float64, 0, len(points))
	lons := make([]float64, 0, len(points))
	for _, p := range points {
		lat, lon, ok := Plottable(p)
		if !ok {
			continue
		}
		lats = append(lats, lat)
		lons = append(lons, lon)
	}
	if len(lats) == 0 {
		return Bounds{}, false
	}

	b := Bounds{
		MinLat:  floats.Min(lats),
		MaxLat:  floats.Max(lats),
		MinLon:  floats.Min(lons),
		MaxLon:  floats.Max(lons),
		Plotted: len(lats),
	}
	b.CenterLat = (b.MinLat + b.MaxLat) / 2
	b.CenterLon = (b.MinLon + b.MaxLon) / 2
	return b, true
}
