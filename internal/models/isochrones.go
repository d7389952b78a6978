package models

// GeoPoint is an ordered [latitude, longitude] pair, the unit consumed and
// produced by the polyline offset transform.
type GeoPoint [2]float64

func (p GeoPoint) Lat() float64 { return p[0] }
func (p GeoPoint) Lon() float64 { return p[1] }

// IsochroneStation is a station with precomputed reachability polygons.
type IsochroneStation struct {
	ID   string  `json:"id"`
	Name string  `json:"name"`
	Lat  float64 `json:"lat"`
	Lon  float64 `json:"lon"`
}

// PolygonGeometry is a GeoJSON-Polygon-shaped geometry: one outer ring plus
// optional holes, each ring a sequence of [lon, lat] positions.
type PolygonGeometry struct {
	Type        string        `json:"type"`
	Coordinates [][][]float64 `json:"coordinates"`
}

// IsochronesDataset joins decoded station rows, polygon rows and the
// metadata sidecar. Polygons maps station id to time band (stringified
// minutes) to geometry.
type IsochronesDataset struct {
	Stations     []IsochroneStation
	TimeBandsMin []int
	Polygons     map[string]map[string]PolygonGeometry
}
