package models

// SlimRoute is the compact per-pair route record served to the map client.
// Nullable fields stay pointers so absent values serialize as JSON null
// rather than zero values.
type SlimRoute struct {
	OriginID        string   `json:"origin_id"`
	DestID          string   `json:"dest_id"`
	DurationSec     *int64   `json:"duration_sec"`
	DistanceM       *float64 `json:"distance_m"`
	EncodedPolyline *string  `json:"encodedPolyline"`
}

// RouteLeg is one leg of a medium route. EncodedPolyline is an empty string
// when absent, never null; medium consumers index into it without checking.
type RouteLeg struct {
	EndLat          *float64 `json:"end_lat"`
	EndLon          *float64 `json:"end_lon"`
	DistanceM       *float64 `json:"distance_m"`
	DurationSec     *int64   `json:"duration_sec"`
	EncodedPolyline string   `json:"encodedPolyline"`
}

// MediumRoute extends SlimRoute with the route origin and a per-leg
// breakdown. Legs belong exclusively to their route.
type MediumRoute struct {
	OriginID    string     `json:"origin_id"`
	DestID      string     `json:"dest_id"`
	DurationSec *int64     `json:"duration_sec"`
	DistanceM   *float64   `json:"distance_m"`
	StartLat    *float64   `json:"start_lat"`
	StartLon    *float64   `json:"start_lon"`
	Legs        []RouteLeg `json:"legs"`
}

// RouteList is the payload stored under the envelope's data key in
// routes.json.
type RouteList struct {
	Routes []SlimRoute `json:"routes"`
}

// MediumRouteList is the routes_medium.json payload.
type MediumRouteList struct {
	Routes []MediumRoute `json:"routes"`
}
