package export

// Narrow structural views of the routing API cache records. The cached
// response is a large nested object; only the fields the exporter actually
// consumes are modeled, and loosely typed fields stay `any` so one odd
// record cannot fail the batch.

type cachedPair struct {
	OriginID any            `json:"origin_id"`
	DestID   any            `json:"dest_id"`
	Response cachedResponse `json:"response"`
}

type cachedResponse struct {
	Routes []cachedRoute `json:"routes"`
}

type cachedRoute struct {
	Duration       any             `json:"duration"`
	DistanceMeters any             `json:"distanceMeters"`
	Polyline       *cachedPolyline `json:"polyline"`
	Legs           []cachedLeg     `json:"legs"`
}

type cachedLeg struct {
	Duration       any             `json:"duration"`
	DistanceMeters any             `json:"distanceMeters"`
	Polyline       *cachedPolyline `json:"polyline"`
	StartLocation  *cachedLocation `json:"startLocation"`
	EndLocation    *cachedLocation `json:"endLocation"`
}

type cachedPolyline struct {
	EncodedPolyline string `json:"encodedPolyline"`
}

type cachedLocation struct {
	LatLng *cachedLatLng `json:"latLng"`
}

type cachedLatLng struct {
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

func (r *cachedRoute) firstLeg() *cachedLeg {
	if len(r.Legs) == 0 {
		return nil
	}
	return &r.Legs[0]
}
