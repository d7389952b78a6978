package geo

import (
	"fmt"

	"github.com/twpayne/go-polyline"

	"veloviz.transitdata.no/internal/models"
)

// DecodeRoutePolyline decodes a Google-encoded polyline string into
// [lat, lon] points.
func DecodeRoutePolyline(encoded string) ([]models.GeoPoint, error) {
	coords, _, err := polyline.DecodeCoords([]byte(encoded))
	if err != nil {
		return nil, fmt.Errorf("decode polyline: %w", err)
	}
	points := make([]models.GeoPoint, len(coords))
	for i, c := range coords {
		points[i] = models.GeoPoint{c[0], c[1]}
	}
	return points, nil
}

// OffsetRoute decodes an encoded route polyline and offsets it for display.
func (p Projection) OffsetRoute(encoded string, offsetMeters float64) ([]models.GeoPoint, error) {
	points, err := DecodeRoutePolyline(encoded)
	if err != nil {
		return nil, err
	}
	return p.OffsetPath(points, offsetMeters), nil
}
