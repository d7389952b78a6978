package geo

import (
	"math"

	"veloviz.transitdata.no/internal/models"
)

// Projection carries the local meters-per-degree calibration for the region
// the data covers. These are deployment constants, not universal: the
// longitude figure shrinks with latitude.
type Projection struct {
	MetersPerDegLat float64
	MetersPerDegLon float64
}

// OsloProjection suits ~60°N: 1 deg lat ≈ 111 km, 1 deg lon ≈ 55 km.
var OsloProjection = Projection{MetersPerDegLat: 111000, MetersPerDegLon: 55000}

// OffsetPath shifts each point perpendicular to the local path direction by
// offsetMeters, so two opposing routes between the same endpoints render as
// parallel lines instead of overlapping. The result has the same length as
// the input and never aliases it. Fewer than two points come back as a
// structural copy, unchanged.
func (p Projection) OffsetPath(points []models.GeoPoint, offsetMeters float64) []models.GeoPoint {
	out := make([]models.GeoPoint, len(points))
	copy(out, points)
	if len(points) < 2 {
		return out
	}

	minPerDeg := math.Min(p.MetersPerDegLat, p.MetersPerDegLon)
	offsetDeg := offsetMeters / minPerDeg

	for i := range points {
		var dx, dy float64
		switch {
		case i == 0:
			dx = points[1].Lon() - points[0].Lon()
			dy = points[1].Lat() - points[0].Lat()
		case i == len(points)-1:
			dx = points[i].Lon() - points[i-1].Lon()
			dy = points[i].Lat() - points[i-1].Lat()
		default:
			// Centered difference across the neighbors, not two one-sided
			// differences averaged.
			dx = points[i+1].Lon() - points[i-1].Lon()
			dy = points[i+1].Lat() - points[i-1].Lat()
		}

		length := math.Sqrt(dx*dx + dy*dy)
		if length == 0 {
			// Duplicate adjacent points: no direction, so no offset.
			length = 1
		}

		out[i] = models.GeoPoint{
			points[i].Lat() + (-dx/length)*offsetDeg,
			points[i].Lon() + (dy/length)*offsetDeg,
		}
	}
	return out
}
