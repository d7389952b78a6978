package export

import (
	"regexp"
	"strconv"

	"veloviz.transitdata.no/internal/models"
	"veloviz.transitdata.no/internal/utils"
)

var durationPattern = regexp.MustCompile(`^(\d+)s$`)

// ParseDurationSeconds extracts whole seconds from a routing API duration
// string of the form "600s". Anything else - absent values, non-strings,
// fractional or malformed strings - yields nil. It never panics.
func ParseDurationSeconds(v any) *int64 {
	s, ok := v.(string)
	if !ok {
		return nil
	}
	m := durationPattern.FindStringSubmatch(s)
	if m == nil {
		return nil
	}
	n, err := strconv.ParseInt(m[1], 10, 64)
	if err != nil {
		return nil
	}
	return &n
}

// A fieldAccessor reads one candidate location for a route-level field.
// A nil result means the field is absent there.
type fieldAccessor func(r *cachedRoute) any

// Field precedence is fixed: the route-level value wins, the first leg is
// the fallback. Kept as explicit ordered lists so the order is testable.
var (
	durationAccessors = []fieldAccessor{
		func(r *cachedRoute) any { return r.Duration },
		func(r *cachedRoute) any {
			if leg := r.firstLeg(); leg != nil {
				return leg.Duration
			}
			return nil
		},
	}

	distanceAccessors = []fieldAccessor{
		func(r *cachedRoute) any { return r.DistanceMeters },
		func(r *cachedRoute) any {
			if leg := r.firstLeg(); leg != nil {
				return leg.DistanceMeters
			}
			return nil
		},
	}

	polylineAccessors = []fieldAccessor{
		func(r *cachedRoute) any { return encodedPolylineOf(r.Polyline) },
		func(r *cachedRoute) any {
			if leg := r.firstLeg(); leg != nil {
				return encodedPolylineOf(leg.Polyline)
			}
			return nil
		},
	}
)

func encodedPolylineOf(p *cachedPolyline) any {
	if p == nil || p.EncodedPolyline == "" {
		return nil
	}
	return p.EncodedPolyline
}

func firstPresent(r *cachedRoute, accessors []fieldAccessor) any {
	for _, acc := range accessors {
		if v := acc(r); v != nil {
			return v
		}
	}
	return nil
}

// normalized is the intermediate record both dataset builders derive from.
type normalized struct {
	originID        string
	destID          string
	durationSec     *int64
	distanceM       *float64
	encodedPolyline *string
	route           *cachedRoute
}

// normalizeRecord resolves the consumed fields of a cached pair. It reports
// false when the record carries no routes, which callers skip silently.
func normalizeRecord(raw *cachedPair) (*normalized, bool) {
	if len(raw.Response.Routes) == 0 {
		return nil, false
	}
	route := &raw.Response.Routes[0]

	n := &normalized{
		originID: utils.ToStringFallback(raw.OriginID, ""),
		destID:   utils.ToStringFallback(raw.DestID, ""),
		route:    route,
	}

	n.durationSec = ParseDurationSeconds(firstPresent(route, durationAccessors))
	if v := firstPresent(route, distanceAccessors); v != nil {
		if f, err := utils.ToFloat(v); err == nil {
			n.distanceM = &f
		}
	}
	if v := firstPresent(route, polylineAccessors); v != nil {
		if s, ok := v.(string); ok {
			n.encodedPolyline = &s
		}
	}
	return n, true
}

// buildSlim produces the compact per-pair record.
func buildSlim(n *normalized) models.SlimRoute {
	return models.SlimRoute{
		OriginID:        n.originID,
		DestID:          n.destID,
		DurationSec:     n.durationSec,
		DistanceM:       n.distanceM,
		EncodedPolyline: n.encodedPolyline,
	}
}

// buildMedium produces the per-leg breakdown. Leg polylines fall back to an
// empty string, not null; that asymmetry with the slim format is deliberate.
func buildMedium(n *normalized) models.MediumRoute {
	route := n.route
	m := models.MediumRoute{
		OriginID:    n.originID,
		DestID:      n.destID,
		DurationSec: n.durationSec,
		DistanceM:   n.distanceM,
		Legs:        make([]models.RouteLeg, 0, len(route.Legs)),
	}

	if first := route.firstLeg(); first != nil && first.StartLocation != nil && first.StartLocation.LatLng != nil {
		m.StartLat = first.StartLocation.LatLng.Latitude
		m.StartLon = first.StartLocation.LatLng.Longitude
	}

	for i := range route.Legs {
		leg := &route.Legs[i]
		out := models.RouteLeg{
			DurationSec: ParseDurationSeconds(leg.Duration),
		}
		if leg.EndLocation != nil && leg.EndLocation.LatLng != nil {
			out.EndLat = leg.EndLocation.LatLng.Latitude
			out.EndLon = leg.EndLocation.LatLng.Longitude
		}
		if leg.DistanceMeters != nil {
			if f, err := utils.ToFloat(leg.DistanceMeters); err == nil {
				out.DistanceM = &f
			}
		}
		if s, ok := encodedPolylineOf(leg.Polyline).(string); ok {
			out.EncodedPolyline = s
		}
		m.Legs = append(m.Legs, out)
	}
	return m
}
