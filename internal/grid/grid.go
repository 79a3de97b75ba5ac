// Package grid generates concentric rings of evenly-spaced sample points
// around a center, used to sample local-search visibility across an area.
package grid

import (
	"fmt"
	"math"

	"github.com/rotisserie/eris"

	"github.com/sells-group/localrank/internal/model"
)

// EarthRadiusM is the mean spherical Earth radius in meters.
const EarthRadiusM = 6371000.0

// RingConfig describes one ring: its radius and how many points to place on it.
type RingConfig struct {
	RadiusM    float64 `json:"radius_m" mapstructure:"radius_m"`
	PointCount int     `json:"point_count" mapstructure:"point_count"`
}

// Point is one sample point. Ring 0 is the single center point with distance
// and bearing 0. Immutable once generated.
type Point struct {
	ID         string  `json:"id"`
	Latitude   float64 `json:"latitude"`
	Longitude  float64 `json:"longitude"`
	RingIndex  int     `json:"ring_index"`
	PointIndex int     `json:"point_index"`
	DistanceM  float64 `json:"distance_m"`
	BearingDeg float64 `json:"bearing_deg"`
}

// Ring is one generated ring with its points in bearing order.
type Ring struct {
	Index      int     `json:"index"`
	RadiusM    float64 `json:"radius_m"`
	PointCount int     `json:"point_count"`
	Points     []Point `json:"points"`
}

// Label returns a human-readable radius label, "1.5km" at or above a
// kilometer, "500m" below.
func (r Ring) Label() string {
	return FormatDistance(r.RadiusM)
}

// BoundingBox is the min/max extent over all grid points.
type BoundingBox struct {
	North float64 `json:"north"`
	South float64 `json:"south"`
	East  float64 `json:"east"`
	West  float64 `json:"west"`
}

// Grid is the full sampling plan: the center, rings in increasing radius
// order, and the flattened point list (center first).
type Grid struct {
	Center    Point       `json:"center"`
	Rings     []Ring      `json:"rings"`
	AllPoints []Point     `json:"all_points"`
	Bounds    BoundingBox `json:"bounds"`
}

// Generate builds a grid around center from the given ring configs. Ring
// configs with non-positive radius or point count are rejected before any
// point is generated. Generation is pure and deterministic.
func Generate(center model.Coordinate, rings []RingConfig) (*Grid, error) {
	if !center.Valid() {
		return nil, eris.Errorf("grid: center out of range: %v, %v", center.Latitude, center.Longitude)
	}
	for i, rc := range rings {
		if rc.RadiusM <= 0 {
			return nil, eris.Errorf("grid: ring %d: radius_m must be positive, got %v", i, rc.RadiusM)
		}
		if rc.PointCount <= 0 {
			return nil, eris.Errorf("grid: ring %d: point_count must be positive, got %d", i, rc.PointCount)
		}
	}

	centerPoint := Point{
		ID:        "center",
		Latitude:  center.Latitude,
		Longitude: center.Longitude,
	}

	g := &Grid{
		Center:    centerPoint,
		Rings:     make([]Ring, 0, len(rings)),
		AllPoints: []Point{centerPoint},
	}

	for i, rc := range rings {
		ring := Ring{
			Index:      i + 1,
			RadiusM:    rc.RadiusM,
			PointCount: rc.PointCount,
			Points:     make([]Point, 0, rc.PointCount),
		}
		step := 360.0 / float64(rc.PointCount)
		for j := 0; j < rc.PointCount; j++ {
			bearing := float64(j) * step
			lat, lng := destination(center.Latitude, center.Longitude, bearing, rc.RadiusM)
			p := Point{
				ID:         fmt.Sprintf("r%dp%d", ring.Index, j),
				Latitude:   lat,
				Longitude:  lng,
				RingIndex:  ring.Index,
				PointIndex: j,
				DistanceM:  rc.RadiusM,
				BearingDeg: bearing,
			}
			ring.Points = append(ring.Points, p)
			g.AllPoints = append(g.AllPoints, p)
		}
		g.Rings = append(g.Rings, ring)
	}

	g.Bounds = bounds(g.AllPoints)
	return g, nil
}

// destination solves the forward geodesic problem on a sphere: the point at
// the given bearing and distance from (lat, lng). Exact spherical geometry,
// not a flat-earth approximation; ring radii reach 15 km and the
// bearing-dependent distortion at higher latitudes would visibly skew a
// planar grid.
func destination(lat, lng, bearingDeg, distanceM float64) (float64, float64) {
	phi1 := lat * math.Pi / 180
	lambda1 := lng * math.Pi / 180
	theta := bearingDeg * math.Pi / 180
	delta := distanceM / EarthRadiusM

	phi2 := math.Asin(math.Sin(phi1)*math.Cos(delta) +
		math.Cos(phi1)*math.Sin(delta)*math.Cos(theta))
	lambda2 := lambda1 + math.Atan2(
		math.Sin(theta)*math.Sin(delta)*math.Cos(phi1),
		math.Cos(delta)-math.Sin(phi1)*math.Sin(phi2))

	return phi2 * 180 / math.Pi, lambda2 * 180 / math.Pi
}

// bounds computes the bounding box by linear scan over all points.
func bounds(points []Point) BoundingBox {
	b := BoundingBox{
		North: points[0].Latitude,
		South: points[0].Latitude,
		East:  points[0].Longitude,
		West:  points[0].Longitude,
	}
	for _, p := range points[1:] {
		b.North = math.Max(b.North, p.Latitude)
		b.South = math.Min(b.South, p.Latitude)
		b.East = math.Max(b.East, p.Longitude)
		b.West = math.Min(b.West, p.Longitude)
	}
	return b
}

// Haversine returns the great-circle distance in meters between two points.
func Haversine(lat1, lng1, lat2, lng2 float64) float64 {
	phi1 := lat1 * math.Pi / 180
	phi2 := lat2 * math.Pi / 180
	dPhi := (lat2 - lat1) * math.Pi / 180
	dLambda := (lng2 - lng1) * math.Pi / 180

	a := math.Sin(dPhi/2)*math.Sin(dPhi/2) +
		math.Cos(phi1)*math.Cos(phi2)*math.Sin(dLambda/2)*math.Sin(dLambda/2)
	return EarthRadiusM * 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}

// FormatDistance renders meters as a ring overlay label.
func FormatDistance(meters float64) string {
	if meters >= 1000 {
		km := meters / 1000
		if km == math.Trunc(km) {
			return fmt.Sprintf("%.0fkm", km)
		}
		return fmt.Sprintf("%.1fkm", km)
	}
	return fmt.Sprintf("%.0fm", meters)
}
