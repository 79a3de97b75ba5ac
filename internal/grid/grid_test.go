package grid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/localrank/internal/model"
)

var losAngeles = model.Coordinate{Latitude: 34.0522, Longitude: -118.2437}

func TestGenerate_SingleRing(t *testing.T) {
	g, err := Generate(losAngeles, []RingConfig{{RadiusM: 500, PointCount: 6}})
	require.NoError(t, err)

	require.Len(t, g.Rings, 1)
	require.Len(t, g.Rings[0].Points, 6)
	assert.Len(t, g.AllPoints, 7)

	// Bearings at exact 60 degree steps starting from 0.
	for i, p := range g.Rings[0].Points {
		assert.InDelta(t, float64(i)*60, p.BearingDeg, 1e-9)
		assert.Equal(t, 1, p.RingIndex)
		assert.Equal(t, i, p.PointIndex)
		assert.InDelta(t, 500, p.DistanceM, 1e-9)

		// Great-circle distance from center within 1 m of the ring radius.
		d := Haversine(losAngeles.Latitude, losAngeles.Longitude, p.Latitude, p.Longitude)
		assert.InDelta(t, 500, d, 1.0, "point %d", i)
	}

	// Due-north point sits at strictly greater latitude than the center.
	assert.Greater(t, g.Rings[0].Points[0].Latitude, losAngeles.Latitude)
}

func TestGenerate_CenterPoint(t *testing.T) {
	g, err := Generate(losAngeles, []RingConfig{{RadiusM: 1000, PointCount: 8}})
	require.NoError(t, err)

	assert.Equal(t, "center", g.Center.ID)
	assert.Equal(t, 0, g.Center.RingIndex)
	assert.Zero(t, g.Center.DistanceM)
	assert.Zero(t, g.Center.BearingDeg)
	assert.Equal(t, g.Center, g.AllPoints[0])
}

func TestGenerate_Deterministic(t *testing.T) {
	rings := []RingConfig{{RadiusM: 500, PointCount: 6}, {RadiusM: 1500, PointCount: 12}}
	a, err := Generate(losAngeles, rings)
	require.NoError(t, err)
	b, err := Generate(losAngeles, rings)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestGenerate_BoundsContainAllPoints(t *testing.T) {
	rings, err := Preset("wide")
	require.NoError(t, err)

	// High latitude center stresses the spherical math.
	g, err := Generate(model.Coordinate{Latitude: 64.1466, Longitude: -21.9426}, rings)
	require.NoError(t, err)

	for _, p := range g.AllPoints {
		assert.GreaterOrEqual(t, g.Bounds.North, p.Latitude)
		assert.LessOrEqual(t, g.Bounds.South, p.Latitude)
		assert.GreaterOrEqual(t, g.Bounds.East, p.Longitude)
		assert.LessOrEqual(t, g.Bounds.West, p.Longitude)
	}
}

func TestGenerate_PointCountInvariant(t *testing.T) {
	for _, name := range PresetNames() {
		rings, err := Preset(name)
		require.NoError(t, err)
		require.Len(t, rings, 7, name)

		g, err := Generate(losAngeles, rings)
		require.NoError(t, err)

		total := 1
		prevCount := 0
		prevRadius := 0.0
		for _, r := range g.Rings {
			assert.GreaterOrEqual(t, r.PointCount, prevCount, "%s: counts non-decreasing", name)
			assert.Greater(t, r.RadiusM, prevRadius, "%s: radii increasing", name)
			total += r.PointCount
			prevCount = r.PointCount
			prevRadius = r.RadiusM
		}
		assert.Len(t, g.AllPoints, total, name)
	}
}

func TestGenerate_RingDistances(t *testing.T) {
	rings, err := Preset("dense")
	require.NoError(t, err)
	g, err := Generate(losAngeles, rings)
	require.NoError(t, err)

	for _, r := range g.Rings {
		for _, p := range r.Points {
			d := Haversine(losAngeles.Latitude, losAngeles.Longitude, p.Latitude, p.Longitude)
			assert.InDelta(t, r.RadiusM, d, 1.0)
		}
	}
}

func TestGenerate_Validation(t *testing.T) {
	_, err := Generate(losAngeles, []RingConfig{{RadiusM: 0, PointCount: 6}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "radius_m")

	_, err = Generate(losAngeles, []RingConfig{{RadiusM: -100, PointCount: 6}})
	require.Error(t, err)

	_, err = Generate(losAngeles, []RingConfig{{RadiusM: 500, PointCount: 0}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "point_count")

	_, err = Generate(model.Coordinate{Latitude: 99, Longitude: 0}, []RingConfig{{RadiusM: 500, PointCount: 6}})
	require.Error(t, err)
}

func TestGenerate_StableIDs(t *testing.T) {
	g, err := Generate(losAngeles, []RingConfig{{RadiusM: 500, PointCount: 2}})
	require.NoError(t, err)

	assert.Equal(t, "r1p0", g.Rings[0].Points[0].ID)
	assert.Equal(t, "r1p1", g.Rings[0].Points[1].ID)
}

func TestPreset_Unknown(t *testing.T) {
	_, err := Preset("galactic")
	require.Error(t, err)
}

func TestRingLabel(t *testing.T) {
	assert.Equal(t, "500m", Ring{RadiusM: 500}.Label())
	assert.Equal(t, "1km", Ring{RadiusM: 1000}.Label())
	assert.Equal(t, "1.5km", Ring{RadiusM: 1500}.Label())
	assert.Equal(t, "15km", Ring{RadiusM: 15000}.Label())
	assert.Equal(t, "625m", Ring{RadiusM: 625}.Label())
}

func TestHaversine_KnownDistance(t *testing.T) {
	// LA to SF is roughly 559 km great-circle.
	d := Haversine(34.0522, -118.2437, 37.7749, -122.4194)
	assert.InDelta(t, 559000, d, 5000)
}
