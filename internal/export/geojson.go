package export

import (
	"io"

	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/geojson"

	"github.com/sells-group/localrank/internal/grid"
)

// WriteGridGeoJSON writes the grid as a GeoJSON FeatureCollection: one point
// feature per sample point plus a polygon feature for the bounding box, for
// the map-rendering collaborator.
func WriteGridGeoJSON(w io.Writer, g *grid.Grid) error {
	features := make([]*geojson.Feature, 0, len(g.AllPoints)+1)

	for _, p := range g.AllPoints {
		features = append(features, &geojson.Feature{
			ID:       p.ID,
			Geometry: geom.NewPointFlat(geom.XY, []float64{p.Longitude, p.Latitude}),
			Properties: map[string]any{
				"ring":        p.RingIndex,
				"point":       p.PointIndex,
				"distance_m":  p.DistanceM,
				"bearing_deg": p.BearingDeg,
				"label":       grid.FormatDistance(p.DistanceM),
			},
		})
	}

	b := g.Bounds
	bbox := geom.NewPolygonFlat(geom.XY, []float64{
		b.West, b.South,
		b.East, b.South,
		b.East, b.North,
		b.West, b.North,
		b.West, b.South,
	}, []int{10})
	features = append(features, &geojson.Feature{
		ID:         "bounds",
		Geometry:   bbox,
		Properties: map[string]any{"kind": "bounding_box"},
	})

	fc := &geojson.FeatureCollection{Features: features}
	data, err := fc.MarshalJSON()
	if err != nil {
		return eris.Wrap(err, "export: marshal geojson")
	}
	if _, err := w.Write(data); err != nil {
		return eris.Wrap(err, "export: write geojson")
	}
	return nil
}
