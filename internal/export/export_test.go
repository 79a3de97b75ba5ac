package export

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/localrank/internal/grid"
	"github.com/sells-group/localrank/internal/model"
)

func sampleAnalysis() *model.Analysis {
	return &model.Analysis{
		ID:       "a1",
		Location: "Los Angeles",
		Target:   model.TargetDescriptor{Name: "Acme Plumbing"},
		Keywords: []model.KeywordResult{
			{
				Keyword: "plumber",
				Results: []model.BusinessResult{
					{ID: "x", Name: "Apex Plumbing", Address: "123 Main St", Rating: 4.6, ReviewCount: 212, Rank: 1, VisibilityScore: 86, Difficulty: model.DifficultyLow},
					{ID: "y", Name: "Acme Plumbing", Rating: 4.1, ReviewCount: 9, Rank: 2, VisibilityScore: 74, Difficulty: model.DifficultyLow, IsTarget: true},
				},
			},
		},
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, sampleAnalysis()))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3, "header plus two rows")
	assert.Equal(t, "keyword,rank,name,address,rating,reviews,visibility,difficulty,is_target", lines[0])
	assert.Contains(t, lines[1], "Apex Plumbing")
	assert.Contains(t, lines[2], "true")
}

func TestWriteXLSX(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, sampleAnalysis()))
	assert.NotZero(t, buf.Len())
	// XLSX files are zip archives.
	assert.Equal(t, "PK", buf.String()[:2])
}

func TestSheetName(t *testing.T) {
	assert.Equal(t, "plumber", sheetName("plumber"))
	long := strings.Repeat("x", 40)
	assert.Len(t, sheetName(long), 31)
}

func TestWriteGridGeoJSON(t *testing.T) {
	g, err := grid.Generate(model.Coordinate{Latitude: 34.0522, Longitude: -118.2437},
		[]grid.RingConfig{{RadiusM: 500, PointCount: 6}})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteGridGeoJSON(&buf, g))

	var fc struct {
		Type     string `json:"type"`
		Features []struct {
			Geometry struct {
				Type string `json:"type"`
			} `json:"geometry"`
			Properties map[string]any `json:"properties"`
		} `json:"features"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &fc))

	assert.Equal(t, "FeatureCollection", fc.Type)
	require.Len(t, fc.Features, 8, "7 points plus the bounding box")
	assert.Equal(t, "Point", fc.Features[0].Geometry.Type)
	assert.Equal(t, "Polygon", fc.Features[7].Geometry.Type)
	assert.Equal(t, "500m", fc.Features[1].Properties["label"])
}
