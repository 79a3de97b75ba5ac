package analysis

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/localrank/internal/grid"
	"github.com/sells-group/localrank/internal/model"
	"github.com/sells-group/localrank/internal/resolve"
	"github.com/sells-group/localrank/pkg/places"
)

// fakeSearch serves canned results keyed by keyword and counts calls.
type fakeSearch struct {
	mu        sync.Mutex
	byKeyword map[string][]places.Business
	err       error
	calls     int
}

func (f *fakeSearch) NearbySearch(_ context.Context, keyword string, _, _, _ float64) ([]places.Business, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	return f.byKeyword[keyword], nil
}

func (f *fakeSearch) Geocode(context.Context, string) (*places.GeocodeResult, error) {
	return nil, nil
}

func defaultFilter() model.FilterConfig {
	return model.FilterConfig{MaxResults: 20, SortBy: model.SortByRelevance}
}

func newAnalyzer(search places.Client) *Analyzer {
	return New(resolve.New(nil, nil, nil), search)
}

func TestRun_SingleKeyword(t *testing.T) {
	search := &fakeSearch{byKeyword: map[string][]places.Business{
		"plumber": {
			{PlaceID: "a", Name: "Apex Plumbing", Rating: 4.6, ReviewCount: 100},
			{PlaceID: "b", Name: "Target Plumbing Co", Rating: 4.2, ReviewCount: 80},
		},
	}}

	a := newAnalyzer(search)
	result, err := a.Run(context.Background(), Request{
		Location: "34.0522,-118.2437",
		Keywords: []string{"plumber"},
		Target:   model.TargetDescriptor{Name: "Target Plumbing Co"},
		Filter:   defaultFilter(),
	})

	require.NoError(t, err)
	assert.Equal(t, "coordinates", result.Resolved.SourceStrategy)
	require.Len(t, result.Keywords, 1)

	kr := result.Keywords[0]
	assert.Equal(t, 2, kr.TargetRank)
	assert.Equal(t, 74, kr.TargetVisibility)
	assert.InDelta(t, 74, result.AvgTargetVisibility, 1e-9)
}

func TestRun_MultiKeywordAverage(t *testing.T) {
	search := &fakeSearch{byKeyword: map[string][]places.Business{
		"plumber": {{PlaceID: "t", Name: "Acme"}},
		"drain repair": {
			{PlaceID: "x", Name: "Other"},
			{PlaceID: "t", Name: "Acme"},
		},
	}}

	a := newAnalyzer(search)
	result, err := a.Run(context.Background(), Request{
		Location: "Seattle",
		Keywords: []string{"plumber", "drain repair"},
		Target:   model.TargetDescriptor{Name: "Acme", ExternalRef: "t"},
		Filter:   defaultFilter(),
	})

	require.NoError(t, err)
	require.Len(t, result.Keywords, 2)
	assert.Equal(t, 1, result.Keywords[0].TargetRank)
	assert.Equal(t, 2, result.Keywords[1].TargetRank)
	assert.InDelta(t, (86+74)/2.0, result.AvgTargetVisibility, 1e-9)
}

func TestRun_EmptyResultsSynthesizeTarget(t *testing.T) {
	search := &fakeSearch{byKeyword: map[string][]places.Business{}}

	a := newAnalyzer(search)
	result, err := a.Run(context.Background(), Request{
		Location: "Denver",
		Keywords: []string{"locksmith"},
		Target:   model.TargetDescriptor{Name: "Acme Locks"},
		Filter:   defaultFilter(),
	})

	require.NoError(t, err)
	kr := result.Keywords[0]
	require.Len(t, kr.Results, 1)
	assert.True(t, kr.Results[0].IsTarget)
	assert.Equal(t, 1, kr.TargetRank)
}

func TestRun_QuotaErrorPropagates(t *testing.T) {
	search := &fakeSearch{err: places.ErrOverQueryLimit}

	a := newAnalyzer(search)
	_, err := a.Run(context.Background(), Request{
		Location: "Denver",
		Keywords: []string{"locksmith"},
		Target:   model.TargetDescriptor{Name: "Acme Locks"},
		Filter:   defaultFilter(),
	})

	require.Error(t, err)
	assert.True(t, places.IsQuotaOrAuth(err), "quota errors surface as a distinct category")
}

func TestRun_Validation(t *testing.T) {
	a := newAnalyzer(&fakeSearch{})

	_, err := a.Run(context.Background(), Request{
		Location: "Denver",
		Target:   model.TargetDescriptor{Name: "Acme"},
		Filter:   defaultFilter(),
	})
	assert.Error(t, err, "keywords required")

	_, err = a.Run(context.Background(), Request{
		Location: "Denver",
		Keywords: []string{"plumber"},
		Filter:   defaultFilter(),
	})
	assert.Error(t, err, "target required")
}

func TestScan_GridSampling(t *testing.T) {
	search := &fakeSearch{byKeyword: map[string][]places.Business{
		"cafe": {
			{PlaceID: "other", Name: "Other Cafe"},
			{PlaceID: "t", Name: "Target Cafe"},
		},
	}}

	a := newAnalyzer(search)
	result, err := a.Scan(context.Background(), ScanRequest{
		Location: "34.0522,-118.2437",
		Keyword:  "cafe",
		Target:   model.TargetDescriptor{Name: "Target Cafe", ExternalRef: "t"},
		Rings:    []grid.RingConfig{{RadiusM: 500, PointCount: 6}},
	})

	require.NoError(t, err)
	require.Len(t, result.Points, 7, "center plus one ring of six")
	assert.Equal(t, 7, search.calls)

	for _, pr := range result.Points {
		assert.True(t, pr.Found)
		assert.Equal(t, 2, pr.TargetRank)
		assert.Equal(t, 74, pr.Visibility)
	}
}

func TestScan_QuotaAborts(t *testing.T) {
	search := &fakeSearch{err: places.ErrRequestDenied}

	a := newAnalyzer(search)
	_, err := a.Scan(context.Background(), ScanRequest{
		Location: "Denver",
		Keyword:  "cafe",
		Target:   model.TargetDescriptor{Name: "Target Cafe"},
		Rings:    []grid.RingConfig{{RadiusM: 500, PointCount: 4}},
	})

	require.Error(t, err)
	assert.True(t, places.IsQuotaOrAuth(err))
}

func TestScan_DefaultPreset(t *testing.T) {
	search := &fakeSearch{byKeyword: map[string][]places.Business{}}

	a := newAnalyzer(search)
	result, err := a.Scan(context.Background(), ScanRequest{
		Location: "Chicago",
		Keyword:  "cafe",
		Target:   model.TargetDescriptor{Name: "Target Cafe"},
	})

	require.NoError(t, err)
	// default preset: 1 center + 6+8+10+12+14+16+18 ring points.
	assert.Len(t, result.Points, 85)
}
