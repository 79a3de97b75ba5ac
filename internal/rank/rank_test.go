package rank

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/localrank/internal/model"
	"github.com/sells-group/localrank/pkg/places"
)

var center = model.Coordinate{Latitude: 34.0522, Longitude: -118.2437}

func TestVisibility(t *testing.T) {
	assert.Equal(t, 86, Visibility(1))
	assert.Equal(t, 5, Visibility(50))

	// Monotonically non-increasing, clamped to [5, 100].
	for r := 1; r < 60; r++ {
		assert.GreaterOrEqual(t, Visibility(r), Visibility(r+1), "rank %d", r)
		assert.GreaterOrEqual(t, Visibility(r), 5)
		assert.LessOrEqual(t, Visibility(r), 100)
	}
}

func TestRank_ProviderOrderTrusted(t *testing.T) {
	results := []places.Business{
		{PlaceID: "a", Name: "Alpha Plumbing", Rating: 3.1},
		{PlaceID: "b", Name: "Beta Plumbing", Rating: 4.9},
		{PlaceID: "c", Name: "Gamma Plumbing", Rating: 4.5},
	}

	ranked := Rank(results, model.TargetDescriptor{Name: "Beta Plumbing"}, center)

	require.Len(t, ranked, 3)
	for i, br := range ranked {
		assert.Equal(t, i+1, br.Rank)
	}
	// No re-sort by rating: provider order stands.
	assert.Equal(t, "a", ranked[0].ID)
	assert.True(t, ranked[1].IsTarget)
}

func TestRank_ExternalRefBeatsNameDifference(t *testing.T) {
	results := []places.Business{
		{PlaceID: "ChIJ111", Name: "Completely Different Name"},
	}
	target := model.TargetDescriptor{Name: "Apex Security Services", ExternalRef: "ChIJ111"}

	ranked := Rank(results, target, center)

	require.Len(t, ranked, 1)
	assert.True(t, ranked[0].IsTarget)
}

func TestRank_NormalizedNameMatch(t *testing.T) {
	results := []places.Business{
		{PlaceID: "x", Name: "apex   security services"},
	}
	target := model.TargetDescriptor{Name: "Apex Security Services"}

	ranked := Rank(results, target, center)

	assert.True(t, ranked[0].IsTarget, "case/space-only differences match on the exact-name rule")
}

func TestRank_ContainmentGatedBySimilarity(t *testing.T) {
	target := model.TargetDescriptor{Name: "Apex Security Services"}

	// Containment with high similarity matches.
	ranked := Rank([]places.Business{{PlaceID: "x", Name: "Apex Security Services LLC"}}, target, center)
	assert.True(t, ranked[0].IsTarget)

	// Containment alone is not enough when similarity falls under the gate.
	ranked = Rank([]places.Business{{PlaceID: "y", Name: "Apex Security Services of Greater Northern California and Nevada"}}, target, center)
	require.Len(t, ranked, 2)
	assert.False(t, ranked[0].IsTarget)
	assert.True(t, ranked[1].IsTarget, "synthesized instead")
}

func TestRank_EarliestRankWinsTies(t *testing.T) {
	results := []places.Business{
		{PlaceID: "first", Name: "Acme Cafe"},
		{PlaceID: "second", Name: "Acme Cafe"},
	}

	ranked := Rank(results, model.TargetDescriptor{Name: "Acme Cafe"}, center)

	assert.True(t, ranked[0].IsTarget)
	assert.False(t, ranked[1].IsTarget)
}

func TestRank_NotFoundSynthesis(t *testing.T) {
	results := []places.Business{
		{PlaceID: "a", Name: "Unrelated One"},
		{PlaceID: "b", Name: "Unrelated Two"},
	}

	ranked := Rank(results, model.TargetDescriptor{Name: "Acme"}, center)

	require.Len(t, ranked, 3)
	synth := ranked[2]
	assert.True(t, synth.IsTarget)
	assert.Equal(t, 3, synth.Rank)
	assert.Equal(t, "Acme", synth.Name)
	assert.Equal(t, Visibility(3), synth.VisibilityScore)

	// Jittered around the center within ±0.005 degrees on each axis.
	assert.LessOrEqual(t, math.Abs(synth.Latitude-center.Latitude), 0.005)
	assert.LessOrEqual(t, math.Abs(synth.Longitude-center.Longitude), 0.005)
}

func TestRank_EmptyResults(t *testing.T) {
	ranked := Rank(nil, model.TargetDescriptor{Name: "Acme"}, center)

	require.Len(t, ranked, 1)
	assert.Equal(t, "Acme", ranked[0].Name)
	assert.Equal(t, 1, ranked[0].Rank)
	assert.True(t, ranked[0].IsTarget)
	assert.Equal(t, 86, ranked[0].VisibilityScore)
	assert.Equal(t, model.DifficultyLow, ranked[0].Difficulty)
}

func TestRank_Idempotent(t *testing.T) {
	results := []places.Business{
		{PlaceID: "a", Name: "Alpha"},
		{PlaceID: "b", Name: "Beta"},
	}
	target := model.TargetDescriptor{Name: "Gamma"}

	first := Rank(results, target, center)
	second := Rank(results, target, center)
	assert.Equal(t, first, second)
}

func TestRank_DifficultyBuckets(t *testing.T) {
	results := make([]places.Business, 12)
	for i := range results {
		results[i] = places.Business{PlaceID: string(rune('a' + i)), Name: "Biz"}
	}
	// Name "Biz" matches rank 1, so no synthesis.
	ranked := Rank(results, model.TargetDescriptor{Name: "Biz"}, center)

	assert.Equal(t, model.DifficultyLow, ranked[0].Difficulty)
	assert.Equal(t, model.DifficultyLow, ranked[2].Difficulty)
	assert.Equal(t, model.DifficultyMedium, ranked[3].Difficulty)
	assert.Equal(t, model.DifficultyMedium, ranked[9].Difficulty)
	assert.Equal(t, model.DifficultyHigh, ranked[10].Difficulty)
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "apex security services", Normalize("  Apex   SECURITY Services "))
	assert.Equal(t, "", Normalize("   "))
}

func TestSimilarity(t *testing.T) {
	assert.InDelta(t, 1.0, Similarity("acme", "acme"), 1e-9)
	assert.InDelta(t, 0.75, Similarity("acme", "acmx"), 1e-9)
	assert.Zero(t, Similarity("", ""))

	// "apex security services" vs "apex security services llc":
	// 4 edits over 26 runes -> ~0.846, above the 0.70 gate.
	sim := Similarity("apex security services", "apex security services llc")
	assert.Greater(t, sim, 0.70)
}

func TestRank_MissingOptionalFields(t *testing.T) {
	// Records with only a name never abort the pass; fields default to zero.
	results := []places.Business{{Name: "Nameless Plumbing"}}

	ranked := Rank(results, model.TargetDescriptor{Name: "Other"}, center)

	require.Len(t, ranked, 2)
	assert.Equal(t, "result-1", ranked[0].ID)
	assert.Zero(t, ranked[0].Rating)
	assert.Zero(t, ranked[0].ReviewCount)
}
