// Package rank identifies the target business among ordered search results
// and computes rank, visibility, and difficulty for every result.
package rank

import (
	"fmt"
	"hash/fnv"
	"math"
	"strings"

	"github.com/agext/levenshtein"
	"golang.org/x/text/unicode/norm"

	"github.com/sells-group/localrank/internal/model"
	"github.com/sells-group/localrank/pkg/places"
)

const (
	// similarityThreshold gates the containment match rule. Preserved as a
	// passing contract; changing it is a behavior change, not a tuning knob.
	similarityThreshold = 0.70

	visibilityDecay = 0.15
	visibilityFloor = 5
	visibilityCeil  = 100

	// jitterDeg spreads a synthesized target around the center for display.
	jitterDeg = 0.005
)

// Visibility models exposure decay as rank worsens:
// clamp(round(100·e^(−0.15·rank)), 5, 100). Rank 1 lands at 86; deep ranks
// floor at 5.
func Visibility(rank int) int {
	v := int(math.Round(visibilityCeil * math.Exp(-visibilityDecay*float64(rank))))
	if v < visibilityFloor {
		return visibilityFloor
	}
	if v > visibilityCeil {
		return visibilityCeil
	}
	return v
}

// Rank converts the provider's relevance-ordered results into ranked
// BusinessResults, flags at most one entry as the target, and synthesizes a
// target entry when none matched. The provider's ordering is trusted
// verbatim; this engine never re-sorts for relevance.
func Rank(results []places.Business, target model.TargetDescriptor, center model.Coordinate) []model.BusinessResult {
	ranked := make([]model.BusinessResult, 0, len(results)+1)

	targetFound := false
	for i, b := range results {
		r := i + 1
		br := model.BusinessResult{
			ID:              b.PlaceID,
			Name:            b.Name,
			Address:         b.Address,
			ExternalRef:     b.PlaceID,
			Rating:          b.Rating,
			ReviewCount:     b.ReviewCount,
			Latitude:        b.Latitude,
			Longitude:       b.Longitude,
			Rank:            r,
			VisibilityScore: Visibility(r),
			Difficulty:      model.DifficultyForRank(r),
		}
		if br.ID == "" {
			br.ID = fmt.Sprintf("result-%d", r)
		}

		// Earliest rank wins; later matches are left unflagged.
		if !targetFound && matchesTarget(b, target) {
			br.IsTarget = true
			targetFound = true
		}
		ranked = append(ranked, br)
	}

	if !targetFound {
		ranked = append(ranked, synthesizeTarget(target, center, len(ranked)+1))
	}
	return ranked
}

// matchesTarget applies the identification rules in order: exact external
// ref, exact normalized name, then containment gated by edit-distance
// similarity.
func matchesTarget(b places.Business, target model.TargetDescriptor) bool {
	if target.ExternalRef != "" && b.PlaceID != "" && target.ExternalRef == b.PlaceID {
		return true
	}

	name := Normalize(b.Name)
	want := Normalize(target.Name)
	if name == "" || want == "" {
		return false
	}
	if name == want {
		return true
	}
	if strings.Contains(name, want) || strings.Contains(want, name) {
		return Similarity(name, want) >= similarityThreshold
	}
	return false
}

// Normalize folds a business name for comparison: NFKC, lower-case, trimmed,
// inner whitespace collapsed.
func Normalize(s string) string {
	folded := strings.ToLower(norm.NFKC.String(s))
	return strings.Join(strings.Fields(folded), " ")
}

// Similarity is (maxLen − editDistance) / maxLen over two normalized names,
// using classic unit-cost Levenshtein distance.
func Similarity(a, b string) float64 {
	maxLen := max(len([]rune(a)), len([]rune(b)))
	if maxLen == 0 {
		return 0
	}
	dist := levenshtein.Distance(a, b, nil)
	return float64(maxLen-dist) / float64(maxLen)
}

// synthesizeTarget builds the appended "not found" entry from the target
// descriptor, placed at the tail rank and jittered around the center purely
// for display. The jitter is hash-seeded from the target name so ranking
// stays deterministic.
func synthesizeTarget(target model.TargetDescriptor, center model.Coordinate, rank int) model.BusinessResult {
	latOff, lngOff := jitter(target.Name)
	id := target.ExternalRef
	if id == "" {
		id = "target-unranked"
	}
	return model.BusinessResult{
		ID:              id,
		Name:            target.Name,
		Address:         target.Address,
		ExternalRef:     target.ExternalRef,
		Latitude:        center.Latitude + latOff,
		Longitude:       center.Longitude + lngOff,
		Rank:            rank,
		VisibilityScore: Visibility(rank),
		Difficulty:      model.DifficultyForRank(rank),
		IsTarget:        true,
	}
}

func jitter(seed string) (float64, float64) {
	h := fnv.New64a()
	_, _ = h.Write([]byte(seed))
	sum := h.Sum64()

	// Two independent halves mapped into [-jitterDeg, +jitterDeg].
	latFrac := float64(uint32(sum)) / float64(math.MaxUint32)
	lngFrac := float64(uint32(sum>>32)) / float64(math.MaxUint32)
	return (latFrac*2 - 1) * jitterDeg, (lngFrac*2 - 1) * jitterDeg
}
