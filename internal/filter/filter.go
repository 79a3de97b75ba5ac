// Package filter applies the rating threshold, sort order, and result-count
// truncation to a ranked result set.
package filter

import (
	"sort"

	"github.com/sells-group/localrank/internal/model"
)

// Apply runs the fixed pipeline: rating filter, then sort, then truncation.
// It returns a new slice and never mutates its input. The target entry gets
// no special protection — if the rating filter or truncation drops it, it is
// absent from the output.
func Apply(results []model.BusinessResult, cfg model.FilterConfig) []model.BusinessResult {
	out := make([]model.BusinessResult, 0, len(results))
	for _, r := range results {
		// Missing ratings count as 0, so min_rating > 0 drops them.
		if r.Rating < cfg.MinRating {
			continue
		}
		out = append(out, r)
	}

	switch cfg.SortBy {
	case model.SortByRating:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Rating > out[j].Rating
		})
	case model.SortByReviews:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].ReviewCount > out[j].ReviewCount
		})
	case model.SortByRelevance, model.SortByDistance:
		// Relevance keeps the incoming rank order. Distance is accepted but
		// has no comparator: results carry no reference-point distance, so it
		// falls through to rank order. Documented limitation, not a defect.
	}

	if cfg.MaxResults > 0 && len(out) > cfg.MaxResults {
		out = out[:cfg.MaxResults]
	}
	return out
}
