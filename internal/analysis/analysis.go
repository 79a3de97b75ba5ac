// Package analysis orchestrates one visibility analysis: resolve the
// location, fetch ranked results per keyword, identify and score the target,
// and filter the output.
package analysis

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/localrank/internal/filter"
	"github.com/sells-group/localrank/internal/model"
	"github.com/sells-group/localrank/internal/rank"
	"github.com/sells-group/localrank/internal/resolve"
	"github.com/sells-group/localrank/pkg/places"
)

// Request describes one analysis invocation.
type Request struct {
	Location string                 `json:"location"`
	Keywords []string               `json:"keywords"`
	Target   model.TargetDescriptor `json:"target"`
	Filter   model.FilterConfig     `json:"filter"`
}

// Validate checks caller input before any work starts.
func (r Request) Validate() error {
	if len(r.Keywords) == 0 {
		return eris.New("analysis: at least one keyword is required")
	}
	if r.Target.Name == "" && r.Target.ExternalRef == "" {
		return eris.New("analysis: target needs a name or an external ref")
	}
	return r.Filter.Validate()
}

// Analyzer runs analyses. Safe for concurrent use: it holds no per-analysis
// state.
type Analyzer struct {
	resolver *resolve.Resolver
	search   places.Client
}

// New creates an Analyzer.
func New(resolver *resolve.Resolver, search places.Client) *Analyzer {
	return &Analyzer{resolver: resolver, search: search}
}

// Run executes the full analysis. Provider quota/auth failures on the search
// path propagate to the caller (check with places.IsQuotaOrAuth); an empty
// result set is a legitimate outcome that still yields a target-only list.
func (a *Analyzer) Run(ctx context.Context, req Request) (*model.Analysis, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	log := zap.L().With(zap.String("location", req.Location), zap.String("target", req.Target.Name))

	resolved := a.resolver.Resolve(ctx, req.Location)
	log.Info("location resolved",
		zap.String("strategy", resolved.SourceStrategy),
		zap.Float64("lat", resolved.Latitude),
		zap.Float64("lng", resolved.Longitude),
	)

	analysis := &model.Analysis{
		ID:        uuid.New().String(),
		Location:  req.Location,
		Target:    req.Target,
		Resolved:  resolved,
		CreatedAt: time.Now().UTC(),
	}

	radiusM := req.Filter.RadiusKM * 1000
	if radiusM <= 0 {
		radiusM = 5000
	}

	var visSum, visCount float64
	for _, keyword := range req.Keywords {
		raw, err := a.search.NearbySearch(ctx, keyword, resolved.Latitude, resolved.Longitude, radiusM)
		if err != nil {
			return nil, eris.Wrapf(err, "analysis: search %q", keyword)
		}

		ranked := rank.Rank(raw, req.Target, resolved.Coordinate())
		filtered := filter.Apply(ranked, req.Filter)

		kr := model.KeywordResult{Keyword: keyword, Results: filtered}
		for _, r := range filtered {
			if r.IsTarget {
				kr.TargetRank = r.Rank
				kr.TargetVisibility = r.VisibilityScore
				visSum += float64(r.VisibilityScore)
				visCount++
				break
			}
		}
		analysis.Keywords = append(analysis.Keywords, kr)

		log.Info("keyword ranked",
			zap.String("keyword", keyword),
			zap.Int("results", len(filtered)),
			zap.Int("target_rank", kr.TargetRank),
		)
	}

	if visCount > 0 {
		analysis.AvgTargetVisibility = visSum / visCount
	}
	return analysis, nil
}
