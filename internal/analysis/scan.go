package analysis

import (
	"context"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/localrank/internal/grid"
	"github.com/sells-group/localrank/internal/model"
	"github.com/sells-group/localrank/internal/rank"
	"github.com/sells-group/localrank/pkg/places"
)

// ScanRequest describes a grid scan: one search per grid point, producing a
// per-point target rank for heatmap rendering.
type ScanRequest struct {
	Location    string                 `json:"location"`
	Keyword     string                 `json:"keyword"`
	Target      model.TargetDescriptor `json:"target"`
	Preset      string                 `json:"preset"`
	Rings       []grid.RingConfig      `json:"rings,omitempty"`
	RadiusM     float64                `json:"radius_m"`
	Concurrency int                    `json:"concurrency"`
}

// PointResult is the target's standing at one grid point.
type PointResult struct {
	Point      grid.Point `json:"point"`
	TargetRank int        `json:"target_rank"` // result count + 1 when unmatched
	Visibility int        `json:"visibility"`
	Found      bool       `json:"found"`
}

// ScanResult is the full heatmap sampling outcome.
type ScanResult struct {
	Resolved model.ResolvedLocation `json:"resolved"`
	Grid     *grid.Grid             `json:"grid"`
	Points   []PointResult          `json:"points"`
}

// Scan resolves the location, generates the sampling grid, and queries every
// point with bounded concurrency. Individual point failures degrade to "not
// found" for that point; quota/auth failures abort the whole scan.
func (a *Analyzer) Scan(ctx context.Context, req ScanRequest) (*ScanResult, error) {
	if req.Keyword == "" {
		return nil, eris.New("analysis: scan keyword is required")
	}
	if req.Target.Name == "" && req.Target.ExternalRef == "" {
		return nil, eris.New("analysis: target needs a name or an external ref")
	}

	rings := req.Rings
	if len(rings) == 0 {
		preset := req.Preset
		if preset == "" {
			preset = "default"
		}
		var err error
		rings, err = grid.Preset(preset)
		if err != nil {
			return nil, err
		}
	}

	resolved := a.resolver.Resolve(ctx, req.Location)
	g, err := grid.Generate(resolved.Coordinate(), rings)
	if err != nil {
		return nil, err
	}

	radiusM := req.RadiusM
	if radiusM <= 0 {
		radiusM = 2000
	}
	concurrency := req.Concurrency
	if concurrency <= 0 {
		concurrency = 4
	}

	log := zap.L().With(zap.String("keyword", req.Keyword), zap.Int("points", len(g.AllPoints)))
	log.Info("starting grid scan", zap.String("strategy", resolved.SourceStrategy))

	points := make([]PointResult, len(g.AllPoints))

	eg, gCtx := errgroup.WithContext(ctx)
	eg.SetLimit(concurrency)

	for i, p := range g.AllPoints {
		i, p := i, p
		eg.Go(func() error {
			raw, searchErr := a.search.NearbySearch(gCtx, req.Keyword, p.Latitude, p.Longitude, radiusM)
			if searchErr != nil {
				if places.IsQuotaOrAuth(searchErr) {
					return eris.Wrapf(searchErr, "analysis: scan point %s", p.ID)
				}
				log.Debug("scan point failed, leaving it unsampled",
					zap.String("point", p.ID),
					zap.Error(searchErr),
				)
				points[i] = PointResult{Point: p}
				return nil
			}

			pr := PointResult{Point: p}
			for _, br := range rank.Rank(raw, req.Target, model.Coordinate{Latitude: p.Latitude, Longitude: p.Longitude}) {
				if br.IsTarget {
					pr.TargetRank = br.Rank
					pr.Visibility = br.VisibilityScore
					pr.Found = br.Rank <= len(raw)
					break
				}
			}
			points[i] = pr
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}

	log.Info("grid scan complete")
	return &ScanResult{Resolved: resolved, Grid: g, Points: points}, nil
}
