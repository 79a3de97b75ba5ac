package main

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/sells-group/localrank/internal/analysis"
	"github.com/sells-group/localrank/internal/gazetteer"
	"github.com/sells-group/localrank/internal/model"
	"github.com/sells-group/localrank/internal/resolve"
	"github.com/sells-group/localrank/internal/store"
	"github.com/sells-group/localrank/pkg/places"
)

// initAnalyzer wires the resolver chain and places client from config.
func initAnalyzer() (*analysis.Analyzer, error) {
	if cfg.Places.Key == "" {
		return nil, eris.New("places API key is required (LOCALRANK_PLACES_KEY)")
	}

	var opts []places.Option
	if cfg.Places.SearchURL != "" {
		opts = append(opts, places.WithSearchURL(cfg.Places.SearchURL))
	}
	if cfg.Places.GeocodeURL != "" {
		opts = append(opts, places.WithGeocodeURL(cfg.Places.GeocodeURL))
	}
	opts = append(opts, places.WithRateLimit(cfg.Places.RateLimit))
	primary := places.NewClient(cfg.Places.Key, opts...)

	var alternate places.Client
	if cfg.Places.AltKey != "" {
		altOpts := []places.Option{places.WithRateLimit(cfg.Places.RateLimit)}
		if cfg.Places.AltGeocodeURL != "" {
			altOpts = append(altOpts, places.WithGeocodeURL(cfg.Places.AltGeocodeURL))
		}
		alternate = places.NewClient(cfg.Places.AltKey, altOpts...)
	}

	gaz, err := initGazetteer()
	if err != nil {
		return nil, err
	}

	return analysis.New(resolve.New(primary, alternate, gaz), primary), nil
}

func initGazetteer() (*gazetteer.Table, error) {
	if cfg.Gazetteer.ExtraFile == "" {
		return gazetteer.New(), nil
	}
	return gazetteer.NewWithFile(cfg.Gazetteer.ExtraFile)
}

// initStore opens the configured history backend.
func initStore(ctx context.Context) (store.Store, error) {
	switch cfg.Store.Driver {
	case "sqlite":
		dsn := cfg.Store.DatabaseURL
		if dsn == "" {
			dsn = "localrank.db"
		}
		s, err := store.NewSQLite(dsn)
		if err != nil {
			return nil, err
		}
		if err := s.Migrate(ctx); err != nil {
			_ = s.Close()
			return nil, err
		}
		return s, nil
	case "postgres":
		s, err := store.NewPostgres(ctx, cfg.Store.DatabaseURL)
		if err != nil {
			return nil, err
		}
		if err := s.Migrate(ctx); err != nil {
			_ = s.Close()
			return nil, err
		}
		return s, nil
	default:
		return nil, eris.Errorf("unsupported store driver: %s", cfg.Store.Driver)
	}
}

// filterFromFlags merges config defaults with command-line overrides.
func filterFromFlags(minRating float64, maxResults int, sortBy string, radiusKM float64) (model.FilterConfig, error) {
	fc := model.FilterConfig{
		RadiusKM:   cfg.Filter.RadiusKM,
		MinRating:  cfg.Filter.MinRating,
		MaxResults: cfg.Filter.MaxResults,
		SortBy:     model.SortBy(cfg.Filter.SortBy),
	}
	if radiusKM > 0 {
		fc.RadiusKM = radiusKM
	}
	if minRating >= 0 {
		fc.MinRating = minRating
	}
	if maxResults > 0 {
		fc.MaxResults = maxResults
	}
	if sortBy != "" {
		parsed, err := model.ParseSortBy(sortBy)
		if err != nil {
			return model.FilterConfig{}, err
		}
		fc.SortBy = parsed
	}
	return fc, fc.Validate()
}
