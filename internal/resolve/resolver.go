// Package resolve turns free-text location input into a canonical center
// point via an ordered chain of strategies. Resolution is total: every input,
// including garbage, yields a usable center.
package resolve

import (
	"context"
	"regexp"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/localrank/internal/gazetteer"
	"github.com/sells-group/localrank/internal/model"
	"github.com/sells-group/localrank/pkg/places"
)

// DefaultCenter is the terminal fallback when every strategy misses.
var DefaultCenter = model.ResolvedLocation{
	Latitude:         34.0522,
	Longitude:        -118.2437,
	FormattedAddress: "Los Angeles, CA, USA",
	SourceStrategy:   "default",
}

// Strategy is one resolution backend. Attempt returns (nil, nil) for a clean
// miss; errors are swallowed by the chain and logged.
type Strategy interface {
	Name() string
	Available() bool
	Attempt(ctx context.Context, raw string) (*model.ResolvedLocation, error)
}

// Resolver runs strategies strictly in order and returns the first hit,
// terminating in DefaultCenter.
type Resolver struct {
	strategies []Strategy
}

// New creates a Resolver with the standard chain: primary geocoder, bare
// coordinate parse, alternate geocoder, gazetteer. Either geocoder client may
// be nil, which marks that strategy unavailable.
func New(primary, alternate places.Client, gaz *gazetteer.Table) *Resolver {
	if gaz == nil {
		gaz = gazetteer.New()
	}
	return NewWithStrategies(
		&geocodeStrategy{name: "geocode", client: primary},
		coordinateStrategy{},
		&geocodeStrategy{name: "geocode-alt", client: alternate},
		gazetteerStrategy{table: gaz},
	)
}

// NewWithStrategies creates a Resolver from an explicit strategy list.
func NewWithStrategies(strategies ...Strategy) *Resolver {
	return &Resolver{strategies: strategies}
}

// Resolve runs the chain. It never fails: strategy errors are logged and
// routed to the next strategy, and the chain terminates in DefaultCenter.
func (r *Resolver) Resolve(ctx context.Context, raw string) model.ResolvedLocation {
	log := zap.L().With(zap.String("input", raw))

	for _, s := range r.strategies {
		if !s.Available() {
			continue
		}
		loc, err := s.Attempt(ctx, raw)
		if err != nil {
			if places.IsQuotaOrAuth(err) {
				log.Warn("resolve: strategy hit quota/auth failure, continuing",
					zap.String("strategy", s.Name()),
					zap.Error(err),
				)
			} else {
				log.Debug("resolve: strategy failed, trying next",
					zap.String("strategy", s.Name()),
					zap.Error(err),
				)
			}
			continue
		}
		if loc == nil {
			continue
		}
		log.Debug("resolve: strategy matched", zap.String("strategy", s.Name()))
		return *loc
	}

	log.Debug("resolve: all strategies missed, using default center")
	return DefaultCenter
}

// geocodeStrategy resolves via a places geocoding client.
type geocodeStrategy struct {
	name   string
	client places.Client
}

func (s *geocodeStrategy) Name() string    { return s.name }
func (s *geocodeStrategy) Available() bool { return s.client != nil }

func (s *geocodeStrategy) Attempt(ctx context.Context, raw string) (*model.ResolvedLocation, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	result, err := s.client.Geocode(ctx, raw)
	if err != nil {
		return nil, err
	}
	if result == nil {
		return nil, nil
	}
	return &model.ResolvedLocation{
		Latitude:         result.Latitude,
		Longitude:        result.Longitude,
		FormattedAddress: result.FormattedAddress,
		SourceStrategy:   s.name,
	}, nil
}

// coordPattern matches a bare "lat,lng" pair and nothing else: anchored, so
// street addresses that merely contain comma-separated numbers don't qualify.
var coordPattern = regexp.MustCompile(`^\s*(-?\d+(?:\.\d+)?)\s*,\s*(-?\d+(?:\.\d+)?)\s*$`)

// coordinateStrategy parses literal "lat,lng" input. No network dependency.
type coordinateStrategy struct{}

func (coordinateStrategy) Name() string    { return "coordinates" }
func (coordinateStrategy) Available() bool { return true }

func (coordinateStrategy) Attempt(_ context.Context, raw string) (*model.ResolvedLocation, error) {
	m := coordPattern.FindStringSubmatch(raw)
	if m == nil {
		return nil, nil
	}

	lat, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return nil, nil
	}
	lng, err := strconv.ParseFloat(m[2], 64)
	if err != nil {
		return nil, nil
	}
	if !(model.Coordinate{Latitude: lat, Longitude: lng}).Valid() {
		return nil, eris.Errorf("resolve: coordinates out of range: %s", strings.TrimSpace(raw))
	}

	return &model.ResolvedLocation{
		Latitude:       lat,
		Longitude:      lng,
		SourceStrategy: "coordinates",
	}, nil
}

// gazetteerStrategy resolves against the static place-name table.
type gazetteerStrategy struct {
	table *gazetteer.Table
}

func (gazetteerStrategy) Name() string      { return "gazetteer" }
func (s gazetteerStrategy) Available() bool { return s.table != nil }

func (s gazetteerStrategy) Attempt(_ context.Context, raw string) (*model.ResolvedLocation, error) {
	c, ok := s.table.Lookup(raw)
	if !ok {
		return nil, nil
	}
	return &model.ResolvedLocation{
		Latitude:       c.Latitude,
		Longitude:      c.Longitude,
		SourceStrategy: "gazetteer",
	}, nil
}
