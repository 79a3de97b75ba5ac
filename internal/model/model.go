// Package model defines the shared data types flowing between the resolver,
// grid generator, ranking engine, and filter stage.
package model

import (
	"strings"
	"time"

	"github.com/rotisserie/eris"
)

// Difficulty buckets describe competitive pressure at a rank position:
// how hard it is to outrank the incumbent there, and equally how hard that
// position is to hold. One field carries both readings.
type Difficulty string

const (
	DifficultyLow    Difficulty = "LOW"
	DifficultyMedium Difficulty = "MEDIUM"
	DifficultyHigh   Difficulty = "HIGH"
)

// DifficultyForRank maps a 1-based rank to its competitive bucket.
func DifficultyForRank(rank int) Difficulty {
	switch {
	case rank <= 3:
		return DifficultyLow
	case rank <= 10:
		return DifficultyMedium
	default:
		return DifficultyHigh
	}
}

// SortBy selects the ordering applied by the filter stage.
type SortBy string

const (
	SortByRelevance SortBy = "relevance"
	SortByRating    SortBy = "rating"
	SortByReviews   SortBy = "reviews"
	// SortByDistance is accepted but falls through to rank order: results
	// carry no reference-point distance in the current schema.
	SortByDistance SortBy = "distance"
)

// ParseSortBy validates a sort order string.
func ParseSortBy(s string) (SortBy, error) {
	switch SortBy(strings.ToLower(strings.TrimSpace(s))) {
	case SortByRelevance:
		return SortByRelevance, nil
	case SortByRating:
		return SortByRating, nil
	case SortByReviews:
		return SortByReviews, nil
	case SortByDistance:
		return SortByDistance, nil
	default:
		return "", eris.Errorf("model: unknown sort order %q", s)
	}
}

// Coordinate is a WGS84 point.
type Coordinate struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Valid reports whether the coordinate is inside WGS84 bounds.
func (c Coordinate) Valid() bool {
	return c.Latitude >= -90 && c.Latitude <= 90 &&
		c.Longitude >= -180 && c.Longitude <= 180
}

// ResolvedLocation is the canonical center point produced by the location
// resolver. Produced once per analysis; never mutated afterward.
type ResolvedLocation struct {
	Latitude         float64 `json:"latitude"`
	Longitude        float64 `json:"longitude"`
	FormattedAddress string  `json:"formatted_address,omitempty"`
	SourceStrategy   string  `json:"source_strategy"`
}

// Coordinate returns the resolved point as a Coordinate.
func (r ResolvedLocation) Coordinate() Coordinate {
	return Coordinate{Latitude: r.Latitude, Longitude: r.Longitude}
}

// TargetDescriptor identifies the business the caller wants located among
// search results. Read-only input to the ranking engine.
type TargetDescriptor struct {
	Name        string `json:"name"`
	Address     string `json:"address,omitempty"`
	ExternalRef string `json:"external_ref,omitempty"`
}

// BusinessResult is one ranked entry in an analysis. Rank, VisibilityScore,
// Difficulty, and IsTarget are computed once by the ranking engine; only the
// filter stage may re-derive rank order after removals.
type BusinessResult struct {
	ID              string     `json:"id"`
	Name            string     `json:"name"`
	Address         string     `json:"address,omitempty"`
	ExternalRef     string     `json:"external_ref,omitempty"`
	Rating          float64    `json:"rating,omitempty"`
	ReviewCount     int        `json:"review_count,omitempty"`
	Latitude        float64    `json:"latitude,omitempty"`
	Longitude       float64    `json:"longitude,omitempty"`
	Rank            int        `json:"rank"`
	VisibilityScore int        `json:"visibility_score"`
	Difficulty      Difficulty `json:"difficulty"`
	IsTarget        bool       `json:"is_target"`
}

// FilterConfig controls the filter/sort stage.
type FilterConfig struct {
	RadiusKM   float64 `json:"radius_km" mapstructure:"radius_km"`
	MinRating  float64 `json:"min_rating" mapstructure:"min_rating"`
	MaxResults int     `json:"max_results" mapstructure:"max_results"`
	SortBy     SortBy  `json:"sort_by" mapstructure:"sort_by"`
}

// Validate checks the caller-supplied filter configuration.
func (f FilterConfig) Validate() error {
	if f.MinRating < 0 {
		return eris.Errorf("model: min_rating must be >= 0, got %v", f.MinRating)
	}
	if f.MaxResults <= 0 {
		return eris.Errorf("model: max_results must be > 0, got %d", f.MaxResults)
	}
	if _, err := ParseSortBy(string(f.SortBy)); err != nil {
		return err
	}
	return nil
}

// KeywordResult holds the ranked, filtered results for one keyword.
type KeywordResult struct {
	Keyword          string           `json:"keyword"`
	Results          []BusinessResult `json:"results"`
	TargetRank       int              `json:"target_rank"`       // 0 when the target was filtered out
	TargetVisibility int              `json:"target_visibility"` // 0 when the target was filtered out
}

// Analysis is one completed visibility analysis, as persisted by the store.
type Analysis struct {
	ID                  string           `json:"id"`
	Location            string           `json:"location"`
	Target              TargetDescriptor `json:"target"`
	Resolved            ResolvedLocation `json:"resolved"`
	Keywords            []KeywordResult  `json:"keywords"`
	AvgTargetVisibility float64          `json:"avg_target_visibility"`
	CreatedAt           time.Time        `json:"created_at"`
}
