// Package store persists completed analyses for the runs history. The
// analytical core keeps no state between analyses; this is tool-level
// bookkeeping behind a driver-agnostic interface.
package store

import (
	"context"

	"github.com/sells-group/localrank/internal/model"
)

// Filter specifies criteria for listing analyses.
type Filter struct {
	Location string `json:"location,omitempty"`
	Limit    int    `json:"limit,omitempty"`
	Offset   int    `json:"offset,omitempty"`
}

// Store defines the persistence interface for analysis history.
type Store interface {
	SaveAnalysis(ctx context.Context, a *model.Analysis) error
	GetAnalysis(ctx context.Context, id string) (*model.Analysis, error)
	ListAnalyses(ctx context.Context, filter Filter) ([]model.Analysis, error)

	Migrate(ctx context.Context) error
	Close() error
}
