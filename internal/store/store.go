// Package store persists scored businesses and resolution assessments
// across SQLite (local default) and PostgreSQL backends.
package store

import (
	"context"

	"github.com/sells-group/prospect-cli/internal/model"
	"github.com/sells-group/prospect-cli/internal/resolve"
)

// BusinessFilter specifies criteria for listing scored businesses.
type BusinessFilter struct {
	Niche    string     `json:"niche,omitempty"`
	Band     model.Band `json:"band,omitempty"`
	MinScore int        `json:"min_score,omitempty"`
	Limit    int        `json:"limit,omitempty"`
}

// Store defines the persistence interface for scoring and resolution runs.
type Store interface {
	// Runs
	CreateRun(ctx context.Context, kind string) (string, error)
	CompleteRun(ctx context.Context, runID string, processed int) error

	// Businesses
	SaveBusiness(ctx context.Context, runID string, b model.Business) error
	ListBusinesses(ctx context.Context, filter BusinessFilter) ([]model.Business, error)

	// Assessments
	SaveAssessment(ctx context.Context, a *resolve.Assessment) (string, error)

	// Lifecycle
	Migrate(ctx context.Context) error
	Close() error
}
