// Package store defines the read-only view of the workspace tables the query
// builder plans against. Implementations live in the postgres and memory
// subpackages.
package store

import (
	"context"
	"time"

	"projectflow-workers/internal/models"
)

// ProjectFilter selects non-deleted projects in one workspace.
type ProjectFilter struct {
	WorkspaceID   string
	EndBefore     *time.Time // end_date strictly before this date
	ExcludeStatus string
	Limit         int
}

// TaskFilter selects tasks belonging to ProjectIDs.
type TaskFilter struct {
	ProjectIDs    []string
	EndBefore     *time.Time
	ExcludeStatus string
	Priority      string
	NewestFirst   bool // order by updated_at descending
	Limit         int
}

// ResourceFilter selects resources in one workspace. MinAvailability is
// inclusive, MaxAvailability exclusive.
type ResourceFilter struct {
	WorkspaceID     string
	MinAvailability *float64
	MaxAvailability *float64
	Limit           int
}

type Store interface {
	Projects(ctx context.Context, f ProjectFilter) ([]models.Project, error)
	ProjectIDs(ctx context.Context, workspaceID string) ([]string, error)
	Tasks(ctx context.Context, f TaskFilter) ([]models.Task, error)
	Resources(ctx context.Context, f ResourceFilter) ([]models.Resource, error)
}

// DateLayout is how day-precision comparisons are rendered for the database.
const DateLayout = "2006-01-02"

func Float(v float64) *float64 { return &v }
