// Package querybuilder maps a processed question onto read-only queries
// against the workspace store.
package querybuilder

import (
	"context"
	"time"

	"projectflow-workers/internal/models"
	"projectflow-workers/internal/nlq/processor"
	"projectflow-workers/internal/nlq/store"
)

// PlanGeneral is reported when the intent has no dedicated plan.
const PlanGeneral = string(models.QueryTypeGeneral)

type QueryResult struct {
	Data     interface{} `json:"data"`
	PlanUsed string      `json:"planUsed"`
}

// RowCount returns the number of rows in Data.
func (r *QueryResult) RowCount() int {
	switch rows := r.Data.(type) {
	case []models.Project:
		return len(rows)
	case []models.Task:
		return len(rows)
	case []models.Resource:
		return len(rows)
	case []interface{}:
		return len(rows)
	default:
		return 0
	}
}

// Limits holds row caps and the availability thresholds. Resources at or
// above AvailableAt are available, below BusyBelow are busy; anything in
// between is neither.
type Limits struct {
	Projects    int
	Tasks       int
	Resources   int
	General     int
	AvailableAt float64
	BusyBelow   float64
}

func DefaultLimits() Limits {
	return Limits{
		Projects:    10,
		Tasks:       20,
		Resources:   20,
		General:     5,
		AvailableAt: 50,
		BusyBelow:   30,
	}
}

type Option func(*Builder)

func WithLimits(l Limits) Option {
	return func(b *Builder) { b.limits = l }
}

// WithClock sets the source of "today" for date predicates.
func WithClock(now func() time.Time) Option {
	return func(b *Builder) { b.now = now }
}

type Builder struct {
	store  store.Store
	limits Limits
	now    func() time.Time
}

func New(s store.Store, opts ...Option) *Builder {
	b := &Builder{
		store:  s,
		limits: DefaultLimits(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Execute runs the plan for processed.Intent scoped to workspaceID. Store
// errors are returned as is; there is no retry and no partial result.
func (b *Builder) Execute(ctx context.Context, processed processor.ProcessedQuery, workspaceID string) (*QueryResult, error) {
	name := models.QueryType(processed.Intent.Intent)
	plan, ok := Registry[name]
	if !ok {
		name = models.QueryTypeGeneral
		plan = generalProjects
	}

	data, err := plan(ctx, b, workspaceID)
	if err != nil {
		return nil, err
	}

	return &QueryResult{Data: data, PlanUsed: string(name)}, nil
}

// PlanFor reports which plan Execute would run for intentID.
func PlanFor(intentID string) string {
	if _, ok := Registry[models.QueryType(intentID)]; ok {
		return intentID
	}
	return PlanGeneral
}

// today is midnight UTC of the current day.
func (b *Builder) today() time.Time {
	y, m, d := b.now().UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
