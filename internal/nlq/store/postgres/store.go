// Package postgres implements store.Store on top of sqlx and lib/pq.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"projectflow-workers/internal/models"
	"projectflow-workers/internal/nlq/store"
)

var ErrQueryFailed = errors.New("QUERY_EXECUTION_FAILED")

type Store struct {
	db *sqlx.DB
}

var _ store.Store = (*Store)(nil)

// New wraps an open *sql.DB. The connection is owned by the caller.
func New(db *sql.DB) *Store {
	return &Store{db: sqlx.NewDb(db, "postgres")}
}

func (s *Store) Projects(ctx context.Context, f store.ProjectFilter) ([]models.Project, error) {
	q := newQuery(querySelectProjects, f.WorkspaceID)
	if f.EndBefore != nil {
		q.where("end_date < ?", f.EndBefore.UTC().Format(store.DateLayout))
	}
	if f.ExcludeStatus != "" {
		q.where("status <> ?", f.ExcludeStatus)
	}
	q.limit(f.Limit)

	rows := []models.Project{}
	if err := s.db.SelectContext(ctx, &rows, s.db.Rebind(q.String()), q.args...); err != nil {
		return nil, fmt.Errorf("%w: projects: %w", ErrQueryFailed, err)
	}
	return rows, nil
}

func (s *Store) ProjectIDs(ctx context.Context, workspaceID string) ([]string, error) {
	ids := []string{}
	if err := s.db.SelectContext(ctx, &ids, s.db.Rebind(querySelectProjectIDs), workspaceID); err != nil {
		return nil, fmt.Errorf("%w: project ids: %w", ErrQueryFailed, err)
	}
	return ids, nil
}

func (s *Store) Tasks(ctx context.Context, f store.TaskFilter) ([]models.Task, error) {
	if len(f.ProjectIDs) == 0 {
		return []models.Task{}, nil
	}

	q := newQuery(querySelectTasks, f.ProjectIDs)
	if f.EndBefore != nil {
		q.where("end_date < ?", f.EndBefore.UTC().Format(store.DateLayout))
	}
	if f.ExcludeStatus != "" {
		q.where("status <> ?", f.ExcludeStatus)
	}
	if f.Priority != "" {
		q.where("priority = ?", f.Priority)
	}
	if f.NewestFirst {
		q.orderBy("updated_at DESC")
	}
	q.limit(f.Limit)

	query, args, err := sqlx.In(q.String(), q.args...)
	if err != nil {
		return nil, fmt.Errorf("%w: expand project ids: %w", ErrQueryFailed, err)
	}

	rows := []models.Task{}
	if err := s.db.SelectContext(ctx, &rows, s.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("%w: tasks: %w", ErrQueryFailed, err)
	}
	return rows, nil
}

func (s *Store) Resources(ctx context.Context, f store.ResourceFilter) ([]models.Resource, error) {
	q := newQuery(querySelectResources, f.WorkspaceID)
	if f.MinAvailability != nil {
		q.where("availability >= ?", *f.MinAvailability)
	}
	if f.MaxAvailability != nil {
		q.where("availability < ?", *f.MaxAvailability)
	}
	q.limit(f.Limit)

	rows := []models.Resource{}
	if err := s.db.SelectContext(ctx, &rows, s.db.Rebind(q.String()), q.args...); err != nil {
		return nil, fmt.Errorf("%w: resources: %w", ErrQueryFailed, err)
	}
	return rows, nil
}

// query accumulates a statement written with ? placeholders.
type query struct {
	sb   strings.Builder
	args []interface{}
}

func newQuery(base string, args ...interface{}) *query {
	q := &query{args: args}
	q.sb.WriteString(base)
	return q
}

func (q *query) where(cond string, arg interface{}) {
	q.sb.WriteString(" AND ")
	q.sb.WriteString(cond)
	q.args = append(q.args, arg)
}

func (q *query) orderBy(expr string) {
	q.sb.WriteString(" ORDER BY ")
	q.sb.WriteString(expr)
}

func (q *query) limit(n int) {
	if n <= 0 {
		return
	}
	q.sb.WriteString(" LIMIT ?")
	q.args = append(q.args, n)
}

func (q *query) String() string {
	return q.sb.String()
}
