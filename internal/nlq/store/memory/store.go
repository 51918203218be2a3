// Package memory is a store.Store over fixed in-memory rows. The CLI runs
// against it when no database is configured.
package memory

import (
	"context"
	"fmt"
	"os"
	"sort"
	"time"

	"gopkg.in/yaml.v3"

	"projectflow-workers/internal/models"
	"projectflow-workers/internal/nlq/store"
)

// Dataset is the fixture file layout.
type Dataset struct {
	Projects  []models.Project  `yaml:"projects"`
	Tasks     []models.Task     `yaml:"tasks"`
	Resources []models.Resource `yaml:"resources"`
}

type Store struct {
	data Dataset
}

var _ store.Store = (*Store)(nil)

func New(data Dataset) *Store {
	return &Store{data: data}
}

// Load reads a YAML dataset from path.
func Load(path string) (*Store, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixtures: %w", err)
	}

	var data Dataset
	if err := yaml.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("decode fixtures %s: %w", path, err)
	}
	return New(data), nil
}

func (s *Store) Projects(ctx context.Context, f store.ProjectFilter) ([]models.Project, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	out := []models.Project{}
	for _, p := range s.data.Projects {
		if p.WorkspaceID != f.WorkspaceID || p.DeletedAt != nil {
			continue
		}
		if f.EndBefore != nil && !endsBefore(p.EndDate, *f.EndBefore) {
			continue
		}
		if f.ExcludeStatus != "" && !statusDiffers(p.Status, f.ExcludeStatus) {
			continue
		}
		out = append(out, p)
		if f.Limit > 0 && len(out) == f.Limit {
			break
		}
	}
	return out, nil
}

func (s *Store) ProjectIDs(ctx context.Context, workspaceID string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	ids := []string{}
	for _, p := range s.data.Projects {
		if p.WorkspaceID == workspaceID && p.DeletedAt == nil {
			ids = append(ids, p.ID)
		}
	}
	return ids, nil
}

func (s *Store) Tasks(ctx context.Context, f store.TaskFilter) ([]models.Task, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	inSet := make(map[string]struct{}, len(f.ProjectIDs))
	for _, id := range f.ProjectIDs {
		inSet[id] = struct{}{}
	}

	out := []models.Task{}
	for _, t := range s.data.Tasks {
		if _, ok := inSet[t.ProjectID]; !ok {
			continue
		}
		if f.EndBefore != nil && !endsBefore(t.EndDate, *f.EndBefore) {
			continue
		}
		if f.ExcludeStatus != "" && !statusDiffers(t.Status, f.ExcludeStatus) {
			continue
		}
		if f.Priority != "" && t.Priority != f.Priority {
			continue
		}
		out = append(out, t)
	}

	if f.NewestFirst {
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].UpdatedAt.After(out[j].UpdatedAt)
		})
	}
	if f.Limit > 0 && len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out, nil
}

func (s *Store) Resources(ctx context.Context, f store.ResourceFilter) ([]models.Resource, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	out := []models.Resource{}
	for _, r := range s.data.Resources {
		if r.WorkspaceID != f.WorkspaceID {
			continue
		}
		if f.MinAvailability != nil && r.Availability < *f.MinAvailability {
			continue
		}
		if f.MaxAvailability != nil && r.Availability >= *f.MaxAvailability {
			continue
		}
		out = append(out, r)
		if f.Limit > 0 && len(out) == f.Limit {
			break
		}
	}
	return out, nil
}

// endsBefore compares UTC calendar days; a missing date never matches, the
// same as a NULL end_date in SQL.
func endsBefore(end *time.Time, cutoff time.Time) bool {
	if end == nil {
		return false
	}
	return end.UTC().Format(store.DateLayout) < cutoff.UTC().Format(store.DateLayout)
}

// statusDiffers mirrors SQL "status <> x", where an empty (NULL) status
// never satisfies the predicate.
func statusDiffers(status, excluded string) bool {
	return status != "" && status != excluded
}
