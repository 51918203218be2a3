package querybuilder

import (
	"context"

	"projectflow-workers/internal/models"
	"projectflow-workers/internal/nlq/store"
)

// PlanFunc fetches the rows for one plan.
type PlanFunc func(ctx context.Context, b *Builder, workspaceID string) (interface{}, error)

// Registry maps plan names to their implementation. Intents not listed fall
// back to generalProjects.
var Registry = map[models.QueryType]PlanFunc{
	models.QueryTypeListProjects: listProjects,
	// TODO: project_details should join tasks and resources for the named
	// project; until then it returns the plain project list.
	models.QueryTypeProjectDetails:  listProjects,
	models.QueryTypeOverdueProjects: overdueProjects,

	models.QueryTypeListTasks:    listTasks,
	models.QueryTypeOverdueTasks: overdueTasks,
	models.QueryTypeUrgentTasks:  urgentTasks,

	models.QueryTypeListResources:      listResources,
	models.QueryTypeAvailableResources: availableResources,
	models.QueryTypeBusyResources:      busyResources,
}

func listProjects(ctx context.Context, b *Builder, workspaceID string) (interface{}, error) {
	return b.store.Projects(ctx, store.ProjectFilter{
		WorkspaceID: workspaceID,
		Limit:       b.limits.Projects,
	})
}

func overdueProjects(ctx context.Context, b *Builder, workspaceID string) (interface{}, error) {
	today := b.today()
	return b.store.Projects(ctx, store.ProjectFilter{
		WorkspaceID:   workspaceID,
		EndBefore:     &today,
		ExcludeStatus: models.StatusCompleted,
		Limit:         b.limits.Projects,
	})
}

func generalProjects(ctx context.Context, b *Builder, workspaceID string) (interface{}, error) {
	return b.store.Projects(ctx, store.ProjectFilter{
		WorkspaceID: workspaceID,
		Limit:       b.limits.General,
	})
}

// tasks resolves the workspace's project ids first and then queries tasks
// within them. The second query depends on the first, so they run in order.
func (b *Builder) tasks(ctx context.Context, workspaceID string, f store.TaskFilter) ([]models.Task, error) {
	ids, err := b.store.ProjectIDs(ctx, workspaceID)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []models.Task{}, nil
	}

	f.ProjectIDs = ids
	f.NewestFirst = true
	f.Limit = b.limits.Tasks
	return b.store.Tasks(ctx, f)
}

func listTasks(ctx context.Context, b *Builder, workspaceID string) (interface{}, error) {
	return b.tasks(ctx, workspaceID, store.TaskFilter{})
}

func overdueTasks(ctx context.Context, b *Builder, workspaceID string) (interface{}, error) {
	today := b.today()
	return b.tasks(ctx, workspaceID, store.TaskFilter{
		EndBefore:     &today,
		ExcludeStatus: models.StatusCompleted,
	})
}

func urgentTasks(ctx context.Context, b *Builder, workspaceID string) (interface{}, error) {
	return b.tasks(ctx, workspaceID, store.TaskFilter{
		Priority: models.PriorityCritical,
	})
}

func listResources(ctx context.Context, b *Builder, workspaceID string) (interface{}, error) {
	return b.store.Resources(ctx, store.ResourceFilter{
		WorkspaceID: workspaceID,
		Limit:       b.limits.Resources,
	})
}

func availableResources(ctx context.Context, b *Builder, workspaceID string) (interface{}, error) {
	return b.store.Resources(ctx, store.ResourceFilter{
		WorkspaceID:     workspaceID,
		MinAvailability: store.Float(b.limits.AvailableAt),
		Limit:           b.limits.Resources,
	})
}

func busyResources(ctx context.Context, b *Builder, workspaceID string) (interface{}, error) {
	return b.store.Resources(ctx, store.ResourceFilter{
		WorkspaceID:     workspaceID,
		MaxAvailability: store.Float(b.limits.BusyBelow),
		Limit:           b.limits.Resources,
	})
}
