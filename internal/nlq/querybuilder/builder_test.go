package querybuilder

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"projectflow-workers/internal/models"
	"projectflow-workers/internal/nlq/intent"
	"projectflow-workers/internal/nlq/processor"
	"projectflow-workers/internal/nlq/store"
	"projectflow-workers/internal/nlq/store/memory"
)

// ==========================
// Test Helper Functions
// ==========================

var fixedNow = time.Date(2025, 3, 14, 15, 30, 0, 0, time.UTC)

func day(offset int) *time.Time {
	d := time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC).AddDate(0, 0, offset)
	return &d
}

func processed(intentID string) processor.ProcessedQuery {
	return processor.ProcessedQuery{
		OriginalInput: intentID,
		Intent:        intent.Intent{Intent: intentID, Confidence: intent.VocabularyConfidence, Source: intent.SourceVocabulary},
	}
}

func newTestBuilder(s store.Store) *Builder {
	return New(s, WithClock(func() time.Time { return fixedNow }))
}

func workspaceDataset() memory.Dataset {
	deleted := day(-30)
	return memory.Dataset{
		Projects: []models.Project{
			{ID: "p1", Name: "Apollo", Status: "Active", WorkspaceID: "W1", EndDate: day(-3)},
			{ID: "p2", Name: "Borealis", Status: "Completed", WorkspaceID: "W1", EndDate: day(-10)},
			{ID: "p3", Name: "Cobalt", Status: "Active", WorkspaceID: "W1", EndDate: day(0)},
			{ID: "p4", Name: "Deleted", Status: "Active", WorkspaceID: "W1", EndDate: day(-5), DeletedAt: deleted},
			{ID: "p5", Name: "Other", Status: "Active", WorkspaceID: "W2", EndDate: day(-5)},
			{ID: "p6", Name: "Open ended", Status: "Planning", WorkspaceID: "W1"},
		},
		Tasks: []models.Task{
			{ID: "t1", ProjectID: "p1", Status: "In Progress", Priority: "High", EndDate: day(-1), UpdatedAt: fixedNow.Add(-1 * time.Hour)},
			{ID: "t2", ProjectID: "p1", Status: "Completed", Priority: "Critical", EndDate: day(-2), UpdatedAt: fixedNow.Add(-2 * time.Hour)},
			{ID: "t3", ProjectID: "p3", Status: "To Do", Priority: "Critical", EndDate: day(0), UpdatedAt: fixedNow.Add(-30 * time.Minute)},
			{ID: "t4", ProjectID: "p2", Status: "Blocked", Priority: "Low", EndDate: day(-7), UpdatedAt: fixedNow.Add(-5 * time.Hour)},
			{ID: "t5", ProjectID: "p4", Status: "To Do", Priority: "Critical", EndDate: day(-7), UpdatedAt: fixedNow},
			{ID: "t6", ProjectID: "p5", Status: "To Do", Priority: "Critical", EndDate: day(-7), UpdatedAt: fixedNow},
			{ID: "t7", ProjectID: "p6", Status: "To Do", Priority: "Medium", UpdatedAt: fixedNow.Add(-10 * time.Hour)},
		},
		Resources: []models.Resource{
			{ID: "r1", Name: "Ana", Availability: 0, WorkspaceID: "W1"},
			{ID: "r2", Name: "Ben", Availability: 29.99, WorkspaceID: "W1"},
			{ID: "r3", Name: "Cy", Availability: 30, WorkspaceID: "W1"},
			{ID: "r4", Name: "Di", Availability: 49.99, WorkspaceID: "W1"},
			{ID: "r5", Name: "Ed", Availability: 50, WorkspaceID: "W1"},
			{ID: "r6", Name: "Flo", Availability: 100, WorkspaceID: "W1"},
			{ID: "r7", Name: "Gus", Availability: 90, WorkspaceID: "W2"},
		},
	}
}

func projectIDs(t *testing.T, r *QueryResult) []string {
	rows, ok := r.Data.([]models.Project)
	require.True(t, ok, "expected []models.Project, got %T", r.Data)
	ids := make([]string, len(rows))
	for i, p := range rows {
		ids[i] = p.ID
	}
	return ids
}

func taskIDs(t *testing.T, r *QueryResult) []string {
	rows, ok := r.Data.([]models.Task)
	require.True(t, ok, "expected []models.Task, got %T", r.Data)
	ids := make([]string, len(rows))
	for i, task := range rows {
		ids[i] = task.ID
	}
	return ids
}

func resourceIDs(t *testing.T, r *QueryResult) []string {
	rows, ok := r.Data.([]models.Resource)
	require.True(t, ok, "expected []models.Resource, got %T", r.Data)
	ids := make([]string, len(rows))
	for i, res := range rows {
		ids[i] = res.ID
	}
	return ids
}

// recordingStore captures filters and can fail on demand.
type recordingStore struct {
	calls       []string
	projectF    []store.ProjectFilter
	taskF       []store.TaskFilter
	resourceF   []store.ResourceFilter
	ids         []string
	err         error
	failOnTasks bool
}

func (s *recordingStore) Projects(_ context.Context, f store.ProjectFilter) ([]models.Project, error) {
	s.calls = append(s.calls, "projects")
	s.projectF = append(s.projectF, f)
	if s.err != nil {
		return nil, s.err
	}
	return []models.Project{}, nil
}

func (s *recordingStore) ProjectIDs(_ context.Context, workspaceID string) ([]string, error) {
	s.calls = append(s.calls, "project_ids:"+workspaceID)
	if s.err != nil && !s.failOnTasks {
		return nil, s.err
	}
	return s.ids, nil
}

func (s *recordingStore) Tasks(_ context.Context, f store.TaskFilter) ([]models.Task, error) {
	s.calls = append(s.calls, "tasks")
	s.taskF = append(s.taskF, f)
	if s.err != nil {
		return nil, s.err
	}
	return []models.Task{}, nil
}

func (s *recordingStore) Resources(_ context.Context, f store.ResourceFilter) ([]models.Resource, error) {
	s.calls = append(s.calls, "resources")
	s.resourceF = append(s.resourceF, f)
	if s.err != nil {
		return nil, s.err
	}
	return []models.Resource{}, nil
}

// ==========================
// Plan selection
// ==========================

func TestExecute_PlanSelection(t *testing.T) {
	tests := []struct {
		intent   string
		wantPlan string
		wantCall string
	}{
		{"list_projects", "list_projects", "projects"},
		{"project_details", "project_details", "projects"},
		{"overdue_projects", "overdue_projects", "projects"},
		{"list_tasks", "list_tasks", "tasks"},
		{"overdue_tasks", "overdue_tasks", "tasks"},
		{"urgent_tasks", "urgent_tasks", "tasks"},
		{"list_resources", "list_resources", "resources"},
		{"available_resources", "available_resources", "resources"},
		{"busy_resources", "busy_resources", "resources"},
		{"unknown", PlanGeneral, "projects"},
		{"overdue_items", PlanGeneral, "projects"},
		{"list_stakeholders", PlanGeneral, "projects"},
		{"", PlanGeneral, "projects"},
	}

	for _, tt := range tests {
		t.Run(tt.intent, func(t *testing.T) {
			s := &recordingStore{ids: []string{"p1"}}
			b := newTestBuilder(s)

			result, err := b.Execute(context.Background(), processed(tt.intent), "W1")

			require.NoError(t, err)
			assert.Equal(t, tt.wantPlan, result.PlanUsed)
			assert.Equal(t, tt.wantPlan, PlanFor(tt.intent))
			assert.Equal(t, tt.wantCall, s.calls[len(s.calls)-1])
		})
	}
}

func TestExecute_ProjectFilters(t *testing.T) {
	today := *day(0)

	tests := []struct {
		intent string
		want   store.ProjectFilter
	}{
		{"list_projects", store.ProjectFilter{WorkspaceID: "W1", Limit: 10}},
		{"project_details", store.ProjectFilter{WorkspaceID: "W1", Limit: 10}},
		{"overdue_projects", store.ProjectFilter{WorkspaceID: "W1", EndBefore: &today, ExcludeStatus: "Completed", Limit: 10}},
		{"unknown", store.ProjectFilter{WorkspaceID: "W1", Limit: 5}},
	}

	for _, tt := range tests {
		t.Run(tt.intent, func(t *testing.T) {
			s := &recordingStore{}
			_, err := newTestBuilder(s).Execute(context.Background(), processed(tt.intent), "W1")

			require.NoError(t, err)
			require.Len(t, s.projectF, 1)
			assert.Equal(t, tt.want, s.projectF[0])
		})
	}
}

func TestExecute_TaskPlansAreTwoStep(t *testing.T) {
	today := *day(0)

	tests := []struct {
		intent string
		want   store.TaskFilter
	}{
		{"list_tasks", store.TaskFilter{ProjectIDs: []string{"p1", "p3"}, NewestFirst: true, Limit: 20}},
		{"overdue_tasks", store.TaskFilter{ProjectIDs: []string{"p1", "p3"}, EndBefore: &today, ExcludeStatus: "Completed", NewestFirst: true, Limit: 20}},
		{"urgent_tasks", store.TaskFilter{ProjectIDs: []string{"p1", "p3"}, Priority: "Critical", NewestFirst: true, Limit: 20}},
	}

	for _, tt := range tests {
		t.Run(tt.intent, func(t *testing.T) {
			s := &recordingStore{ids: []string{"p1", "p3"}}
			_, err := newTestBuilder(s).Execute(context.Background(), processed(tt.intent), "W1")

			require.NoError(t, err)
			assert.Equal(t, []string{"project_ids:W1", "tasks"}, s.calls)
			require.Len(t, s.taskF, 1)
			assert.Equal(t, tt.want, s.taskF[0])
		})
	}
}

func TestExecute_NoProjectsSkipsTaskQuery(t *testing.T) {
	s := &recordingStore{ids: []string{}}

	result, err := newTestBuilder(s).Execute(context.Background(), processed("overdue_tasks"), "W9")

	require.NoError(t, err)
	assert.Equal(t, []string{"project_ids:W9"}, s.calls)
	assert.Equal(t, "overdue_tasks", result.PlanUsed)
	assert.Equal(t, []models.Task{}, result.Data)
	assert.Equal(t, 0, result.RowCount())
}

func TestExecute_ResourceFilters(t *testing.T) {
	tests := []struct {
		intent string
		want   store.ResourceFilter
	}{
		{"list_resources", store.ResourceFilter{WorkspaceID: "W1", Limit: 20}},
		{"available_resources", store.ResourceFilter{WorkspaceID: "W1", MinAvailability: store.Float(50), Limit: 20}},
		{"busy_resources", store.ResourceFilter{WorkspaceID: "W1", MaxAvailability: store.Float(30), Limit: 20}},
	}

	for _, tt := range tests {
		t.Run(tt.intent, func(t *testing.T) {
			s := &recordingStore{}
			_, err := newTestBuilder(s).Execute(context.Background(), processed(tt.intent), "W1")

			require.NoError(t, err)
			require.Len(t, s.resourceF, 1)
			assert.Equal(t, tt.want, s.resourceF[0])
		})
	}
}

// ==========================
// Error propagation
// ==========================

func TestExecute_StoreErrorsPropagateUnchanged(t *testing.T) {
	errBoom := errors.New("connection reset by peer")

	for _, name := range []string{"list_projects", "overdue_tasks", "busy_resources", "unknown"} {
		t.Run(name, func(t *testing.T) {
			s := &recordingStore{ids: []string{"p1"}, err: errBoom}

			result, err := newTestBuilder(s).Execute(context.Background(), processed(name), "W1")

			assert.Nil(t, result)
			assert.Same(t, errBoom, err)
			assert.Len(t, s.calls, 1, "no retry expected")
		})
	}
}

func TestExecute_TaskStepErrorAfterLookup(t *testing.T) {
	errBoom := errors.New("timeout")
	s := &recordingStore{ids: []string{"p1"}, err: errBoom, failOnTasks: true}

	_, err := newTestBuilder(s).Execute(context.Background(), processed("list_tasks"), "W1")

	assert.Same(t, errBoom, err)
	assert.Equal(t, []string{"project_ids:W1", "tasks"}, s.calls)
}

// ==========================
// Behaviour against the memory store
// ==========================

func TestExecute_OverdueTasksScenario(t *testing.T) {
	b := newTestBuilder(memory.New(workspaceDataset()))
	p := processor.New(nil)

	pq := p.Process("list my overdue tasks")
	require.Equal(t, "overdue_tasks", pq.Intent.Intent)

	result, err := b.Execute(context.Background(), pq, "W1")
	require.NoError(t, err)

	assert.Equal(t, "overdue_tasks", result.PlanUsed)
	assert.Equal(t, []string{"t1", "t4"}, taskIDs(t, result))
	for _, task := range result.Data.([]models.Task) {
		assert.NotEqual(t, models.StatusCompleted, task.Status)
		require.NotNil(t, task.EndDate)
		assert.True(t, task.EndDate.Before(*day(0)))
	}
}

func TestExecute_NonsenseFallsBackToGeneral(t *testing.T) {
	data := workspaceDataset()
	for i := 0; i < 8; i++ {
		data.Projects = append(data.Projects, models.Project{ID: fmt.Sprintf("x%d", i), WorkspaceID: "W1"})
	}
	b := newTestBuilder(memory.New(data))

	result, err := b.Execute(context.Background(), processor.New(nil).Process("asdfqwerty nonsense"), "W1")

	require.NoError(t, err)
	assert.Equal(t, PlanGeneral, result.PlanUsed)
	assert.Equal(t, []string{"p1", "p2", "p3", "p6", "x0"}, projectIDs(t, result))
}

func TestExecute_ProjectPlans(t *testing.T) {
	b := newTestBuilder(memory.New(workspaceDataset()))

	list, err := b.Execute(context.Background(), processed("list_projects"), "W1")
	require.NoError(t, err)
	assert.Equal(t, []string{"p1", "p2", "p3", "p6"}, projectIDs(t, list))

	details, err := b.Execute(context.Background(), processed("project_details"), "W1")
	require.NoError(t, err)
	assert.Equal(t, list.Data, details.Data, "project_details returns the plain list")

	overdue, err := b.Execute(context.Background(), processed("overdue_projects"), "W1")
	require.NoError(t, err)
	assert.Equal(t, []string{"p1"}, projectIDs(t, overdue))
}

func TestExecute_TaskOrderingAndScope(t *testing.T) {
	b := newTestBuilder(memory.New(workspaceDataset()))

	all, err := b.Execute(context.Background(), processed("list_tasks"), "W1")
	require.NoError(t, err)
	assert.Equal(t, []string{"t3", "t1", "t2", "t4", "t7"}, taskIDs(t, all))

	urgent, err := b.Execute(context.Background(), processed("urgent_tasks"), "W1")
	require.NoError(t, err)
	assert.Equal(t, []string{"t3", "t2"}, taskIDs(t, urgent))
}

func TestExecute_AvailabilityBands(t *testing.T) {
	b := newTestBuilder(memory.New(workspaceDataset()))
	ctx := context.Background()

	available, err := b.Execute(ctx, processed("available_resources"), "W1")
	require.NoError(t, err)
	busy, err := b.Execute(ctx, processed("busy_resources"), "W1")
	require.NoError(t, err)
	all, err := b.Execute(ctx, processed("list_resources"), "W1")
	require.NoError(t, err)

	assert.Equal(t, []string{"r5", "r6"}, resourceIDs(t, available))
	assert.Equal(t, []string{"r1", "r2"}, resourceIDs(t, busy))
	assert.Len(t, resourceIDs(t, all), 6)

	for _, r := range available.Data.([]models.Resource) {
		assert.GreaterOrEqual(t, r.Availability, 50.0)
	}
	for _, r := range busy.Data.([]models.Resource) {
		assert.Less(t, r.Availability, 30.0)
	}

	// [30,50) is its own band
	neither := map[string]bool{"r3": true, "r4": true}
	for _, id := range append(resourceIDs(t, available), resourceIDs(t, busy)...) {
		assert.False(t, neither[id], "%s should be in neither band", id)
	}
}

func TestExecute_RowCaps(t *testing.T) {
	data := memory.Dataset{}
	for i := 0; i < 30; i++ {
		id := fmt.Sprintf("p%02d", i)
		data.Projects = append(data.Projects, models.Project{ID: id, WorkspaceID: "W1"})
		data.Tasks = append(data.Tasks, models.Task{ID: "t" + id, ProjectID: id, UpdatedAt: fixedNow.Add(time.Duration(i) * time.Minute)})
		data.Resources = append(data.Resources, models.Resource{ID: "r" + id, WorkspaceID: "W1", Availability: 100})
	}
	b := newTestBuilder(memory.New(data))
	ctx := context.Background()

	tests := []struct {
		intent string
		want   int
	}{
		{"list_projects", 10},
		{"overdue_projects", 0},
		{"list_tasks", 20},
		{"list_resources", 20},
		{"available_resources", 20},
		{"unknown", 5},
	}
	for _, tt := range tests {
		result, err := b.Execute(ctx, processed(tt.intent), "W1")
		require.NoError(t, err)
		assert.Equal(t, tt.want, result.RowCount(), tt.intent)
	}

	tasks, err := b.Execute(ctx, processed("list_tasks"), "W1")
	require.NoError(t, err)
	ids := taskIDs(t, tasks)
	assert.Equal(t, "tp29", ids[0])
	assert.Equal(t, "tp10", ids[19])
}

func TestExecute_CustomLimits(t *testing.T) {
	s := &recordingStore{}
	limits := DefaultLimits()
	limits.General = 3
	limits.BusyBelow = 20

	b := New(s, WithLimits(limits), WithClock(func() time.Time { return fixedNow }))
	_, err := b.Execute(context.Background(), processed("unknown"), "W1")
	require.NoError(t, err)
	_, err = b.Execute(context.Background(), processed("busy_resources"), "W1")
	require.NoError(t, err)

	assert.Equal(t, 3, s.projectF[0].Limit)
	assert.Equal(t, 20.0, *s.resourceF[0].MaxAvailability)
}

func TestExecute_EmptyWorkspace(t *testing.T) {
	b := newTestBuilder(memory.New(workspaceDataset()))

	result, err := b.Execute(context.Background(), processed("list_projects"), "nobody")

	require.NoError(t, err)
	assert.Equal(t, "list_projects", result.PlanUsed)
	assert.Empty(t, projectIDs(t, result))
}

func TestBuilder_TodayIsUTCMidnight(t *testing.T) {
	loc := time.FixedZone("UTC+10", 10*3600)
	b := New(nil, WithClock(func() time.Time { return time.Date(2025, 3, 15, 8, 0, 0, 0, loc) }))

	assert.Equal(t, time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC), b.today())
}

// ==========================
// Benchmarks
// ==========================

func BenchmarkExecute_OverdueTasks(b *testing.B) {
	builder := newTestBuilder(memory.New(workspaceDataset()))
	pq := processed("overdue_tasks")
	ctx := context.Background()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = builder.Execute(ctx, pq, "W1")
	}
}
