// internal/models/query_types.go
package models

// QueryType names a data-fetch plan. Plan names match the intent ids that
// select them, except QueryTypeGeneral which is the fallback.
type QueryType string

const (
	QueryTypeListProjects    QueryType = "list_projects"
	QueryTypeProjectDetails  QueryType = "project_details"
	QueryTypeOverdueProjects QueryType = "overdue_projects"

	QueryTypeListTasks    QueryType = "list_tasks"
	QueryTypeOverdueTasks QueryType = "overdue_tasks"
	QueryTypeUrgentTasks  QueryType = "urgent_tasks"

	QueryTypeListResources      QueryType = "list_resources"
	QueryTypeAvailableResources QueryType = "available_resources"
	QueryTypeBusyResources      QueryType = "busy_resources"

	QueryTypeGeneral QueryType = "general"
)

// Status and priority literals stored in the projects and tasks tables.
const (
	StatusCompleted  = "Completed"
	PriorityCritical = "Critical"
)
