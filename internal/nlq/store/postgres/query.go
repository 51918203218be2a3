package postgres

const (
	querySelectProjects = `SELECT id, name, COALESCE(status, '') AS status, COALESCE(progress, 0) AS progress, start_date, end_date, workspace_id FROM projects WHERE workspace_id = ? AND deleted_at IS NULL`

	querySelectProjectIDs = `SELECT id FROM projects WHERE workspace_id = ? AND deleted_at IS NULL`

	querySelectTasks = `SELECT id, name, COALESCE(status, '') AS status, COALESCE(priority, '') AS priority, COALESCE(progress, 0) AS progress, end_date, project_id, updated_at FROM tasks WHERE project_id IN (?)`

	querySelectResources = `SELECT id, name, COALESCE(role, '') AS role, COALESCE(availability, 0) AS availability, workspace_id FROM resources WHERE workspace_id = ?`
)
