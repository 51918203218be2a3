package vocabulary

// DefaultTable returns the built-in vocabulary. Within a category the narrower
// entries come first so "overdue tasks" resolves before a plain task listing.
func DefaultTable() *Table {
	return mustNew(defaultEntries()...)
}

func defaultEntries() []ActionWord {
	workNouns := concat(projectNouns, taskNouns)

	return []ActionWord{
		// projects
		{
			ID:          "overdue_projects",
			Category:    CategoryProjects,
			Keywords:    expand(projectNouns, overdueMods),
			Aliases:     expandAfter(projectNouns, overdueTails),
			Description: "Projects whose end date has passed and are not completed",
		},
		{
			ID:          "project_details",
			Category:    CategoryProjects,
			Keywords:    merge(expand(projectNouns, detailLeads), expandAfter(projectNouns, detailTails)),
			Description: "Details for one or more projects",
		},
		{
			ID:          "list_projects",
			Category:    CategoryProjects,
			Keywords:    merge(expand(projectNouns, listVerbs), []string{"project list", "list of projects"}),
			Aliases:     []string{"what am i working on", "what are we working on"},
			Description: "Projects in the workspace",
		},

		// tasks
		{
			ID:          "overdue_tasks",
			Category:    CategoryTasks,
			Keywords:    expand(taskNouns, overdueMods),
			Aliases:     expandAfter(taskNouns, overdueTails),
			Description: "Tasks past their end date that are not completed",
		},
		{
			ID:          "urgent_tasks",
			Category:    CategoryTasks,
			Keywords:    expand(taskNouns, urgentMods),
			Aliases:     expandAfter(taskNouns, []string{"to do first", "that need attention", "marked critical"}),
			Description: "Critical priority tasks",
		},
		{
			ID:          "list_tasks",
			Category:    CategoryTasks,
			Keywords:    merge(expand(taskNouns, listVerbs), []string{"task list", "list of tasks", "todo list", "to-do list"}),
			Aliases:     []string{"what should i work on", "what do i need to do"},
			Description: "Tasks across the workspace's projects, most recently updated first",
		},

		// resources
		{
			ID:          "available_resources",
			Category:    CategoryResources,
			Keywords:    expand(resourceNouns, availableMods),
			Aliases:     []string{"who is available", "who's available", "who is free", "who has capacity", "spare capacity"},
			Description: "Resources with at least half their time free",
		},
		{
			ID:          "busy_resources",
			Category:    CategoryResources,
			Keywords:    expand(resourceNouns, busyMods),
			Aliases:     []string{"who is busy", "who's busy", "no capacity", "no availability", "overworked"},
			Description: "Resources with little or no availability left",
		},
		{
			ID:       "list_resources",
			Category: CategoryResources,
			Keywords: merge(
				expand(resourceNouns, listVerbs),
				[]string{"team capacity", "resource allocation", "team workload", "resource list"},
			),
			Aliases:     []string{"who is on the team", "who's on the team", "who works here"},
			Description: "Resources in the workspace",
		},

		// stakeholders
		{
			ID:          "list_stakeholders",
			Category:    CategoryStakeholders,
			Keywords:    expand(stakeholderNouns, listVerbs),
			Aliases:     []string{"who are the stakeholders", "who is involved", "key contacts"},
			Description: "Stakeholders attached to the workspace's projects",
		},

		// status
		{
			ID:          "project_status",
			Category:    CategoryStatus,
			Keywords:    merge(expand(projectNouns, statusLeads), expandAfter(projectNouns, statusTails)),
			Description: "Progress and health of projects",
		},
		{
			ID:          "task_status",
			Category:    CategoryStatus,
			Keywords:    merge(expand(taskNouns, statusLeads), expandAfter(taskNouns, statusTails)),
			Description: "Progress of tasks",
		},
		{
			ID:          "completed_items",
			Category:    CategoryStatus,
			Keywords:    expand(workNouns, completedMods),
			Description: "Completed projects and tasks",
		},
		{
			ID:          "in_progress_items",
			Category:    CategoryStatus,
			Keywords:    expand(workNouns, inProgressMods),
			Description: "Projects and tasks currently underway",
		},
		{
			ID:          "pending_items",
			Category:    CategoryStatus,
			Keywords:    expand(workNouns, pendingMods),
			Description: "Projects and tasks not started yet",
		},

		// time
		{
			ID:          "due_today",
			Category:    CategoryTime,
			Keywords:    expand([]string{"today", "tonight"}, dueLeads),
			Description: "Work due today",
		},
		{
			ID:          "due_this_week",
			Category:    CategoryTime,
			Keywords:    expand([]string{"this week", "end of week", "the end of the week"}, dueLeads),
			Description: "Work due this week",
		},
		{
			ID:          "due_this_month",
			Category:    CategoryTime,
			Keywords:    expand([]string{"this month", "end of month", "the end of the month"}, dueLeads),
			Description: "Work due this month",
		},
		{
			ID:       "upcoming_deadlines",
			Category: CategoryTime,
			Keywords: []string{
				"upcoming deadline", "upcoming deadlines", "next deadline", "next deadlines",
				"upcoming milestone", "upcoming milestones", "due soon", "coming up",
			},
			Description: "Deadlines in the near future",
		},
	}
}
