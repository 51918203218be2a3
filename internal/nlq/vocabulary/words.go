package vocabulary

// Synonym pools. Entries in the default table are cross products of these.
var (
	projectNouns = []string{
		"project", "projects", "initiative", "initiatives", "program", "programs",
		"programme", "programmes", "portfolio", "workstream", "workstreams",
	}

	taskNouns = []string{
		"task", "tasks", "todo", "todos", "to-do", "to-dos", "ticket", "tickets",
		"work item", "work items", "action item", "action items", "assignment", "assignments",
		"deliverable", "deliverables", "activity", "activities",
	}

	resourceNouns = []string{
		"resource", "resources", "team member", "team members", "teammate", "teammates",
		"people", "staff", "employee", "employees", "engineer", "engineers",
		"developer", "developers", "designer", "designers",
	}

	stakeholderNouns = []string{
		"stakeholder", "stakeholders", "client", "clients", "customer", "customers",
		"sponsor", "sponsors", "partner", "partners", "decision maker", "decision makers",
	}

	listVerbs = []string{
		"show", "show me", "show all", "show me all", "list", "list all", "list my",
		"get", "get all", "get me", "fetch", "display", "view", "see", "find",
		"give me", "pull up", "what are the", "what are my", "all", "my", "our",
	}

	overdueMods = []string{
		"overdue", "late", "past due", "past-due", "delayed", "missed", "slipping",
	}

	overdueTails = []string{
		"behind schedule", "past deadline", "past their deadline", "that are overdue", "that are late",
	}

	urgentMods = []string{
		"urgent", "critical", "high priority", "high-priority", "top priority",
		"important", "blocking", "blocker", "p0", "emergency",
	}

	detailLeads = []string{
		"details of", "details of the", "details for", "details for the", "details about",
		"details on", "info on", "info about", "information on", "information about",
		"overview of", "overview of the", "summary of", "summary of the",
		"tell me about", "tell me about the", "describe", "describe the",
	}

	detailTails = []string{
		"details", "detail", "info", "information", "overview", "summary", "breakdown", "deep dive",
	}

	availableMods = []string{
		"available", "free", "idle", "unassigned", "unallocated", "underutilized", "underutilised", "benched",
	}

	busyMods = []string{
		"busy", "overloaded", "overallocated", "over-allocated", "overbooked",
		"fully booked", "maxed out", "swamped",
	}

	statusLeads = []string{
		"status of", "status of the", "progress of", "progress of the", "progress on",
		"health of", "health of the", "how is the", "how are the", "how is my", "how are my",
	}

	statusTails = []string{
		"status", "statuses", "progress", "health", "update", "updates",
	}

	completedMods = []string{
		"completed", "finished", "done", "closed", "delivered", "shipped",
	}

	inProgressMods = []string{
		"in progress", "in-progress", "ongoing", "active", "open", "current", "running",
	}

	pendingMods = []string{
		"pending", "not started", "queued", "on hold", "blocked", "waiting",
	}

	dueLeads = []string{
		"due", "deadline", "deadlines", "ending", "finishing", "scheduled", "scheduled for",
		"happening", "planned for",
	}
)

func concat(lists ...[]string) []string {
	var out []string
	for _, l := range lists {
		out = append(out, l...)
	}
	return out
}
