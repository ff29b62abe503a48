package models

// Priority represents the urgency tier of a task. Tiers are both the grouping
// key in the plan document and the ranking key for resume suggestions.
type Priority string

const (
	PriorityHigh   Priority = "HIGH"
	PriorityMedium Priority = "MEDIUM"
	PriorityLow    Priority = "LOW"
)

// TierOrder is the fixed rendering and ranking order for priority tiers.
var TierOrder = []Priority{PriorityHigh, PriorityMedium, PriorityLow}

// ProjectType represents a project archetype inferred from requirements text,
// used to select a fallback task set.
type ProjectType string

const (
	ProjectTypeWeb     ProjectType = "web"
	ProjectTypeMobile  ProjectType = "mobile"
	ProjectTypeAPI     ProjectType = "api"
	ProjectTypeData    ProjectType = "data"
	ProjectTypeGeneric ProjectType = "generic"
)

// Task represents a single planned unit of work. The title is the task's
// identity: it must not be empty and must remain byte-stable once written to
// the plan file, because later lookups match on the exact text.
type Task struct {
	Title       string   `yaml:"title"`
	Priority    Priority `yaml:"priority"`
	Description string   `yaml:"description,omitempty"`
	Subtasks    []string `yaml:"subtasks,omitempty"`
}

// ProjectInfo is the structured result of extracting requirements text.
// It is produced once per initialization and never persisted directly; only
// its rendering into the plan file is.
type ProjectInfo struct {
	ProjectName        string `yaml:"project_name"`
	ProjectDescription string `yaml:"project_description"`
	EnvironmentSetup   string `yaml:"environment_setup"`
	Tasks              []Task `yaml:"tasks"`
}

// TaskStatusEntry is one checkbox line parsed back from the plan file.
type TaskStatusEntry struct {
	Title     string `yaml:"title" json:"title"`
	Completed bool   `yaml:"completed" json:"completed"`
}

// ParsedStatus is the derived result of reading a plan file back. Subtask
// checkboxes are counted alongside top-level tasks because the parser does
// not distinguish indentation level.
type ParsedStatus struct {
	ProjectName    string            `yaml:"project_name" json:"project_name"`
	Status         string            `yaml:"status" json:"status"`
	LastUpdated    string            `yaml:"last_updated" json:"last_updated"`
	Tasks          []TaskStatusEntry `yaml:"tasks" json:"tasks"`
	CompletedTasks int               `yaml:"completed_tasks" json:"completed_tasks"`
	TotalTasks     int               `yaml:"total_tasks" json:"total_tasks"`
}
