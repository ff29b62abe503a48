package models

// GlobalConfig holds settings read from the .plancraft.yaml configuration file
// in the project root. Zero values are replaced with defaults at load time.
type GlobalConfig struct {
	// PlanFilename is the name of the plan document inside the project root.
	PlanFilename string `yaml:"plan_filename"`
	// DefaultProjectName is used when requirements text carries no
	// "Project Name:" line.
	DefaultProjectName string `yaml:"default_project_name"`
	// ResumeMaxTasks caps how many next-task suggestions resume returns.
	ResumeMaxTasks int `yaml:"resume_max_tasks"`
	// ExtraHighKeywords and ExtraLowKeywords extend the built-in priority
	// classifier keyword tables.
	ExtraHighKeywords []string `yaml:"extra_high_keywords"`
	ExtraLowKeywords  []string `yaml:"extra_low_keywords"`
}
