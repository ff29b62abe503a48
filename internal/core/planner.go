package core

import (
	"fmt"

	"github.com/plancraft/plancraft/pkg/models"
)

// defaultNextSteps is the boilerplate next-steps block written into every new
// plan document.
var defaultNextSteps = []string{
	"Review and refine tasks",
	"Set up development environment",
	"Begin implementation of high priority tasks",
}

// PlanCreateInput mirrors storage.CreateInput. Defining it here keeps core
// independent of the storage package.
type PlanCreateInput struct {
	ProjectName      string
	Description      string
	EnvironmentSetup string
	Tasks            []models.Task
	NextSteps        []string
	Notes            string
}

// PlanStore is the subset of storage.PlanStore that the planner needs.
type PlanStore interface {
	Create(input PlanCreateInput) (string, error)
	UpdateStatus(taskTitle string, completed bool) (bool, error)
	ReadStatus() (*models.ParsedStatus, error)
	Path() string
}

// PlanStoreFactory returns the PlanStore for a given project root. Each
// project root owns exactly one plan file.
type PlanStoreFactory func(projectRoot string) PlanStore

// EventLogger is the subset of the observability event log the planner needs.
type EventLogger interface {
	LogEvent(eventType string, data map[string]any) error
}

// InitializeResult is the outcome of initializing a project plan.
type InitializeResult struct {
	Success      bool                `json:"success"`
	Message      string              `json:"message"`
	ProjectInfo  *models.ProjectInfo `json:"project_info,omitempty"`
	TaskFilePath string              `json:"task_file_path,omitempty"`
}

// OperationResult is the outcome of a task completion update.
type OperationResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// StatusResult is the outcome of reading a project's status.
type StatusResult struct {
	Success bool                 `json:"success"`
	Message string               `json:"message,omitempty"`
	Status  *models.ParsedStatus `json:"status,omitempty"`
}

// ResumeResult is the outcome of resuming a project: the current progress
// plus suggested next tasks ranked by priority tier.
type ResumeResult struct {
	Success     bool     `json:"success"`
	Message     string   `json:"message"`
	ProjectName string   `json:"project_name,omitempty"`
	Status      string   `json:"status,omitempty"`
	Progress    string   `json:"progress,omitempty"`
	NextTasks   []string `json:"next_tasks,omitempty"`
}

// Planner composes the requirements extractor and the plan store to implement
// the user-facing operations. Every method returns a result object; errors
// never escape the planner boundary.
type Planner interface {
	Initialize(projectRoot, requirements string) InitializeResult
	CompleteTask(projectRoot, taskTitle string, completed bool) OperationResult
	GetStatus(projectRoot string) StatusResult
	ResumeProject(projectRoot string) ResumeResult
}

type planner struct {
	extractor    RequirementsExtractor
	classifier   PriorityClassifier
	storeFor     PlanStoreFactory
	events       EventLogger
	maxNextTasks int
}

// NewPlanner creates a Planner with all dependencies injected. events may be
// nil if observability is disabled. maxNextTasks values below 1 fall back to 3.
func NewPlanner(extractor RequirementsExtractor, classifier PriorityClassifier, storeFor PlanStoreFactory, events EventLogger, maxNextTasks int) Planner {
	if maxNextTasks < 1 {
		maxNextTasks = 3
	}
	return &planner{
		extractor:    extractor,
		classifier:   classifier,
		storeFor:     storeFor,
		events:       events,
		maxNextTasks: maxNextTasks,
	}
}

// Initialize extracts a task plan from requirements text and writes the plan
// document into the project root, overwriting any previous plan.
func (p *planner) Initialize(projectRoot, requirements string) InitializeResult {
	info := p.extractor.Extract(requirements)

	store := p.storeFor(projectRoot)
	path, err := store.Create(PlanCreateInput{
		ProjectName:      info.ProjectName,
		Description:      info.ProjectDescription,
		EnvironmentSetup: info.EnvironmentSetup,
		Tasks:            info.Tasks,
		NextSteps:        defaultNextSteps,
		Notes:            "",
	})
	if err != nil {
		return InitializeResult{
			Success: false,
			Message: fmt.Sprintf("creating plan: %s", err),
		}
	}

	p.logEvent("plan.initialized", map[string]any{
		"project_name": info.ProjectName,
		"project_root": projectRoot,
		"task_count":   len(info.Tasks),
	})

	return InitializeResult{
		Success:      true,
		Message:      fmt.Sprintf("Project plan created with %d tasks", len(info.Tasks)),
		ProjectInfo:  &info,
		TaskFilePath: path,
	}
}

// CompleteTask flips a task's checkbox in the plan document. A false store
// result covers both "task not found" and "already in the requested state";
// the two are distinguished only by wording, not by error kind.
func (p *planner) CompleteTask(projectRoot, taskTitle string, completed bool) OperationResult {
	changed, err := p.storeFor(projectRoot).UpdateStatus(taskTitle, completed)
	if err != nil {
		return OperationResult{
			Success: false,
			Message: fmt.Sprintf("updating task: %s", err),
		}
	}
	if !changed {
		return OperationResult{
			Success: false,
			Message: fmt.Sprintf("Task %q not found or already in the requested state", taskTitle),
		}
	}

	state := "complete"
	if !completed {
		state = "incomplete"
	}

	p.logEvent("task.completed", map[string]any{
		"project_root": projectRoot,
		"task_title":   taskTitle,
		"completed":    completed,
	})

	return OperationResult{
		Success: true,
		Message: fmt.Sprintf("Marked task as %s: %s", state, taskTitle),
	}
}

// GetStatus reads the plan document back into structured status.
func (p *planner) GetStatus(projectRoot string) StatusResult {
	status, err := p.storeFor(projectRoot).ReadStatus()
	if err != nil {
		return StatusResult{
			Success: false,
			Message: fmt.Sprintf("reading status: %s", err),
		}
	}
	return StatusResult{Success: true, Status: status}
}

// ResumeProject suggests what to work on next: incomplete tasks are
// re-classified from their title text alone, bucketed by tier, and the first
// non-empty bucket wins, truncated to the configured limit. The stored
// priority is not consulted since the status parse does not retain it.
func (p *planner) ResumeProject(projectRoot string) ResumeResult {
	status, err := p.storeFor(projectRoot).ReadStatus()
	if err != nil {
		return ResumeResult{
			Success: false,
			Message: fmt.Sprintf("reading status: %s", err),
		}
	}

	buckets := make(map[models.Priority][]string)
	for _, task := range status.Tasks {
		if task.Completed {
			continue
		}
		tier := p.classifier.ClassifyPriority(task.Title)
		buckets[tier] = append(buckets[tier], task.Title)
	}

	var nextTasks []string
	for _, tier := range models.TierOrder {
		if titles := buckets[tier]; len(titles) > 0 {
			nextTasks = titles
			break
		}
	}
	if len(nextTasks) > p.maxNextTasks {
		nextTasks = nextTasks[:p.maxNextTasks]
	}

	message := fmt.Sprintf("Resumed project %s", status.ProjectName)
	if len(nextTasks) == 0 {
		message = fmt.Sprintf("All tasks completed for project %s", status.ProjectName)
	}

	p.logEvent("plan.resumed", map[string]any{
		"project_root": projectRoot,
		"project_name": status.ProjectName,
		"next_tasks":   len(nextTasks),
	})

	return ResumeResult{
		Success:     true,
		Message:     message,
		ProjectName: status.ProjectName,
		Status:      status.Status,
		Progress:    fmt.Sprintf("%d/%d tasks completed", status.CompletedTasks, status.TotalTasks),
		NextTasks:   nextTasks,
	}
}

func (p *planner) logEvent(eventType string, data map[string]any) {
	if p.events == nil {
		return
	}
	_ = p.events.LogEvent(eventType, data) // Non-fatal if event logging fails.
}
