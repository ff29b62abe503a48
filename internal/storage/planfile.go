// Package storage owns the on-disk representation of a project's plan: a
// single markdown document per project root, created once and mutated in
// place by status updates.
package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/plancraft/plancraft/pkg/models"
)

// DefaultPlanFilename is the plan document name used when no override is
// configured.
const DefaultPlanFilename = "PROJECT_PLAN.md"

// timestampFormat is the second-precision format used for the Started and
// Last Updated lines.
const timestampFormat = "2006-01-02 15:04:05"

// ErrNoPlanFile indicates a read or update was attempted before the plan file
// was created.
var ErrNoPlanFile = errors.New("plan file does not exist")

// CreateInput holds everything needed to render a new plan document.
type CreateInput struct {
	ProjectName      string
	Description      string
	EnvironmentSetup string
	Tasks            []models.Task
	NextSteps        []string
	Notes            string
}

// PlanStore defines the three operations on a project's plan file: render a
// new plan, idempotently flip one task's checkbox, and parse the plan back
// into structured status.
type PlanStore interface {
	Create(input CreateInput) (string, error)
	UpdateStatus(taskTitle string, completed bool) (bool, error)
	ReadStatus() (*models.ParsedStatus, error)
	Path() string
}

type filePlanStore struct {
	projectRoot string
	filename    string
}

// NewPlanStore creates a PlanStore for the plan file inside projectRoot.
// An empty filename selects DefaultPlanFilename.
func NewPlanStore(projectRoot, filename string) PlanStore {
	if filename == "" {
		filename = DefaultPlanFilename
	}
	return &filePlanStore{projectRoot: projectRoot, filename: filename}
}

// Path returns the absolute location of the plan file.
func (s *filePlanStore) Path() string {
	return filepath.Join(s.projectRoot, s.filename)
}

// Create renders the full plan document and writes it, overwriting any
// existing file. Started and Last Updated are set to the same current
// timestamp since creation and first update coincide.
func (s *filePlanStore) Create(input CreateInput) (string, error) {
	now := time.Now().Format(timestampFormat)
	content := renderPlan(input, now)

	if err := os.MkdirAll(s.projectRoot, 0o750); err != nil {
		return "", fmt.Errorf("creating plan: creating project root: %w", err)
	}
	if err := os.WriteFile(s.Path(), []byte(content), 0o600); err != nil {
		return "", fmt.Errorf("creating plan: writing file: %w", err)
	}
	return s.Path(), nil
}

// lastUpdatedPattern matches the Last Updated progress line.
var lastUpdatedPattern = regexp.MustCompile(`(?m)^- Last Updated: .+$`)

// UpdateStatus rewrites the single checkbox line whose text is exactly
// taskTitle. The update is strictly textual: everything else in the document
// stays byte-for-byte untouched except the Last Updated line. Returns false
// without error when the file is missing, the title is not found, or the
// checkbox is already in the requested state.
func (s *filePlanStore) UpdateStatus(taskTitle string, completed bool) (bool, error) {
	if _, err := os.Stat(s.Path()); os.IsNotExist(err) {
		return false, nil
	}

	unlock, err := lockFile(s.Path() + ".lock")
	if err != nil {
		return false, fmt.Errorf("updating task status: %w", err)
	}
	defer func() { _ = unlock() }()

	data, err := os.ReadFile(s.Path())
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("updating task status: reading plan: %w", err)
	}
	content := string(data)

	marker := " "
	if completed {
		marker = "x"
	}

	// Special regex characters in the title are escaped so the match stays a
	// literal comparison.
	linePattern := regexp.MustCompile(`(?m)^(\s*)- \[[ xX]\] ` + regexp.QuoteMeta(taskTitle) + `$`)
	loc := linePattern.FindStringSubmatchIndex(content)
	if loc == nil {
		return false, nil
	}

	indent := content[loc[2]:loc[3]]
	newLine := indent + "- [" + marker + "] " + taskTitle
	updated := content[:loc[0]] + newLine + content[loc[1]:]
	if updated == content {
		return false, nil
	}

	now := time.Now().Format(timestampFormat)
	updated = lastUpdatedPattern.ReplaceAllString(updated, "- Last Updated: "+now)

	if err := os.WriteFile(s.Path(), []byte(updated), 0o600); err != nil {
		return false, fmt.Errorf("updating task status: writing plan: %w", err)
	}
	return true, nil
}

var (
	titlePattern    = regexp.MustCompile(`(?m)^# (.+) - Project Plan$`)
	checkboxPattern = regexp.MustCompile(`(?m)^\s*- \[([ xX])\] (.+)$`)
	statusPattern   = regexp.MustCompile(`(?m)^- Status: (.+)$`)
	updatedPattern  = regexp.MustCompile(`(?m)^- Last Updated: (.+)$`)
)

// ReadStatus parses the plan file back into a ParsedStatus. Every checkbox
// line in the document becomes a task record, including subtask checkboxes;
// the parser does not distinguish indentation level.
func (s *filePlanStore) ReadStatus() (*models.ParsedStatus, error) {
	data, err := os.ReadFile(s.Path())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("reading plan status: %w", ErrNoPlanFile)
		}
		return nil, fmt.Errorf("reading plan status: %w", err)
	}
	content := string(data)

	status := &models.ParsedStatus{}
	if m := titlePattern.FindStringSubmatch(content); m != nil {
		status.ProjectName = m[1]
	}
	if m := statusPattern.FindStringSubmatch(content); m != nil {
		status.Status = strings.TrimSpace(m[1])
	}
	if m := updatedPattern.FindStringSubmatch(content); m != nil {
		status.LastUpdated = strings.TrimSpace(m[1])
	}

	for _, m := range checkboxPattern.FindAllStringSubmatch(content, -1) {
		completed := m[1] == "x" || m[1] == "X"
		status.Tasks = append(status.Tasks, models.TaskStatusEntry{
			Title:     m[2],
			Completed: completed,
		})
		if completed {
			status.CompletedTasks++
		}
	}
	status.TotalTasks = len(status.Tasks)

	return status, nil
}

// renderPlan builds the full plan document text. Tasks are grouped by tier in
// HIGH, MEDIUM, LOW order; within a tier the original order is preserved;
// tiers with no tasks are omitted entirely.
func renderPlan(input CreateInput, timestamp string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s - Project Plan\n\n", input.ProjectName)

	b.WriteString("## Project Overview\n")
	fmt.Fprintf(&b, "%s\n\n", input.Description)

	b.WriteString("## Environment Setup\n")
	b.WriteString("```bash\n")
	fmt.Fprintf(&b, "%s\n", input.EnvironmentSetup)
	b.WriteString("```\n\n")

	b.WriteString("## Implementation Tasks\n\n")
	for _, tier := range models.TierOrder {
		tierTasks := tasksInTier(input.Tasks, tier)
		if len(tierTasks) == 0 {
			continue
		}
		fmt.Fprintf(&b, "### %s Priority Tasks\n", tier)
		for _, task := range tierTasks {
			fmt.Fprintf(&b, "- [ ] %s\n", task.Title)
			if task.Description != "" {
				fmt.Fprintf(&b, "  - %s\n", task.Description)
			}
			for _, sub := range task.Subtasks {
				fmt.Fprintf(&b, "  - [ ] %s\n", sub)
			}
		}
		b.WriteString("\n")
	}

	b.WriteString("## Progress Tracking\n")
	fmt.Fprintf(&b, "- Started: %s\n", timestamp)
	fmt.Fprintf(&b, "- Last Updated: %s\n", timestamp)
	b.WriteString("- Status: IN PROGRESS\n\n")

	b.WriteString("## Next Steps\n")
	for _, step := range input.NextSteps {
		fmt.Fprintf(&b, "- %s\n", step)
	}
	b.WriteString("\n")

	b.WriteString("## Notes\n")
	fmt.Fprintf(&b, "%s\n", input.Notes)

	return b.String()
}

func tasksInTier(tasks []models.Task, tier models.Priority) []models.Task {
	var result []models.Task
	for _, t := range tasks {
		if t.Priority == tier {
			result = append(result, t)
		}
	}
	return result
}
