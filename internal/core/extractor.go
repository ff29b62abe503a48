package core

import (
	"fmt"
	"strings"

	"github.com/plancraft/plancraft/pkg/models"
)

// Field labels recognized in requirements text. Matching is case-insensitive.
const (
	labelProjectName        = "project name:"
	labelProjectDescription = "project description:"
	labelEnvironmentSetup   = "environment setup:"
	labelTasks              = "tasks:"
)

// RequirementsExtractor parses free-form requirements text into a structured
// ProjectInfo. It never fails: malformed or sparse input degrades to defaults
// and catalog fallbacks.
type RequirementsExtractor interface {
	Extract(requirements string) models.ProjectInfo
}

type requirementsExtractor struct {
	classifier         PriorityClassifier
	catalog            TaskCatalog
	defaultProjectName string
}

// NewRequirementsExtractor creates an extractor with the classifier and
// fallback catalog injected. defaultProjectName is used when the text carries
// no "Project Name:" line.
func NewRequirementsExtractor(classifier PriorityClassifier, catalog TaskCatalog, defaultProjectName string) RequirementsExtractor {
	if defaultProjectName == "" {
		defaultProjectName = "New Project"
	}
	return &requirementsExtractor{
		classifier:         classifier,
		catalog:            catalog,
		defaultProjectName: defaultProjectName,
	}
}

// Extract runs the extraction strategies in order, stopping at the first one
// that yields at least one task: explicit "Tasks:" bullets, then heading
// inference, then the default catalog keyed by project type. Field extraction
// for name, description, and environment setup is independent of which task
// strategy wins.
func (e *requirementsExtractor) Extract(requirements string) models.ProjectInfo {
	lines := strings.Split(requirements, "\n")

	info := models.ProjectInfo{
		ProjectName:        e.defaultProjectName,
		ProjectDescription: captureBlock(lines, labelProjectDescription),
		EnvironmentSetup:   captureBlock(lines, labelEnvironmentSetup),
	}
	if name := captureLineRemainder(lines, labelProjectName); name != "" {
		info.ProjectName = name
	}

	info.Tasks = e.extractListedTasks(lines)
	if len(info.Tasks) == 0 {
		info.Tasks = e.inferTasksFromHeadings(lines)
	}
	if len(info.Tasks) == 0 {
		info.Tasks = e.catalog.TasksFor(ClassifyProjectType(requirements))
	}

	return info
}

// extractListedTasks finds the block introduced by "Tasks:" and turns every
// bullet or numbered line inside it into a task. Descriptions are left empty;
// priority comes from classifying the bullet text.
func (e *requirementsExtractor) extractListedTasks(lines []string) []models.Task {
	start, ok := findLabelLine(lines, labelTasks)
	if !ok {
		return nil
	}

	var tasks []models.Task
	for _, line := range blockLines(lines, start+1) {
		title, ok := listItemText(line)
		if !ok || title == "" {
			continue
		}
		tasks = append(tasks, models.Task{
			Title:    title,
			Priority: e.classifier.ClassifyPriority(title),
		})
	}
	return tasks
}

// inferTasksFromHeadings treats every markdown heading as a candidate task,
// skipping the headings that name the reserved requirement fields.
func (e *requirementsExtractor) inferTasksFromHeadings(lines []string) []models.Task {
	reserved := map[string]bool{
		"project name":        true,
		"project description": true,
		"environment setup":   true,
		"tasks":               true,
	}

	var tasks []models.Task
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if !strings.HasPrefix(trimmed, "#") {
			continue
		}
		heading := strings.TrimSpace(strings.TrimLeft(trimmed, "#"))
		if heading == "" {
			continue
		}
		// Compare without a trailing colon so "# Tasks:" is still reserved.
		key := strings.ToLower(strings.TrimSuffix(heading, ":"))
		if reserved[key] {
			continue
		}
		tasks = append(tasks, models.Task{
			Title:       fmt.Sprintf("Implement %s", heading),
			Description: fmt.Sprintf("Based on the %s section in requirements", heading),
			Priority:    e.classifier.ClassifyPriority(heading),
		})
	}
	return tasks
}

// findLabelLine returns the index of the first line containing the label,
// case-insensitively.
func findLabelLine(lines []string, label string) (int, bool) {
	for i, line := range lines {
		if labelIndex(line, label) >= 0 {
			return i, true
		}
	}
	return 0, false
}

// labelIndex returns the byte offset of a case-insensitive label match within
// the line, or -1.
func labelIndex(line, label string) int {
	return strings.Index(strings.ToLower(line), label)
}

// captureLineRemainder finds the first line matching the label and returns the
// trimmed remainder of that line.
func captureLineRemainder(lines []string, label string) string {
	for _, line := range lines {
		if idx := labelIndex(line, label); idx >= 0 {
			return strings.TrimSpace(line[idx+len(label):])
		}
	}
	return ""
}

// captureBlock finds the block introduced by the label and captures text up to
// the first blank line or the next heading marker ("#" or "**"). The remainder
// of the label line itself, if any, is the first captured chunk.
func captureBlock(lines []string, label string) string {
	start, ok := findLabelLine(lines, label)
	if !ok {
		return ""
	}

	var parts []string
	idx := labelIndex(lines[start], label)
	if rest := strings.TrimSpace(lines[start][idx+len(label):]); rest != "" {
		parts = append(parts, rest)
	}
	parts = append(parts, blockLines(lines, start+1)...)
	return strings.TrimSpace(strings.Join(parts, "\n"))
}

// blockLines collects lines from start until the first terminator: a blank
// line, or a line beginning with "#" or "**". The terminator bounds runaway
// captures when sections are not separated by blank lines.
func blockLines(lines []string, start int) []string {
	var collected []string
	for i := start; i < len(lines); i++ {
		trimmed := strings.TrimSpace(lines[i])
		if trimmed == "" || strings.HasPrefix(trimmed, "#") || strings.HasPrefix(trimmed, "**") {
			break
		}
		collected = append(collected, lines[i])
	}
	return collected
}

// listItemText extracts the text of a bullet ("-", "*") or numbered ("1.")
// list line. Returns false if the line is not a list item.
func listItemText(line string) (string, bool) {
	trimmed := strings.TrimSpace(line)
	if strings.HasPrefix(trimmed, "- ") {
		return strings.TrimSpace(trimmed[2:]), true
	}
	if strings.HasPrefix(trimmed, "* ") {
		return strings.TrimSpace(trimmed[2:]), true
	}
	if trimmed == "-" || trimmed == "*" {
		return "", true
	}
	// Numbered item: one or more digits followed by a dot.
	i := 0
	for i < len(trimmed) && trimmed[i] >= '0' && trimmed[i] <= '9' {
		i++
	}
	if i > 0 && i < len(trimmed) && trimmed[i] == '.' {
		return strings.TrimSpace(trimmed[i+1:]), true
	}
	return "", false
}
