package storage

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/plancraft/plancraft/pkg/models"
)

func sampleInput() CreateInput {
	return CreateInput{
		ProjectName:      "Demo",
		Description:      "A demo project",
		EnvironmentSetup: "make setup",
		Tasks: []models.Task{
			{Title: "Polish UI", Priority: models.PriorityLow},
			{Title: "Setup database", Priority: models.PriorityHigh, Description: "Schema and migrations"},
			{Title: "Build login", Priority: models.PriorityMedium, Subtasks: []string{"Password hashing", "Session cookies"}},
		},
		NextSteps: []string{"Review and refine tasks"},
		Notes:     "",
	}
}

func TestCreate_WritesDocument(t *testing.T) {
	dir := t.TempDir()
	store := NewPlanStore(dir, "")

	path, err := store.Create(sampleInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if path != filepath.Join(dir, DefaultPlanFilename) {
		t.Errorf("path = %q", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading file: %v", err)
	}
	content := string(data)

	for _, want := range []string{
		"# Demo - Project Plan",
		"## Project Overview",
		"A demo project",
		"## Environment Setup",
		"```bash",
		"make setup",
		"## Implementation Tasks",
		"### HIGH Priority Tasks",
		"- [ ] Setup database",
		"  - Schema and migrations",
		"### MEDIUM Priority Tasks",
		"- [ ] Build login",
		"  - [ ] Password hashing",
		"### LOW Priority Tasks",
		"- [ ] Polish UI",
		"## Progress Tracking",
		"- Status: IN PROGRESS",
		"## Next Steps",
		"- Review and refine tasks",
		"## Notes",
	} {
		if !strings.Contains(content, want) {
			t.Errorf("document missing %q", want)
		}
	}

	// HIGH renders before MEDIUM before LOW regardless of input order.
	high := strings.Index(content, "### HIGH Priority Tasks")
	medium := strings.Index(content, "### MEDIUM Priority Tasks")
	low := strings.Index(content, "### LOW Priority Tasks")
	if !(high < medium && medium < low) {
		t.Errorf("tier sections out of order: HIGH=%d MEDIUM=%d LOW=%d", high, medium, low)
	}
}

func TestCreate_OmitsEmptyTiers(t *testing.T) {
	dir := t.TempDir()
	store := NewPlanStore(dir, "")

	input := sampleInput()
	input.Tasks = []models.Task{{Title: "Only task", Priority: models.PriorityMedium}}

	path, err := store.Create(input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	data, _ := os.ReadFile(path)
	content := string(data)

	if strings.Contains(content, "### HIGH Priority Tasks") {
		t.Error("empty HIGH tier should be omitted")
	}
	if strings.Contains(content, "### LOW Priority Tasks") {
		t.Error("empty LOW tier should be omitted")
	}
	if !strings.Contains(content, "### MEDIUM Priority Tasks") {
		t.Error("MEDIUM tier missing")
	}
}

func TestCreate_OverwritesExisting(t *testing.T) {
	dir := t.TempDir()
	store := NewPlanStore(dir, "")

	if _, err := store.Create(sampleInput()); err != nil {
		t.Fatalf("first create: %v", err)
	}
	input := sampleInput()
	input.ProjectName = "Rewritten"
	if _, err := store.Create(input); err != nil {
		t.Fatalf("second create: %v", err)
	}

	data, _ := os.ReadFile(store.Path())
	if !strings.Contains(string(data), "# Rewritten - Project Plan") {
		t.Error("second create did not overwrite the document")
	}
}

func TestCreate_MakesProjectRoot(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "project")
	store := NewPlanStore(dir, "")

	if _, err := store.Create(sampleInput()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := os.Stat(store.Path()); err != nil {
		t.Errorf("plan file not created: %v", err)
	}
}

func TestCreate_CustomFilename(t *testing.T) {
	dir := t.TempDir()
	store := NewPlanStore(dir, "TASKS.md")

	path, err := store.Create(sampleInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if filepath.Base(path) != "TASKS.md" {
		t.Errorf("path = %q", path)
	}
}

func TestUpdateStatus_MarksComplete(t *testing.T) {
	dir := t.TempDir()
	store := NewPlanStore(dir, "")
	if _, err := store.Create(sampleInput()); err != nil {
		t.Fatalf("create: %v", err)
	}

	changed, err := store.UpdateStatus("Build login", true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !changed {
		t.Fatal("expected changed=true")
	}

	data, _ := os.ReadFile(store.Path())
	content := string(data)
	if !strings.Contains(content, "- [x] Build login") {
		t.Error("checkbox not flipped")
	}
	// Other checkboxes stay untouched.
	if !strings.Contains(content, "- [ ] Setup database") {
		t.Error("unrelated checkbox was modified")
	}
	if !strings.Contains(content, "  - [ ] Password hashing") {
		t.Error("subtask checkbox was modified")
	}
}

func TestUpdateStatus_IdempotentNoChange(t *testing.T) {
	dir := t.TempDir()
	store := NewPlanStore(dir, "")
	if _, err := store.Create(sampleInput()); err != nil {
		t.Fatalf("create: %v", err)
	}

	if changed, err := store.UpdateStatus("Build login", true); err != nil || !changed {
		t.Fatalf("first update = %v, %v", changed, err)
	}
	before, _ := os.ReadFile(store.Path())

	changed, err := store.UpdateStatus("Build login", true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if changed {
		t.Error("second identical update should report no change")
	}
	after, _ := os.ReadFile(store.Path())
	if string(before) != string(after) {
		t.Error("no-op update must leave the file byte-identical")
	}
}

func TestUpdateStatus_Undo(t *testing.T) {
	dir := t.TempDir()
	store := NewPlanStore(dir, "")
	if _, err := store.Create(sampleInput()); err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := store.UpdateStatus("Polish UI", true); err != nil {
		t.Fatalf("mark complete: %v", err)
	}
	changed, err := store.UpdateStatus("Polish UI", false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !changed {
		t.Fatal("expected changed=true")
	}

	data, _ := os.ReadFile(store.Path())
	if !strings.Contains(string(data), "- [ ] Polish UI") {
		t.Error("checkbox not reverted")
	}
}

func TestUpdateStatus_TitleNotFound(t *testing.T) {
	dir := t.TempDir()
	store := NewPlanStore(dir, "")
	if _, err := store.Create(sampleInput()); err != nil {
		t.Fatalf("create: %v", err)
	}

	changed, err := store.UpdateStatus("No such task", true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if changed {
		t.Error("unknown title should report no change")
	}
}

func TestUpdateStatus_ExactTitleMatch(t *testing.T) {
	dir := t.TempDir()
	store := NewPlanStore(dir, "")
	if _, err := store.Create(sampleInput()); err != nil {
		t.Fatalf("create: %v", err)
	}

	// Prefix of a real title must not match.
	changed, err := store.UpdateStatus("Build", true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if changed {
		t.Error("title prefix must not match")
	}
}

func TestUpdateStatus_RegexSpecialTitle(t *testing.T) {
	dir := t.TempDir()
	store := NewPlanStore(dir, "")

	input := sampleInput()
	input.Tasks = []models.Task{{Title: "Fix (urgent) [v1.2] cost $5+", Priority: models.PriorityHigh}}
	if _, err := store.Create(input); err != nil {
		t.Fatalf("create: %v", err)
	}

	changed, err := store.UpdateStatus("Fix (urgent) [v1.2] cost $5+", true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !changed {
		t.Fatal("expected literal match on regex-special title")
	}

	data, _ := os.ReadFile(store.Path())
	if !strings.Contains(string(data), "- [x] Fix (urgent) [v1.2] cost $5+") {
		t.Error("checkbox not flipped")
	}
}

func TestUpdateStatus_MissingFile(t *testing.T) {
	dir := t.TempDir()
	store := NewPlanStore(dir, "")

	changed, err := store.UpdateStatus("Build login", true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if changed {
		t.Error("missing file should report no change")
	}
	if _, statErr := os.Stat(store.Path()); !os.IsNotExist(statErr) {
		t.Error("update must not create the plan file")
	}
}

func TestUpdateStatus_RefreshesLastUpdated(t *testing.T) {
	dir := t.TempDir()
	store := NewPlanStore(dir, "")
	if _, err := store.Create(sampleInput()); err != nil {
		t.Fatalf("create: %v", err)
	}

	// Rewrite the Last Updated line to a stale value, then update a task.
	data, _ := os.ReadFile(store.Path())
	stale := lastUpdatedPattern.ReplaceAllString(string(data), "- Last Updated: 2001-01-01 00:00:00")
	if err := os.WriteFile(store.Path(), []byte(stale), 0o600); err != nil {
		t.Fatalf("writing stale plan: %v", err)
	}

	if _, err := store.UpdateStatus("Build login", true); err != nil {
		t.Fatalf("update: %v", err)
	}
	after, _ := os.ReadFile(store.Path())
	if strings.Contains(string(after), "- Last Updated: 2001-01-01 00:00:00") {
		t.Error("Last Updated line not refreshed")
	}
}

func TestReadStatus(t *testing.T) {
	dir := t.TempDir()
	store := NewPlanStore(dir, "")
	if _, err := store.Create(sampleInput()); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := store.UpdateStatus("Setup database", true); err != nil {
		t.Fatalf("update: %v", err)
	}

	status, err := store.ReadStatus()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if status.ProjectName != "Demo" {
		t.Errorf("project name = %q", status.ProjectName)
	}
	if status.Status != "IN PROGRESS" {
		t.Errorf("status = %q", status.Status)
	}
	if status.LastUpdated == "" {
		t.Error("last updated missing")
	}
	// 3 tasks plus 2 subtask checkboxes: the parser flattens indentation.
	if status.TotalTasks != 5 {
		t.Errorf("total tasks = %d, want 5", status.TotalTasks)
	}
	if status.CompletedTasks != 1 {
		t.Errorf("completed tasks = %d, want 1", status.CompletedTasks)
	}

	var found bool
	for _, task := range status.Tasks {
		if task.Title == "Setup database" {
			found = true
			if !task.Completed {
				t.Error("Setup database should read as completed")
			}
		}
	}
	if !found {
		t.Error("Setup database not in parsed tasks")
	}
}

func TestReadStatus_MissingFile(t *testing.T) {
	store := NewPlanStore(t.TempDir(), "")

	_, err := store.ReadStatus()
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, ErrNoPlanFile) {
		t.Errorf("error = %v, want ErrNoPlanFile", err)
	}
}

func TestReadStatus_CapitalXCountsCompleted(t *testing.T) {
	dir := t.TempDir()
	store := NewPlanStore(dir, "")
	if _, err := store.Create(sampleInput()); err != nil {
		t.Fatalf("create: %v", err)
	}

	data, _ := os.ReadFile(store.Path())
	content := strings.Replace(string(data), "- [ ] Polish UI", "- [X] Polish UI", 1)
	if err := os.WriteFile(store.Path(), []byte(content), 0o600); err != nil {
		t.Fatalf("writing plan: %v", err)
	}

	status, err := store.ReadStatus()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if status.CompletedTasks != 1 {
		t.Errorf("completed tasks = %d, want 1", status.CompletedTasks)
	}
}
