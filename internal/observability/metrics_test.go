package observability

import (
	"path/filepath"
	"testing"
	"time"
)

func writeEvents(t *testing.T, path string, events []Event) EventLog {
	t.Helper()
	log, err := NewJSONLEventLog(path)
	if err != nil {
		t.Fatalf("creating event log: %v", err)
	}
	t.Cleanup(func() { _ = log.Close() })
	for _, e := range events {
		if err := log.Write(e); err != nil {
			t.Fatalf("writing event: %v", err)
		}
	}
	return log
}

func TestMetrics_CountsByEventType(t *testing.T) {
	base := time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC)
	log := writeEvents(t, filepath.Join(t.TempDir(), "events.jsonl"), []Event{
		{Time: base, Level: "INFO", Type: "plan.initialized", Data: map[string]any{"task_count": 5}},
		{Time: base.Add(time.Minute), Level: "INFO", Type: "task.completed", Data: map[string]any{"completed": true}},
		{Time: base.Add(2 * time.Minute), Level: "INFO", Type: "task.completed", Data: map[string]any{"completed": true}},
		{Time: base.Add(3 * time.Minute), Level: "INFO", Type: "task.completed", Data: map[string]any{"completed": false}},
		{Time: base.Add(4 * time.Minute), Level: "INFO", Type: "plan.resumed"},
	})

	m, err := NewMetricsCalculator(log).Calculate(base.Add(-time.Hour))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if m.PlansInitialized != 1 {
		t.Errorf("plans initialized = %d, want 1", m.PlansInitialized)
	}
	if m.TasksCompleted != 2 {
		t.Errorf("tasks completed = %d, want 2", m.TasksCompleted)
	}
	if m.TasksReopened != 1 {
		t.Errorf("tasks reopened = %d, want 1", m.TasksReopened)
	}
	if m.ProjectsResumed != 1 {
		t.Errorf("projects resumed = %d, want 1", m.ProjectsResumed)
	}
	if m.EventCount != 5 {
		t.Errorf("event count = %d, want 5", m.EventCount)
	}
	if m.OldestEvent == nil || !m.OldestEvent.Equal(base) {
		t.Errorf("oldest event = %v", m.OldestEvent)
	}
	if m.NewestEvent == nil || !m.NewestEvent.Equal(base.Add(4*time.Minute)) {
		t.Errorf("newest event = %v", m.NewestEvent)
	}
}

func TestMetrics_SinceCutoff(t *testing.T) {
	base := time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC)
	log := writeEvents(t, filepath.Join(t.TempDir(), "events.jsonl"), []Event{
		{Time: base, Level: "INFO", Type: "task.completed", Data: map[string]any{"completed": true}},
		{Time: base.Add(48 * time.Hour), Level: "INFO", Type: "task.completed", Data: map[string]any{"completed": true}},
	})

	m, err := NewMetricsCalculator(log).Calculate(base.Add(24 * time.Hour))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.TasksCompleted != 1 {
		t.Errorf("tasks completed = %d, want 1", m.TasksCompleted)
	}
	if m.EventCount != 1 {
		t.Errorf("event count = %d, want 1", m.EventCount)
	}
}

func TestMetrics_EmptyLog(t *testing.T) {
	log := writeEvents(t, filepath.Join(t.TempDir(), "events.jsonl"), nil)

	m, err := NewMetricsCalculator(log).Calculate(time.Now().Add(-time.Hour))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.EventCount != 0 {
		t.Errorf("event count = %d, want 0", m.EventCount)
	}
	if m.OldestEvent != nil || m.NewestEvent != nil {
		t.Error("empty log should carry no event timestamps")
	}
}

func TestMetrics_CompletedFlagMissingCountsCompleted(t *testing.T) {
	base := time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC)
	log := writeEvents(t, filepath.Join(t.TempDir(), "events.jsonl"), []Event{
		{Time: base, Level: "INFO", Type: "task.completed"},
	})

	m, err := NewMetricsCalculator(log).Calculate(base.Add(-time.Hour))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.TasksCompleted != 1 || m.TasksReopened != 0 {
		t.Errorf("completed = %d, reopened = %d; missing flag should count as completed", m.TasksCompleted, m.TasksReopened)
	}
}
