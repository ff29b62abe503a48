package observability

import (
	"fmt"
	"time"
)

// Metrics holds calculated metrics derived from the event log.
type Metrics struct {
	PlansInitialized int        `json:"plans_initialized"`
	TasksCompleted   int        `json:"tasks_completed"`
	TasksReopened    int        `json:"tasks_reopened"`
	ProjectsResumed  int        `json:"projects_resumed"`
	EventCount       int        `json:"event_count"`
	OldestEvent      *time.Time `json:"oldest_event,omitempty"`
	NewestEvent      *time.Time `json:"newest_event,omitempty"`
}

// MetricsCalculator derives metrics from the event log.
type MetricsCalculator interface {
	Calculate(since time.Time) (*Metrics, error)
}

type metricsCalculator struct {
	eventLog EventLog
}

// NewMetricsCalculator creates a MetricsCalculator that reads from the given EventLog.
func NewMetricsCalculator(eventLog EventLog) MetricsCalculator {
	return &metricsCalculator{eventLog: eventLog}
}

// Calculate reads all events since the given time and aggregates them.
func (mc *metricsCalculator) Calculate(since time.Time) (*Metrics, error) {
	events, err := mc.eventLog.Read(EventFilter{Since: &since})
	if err != nil {
		return nil, fmt.Errorf("reading events for metrics: %w", err)
	}

	m := &Metrics{}
	m.EventCount = len(events)

	for i, event := range events {
		if i == 0 {
			t := event.Time
			m.OldestEvent = &t
		}
		t := event.Time
		m.NewestEvent = &t

		switch event.Type {
		case "plan.initialized":
			m.PlansInitialized++
		case "task.completed":
			if completed, ok := event.Data["completed"].(bool); ok && !completed {
				m.TasksReopened++
			} else {
				m.TasksCompleted++
			}
		case "plan.resumed":
			m.ProjectsResumed++
		}
	}

	return m, nil
}
