// Package mcp provides an MCP (Model Context Protocol) server that exposes
// plancraft's planning operations as MCP tools for AI coding assistants.
package mcp

import (
	"context"
	"fmt"
	"time"

	"github.com/plancraft/plancraft/internal/core"
	"github.com/plancraft/plancraft/internal/observability"
	gomcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// Server wraps the planner and exposes it as MCP tools.
type Server struct {
	server      *gomcp.Server
	planner     core.Planner
	metricsCalc observability.MetricsCalculator
}

// NewServer creates a new MCP server with the given dependencies.
// metricsCalc may be nil if observability is disabled.
func NewServer(planner core.Planner, metricsCalc observability.MetricsCalculator, version string) *Server {
	if version == "" {
		version = "dev"
	}

	s := &Server{
		planner:     planner,
		metricsCalc: metricsCalc,
	}

	s.server = gomcp.NewServer(
		&gomcp.Implementation{Name: "plancraft", Version: version},
		nil,
	)

	s.registerTools()

	return s
}

// Run starts the MCP server on stdio, blocking until the client disconnects
// or the context is cancelled.
func (s *Server) Run(ctx context.Context) error {
	return s.server.Run(ctx, &gomcp.StdioTransport{})
}

// MCPServer returns the underlying mcp.Server for testing purposes.
func (s *Server) MCPServer() *gomcp.Server {
	return s.server
}

// --- Tool input/output types ---

type initializeInput struct {
	ProjectRoot  string `json:"project_root" jsonschema:"required,directory that will own the plan file"`
	Requirements string `json:"requirements" jsonschema:"required,free-form project requirements text"`
}

type completeTaskInput struct {
	ProjectRoot string `json:"project_root" jsonschema:"required,directory that owns the plan file"`
	TaskTitle   string `json:"task_title" jsonschema:"required,exact task title as written in the plan file"`
	Completed   *bool  `json:"completed,omitempty" jsonschema:"set to false to reopen a task. Defaults to true."`
}

type projectRootInput struct {
	ProjectRoot string `json:"project_root" jsonschema:"required,directory that owns the plan file"`
}

type getMetricsInput struct {
	Since string `json:"since,omitempty" jsonschema:"time window for metrics (e.g. 7d, 30d, 24h). Defaults to 7d."`
}

type metricsOutput struct {
	PlansInitialized int    `json:"plans_initialized"`
	TasksCompleted   int    `json:"tasks_completed"`
	TasksReopened    int    `json:"tasks_reopened"`
	ProjectsResumed  int    `json:"projects_resumed"`
	EventCount       int    `json:"event_count"`
	OldestEvent      string `json:"oldest_event,omitempty"`
	NewestEvent      string `json:"newest_event,omitempty"`
}

// --- Tool registration ---

func (s *Server) registerTools() {
	gomcp.AddTool(s.server, &gomcp.Tool{
		Name:        "initialize_project",
		Description: "Turn free-form requirements text into a task plan and persist it as the project's plan file. Overwrites any existing plan.",
	}, s.handleInitialize)

	gomcp.AddTool(s.server, &gomcp.Tool{
		Name:        "complete_task",
		Description: "Mark a task in the plan file as complete (or incomplete). Matches the exact task title text.",
	}, s.handleCompleteTask)

	gomcp.AddTool(s.server, &gomcp.Tool{
		Name:        "get_project_status",
		Description: "Parse the plan file and return the task list with completion flags and progress counts.",
	}, s.handleGetStatus)

	gomcp.AddTool(s.server, &gomcp.Tool{
		Name:        "resume_project",
		Description: "Suggest up to a few next tasks to work on, ranked by priority tier inferred from task titles.",
	}, s.handleResumeProject)

	gomcp.AddTool(s.server, &gomcp.Tool{
		Name:        "get_metrics",
		Description: "Get aggregated metrics from the event log: plans initialized, tasks completed, projects resumed.",
	}, s.handleGetMetrics)
}

// --- Tool handlers ---

func (s *Server) handleInitialize(_ context.Context, _ *gomcp.CallToolRequest, input initializeInput) (*gomcp.CallToolResult, core.InitializeResult, error) {
	if input.ProjectRoot == "" {
		return errorResult("project_root is required"), core.InitializeResult{}, nil
	}
	if input.Requirements == "" {
		return errorResult("requirements is required"), core.InitializeResult{}, nil
	}

	result := s.planner.Initialize(input.ProjectRoot, input.Requirements)
	if !result.Success {
		return errorResult(result.Message), result, nil
	}
	return nil, result, nil
}

func (s *Server) handleCompleteTask(_ context.Context, _ *gomcp.CallToolRequest, input completeTaskInput) (*gomcp.CallToolResult, core.OperationResult, error) {
	if input.ProjectRoot == "" {
		return errorResult("project_root is required"), core.OperationResult{}, nil
	}
	if input.TaskTitle == "" {
		return errorResult("task_title is required"), core.OperationResult{}, nil
	}

	completed := true
	if input.Completed != nil {
		completed = *input.Completed
	}

	result := s.planner.CompleteTask(input.ProjectRoot, input.TaskTitle, completed)
	if !result.Success {
		return errorResult(result.Message), result, nil
	}
	return nil, result, nil
}

func (s *Server) handleGetStatus(_ context.Context, _ *gomcp.CallToolRequest, input projectRootInput) (*gomcp.CallToolResult, core.StatusResult, error) {
	if input.ProjectRoot == "" {
		return errorResult("project_root is required"), core.StatusResult{}, nil
	}

	result := s.planner.GetStatus(input.ProjectRoot)
	if !result.Success {
		return errorResult(result.Message), result, nil
	}
	return nil, result, nil
}

func (s *Server) handleResumeProject(_ context.Context, _ *gomcp.CallToolRequest, input projectRootInput) (*gomcp.CallToolResult, core.ResumeResult, error) {
	if input.ProjectRoot == "" {
		return errorResult("project_root is required"), core.ResumeResult{}, nil
	}

	result := s.planner.ResumeProject(input.ProjectRoot)
	if !result.Success {
		return errorResult(result.Message), result, nil
	}
	return nil, result, nil
}

func (s *Server) handleGetMetrics(_ context.Context, _ *gomcp.CallToolRequest, input getMetricsInput) (*gomcp.CallToolResult, metricsOutput, error) {
	if s.metricsCalc == nil {
		return errorResult("metrics calculator not available (observability may be disabled)"), metricsOutput{}, nil
	}

	sinceStr := input.Since
	if sinceStr == "" {
		sinceStr = "7d"
	}

	sinceTime, err := parseSince(sinceStr)
	if err != nil {
		return errorResult(fmt.Sprintf("parsing since duration: %s", err)), metricsOutput{}, nil
	}

	metrics, err := s.metricsCalc.Calculate(sinceTime)
	if err != nil {
		return errorResult(fmt.Sprintf("calculating metrics: %s", err)), metricsOutput{}, nil
	}

	out := metricsOutput{
		PlansInitialized: metrics.PlansInitialized,
		TasksCompleted:   metrics.TasksCompleted,
		TasksReopened:    metrics.TasksReopened,
		ProjectsResumed:  metrics.ProjectsResumed,
		EventCount:       metrics.EventCount,
	}
	if metrics.OldestEvent != nil {
		out.OldestEvent = metrics.OldestEvent.Format(time.RFC3339)
	}
	if metrics.NewestEvent != nil {
		out.NewestEvent = metrics.NewestEvent.Format(time.RFC3339)
	}

	return nil, out, nil
}

// --- Helpers ---

func errorResult(msg string) *gomcp.CallToolResult {
	return &gomcp.CallToolResult{
		Content: []gomcp.Content{&gomcp.TextContent{Text: msg}},
		IsError: true,
	}
}

// parseSince parses a human-friendly duration string like "7d", "30d", or "24h"
// into the corresponding time in the past.
func parseSince(s string) (time.Time, error) {
	now := time.Now().UTC()

	if len(s) < 2 {
		return time.Time{}, fmt.Errorf("invalid duration %q", s)
	}

	suffix := s[len(s)-1]
	numStr := s[:len(s)-1]
	var num int
	if _, err := fmt.Sscanf(numStr, "%d", &num); err != nil {
		return time.Time{}, fmt.Errorf("invalid duration %q: %w", s, err)
	}

	switch suffix {
	case 'd':
		return now.AddDate(0, 0, -num), nil
	case 'h':
		return now.Add(-time.Duration(num) * time.Hour), nil
	default:
		return time.Time{}, fmt.Errorf("unsupported duration suffix %q (use d or h)", string(suffix))
	}
}
