package cli

import (
	"github.com/plancraft/plancraft/internal/core"
	"github.com/plancraft/plancraft/internal/observability"
)

// Package-level service dependencies, set during application wiring.
var (
	// BasePath is the directory anchoring configuration and the event log.
	BasePath string

	// Planner implements the four user-facing planning operations.
	Planner core.Planner

	// EventLog records plan operations. May be nil if observability is disabled.
	EventLog observability.EventLog

	// MetricsCalc aggregates the event log. May be nil.
	MetricsCalc observability.MetricsCalculator
)
