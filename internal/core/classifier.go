// Package core contains the business logic for plancraft: priority and
// project-type classification, requirements extraction, the default task
// catalog, configuration, and the planning orchestrator.
package core

import (
	"strings"

	"github.com/plancraft/plancraft/pkg/models"
)

// KeywordTable holds the keyword signals the priority classifier matches
// against, in precedence order. It is immutable configuration data built once
// at startup and injected into the classifier.
type KeywordTable struct {
	// Urgency words force HIGH regardless of other signals.
	Urgency []string
	// Deprioritize words force LOW, checked after urgency.
	Deprioritize []string
	// Foundational words (architecture, security, storage) map to HIGH.
	Foundational []string
	// Cosmetic words (UI, docs, styling) map to MEDIUM.
	Cosmetic []string
}

// DefaultKeywordTable returns the built-in keyword signals.
func DefaultKeywordTable() KeywordTable {
	return KeywordTable{
		Urgency:      []string{"urgent", "critical", "important", "high priority"},
		Deprioritize: []string{"low priority", "optional", "if time permits"},
		Foundational: []string{"database", "authentication", "core", "foundation", "architecture", "security"},
		Cosmetic:     []string{"ui", "ux", "design", "style", "appearance", "documentation"},
	}
}

// PriorityClassifier maps a short text fragment to a priority tier using a
// fixed precedence of keyword signals.
type PriorityClassifier interface {
	ClassifyPriority(text string) models.Priority
}

type keywordPriorityClassifier struct {
	table KeywordTable
}

// NewPriorityClassifier creates a PriorityClassifier backed by the given
// keyword table.
func NewPriorityClassifier(table KeywordTable) PriorityClassifier {
	return &keywordPriorityClassifier{table: table}
}

// ClassifyPriority is a pure, case-insensitive substring match over the input.
// Precedence: urgency words win, then de-prioritization words, then
// foundational words, then cosmetic words; anything else is MEDIUM.
func (c *keywordPriorityClassifier) ClassifyPriority(text string) models.Priority {
	lowered := strings.ToLower(text)

	if containsAny(lowered, c.table.Urgency) {
		return models.PriorityHigh
	}
	if containsAny(lowered, c.table.Deprioritize) {
		return models.PriorityLow
	}
	if containsAny(lowered, c.table.Foundational) {
		return models.PriorityHigh
	}
	if containsAny(lowered, c.table.Cosmetic) {
		return models.PriorityMedium
	}
	return models.PriorityMedium
}

func containsAny(lowered string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(lowered, kw) {
			return true
		}
	}
	return false
}
