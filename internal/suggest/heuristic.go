// Package suggest classifies a task description into a priority.
package suggest

import (
	"context"
	"strings"

	"taskboard/internal/core/domain"
	"taskboard/internal/core/ports"
)

var (
	highKeywords = []string{"urgent", "critical", "asap", "important"}
	lowKeywords  = []string{"should", "eventually", "when"}
)

// Classify maps a description to a priority by keyword. Matching is a case-insensitive
// substring test; high keywords win over low ones.
func Classify(description string) domain.TaskPriority {
	text := strings.ToLower(description)
	if containsAny(text, highKeywords) {
		return domain.TaskPriorityHigh
	}
	if containsAny(text, lowKeywords) {
		return domain.TaskPriorityLow
	}
	return domain.TaskPriorityMedium
}

func containsAny(text string, keywords []string) bool {
	for _, keyword := range keywords {
		if strings.Contains(text, keyword) {
			return true
		}
	}
	return false
}

type Heuristic struct{}

func NewHeuristic() Heuristic {
	return Heuristic{}
}

func (Heuristic) Suggest(_ context.Context, description string) (domain.TaskPriority, error) {
	return Classify(description), nil
}

var _ ports.PrioritySuggester = Heuristic{}
