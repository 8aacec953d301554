// Package model holds the client-side view of a task and its translation to and from the
// REST wire record.
package model

import (
	"time"

	"taskboard/internal/core/domain"
)

// Task is the in-memory task. ID is empty for a draft that has not been persisted yet.
type Task struct {
	ID          string              `json:"id,omitempty"`
	Title       string              `json:"title"`
	Description string              `json:"description,omitempty"`
	DueDate     *time.Time          `json:"dueDate,omitempty"`
	Priority    domain.TaskPriority `json:"priority"`
	Status      domain.TaskStatus   `json:"status"`
	UserID      uint64              `json:"userId"`
}

func (t Task) IsDraft() bool {
	return t.ID == ""
}

// SameID reports whether t carries id once both sides are normalized.
func (t Task) SameID(id string) bool {
	return t.ID != "" && t.ID == NormalizeID(id)
}

// Date builds a calendar date for a due date.
func Date(year int, month time.Month, day int) *time.Time {
	date := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return &date
}

// SeedTasks returns the sample collection used by local fakes and demos.
func SeedTasks() []Task {
	return []Task{
		{
			ID:          "1",
			Title:       "Setup project structure for Q3 launch",
			Description: "Initialize the app, install dependencies, and configure base project settings. This is a critical first step for the new product launch.",
			DueDate:     Date(2024, time.August, 15),
			Priority:    domain.TaskPriorityHigh,
			Status:      domain.TaskStatusDone,
			UserID:      domain.DefaultUserID,
		},
		{
			ID:          "2",
			Title:       "Design UI mockups for the new dashboard",
			Description: "Create detailed mockups for all pages and components.",
			DueDate:     Date(2024, time.August, 20),
			Priority:    domain.TaskPriorityMedium,
			Status:      domain.TaskStatusInProgress,
			UserID:      domain.DefaultUserID,
		},
		{
			ID:          "3",
			Title:       "Develop REST API endpoints for user authentication",
			Description: "Implement and test all necessary CRUD endpoints for tasks, ensuring security and proper validation. This is an ASAP task.",
			DueDate:     Date(2024, time.August, 25),
			Priority:    domain.TaskPriorityHigh,
			Status:      domain.TaskStatusTodo,
			UserID:      domain.DefaultUserID,
		},
		{
			ID:          "4",
			Title:       "Implement frontend components based on the designs",
			Description: "Build out all components for the task list, forms, and navigation.",
			DueDate:     Date(2024, time.August, 30),
			Priority:    domain.TaskPriorityMedium,
			Status:      domain.TaskStatusTodo,
			UserID:      domain.DefaultUserID,
		},
		{
			ID:          "5",
			Title:       "Write user documentation for the new features",
			Description: "We should eventually document the API and project setup for new developers.",
			DueDate:     Date(2024, time.September, 5),
			Priority:    domain.TaskPriorityLow,
			Status:      domain.TaskStatusCanceled,
			UserID:      domain.DefaultUserID,
		},
		{
			ID:          "6",
			Title:       "Review and refactor legacy code in the billing module",
			Description: "Go through the old billing code and improve its structure and performance.",
			DueDate:     Date(2024, time.September, 10),
			Priority:    domain.TaskPriorityLow,
			Status:      domain.TaskStatusTodo,
			UserID:      domain.DefaultUserID,
		},
	}
}
