package domain

import (
	"strings"
	"time"
	"unicode/utf8"
)

type TaskStatus string

const (
	TaskStatusTodo       TaskStatus = "todo"
	TaskStatusInProgress TaskStatus = "in-progress"
	TaskStatusDone       TaskStatus = "done"
	TaskStatusCanceled   TaskStatus = "canceled"
)

type TaskPriority string

const (
	TaskPriorityLow    TaskPriority = "low"
	TaskPriorityMedium TaskPriority = "medium"
	TaskPriorityHigh   TaskPriority = "high"
)

const (
	DefaultUserID uint64 = 1

	TitleMinLength = 2
	TitleMaxLength = 100
)

var (
	TaskStatuses   = []TaskStatus{TaskStatusTodo, TaskStatusInProgress, TaskStatusDone, TaskStatusCanceled}
	TaskPriorities = []TaskPriority{TaskPriorityLow, TaskPriorityMedium, TaskPriorityHigh}
)

func (s TaskStatus) Valid() bool {
	for _, status := range TaskStatuses {
		if s == status {
			return true
		}
	}
	return false
}

func (p TaskPriority) Valid() bool {
	for _, priority := range TaskPriorities {
		if p == priority {
			return true
		}
	}
	return false
}

// ParseTaskStatus returns the status for value; an empty value yields the storage default.
func ParseTaskStatus(value string) (TaskStatus, error) {
	if value == "" {
		return TaskStatusTodo, nil
	}
	status := TaskStatus(value)
	if !status.Valid() {
		return "", ErrInvalidStatus
	}
	return status, nil
}

// ParseTaskPriority returns the priority for value; an empty value yields the storage default.
func ParseTaskPriority(value string) (TaskPriority, error) {
	if value == "" {
		return TaskPriorityMedium, nil
	}
	priority := TaskPriority(value)
	if !priority.Valid() {
		return "", ErrInvalidPriority
	}
	return priority, nil
}

type Task struct {
	ID          uint64
	UserID      uint64
	Title       string
	Description *string
	Status      TaskStatus
	Priority    TaskPriority
	DueDate     *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TaskInput carries every editable field of a task. It is used both for creation and for
// whole-record replacement.
type TaskInput struct {
	UserID      uint64
	Title       string
	Description *string
	Status      TaskStatus
	Priority    TaskPriority
	DueDate     *time.Time
}

// WithDefaults fills the fields the store would otherwise default.
func (in TaskInput) WithDefaults() TaskInput {
	in.Title = strings.TrimSpace(in.Title)
	if in.UserID == 0 {
		in.UserID = DefaultUserID
	}
	if in.Status == "" {
		in.Status = TaskStatusTodo
	}
	if in.Priority == "" {
		in.Priority = TaskPriorityMedium
	}
	return in
}

func (in TaskInput) Validate() error {
	title := strings.TrimSpace(in.Title)
	if n := utf8.RuneCountInString(title); n < TitleMinLength || n > TitleMaxLength {
		return ErrInvalidTitle
	}
	if !in.Status.Valid() {
		return ErrInvalidStatus
	}
	if !in.Priority.Valid() {
		return ErrInvalidPriority
	}
	return nil
}
