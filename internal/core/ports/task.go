package ports

import (
	"context"

	"taskboard/internal/core/domain"
)

type TaskRepository interface {
	List(ctx context.Context) ([]domain.Task, error)
	Get(ctx context.Context, id uint64) (domain.Task, error)
	Create(ctx context.Context, input domain.TaskInput) (domain.Task, error)
	Replace(ctx context.Context, id uint64, input domain.TaskInput) (domain.Task, error)
	Delete(ctx context.Context, id uint64) error
}

type TaskService interface {
	ListTasks(ctx context.Context) ([]domain.Task, error)
	GetTask(ctx context.Context, id uint64) (domain.Task, error)
	CreateTask(ctx context.Context, input domain.TaskInput) (domain.Task, error)
	UpdateTask(ctx context.Context, id uint64, input domain.TaskInput) (domain.Task, error)
	DeleteTask(ctx context.Context, id uint64) error
	SuggestPriority(ctx context.Context, description string) (domain.TaskPriority, error)
}

// PrioritySuggester classifies a free-text description into a task priority.
type PrioritySuggester interface {
	Suggest(ctx context.Context, description string) (domain.TaskPriority, error)
}
