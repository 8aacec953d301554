package service

import (
	"context"
	"strings"
	"time"

	"taskboard/internal/core/domain"
	"taskboard/internal/core/ports"
	"taskboard/internal/metrics"
)

const (
	opList    = "list"
	opGet     = "get"
	opCreate  = "create"
	opUpdate  = "update"
	opDelete  = "delete"
	opSuggest = "suggest"
)

type TaskService struct {
	taskRepository ports.TaskRepository
	suggester      ports.PrioritySuggester
}

func NewTaskService(taskRepository ports.TaskRepository, suggester ports.PrioritySuggester) *TaskService {
	return &TaskService{taskRepository: taskRepository, suggester: suggester}
}

func (s *TaskService) ListTasks(ctx context.Context) (tasks []domain.Task, err error) {
	defer track(opList)(&err)
	return s.taskRepository.List(ctx)
}

func (s *TaskService) GetTask(ctx context.Context, id uint64) (task domain.Task, err error) {
	defer track(opGet)(&err)
	return s.taskRepository.Get(ctx, id)
}

func (s *TaskService) CreateTask(ctx context.Context, input domain.TaskInput) (task domain.Task, err error) {
	defer track(opCreate)(&err)
	input = input.WithDefaults()
	if err = input.Validate(); err != nil {
		return domain.Task{}, err
	}
	return s.taskRepository.Create(ctx, input)
}

// UpdateTask replaces every editable field of the task.
func (s *TaskService) UpdateTask(ctx context.Context, id uint64, input domain.TaskInput) (task domain.Task, err error) {
	defer track(opUpdate)(&err)
	input = input.WithDefaults()
	if err = input.Validate(); err != nil {
		return domain.Task{}, err
	}
	return s.taskRepository.Replace(ctx, id, input)
}

func (s *TaskService) DeleteTask(ctx context.Context, id uint64) (err error) {
	defer track(opDelete)(&err)
	return s.taskRepository.Delete(ctx, id)
}

func (s *TaskService) SuggestPriority(ctx context.Context, description string) (priority domain.TaskPriority, err error) {
	defer track(opSuggest)(&err)
	description = strings.TrimSpace(description)
	if description == "" {
		return "", domain.ErrEmptyDescription
	}
	return s.suggester.Suggest(ctx, description)
}

func track(op string) func(*error) {
	start := time.Now()
	return func(err *error) {
		metrics.ObserveTaskOperation(op, start, *err)
	}
}

var _ ports.TaskService = (*TaskService)(nil)
