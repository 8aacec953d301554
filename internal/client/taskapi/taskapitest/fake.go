// Package taskapitest provides an in-memory stand-in for the task API.
package taskapitest

import (
	"context"
	"strconv"
	"strings"
	"sync"

	"taskboard/internal/client/model"
	"taskboard/internal/client/taskapi"
	"taskboard/internal/core/domain"
	"taskboard/internal/suggest"
)

// Fake behaves like taskapi.Client over an in-memory store. Ids are assigned numerically,
// deletes of unknown ids succeed, and failures can be injected per operation.
type Fake struct {
	mu       sync.Mutex
	tasks    []model.Task
	nextID   uint64
	failures map[taskapi.Op][]error
	calls    map[taskapi.Op]int
	skipped  int

	// OnList, when set, runs at the start of every List call with the 1-based call number.
	// Tests use it to hold a refresh in flight.
	OnList func(call int)
	// OnCreate, when set, runs before every Create call takes the store lock.
	OnCreate func(draft model.Task)
}

func NewFake(seed ...model.Task) *Fake {
	f := &Fake{
		failures: make(map[taskapi.Op][]error),
		calls:    make(map[taskapi.Op]int),
		nextID:   1,
	}
	for _, task := range seed {
		task.ID = model.NormalizeID(task.ID)
		if n, err := strconv.ParseUint(task.ID, 10, 64); err == nil && n >= f.nextID {
			f.nextID = n + 1
		}
		f.tasks = append(f.tasks, task)
	}
	return f
}

// FailNext makes the next call of op fail with err (wrapped in a *taskapi.Error when it is not one).
func (f *Fake) FailNext(op taskapi.Op, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failures[op] = append(f.failures[op], err)
}

func (f *Fake) Calls(op taskapi.Op) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[op]
}

// Tasks returns a copy of the stored collection.
func (f *Fake) Tasks() []model.Task {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]model.Task(nil), f.tasks...)
}

func (f *Fake) List(ctx context.Context) ([]model.Task, error) {
	f.mu.Lock()
	call, err := f.begin(taskapi.OpList)
	hook := f.OnList
	f.mu.Unlock()

	if hook != nil {
		hook(call)
	}
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, &taskapi.Error{Op: taskapi.OpList, Err: err}
	}

	return f.Tasks(), nil
}

// SkipRecords makes ListAll report n records dropped by validation.
func (f *Fake) SkipRecords(n int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.skipped = n
}

func (f *Fake) ListAll(ctx context.Context) (taskapi.ListResult, error) {
	tasks, err := f.List(ctx)
	if err != nil {
		return taskapi.ListResult{}, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return taskapi.ListResult{Tasks: tasks, Skipped: f.skipped}, nil
}

func (f *Fake) Create(_ context.Context, draft model.Task) (model.Task, error) {
	f.mu.Lock()
	hook := f.OnCreate
	f.mu.Unlock()
	if hook != nil {
		hook(draft)
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if _, err := f.begin(taskapi.OpCreate); err != nil {
		return model.Task{}, err
	}
	if strings.TrimSpace(draft.Title) == "" || draft.Status == "" {
		return model.Task{}, taskapi.ErrIncompleteDraft
	}

	task := withDefaults(draft)
	task.ID = strconv.FormatUint(f.nextID, 10)
	f.nextID++
	f.tasks = append(f.tasks, task)
	return task, nil
}

func (f *Fake) Update(_ context.Context, task model.Task) (model.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, err := f.begin(taskapi.OpUpdate); err != nil {
		return model.Task{}, err
	}
	if task.ID == "" {
		return model.Task{}, taskapi.ErrMissingID
	}

	for i := range f.tasks {
		if f.tasks[i].SameID(task.ID) {
			task = withDefaults(task)
			task.ID = f.tasks[i].ID
			f.tasks[i] = task
			return task, nil
		}
	}
	return model.Task{}, &taskapi.Error{Op: taskapi.OpUpdate, StatusCode: 404, Message: "Task not found"}
}

func (f *Fake) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, err := f.begin(taskapi.OpDelete); err != nil {
		return err
	}

	for i := range f.tasks {
		if f.tasks[i].SameID(id) {
			f.tasks = append(f.tasks[:i], f.tasks[i+1:]...)
			return nil
		}
	}
	return nil
}

// SuggestPriority answers with the keyword heuristic.
func (f *Fake) SuggestPriority(_ context.Context, description string) (domain.TaskPriority, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, err := f.begin(taskapi.OpSuggest); err != nil {
		return "", err
	}
	if strings.TrimSpace(description) == "" {
		return "", &taskapi.Error{Op: taskapi.OpSuggest, StatusCode: 400, Message: "Please enter a description first."}
	}
	return suggest.Classify(description), nil
}

// begin counts the call and pops an injected failure. Callers hold f.mu.
func (f *Fake) begin(op taskapi.Op) (int, error) {
	f.calls[op]++
	call := f.calls[op]

	queue := f.failures[op]
	if len(queue) == 0 {
		return call, nil
	}
	err := queue[0]
	f.failures[op] = queue[1:]

	if _, ok := err.(*taskapi.Error); !ok {
		err = &taskapi.Error{Op: op, Err: err}
	}
	return call, err
}

func withDefaults(task model.Task) model.Task {
	if task.Priority == "" {
		task.Priority = domain.TaskPriorityMedium
	}
	if task.Status == "" {
		task.Status = domain.TaskStatusTodo
	}
	if task.UserID == 0 {
		task.UserID = domain.DefaultUserID
	}
	return task
}
