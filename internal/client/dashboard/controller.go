// Package dashboard drives the task dashboard: it owns the view state, routes edits through the
// task form and re-lists the collection after every successful mutation.
package dashboard

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"taskboard/internal/client/model"
	"taskboard/internal/client/taskapi"
	"taskboard/internal/client/taskform"
	"taskboard/internal/client/tasklist"
	"taskboard/internal/core/domain"
)

var (
	ErrClosed        = errors.New("dashboard closed")
	ErrUnknownTask   = errors.New("task not in collection")
	ErrInvalidFilter = errors.New("invalid filter")
)

// TaskAPI is the subset of the task API the dashboard calls. *taskapi.Client satisfies it.
type TaskAPI interface {
	List(ctx context.Context) ([]model.Task, error)
	Create(ctx context.Context, draft model.Task) (model.Task, error)
	Update(ctx context.Context, task model.Task) (model.Task, error)
	Delete(ctx context.Context, id string) error
	SuggestPriority(ctx context.Context, description string) (domain.TaskPriority, error)
}

// fullLister is implemented by APIs that report records dropped by ingress validation.
type fullLister interface {
	ListAll(ctx context.Context) (taskapi.ListResult, error)
}

type Controller struct {
	api    TaskAPI
	logger *zap.Logger

	// opMu serializes mutations together with the refresh they trigger.
	opMu sync.Mutex

	mu         sync.Mutex
	state      ViewState
	generation uint64
	// session counts editor openings and closings; results for an older session leave the
	// editor alone.
	session uint64
	closed  bool
}

type Option func(*Controller)

func WithLogger(logger *zap.Logger) Option {
	return func(c *Controller) { c.logger = logger }
}

func New(api TaskAPI, opts ...Option) *Controller {
	c := &Controller{
		api:    api,
		logger: zap.NewNop(),
		state:  initialState(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Load fetches the collection. It is called once on mount and may be called again to reload.
func (c *Controller) Load(ctx context.Context) error {
	return c.refresh(ctx)
}

// refresh re-lists the collection. A result is applied only if no newer refresh started and
// the controller is still open; otherwise it is dropped.
func (c *Controller) refresh(ctx context.Context) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}
	c.generation++
	gen := c.generation
	c.state.Loading = true
	c.mu.Unlock()

	tasks, skipped, err := c.list(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || gen != c.generation {
		c.logger.Debug("discarding stale task list", zap.Uint64("generation", gen))
		return nil
	}
	c.state.Loading = false
	if err != nil {
		c.noticeLocked(NoticeError, "Failed to load tasks.", err)
		return err
	}
	if tasks == nil {
		tasks = []model.Task{}
	}
	c.state.Tasks = tasks
	if skipped > 0 {
		c.state.Notices = append(c.state.Notices, Notice{
			Level:   NoticeInfo,
			Message: fmt.Sprintf("%d invalid task record(s) were hidden.", skipped),
		})
	}
	return nil
}

func (c *Controller) list(ctx context.Context) ([]model.Task, int, error) {
	if lister, ok := c.api.(fullLister); ok {
		result, err := lister.ListAll(ctx)
		return result.Tasks, result.Skipped, err
	}
	tasks, err := c.api.List(ctx)
	return tasks, 0, err
}

// OpenCreate opens the editor on an empty form and returns a copy of it.
func (c *Controller) OpenCreate() *taskform.Form {
	c.mu.Lock()
	defer c.mu.Unlock()

	form := taskform.New()
	c.session++
	c.state.Selected = ""
	c.state.EditorOpen = true
	c.state.Editor = form
	copied := *form
	return &copied
}

// OpenEdit opens the editor on the task with id and returns a copy of the form.
func (c *Controller) OpenEdit(id string) (*taskform.Form, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, task := range c.state.Tasks {
		if task.SameID(id) {
			form := taskform.FromTask(task)
			c.session++
			c.state.Selected = task.ID
			c.state.EditorOpen = true
			c.state.Editor = form
			copied := *form
			return &copied, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownTask, id)
}

func (c *Controller) CloseEditor() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.session++
	c.closeEditorLocked()
}

// EditorForm returns a copy of the open form, or nil when the editor is closed.
func (c *Controller) EditorForm() *taskform.Form {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.state.EditorOpen || c.state.Editor == nil {
		return nil
	}
	copied := *c.state.Editor
	return &copied
}

// Session identifies the current editor opening. It changes whenever the editor opens or closes.
func (c *Controller) Session() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.session
}

// Save submits form against the current editor session. See SaveFor.
func (c *Controller) Save(ctx context.Context, form *taskform.Form) error {
	return c.SaveFor(ctx, c.Session(), form)
}

// SaveFor submits form, which was taken from editor session. On success the editor closes and
// the collection is re-listed; on failure the state keeps the edited form and gains a notice.
// If session has ended by the time the request completes, the editor is left alone.
func (c *Controller) SaveFor(ctx context.Context, session uint64, form *taskform.Form) error {
	c.opMu.Lock()
	defer c.opMu.Unlock()

	if c.isClosed() {
		return ErrClosed
	}

	saved, err := form.Submit(ctx, c.api)
	if err != nil {
		c.mu.Lock()
		if c.state.EditorOpen && session == c.session {
			copied := *form
			c.state.Editor = &copied
		}
		var verr *taskform.ValidationError
		if errors.As(err, &verr) {
			c.noticeLocked(NoticeError, "Please fix the highlighted fields.", err)
		} else {
			c.noticeLocked(NoticeError, "Failed to save task.", err)
		}
		c.mu.Unlock()
		return err
	}

	c.logger.Info("task saved", zap.String("task_id", saved.ID), zap.Bool("edit", form.IsEdit()))

	c.mu.Lock()
	if session == c.session {
		c.session++
		c.closeEditorLocked()
	}
	c.mu.Unlock()

	return c.refresh(ctx)
}

// Delete removes the task with id and re-lists. Unknown ids are not an error.
func (c *Controller) Delete(ctx context.Context, id string) error {
	c.opMu.Lock()
	defer c.opMu.Unlock()

	if c.isClosed() {
		return ErrClosed
	}

	if err := c.api.Delete(ctx, model.NormalizeID(id)); err != nil {
		c.mu.Lock()
		c.noticeLocked(NoticeError, "Failed to delete task.", err)
		c.mu.Unlock()
		return err
	}

	c.mu.Lock()
	if c.state.Selected != "" && c.state.Selected == model.NormalizeID(id) {
		c.session++
		c.closeEditorLocked()
	}
	c.mu.Unlock()

	return c.refresh(ctx)
}

// Suggest fills the form's priority from its description. Failures become notices and leave
// the form untouched.
func (c *Controller) Suggest(ctx context.Context, form *taskform.Form) error {
	return c.SuggestFor(ctx, c.Session(), form)
}

// SuggestFor is Suggest for a form taken from editor session; the open editor only picks up
// the priority if session is still current.
func (c *Controller) SuggestFor(ctx context.Context, session uint64, form *taskform.Form) error {
	if _, err := form.SuggestPriority(ctx, c.api); err != nil {
		c.mu.Lock()
		var serr *taskform.SuggestionError
		message := "Could not suggest a priority."
		if errors.As(err, &serr) {
			message = serr.Message
		}
		c.noticeLocked(NoticeError, message, err)
		c.mu.Unlock()
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state.EditorOpen && c.state.Editor != nil && session == c.session {
		c.state.Editor.Priority = form.Priority
	}
	return nil
}

func (c *Controller) SetFilter(filter tasklist.Filter) error {
	if filter.Status == "" {
		filter.Status = tasklist.All
	}
	if filter.Priority == "" {
		filter.Priority = tasklist.All
	}
	if !tasklist.ValidStatusFilter(filter.Status) || !tasklist.ValidPriorityFilter(filter.Priority) {
		return fmt.Errorf("%w: status=%q priority=%q", ErrInvalidFilter, filter.Status, filter.Priority)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.Filter = filter
	return nil
}

func (c *Controller) SetSort(sort tasklist.Sort) {
	if sort.Direction != tasklist.Desc {
		sort.Direction = tasklist.Asc
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.Sort = sort
}

// ToggleSort applies a header click on key and returns the resulting sort.
func (c *Controller) ToggleSort(key tasklist.Key) tasklist.Sort {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.Sort = c.state.Sort.Toggle(key)
	return c.state.Sort
}

// View returns the filtered and sorted tasks.
func (c *Controller) View() []model.Task {
	c.mu.Lock()
	defer c.mu.Unlock()
	return tasklist.Apply(c.state.Tasks, c.state.Filter, c.state.Sort)
}

// State returns a deep copy of the view state.
func (c *Controller) State() ViewState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.clone()
}

func (c *Controller) DismissNotices() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.Notices = nil
}

// Close stops the controller. Requests still in flight complete but their results are dropped.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	c.state.Loading = false
}

func (c *Controller) isClosed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

func (c *Controller) closeEditorLocked() {
	c.state.EditorOpen = false
	c.state.Editor = nil
	c.state.Selected = ""
}

func (c *Controller) noticeLocked(level NoticeLevel, message string, err error) {
	var apiErr *taskapi.Error
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		message = message + " " + apiErr.Message
	}
	c.state.Notices = append(c.state.Notices, Notice{Level: level, Message: message})
	c.logger.Warn("dashboard operation failed", zap.String("notice", message), zap.Error(err))
}
