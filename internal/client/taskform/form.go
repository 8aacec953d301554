// Package taskform holds the state of the create/edit task form: field validation, submission
// through the task API and the priority suggestion shortcut.
package taskform

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"taskboard/internal/client/model"
	"taskboard/internal/core/domain"
)

// MsgEmptyDescription is shown when a suggestion is asked for without a description.
const MsgEmptyDescription = "Please enter a description first."

// Form mirrors the editor fields. DueDate is kept as typed (YYYY-MM-DD).
type Form struct {
	ID          string `json:"id,omitempty"`
	Title       string `json:"title" validate:"required,min=2,max=100"`
	Description string `json:"description"`
	DueDate     string `json:"dueDate" validate:"required,datetime=2006-01-02"`
	Priority    string `json:"priority" validate:"required,oneof=low medium high"`
	Status      string `json:"status" validate:"required,oneof=todo in-progress done canceled"`
	UserID      uint64 `json:"userId"`
}

// Saver persists a task. *taskapi.Client satisfies it.
type Saver interface {
	Create(ctx context.Context, draft model.Task) (model.Task, error)
	Update(ctx context.Context, task model.Task) (model.Task, error)
}

type Suggester interface {
	SuggestPriority(ctx context.Context, description string) (domain.TaskPriority, error)
}

// New returns an empty create form with the default priority and status.
func New() *Form {
	return &Form{
		Priority: string(domain.TaskPriorityMedium),
		Status:   string(domain.TaskStatusTodo),
		UserID:   domain.DefaultUserID,
	}
}

// FromTask seeds an edit form from task.
func FromTask(task model.Task) *Form {
	f := &Form{
		ID:          task.ID,
		Title:       task.Title,
		Description: task.Description,
		Priority:    string(task.Priority),
		Status:      string(task.Status),
		UserID:      task.UserID,
	}
	if task.DueDate != nil {
		f.DueDate = domain.FormatDate(*task.DueDate)
	}
	return f
}

func (f *Form) IsEdit() bool {
	return f.ID != ""
}

// Validate checks every field and reports all failures at once.
func (f *Form) Validate() error {
	candidate := *f
	candidate.Title = strings.TrimSpace(candidate.Title)
	candidate.DueDate = strings.TrimSpace(candidate.DueDate)

	err := validate().Struct(candidate)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	verr := &ValidationError{Fields: make(map[string]string, len(fieldErrs))}
	for _, fe := range fieldErrs {
		verr.Fields[fe.Field()] = fieldMessage(fe)
	}
	return verr
}

// Task converts a valid form to a task. Call Validate first.
func (f *Form) Task() (model.Task, error) {
	task := model.Task{
		ID:          f.ID,
		Title:       strings.TrimSpace(f.Title),
		Description: f.Description,
		Priority:    domain.TaskPriority(f.Priority),
		Status:      domain.TaskStatus(f.Status),
		UserID:      f.UserID,
	}
	if task.UserID == 0 {
		task.UserID = domain.DefaultUserID
	}
	if due := strings.TrimSpace(f.DueDate); due != "" {
		date, err := domain.ParseDate(due)
		if err != nil {
			return model.Task{}, err
		}
		task.DueDate = &date
	}
	return task, nil
}

// Submit validates the form and creates or updates the task. Nothing is sent when validation
// fails. The returned task is the server's copy.
func (f *Form) Submit(ctx context.Context, saver Saver) (model.Task, error) {
	if err := f.Validate(); err != nil {
		return model.Task{}, err
	}
	task, err := f.Task()
	if err != nil {
		return model.Task{}, err
	}
	if f.IsEdit() {
		return saver.Update(ctx, task)
	}
	return saver.Create(ctx, task)
}

// SuggestPriority asks for a priority for the current description and applies it. On failure
// the priority is left as it was.
func (f *Form) SuggestPriority(ctx context.Context, suggester Suggester) (domain.TaskPriority, error) {
	if strings.TrimSpace(f.Description) == "" {
		return "", &SuggestionError{Message: MsgEmptyDescription}
	}

	priority, err := suggester.SuggestPriority(ctx, f.Description)
	if err != nil {
		return "", &SuggestionError{Message: "Could not suggest a priority.", Err: err}
	}
	if !priority.Valid() {
		return "", &SuggestionError{Message: "Could not suggest a priority.", Err: fmt.Errorf("unexpected priority %q", priority)}
	}

	f.Priority = string(priority)
	return priority, nil
}

// ValidationError maps a field name to its message.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, name+": "+e.Fields[name])
	}
	return "invalid task form: " + strings.Join(parts, "; ")
}

type SuggestionError struct {
	Message string
	Err     error
}

func (e *SuggestionError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *SuggestionError) Unwrap() error {
	return e.Err
}

var (
	validateOnce sync.Once
	formValidate *validator.Validate
)

func validate() *validator.Validate {
	validateOnce.Do(func() {
		formValidate = validator.New(validator.WithRequiredStructEnabled())
		formValidate.RegisterTagNameFunc(func(field reflect.StructField) string {
			name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
			if name == "-" {
				return ""
			}
			return name
		})
	})
	return formValidate
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Field() {
	case "title":
		if fe.Tag() == "required" {
			return "Title is required."
		}
		return fmt.Sprintf("Title must be between %d and %d characters.", domain.TitleMinLength, domain.TitleMaxLength)
	case "dueDate":
		if fe.Tag() == "required" {
			return "Due date is required."
		}
		return "Due date must be a valid date (YYYY-MM-DD)."
	case "priority":
		return "Priority must be one of low, medium, high."
	case "status":
		return "Status must be one of todo, in-progress, done, canceled."
	}
	return fmt.Sprintf("failed on %s", fe.Tag())
}
