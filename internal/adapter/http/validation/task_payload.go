package validation

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"taskboard/internal/adapter/http/dto"
	"taskboard/internal/core/domain"
)

var (
	ErrInvalidTaskPayload = errors.New("invalid task payload")
	ErrInvalidTaskID      = errors.New("invalid task id")
)

// BuildTaskInput turns a bound request into a complete task input, applying the storage
// defaults for every omitted field.
func BuildTaskInput(req dto.TaskRequest) (domain.TaskInput, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return domain.TaskInput{}, ErrInvalidTaskPayload
	}

	priority, err := domain.ParseTaskPriority(req.Priority)
	if err != nil {
		return domain.TaskInput{}, ErrInvalidTaskPayload
	}

	status, err := domain.ParseTaskStatus(req.Status)
	if err != nil {
		return domain.TaskInput{}, ErrInvalidTaskPayload
	}

	var dueDate *time.Time
	if req.DueDate != nil && *req.DueDate != "" {
		parsed, err := time.Parse(domain.DateLayout, *req.DueDate)
		if err != nil {
			return domain.TaskInput{}, ErrInvalidTaskPayload
		}
		dueDate = &parsed
	}

	userID := domain.DefaultUserID
	if req.UserID != nil {
		userID = *req.UserID
	}

	return domain.TaskInput{
		UserID:      userID,
		Title:       title,
		Description: req.Description,
		Status:      status,
		Priority:    priority,
		DueDate:     dueDate,
	}, nil
}

func ParseTaskID(raw string) (uint64, error) {
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, ErrInvalidTaskID
	}
	return id, nil
}
