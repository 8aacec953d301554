package model

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"taskboard/internal/core/domain"
)

var ErrInvalidRecord = errors.New("invalid task record")

// WireID accepts an identifier sent either as a JSON number or a JSON string.
type WireID string

func (id *WireID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = WireID(NormalizeID(s))
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("id must be a number or a string: %w", err)
	}
	*id = WireID(NormalizeID(n.String()))
	return nil
}

// NormalizeID gives numeric ids one canonical decimal form so 7, "7" and "007" compare equal.
func NormalizeID(raw string) string {
	raw = strings.TrimSpace(raw)
	if n, err := strconv.ParseUint(raw, 10, 64); err == nil {
		return strconv.FormatUint(n, 10)
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil && f >= 0 && f == float64(uint64(f)) {
		return strconv.FormatUint(uint64(f), 10)
	}
	return raw
}

// WireTask is a task record as the API sends it.
type WireTask struct {
	ID          WireID  `json:"id"`
	Title       *string `json:"title"`
	Description *string `json:"description"`
	DueDate     *string `json:"due_date"`
	Priority    string  `json:"priority"`
	Status      string  `json:"status"`
	UserID      *WireID `json:"user_id"`
}

// WirePayload is the body of a create or whole-record update.
type WirePayload struct {
	Title       string  `json:"title"`
	Description *string `json:"description"`
	DueDate     *string `json:"due_date"`
	Priority    string  `json:"priority"`
	Status      string  `json:"status"`
	UserID      uint64  `json:"user_id"`
}

// ToMemory validates an inbound record. Missing id or title and out-of-enum values are
// rejected rather than coerced; an absent priority, status or owner takes the storage default.
func ToMemory(w WireTask) (Task, error) {
	id := NormalizeID(string(w.ID))
	if id == "" {
		return Task{}, fmt.Errorf("%w: missing id", ErrInvalidRecord)
	}
	if w.Title == nil || strings.TrimSpace(*w.Title) == "" {
		return Task{}, fmt.Errorf("%w: task %s has no title", ErrInvalidRecord, id)
	}

	priority, err := domain.ParseTaskPriority(w.Priority)
	if err != nil {
		return Task{}, fmt.Errorf("%w: task %s priority %q", ErrInvalidRecord, id, w.Priority)
	}
	status, err := domain.ParseTaskStatus(w.Status)
	if err != nil {
		return Task{}, fmt.Errorf("%w: task %s status %q", ErrInvalidRecord, id, w.Status)
	}

	task := Task{
		ID:       id,
		Title:    *w.Title,
		Priority: priority,
		Status:   status,
		UserID:   domain.DefaultUserID,
	}
	if w.Description != nil {
		task.Description = *w.Description
	}
	if w.DueDate != nil && *w.DueDate != "" {
		dueDate, err := domain.ParseDate(*w.DueDate)
		if err != nil {
			return Task{}, fmt.Errorf("%w: task %s: %v", ErrInvalidRecord, id, err)
		}
		task.DueDate = &dueDate
	}
	if w.UserID != nil && *w.UserID != "" {
		userID, err := strconv.ParseUint(string(*w.UserID), 10, 64)
		if err != nil {
			return Task{}, fmt.Errorf("%w: task %s user_id %q", ErrInvalidRecord, id, *w.UserID)
		}
		task.UserID = userID
	}

	return task, nil
}

func ToWire(t Task) WireTask {
	title := t.Title
	userID := WireID(strconv.FormatUint(t.UserID, 10))
	return WireTask{
		ID:          WireID(t.ID),
		Title:       &title,
		Description: optionalString(t.Description),
		DueDate:     formatDueDate(t),
		Priority:    string(t.Priority),
		Status:      string(t.Status),
		UserID:      &userID,
	}
}

// ToPayload builds the outbound body, filling the defaults the API expects.
func ToPayload(t Task) WirePayload {
	payload := WirePayload{
		Title:       t.Title,
		Description: optionalString(t.Description),
		DueDate:     formatDueDate(t),
		Priority:    string(t.Priority),
		Status:      string(t.Status),
		UserID:      t.UserID,
	}
	if payload.Priority == "" {
		payload.Priority = string(domain.TaskPriorityMedium)
	}
	if payload.Status == "" {
		payload.Status = string(domain.TaskStatusTodo)
	}
	if payload.UserID == 0 {
		payload.UserID = domain.DefaultUserID
	}
	return payload
}

func formatDueDate(t Task) *string {
	if t.DueDate == nil {
		return nil
	}
	value := domain.FormatDate(*t.DueDate)
	return &value
}

func optionalString(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}
