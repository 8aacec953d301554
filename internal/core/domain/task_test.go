package domain_test

import (
	"strings"
	"testing"
	"time"

	"taskboard/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTaskPriority(t *testing.T) {
	priority, err := domain.ParseTaskPriority("")
	require.NoError(t, err)
	assert.Equal(t, domain.TaskPriorityMedium, priority)

	priority, err = domain.ParseTaskPriority("high")
	require.NoError(t, err)
	assert.Equal(t, domain.TaskPriorityHigh, priority)

	_, err = domain.ParseTaskPriority("urgent")
	assert.ErrorIs(t, err, domain.ErrInvalidPriority)
}

func TestParseTaskStatus(t *testing.T) {
	status, err := domain.ParseTaskStatus("")
	require.NoError(t, err)
	assert.Equal(t, domain.TaskStatusTodo, status)

	status, err = domain.ParseTaskStatus("in-progress")
	require.NoError(t, err)
	assert.Equal(t, domain.TaskStatusInProgress, status)

	_, err = domain.ParseTaskStatus("in_progress")
	assert.ErrorIs(t, err, domain.ErrInvalidStatus)
}

func TestTaskInput_Validate(t *testing.T) {
	valid := domain.TaskInput{
		Title:    "Ship v2",
		Status:   domain.TaskStatusTodo,
		Priority: domain.TaskPriorityHigh,
	}
	require.NoError(t, valid.Validate())

	tests := []struct {
		name    string
		mutate  func(in *domain.TaskInput)
		wantErr error
	}{
		{"title too short", func(in *domain.TaskInput) { in.Title = "a" }, domain.ErrInvalidTitle},
		{"title blank", func(in *domain.TaskInput) { in.Title = "   " }, domain.ErrInvalidTitle},
		{"title too long", func(in *domain.TaskInput) { in.Title = strings.Repeat("x", 101) }, domain.ErrInvalidTitle},
		{"bad status", func(in *domain.TaskInput) { in.Status = "blocked" }, domain.ErrInvalidStatus},
		{"bad priority", func(in *domain.TaskInput) { in.Priority = "asap" }, domain.ErrInvalidPriority},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := valid
			tt.mutate(&in)
			assert.ErrorIs(t, in.Validate(), tt.wantErr)
			assert.True(t, domain.IsValidationError(in.Validate()))
		})
	}
}

func TestTaskInput_TitleLengthCountsRunes(t *testing.T) {
	in := domain.TaskInput{Title: strings.Repeat("é", 100), Status: domain.TaskStatusTodo, Priority: domain.TaskPriorityLow}
	assert.NoError(t, in.Validate())
}

func TestTaskInput_WithDefaults(t *testing.T) {
	in := domain.TaskInput{Title: "  Write docs  "}.WithDefaults()
	assert.Equal(t, "Write docs", in.Title)
	assert.Equal(t, domain.DefaultUserID, in.UserID)
	assert.Equal(t, domain.TaskStatusTodo, in.Status)
	assert.Equal(t, domain.TaskPriorityMedium, in.Priority)
}

func TestParseDate(t *testing.T) {
	date, err := domain.ParseDate("2024-09-01")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 9, 1, 0, 0, 0, 0, time.UTC), date)
	assert.Equal(t, "2024-09-01", domain.FormatDate(date))

	date, err = domain.ParseDate("2024-09-01T23:30:00-05:00")
	require.NoError(t, err)
	assert.Equal(t, "2024-09-01", domain.FormatDate(date))

	date, err = domain.ParseDate("2024-09-01 08:15:00")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 9, 1, 0, 0, 0, 0, time.UTC), date)

	for _, value := range []string{"09/01/2024", "2024-09-01 garbage", "2024-09-01x", "2024-09-01T", ""} {
		_, err = domain.ParseDate(value)
		assert.ErrorIs(t, err, domain.ErrInvalidDueDate, value)
	}
}
