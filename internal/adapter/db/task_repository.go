package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"taskboard/internal/core/domain"
	"taskboard/internal/core/ports"
)

const (
	taskColumns = "id, user_id, title, description, due_date, priority, status, created_at, updated_at"

	listTasksQuery = "SELECT " + taskColumns + " FROM tasks ORDER BY id"
	getTaskQuery   = "SELECT " + taskColumns + " FROM tasks WHERE id = ?"

	insertTaskQuery = `
INSERT INTO tasks (user_id, title, description, due_date, priority, status, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	replaceTaskQuery = `
UPDATE tasks
SET user_id = ?, title = ?, description = ?, due_date = ?, priority = ?, status = ?, updated_at = ?
WHERE id = ?`

	taskExistsQuery = "SELECT COUNT(1) FROM tasks WHERE id = ?"
	deleteTaskQuery = "DELETE FROM tasks WHERE id = ?"

	timestampLayout = "2006-01-02 15:04:05"
)

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999-07:00",
	timestampLayout,
}

type TaskRepository struct {
	db *sqlx.DB
}

// Dates and timestamps are scanned as strings: MySQL (parseTime) hands back time.Time which
// database/sql renders as RFC3339, SQLite hands back the stored text.
type taskRow struct {
	ID          uint64         `db:"id"`
	UserID      uint64         `db:"user_id"`
	Title       string         `db:"title"`
	Description sql.NullString `db:"description"`
	DueDate     sql.NullString `db:"due_date"`
	Priority    string         `db:"priority"`
	Status      string         `db:"status"`
	CreatedAt   sql.NullString `db:"created_at"`
	UpdatedAt   sql.NullString `db:"updated_at"`
}

var _ ports.TaskRepository = (*TaskRepository)(nil)

func NewTaskRepository(db *sqlx.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

func (r *TaskRepository) List(ctx context.Context) ([]domain.Task, error) {
	var rows []taskRow
	if err := r.db.SelectContext(ctx, &rows, listTasksQuery); err != nil {
		return nil, err
	}

	tasks := make([]domain.Task, 0, len(rows))
	for _, row := range rows {
		task, err := mapTaskRowToDomainTask(row)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}

	return tasks, nil
}

func (r *TaskRepository) Get(ctx context.Context, id uint64) (domain.Task, error) {
	return getTask(ctx, r.db, id)
}

func (r *TaskRepository) Create(ctx context.Context, input domain.TaskInput) (domain.Task, error) {
	now := formatTimestamp(time.Now())
	result, err := r.db.ExecContext(ctx, insertTaskQuery,
		input.UserID,
		input.Title,
		nullableString(input.Description),
		nullableDate(input.DueDate),
		string(input.Priority),
		string(input.Status),
		now,
		now,
	)
	if err != nil {
		return domain.Task{}, err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return domain.Task{}, err
	}

	return getTask(ctx, r.db, uint64(id))
}

// Replace overwrites every editable column of an existing task.
func (r *TaskRepository) Replace(ctx context.Context, id uint64, input domain.TaskInput) (domain.Task, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return domain.Task{}, err
	}
	defer func() { _ = tx.Rollback() }()

	// MySQL reports zero affected rows for an unchanged record, so existence is checked explicitly.
	var count int
	if err := tx.GetContext(ctx, &count, taskExistsQuery, id); err != nil {
		return domain.Task{}, err
	}
	if count == 0 {
		return domain.Task{}, domain.ErrTaskNotFound
	}

	if _, err := tx.ExecContext(ctx, replaceTaskQuery,
		input.UserID,
		input.Title,
		nullableString(input.Description),
		nullableDate(input.DueDate),
		string(input.Priority),
		string(input.Status),
		formatTimestamp(time.Now()),
		id,
	); err != nil {
		return domain.Task{}, err
	}

	task, err := getTask(ctx, tx, id)
	if err != nil {
		return domain.Task{}, err
	}

	if err := tx.Commit(); err != nil {
		return domain.Task{}, err
	}

	return task, nil
}

func (r *TaskRepository) Delete(ctx context.Context, id uint64) error {
	result, err := r.db.ExecContext(ctx, deleteTaskQuery, id)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrTaskNotFound
	}

	return nil
}

func getTask(ctx context.Context, q sqlx.QueryerContext, id uint64) (domain.Task, error) {
	var row taskRow
	if err := sqlx.GetContext(ctx, q, &row, getTaskQuery, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Task{}, domain.ErrTaskNotFound
		}
		return domain.Task{}, err
	}
	return mapTaskRowToDomainTask(row)
}

func mapTaskRowToDomainTask(row taskRow) (domain.Task, error) {
	task := domain.Task{
		ID:       row.ID,
		UserID:   row.UserID,
		Title:    row.Title,
		Status:   domain.TaskStatus(row.Status),
		Priority: domain.TaskPriority(row.Priority),
	}

	if row.Description.Valid {
		value := row.Description.String
		task.Description = &value
	}

	if row.DueDate.Valid && row.DueDate.String != "" {
		value, err := domain.ParseDate(row.DueDate.String)
		if err != nil {
			return domain.Task{}, fmt.Errorf("task %d: %w", row.ID, err)
		}
		task.DueDate = &value
	}

	var err error
	if task.CreatedAt, err = parseTimestamp(row.CreatedAt); err != nil {
		return domain.Task{}, fmt.Errorf("task %d created_at: %w", row.ID, err)
	}
	if task.UpdatedAt, err = parseTimestamp(row.UpdatedAt); err != nil {
		return domain.Task{}, fmt.Errorf("task %d updated_at: %w", row.ID, err)
	}

	return task, nil
}

func parseTimestamp(value sql.NullString) (time.Time, error) {
	if !value.Valid || value.String == "" {
		return time.Time{}, nil
	}
	var lastErr error
	for _, layout := range timestampLayouts {
		parsed, err := time.Parse(layout, value.String)
		if err == nil {
			return parsed.UTC(), nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

func formatTimestamp(t time.Time) string {
	return t.UTC().Format(timestampLayout)
}

func nullableString(value *string) sql.NullString {
	if value == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *value, Valid: true}
}

func nullableDate(value *time.Time) sql.NullString {
	if value == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: domain.FormatDate(*value), Valid: true}
}
