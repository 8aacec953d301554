// Package tasklist derives the visible task list from a collection: filter, then stable sort.
package tasklist

import (
	"cmp"
	"slices"
	"strings"

	"taskboard/internal/client/model"
	"taskboard/internal/core/domain"
)

// All is the wildcard value for the status and priority filters.
const All = "all"

type Filter struct {
	Status   string `json:"status"`
	Priority string `json:"priority"`
	Search   string `json:"search"`
}

func DefaultFilter() Filter {
	return Filter{Status: All, Priority: All}
}

// Match reports whether task passes every criterion of f. Search is a case-insensitive
// literal substring match on the title.
func (f Filter) Match(task model.Task) bool {
	if f.Status != "" && f.Status != All && string(task.Status) != f.Status {
		return false
	}
	if f.Priority != "" && f.Priority != All && string(task.Priority) != f.Priority {
		return false
	}
	if f.Search == "" {
		return true
	}
	return strings.Contains(strings.ToLower(task.Title), strings.ToLower(f.Search))
}

type Key string

const (
	KeyNone        Key = ""
	KeyID          Key = "id"
	KeyTitle       Key = "title"
	KeyDescription Key = "description"
	KeyDueDate     Key = "dueDate"
	KeyPriority    Key = "priority"
	KeyStatus      Key = "status"
	KeyUserID      Key = "userId"
)

// Keys lists the sortable keys in column order.
var Keys = []Key{KeyID, KeyTitle, KeyDescription, KeyDueDate, KeyPriority, KeyStatus, KeyUserID}

// ParseKey accepts a column key; the empty string means unsorted.
func ParseKey(value string) (Key, bool) {
	if value == "" {
		return KeyNone, true
	}
	for _, key := range Keys {
		if string(key) == value {
			return key, true
		}
	}
	return KeyNone, false
}

type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

type Sort struct {
	Key       Key       `json:"key"`
	Direction Direction `json:"direction"`
}

// DefaultSort is the dashboard's initial ordering.
func DefaultSort() Sort {
	return Sort{Key: KeyDueDate, Direction: Asc}
}

// Toggle returns the sort after a click on key: the active key flips direction, any other key
// starts ascending.
func (s Sort) Toggle(key Key) Sort {
	if s.Key == key {
		if s.Direction == Asc {
			return Sort{Key: key, Direction: Desc}
		}
		return Sort{Key: key, Direction: Asc}
	}
	return Sort{Key: key, Direction: Asc}
}

// Compare orders a and b by key. A missing due date sorts before any date.
func Compare(a, b model.Task, key Key) int {
	switch key {
	case KeyID:
		return strings.Compare(a.ID, b.ID)
	case KeyTitle:
		return strings.Compare(a.Title, b.Title)
	case KeyDescription:
		return strings.Compare(a.Description, b.Description)
	case KeyDueDate:
		switch {
		case a.DueDate == nil && b.DueDate == nil:
			return 0
		case a.DueDate == nil:
			return -1
		case b.DueDate == nil:
			return 1
		}
		return a.DueDate.Compare(*b.DueDate)
	case KeyPriority:
		return strings.Compare(string(a.Priority), string(b.Priority))
	case KeyStatus:
		return strings.Compare(string(a.Status), string(b.Status))
	case KeyUserID:
		return cmp.Compare(a.UserID, b.UserID)
	}
	return 0
}

// FilterTasks keeps the tasks matching f, in input order.
func FilterTasks(tasks []model.Task, f Filter) []model.Task {
	out := make([]model.Task, 0, len(tasks))
	for _, task := range tasks {
		if f.Match(task) {
			out = append(out, task)
		}
	}
	return out
}

// SortTasks returns a stably sorted copy of tasks. Descending negates the comparison, so
// equal elements keep their input order in both directions.
func SortTasks(tasks []model.Task, s Sort) []model.Task {
	out := slices.Clone(tasks)
	if out == nil {
		out = []model.Task{}
	}
	if s.Key == KeyNone {
		return out
	}
	slices.SortStableFunc(out, func(a, b model.Task) int {
		c := Compare(a, b, s.Key)
		if s.Direction == Desc {
			return -c
		}
		return c
	})
	return out
}

// Apply filters then sorts. It never mutates tasks.
func Apply(tasks []model.Task, f Filter, s Sort) []model.Task {
	return SortTasks(FilterTasks(tasks, f), s)
}

// ValidStatusFilter reports whether value is All or a known status.
func ValidStatusFilter(value string) bool {
	return value == All || domain.TaskStatus(value).Valid()
}

// ValidPriorityFilter reports whether value is All or a known priority.
func ValidPriorityFilter(value string) bool {
	return value == All || domain.TaskPriority(value).Valid()
}
