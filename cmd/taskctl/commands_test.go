package main

import (
	"bytes"
	"encoding/json"
	"testing"

	"go.uber.org/zap"

	"taskboard/internal/client/dashboard"
	"taskboard/internal/client/model"
	"taskboard/internal/client/taskapi"
	"taskboard/internal/client/taskapi/taskapitest"
	"taskboard/internal/config"
	"taskboard/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, fake *taskapitest.Fake, args ...string) (string, error) {
	t.Helper()
	a := &app{
		cfg:    &config.Config{APIURL: "http://127.0.0.1:1/api", SuggestBackend: config.SuggestHeuristic},
		logger: zap.NewNop(),
		newAPI: func(*app) dashboard.TaskAPI { return fake },
	}
	cmd := newRootCmd(a)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestList_FiltersAndSorts(t *testing.T) {
	fake := taskapitest.NewFake(model.SeedTasks()...)

	out, err := execute(t, fake, "list", "--status", "todo", "--sort", "dueDate", "--desc", "--json")
	require.NoError(t, err)

	var tasks []model.Task
	require.NoError(t, json.Unmarshal([]byte(out), &tasks))
	require.Len(t, tasks, 3)
	assert.Equal(t, "6", tasks[0].ID)
	assert.Equal(t, "3", tasks[2].ID)
}

func TestList_Table(t *testing.T) {
	fake := taskapitest.NewFake(model.SeedTasks()...)

	out, err := execute(t, fake, "list", "--search", "LEGACY")
	require.NoError(t, err)
	assert.Contains(t, out, "Due ▲")
	assert.Contains(t, out, "Review and refactor legacy code")
	assert.NotContains(t, out, "Design UI mockups")
}

func TestList_RejectsUnknownSortKey(t *testing.T) {
	_, err := execute(t, taskapitest.NewFake(), "list", "--sort", "due_date")
	assert.ErrorContains(t, err, "unknown sort key")
}

func TestAdd_RequiresDueDate(t *testing.T) {
	fake := taskapitest.NewFake(model.SeedTasks()...)

	_, err := execute(t, fake, "add", "--title", "Ship v2")

	assert.ErrorContains(t, err, "Due date is required.")
	assert.Equal(t, 0, fake.Calls(taskapi.OpCreate))
}

func TestAdd_CreatesWithSuggestedPriority(t *testing.T) {
	fake := taskapitest.NewFake(model.SeedTasks()...)

	out, err := execute(t, fake, "add", "--title", "Ship v2", "--due", "2024-09-01",
		"--description", "this is urgent", "--suggest")

	require.NoError(t, err)
	assert.Equal(t, "created 7: Ship v2 (due 2024-09-01, high, todo)\n", out)
	assert.Equal(t, 1, fake.Calls(taskapi.OpSuggest))
}

func TestEdit_ReplacesChangedFields(t *testing.T) {
	fake := taskapitest.NewFake(model.SeedTasks()...)

	out, err := execute(t, fake, "edit", "04", "--status", "done")

	require.NoError(t, err)
	assert.Contains(t, out, "updated 4:")
	task := fake.Tasks()[3]
	assert.Equal(t, domain.TaskStatusDone, task.Status)
	assert.Equal(t, "Implement frontend components based on the designs", task.Title)
}

func TestEdit_UnknownID(t *testing.T) {
	_, err := execute(t, taskapitest.NewFake(model.SeedTasks()...), "edit", "42", "--status", "done")
	assert.ErrorIs(t, err, dashboard.ErrUnknownTask)
}

func TestDelete(t *testing.T) {
	fake := taskapitest.NewFake(model.SeedTasks()...)

	out, err := execute(t, fake, "rm", "2")

	require.NoError(t, err)
	assert.Equal(t, "deleted 2\n", out)
	assert.Len(t, fake.Tasks(), 5)
}

func TestSuggest(t *testing.T) {
	fake := taskapitest.NewFake()

	out, err := execute(t, fake, "suggest", "we", "should", "eventually", "do", "this")
	require.NoError(t, err)
	assert.Equal(t, "low\n", out)

	out, err = execute(t, fake, "suggest", "--local", "critical", "outage")
	require.NoError(t, err)
	assert.Equal(t, "high\n", out)
	assert.Equal(t, 1, fake.Calls(taskapi.OpSuggest))

	_, err = execute(t, fake, "suggest", " ")
	assert.ErrorContains(t, err, "Please enter a description first.")
}
