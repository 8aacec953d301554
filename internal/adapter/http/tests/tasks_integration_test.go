package tests

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	dbadapter "taskboard/internal/adapter/db"
	httpadapter "taskboard/internal/adapter/http"
	"taskboard/internal/adapter/http/dto"
	"taskboard/internal/adapter/http/handlers"
	appservice "taskboard/internal/app/service"
	"taskboard/internal/suggest"
	"taskboard/pkg/apierrors"
	"taskboard/pkg/translator"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/suite"
)

type IntegrationSuiteBase struct {
	suite.Suite

	adminDB    *sqlx.DB
	DB         *sqlx.DB
	testDBName string
}

func (s *IntegrationSuiteBase) seedTasks() {
	for _, row := range []struct {
		title, description, dueDate, priority, status string
	}{
		{"Write release notes", "summarize the changes", "2024-09-03", "medium", "todo"},
		{"Fix login bug", "users cannot sign in", "2024-08-30", "high", "in-progress"},
		{"Plan offsite", "", "", "low", "done"},
	} {
		_, err := s.DB.Exec(
			"INSERT INTO tasks (title, description, due_date, priority, status, user_id) VALUES (?, ?, ?, ?, ?, ?)",
			row.title, nullable(row.description), nullable(row.dueDate), row.priority, row.status, 1,
		)
		s.Require().NoError(err)
	}
}

func nullable(value string) sql.NullString {
	return sql.NullString{String: value, Valid: value != ""}
}

type TasksIntegrationSuite struct {
	IntegrationSuiteBase
	router *gin.Engine
}

func TestTasksIntegrationSuite(t *testing.T) {
	gin.SetMode(gin.TestMode)
	translator.InitTranslator(translator.Config{
		TranslationFolder:  "../../../../pkg/translator/translation",
		SupportedLanguages: []string{translator.LanguageFr, translator.LanguageEn},
	})
	suite.Run(t, new(TasksIntegrationSuite))
}

func (s *TasksIntegrationSuite) SetupTest() {
	s.ResetDatabase()

	healthHandler := handlers.NewHealthHandler(s.DB)
	taskRepository := dbadapter.NewTaskRepository(s.DB)
	taskService := appservice.NewTaskService(taskRepository, suggest.NewHeuristic())
	taskHandler := handlers.NewTaskHandler(taskService)

	router, err := httpadapter.NewRouter(httpadapter.RouterConfig{}, healthHandler, taskHandler)
	s.Require().NoError(err)
	s.router = router
}

func (s *TasksIntegrationSuite) do(method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func (s *TasksIntegrationSuite) decodeError(rec *httptest.ResponseRecorder) apierrors.JsonErr {
	var got apierrors.JsonErr
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &got))
	return got
}

func (s *TasksIntegrationSuite) TestGetTasks_ReturnsStorageOrder() {
	rec := s.do(http.MethodGet, "/api/tasks", "")

	s.Require().Equal(http.StatusOK, rec.Code)

	var got []dto.TaskItem
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &got))
	s.Require().Len(got, 3)
	s.Require().Equal("Write release notes", got[0].Title)
	s.Require().Equal("Fix login bug", got[1].Title)
	s.Require().Equal("in-progress", got[1].Status)
	s.Require().Equal("2024-08-30", *got[1].DueDate)
	s.Require().Nil(got[2].DueDate)
	s.Require().Nil(got[2].Description)
	s.Require().Less(got[0].ID, got[1].ID)
	for _, item := range got {
		s.Require().Equal(uint64(1), item.UserID)
		s.Require().NotEmpty(item.CreatedAt)
	}
}

func (s *TasksIntegrationSuite) TestGetTasks_ReturnsEmptyArray() {
	_, err := s.DB.Exec("DELETE FROM tasks")
	s.Require().NoError(err)

	rec := s.do(http.MethodGet, "/api/tasks", "")

	s.Require().Equal(http.StatusOK, rec.Code)
	s.Require().JSONEq(`[]`, rec.Body.String())
}

func (s *TasksIntegrationSuite) TestGetTasks_ReturnsInternalServerErrorWhenQueryFails() {
	_, err := s.DB.Exec("DROP TABLE tasks")
	s.Require().NoError(err)

	rec := s.do(http.MethodGet, "/api/tasks", "")

	s.Require().Equal(http.StatusInternalServerError, rec.Code)
	s.Require().Equal("failed to list tasks", s.decodeError(rec).ErrDetails.Message)
}

func (s *TasksIntegrationSuite) TestGetTask_ByID() {
	rec := s.do(http.MethodGet, "/api/tasks/2", "")

	s.Require().Equal(http.StatusOK, rec.Code)
	var got dto.TaskItem
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &got))
	s.Require().Equal(uint64(2), got.ID)
	s.Require().Equal("high", got.Priority)

	rec = s.do(http.MethodGet, "/api/tasks/999999", "")
	s.Require().Equal(http.StatusNotFound, rec.Code)
	s.Require().Equal("Task not found", s.decodeError(rec).ErrDetails.Message)
}

func (s *TasksIntegrationSuite) TestPostTasks_AppliesStorageDefaults() {
	rec := s.do(http.MethodPost, "/api/tasks", `{"title":"Ship v2","due_date":"2024-09-01"}`)

	s.Require().Equal(http.StatusCreated, rec.Code)

	var got dto.TaskItem
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &got))
	s.Require().NotZero(got.ID)
	s.Require().Equal("Ship v2", got.Title)
	s.Require().Equal("medium", got.Priority)
	s.Require().Equal("todo", got.Status)
	s.Require().Equal(uint64(1), got.UserID)
	s.Require().Equal("2024-09-01", *got.DueDate)

	var row struct {
		Priority string `db:"priority"`
		UserID   uint64 `db:"user_id"`
	}
	s.Require().NoError(s.DB.Get(&row, "SELECT priority, user_id FROM tasks WHERE id = ?", got.ID))
	s.Require().Equal("medium", row.Priority)
	s.Require().Equal(uint64(1), row.UserID)
}

func (s *TasksIntegrationSuite) TestPostTasks_RejectsOutOfEnumPriority() {
	rec := s.do(http.MethodPost, "/api/tasks", `{"title":"Ship v2","priority":"critical"}`)

	s.Require().Equal(http.StatusBadRequest, rec.Code)
	s.Require().Equal("Invalid task payload", s.decodeError(rec).ErrDetails.Message)

	var count int
	s.Require().NoError(s.DB.Get(&count, "SELECT COUNT(1) FROM tasks"))
	s.Require().Equal(3, count)
}

func (s *TasksIntegrationSuite) TestPutTasks_ReplacesWholeRecord() {
	rec := s.do(http.MethodPut, "/api/tasks/1", `{
		"title":"Write release notes v2",
		"status":"done",
		"priority":"low",
		"due_date":"2024-09-10"
	}`)

	s.Require().Equal(http.StatusOK, rec.Code)

	var got dto.TaskItem
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &got))
	s.Require().Equal(uint64(1), got.ID)
	s.Require().Equal("Write release notes v2", got.Title)
	s.Require().Equal("done", got.Status)
	s.Require().Equal("low", got.Priority)
	s.Require().Equal("2024-09-10", *got.DueDate)
	s.Require().Nil(got.Description)

	var description sql.NullString
	s.Require().NoError(s.DB.Get(&description, "SELECT description FROM tasks WHERE id = 1"))
	s.Require().False(description.Valid)
}

func (s *TasksIntegrationSuite) TestPutTasks_ReturnsNotFoundWhenTaskDoesNotExist() {
	rec := s.do(http.MethodPut, "/api/tasks/999999", `{"title":"Ghost task"}`)

	s.Require().Equal(http.StatusNotFound, rec.Code)
	s.Require().Equal("Task not found", s.decodeError(rec).ErrDetails.Message)
}

func (s *TasksIntegrationSuite) TestPutTasks_ReturnsBadRequestWhenIDIsInvalid() {
	rec := s.do(http.MethodPut, "/api/tasks/abc", `{"title":"Whatever"}`)

	s.Require().Equal(http.StatusBadRequest, rec.Code)
	s.Require().Equal("Invalid id", s.decodeError(rec).ErrDetails.Message)
}

func (s *TasksIntegrationSuite) TestDeleteTasks_SecondDeleteIsNotFound() {
	rec := s.do(http.MethodDelete, "/api/tasks/3", "")
	s.Require().Equal(http.StatusNoContent, rec.Code)

	rec = s.do(http.MethodDelete, "/api/tasks/3", "")
	s.Require().Equal(http.StatusNotFound, rec.Code)

	var count int
	s.Require().NoError(s.DB.Get(&count, "SELECT COUNT(1) FROM tasks"))
	s.Require().Equal(2, count)
}

func (s *TasksIntegrationSuite) TestSuggestPriority_UsesHeuristic() {
	rec := s.do(http.MethodPost, "/api/tasks/suggest-priority", `{"description":"We should eventually fix this"}`)

	s.Require().Equal(http.StatusOK, rec.Code)
	s.Require().JSONEq(`{"priority":"low"}`, rec.Body.String())

	rec = s.do(http.MethodPost, "/api/tasks/suggest-priority", `{"description":"   "}`)
	s.Require().Equal(http.StatusBadRequest, rec.Code)
}

func (s *TasksIntegrationSuite) TestHealthAndMetrics() {
	rec := s.do(http.MethodGet, "/api/health", "")
	s.Require().Equal(http.StatusOK, rec.Code)
	s.Require().NotEmpty(rec.Header().Get("X-Request-ID"))

	rec = s.do(http.MethodGet, "/api/health/report", "")
	s.Require().Equal(http.StatusOK, rec.Code)
	var report handlers.HealthAdvanced
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &report))
	s.Require().Equal(handlers.StatusOk, report.Status.Database)
	s.Require().Equal("0002_constrain_task_priority", report.Status.SchemaVersion)

	rec = s.do(http.MethodGet, "/metrics", "")
	s.Require().Equal(http.StatusOK, rec.Code)
	s.Require().Contains(rec.Body.String(), "taskboard_http_requests_total")
}

func (s *TasksIntegrationSuite) TestCORSPreflight() {
	req := httptest.NewRequest(http.MethodOptions, "/api/tasks/1", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)

	s.Require().Equal(http.StatusNoContent, rec.Code)
	s.Require().Equal("*", rec.Header().Get("Access-Control-Allow-Origin"))
	s.Require().Contains(rec.Header().Get("Access-Control-Allow-Methods"), "DELETE")
}
