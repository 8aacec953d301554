package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"taskboard/internal/adapter/http/dto"
	"taskboard/internal/adapter/http/mapper"
	"taskboard/internal/adapter/http/middleware"
	"taskboard/internal/adapter/http/validation"
	"taskboard/internal/core/domain"
	"taskboard/internal/core/ports"
	"taskboard/pkg/apierrors"
)

type TaskHandler struct {
	taskService ports.TaskService
}

func NewTaskHandler(taskService ports.TaskService) *TaskHandler {
	return &TaskHandler{taskService: taskService}
}

func (h *TaskHandler) ListTasks(c *gin.Context) {
	tasks, err := h.taskService.ListTasks(c.Request.Context())
	if err != nil {
		zap.L().Error("failed to list tasks", zap.Error(err))
		respondError(c, http.StatusInternalServerError, apierrors.MsgFailListTask)
		return
	}

	c.JSON(http.StatusOK, mapper.ToTaskItems(tasks))
}

func (h *TaskHandler) GetTask(c *gin.Context) {
	taskID, ok := bindTaskID(c)
	if !ok {
		return
	}

	task, err := h.taskService.GetTask(c.Request.Context(), taskID)
	if err != nil {
		if errors.Is(err, domain.ErrTaskNotFound) {
			respondError(c, http.StatusNotFound, apierrors.MsgTaskNotFound)
			return
		}

		zap.L().Error("failed to get task", zap.Uint64("task_id", taskID), zap.Error(err))
		respondError(c, http.StatusInternalServerError, apierrors.MsgFailGetTask)
		return
	}

	c.JSON(http.StatusOK, mapper.ToTaskItem(task))
}

func (h *TaskHandler) CreateTask(c *gin.Context) {
	input, ok := bindTaskInput(c)
	if !ok {
		return
	}

	task, err := h.taskService.CreateTask(c.Request.Context(), input)
	if err != nil {
		if domain.IsValidationError(err) {
			respondError(c, http.StatusBadRequest, apierrors.MsgInvalidTaskPayload)
			return
		}

		zap.L().Error("failed to create task", zap.Error(err))
		respondError(c, http.StatusInternalServerError, apierrors.MsgFailCreateTask)
		return
	}

	c.JSON(http.StatusCreated, mapper.ToTaskItem(task))
}

// UpdateTask replaces the whole record; fields missing from the body are cleared or defaulted.
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	taskID, ok := bindTaskID(c)
	if !ok {
		return
	}

	input, ok := bindTaskInput(c)
	if !ok {
		return
	}

	task, err := h.taskService.UpdateTask(c.Request.Context(), taskID, input)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrTaskNotFound):
			respondError(c, http.StatusNotFound, apierrors.MsgTaskNotFound)
		case domain.IsValidationError(err):
			respondError(c, http.StatusBadRequest, apierrors.MsgInvalidTaskPayload)
		default:
			zap.L().Error("failed to update task", zap.Uint64("task_id", taskID), zap.Error(err))
			respondError(c, http.StatusInternalServerError, apierrors.MsgFailUpdateTask)
		}
		return
	}

	c.JSON(http.StatusOK, mapper.ToTaskItem(task))
}

func (h *TaskHandler) DeleteTask(c *gin.Context) {
	taskID, ok := bindTaskID(c)
	if !ok {
		return
	}

	if err := h.taskService.DeleteTask(c.Request.Context(), taskID); err != nil {
		if errors.Is(err, domain.ErrTaskNotFound) {
			respondError(c, http.StatusNotFound, apierrors.MsgTaskNotFound)
			return
		}

		zap.L().Error("failed to delete task", zap.Uint64("task_id", taskID), zap.Error(err))
		respondError(c, http.StatusInternalServerError, apierrors.MsgFailDeleteTask)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *TaskHandler) SuggestPriority(c *gin.Context) {
	var req dto.SuggestPriorityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, apierrors.MsgInvalidTaskPayload)
		return
	}

	priority, err := h.taskService.SuggestPriority(c.Request.Context(), req.Description)
	if err != nil {
		if errors.Is(err, domain.ErrEmptyDescription) {
			respondError(c, http.StatusBadRequest, apierrors.MsgEmptyDescription)
			return
		}

		zap.L().Error("failed to suggest priority", zap.Error(err))
		respondError(c, http.StatusBadGateway, apierrors.MsgFailSuggestPriority)
		return
	}

	c.JSON(http.StatusOK, dto.SuggestPriorityResponse{Priority: string(priority)})
}

func bindTaskID(c *gin.Context) (uint64, bool) {
	taskID, err := validation.ParseTaskID(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, apierrors.MsgInvalidTaskID)
		return 0, false
	}
	return taskID, true
}

func bindTaskInput(c *gin.Context) (domain.TaskInput, bool) {
	var req dto.TaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, apierrors.MsgInvalidTaskPayload)
		return domain.TaskInput{}, false
	}

	input, err := validation.BuildTaskInput(req)
	if err != nil {
		respondError(c, http.StatusBadRequest, apierrors.MsgInvalidTaskPayload)
		return domain.TaskInput{}, false
	}
	return input, true
}

func respondError(c *gin.Context, status int, msgKey string) {
	c.JSON(status, apierrors.CreateError(status, msgKey, middleware.GetLang(c)))
}
