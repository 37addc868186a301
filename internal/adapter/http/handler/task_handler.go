package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	. "taskapp/internal/adapter/http/helper"
	. "taskapp/internal/adapter/http/middleware"
	. "taskapp/internal/adapter/http/validation"
	"taskapp/internal/core/domain"
	"taskapp/internal/core/model/request"
	"taskapp/internal/core/model/response"
	"taskapp/internal/core/port"
	"taskapp/internal/core/util"
	"taskapp/internal/telemetry"
	"taskapp/pkg/logging"
	. "taskapp/pkg/tracing"
)

type TaskHandler struct {
	svc     port.TaskService
	Logger  *logging.Logger
	metrics *telemetry.AppMetrics
}

func NewTaskHandler(taskUseCase port.TaskService, logger *logging.Logger, metrics *telemetry.AppMetrics) *TaskHandler {
	return &TaskHandler{
		svc:     taskUseCase,
		Logger:  logger,
		metrics: metrics,
	}
}

func (t *TaskHandler) CreateTask(c *gin.Context) {
	ctx := c.Request.Context()

	user, _ := CurrentUser(c)

	params, err := util.ParamsToMap[request.TaskRequest](c)

	if err != nil {
		SendBadRequestError(c, "request", "Invalid request parameters")
		return
	}

	if err := Validator.Struct(params); err != nil {
		SendValidationError(c, err)
		return
	}

	task, err := t.svc.Create(ctx, user.ID, &params)

	if err != nil {
		t.Logger.ErrorWithTrace(ctx, "Failed to create task",
			zap.Error(err),
			zap.Int("user_id", user.ID),
		)

		SendInternalError(c, "Error creating task")
		return
	}

	t.metrics.RecordTaskOperation("create")

	c.JSON(http.StatusCreated, response.NewTaskResponse(task, user.UUID))
}

func (t *TaskHandler) ListTasks(c *gin.Context) {
	ctx, span := CreateChildSpan(c.Request.Context(), "handler.task.ListTasks", []attribute.KeyValue{
		attribute.String("handler.operation", "ListTasks"),
		attribute.String("handler.path", c.FullPath()),
	})

	defer span.End()

	user, _ := CurrentUser(c)

	// completed filters only when the parameter is exactly "true"; every
	// other non-empty value means incomplete tasks.
	var completed *bool
	if value := c.Query("completed"); value != "" {
		flag := value == "true"
		completed = &flag
	}

	limit, _ := strconv.Atoi(c.Query("limit"))
	skip, _ := strconv.Atoi(c.Query("skip"))
	sortBy := c.Query("sortBy")

	span.SetAttributes(
		attribute.Int("user.id", user.ID),
		attribute.Int("task.limit", limit),
		attribute.Int("task.skip", skip),
		attribute.String("task.sort_by", sortBy),
	)

	tasks, err := t.svc.List(ctx, user.ID, completed, limit, skip, sortBy)

	if err != nil {
		if errors.Is(err, domain.ErrInvalidSortField) {
			SendBadRequestError(c, "sortBy", err.Error())
			return
		}

		AddSpanError(span, err)

		t.Logger.ErrorWithTrace(ctx, "Failed to list tasks",
			zap.Error(err),
			zap.Int("user_id", user.ID),
		)

		SendInternalError(c, "Error getting tasks")
		return
	}

	t.metrics.RecordTaskOperation("list")

	results := make([]response.TaskResponse, 0, len(tasks))

	for _, task := range tasks {
		results = append(results, response.NewTaskResponse(task, user.UUID))
	}

	c.JSON(http.StatusOK, results)
}

func (t *TaskHandler) GetTask(c *gin.Context) {
	ctx := c.Request.Context()

	user, _ := CurrentUser(c)

	task, err := t.svc.GetByUUID(ctx, c.Param("uuid"), user.ID)

	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			SendNotFoundError(c, "task not found")
			return
		}

		t.Logger.ErrorWithTrace(ctx, "Failed to get task",
			zap.Error(err),
			zap.Int("user_id", user.ID),
		)

		SendInternalError(c, "Error getting task")
		return
	}

	c.JSON(http.StatusOK, response.NewTaskResponse(task, user.UUID))
}

func (t *TaskHandler) UpdateTask(c *gin.Context) {
	ctx := c.Request.Context()

	user, _ := CurrentUser(c)

	params, err := util.StrictParams[request.UpdateTaskRequest](c)

	if err != nil {
		SendBadRequestError(c, "request", "Invalid updates!")
		return
	}

	if err := Validator.Struct(params); err != nil {
		SendValidationError(c, err)
		return
	}

	task, err := t.svc.Update(ctx, c.Param("uuid"), user.ID, &params)

	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			SendNotFoundError(c, "task not found")
			return
		}

		t.Logger.ErrorWithTrace(ctx, "Failed to update task",
			zap.Error(err),
			zap.Int("user_id", user.ID),
		)

		SendInternalError(c, "Error updating task")
		return
	}

	t.metrics.RecordTaskOperation("update")

	c.JSON(http.StatusOK, response.NewTaskResponse(task, user.UUID))
}

func (t *TaskHandler) DeleteTask(c *gin.Context) {
	ctx := c.Request.Context()

	user, _ := CurrentUser(c)

	err := t.svc.DeleteByUUID(ctx, c.Param("uuid"), user.ID)

	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			SendNotFoundError(c, "task not found")
			return
		}

		t.Logger.ErrorWithTrace(ctx, "Failed to delete task",
			zap.Error(err),
			zap.Int("user_id", user.ID),
		)

		SendInternalError(c, "Error deleting task")
		return
	}

	t.metrics.RecordTaskOperation("delete")

	SendSuccess(c, http.StatusOK, nil, "task deleted")
}
