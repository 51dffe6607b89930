package handler

import (
	"errors"
	"net/http"
	"strconv"

	. "todoapi/internal/adapter/http/helper"
	. "todoapi/internal/adapter/http/validation"
	"todoapi/internal/core/domain"
	"todoapi/internal/core/model/request"
	"todoapi/internal/core/model/response"
	"todoapi/internal/core/port"
	"todoapi/internal/core/util"
	"todoapi/pkg/config"
	. "todoapi/pkg/tracing"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

type TodoHandler struct {
	svc    port.TodoService
	Logger *config.LokiLogger
}

func NewTodoHandler(svc port.TodoService, logger *config.LokiLogger) *TodoHandler {
	return &TodoHandler{
		svc:    svc,
		Logger: logger,
	}
}

func (t *TodoHandler) GetTodos(c *gin.Context) {
	ctx, span := CreateChildSpan(c.Request.Context(), "handler.todo.GetTodos", []attribute.KeyValue{
		attribute.String("handler.operation", "GetTodos"),
		attribute.String("handler.method", c.Request.Method),
		attribute.String("handler.path", c.FullPath()),
	})

	defer span.End()

	userID := c.GetString("x-user-id")

	todos, err := t.svc.List(ctx, userID)

	if err != nil {
		AddSpanError(span, err)

		t.Logger.Logger.Ctx(ctx).Error("Failed to get todos",
			zap.Error(err),
			zap.String("user_id", userID),
		)

		SendInternalError(c, "Error getting todos")
		return
	}

	span.SetAttributes(
		attribute.Int("todo.count", len(todos)),
		attribute.Int("http.status_code", http.StatusOK),
	)

	// always an array on the wire, even when empty
	data := make([]response.TodoResponse, 0, len(todos))

	for _, todo := range todos {
		data = append(data, response.NewTodoResponse(todo))
	}

	c.JSON(http.StatusOK, data)
}

func (t *TodoHandler) CreateTodo(c *gin.Context) {
	ctx := c.Request.Context()

	userID := c.GetString("x-user-id")

	params, err := util.ParamsToMap[request.PostTodoRequest](c)

	if err != nil {
		SendBadRequestError(c, "request", "Invalid request parameters")
		return
	}

	if err := Validator.Struct(params); err != nil {
		SendValidationError(c, err)
		return
	}

	todo, err := t.svc.Add(ctx, userID, params.Text)

	if err != nil {
		t.Logger.Logger.Ctx(ctx).Error("Failed to create todo",
			zap.Error(err),
			zap.String("user_id", userID),
		)

		SendInternalError(c, "Error creating todo")
		return
	}

	c.JSON(http.StatusOK, response.NewTodoResponse(todo))
}

func (t *TodoHandler) UpdateTodo(c *gin.Context) {
	ctx := c.Request.Context()

	userID := c.GetString("x-user-id")

	todoID, err := strconv.ParseInt(c.Param("todoId"), 10, 64)

	if err != nil {
		SendBadRequestError(c, "todoId", "Todo id must be an integer")
		return
	}

	params, err := util.ParamsToMap[request.PutTodoRequest](c)

	if err != nil {
		SendBadRequestError(c, "request", "Invalid request parameters")
		return
	}

	if err := Validator.Struct(params); err != nil {
		SendValidationError(c, err)
		return
	}

	status := domain.StatusFromCompleted(*params.Completed)

	todo, err := t.svc.UpdateStatus(ctx, userID, todoID, status)

	if errors.Is(err, domain.ErrTodoNotFound) {
		SendNotFoundError(c, "Todo not found")
		return
	}

	if err != nil {
		t.Logger.Logger.Ctx(ctx).Error("Failed to update todo",
			zap.Error(err),
			zap.String("user_id", userID),
			zap.Int64("todo_id", todoID),
		)

		SendInternalError(c, "Error updating todo")
		return
	}

	c.JSON(http.StatusOK, response.NewTodoResponse(todo))
}

func (t *TodoHandler) DeleteTodo(c *gin.Context) {
	ctx := c.Request.Context()

	userID := c.GetString("x-user-id")

	todoID, err := strconv.ParseInt(c.Param("todoId"), 10, 64)

	if err != nil {
		SendBadRequestError(c, "todoId", "Todo id must be an integer")
		return
	}

	err = t.svc.Delete(ctx, userID, todoID)

	if errors.Is(err, domain.ErrTodoNotFound) {
		SendNotFoundError(c, "Todo not found")
		return
	}

	if err != nil {
		t.Logger.Logger.Ctx(ctx).Error("Failed to delete todo",
			zap.Error(err),
			zap.String("user_id", userID),
			zap.Int64("todo_id", todoID),
		)

		SendInternalError(c, "Error deleting todo")
		return
	}

	c.Status(http.StatusNoContent)
}
