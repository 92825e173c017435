package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/iliyamo/task-manager/internal/middleware"
	"github.com/iliyamo/task-manager/internal/model"
	"github.com/iliyamo/task-manager/internal/service"
)

// TaskHandler exposes the task service.  Every route must run behind
// SessionAuth; the service rejects requests without a user id.
type TaskHandler struct {
	Tasks *service.TaskService
	Log   *zap.Logger
}

// NewTaskHandler panics when the service is missing.
func NewTaskHandler(tasks *service.TaskService, log *zap.Logger) *TaskHandler {
	if tasks == nil {
		panic("nil service passed to NewTaskHandler")
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &TaskHandler{Tasks: tasks, Log: log}
}

type createTaskReq struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Priority    string `json:"priority"`
	DueDate     string `json:"dueDate"`
}

// List handles GET /v1/tasks.  Only one filter applies: completed, then
// category, then priority.  A completed value other than true/false is
// ignored.
func (h *TaskHandler) List(c echo.Context) error {
	var f service.TaskFilter
	switch strings.ToLower(c.QueryParam("completed")) {
	case "true":
		v := true
		f.Completed = &v
	case "false":
		v := false
		f.Completed = &v
	}
	f.Category = strings.TrimSpace(c.QueryParam("category"))
	f.Priority = strings.TrimSpace(c.QueryParam("priority"))

	items, err := h.Tasks.List(c.Request().Context(), middleware.UserID(c), f)
	if err != nil {
		return writeError(c, h.Log, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// Get handles GET /v1/tasks/:id.
func (h *TaskHandler) Get(c echo.Context) error {
	t, err := h.Tasks.Get(c.Request().Context(), middleware.UserID(c), c.Param("id"))
	if err != nil {
		return writeError(c, h.Log, err)
	}
	return c.JSON(http.StatusOK, t)
}

// Create handles POST /v1/tasks.
func (h *TaskHandler) Create(c echo.Context) error {
	var req createTaskReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	t, err := h.Tasks.Create(c.Request().Context(), middleware.UserID(c), service.NewTask{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Priority:    req.Priority,
		DueDate:     req.DueDate,
	})
	if err != nil {
		return writeError(c, h.Log, err)
	}
	return c.JSON(http.StatusCreated, t)
}

// Update handles PUT and PATCH /v1/tasks/:id.  Both merge the fields present
// in the body; absent fields are left unchanged.
func (h *TaskHandler) Update(c echo.Context) error {
	var patch model.TaskPatch
	if err := c.Bind(&patch); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	t, err := h.Tasks.Update(c.Request().Context(), middleware.UserID(c), c.Param("id"), patch)
	if err != nil {
		return writeError(c, h.Log, err)
	}
	return c.JSON(http.StatusOK, t)
}

// Delete handles DELETE /v1/tasks/:id.
func (h *TaskHandler) Delete(c echo.Context) error {
	id := c.Param("id")
	removed, err := h.Tasks.Delete(c.Request().Context(), middleware.UserID(c), id)
	if err != nil {
		return writeError(c, h.Log, err)
	}
	if !removed {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "task not found"})
	}
	return c.JSON(http.StatusOK, echo.Map{"id": id})
}
