package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"taskboard/internal/auth"
	apperrors "taskboard/internal/errors"
	"taskboard/internal/model"
	"taskboard/internal/service"
)

// dueDateLayouts are the accepted due date formats, from most to least
// specific. The second one is what datetime-local inputs submit.
var dueDateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04",
	"2006-01-02",
}

// TaskHandler handles task endpoints.
type TaskHandler struct {
	taskService service.TaskService
}

// NewTaskHandler creates a new task handler.
func NewTaskHandler(taskService service.TaskService) *TaskHandler {
	return &TaskHandler{taskService: taskService}
}

// TaskRequest is the body for create and full replace. On replace, omitted
// fields clear the stored values; only the status patch is partial.
type TaskRequest struct {
	Title       string   `json:"title" validate:"required,max=100"`
	Description string   `json:"description" validate:"omitempty,max=500"`
	Status      string   `json:"status" validate:"omitempty,oneof=pending in-progress completed"`
	Priority    string   `json:"priority" validate:"omitempty,oneof=low medium high"`
	DueDate     string   `json:"dueDate"`
	Tags        []string `json:"tags"`
}

// StatusRequest is the body for the status-only patch.
type StatusRequest struct {
	Status string `json:"status"`
}

// ListResponse is one page of tasks plus pagination metadata.
type ListResponse struct {
	Tasks      []model.Task       `json:"tasks"`
	Pagination service.Pagination `json:"pagination"`
}

// DeleteResponse confirms a deletion and returns the removed snapshot.
type DeleteResponse struct {
	Message     string      `json:"message"`
	DeletedTask *model.Task `json:"deletedTask"`
}

// List godoc
// @Summary List tasks with filtering, sorting, and pagination
// @Tags tasks
// @Produce json
// @Param status query string false "Filter by status" Enums(pending, in-progress, completed)
// @Param priority query string false "Filter by priority" Enums(low, medium, high)
// @Param sortBy query string false "Sort field" default(createdAt)
// @Param sortOrder query string false "Sort direction" Enums(asc, desc) default(desc)
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Page size" default(10)
// @Success 200 {object} ListResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /tasks [get]
func (h *TaskHandler) List(c echo.Context) error {
	query := service.ListQuery{
		Status:    c.QueryParam("status"),
		Priority:  c.QueryParam("priority"),
		SortBy:    c.QueryParam("sortBy"),
		SortOrder: c.QueryParam("sortOrder"),
		Page:      queryInt(c, "page"),
		Limit:     queryInt(c, "limit"),
	}

	tasks, pagination, err := h.taskService.List(c.Request().Context(), query)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, ListResponse{
		Tasks:      tasks,
		Pagination: pagination,
	})
}

// Get godoc
// @Summary Get a single task
// @Tags tasks
// @Produce json
// @Param id path string true "Task ID"
// @Success 200 {object} model.Task
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /tasks/{id} [get]
func (h *TaskHandler) Get(c echo.Context) error {
	id, err := parseTaskID(c)
	if err != nil {
		return respondError(c, err)
	}

	task, err := h.taskService.Get(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, task)
}

// Create godoc
// @Summary Create a new task
// @Tags tasks
// @Accept json
// @Produce json
// @Param request body TaskRequest true "Task data"
// @Success 201 {object} model.Task
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /tasks [post]
func (h *TaskHandler) Create(c echo.Context) error {
	input, err := h.bindTaskInput(c)
	if err != nil {
		return respondError(c, err)
	}

	task, err := h.taskService.Create(c.Request().Context(), input)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, task)
}

// Replace godoc
// @Summary Replace a task's editable fields
// @Description Full overwrite: fields omitted from the body are cleared.
// @Tags tasks
// @Accept json
// @Produce json
// @Param id path string true "Task ID"
// @Param request body TaskRequest true "Task data"
// @Success 200 {object} model.Task
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /tasks/{id} [put]
func (h *TaskHandler) Replace(c echo.Context) error {
	id, err := parseTaskID(c)
	if err != nil {
		return respondError(c, err)
	}

	input, err := h.bindTaskInput(c)
	if err != nil {
		return respondError(c, err)
	}

	task, err := h.taskService.Replace(c.Request().Context(), id, input)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, task)
}

// UpdateStatus godoc
// @Summary Update only a task's status
// @Tags tasks
// @Accept json
// @Produce json
// @Param id path string true "Task ID"
// @Param request body StatusRequest true "New status"
// @Success 200 {object} model.Task
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /tasks/{id}/status [patch]
func (h *TaskHandler) UpdateStatus(c echo.Context) error {
	id, err := parseTaskID(c)
	if err != nil {
		return respondError(c, err)
	}

	var req StatusRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, apperrors.ErrInvalidStatus)
	}

	task, err := h.taskService.UpdateStatus(c.Request().Context(), id, req.Status)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, task)
}

// Delete godoc
// @Summary Delete a task
// @Tags tasks
// @Produce json
// @Param id path string true "Task ID"
// @Success 200 {object} DeleteResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /tasks/{id} [delete]
func (h *TaskHandler) Delete(c echo.Context) error {
	id, err := parseTaskID(c)
	if err != nil {
		return respondError(c, err)
	}

	task, err := h.taskService.Delete(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, DeleteResponse{
		Message:     "Task deleted successfully",
		DeletedTask: task,
	})
}

// Stats godoc
// @Summary Task counts by status and priority
// @Tags tasks
// @Produce json
// @Success 200 {object} service.Stats
// @Failure 500 {object} errors.ErrorResponse
// @Router /tasks/stats/summary [get]
func (h *TaskHandler) Stats(c echo.Context) error {
	stats, err := h.taskService.Stats(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, stats)
}

// bindTaskInput binds and validates a task body and converts it to the
// service input, attaching the optional authenticated owner.
func (h *TaskHandler) bindTaskInput(c echo.Context) (service.TaskInput, error) {
	var req TaskRequest
	if err := c.Bind(&req); err != nil {
		return service.TaskInput{}, apperrors.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return service.TaskInput{}, err
	}

	dueDate, err := parseDueDate(req.DueDate)
	if err != nil {
		return service.TaskInput{}, err
	}

	input := service.TaskInput{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		Priority:    req.Priority,
		DueDate:     dueDate,
		Tags:        req.Tags,
	}
	if identity, ok := auth.IdentityFrom(c); ok {
		userID := identity.UserID
		input.UserID = &userID
	}
	return input, nil
}

func parseTaskID(c echo.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, apperrors.ErrInvalidID
	}
	return id, nil
}

func parseDueDate(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	for _, layout := range dueDateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return &t, nil
		}
	}
	return nil, apperrors.NewValidationError([]apperrors.FieldError{
		{Field: "dueDate", Message: "Due date must be a valid date"},
	})
}

func queryInt(c echo.Context, name string) int {
	v, err := strconv.Atoi(c.QueryParam(name))
	if err != nil {
		return 0
	}
	return v
}
