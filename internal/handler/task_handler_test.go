package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	apperrors "taskboard/internal/errors"
	"taskboard/internal/model"
	"taskboard/internal/service"
	"taskboard/internal/validation"
)

// MockTaskService is a mock implementation of TaskService.
type MockTaskService struct {
	mock.Mock
}

func (m *MockTaskService) List(ctx context.Context, query service.ListQuery) ([]model.Task, service.Pagination, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Get(1).(service.Pagination), args.Error(2)
	}
	return args.Get(0).([]model.Task), args.Get(1).(service.Pagination), args.Error(2)
}

func (m *MockTaskService) Get(ctx context.Context, id uuid.UUID) (*model.Task, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Task), args.Error(1)
}

func (m *MockTaskService) Create(ctx context.Context, input service.TaskInput) (*model.Task, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Task), args.Error(1)
}

func (m *MockTaskService) Replace(ctx context.Context, id uuid.UUID, input service.TaskInput) (*model.Task, error) {
	args := m.Called(ctx, id, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Task), args.Error(1)
}

func (m *MockTaskService) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*model.Task, error) {
	args := m.Called(ctx, id, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Task), args.Error(1)
}

func (m *MockTaskService) Delete(ctx context.Context, id uuid.UUID) (*model.Task, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Task), args.Error(1)
}

func (m *MockTaskService) Stats(ctx context.Context) (*service.Stats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Stats), args.Error(1)
}

func newTestContext(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = validation.New()

	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) apperrors.ErrorResponse {
	t.Helper()
	var body apperrors.ErrorResponse
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestTaskHandler_List(t *testing.T) {
	mockService := new(MockTaskService)
	mockService.On("List", mock.Anything, service.ListQuery{
		Status:    "pending",
		Priority:  "high",
		SortBy:    "dueDate",
		SortOrder: "asc",
		Page:      2,
		Limit:     5,
	}).Return([]model.Task{{Title: "only one"}}, service.Pagination{
		Current: 2, Total: 2, Count: 1, TotalTasks: 6,
	}, nil)

	h := NewTaskHandler(mockService)
	c, rec := newTestContext(http.MethodGet,
		"/api/tasks?status=pending&priority=high&sortBy=dueDate&sortOrder=asc&page=2&limit=5", "")

	assert.NoError(t, h.List(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var body ListResponse
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Len(t, body.Tasks, 1)
	assert.Equal(t, 2, body.Pagination.Current)
	assert.Equal(t, int64(6), body.Pagination.TotalTasks)

	mockService.AssertExpectations(t)
}

func TestTaskHandler_Get(t *testing.T) {
	id := uuid.New()

	tests := []struct {
		name       string
		paramID    string
		setupMock  func(*MockTaskService)
		wantStatus int
		wantError  string
	}{
		{
			name:    "found",
			paramID: id.String(),
			setupMock: func(m *MockTaskService) {
				m.On("Get", mock.Anything, id).Return(&model.Task{ID: id, Title: "task"}, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name:       "malformed id is a bad request, not a miss",
			paramID:    "not-a-uuid",
			setupMock:  func(m *MockTaskService) {},
			wantStatus: http.StatusBadRequest,
			wantError:  "Invalid task ID format",
		},
		{
			name:    "unknown id",
			paramID: id.String(),
			setupMock: func(m *MockTaskService) {
				m.On("Get", mock.Anything, id).Return(nil, apperrors.ErrTaskNotFound)
			},
			wantStatus: http.StatusNotFound,
			wantError:  "Task not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockTaskService)
			tt.setupMock(mockService)

			h := NewTaskHandler(mockService)
			c, rec := newTestContext(http.MethodGet, "/api/tasks/"+tt.paramID, "")
			c.SetParamNames("id")
			c.SetParamValues(tt.paramID)

			assert.NoError(t, h.Get(c))
			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantError != "" {
				assert.Equal(t, tt.wantError, decodeError(t, rec).Error)
			}

			mockService.AssertExpectations(t)
		})
	}
}

func TestTaskHandler_Create(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		setupMock  func(*MockTaskService)
		wantStatus int
		wantError  string
	}{
		{
			name: "created",
			body: `{"title":"Write tests","priority":"high","tags":["dev"]}`,
			setupMock: func(m *MockTaskService) {
				m.On("Create", mock.Anything, service.TaskInput{
					Title:    "Write tests",
					Priority: "high",
					Tags:     []string{"dev"},
				}).Return(&model.Task{Title: "Write tests", Priority: "high"}, nil)
			},
			wantStatus: http.StatusCreated,
		},
		{
			name:       "missing title fails validation",
			body:       `{"description":"no title"}`,
			setupMock:  func(m *MockTaskService) {},
			wantStatus: http.StatusBadRequest,
			wantError:  "Validation failed",
		},
		{
			name:       "unparseable due date fails validation",
			body:       `{"title":"ok","dueDate":"next tuesday"}`,
			setupMock:  func(m *MockTaskService) {},
			wantStatus: http.StatusBadRequest,
			wantError:  "Validation failed",
		},
		{
			name:       "malformed json",
			body:       `{"title":`,
			setupMock:  func(m *MockTaskService) {},
			wantStatus: http.StatusBadRequest,
			wantError:  "Invalid request body",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockTaskService)
			tt.setupMock(mockService)

			h := NewTaskHandler(mockService)
			c, rec := newTestContext(http.MethodPost, "/api/tasks", tt.body)

			assert.NoError(t, h.Create(c))
			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantError != "" {
				assert.Equal(t, tt.wantError, decodeError(t, rec).Error)
			}

			mockService.AssertExpectations(t)
		})
	}
}

func TestTaskHandler_Create_AcceptsDateOnlyDueDate(t *testing.T) {
	mockService := new(MockTaskService)
	mockService.On("Create", mock.Anything, mock.MatchedBy(func(input service.TaskInput) bool {
		return input.DueDate != nil && input.DueDate.Format("2006-01-02") == "2026-09-15"
	})).Return(&model.Task{Title: "dated"}, nil)

	h := NewTaskHandler(mockService)
	c, rec := newTestContext(http.MethodPost, "/api/tasks", `{"title":"dated","dueDate":"2026-09-15"}`)

	assert.NoError(t, h.Create(c))
	assert.Equal(t, http.StatusCreated, rec.Code)
	mockService.AssertExpectations(t)
}

func TestTaskHandler_UpdateStatus(t *testing.T) {
	id := uuid.New()

	tests := []struct {
		name       string
		body       string
		setupMock  func(*MockTaskService)
		wantStatus int
		wantError  string
	}{
		{
			name: "status updated",
			body: `{"status":"completed"}`,
			setupMock: func(m *MockTaskService) {
				m.On("UpdateStatus", mock.Anything, id, "completed").
					Return(&model.Task{ID: id, Status: "completed"}, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name: "invalid status",
			body: `{"status":"archived"}`,
			setupMock: func(m *MockTaskService) {
				m.On("UpdateStatus", mock.Anything, id, "archived").
					Return(nil, apperrors.ErrInvalidStatus)
			},
			wantStatus: http.StatusBadRequest,
			wantError:  "Invalid status. Must be pending, in-progress, or completed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockTaskService)
			tt.setupMock(mockService)

			h := NewTaskHandler(mockService)
			c, rec := newTestContext(http.MethodPatch, "/api/tasks/"+id.String()+"/status", tt.body)
			c.SetParamNames("id")
			c.SetParamValues(id.String())

			assert.NoError(t, h.UpdateStatus(c))
			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantError != "" {
				assert.Equal(t, tt.wantError, decodeError(t, rec).Error)
			}

			mockService.AssertExpectations(t)
		})
	}
}

func TestTaskHandler_Delete(t *testing.T) {
	id := uuid.New()

	mockService := new(MockTaskService)
	mockService.On("Delete", mock.Anything, id).Return(&model.Task{ID: id, Title: "gone"}, nil)

	h := NewTaskHandler(mockService)
	c, rec := newTestContext(http.MethodDelete, "/api/tasks/"+id.String(), "")
	c.SetParamNames("id")
	c.SetParamValues(id.String())

	assert.NoError(t, h.Delete(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var body DeleteResponse
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Task deleted successfully", body.Message)
	assert.Equal(t, "gone", body.DeletedTask.Title)

	mockService.AssertExpectations(t)
}

func TestTaskHandler_Stats(t *testing.T) {
	mockService := new(MockTaskService)
	mockService.On("Stats", mock.Anything).Return(&service.Stats{
		TotalTasks:    3,
		StatusStats:   map[string]int64{"pending": 2, "completed": 1},
		PriorityStats: map[string]int64{"medium": 3},
	}, nil)

	h := NewTaskHandler(mockService)
	c, rec := newTestContext(http.MethodGet, "/api/tasks/stats/summary", "")

	assert.NoError(t, h.Stats(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var stats service.Stats
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &stats))
	assert.Equal(t, int64(3), stats.TotalTasks)
	assert.Equal(t, int64(2), stats.StatusStats["pending"])

	mockService.AssertExpectations(t)
}
