package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"taskboard/internal/cache"
	"taskboard/internal/errors"
	"taskboard/internal/model"
	"taskboard/internal/repository"
)

const (
	defaultPage  = 1
	defaultLimit = 10
	// maxLimit caps the page size so a single request cannot drain the table.
	maxLimit = 100

	statsCacheKey = "tasks:stats"
	statsCacheTTL = 30 * time.Second
)

// TaskInput carries the editable fields of a task. Replace treats absent
// fields as zero values and overwrites, so PUT clears what the client omits.
type TaskInput struct {
	Title       string
	Description string
	Status      string
	Priority    string
	DueDate     *time.Time
	Tags        []string
	UserID      *uuid.UUID
}

// ListQuery holds the raw list parameters before defaults are applied.
type ListQuery struct {
	Status    string
	Priority  string
	SortBy    string
	SortOrder string
	Page      int
	Limit     int
}

// Pagination is the metadata returned alongside every task page.
type Pagination struct {
	Current    int   `json:"current"`
	Total      int   `json:"total"`
	Count      int   `json:"count"`
	TotalTasks int64 `json:"totalTasks"`
}

// Stats aggregates task counts by status and priority.
type Stats struct {
	TotalTasks    int64            `json:"totalTasks"`
	StatusStats   map[string]int64 `json:"statusStats"`
	PriorityStats map[string]int64 `json:"priorityStats"`
}

// TaskService handles task operations.
type TaskService interface {
	List(ctx context.Context, query ListQuery) ([]model.Task, Pagination, error)
	Get(ctx context.Context, id uuid.UUID) (*model.Task, error)
	Create(ctx context.Context, input TaskInput) (*model.Task, error)
	Replace(ctx context.Context, id uuid.UUID, input TaskInput) (*model.Task, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*model.Task, error)
	Delete(ctx context.Context, id uuid.UUID) (*model.Task, error)
	Stats(ctx context.Context) (*Stats, error)
}

type taskService struct {
	repo  repository.TaskRepository
	cache *cache.Client
}

// NewTaskService creates a new task service.
func NewTaskService(repo repository.TaskRepository, cache *cache.Client) TaskService {
	return &taskService{
		repo:  repo,
		cache: cache,
	}
}

// List returns one page of tasks plus pagination metadata. Total pages are
// ceil(matching / limit); a page past the end yields an empty slice with a
// well-formed pagination object.
func (s *taskService) List(ctx context.Context, query ListQuery) ([]model.Task, Pagination, error) {
	page := query.Page
	if page < 1 {
		page = defaultPage
	}
	limit := query.Limit
	if limit < 1 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	sortBy := query.SortBy
	if sortBy == "" {
		sortBy = "createdAt"
	}
	sortOrder := query.SortOrder
	if sortOrder != "asc" {
		sortOrder = "desc"
	}

	tasks, total, err := s.repo.List(ctx, repository.TaskFilter{
		Status:    query.Status,
		Priority:  query.Priority,
		SortBy:    sortBy,
		SortOrder: sortOrder,
		Offset:    (page - 1) * limit,
		Limit:     limit,
	})
	if err != nil {
		return nil, Pagination{}, err
	}
	if tasks == nil {
		tasks = []model.Task{}
	}

	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return tasks, Pagination{
		Current:    page,
		Total:      totalPages,
		Count:      len(tasks),
		TotalTasks: total,
	}, nil
}

func (s *taskService) Get(ctx context.Context, id uuid.UUID) (*model.Task, error) {
	task, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrTaskNotFound
		}
		return nil, fmt.Errorf("fetch task: %w", err)
	}
	return task, nil
}

// Create stores a new task, applying the default status and priority.
func (s *taskService) Create(ctx context.Context, input TaskInput) (*model.Task, error) {
	status := input.Status
	if status == "" {
		status = model.StatusPending
	}
	priority := input.Priority
	if priority == "" {
		priority = model.PriorityMedium
	}
	tags := input.Tags
	if tags == nil {
		tags = []string{}
	}

	task := &model.Task{
		Title:       input.Title,
		Description: input.Description,
		Status:      status,
		Priority:    priority,
		DueDate:     input.DueDate,
		Tags:        tags,
		UserID:      input.UserID,
	}
	if err := s.repo.Create(ctx, task); err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}
	task.ComputeAge()

	s.invalidateStats(ctx)
	return task, nil
}

// Replace overwrites every editable field. Fields absent from the request
// arrive as zero values and clear the stored ones; partial updates belong to
// UpdateStatus.
func (s *taskService) Replace(ctx context.Context, id uuid.UUID, input TaskInput) (*model.Task, error) {
	task, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	status := input.Status
	if status == "" {
		status = model.StatusPending
	}
	priority := input.Priority
	if priority == "" {
		priority = model.PriorityMedium
	}
	tags := input.Tags
	if tags == nil {
		tags = []string{}
	}

	task.Title = input.Title
	task.Description = input.Description
	task.Status = status
	task.Priority = priority
	task.DueDate = input.DueDate
	task.Tags = tags

	if err := s.repo.Save(ctx, task); err != nil {
		return nil, fmt.Errorf("update task: %w", err)
	}
	task.ComputeAge()

	s.invalidateStats(ctx)
	return task, nil
}

// UpdateStatus changes only the status field.
func (s *taskService) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*model.Task, error) {
	if !model.ValidStatus(status) {
		return nil, errors.ErrInvalidStatus
	}

	task, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	task.Status = status
	if err := s.repo.Save(ctx, task); err != nil {
		return nil, fmt.Errorf("update task status: %w", err)
	}
	task.ComputeAge()

	s.invalidateStats(ctx)
	return task, nil
}

// Delete removes the task and returns the deleted snapshot.
func (s *taskService) Delete(ctx context.Context, id uuid.UUID) (*model.Task, error) {
	task, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Delete(ctx, task); err != nil {
		return nil, fmt.Errorf("delete task: %w", err)
	}

	s.invalidateStats(ctx)
	return task, nil
}

// Stats returns total and per-status/per-priority counts, cached briefly in
// redis. A cache failure falls through to the database.
func (s *taskService) Stats(ctx context.Context) (*Stats, error) {
	if data, _ := s.cache.Get(ctx, statsCacheKey); data != nil {
		var cached Stats
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	total, err := s.repo.CountAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("count tasks: %w", err)
	}
	byStatus, err := s.repo.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}
	byPriority, err := s.repo.CountByPriority(ctx)
	if err != nil {
		return nil, err
	}

	stats := &Stats{
		TotalTasks:    total,
		StatusStats:   bucketMap(byStatus),
		PriorityStats: bucketMap(byPriority),
	}

	if payload, err := json.Marshal(stats); err == nil {
		_ = s.cache.Set(ctx, statsCacheKey, payload, statsCacheTTL)
	}
	return stats, nil
}

func (s *taskService) invalidateStats(ctx context.Context) {
	_ = s.cache.Delete(ctx, statsCacheKey)
}

func bucketMap(counts []repository.FieldCount) map[string]int64 {
	m := make(map[string]int64, len(counts))
	for _, c := range counts {
		m[c.Value] = c.Count
	}
	return m
}
