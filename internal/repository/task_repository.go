package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"taskboard/internal/model"
)

// sortColumns whitelists the sortable API fields and maps them to columns.
// Ordering by a raw client-supplied string would be an injection vector.
var sortColumns = map[string]string{
	"createdAt": "created_at",
	"updatedAt": "updated_at",
	"dueDate":   "due_date",
	"title":     "title",
	"status":    "status",
	"priority":  "priority",
}

// TaskFilter describes a list query: optional equality filters, a sort field
// with direction, and an offset/limit window.
type TaskFilter struct {
	Status    string
	Priority  string
	SortBy    string
	SortOrder string
	Offset    int
	Limit     int
}

// FieldCount is one bucket of a group-count aggregation.
type FieldCount struct {
	Value string `gorm:"column:value"`
	Count int64  `gorm:"column:count"`
}

// TaskRepository defines task persistence operations.
type TaskRepository interface {
	Create(ctx context.Context, task *model.Task) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Task, error)
	Save(ctx context.Context, task *model.Task) error
	Delete(ctx context.Context, task *model.Task) error
	List(ctx context.Context, filter TaskFilter) ([]model.Task, int64, error)
	CountAll(ctx context.Context) (int64, error)
	CountByStatus(ctx context.Context) ([]FieldCount, error)
	CountByPriority(ctx context.Context) ([]FieldCount, error)
}

type taskRepository struct {
	db *gorm.DB
}

// NewTaskRepository builds a GORM-backed task repository.
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &taskRepository{db: db}
}

func (r *taskRepository) Create(ctx context.Context, task *model.Task) error {
	return r.db.WithContext(ctx).Create(task).Error
}

func (r *taskRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Task, error) {
	var task model.Task
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&task).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

func (r *taskRepository) Save(ctx context.Context, task *model.Task) error {
	return r.db.WithContext(ctx).Save(task).Error
}

func (r *taskRepository) Delete(ctx context.Context, task *model.Task) error {
	return r.db.WithContext(ctx).Delete(task).Error
}

// List applies filter, sort, and window in that order and returns the page
// together with the total number of matching records.
func (r *taskRepository) List(ctx context.Context, filter TaskFilter) ([]model.Task, int64, error) {
	query := r.filtered(ctx, filter)

	var total int64
	if err := query.Model(&model.Task{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count tasks: %w", err)
	}

	column, ok := sortColumns[filter.SortBy]
	if !ok {
		column = "created_at"
	}
	direction := "DESC"
	if filter.SortOrder == "asc" {
		direction = "ASC"
	}

	var tasks []model.Task
	err := query.
		Order(column + " " + direction).
		Offset(filter.Offset).
		Limit(filter.Limit).
		Find(&tasks).Error
	if err != nil {
		return nil, 0, fmt.Errorf("list tasks: %w", err)
	}
	return tasks, total, nil
}

func (r *taskRepository) CountAll(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&model.Task{}).Count(&total).Error
	return total, err
}

func (r *taskRepository) CountByStatus(ctx context.Context) ([]FieldCount, error) {
	return r.groupCount(ctx, "status")
}

func (r *taskRepository) CountByPriority(ctx context.Context) ([]FieldCount, error) {
	return r.groupCount(ctx, "priority")
}

func (r *taskRepository) groupCount(ctx context.Context, column string) ([]FieldCount, error) {
	var counts []FieldCount
	err := r.db.WithContext(ctx).
		Model(&model.Task{}).
		Select(column + " AS value, COUNT(*) AS count").
		Group(column).
		Scan(&counts).Error
	if err != nil {
		return nil, fmt.Errorf("count tasks by %s: %w", column, err)
	}
	return counts, nil
}

func (r *taskRepository) filtered(ctx context.Context, filter TaskFilter) *gorm.DB {
	query := r.db.WithContext(ctx)
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Priority != "" {
		query = query.Where("priority = ?", filter.Priority)
	}
	return query
}
