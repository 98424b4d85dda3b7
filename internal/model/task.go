package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Task status values. Status is always one of these.
const (
	StatusPending    = "pending"
	StatusInProgress = "in-progress"
	StatusCompleted  = "completed"
)

// Task priority values. Priority is always one of these.
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

// ValidStatus reports whether s is one of the enumerated status values.
func ValidStatus(s string) bool {
	return s == StatusPending || s == StatusInProgress || s == StatusCompleted
}

// ValidPriority reports whether p is one of the enumerated priority values.
func ValidPriority(p string) bool {
	return p == PriorityLow || p == PriorityMedium || p == PriorityHigh
}

// Task represents a tracked work item.
type Task struct {
	ID          uuid.UUID  `json:"id" gorm:"type:char(36);primaryKey"`
	Title       string     `json:"title" gorm:"size:100;not null"`
	Description string     `json:"description" gorm:"size:500"`
	Status      string     `json:"status" gorm:"size:20;not null;default:'pending';index:idx_tasks_status_created,priority:1"`
	Priority    string     `json:"priority" gorm:"size:10;not null;default:'medium';index"`
	UserID      *uuid.UUID `json:"userId,omitempty" gorm:"type:char(36);index"`
	DueDate     *time.Time `json:"dueDate"`
	Tags        []string   `json:"tags" gorm:"serializer:json"`
	CreatedAt   time.Time  `json:"createdAt" gorm:"index:idx_tasks_status_created,priority:2,sort:desc"`
	UpdatedAt   time.Time  `json:"updatedAt"`

	// Age is the number of whole days since creation, derived at read time.
	Age int `json:"age" gorm:"-"`
}

// BeforeCreate sets UUID before creating the record.
func (t *Task) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// AfterFind derives the age virtual field on every read.
func (t *Task) AfterFind(tx *gorm.DB) error {
	t.ComputeAge()
	return nil
}

// ComputeAge refreshes the derived age from the creation timestamp.
func (t *Task) ComputeAge() {
	t.Age = int(time.Since(t.CreatedAt).Hours() / 24)
}
