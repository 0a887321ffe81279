package models

import "time"

type TaskStatus string

const (
	TaskPending    TaskStatus = "pending"
	TaskInProgress TaskStatus = "in_progress"
	TaskCompleted  TaskStatus = "completed"
)

type TaskPriority string

const (
	PriorityLow    TaskPriority = "low"
	PriorityMedium TaskPriority = "medium"
	PriorityHigh   TaskPriority = "high"
)

// Task represents a unit of club work, optionally assigned to a member
type Task struct {
	ID          uint         `json:"task_id" db:"task_id" gorm:"column:task_id;primaryKey"`
	Title       string       `json:"title" db:"title" gorm:"type:text;not null"`
	Description *string      `json:"description,omitempty" db:"description" gorm:"type:text"`
	Status      TaskStatus   `json:"status" db:"status" gorm:"type:varchar(20);not null;default:pending"`
	AssignedTo  *uint        `json:"assigned_to,omitempty" db:"assigned_to" gorm:"column:assigned_to"`
	CreatedBy   uint         `json:"created_by" db:"created_by" gorm:"column:created_by;not null"`
	Deadline    *time.Time   `json:"deadline,omitempty" db:"deadline" gorm:"type:date"`
	Priority    TaskPriority `json:"priority" db:"priority" gorm:"type:varchar(10);not null;default:medium"`
	CompletedAt *time.Time   `json:"completed_at,omitempty" db:"completed_at"`
	CreatedAt   time.Time    `json:"created_at" db:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt   time.Time    `json:"updated_at" db:"updated_at" gorm:"not null;default:CURRENT_TIMESTAMP"`

	// Display names joined from members; never written back.
	AssignedToName *string `json:"assigned_to_name,omitempty" gorm:"->;-:migration"`
	CreatedByName  *string `json:"created_by_name,omitempty" gorm:"->;-:migration"`
}

func (Task) TableName() string { return "tasks" }
