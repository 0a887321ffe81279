package database

import (
	"context"
	"time"

	"github.com/roboarchive/roboarchive-backend/models"
	"gorm.io/gorm"
)

type TaskRepo struct {
	db *gorm.DB
}

func NewTaskRepo(db *gorm.DB) *TaskRepo {
	return &TaskRepo{db}
}

// FindAll returns all tasks with assignee and creator names joined,
// soonest deadline first.
func (r *TaskRepo) FindAll(ctx context.Context) ([]models.Task, error) {
	var tasks []models.Task
	err := r.db.WithContext(ctx).Model(&models.Task{}).
		Select("tasks.*, assignees.name AS assigned_to_name, creators.name AS created_by_name").
		Joins("LEFT JOIN members assignees ON tasks.assigned_to = assignees.member_id").
		Joins("LEFT JOIN members creators ON tasks.created_by = creators.member_id").
		Order("tasks.deadline ASC").
		Find(&tasks).Error
	return tasks, err
}

// Create inserts a new task
func (r *TaskRepo) Create(ctx context.Context, task *models.Task) error {
	return r.db.WithContext(ctx).Create(task).Error
}

// Update applies only the fields present in changes. A transition into
// completed stamps completed_at and, when the task has an assignee,
// credits a task_completed contribution in the same transaction.
func (r *TaskRepo) Update(ctx context.Context, id uint, changes TaskChanges) (*models.Task, error) {
	var task models.Task

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		updates := map[string]interface{}{}
		if changes.Title != nil {
			updates["title"] = *changes.Title
		}
		if changes.Description != nil {
			updates["description"] = *changes.Description
		}
		if changes.Status != nil {
			updates["status"] = *changes.Status
		}
		if changes.AssignedTo != nil {
			updates["assigned_to"] = *changes.AssignedTo
		}
		if changes.Deadline != nil {
			updates["deadline"] = *changes.Deadline
		}
		if changes.Priority != nil {
			updates["priority"] = *changes.Priority
		}

		completing := changes.Status != nil && *changes.Status == models.TaskCompleted
		if completing {
			updates["completed_at"] = time.Now()
		}

		if len(updates) > 0 {
			if err := tx.Model(&models.Task{}).Where("task_id = ?", id).Updates(updates).Error; err != nil {
				return err
			}
		}

		if err := tx.Where("task_id = ?", id).First(&task).Error; err != nil {
			return err
		}

		if completing && task.AssignedTo != nil {
			contribution := models.Contribution{
				MemberID:         *task.AssignedTo,
				ContributionType: models.ContributionTaskCompleted,
				ReferenceID:      id,
			}
			if err := tx.Create(&contribution).Error; err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}
	return &task, nil
}

// Delete removes a task by id
func (r *TaskRepo) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Where("task_id = ?", id).Delete(&models.Task{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
