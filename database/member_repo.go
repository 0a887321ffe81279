package database

import (
	"context"

	"github.com/roboarchive/roboarchive-backend/models"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

type MemberRepo struct {
	db *gorm.DB
}

func NewMemberRepo(db *gorm.DB) *MemberRepo {
	return &MemberRepo{db}
}

// FindAll returns all members, newest first
func (r *MemberRepo) FindAll(ctx context.Context) ([]models.Member, error) {
	var members []models.Member
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&members).Error
	return members, err
}

// FindByID returns a member by its ID
func (r *MemberRepo) FindByID(ctx context.Context, id uint) (*models.Member, error) {
	var member models.Member
	if err := r.db.WithContext(ctx).Where("member_id = ?", id).First(&member).Error; err != nil {
		return nil, err
	}
	return &member, nil
}

// FindByEmail returns the member registered under email
func (r *MemberRepo) FindByEmail(ctx context.Context, email string) (*models.Member, error) {
	var member models.Member
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&member).Error; err != nil {
		return nil, err
	}
	return &member, nil
}

// Create inserts a new member. A duplicate email surfaces as the
// store's unique-constraint error.
func (r *MemberRepo) Create(ctx context.Context, member *models.Member) error {
	return r.db.WithContext(ctx).Create(member).Error
}

// Update applies only the fields present in changes and returns the
// resulting row.
func (r *MemberRepo) Update(ctx context.Context, id uint, changes MemberChanges) (*models.Member, error) {
	updates := map[string]interface{}{}
	if changes.Name != nil {
		updates["name"] = *changes.Name
	}
	if changes.Role != nil {
		updates["role"] = *changes.Role
	}
	if changes.GraduationYear != nil {
		updates["graduation_year"] = *changes.GraduationYear
	}
	if changes.IsActive != nil {
		updates["is_active"] = *changes.IsActive
	}
	if changes.PrivilegeLevel != nil {
		updates["privilege_level"] = *changes.PrivilegeLevel
	}

	if len(updates) > 0 {
		if err := r.db.WithContext(ctx).Model(&models.Member{}).Where("member_id = ?", id).Updates(updates).Error; err != nil {
			return nil, err
		}
	}

	return r.FindByID(ctx, id)
}

// Delete removes a member by id
func (r *MemberRepo) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Where("member_id = ?", id).Delete(&models.Member{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Stats computes the member's credited work. The three counts are
// independent, so they run concurrently on the shared pool.
func (r *MemberRepo) Stats(ctx context.Context, id uint) (*models.MemberStats, error) {
	var stats models.MemberStats

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return r.db.WithContext(gctx).Model(&models.Task{}).
			Where("assigned_to = ? AND status = ?", id, models.TaskCompleted).
			Count(&stats.CompletedTasks).Error
	})
	g.Go(func() error {
		return r.db.WithContext(gctx).Model(&models.Article{}).
			Where("author_id = ?", id).
			Count(&stats.ArticlesWritten).Error
	})
	g.Go(func() error {
		return r.db.WithContext(gctx).Model(&models.Robot{}).
			Where("team_lead_id = ?", id).
			Count(&stats.RobotsLed).Error
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &stats, nil
}
