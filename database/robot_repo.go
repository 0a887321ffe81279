package database

import (
	"context"

	"github.com/roboarchive/roboarchive-backend/models"
	"gorm.io/gorm"
)

type RobotRepo struct {
	db *gorm.DB
}

func NewRobotRepo(db *gorm.DB) *RobotRepo {
	return &RobotRepo{db}
}

// FindAll returns robots matching the filter with the team lead's name
// joined, most recent competition year first.
func (r *RobotRepo) FindAll(ctx context.Context, filter RobotFilter) ([]models.Robot, error) {
	query := r.db.WithContext(ctx).Model(&models.Robot{}).
		Select("robots.*, members.name AS team_lead_name").
		Joins("LEFT JOIN members ON robots.team_lead_id = members.member_id")

	if filter.Year != 0 {
		query = query.Where("robots.competition_year = ?", filter.Year)
	}
	if filter.Search != "" {
		query = query.Where("LOWER(robots.name) LIKE LOWER(?)", "%"+filter.Search+"%")
	}

	var robots []models.Robot
	err := query.Order("robots.competition_year DESC").Find(&robots).Error
	return robots, err
}

// FindByID returns a robot by its ID
func (r *RobotRepo) FindByID(ctx context.Context, id uint) (*models.Robot, error) {
	var robot models.Robot
	err := r.db.WithContext(ctx).Model(&models.Robot{}).
		Select("robots.*, members.name AS team_lead_name").
		Joins("LEFT JOIN members ON robots.team_lead_id = members.member_id").
		Where("robots.robot_id = ?", id).
		First(&robot).Error
	if err != nil {
		return nil, err
	}
	return &robot, nil
}

// Create inserts the robot and, when a team lead is set, credits them
// with a robot_project contribution inside one transaction.
func (r *RobotRepo) Create(ctx context.Context, robot *models.Robot) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(robot).Error; err != nil {
			return err
		}
		if robot.TeamLeadID == nil {
			return nil
		}
		contribution := models.Contribution{
			MemberID:         *robot.TeamLeadID,
			ContributionType: models.ContributionRobotProject,
			ReferenceID:      robot.ID,
		}
		return tx.Create(&contribution).Error
	})
}

// Update applies only the fields present in changes and returns the
// resulting row.
func (r *RobotRepo) Update(ctx context.Context, id uint, changes RobotChanges) (*models.Robot, error) {
	updates := map[string]interface{}{}
	if changes.Name != nil {
		updates["name"] = *changes.Name
	}
	if changes.CompetitionYear != nil {
		updates["competition_year"] = *changes.CompetitionYear
	}
	if changes.TeamLeadID != nil {
		updates["team_lead_id"] = *changes.TeamLeadID
	}
	if changes.Specifications != nil {
		updates["specifications"] = changes.Specifications
	}
	if changes.PerformanceNotes != nil {
		updates["performance_notes"] = *changes.PerformanceNotes
	}
	if changes.FinalRank != nil {
		updates["final_rank"] = *changes.FinalRank
	}
	if changes.FilePath != nil {
		updates["file_path"] = *changes.FilePath
	}

	if len(updates) > 0 {
		if err := r.db.WithContext(ctx).Model(&models.Robot{}).Where("robot_id = ?", id).Updates(updates).Error; err != nil {
			return nil, err
		}
	}

	return r.FindByID(ctx, id)
}

// Delete removes a robot by id
func (r *RobotRepo) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Where("robot_id = ?", id).Delete(&models.Robot{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
