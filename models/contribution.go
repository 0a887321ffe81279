package models

import "time"

type ContributionType string

const (
	ContributionArticle       ContributionType = "article"
	ContributionRobotProject  ContributionType = "robot_project"
	ContributionTaskCompleted ContributionType = "task_completed"
)

// Contribution is an append-only credit log entry. ReferenceID points
// at the article, robot, or task that earned the credit.
type Contribution struct {
	ID               uint             `json:"contribution_id" db:"contribution_id" gorm:"column:contribution_id;primaryKey"`
	MemberID         uint             `json:"member_id" db:"member_id" gorm:"column:member_id;not null"`
	ContributionType ContributionType `json:"contribution_type" db:"contribution_type" gorm:"type:varchar(20);not null"`
	ReferenceID      uint             `json:"reference_id" db:"reference_id" gorm:"column:reference_id;not null"`
	CreatedAt        time.Time        `json:"created_at" db:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (Contribution) TableName() string { return "contributions" }
