package models

import (
	"time"

	"gorm.io/datatypes"
)

// Robot is an archived robot project. Specifications holds the
// free-form structured spec sheet (motors, sensors, dimensions).
type Robot struct {
	ID               uint           `json:"robot_id" db:"robot_id" gorm:"column:robot_id;primaryKey"`
	Name             string         `json:"name" db:"name" gorm:"type:text;not null"`
	CompetitionYear  *int           `json:"competition_year,omitempty" db:"competition_year" gorm:"type:integer"`
	TeamLeadID       *uint          `json:"team_lead_id,omitempty" db:"team_lead_id" gorm:"column:team_lead_id"`
	Specifications   datatypes.JSON `json:"specifications,omitempty" db:"specifications"`
	PerformanceNotes *string        `json:"performance_notes,omitempty" db:"performance_notes" gorm:"type:text"`
	FinalRank        *int           `json:"final_rank,omitempty" db:"final_rank" gorm:"type:integer"`
	FilePath         *string        `json:"file_path,omitempty" db:"file_path" gorm:"type:text"`
	CreatedAt        time.Time      `json:"created_at" db:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt        time.Time      `json:"updated_at" db:"updated_at" gorm:"not null;default:CURRENT_TIMESTAMP"`

	TeamLeadName *string `json:"team_lead_name,omitempty" gorm:"->;-:migration"`
}

func (Robot) TableName() string { return "robots" }
