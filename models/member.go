package models

import "time"

// PrivilegeLevel is the coarse authorization tier, distinct from the
// free-form specialty Role.
type PrivilegeLevel string

const (
	PrivilegeStandard      PrivilegeLevel = "standard"
	PrivilegeLeader        PrivilegeLevel = "leader"
	PrivilegeAdministrator PrivilegeLevel = "administrator"
)

var privilegeRank = map[PrivilegeLevel]int{
	PrivilegeStandard:      0,
	PrivilegeLeader:        1,
	PrivilegeAdministrator: 2,
}

// AtLeast reports whether p sits at or above min in the privilege
// ordering. Unknown levels rank below standard.
func (p PrivilegeLevel) AtLeast(min PrivilegeLevel) bool {
	pr, ok := privilegeRank[p]
	if !ok {
		pr = -1
	}
	return pr >= privilegeRank[min]
}

// Member represents a club member account
type Member struct {
	ID             uint           `json:"member_id" db:"member_id" gorm:"column:member_id;primaryKey"`
	Name           string         `json:"name" db:"name" gorm:"type:text;not null"`
	Email          string         `json:"email" db:"email" gorm:"type:varchar(255);uniqueIndex;not null"`
	Password       string         `json:"-" db:"password" gorm:"type:text;not null"`
	Role           string         `json:"role" db:"role" gorm:"type:text"`
	JoinYear       *int           `json:"join_year,omitempty" db:"join_year" gorm:"type:integer"`
	GraduationYear *int           `json:"graduation_year,omitempty" db:"graduation_year" gorm:"type:integer"`
	IsActive       bool           `json:"is_active" db:"is_active" gorm:"not null;default:true"`
	PrivilegeLevel PrivilegeLevel `json:"privilege_level" db:"privilege_level" gorm:"type:varchar(20);not null;default:standard"`
	CreatedAt      time.Time      `json:"created_at" db:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt      time.Time      `json:"updated_at" db:"updated_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (Member) TableName() string { return "members" }

// MemberStats aggregates a member's credited work. Counts are always
// present, zero when nothing matches.
type MemberStats struct {
	CompletedTasks  int64 `json:"completed_tasks"`
	ArticlesWritten int64 `json:"articles_written"`
	RobotsLed       int64 `json:"robots_led"`
}
