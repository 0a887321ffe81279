package models

import "time"

type ArticleType string

const (
	ArticleTutorial      ArticleType = "tutorial"
	ArticleStrategy      ArticleType = "strategy"
	ArticleDocumentation ArticleType = "documentation"
)

// Article is a knowledge-base entry authored by a member. ViewCount is
// a monotonic counter bumped on every read by id.
type Article struct {
	ID              uint        `json:"article_id" db:"article_id" gorm:"column:article_id;primaryKey"`
	Title           string      `json:"title" db:"title" gorm:"type:text;not null"`
	Content         *string     `json:"content,omitempty" db:"content" gorm:"type:text"`
	AuthorID        uint        `json:"author_id" db:"author_id" gorm:"column:author_id;not null"`
	Type            ArticleType `json:"type" db:"type" gorm:"type:varchar(20)"`
	Category        *string     `json:"category,omitempty" db:"category" gorm:"type:text"`
	CompetitionYear *int        `json:"competition_year,omitempty" db:"competition_year" gorm:"type:integer"`
	ViewCount       int         `json:"view_count" db:"view_count" gorm:"not null;default:0"`
	FilePath        *string     `json:"file_path,omitempty" db:"file_path" gorm:"type:text"`
	CreatedAt       time.Time   `json:"created_at" db:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt       time.Time   `json:"updated_at" db:"updated_at" gorm:"not null;default:CURRENT_TIMESTAMP"`

	AuthorName *string `json:"author_name,omitempty" gorm:"->;-:migration"`
}

func (Article) TableName() string { return "articles" }
