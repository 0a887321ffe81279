package database

import (
	"context"
	"time"

	"github.com/roboarchive/roboarchive-backend/models"
	"gorm.io/datatypes"
)

// The store interfaces are what handlers depend on; the gorm repos
// below implement them, and handler tests substitute fakes.

type MemberStore interface {
	FindAll(ctx context.Context) ([]models.Member, error)
	FindByID(ctx context.Context, id uint) (*models.Member, error)
	FindByEmail(ctx context.Context, email string) (*models.Member, error)
	Create(ctx context.Context, member *models.Member) error
	Update(ctx context.Context, id uint, changes MemberChanges) (*models.Member, error)
	Delete(ctx context.Context, id uint) error
	Stats(ctx context.Context, id uint) (*models.MemberStats, error)
}

type TaskStore interface {
	FindAll(ctx context.Context) ([]models.Task, error)
	Create(ctx context.Context, task *models.Task) error
	Update(ctx context.Context, id uint, changes TaskChanges) (*models.Task, error)
	Delete(ctx context.Context, id uint) error
}

type ArticleStore interface {
	FindAll(ctx context.Context, filter ArticleFilter) ([]models.Article, error)
	// FindByID increments the article's view counter before reading.
	FindByID(ctx context.Context, id uint) (*models.Article, error)
	// Lookup reads without touching the view counter.
	Lookup(ctx context.Context, id uint) (*models.Article, error)
	Create(ctx context.Context, article *models.Article) error
	Update(ctx context.Context, id uint, changes ArticleChanges) (*models.Article, error)
	Delete(ctx context.Context, id uint) error
}

type RobotStore interface {
	FindAll(ctx context.Context, filter RobotFilter) ([]models.Robot, error)
	FindByID(ctx context.Context, id uint) (*models.Robot, error)
	Create(ctx context.Context, robot *models.Robot) error
	Update(ctx context.Context, id uint, changes RobotChanges) (*models.Robot, error)
	Delete(ctx context.Context, id uint) error
}

// Change sets for partial updates: a nil field leaves the column
// unchanged; a present field overwrites it.

type MemberChanges struct {
	Name           *string
	Role           *string
	GraduationYear *int
	IsActive       *bool
	PrivilegeLevel *models.PrivilegeLevel
}

type TaskChanges struct {
	Title       *string
	Description *string
	Status      *models.TaskStatus
	AssignedTo  *uint
	Deadline    *time.Time
	Priority    *models.TaskPriority
}

type ArticleChanges struct {
	Title           *string
	Content         *string
	Type            *models.ArticleType
	Category        *string
	CompetitionYear *int
	FilePath        *string
}

type RobotChanges struct {
	Name             *string
	CompetitionYear  *int
	TeamLeadID       *uint
	Specifications   datatypes.JSON
	PerformanceNotes *string
	FinalRank        *int
	FilePath         *string
}

// List filters; zero values mean "no constraint". Predicates are
// conjunctive and always bound as parameters.

type ArticleFilter struct {
	Type     string
	Category string
	Year     int
	Search   string
}

type RobotFilter struct {
	Year   int
	Search string
}
