package database

import (
	"github.com/roboarchive/roboarchive-backend/models"
	"gorm.io/gorm"
)

// Database aggregates one store per table over a shared GORM instance.
// It is constructed once in main and injected into the API layer;
// nothing holds connection state at package level.
type Database struct {
	memberRepo  MemberStore
	taskRepo    TaskStore
	articleRepo ArticleStore
	robotRepo   RobotStore
}

// New initializes a new Database struct with each repository using a shared GORM database instance
func New(db *gorm.DB) Database {
	return Database{
		memberRepo:  NewMemberRepo(db),
		taskRepo:    NewTaskRepo(db),
		articleRepo: NewArticleRepo(db),
		robotRepo:   NewRobotRepo(db),
	}
}

// NewWithStores assembles a Database from explicit store
// implementations. Handler tests use it to substitute fakes.
func NewWithStores(members MemberStore, tasks TaskStore, articles ArticleStore, robots RobotStore) Database {
	return Database{
		memberRepo:  members,
		taskRepo:    tasks,
		articleRepo: articles,
		robotRepo:   robots,
	}
}

// Accessor methods for each repository

func (d Database) MemberRepo() MemberStore {
	return d.memberRepo
}

func (d Database) TaskRepo() TaskStore {
	return d.taskRepo
}

func (d Database) ArticleRepo() ArticleStore {
	return d.articleRepo
}

func (d Database) RobotRepo() RobotStore {
	return d.robotRepo
}

// Migrate creates any missing tables. Runs once at startup.
func Migrate(db *gorm.DB) error {
	tables := []interface{}{
		&models.Member{},
		&models.Task{},
		&models.Article{},
		&models.Robot{},
		&models.Contribution{},
	}

	migrator := db.Migrator()
	for _, table := range tables {
		if !migrator.HasTable(table) {
			if err := db.AutoMigrate(table); err != nil {
				return err
			}
		}
	}
	return nil
}
