package database

import (
	"context"

	"github.com/roboarchive/roboarchive-backend/models"
	"gorm.io/gorm"
)

type ArticleRepo struct {
	db *gorm.DB
}

func NewArticleRepo(db *gorm.DB) *ArticleRepo {
	return &ArticleRepo{db}
}

// FindAll returns articles matching the filter, newest first. Each
// present filter adds one parameterized predicate; predicates are
// conjunctive.
func (r *ArticleRepo) FindAll(ctx context.Context, filter ArticleFilter) ([]models.Article, error) {
	query := r.db.WithContext(ctx).Model(&models.Article{}).
		Select("articles.*, members.name AS author_name").
		Joins("LEFT JOIN members ON articles.author_id = members.member_id")

	if filter.Type != "" {
		query = query.Where("articles.type = ?", filter.Type)
	}
	if filter.Category != "" {
		query = query.Where("articles.category = ?", filter.Category)
	}
	if filter.Year != 0 {
		query = query.Where("articles.competition_year = ?", filter.Year)
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("(LOWER(articles.title) LIKE LOWER(?) OR LOWER(articles.content) LIKE LOWER(?))", pattern, pattern)
	}

	var articles []models.Article
	err := query.Order("articles.created_at DESC").Find(&articles).Error
	return articles, err
}

// FindByID bumps the view counter, then reads the row. The two
// statements are deliberately independent: the increment is not rolled
// back if the read finds nothing.
func (r *ArticleRepo) FindByID(ctx context.Context, id uint) (*models.Article, error) {
	err := r.db.WithContext(ctx).Model(&models.Article{}).
		Where("article_id = ?", id).
		UpdateColumn("view_count", gorm.Expr("view_count + ?", 1)).Error
	if err != nil {
		return nil, err
	}
	return r.Lookup(ctx, id)
}

// Lookup reads an article without touching the view counter
func (r *ArticleRepo) Lookup(ctx context.Context, id uint) (*models.Article, error) {
	var article models.Article
	err := r.db.WithContext(ctx).Model(&models.Article{}).
		Select("articles.*, members.name AS author_name").
		Joins("LEFT JOIN members ON articles.author_id = members.member_id").
		Where("articles.article_id = ?", id).
		First(&article).Error
	if err != nil {
		return nil, err
	}
	return &article, nil
}

// Create inserts the article and credits the author with an `article`
// contribution inside one transaction.
func (r *ArticleRepo) Create(ctx context.Context, article *models.Article) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(article).Error; err != nil {
			return err
		}
		contribution := models.Contribution{
			MemberID:         article.AuthorID,
			ContributionType: models.ContributionArticle,
			ReferenceID:      article.ID,
		}
		return tx.Create(&contribution).Error
	})
}

// Update applies only the fields present in changes and returns the
// resulting row.
func (r *ArticleRepo) Update(ctx context.Context, id uint, changes ArticleChanges) (*models.Article, error) {
	updates := map[string]interface{}{}
	if changes.Title != nil {
		updates["title"] = *changes.Title
	}
	if changes.Content != nil {
		updates["content"] = *changes.Content
	}
	if changes.Type != nil {
		updates["type"] = *changes.Type
	}
	if changes.Category != nil {
		updates["category"] = *changes.Category
	}
	if changes.CompetitionYear != nil {
		updates["competition_year"] = *changes.CompetitionYear
	}
	if changes.FilePath != nil {
		updates["file_path"] = *changes.FilePath
	}

	if len(updates) > 0 {
		if err := r.db.WithContext(ctx).Model(&models.Article{}).Where("article_id = ?", id).Updates(updates).Error; err != nil {
			return nil, err
		}
	}

	return r.Lookup(ctx, id)
}

// Delete removes an article by id
func (r *ArticleRepo) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Where("article_id = ?", id).Delete(&models.Article{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
