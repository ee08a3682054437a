package database

import (
	"context"

	"github.com/google/uuid"
	"github.com/rpupo63/portfolio-backend/models"
	"gorm.io/gorm"
	"gorm.io/plugin/dbresolver"
)

var achievementUpdateColumns = []string{
	"title", "description", "date_achieved", "image_url", "certificate_url", "is_published", "category_id",
}

type AchievementRepo struct {
	db *gorm.DB
}

func NewAchievementRepo(db *gorm.DB) *AchievementRepo {
	return &AchievementRepo{db}
}

func (r *AchievementRepo) withDetails(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Preload("Category").Preload("Tags", orderTagsByName)
}

// List returns achievements, most recent date first.
func (r *AchievementRepo) List(ctx context.Context, publishedOnly bool) ([]models.Achievement, error) {
	q := r.withDetails(ctx)
	if publishedOnly {
		q = q.Where("is_published = ?", true)
	}

	var achievements []models.Achievement
	err := q.Order("date_achieved DESC").Order("created_at DESC").Find(&achievements).Error
	return achievements, translateError("list", "achievements", err)
}

func (r *AchievementRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Achievement, error) {
	var achievement models.Achievement
	err := r.withDetails(ctx).Clauses(dbresolver.Write).Take(&achievement, "id = ?", id).Error
	if err != nil {
		return nil, translateError("find", "achievement", err)
	}
	return &achievement, nil
}

func (r *AchievementRepo) Create(ctx context.Context, achievement *models.Achievement, tagNames []string) error {
	return translateError("create", "achievement", r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		tags, err := ensureTags(tx, tagNames)
		if err != nil {
			return err
		}

		achievement.Tags = tags
		return tx.Omit("Tags.*", "Category").Create(achievement).Error
	}))
}

func (r *AchievementRepo) Update(ctx context.Context, achievement *models.Achievement, tagNames []string) error {
	return translateError("update", "achievement", r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(achievement).Select(achievementUpdateColumns).Updates(achievement)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return replaceTags(tx, achievement, tagNames)
	}))
}

// Delete unlinks the achievement's tags and removes it.
func (r *AchievementRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return translateError("delete", "achievement", r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM achievement_tags WHERE achievement_id = ?", id).Error; err != nil {
			return err
		}

		res := tx.Delete(&models.Achievement{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	}))
}

func (r *AchievementRepo) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Achievement{}).Count(&count).Error
	return count, translateError("count", "achievements", err)
}
