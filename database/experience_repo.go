package database

import (
	"context"

	"github.com/google/uuid"
	"github.com/rpupo63/portfolio-backend/models"
	"gorm.io/gorm"
	"gorm.io/plugin/dbresolver"
)

var experienceUpdateColumns = []string{
	"title", "company", "description", "start_date", "end_date", "location",
	"is_current", "is_published", "category_id",
}

type ExperienceRepo struct {
	db *gorm.DB
}

func NewExperienceRepo(db *gorm.DB) *ExperienceRepo {
	return &ExperienceRepo{db}
}

func (r *ExperienceRepo) withDetails(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Preload("Category").Preload("Tags", orderTagsByName)
}

// List returns experiences, latest start date first.
func (r *ExperienceRepo) List(ctx context.Context, publishedOnly bool) ([]models.Experience, error) {
	q := r.withDetails(ctx)
	if publishedOnly {
		q = q.Where("is_published = ?", true)
	}

	var experiences []models.Experience
	err := q.Order("start_date DESC").Order("created_at DESC").Find(&experiences).Error
	return experiences, translateError("list", "experiences", err)
}

func (r *ExperienceRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Experience, error) {
	var experience models.Experience
	err := r.withDetails(ctx).Clauses(dbresolver.Write).Take(&experience, "id = ?", id).Error
	if err != nil {
		return nil, translateError("find", "experience", err)
	}
	return &experience, nil
}

func (r *ExperienceRepo) Create(ctx context.Context, experience *models.Experience, tagNames []string) error {
	return translateError("create", "experience", r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		tags, err := ensureTags(tx, tagNames)
		if err != nil {
			return err
		}

		experience.Tags = tags
		return tx.Omit("Tags.*", "Category").Create(experience).Error
	}))
}

func (r *ExperienceRepo) Update(ctx context.Context, experience *models.Experience, tagNames []string) error {
	return translateError("update", "experience", r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		experience.NormalizeEndDate()
		res := tx.Model(experience).Select(experienceUpdateColumns).Updates(experience)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return replaceTags(tx, experience, tagNames)
	}))
}

// Delete unlinks the experience's tags and removes it.
func (r *ExperienceRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return translateError("delete", "experience", r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM experience_tags WHERE experience_id = ?", id).Error; err != nil {
			return err
		}

		res := tx.Delete(&models.Experience{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	}))
}

func (r *ExperienceRepo) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Experience{}).Count(&count).Error
	return count, translateError("count", "experiences", err)
}
