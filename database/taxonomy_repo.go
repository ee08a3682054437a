package database

import (
	"context"

	"github.com/google/uuid"
	"github.com/rpupo63/portfolio-backend/errs"
	"github.com/rpupo63/portfolio-backend/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CategoryRepo struct {
	db *gorm.DB
}

func NewCategoryRepo(db *gorm.DB) *CategoryRepo {
	return &CategoryRepo{db}
}

func (r *CategoryRepo) List(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	err := r.db.WithContext(ctx).Order("name ASC").Find(&categories).Error
	return categories, translateError("list", "categories", err)
}

func (r *CategoryRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	var category models.Category
	if err := r.db.WithContext(ctx).Take(&category, "id = ?", id).Error; err != nil {
		return nil, translateError("find", "category", err)
	}
	return &category, nil
}

func (r *CategoryRepo) Create(ctx context.Context, category *models.Category) error {
	return translateError("create", "category", r.db.WithContext(ctx).Create(category).Error)
}

func (r *CategoryRepo) Update(ctx context.Context, category *models.Category) error {
	res := r.db.WithContext(ctx).Model(category).Select("name", "description").Updates(category)
	if res.Error != nil {
		return translateError("update", "category", res.Error)
	}
	if res.RowsAffected == 0 {
		return errs.NewNotFound("category")
	}
	return nil
}

// Delete detaches every content item from the category before removing it.
func (r *CategoryRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return translateError("delete", "category", r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, model := range []any{&models.Project{}, &models.Achievement{}, &models.Experience{}} {
			if err := tx.Model(model).Where("category_id = ?", id).Update("category_id", nil).Error; err != nil {
				return err
			}
		}

		res := tx.Delete(&models.Category{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	}))
}

type TagRepo struct {
	db *gorm.DB
}

func NewTagRepo(db *gorm.DB) *TagRepo {
	return &TagRepo{db}
}

// List returns every tag, including tags no longer attached to any item.
func (r *TagRepo) List(ctx context.Context) ([]models.Tag, error) {
	var tags []models.Tag
	err := r.db.WithContext(ctx).Order("name ASC").Find(&tags).Error
	return tags, translateError("list", "tags", err)
}

// Ensure returns the tags named by names, creating the missing ones.
func (r *TagRepo) Ensure(ctx context.Context, names []string) ([]models.Tag, error) {
	var tags []models.Tag
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		tags, err = ensureTags(tx, names)
		return err
	})
	return tags, translateError("ensure", "tags", err)
}

// ensureTags is find-or-create by exact name. The insert is an upsert that
// yields to the unique name index, so a concurrent writer creating the same
// tag makes this call reuse that row instead of failing.
func ensureTags(tx *gorm.DB, names []string) ([]models.Tag, error) {
	if len(names) == 0 {
		return []models.Tag{}, nil
	}

	rows := make([]models.Tag, 0, len(names))
	for _, name := range names {
		rows = append(rows, models.Tag{Name: name})
	}

	err := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoNothing: true,
	}).Create(&rows).Error
	if err != nil {
		return nil, err
	}

	var tags []models.Tag
	if err := tx.Where("name IN ?", names).Order("name ASC").Find(&tags).Error; err != nil {
		return nil, err
	}
	return tags, nil
}

// replaceTags swaps the item's whole tag set for names.
func replaceTags(tx *gorm.DB, owner any, names []string) error {
	tags, err := ensureTags(tx, names)
	if err != nil {
		return err
	}

	association := tx.Model(owner).Association("Tags")
	if len(tags) == 0 {
		return association.Clear()
	}
	return association.Replace(tags)
}
