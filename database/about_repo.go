package database

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/rpupo63/portfolio-backend/models"
	"gorm.io/gorm"
)

type AboutRepo struct {
	db *gorm.DB
}

func NewAboutRepo(db *gorm.DB) *AboutRepo {
	return &AboutRepo{db}
}

// Get returns the first about row, or nil when none has been written yet.
func (r *AboutRepo) Get(ctx context.Context) (*models.AboutMe, error) {
	var about models.AboutMe
	err := r.db.WithContext(ctx).Order("created_at ASC").First(&about).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, translateError("find", "about me", err)
	}
	return &about, nil
}

// Save inserts the row on first use and updates it afterwards.
func (r *AboutRepo) Save(ctx context.Context, about *models.AboutMe) error {
	if about.ID == uuid.Nil {
		return translateError("create", "about me", r.db.WithContext(ctx).Create(about).Error)
	}

	err := r.db.WithContext(ctx).Model(about).
		Select("content", "profile_image", "resume_url", "skills", "updated_at").
		Updates(about).Error
	return translateError("update", "about me", err)
}
