package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Achievement is a dated accomplishment, optionally backed by a certificate.
type Achievement struct {
	ID             uuid.UUID      `json:"id" db:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid();not null"`
	Title          string         `json:"title" db:"title" gorm:"type:varchar(100);not null"`
	Description    string         `json:"description" db:"description" gorm:"type:text;not null"`
	DateAchieved   datatypes.Date `json:"date_achieved" db:"date_achieved" gorm:"not null;index:idx_achievements_date_achieved"`
	ImageURL       *string        `json:"image_url,omitempty" db:"image_url" gorm:"type:varchar(255)"`
	CertificateURL *string        `json:"certificate_url,omitempty" db:"certificate_url" gorm:"type:varchar(255)"`
	IsPublished    bool           `json:"is_published" db:"is_published" gorm:"not null"`
	CreatedAt      time.Time      `json:"created_at" db:"created_at" gorm:"not null"`
	CategoryID     *uuid.UUID     `json:"category_id,omitempty" db:"category_id" gorm:"type:uuid;index:idx_achievements_category_id"`
	Category       *Category      `json:"category,omitempty" gorm:"foreignKey:CategoryID;references:ID"`
	Tags           []Tag          `json:"tags" gorm:"many2many:achievement_tags;"`
}
