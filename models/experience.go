package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Experience is a position held at a company. A current position has no end date.
type Experience struct {
	ID          uuid.UUID       `json:"id" db:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid();not null"`
	Title       string          `json:"title" db:"title" gorm:"type:varchar(100);not null"`
	Company     string          `json:"company" db:"company" gorm:"type:varchar(100);not null"`
	Description string          `json:"description" db:"description" gorm:"type:text;not null"`
	StartDate   datatypes.Date  `json:"start_date" db:"start_date" gorm:"not null;index:idx_experiences_start_date"`
	EndDate     *datatypes.Date `json:"end_date,omitempty" db:"end_date"`
	Location    *string         `json:"location,omitempty" db:"location" gorm:"type:varchar(100)"`
	IsCurrent   bool            `json:"is_current" db:"is_current" gorm:"not null;default:false"`
	IsPublished bool            `json:"is_published" db:"is_published" gorm:"not null"`
	CreatedAt   time.Time       `json:"created_at" db:"created_at" gorm:"not null"`
	CategoryID  *uuid.UUID      `json:"category_id,omitempty" db:"category_id" gorm:"type:uuid;index:idx_experiences_category_id"`
	Category    *Category       `json:"category,omitempty" gorm:"foreignKey:CategoryID;references:ID"`
	Tags        []Tag           `json:"tags" gorm:"many2many:experience_tags;"`
}

// NormalizeEndDate drops the end date of a current position.
func (e *Experience) NormalizeEndDate() {
	if e.IsCurrent {
		e.EndDate = nil
	}
}

// BeforeSave keeps a stale end date from being persisted for a current position.
func (e *Experience) BeforeSave(tx *gorm.DB) error {
	e.NormalizeEndDate()
	return nil
}

// AfterFind hides an end date stored before the position was marked current.
func (e *Experience) AfterFind(tx *gorm.DB) error {
	e.NormalizeEndDate()
	return nil
}
