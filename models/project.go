package models

import (
	"time"

	"github.com/google/uuid"
)

// Project represents a portfolio project. LikeCount and CommentCount are never
// stored; repositories fill them from live counts on read.
type Project struct {
	ID           uuid.UUID  `json:"id" db:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid();not null"`
	Title        string     `json:"title" db:"title" gorm:"type:varchar(100);not null"`
	Description  string     `json:"description" db:"description" gorm:"type:text;not null"`
	DemoLink     *string    `json:"demo_link,omitempty" db:"demo_link" gorm:"type:varchar(255)"`
	GithubLink   *string    `json:"github_link,omitempty" db:"github_link" gorm:"type:varchar(255)"`
	ImageURL     *string    `json:"image_url,omitempty" db:"image_url" gorm:"type:varchar(255)"`
	VideoURL     *string    `json:"video_url,omitempty" db:"video_url" gorm:"type:varchar(255)"`
	IsPublished  bool       `json:"is_published" db:"is_published" gorm:"not null"`
	IsFeatured   bool       `json:"is_featured" db:"is_featured" gorm:"not null;default:false"`
	CreatedAt    time.Time  `json:"created_at" db:"created_at" gorm:"not null;index:idx_projects_created_at"`
	UpdatedAt    time.Time  `json:"updated_at" db:"updated_at" gorm:"not null"`
	CategoryID   *uuid.UUID `json:"category_id,omitempty" db:"category_id" gorm:"type:uuid;index:idx_projects_category_id"`
	Category     *Category  `json:"category,omitempty" gorm:"foreignKey:CategoryID;references:ID"`
	Tags         []Tag      `json:"tags" gorm:"many2many:project_tags;"`
	LikeCount    int64      `json:"like_count" db:"like_count" gorm:"->;-:migration"`
	CommentCount int64      `json:"comment_count" db:"comment_count" gorm:"->;-:migration"`
}
