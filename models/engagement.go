package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Comment is a user's remark on a project.
type Comment struct {
	ID         uuid.UUID    `json:"id" db:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid();not null"`
	Content    string       `json:"content" db:"content" gorm:"type:text;not null"`
	CreatedAt  time.Time    `json:"created_at" db:"created_at" gorm:"not null;index:idx_comments_created_at"`
	IsApproved bool         `json:"is_approved" db:"is_approved" gorm:"not null"`
	UserID     uuid.UUID    `json:"user_id" db:"user_id" gorm:"type:uuid;not null;index:idx_comments_user_id"`
	ProjectID  uuid.UUID    `json:"project_id" db:"project_id" gorm:"type:uuid;not null;index:idx_comments_project_id"`
	User       *User        `json:"-" gorm:"foreignKey:UserID;references:ID"`
	Project    *Project     `json:"project,omitempty" gorm:"foreignKey:ProjectID;references:ID"`
	Author     *UserSummary `json:"author,omitempty" gorm:"-"`
}

// AfterFind exposes only the author summary of a preloaded user.
func (c *Comment) AfterFind(tx *gorm.DB) error {
	if c.User != nil {
		summary := c.User.Summary()
		c.Author = &summary
	}
	return nil
}

// Like records that a user liked a project. The (user, project) pair is unique.
type Like struct {
	ID        uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid();not null"`
	CreatedAt time.Time `json:"created_at" db:"created_at" gorm:"not null"`
	UserID    uuid.UUID `json:"user_id" db:"user_id" gorm:"type:uuid;not null;uniqueIndex:idx_likes_user_project,priority:1"`
	ProjectID uuid.UUID `json:"project_id" db:"project_id" gorm:"type:uuid;not null;uniqueIndex:idx_likes_user_project,priority:2;index:idx_likes_project_id"`
	User      *User     `json:"-" gorm:"foreignKey:UserID;references:ID"`
	Project   *Project  `json:"-" gorm:"foreignKey:ProjectID;references:ID"`
}
