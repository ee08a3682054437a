package models

import (
	"time"

	"github.com/google/uuid"
)

// Category is the single-valued classification of a content item.
type Category struct {
	ID          uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid();not null"`
	Name        string    `json:"name" db:"name" gorm:"type:varchar(50);not null;uniqueIndex:idx_categories_name"`
	Description *string   `json:"description,omitempty" db:"description" gorm:"type:text"`
	CreatedAt   time.Time `json:"created_at" db:"created_at" gorm:"not null"`
}

// Tag is a free-form label shared by projects, achievements, and experiences.
// Tags are created on first use and never deleted.
type Tag struct {
	ID   uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid();not null"`
	Name string    `json:"name" db:"name" gorm:"type:varchar(30);not null;uniqueIndex:idx_tags_name"`
}

// MaxTagNameLength matches the tags.name column.
const MaxTagNameLength = 30

// TagNames returns the names of tags in their stored order.
func TagNames(tags []Tag) []string {
	names := make([]string, 0, len(tags))
	for _, t := range tags {
		names = append(names, t.Name)
	}
	return names
}
