package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// AboutMe holds the site owner's biography. Only the first row is used.
type AboutMe struct {
	ID           uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid();not null"`
	Content      string    `json:"content" db:"content" gorm:"type:text;not null"`
	ProfileImage *string   `json:"profile_image,omitempty" db:"profile_image" gorm:"type:varchar(255)"`
	ResumeURL    *string   `json:"resume_url,omitempty" db:"resume_url" gorm:"type:varchar(255)"`
	Skills       *string   `json:"skills,omitempty" db:"skills" gorm:"type:text"`
	CreatedAt    time.Time `json:"-" db:"created_at" gorm:"not null"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at" gorm:"not null"`
}

func (AboutMe) TableName() string {
	return "about_me"
}

// SkillList splits the free-text skills field, one skill per line.
func (a AboutMe) SkillList() []string {
	if a.Skills == nil {
		return nil
	}

	var skills []string
	for _, line := range strings.Split(*a.Skills, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			skills = append(skills, line)
		}
	}
	return skills
}

// SocialNetwork is a link shown on a user's profile.
type SocialNetwork struct {
	ID        uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid();not null"`
	Name      string    `json:"name" db:"name" gorm:"type:varchar(50);not null"`
	URL       string    `json:"url" db:"url" gorm:"type:varchar(255);not null"`
	Icon      string    `json:"icon" db:"icon" gorm:"type:varchar(50);not null"`
	UserID    uuid.UUID `json:"user_id" db:"user_id" gorm:"type:uuid;not null;index:idx_social_networks_user_id"`
	CreatedAt time.Time `json:"created_at" db:"created_at" gorm:"not null"`
}

// DefaultSocialIcon is used when a social network is added without an icon.
const DefaultSocialIcon = "fas fa-link"
