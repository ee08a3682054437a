package models

import (
	"time"

	"github.com/google/uuid"
)

// User is a registered visitor or the site administrator.
type User struct {
	ID               uuid.UUID       `json:"id" db:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid();not null"`
	Username         string          `json:"username" db:"username" gorm:"type:varchar(64);not null"`
	Email            string          `json:"email" db:"email" gorm:"type:varchar(120);not null;uniqueIndex:idx_users_email"`
	PasswordHash     string          `json:"-" db:"password_hash" gorm:"type:varchar(256);not null"`
	IsAdmin          bool            `json:"is_admin" db:"is_admin" gorm:"not null;default:false"`
	AboutMe          *string         `json:"about_me,omitempty" db:"about_me" gorm:"type:text"`
	ProfileImage     *string         `json:"profile_image,omitempty" db:"profile_image" gorm:"type:varchar(255)"`
	CreatedAt        time.Time       `json:"created_at" db:"created_at" gorm:"not null"`
	ResetToken       *string         `json:"-" db:"reset_token" gorm:"type:varchar(100);index:idx_users_reset_token"`
	ResetTokenExpiry *time.Time      `json:"-" db:"reset_token_expiry"`
	SocialNetworks   []SocialNetwork `json:"social_networks,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

// UserSummary is the public face of a user shown next to comments and on profiles.
type UserSummary struct {
	ID           uuid.UUID `json:"id"`
	Username     string    `json:"username"`
	ProfileImage *string   `json:"profile_image,omitempty"`
}

func (u User) Summary() UserSummary {
	return UserSummary{ID: u.ID, Username: u.Username, ProfileImage: u.ProfileImage}
}

// ResetTokenValid reports whether token matches the stored reset token and has not expired at now.
func (u User) ResetTokenValid(token string, now time.Time) bool {
	if token == "" || u.ResetToken == nil || u.ResetTokenExpiry == nil {
		return false
	}
	return *u.ResetToken == token && now.Before(*u.ResetTokenExpiry)
}
