package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rpupo63/portfolio-backend/database"
	"github.com/rpupo63/portfolio-backend/models"
)

// The store interfaces below are the slices of the database repositories each
// service needs. *database.XxxRepo satisfies them.

type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByResetToken(ctx context.Context, token string) (*models.User, error)
	FindProfile(ctx context.Context, id uuid.UUID) (*models.User, error)
	SetResetToken(ctx context.Context, id uuid.UUID, token string, expiry time.Time) error
	ConsumeResetToken(ctx context.Context, token, passwordHash string, now time.Time) (bool, error)
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error
	UpdateProfile(ctx context.Context, id uuid.UUID, username string, aboutMe, profileImage *string) error
	Promote(ctx context.Context, id uuid.UUID) error
	CountAdmins(ctx context.Context) (int64, error)
	AdminEmails(ctx context.Context) ([]string, error)
	Count(ctx context.Context) (int64, error)
}

type SocialNetworkStore interface {
	Create(ctx context.Context, network *models.SocialNetwork) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.SocialNetwork, error)
	DeleteOwned(ctx context.Context, id, userID uuid.UUID) (bool, error)
}

type CategoryStore interface {
	List(ctx context.Context) ([]models.Category, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Category, error)
	Create(ctx context.Context, category *models.Category) error
	Update(ctx context.Context, category *models.Category) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type TagStore interface {
	List(ctx context.Context) ([]models.Tag, error)
}

type ProjectStore interface {
	List(ctx context.Context, f database.ProjectFilter) ([]models.Project, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Project, error)
	Create(ctx context.Context, project *models.Project, tagNames []string) error
	Update(ctx context.Context, project *models.Project, tagNames []string) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context) (int64, error)
}

type AchievementStore interface {
	List(ctx context.Context, publishedOnly bool) ([]models.Achievement, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Achievement, error)
	Create(ctx context.Context, achievement *models.Achievement, tagNames []string) error
	Update(ctx context.Context, achievement *models.Achievement, tagNames []string) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context) (int64, error)
}

type ExperienceStore interface {
	List(ctx context.Context, publishedOnly bool) ([]models.Experience, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Experience, error)
	Create(ctx context.Context, experience *models.Experience, tagNames []string) error
	Update(ctx context.Context, experience *models.Experience, tagNames []string) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context) (int64, error)
}

type CommentStore interface {
	Create(ctx context.Context, comment *models.Comment) error
	ListApprovedForProject(ctx context.Context, projectID uuid.UUID) ([]models.Comment, error)
	Recent(ctx context.Context, limit int) ([]models.Comment, error)
	RecentByUser(ctx context.Context, userID uuid.UUID, limit int) ([]models.Comment, error)
	CountByUser(ctx context.Context, userID uuid.UUID) (int64, error)
}

type LikeStore interface {
	Toggle(ctx context.Context, userID, projectID uuid.UUID) (liked bool, count int64, err error)
	Exists(ctx context.Context, userID, projectID uuid.UUID) (bool, error)
	CountByUser(ctx context.Context, userID uuid.UUID) (int64, error)
}

type AboutStore interface {
	Get(ctx context.Context) (*models.AboutMe, error)
	Save(ctx context.Context, about *models.AboutMe) error
}

// Mailer delivers an email to every recipient.
type Mailer interface {
	Send(ctx context.Context, recipients []string, subject, body string) error
}

// Texter delivers an SMS.
type Texter interface {
	Send(ctx context.Context, to, body string) error
}

// Clock returns the current time. time.Now satisfies it.
type Clock func() time.Time
