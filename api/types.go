package api

import (
	"context"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/rpupo63/portfolio-backend/auth"
	"github.com/rpupo63/portfolio-backend/models"
	"github.com/rpupo63/portfolio-backend/services"
)

// routeHandlers contains all the handlers for different route types
type routeHandlers struct {
	authHandler        authHandler
	profileHandler     profileHandler
	projectHandler     projectHandler
	achievementHandler achievementHandler
	experienceHandler  experienceHandler
	categoryHandler    categoryHandler
	siteHandler        siteHandler
}

// The interfaces below are the service operations each handler calls. The
// concrete services in package services satisfy them.

type IdentityService interface {
	Register(ctx context.Context, in services.RegisterInput) (*models.User, error)
	Authenticate(ctx context.Context, in services.LoginInput) (*models.User, error)
	RequestReset(ctx context.Context, in services.ForgotPasswordInput) error
	ValidateReset(ctx context.Context, token string) error
	ConsumeReset(ctx context.Context, in services.ResetPasswordInput) error
	ChangePassword(ctx context.Context, actor auth.Actor, in services.ChangePasswordInput) error
	GetProfile(ctx context.Context, viewer auth.Actor, userID uuid.UUID) (*services.Profile, error)
	UpdateProfile(ctx context.Context, actor auth.Actor, in services.ProfileInput) (*models.User, error)
	AddSocialNetwork(ctx context.Context, actor auth.Actor, in services.SocialNetworkInput) (*models.SocialNetwork, error)
	RemoveSocialNetwork(ctx context.Context, actor auth.Actor, id uuid.UUID) error
}

type ContentService interface {
	ListAdminProjects(ctx context.Context, actor auth.Actor) ([]models.Project, error)
	GetProject(ctx context.Context, actor auth.Actor, id uuid.UUID) (*models.Project, error)
	CreateProject(ctx context.Context, actor auth.Actor, in services.ProjectInput) (*models.Project, error)
	UpdateProject(ctx context.Context, actor auth.Actor, id uuid.UUID, in services.ProjectInput) (*models.Project, error)
	DeleteProject(ctx context.Context, actor auth.Actor, id uuid.UUID) error

	ListAchievements(ctx context.Context, actor auth.Actor) ([]models.Achievement, error)
	GetAchievement(ctx context.Context, actor auth.Actor, id uuid.UUID) (*models.Achievement, error)
	CreateAchievement(ctx context.Context, actor auth.Actor, in services.AchievementInput) (*models.Achievement, error)
	UpdateAchievement(ctx context.Context, actor auth.Actor, id uuid.UUID, in services.AchievementInput) (*models.Achievement, error)
	DeleteAchievement(ctx context.Context, actor auth.Actor, id uuid.UUID) error

	ListExperiences(ctx context.Context, actor auth.Actor) ([]models.Experience, error)
	GetExperience(ctx context.Context, actor auth.Actor, id uuid.UUID) (*models.Experience, error)
	CreateExperience(ctx context.Context, actor auth.Actor, in services.ExperienceInput) (*models.Experience, error)
	UpdateExperience(ctx context.Context, actor auth.Actor, id uuid.UUID, in services.ExperienceInput) (*models.Experience, error)
	DeleteExperience(ctx context.Context, actor auth.Actor, id uuid.UUID) error

	ListCategories(ctx context.Context) ([]models.Category, error)
	GetCategory(ctx context.Context, actor auth.Actor, id uuid.UUID) (*models.Category, error)
	CreateCategory(ctx context.Context, actor auth.Actor, in services.CategoryInput) (*models.Category, error)
	UpdateCategory(ctx context.Context, actor auth.Actor, id uuid.UUID, in services.CategoryInput) (*models.Category, error)
	DeleteCategory(ctx context.Context, actor auth.Actor, id uuid.UUID) error
}

type EngagementService interface {
	ProjectDetail(ctx context.Context, actor auth.Actor, id uuid.UUID) (*services.ProjectDetail, error)
	ToggleLike(ctx context.Context, actor auth.Actor, projectID uuid.UUID) (*services.LikeResult, error)
	AddComment(ctx context.Context, actor auth.Actor, projectID uuid.UUID, in services.CommentInput) (*models.Comment, error)
}

type SiteService interface {
	Home(ctx context.Context, sort string) (*services.HomePage, error)
	Portfolio(ctx context.Context, q services.PortfolioQuery) (*services.PortfolioPage, error)
	About(ctx context.Context) (*services.AboutPage, error)
	GetAbout(ctx context.Context, actor auth.Actor) (*models.AboutMe, error)
	UpdateAbout(ctx context.Context, actor auth.Actor, in services.AboutInput) (*models.AboutMe, error)
	Dashboard(ctx context.Context, actor auth.Actor) (*services.Dashboard, error)
	ShareLink(ctx context.Context, actor auth.Actor, projectID uuid.UUID, platform, baseURL string) (string, error)
}

// UserLookup resolves the user behind a session.
type UserLookup interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

// AssetReader streams stored uploads.
type AssetReader interface {
	Get(ctx context.Context, key string) (io.ReadCloser, string, error)
}

// HealthChecker reports whether the database is reachable.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// ErrorResponse represents an error response from the API
// @Description Error response structure
type ErrorResponse struct {
	Error   string `json:"error" example:"Internal Server Error"`
	Status  string `json:"status" example:"error"`
	Field   string `json:"field,omitempty" example:"title"`
	Details string `json:"details,omitempty" example:"Additional error details"`
}

// MessageResponse carries a localized confirmation.
type MessageResponse struct {
	Message string `json:"message"`
}

// LoginResponse is returned by POST /login. The token is also set as the
// session cookie.
type LoginResponse struct {
	Message   string       `json:"message"`
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
	User      *models.User `json:"user"`
}

type UserResponse struct {
	Message string       `json:"message"`
	User    *models.User `json:"user"`
}

type HealthResponse struct {
	Status        string `json:"status"`
	UptimeSeconds int64  `json:"uptime_seconds"`
}
