package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rpupo63/portfolio-backend/auth"
	"github.com/rpupo63/portfolio-backend/config"
	"github.com/rpupo63/portfolio-backend/database"
	"github.com/rpupo63/portfolio-backend/errs"
	"github.com/rpupo63/portfolio-backend/models"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

const (
	resetTokenTTL       = time.Hour
	profileCommentLimit = 5
	maxAboutMeLength    = 500
)

type RegisterInput struct {
	Username        string `json:"username" validate:"required,min=2,max=64"`
	Email           string `json:"email" validate:"required,email,max=120"`
	Password        string `json:"password" validate:"required,min=6,maxbytes=72"`
	ConfirmPassword string `json:"confirm_password" validate:"omitempty,eqfield=Password"`
}

type LoginInput struct {
	Email      string `json:"email" validate:"required,email"`
	Password   string `json:"password" validate:"required"`
	RememberMe bool   `json:"remember_me"`
}

type ForgotPasswordInput struct {
	Email string `json:"email" validate:"required,email"`
}

type ResetPasswordInput struct {
	Token           string `json:"token" validate:"required"`
	Password        string `json:"password" validate:"required,min=6,maxbytes=72"`
	ConfirmPassword string `json:"confirm_password" validate:"omitempty,eqfield=Password"`
}

type ChangePasswordInput struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=6,maxbytes=72"`
	ConfirmPassword string `json:"confirm_password" validate:"omitempty,eqfield=NewPassword"`
}

type ProfileInput struct {
	Username     string  `json:"username" validate:"required,min=2,max=64"`
	AboutMe      *string `json:"about_me" validate:"omitempty,max=500"`
	ProfileImage *Upload `json:"-"`
}

type SocialNetworkInput struct {
	Name string `json:"name" validate:"required,max=50"`
	URL  string `json:"url" validate:"required,url,max=255"`
	Icon string `json:"icon" validate:"max=50"`
}

// AdminBootstrap is the account created when no administrator exists.
type AdminBootstrap struct {
	Username string
	Email    string
	Password string
}

func AdminBootstrapFromConfig(cfg map[string]string) AdminBootstrap {
	return AdminBootstrap{
		Username: config.GetString(cfg, "ADMIN_USERNAME", "Admin"),
		Email:    config.GetString(cfg, "ADMIN_EMAIL", "admin@portfolio.com"),
		Password: config.GetString(cfg, "ADMIN_PASSWORD", "changeme123"),
	}
}

// Profile is a user's public page.
type Profile struct {
	User           *models.User           `json:"user"`
	SocialNetworks []models.SocialNetwork `json:"social_networks"`
	CommentCount   int64                  `json:"comment_count"`
	LikeCount      int64                  `json:"like_count"`
	RecentComments []models.Comment       `json:"recent_comments"`
	LikedProjects  []models.Project       `json:"liked_projects"`
}

// IdentityService owns accounts, credentials, password resets and profiles.
type IdentityService struct {
	users            UserStore
	networks         SocialNetworkStore
	comments         CommentStore
	likes            LikeStore
	projects         ProjectStore
	assets           AssetStore
	mailer           Mailer
	baseURL          string
	hideUnknownEmail bool
	now              Clock
	newToken         func() (string, error)
}

func NewIdentityService(
	cfg map[string]string,
	users UserStore,
	networks SocialNetworkStore,
	comments CommentStore,
	likes LikeStore,
	projects ProjectStore,
	assets AssetStore,
	mailer Mailer,
) *IdentityService {
	return &IdentityService{
		users:            users,
		networks:         networks,
		comments:         comments,
		likes:            likes,
		projects:         projects,
		assets:           assets,
		mailer:           mailer,
		baseURL:          GetBaseURL(cfg),
		hideUnknownEmail: config.GetBool(cfg, "RESET_HIDE_UNKNOWN_EMAIL", false),
		now:              time.Now,
		newToken:         auth.NewResetToken,
	}
}

// Register creates a non-admin account. A taken email is a conflict and
// creates nothing.
func (s *IdentityService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.TrimSpace(in.Email)
	if err := validateInput(in); err != nil {
		return nil, err
	}

	if _, err := s.users.FindByEmail(ctx, in.Email); err == nil {
		return nil, errs.NewDuplicateEmailError()
	} else if !errs.IsNotFound(err) {
		return nil, err
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, errs.NewInternalErrorWithCause("failed to register user", err)
	}

	user := &models.User{
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: hash,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	log.Info().Str("userID", user.ID.String()).Msg("User registered")
	return user, nil
}

// Authenticate returns the user for a matching email and password. Unknown
// email and wrong password fail identically.
func (s *IdentityService) Authenticate(ctx context.Context, in LoginInput) (*models.User, error) {
	in.Email = strings.TrimSpace(in.Email)
	if err := validateInput(in); err != nil {
		return nil, err
	}

	user, err := s.users.FindByEmail(ctx, in.Email)
	if errs.IsNotFound(err) {
		return nil, errs.NewInvalidCredentialsError()
	}
	if err != nil {
		return nil, err
	}
	if !auth.CheckPassword(user.PasswordHash, in.Password) {
		return nil, errs.NewInvalidCredentialsError()
	}
	return user, nil
}

// RequestReset stores a fresh one-hour reset token for the account and emails
// the reset link. Whether an unknown email is reported depends on
// RESET_HIDE_UNKNOWN_EMAIL.
func (s *IdentityService) RequestReset(ctx context.Context, in ForgotPasswordInput) error {
	in.Email = strings.TrimSpace(in.Email)
	if err := validateInput(in); err != nil {
		return err
	}

	user, err := s.users.FindByEmail(ctx, in.Email)
	if errs.IsNotFound(err) {
		if s.hideUnknownEmail {
			log.Info().Msg("Password reset requested for unknown email")
			return nil
		}
		return errs.NewEmailNotFoundError()
	}
	if err != nil {
		return err
	}

	if s.mailer == nil {
		return errs.NewServiceUnavailableError("email")
	}
	token, err := s.newToken()
	if err != nil {
		return errs.NewInternalErrorWithCause("failed to issue reset token", err)
	}
	if err := s.users.SetResetToken(ctx, user.ID, token, s.now().Add(resetTokenTTL)); err != nil {
		return err
	}

	body := fmt.Sprintf("To reset your password, visit the following link:\n%s\n\n"+
		"If you did not make this request, simply ignore this email.\n\n"+
		"This link will expire in 1 hour.\n", s.resetLink(token))
	if err := s.mailer.Send(ctx, []string{user.Email}, "Password Reset Request", body); err != nil {
		log.Error().Err(err).Str("userID", user.ID.String()).Msg("Failed to send password reset email")
		return err
	}
	return nil
}

func (s *IdentityService) resetLink(token string) string {
	return fmt.Sprintf("%s/reset_password/%s", s.baseURL, token)
}

// ValidateReset reports whether token can still be used.
func (s *IdentityService) ValidateReset(ctx context.Context, token string) error {
	if token == "" || !ValidText(token) {
		return errs.NewInvalidOrExpiredTokenError()
	}
	user, err := s.users.FindByResetToken(ctx, token)
	if errs.IsNotFound(err) {
		return errs.NewInvalidOrExpiredTokenError()
	}
	if err != nil {
		return err
	}
	if !user.ResetTokenValid(token, s.now()) {
		return errs.NewInvalidOrExpiredTokenError()
	}
	return nil
}

// ConsumeReset sets a new password and clears the token in one conditional
// update, so a token works at most once.
func (s *IdentityService) ConsumeReset(ctx context.Context, in ResetPasswordInput) error {
	if err := validateInput(in); err != nil {
		return err
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return errs.NewInternalErrorWithCause("failed to reset password", err)
	}

	ok, err := s.users.ConsumeResetToken(ctx, in.Token, hash, s.now())
	if err != nil {
		return err
	}
	if !ok {
		return errs.NewInvalidOrExpiredTokenError()
	}
	return nil
}

func (s *IdentityService) ChangePassword(ctx context.Context, actor auth.Actor, in ChangePasswordInput) error {
	if err := auth.RequireAuthenticated(actor); err != nil {
		return err
	}
	if err := validateInput(in); err != nil {
		return err
	}

	user, err := s.users.FindByID(ctx, actor.UserID)
	if err != nil {
		return err
	}
	if !auth.CheckPassword(user.PasswordHash, in.CurrentPassword) {
		return errs.NewIncorrectPasswordError()
	}

	hash, err := auth.HashPassword(in.NewPassword)
	if err != nil {
		return errs.NewInternalErrorWithCause("failed to change password", err)
	}
	return s.users.UpdatePassword(ctx, user.ID, hash)
}

// GetProfile assembles userID's profile. The email address is only shown to
// the user themselves and to admins.
func (s *IdentityService) GetProfile(ctx context.Context, viewer auth.Actor, userID uuid.UUID) (*Profile, error) {
	user, err := s.users.FindProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	profile := &Profile{User: user, SocialNetworks: user.SocialNetworks}
	if profile.SocialNetworks == nil {
		profile.SocialNetworks = []models.SocialNetwork{}
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		count, err := s.comments.CountByUser(gctx, userID)
		profile.CommentCount = count
		return err
	})
	g.Go(func() error {
		count, err := s.likes.CountByUser(gctx, userID)
		profile.LikeCount = count
		return err
	})
	g.Go(func() error {
		comments, err := s.comments.RecentByUser(gctx, userID, profileCommentLimit)
		profile.RecentComments = comments
		return err
	})
	g.Go(func() error {
		projects, err := s.projects.List(gctx, database.ProjectFilter{PublishedOnly: true, LikedBy: &userID})
		profile.LikedProjects = projects
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if viewer.UserID != userID && !viewer.IsAdmin {
		user.Email = ""
	}
	return profile, nil
}

func (s *IdentityService) UpdateProfile(ctx context.Context, actor auth.Actor, in ProfileInput) (*models.User, error) {
	if err := auth.RequireAuthenticated(actor); err != nil {
		return nil, err
	}
	in.Username = strings.TrimSpace(in.Username)
	in.AboutMe = trimmed(in.AboutMe)
	if err := validateInput(in); err != nil {
		return nil, err
	}

	user, err := s.users.FindByID(ctx, actor.UserID)
	if err != nil {
		return nil, err
	}
	oldImage := user.ProfileImage

	image, err := s.assets.Store(ctx, "profile_image", in.ProfileImage, FolderProfiles, AssetImage)
	if err != nil {
		return nil, err
	}

	if err := s.users.UpdateProfile(ctx, actor.UserID, in.Username, in.AboutMe, image); err != nil {
		return nil, err
	}
	dropReplaced(ctx, s.assets, oldImage, image)
	return s.users.FindByID(ctx, actor.UserID)
}

func (s *IdentityService) AddSocialNetwork(ctx context.Context, actor auth.Actor, in SocialNetworkInput) (*models.SocialNetwork, error) {
	if err := auth.RequireAuthenticated(actor); err != nil {
		return nil, err
	}
	in.Name = strings.TrimSpace(in.Name)
	in.URL = strings.TrimSpace(in.URL)
	in.Icon = strings.TrimSpace(in.Icon)
	if err := validateInput(in); err != nil {
		return nil, err
	}
	if in.Icon == "" {
		in.Icon = models.DefaultSocialIcon
	}

	network := &models.SocialNetwork{
		Name:   in.Name,
		URL:    in.URL,
		Icon:   in.Icon,
		UserID: actor.UserID,
	}
	if err := s.networks.Create(ctx, network); err != nil {
		return nil, err
	}
	return network, nil
}

// RemoveSocialNetwork deletes one of the actor's own entries. Someone else's
// entry is reported as missing.
func (s *IdentityService) RemoveSocialNetwork(ctx context.Context, actor auth.Actor, id uuid.UUID) error {
	if err := auth.RequireAuthenticated(actor); err != nil {
		return err
	}

	deleted, err := s.networks.DeleteOwned(ctx, id, actor.UserID)
	if err != nil {
		return err
	}
	if !deleted {
		return errs.NewNotFound("social network")
	}
	return nil
}

// EnsureAdmin guarantees at least one administrator exists. When none does, a
// user already holding the bootstrap email is promoted, otherwise the
// bootstrap account is created. It reports whether anything changed.
func (s *IdentityService) EnsureAdmin(ctx context.Context, bootstrap AdminBootstrap) (bool, error) {
	admins, err := s.users.CountAdmins(ctx)
	if err != nil {
		return false, err
	}
	if admins > 0 {
		return false, nil
	}

	existing, err := s.users.FindByEmail(ctx, bootstrap.Email)
	if err == nil {
		if err := s.users.Promote(ctx, existing.ID); err != nil {
			return false, err
		}
		log.Warn().Str("email", existing.Email).Msg("Promoted existing user to administrator")
		return true, nil
	}
	if !errs.IsNotFound(err) {
		return false, err
	}

	hash, err := auth.HashPassword(bootstrap.Password)
	if err != nil {
		return false, errs.NewInternalErrorWithCause("failed to create admin", err)
	}
	about := "Portfolio administrator"
	admin := &models.User{
		Username:     bootstrap.Username,
		Email:        bootstrap.Email,
		PasswordHash: hash,
		IsAdmin:      true,
		AboutMe:      &about,
	}
	if err := s.users.Create(ctx, admin); err != nil {
		return false, err
	}

	log.Warn().Str("email", admin.Email).Msg("Created bootstrap administrator, change its password")
	return true, nil
}
