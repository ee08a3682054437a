package database

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rpupo63/portfolio-backend/errs"
	"github.com/rpupo63/portfolio-backend/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/plugin/dbresolver"
)

type UserRepo struct {
	db *gorm.DB
}

func NewUserRepo(db *gorm.DB) *UserRepo {
	return &UserRepo{db}
}

// Create inserts a user. A taken email surfaces as errs.ErrDuplicateEmail even
// when two registrations race past the service-level check.
func (r *UserRepo) Create(ctx context.Context, user *models.User) error {
	err := r.db.WithContext(ctx).Omit(clause.Associations).Create(user).Error
	if isUniqueViolation(err) {
		return errs.NewDuplicateEmailError()
	}
	return translateError("create", "user", err)
}

// FindByID reads from the primary so a freshly registered user can sign in at once.
func (r *UserRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Clauses(dbresolver.Write).Take(&user, "id = ?", id).Error
	if err != nil {
		return nil, translateError("find", "user", err)
	}
	return &user, nil
}

func (r *UserRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Clauses(dbresolver.Write).Take(&user, "email = ?", email).Error
	if err != nil {
		return nil, translateError("find", "user", err)
	}
	return &user, nil
}

// FindByResetToken returns the user holding token, expired or not.
func (r *UserRepo) FindByResetToken(ctx context.Context, token string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Clauses(dbresolver.Write).Take(&user, "reset_token = ?", token).Error
	if err != nil {
		return nil, translateError("find", "user", err)
	}
	return &user, nil
}

// FindProfile loads a user together with their social networks.
func (r *UserRepo) FindProfile(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).
		Preload("SocialNetworks", func(db *gorm.DB) *gorm.DB {
			return db.Order("social_networks.created_at ASC")
		}).
		Take(&user, "id = ?", id).Error
	if err != nil {
		return nil, translateError("find", "user", err)
	}
	return &user, nil
}

func (r *UserRepo) SetResetToken(ctx context.Context, id uuid.UUID, token string, expiry time.Time) error {
	res := r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Updates(map[string]any{
		"reset_token":        token,
		"reset_token_expiry": expiry,
	})
	if res.Error != nil {
		return translateError("store reset token for", "user", res.Error)
	}
	if res.RowsAffected == 0 {
		return errs.NewNotFound("user")
	}
	return nil
}

// ConsumeResetToken swaps in passwordHash and clears the token in one
// statement. It reports false when no user holds an unexpired token, so a
// token can only ever be used once.
func (r *UserRepo) ConsumeResetToken(ctx context.Context, token, passwordHash string, now time.Time) (bool, error) {
	res := r.db.WithContext(ctx).Model(&models.User{}).
		Where("reset_token = ? AND reset_token_expiry > ?", token, now).
		Updates(map[string]any{
			"password_hash":      passwordHash,
			"reset_token":        nil,
			"reset_token_expiry": nil,
		})
	if res.Error != nil {
		return false, translateError("reset password for", "user", res.Error)
	}
	return res.RowsAffected > 0, nil
}

func (r *UserRepo) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	res := r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Update("password_hash", passwordHash)
	if res.Error != nil {
		return translateError("update password for", "user", res.Error)
	}
	if res.RowsAffected == 0 {
		return errs.NewNotFound("user")
	}
	return nil
}

// UpdateProfile writes username and about text; profileImage is only written when non-nil.
func (r *UserRepo) UpdateProfile(ctx context.Context, id uuid.UUID, username string, aboutMe, profileImage *string) error {
	updates := map[string]any{
		"username": username,
		"about_me": aboutMe,
	}
	if profileImage != nil {
		updates["profile_image"] = *profileImage
	}

	res := r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return translateError("update", "user", res.Error)
	}
	if res.RowsAffected == 0 {
		return errs.NewNotFound("user")
	}
	return nil
}

func (r *UserRepo) Promote(ctx context.Context, id uuid.UUID) error {
	return translateError("promote", "user",
		r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Update("is_admin", true).Error)
}

func (r *UserRepo) CountAdmins(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Clauses(dbresolver.Write).Model(&models.User{}).Where("is_admin = ?", true).Count(&count).Error
	return count, translateError("count", "admins", err)
}

func (r *UserRepo) AdminEmails(ctx context.Context) ([]string, error) {
	var emails []string
	err := r.db.WithContext(ctx).Model(&models.User{}).Where("is_admin = ?", true).Order("created_at").Pluck("email", &emails).Error
	return emails, translateError("list", "admin emails", err)
}

func (r *UserRepo) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.User{}).Count(&count).Error
	return count, translateError("count", "users", err)
}
