package database

import (
	"context"

	"github.com/google/uuid"
	"github.com/rpupo63/portfolio-backend/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/plugin/dbresolver"
)

type CommentRepo struct {
	db *gorm.DB
}

func NewCommentRepo(db *gorm.DB) *CommentRepo {
	return &CommentRepo{db}
}

// Create inserts the comment and reloads it with its author from the primary.
func (r *CommentRepo) Create(ctx context.Context, comment *models.Comment) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(comment).Error; err != nil {
		return translateError("create", "comment", err)
	}

	err := r.db.WithContext(ctx).Clauses(dbresolver.Write).Preload("User").Take(comment, "id = ?", comment.ID).Error
	return translateError("reload", "comment", err)
}

// ListApprovedForProject returns the project's approved comments, newest first.
func (r *CommentRepo) ListApprovedForProject(ctx context.Context, projectID uuid.UUID) ([]models.Comment, error) {
	var comments []models.Comment
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("project_id = ? AND is_approved = ?", projectID, true).
		Order("created_at DESC").
		Find(&comments).Error
	return comments, translateError("list", "comments", err)
}

// Recent returns the latest comments across all projects with author and project.
func (r *CommentRepo) Recent(ctx context.Context, limit int) ([]models.Comment, error) {
	var comments []models.Comment
	err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Project").
		Order("created_at DESC").
		Limit(limit).
		Find(&comments).Error
	return comments, translateError("list", "recent comments", err)
}

// RecentByUser returns a user's latest comments on published projects.
func (r *CommentRepo) RecentByUser(ctx context.Context, userID uuid.UUID, limit int) ([]models.Comment, error) {
	var comments []models.Comment
	err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Project").
		Joins("JOIN projects ON projects.id = comments.project_id AND projects.is_published = ?", true).
		Where("comments.user_id = ?", userID).
		Order("comments.created_at DESC").
		Limit(limit).
		Find(&comments).Error
	return comments, translateError("list", "user comments", err)
}

func (r *CommentRepo) CountByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Comment{}).Where("user_id = ?", userID).Count(&count).Error
	return count, translateError("count", "comments", err)
}

type LikeRepo struct {
	db *gorm.DB
}

func NewLikeRepo(db *gorm.DB) *LikeRepo {
	return &LikeRepo{db}
}

// Toggle flips the like state of (userID, projectID) and returns the new
// state and the project's like count. The delete-then-insert runs in one
// transaction and the insert yields to the unique (user_id, project_id)
// index: if a concurrent toggle inserted the row first, the pair is already
// liked and the insert is a no-op.
func (r *LikeRepo) Toggle(ctx context.Context, userID, projectID uuid.UUID) (liked bool, count int64, err error) {
	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("user_id = ? AND project_id = ?", userID, projectID).Delete(&models.Like{})
		if res.Error != nil {
			return res.Error
		}

		if res.RowsAffected == 0 {
			like := models.Like{UserID: userID, ProjectID: projectID}
			err := tx.Omit(clause.Associations).Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "user_id"}, {Name: "project_id"}},
				DoNothing: true,
			}).Create(&like).Error
			if err != nil {
				return err
			}
			liked = true
		}

		return tx.Model(&models.Like{}).Where("project_id = ?", projectID).Count(&count).Error
	})
	if err != nil {
		return false, 0, translateError("toggle", "like", err)
	}
	return liked, count, nil
}

func (r *LikeRepo) Exists(ctx context.Context, userID, projectID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Clauses(dbresolver.Write).Model(&models.Like{}).
		Where("user_id = ? AND project_id = ?", userID, projectID).
		Count(&count).Error
	return count > 0, translateError("find", "like", err)
}

func (r *LikeRepo) CountByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Like{}).Where("user_id = ?", userID).Count(&count).Error
	return count, translateError("count", "likes", err)
}

func (r *LikeRepo) CountByProject(ctx context.Context, projectID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Like{}).Where("project_id = ?", projectID).Count(&count).Error
	return count, translateError("count", "likes", err)
}
