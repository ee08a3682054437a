package database

import (
	"context"

	"github.com/google/uuid"
	"github.com/rpupo63/portfolio-backend/models"
	"gorm.io/gorm"
)

type SocialNetworkRepo struct {
	db *gorm.DB
}

func NewSocialNetworkRepo(db *gorm.DB) *SocialNetworkRepo {
	return &SocialNetworkRepo{db}
}

func (r *SocialNetworkRepo) Create(ctx context.Context, network *models.SocialNetwork) error {
	return translateError("create", "social network", r.db.WithContext(ctx).Create(network).Error)
}

func (r *SocialNetworkRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.SocialNetwork, error) {
	var networks []models.SocialNetwork
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at ASC").Find(&networks).Error
	return networks, translateError("list", "social networks", err)
}

// DeleteOwned removes the network only when it belongs to userID and reports
// whether a row was removed.
func (r *SocialNetworkRepo) DeleteOwned(ctx context.Context, id, userID uuid.UUID) (bool, error) {
	res := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&models.SocialNetwork{})
	if res.Error != nil {
		return false, translateError("delete", "social network", res.Error)
	}
	return res.RowsAffected > 0, nil
}
