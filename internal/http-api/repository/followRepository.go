package repository

import (
	"context"
	"fmt"

	"microblog/internal/http-api/models"

	"gorm.io/gorm"
)

type FollowRepository interface {
	Follow(ctx context.Context, userID, authorID string) error
	Unfollow(ctx context.Context, userID, authorID string) error
	Exists(ctx context.Context, userID, authorID string) (bool, error)
}

type followRepository struct {
	db *gorm.DB
}

func NewFollowRepository(db *gorm.DB) FollowRepository {
	return &followRepository{db: db}
}

// Follow creates the link if it does not exist yet. The unique index on
// (user_id, author_id) backs this up under concurrent submits.
func (r *followRepository) Follow(ctx context.Context, userID, authorID string) error {
	follow := models.Follow{UserID: userID, AuthorID: authorID}
	err := r.db.WithContext(ctx).
		Where(models.Follow{UserID: userID, AuthorID: authorID}).
		FirstOrCreate(&follow).Error
	if err != nil {
		return fmt.Errorf("create follow: %w", err)
	}
	return nil
}

// Unfollow removes the link, a missing link is a no-op
func (r *followRepository) Unfollow(ctx context.Context, userID, authorID string) error {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND author_id = ?", userID, authorID).
		Delete(&models.Follow{})
	if result.Error != nil {
		return fmt.Errorf("delete follow: %w", result.Error)
	}
	return nil
}

func (r *followRepository) Exists(ctx context.Context, userID, authorID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Follow{}).
		Where("user_id = ? AND author_id = ?", userID, authorID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
