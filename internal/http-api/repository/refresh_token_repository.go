package repository

import (
	"context"
	"fmt"

	"microblog/internal/http-api/models"

	"gorm.io/gorm"
)

type RefreshTokenRepository interface {
	Create(ctx context.Context, refreshToken *models.RefreshToken) error
	FindByToken(ctx context.Context, tokenString string) (*models.RefreshToken, error)
	Revoke(ctx context.Context, tokenID string) error
	Delete(ctx context.Context, tokenID string) error
}

type refreshTokenRepository struct {
	db *gorm.DB
}

func NewRefreshTokenRepository(db *gorm.DB) RefreshTokenRepository {
	return &refreshTokenRepository{db: db}
}

// Create a new refresh token
func (r *refreshTokenRepository) Create(ctx context.Context, refreshToken *models.RefreshToken) error {
	if err := r.db.WithContext(ctx).Create(refreshToken).Error; err != nil {
		return fmt.Errorf("create refresh token: %w", err)
	}
	return nil
}

func (r *refreshTokenRepository) FindByToken(ctx context.Context, tokenString string) (*models.RefreshToken, error) {
	var refreshToken models.RefreshToken
	err := r.db.WithContext(ctx).First(&refreshToken, "token = ?", tokenString).Error
	if err != nil {
		return nil, err
	}
	return &refreshToken, nil
}

// Revoke marks a refresh token as revoked without removing it
func (r *refreshTokenRepository) Revoke(ctx context.Context, tokenID string) error {
	err := r.db.WithContext(ctx).
		Model(&models.RefreshToken{}).
		Where("id = ?", tokenID).
		Update("revoked", true).Error
	if err != nil {
		return fmt.Errorf("revoke refresh token: %w", err)
	}
	return nil
}

// Delete removes a refresh token, used when an expired token is presented
func (r *refreshTokenRepository) Delete(ctx context.Context, tokenID string) error {
	err := r.db.WithContext(ctx).
		Where("id = ?", tokenID).
		Delete(&models.RefreshToken{}).Error
	if err != nil {
		return fmt.Errorf("delete refresh token: %w", err)
	}
	return nil
}
