package service

import (
	"context"
	"errors"

	"microblog/internal/http-api/repository"

	"gorm.io/gorm"
)

type FollowService interface {
	Follow(ctx context.Context, userID, username string) error
	Unfollow(ctx context.Context, userID, username string) error
	IsFollowing(ctx context.Context, userID, username string) (bool, error)
}

type followService struct {
	followRepo repository.FollowRepository
	userRepo   repository.UserRepository
}

func NewFollowService(followRepo repository.FollowRepository, userRepo repository.UserRepository) FollowService {
	return &followService{
		followRepo: followRepo,
		userRepo:   userRepo,
	}
}

// Follow idempotently creates a follow link to the named author. Following
// yourself is a no-op, not an error.
func (s *followService) Follow(ctx context.Context, userID, username string) error {
	author, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	if author.ID == userID {
		return nil
	}

	return s.followRepo.Follow(ctx, userID, author.ID)
}

// Unfollow removes the follow link to the named author, a missing link is a
// no-op.
func (s *followService) Unfollow(ctx context.Context, userID, username string) error {
	author, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	return s.followRepo.Unfollow(ctx, userID, author.ID)
}

func (s *followService) IsFollowing(ctx context.Context, userID, username string) (bool, error) {
	author, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, ErrUserNotFound
		}
		return false, err
	}

	return s.followRepo.Exists(ctx, userID, author.ID)
}
