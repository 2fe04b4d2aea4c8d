package repository

import (
	"context"
	"fmt"

	"microblog/internal/http-api/models"

	"gorm.io/gorm"
)

// PostRepository defines post data operations. Listing methods take an
// offset/limit window, callers resolve page numbers against the counts.
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	Update(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, postID int64) (*models.Post, error)

	Count(ctx context.Context) (int64, error)
	List(ctx context.Context, offset, limit int) ([]models.Post, error)

	CountByGroup(ctx context.Context, groupID int64) (int64, error)
	ListByGroup(ctx context.Context, groupID int64, offset, limit int) ([]models.Post, error)

	CountByAuthor(ctx context.Context, authorID string) (int64, error)
	ListByAuthor(ctx context.Context, authorID string, offset, limit int) ([]models.Post, error)

	CountFeed(ctx context.Context, userID string) (int64, error)
	ListFeed(ctx context.Context, userID string, offset, limit int) ([]models.Post, error)
}

type postRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

// Create a new post
func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	if err := r.db.WithContext(ctx).Create(post).Error; err != nil {
		return fmt.Errorf("create post: %w", err)
	}
	return nil
}

// Update an existing post in place
func (r *postRepository) Update(ctx context.Context, post *models.Post) error {
	if err := r.db.WithContext(ctx).Save(post).Error; err != nil {
		return fmt.Errorf("update post: %w", err)
	}
	return nil
}

// GetByID retrieves a post with its author and group
func (r *postRepository) GetByID(ctx context.Context, postID int64) (*models.Post, error) {
	var post models.Post
	err := r.db.WithContext(ctx).
		Preload("Author").
		Preload("Group").
		First(&post, "id = ?", postID).Error
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *postRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&models.Post{}).Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

// List retrieves posts newest-first
func (r *postRepository) List(ctx context.Context, offset, limit int) ([]models.Post, error) {
	var posts []models.Post
	err := r.db.WithContext(ctx).
		Preload("Author").
		Preload("Group").
		Order("pub_date DESC").
		Limit(limit).
		Offset(offset).
		Find(&posts).Error
	if err != nil {
		return nil, err
	}
	return posts, nil
}

func (r *postRepository) CountByGroup(ctx context.Context, groupID int64) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&models.Post{}).
		Where("group_id = ?", groupID).
		Count(&total).Error
	if err != nil {
		return 0, err
	}
	return total, nil
}

func (r *postRepository) ListByGroup(ctx context.Context, groupID int64, offset, limit int) ([]models.Post, error) {
	var posts []models.Post
	err := r.db.WithContext(ctx).
		Where("group_id = ?", groupID).
		Preload("Author").
		Preload("Group").
		Order("pub_date DESC").
		Limit(limit).
		Offset(offset).
		Find(&posts).Error
	if err != nil {
		return nil, err
	}
	return posts, nil
}

func (r *postRepository) CountByAuthor(ctx context.Context, authorID string) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&models.Post{}).
		Where("author_id = ?", authorID).
		Count(&total).Error
	if err != nil {
		return 0, err
	}
	return total, nil
}

func (r *postRepository) ListByAuthor(ctx context.Context, authorID string, offset, limit int) ([]models.Post, error) {
	var posts []models.Post
	err := r.db.WithContext(ctx).
		Where("author_id = ?", authorID).
		Preload("Author").
		Preload("Group").
		Order("pub_date DESC").
		Limit(limit).
		Offset(offset).
		Find(&posts).Error
	if err != nil {
		return nil, err
	}
	return posts, nil
}

func (r *postRepository) CountFeed(ctx context.Context, userID string) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&models.Post{}).
		Joins("JOIN follows ON follows.author_id = posts.author_id").
		Where("follows.user_id = ?", userID).
		Count(&total).Error
	if err != nil {
		return 0, err
	}
	return total, nil
}

// ListFeed retrieves posts whose authors are followed by the given user
func (r *postRepository) ListFeed(ctx context.Context, userID string, offset, limit int) ([]models.Post, error) {
	var posts []models.Post
	err := r.db.WithContext(ctx).
		Joins("JOIN follows ON follows.author_id = posts.author_id").
		Where("follows.user_id = ?", userID).
		Preload("Author").
		Preload("Group").
		Order("pub_date DESC").
		Limit(limit).
		Offset(offset).
		Find(&posts).Error
	if err != nil {
		return nil, err
	}
	return posts, nil
}
