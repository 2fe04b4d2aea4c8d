package service

import (
	"context"
	"errors"

	"microblog/internal/http-api/dto"
	"microblog/internal/http-api/repository"

	"gorm.io/gorm"
)

type CommentService interface {
	AddComment(ctx context.Context, postID int64, userID string, form *dto.CommentForm) error
}

type commentService struct {
	commentRepo repository.CommentRepository
	postRepo    repository.PostRepository
}

func NewCommentService(commentRepo repository.CommentRepository, postRepo repository.PostRepository) CommentService {
	return &commentService{
		commentRepo: commentRepo,
		postRepo:    postRepo,
	}
}

// AddComment persists a comment attributed to the given user and post. An
// invalid form is silently dropped, the caller redirects to the detail page
// either way.
func (s *commentService) AddComment(ctx context.Context, postID int64, userID string, form *dto.CommentForm) error {
	// Check if post exists
	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPostNotFound
		}
		return err
	}

	if len(form.Validate()) > 0 {
		return nil
	}

	comment := form.ToModel()
	comment.AuthorID = userID
	comment.PostID = postID

	return s.commentRepo.Create(ctx, comment)
}
