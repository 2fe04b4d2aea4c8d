package dto

import (
	"strings"
	"time"

	"microblog/internal/http-api/models"
)

// CommentForm carries the single user-submitted comment field.
type CommentForm struct {
	Text string `form:"text" json:"text"`
}

// Validate returns field-level errors. Text must survive trimming.
func (f *CommentForm) Validate() map[string]string {
	errs := make(map[string]string)
	if strings.TrimSpace(f.Text) == "" {
		errs["text"] = "this field is required"
	}
	return errs
}

// ToModel produces an unsaved comment. The caller attaches author and post
// before persisting.
func (f *CommentForm) ToModel() *models.Comment {
	return &models.Comment{Text: f.Text}
}

// CommentResponse for returning comment information
type CommentResponse struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

// FromModelToCommentResponse converts a Comment model to CommentResponse DTO
func FromModelToCommentResponse(comment *models.Comment) *CommentResponse {
	return &CommentResponse{
		ID:        comment.ID,
		Username:  comment.Author.Username,
		Text:      comment.Text,
		CreatedAt: comment.CreatedAt,
	}
}
