package dto

import (
	"strconv"
	"strings"
	"time"

	"microblog/internal/http-api/models"
)

// PostForm carries the user-submitted fields of a post. The group arrives as
// the raw select value, an empty submission means "no group". Image is not
// bound from the form body, the handler stores the upload and fills in the
// path.
type PostForm struct {
	Text     string `form:"text" json:"text"`
	GroupRaw string `form:"group" json:"group"`
	Group    *int64 `form:"-" json:"-"`
	Image    string `form:"-" json:"image,omitempty"`
}

// Validate returns field-level errors, empty map means the form is valid.
// A parseable group value is resolved onto Group as a side effect.
func (f *PostForm) Validate() map[string]string {
	errs := make(map[string]string)
	if strings.TrimSpace(f.Text) == "" {
		errs["text"] = "this field is required"
	}
	if f.GroupRaw != "" {
		id, err := strconv.ParseInt(f.GroupRaw, 10, 64)
		if err != nil {
			errs["group"] = "select a valid group"
		} else {
			f.Group = &id
		}
	}
	return errs
}

// ToModel produces an unsaved post. The caller attaches the author before
// persisting.
func (f *PostForm) ToModel() *models.Post {
	return &models.Post{
		Text:    f.Text,
		GroupID: f.Group,
		Image:   f.Image,
	}
}

// Apply copies the form fields onto an existing post for an in-place edit.
// A submission without a new image keeps the stored one.
func (f *PostForm) Apply(post *models.Post) {
	post.Text = f.Text
	post.GroupID = f.Group
	if f.Image != "" {
		post.Image = f.Image
	}
}

// AuthorResponse is the author block embedded in post and profile pages.
type AuthorResponse struct {
	Username  string `json:"username"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
}

// PostResponse for returning post information
type PostResponse struct {
	ID      int64          `json:"id"`
	Text    string         `json:"text"`
	PubDate time.Time      `json:"pub_date"`
	Image   string         `json:"image,omitempty"`
	Author  AuthorResponse `json:"author"`
	Group   *GroupResponse `json:"group,omitempty"`
}

// FromModelToPostResponse converts a Post model to PostResponse DTO
func FromModelToPostResponse(post *models.Post) *PostResponse {
	resp := &PostResponse{
		ID:      post.ID,
		Text:    post.Text,
		PubDate: post.PubDate,
		Image:   post.Image,
		Author: AuthorResponse{
			Username:  post.Author.Username,
			FirstName: post.Author.FirstName,
			LastName:  post.Author.LastName,
		},
	}
	if post.Group != nil {
		resp.Group = FromModelToGroupResponse(post.Group)
	}
	return resp
}

// PaginatedPostResponse for returning a post listing page
type PaginatedPostResponse struct {
	Data       []PostResponse `json:"data"`
	Page       int            `json:"page"`
	PageSize   int            `json:"page_size"`
	Total      int64          `json:"total"`
	TotalPages int            `json:"total_pages"`
}

// NewPaginatedPostResponse creates a paginated post response
func NewPaginatedPostResponse(posts []models.Post, page, pageSize int, total int64) *PaginatedPostResponse {
	data := make([]PostResponse, 0, len(posts))
	for i := range posts {
		data = append(data, *FromModelToPostResponse(&posts[i]))
	}

	return &PaginatedPostResponse{
		Data:       data,
		Page:       page,
		PageSize:   pageSize,
		Total:      total,
		TotalPages: PageCount(total, pageSize),
	}
}

// GroupPageResponse is the group listing page context
type GroupPageResponse struct {
	Group GroupResponse         `json:"group"`
	Posts PaginatedPostResponse `json:"posts"`
}

// ProfilePageResponse is the author profile page context
type ProfilePageResponse struct {
	Author    AuthorResponse        `json:"author"`
	PostCount int64                 `json:"post_count"`
	Following bool                  `json:"following"`
	Posts     PaginatedPostResponse `json:"posts"`
}

// PostDetailResponse is the post detail page context. Form is the blank
// comment form offered for in-page submission.
type PostDetailResponse struct {
	Post      PostResponse      `json:"post"`
	PostCount int64             `json:"post_count"`
	Comments  []CommentResponse `json:"comments"`
	Form      CommentForm       `json:"form"`
}
