package dto

import "microblog/internal/http-api/models"

// GroupResponse for returning group information
type GroupResponse struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
}

// FromModelToGroupResponse converts a Group model to GroupResponse DTO
func FromModelToGroupResponse(group *models.Group) *GroupResponse {
	return &GroupResponse{
		ID:          group.ID,
		Title:       group.Title,
		Slug:        group.Slug,
		Description: group.Description,
	}
}
