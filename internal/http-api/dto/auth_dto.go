package dto

import (
	"time"

	"microblog/internal/http-api/models"
)

// SignupDTO for registering a new user
type SignupDTO struct {
	Username  string `json:"username" form:"username" binding:"required,min=3,max=150"`
	Email     string `json:"email" form:"email" binding:"required,email"`
	FirstName string `json:"first_name" form:"first_name"`
	LastName  string `json:"last_name" form:"last_name"`
	Password  string `json:"password" form:"password" binding:"required,min=8"`
}

// LoginDTO for authenticating a user
type LoginDTO struct {
	Username string `json:"username" form:"username" binding:"required"`
	Password string `json:"password" form:"password" binding:"required"`
}

// RefreshDTO for exchanging a refresh token
type RefreshDTO struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// UserResponse for returning user information
type UserResponse struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	FirstName string    `json:"first_name,omitempty"`
	LastName  string    `json:"last_name,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// FromModelToUserResponse converts a User model to UserResponse DTO
func FromModelToUserResponse(user *models.User) *UserResponse {
	return &UserResponse{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		CreatedAt: user.CreatedAt,
	}
}

// AuthResponse for returning tokens after login/refresh
type AuthResponse struct {
	AccessToken  string        `json:"access_token"`
	RefreshToken string        `json:"refresh_token,omitempty"`
	User         *UserResponse `json:"user,omitempty"`
}
