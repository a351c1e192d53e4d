package dto

import "github.com/peiyu/classmeet/internal/app/models"

// RegisterRequest is the payload for user registration
type RegisterRequest struct {
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=8"`
	DisplayName string `json:"displayName" binding:"required,min=2,max=100"`
	SchoolID    *int64 `json:"schoolId,omitempty"`
	PhotoURL    string `json:"photoUrl,omitempty"`
}

// LoginRequest is the payload for user login
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// TokenResponse carries an issued token pair
type TokenResponse struct {
	AccessToken  string       `json:"accessToken"`
	RefreshToken string       `json:"refreshToken"`
	ExpiresIn    int          `json:"expiresIn"` // seconds
	User         *models.User `json:"user,omitempty"`
}

// RefreshTokenRequest is the payload for refreshing an access token
type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// UpdateProfileRequest is the payload for updating a user's profile.
// Nil fields are left untouched.
type UpdateProfileRequest struct {
	DisplayName *string              `json:"displayName,omitempty" binding:"omitempty,min=2,max=100"`
	SchoolID    *int64               `json:"schoolId,omitempty"`
	Settings    *models.UserSettings `json:"settings,omitempty"`
}
