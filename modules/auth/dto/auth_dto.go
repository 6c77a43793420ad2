package dto

import (
	"time"

	"plansync/modules/auth/entity"
)

// ===================== Request DTOs =====================

type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=64"`
	Password string `json:"password" validate:"required,min=8"`
	Location string `json:"location"`
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type UpdatePreferencesRequest struct {
	DietaryRestrictions []string `json:"dietary_restrictions"`
	Interests           []string `json:"interests"`
	ActivityTypes       []string `json:"activity_types"`
}

// ===================== Response DTOs =====================

type UserResponse struct {
	ID          string                  `json:"id"`
	Username    string                  `json:"username"`
	Location    string                  `json:"location,omitempty"`
	Preferences *entity.UserPreferences `json:"preferences,omitempty"`
	CreatedAt   time.Time               `json:"created_at"`
}

type LoginResponse struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	User         UserResponse `json:"user"`
}

type RegisterResponse struct {
	User UserResponse `json:"user"`
}

type RefreshTokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// ===================== Mapper Functions =====================

func ToUserResponse(u *entity.User) UserResponse {
	resp := UserResponse{
		ID:          u.ID.String(),
		Username:    u.Username,
		Preferences: u.Preferences,
		CreatedAt:   u.CreatedAt,
	}
	if u.Location != nil {
		resp.Location = *u.Location
	}
	return resp
}
