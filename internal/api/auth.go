package api

import "github.com/dailypush/dailypush/internal/domain"

// Request DTOs

type RegisterRequest struct {
	Username     string `json:"username" validate:"required"`
	Password     string `json:"password" validate:"required"`
	Confirmation string `json:"confirm" validate:"required"`
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Response DTOs

type RegisterResponse struct {
	Message string      `json:"message"`
	User    domain.User `json:"user"`
}

type LoginResponse struct {
	Message     string `json:"message"`
	AccessToken string `json:"access_token,omitempty"` // for non-cookie clients
}

type LogoutResponse struct {
	Message string `json:"message"`
}

type MeResponse struct {
	Authenticated bool             `json:"authenticated"`
	IsAdmin       bool             `json:"is_admin"`
	Principal     domain.Principal `json:"user"`
}
