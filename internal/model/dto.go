package model

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DTOSendRequest describes a custom command for POST /api/v1/commands/send.
// Zero-valued overrides inherit the configured device defaults.
type DTOSendRequest struct {
	Path        string `json:"path" validate:"required"`
	Payload     string `json:"payload" validate:"required"`
	Method      string `json:"method" validate:"omitempty,oneof=GET POST PUT DELETE PATCH"`
	ContentType string `json:"content_type"`
	TimeoutMs   int    `json:"timeout_ms" validate:"gte=0,lte=90000"` // 0 means configured default, max 90s
	Host        string `json:"host"`
	Port        int    `json:"port" validate:"gte=0,lte=65535"` // 0 means configured device port
	APIKey      string `json:"api_key"`
}

// DTOCommandResult is the outcome returned by every command endpoint.
type DTOCommandResult struct {
	Action     string    `json:"action"`
	Success    bool      `json:"success"`
	Message    string    `json:"message"`
	DurationMs int       `json:"duration_ms"`
	ExecutedAt time.Time `json:"executed_at"`
}

type DTOUserRegisterRequest struct {
	Username string `json:"username" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type DTOLoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type DTOLoginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type Claims struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	jwt.RegisteredClaims
}
