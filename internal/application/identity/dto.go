package identity

import (
	"time"

	"github.com/google/uuid"
)

// LoginInput contains credentials for authentication
type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginResult contains the result of a successful login
type LoginResult struct {
	User   UserDTO  `json:"user"`
	Tokens TokenDTO `json:"tokens"`
}

// RefreshInput contains the refresh token
type RefreshInput struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// UserDTO represents user data transfer object
type UserDTO struct {
	ID               uuid.UUID  `json:"id"`
	TenantID         uuid.UUID  `json:"tenant_id"`
	CompanyCode      string     `json:"company_code"`
	Username         string     `json:"username"`
	Email            string     `json:"email"`
	FirstName        string     `json:"first_name"`
	LastName         string     `json:"last_name"`
	IsAdmin          bool       `json:"is_admin"`
	IsEmailConfirmed bool       `json:"is_email_confirmed"`
	LastLoginAt      *time.Time `json:"last_login_at,omitempty"`
}

// TokenDTO represents issued tokens
type TokenDTO struct {
	AccessToken           string    `json:"access_token"`
	RefreshToken          string    `json:"refresh_token"`
	AccessTokenExpiresAt  time.Time `json:"access_token_expires_at"`
	RefreshTokenExpiresAt time.Time `json:"refresh_token_expires_at"`
	TokenType             string    `json:"token_type"`
}
