package auth

import (
	"github.com/golang-jwt/jwt/v5"
)

// RegisterRequest is the signup payload.
type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Email    string `json:"email,omitempty"`
}

// LoginRequest is the credential payload.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// TokenResponse carries an issued access token.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// Claims are the JWT claims embedded in access tokens.
type Claims struct {
	UserID   int64  `json:"uid"`
	Username string `json:"sub_name,omitempty"`
	Email    string `json:"email,omitempty"`

	jwt.RegisteredClaims
}
