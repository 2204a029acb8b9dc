package ports

import (
	"context"

	"github.com/threat0512/HealthFactAI/internal/core/domain/auth"
	"github.com/threat0512/HealthFactAI/internal/core/domain/user"
)

// AuthService handles registration, login and token verification.
type AuthService interface {
	Register(ctx context.Context, req *auth.RegisterRequest) (*user.User, error)
	Login(ctx context.Context, req *auth.LoginRequest) (*auth.TokenResponse, error)
	VerifyToken(tokenString string) (*auth.Claims, error)
}
